package gemini

import (
	"context"
	"fmt"
	"net/http"
)

const DefaultEndpoint = "https://generativelanguage.googleapis.com/v1/models/gemini-1.5-flash:generateContent"

type Generator interface {
	GenerateContent(ctx context.Context, key string, req *GenerateContentRequest) (*GenerateContentResponse, error)
}

// APIError is returned when the service answers with a non-2xx status or with
// an error object in place of candidates.
type APIError struct {
	StatusCode int
	Code       int
	Message    string
	Status     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gemini: %d %s: %s", e.HTTPStatus(), e.Status, e.Message)
}

// HTTPStatus is the status worth reporting to callers: the response status for
// failed responses, else the embedded error code, else 500.
func (e *APIError) HTTPStatus() int {
	switch {
	case e.StatusCode < 200 || e.StatusCode > 299:
		return e.StatusCode
	case e.Code >= 400 && e.Code <= 599:
		return e.Code
	default:
		return http.StatusInternalServerError
	}
}
