package relay

import (
	"fmt"
	"net/http"
)

type Kind int

const (
	MethodNotAllowed Kind = iota
	MissingInput
	MissingConfiguration
	UpstreamFailure
	Internal
)

func (k Kind) String() string {
	switch k {
	case MethodNotAllowed:
		return "method not allowed"
	case MissingInput:
		return "missing input"
	case MissingConfiguration:
		return "missing configuration"
	case UpstreamFailure:
		return "upstream failure"
	case Internal:
		return "internal"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error terminates a request. Message and Details become the error and details
// fields of the response body.
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
	Details    string
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func errMethodNotAllowed() *Error {
	return &Error{Kind: MethodNotAllowed, StatusCode: http.StatusMethodNotAllowed, Message: "Method Not Allowed"}
}

func errNoImage() *Error {
	return &Error{Kind: MissingInput, StatusCode: http.StatusBadRequest, Message: "No image provided"}
}

func errNoKey() *Error {
	return &Error{Kind: MissingConfiguration, StatusCode: http.StatusInternalServerError, Message: "API key not configured"}
}

func errUpstream(status int, details string, err error) *Error {
	return &Error{
		Kind:       UpstreamFailure,
		StatusCode: status,
		Message:    "Failed to get valid response from Gemini API",
		Details:    details,
		Err:        err,
	}
}

// InternalError wraps an unexpected failure. The response carries err's text.
func InternalError(err error) *Error {
	return &Error{
		Kind:       Internal,
		StatusCode: http.StatusInternalServerError,
		Message:    "Internal Server Error: " + err.Error(),
		Err:        err,
	}
}
