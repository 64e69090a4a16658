package handler

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/dmorgan81/wastebot/internal/log"
	"github.com/dmorgan81/wastebot/internal/relay"
	"github.com/samber/do"
)

// MaxBodyBytes caps request bodies read by ServeHTTP.
const MaxBodyBytes = 10 << 20

type Relayer interface {
	Handle(context.Context, relay.Request) relay.Response
}

type Handler struct {
	relay Relayer
}

func New(r Relayer) *Handler {
	return &Handler{relay: r}
}

func NewHandler(i *do.Injector) (*Handler, error) {
	return New(do.MustInvoke[*relay.Relay](i)), nil
}

// Handle serves Lambda Function URL and API Gateway HTTP API invocations.
// Request level failures are reported in the response, never as an error.
func (h *Handler) Handle(ctx context.Context, event events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	log := log.FromContextOrDiscard(ctx).WithGroup("Handler").With(
		"requestId", event.RequestContext.RequestID,
		"path", event.RawPath,
	)
	log.Info("handling lambda invocation")

	method := event.RequestContext.HTTP.Method
	body := []byte(event.Body)
	// other methods are rejected by the relay whatever the body holds
	if event.IsBase64Encoded && method == http.MethodPost {
		decoded, err := base64.StdEncoding.DecodeString(event.Body)
		if err != nil {
			log.Warn("could not decode request body", "error", err)
			return toEvent(relay.ErrorResponse(relay.InternalError(fmt.Errorf("decode body: %w", err)))), nil
		}
		body = decoded
	}

	resp := h.relay.Handle(ctx, relay.Request{
		Method: method,
		Body:   body,
	})
	log.Info("handled lambda invocation", "status", resp.StatusCode)
	return toEvent(resp), nil
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var (
		resp relay.Response
		body []byte
		err  error
	)
	if r.Method == http.MethodPost {
		body, err = io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	}
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			err = fmt.Errorf("request body exceeds %d bytes", tooLarge.Limit)
		}
		resp = relay.ErrorResponse(relay.InternalError(err))
	} else {
		resp = h.relay.Handle(r.Context(), relay.Request{Method: r.Method, Body: body})
	}

	for k, v := range resp.Header {
		w.Header().Set(k, v)
	}
	w.WriteHeader(resp.StatusCode)
	_, _ = w.Write(resp.Body)
}

func toEvent(resp relay.Response) events.APIGatewayV2HTTPResponse {
	return events.APIGatewayV2HTTPResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       string(resp.Body),
	}
}
