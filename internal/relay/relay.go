package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmorgan81/wastebot/internal/gemini"
	"github.com/dmorgan81/wastebot/internal/log"
	"github.com/dmorgan81/wastebot/internal/prompt"
	"github.com/samber/do"
	"github.com/samber/lo"
)

const (
	FallbackMessage = "Could not analyze waste from response."

	dataURIMarker = "base64,"
)

type Request struct {
	Method string
	Body   []byte
}

type Response struct {
	StatusCode int
	Header     map[string]string
	Body       []byte
}

type Settings struct {
	APIKey  string
	Profile prompt.Profile
}

// Relay holds no mutable state and is safe for concurrent use.
type Relay struct {
	settings  Settings
	generator gemini.Generator
}

func New(settings Settings, generator gemini.Generator) *Relay {
	return &Relay{settings: settings, generator: generator}
}

func NewRelay(i *do.Injector) (*Relay, error) {
	return New(Settings{
		APIKey:  do.MustInvokeNamed[string](i, "gemini_key"),
		Profile: do.MustInvoke[prompt.Profile](i),
	}, do.MustInvoke[gemini.Generator](i)), nil
}

func (r *Relay) Handle(ctx context.Context, request Request) Response {
	log := log.FromContextOrDiscard(ctx).WithGroup("relay").With("method", request.Method, "size", len(request.Body))
	log.Info("handling request")

	message, err := r.analyze(ctx, request)
	if err != nil {
		var relayErr *Error
		if !errors.As(err, &relayErr) {
			relayErr = InternalError(err)
		}
		log.Warn("request failed", "kind", relayErr.Kind.String(), "status", relayErr.StatusCode, "error", relayErr.Error())
		return ErrorResponse(relayErr)
	}
	return jsonResponse(http.StatusOK, map[string]string{"message": message})
}

func (r *Relay) analyze(ctx context.Context, request Request) (message string, err error) {
	defer func() {
		if v := recover(); v != nil {
			err = InternalError(fmt.Errorf("panic: %v", v))
		}
	}()

	if request.Method != http.MethodPost {
		return "", errMethodNotAllowed()
	}

	image, err := parseImage(request.Body)
	if err != nil {
		return "", err
	}

	if r.settings.APIKey == "" {
		return "", errNoKey()
	}

	req := r.settings.Profile.Request(StripDataURI(image))
	resp, err := r.generator.GenerateContent(ctx, r.settings.APIKey, req)
	if err != nil {
		var apiErr *gemini.APIError
		if errors.As(err, &apiErr) {
			return "", errUpstream(apiErr.HTTPStatus(), lo.Ternary(apiErr.Message != "", apiErr.Message, "Unknown error"), err)
		}
		return "", errUpstream(http.StatusInternalServerError, err.Error(), err)
	}

	text, ok := resp.Text()
	if !ok {
		log := log.FromContextOrDiscard(ctx).WithGroup("relay")
		if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != "" {
			log.Warn("prompt blocked by upstream", "reason", fb.BlockReason)
		}
		log.Info("no analysis text in response, using fallback")
		return FallbackMessage, nil
	}
	return text, nil
}

// parseImage reads the image field from a JSON body. A null body or an image
// that is set but not a string cannot be read and is an internal error. Any
// other body without a usable image, including non-object values, is missing
// input.
func parseImage(body []byte) (string, error) {
	var value any
	if err := json.Unmarshal(body, &value); err != nil {
		return "", InternalError(err)
	}
	if value == nil {
		return "", InternalError(errors.New("request body is null"))
	}
	fields, ok := value.(map[string]any)
	if !ok {
		return "", errNoImage()
	}
	switch image := fields["image"].(type) {
	case nil:
		return "", errNoImage()
	case string:
		if image == "" {
			return "", errNoImage()
		}
		return image, nil
	case bool:
		if !image {
			return "", errNoImage()
		}
	case float64:
		if image == 0 {
			return "", errNoImage()
		}
	}
	return "", InternalError(fmt.Errorf("image is %T, not a string", fields["image"]))
}

// StripDataURI returns what follows the first "base64," marker, or image
// unchanged when there is none. The remainder is not checked for valid base64.
func StripDataURI(image string) string {
	if _, data, ok := strings.Cut(image, dataURIMarker); ok {
		return data
	}
	return image
}

func ErrorResponse(err *Error) Response {
	body := map[string]string{"error": err.Message}
	if err.Details != "" {
		body["details"] = err.Details
	}
	return jsonResponse(err.StatusCode, body)
}

func jsonResponse(status int, body map[string]string) Response {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(body)
	return Response{
		StatusCode: status,
		Header:     map[string]string{"Content-Type": "application/json"},
		Body:       bytes.TrimSuffix(buf.Bytes(), []byte("\n")),
	}
}
