package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmorgan81/wastebot/internal/log"
	"github.com/samber/do"
	"github.com/samber/lo"
)

type Client struct {
	Client   *http.Client
	Endpoint string
}

func NewClient(i *do.Injector) (Generator, error) {
	return &Client{
		Client:   do.MustInvoke[*http.Client](i),
		Endpoint: do.MustInvokeNamed[string](i, "gemini_endpoint"),
	}, nil
}

func (c *Client) GenerateContent(ctx context.Context, key string, request *GenerateContentRequest) (*GenerateContentResponse, error) {
	log := log.FromContextOrDiscard(ctx).WithGroup("gemini").With("endpoint", c.Endpoint)
	log.Info("requesting content generation")

	endpoint, err := url.Parse(lo.Ternary(c.Endpoint != "", c.Endpoint, DefaultEndpoint))
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}
	public := endpoint.String()
	query := endpoint.Query()
	query.Set("key", key)
	endpoint.RawQuery = query.Encode()

	body, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		// *url.Error prints the request URL, which carries the key.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			return nil, fmt.Errorf("post %s: %w", public, urlErr.Err)
		}
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	log.Info("received response", "status", resp.StatusCode, "bytes", len(data))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp.StatusCode, data)
	}

	var out GenerateContentResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if out.Error != nil {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Code:       out.Error.Code,
			Message:    out.Error.Message,
			Status:     out.Error.Status,
		}
	}
	return &out, nil
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status, Status: http.StatusText(status)}

	var envelope struct {
		Error *Status `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != nil {
		apiErr.Code = envelope.Error.Code
		apiErr.Message = envelope.Error.Message
		apiErr.Status = lo.Ternary(envelope.Error.Status != "", envelope.Error.Status, apiErr.Status)
		return apiErr
	}
	apiErr.Message = strings.TrimSpace(string(body))
	return apiErr
}
