// Package api issues requests against the Daymet single-pixel service.
package api

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

	"github.com/katiamach/ornl/internal/logger"
	"github.com/sirupsen/logrus"
)

// Service endpoints.
const (
	DataEndpoint    = "/api/data"
	PreviewEndpoint = "/preview"
)

// APIError is a structured error reported by the service in an "error" field.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	return "API Error: " + e.Message
}

// RequestError is any other request failure: network, timeout or an unexpected status.
type RequestError struct {
	Err error
}

func (e *RequestError) Error() string {
	return "Request failed: " + e.Err.Error()
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// Body is a successful response body with its content type.
type Body struct {
	ContentType string
	Data        []byte
}

// Client performs single GET requests. It never retries.
type Client struct {
	httpClient *http.Client
}

// NewClient creates new Client. A nil httpClient means http.DefaultClient.
func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{httpClient: httpClient}
}

// Get requests baseURL+endpoint with params and returns the raw body.
func (c *Client) Get(ctx context.Context, baseURL, endpoint string, params url.Values) (*Body, error) {
	target := strings.TrimRight(baseURL, "/") + endpoint
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &RequestError{Err: err}
	}

	logger.Debug("sending request", logrus.Fields{"url": target})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &RequestError{Err: cause(err)}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	logger.Debug("received response", logrus.Fields{"status": resp.StatusCode, "bytes": len(data)})

	if msg, ok := errorField(data); ok {
		return nil, &APIError{Message: msg}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RequestError{Err: fmt.Errorf("request failed with status code %d", resp.StatusCode)}
	}

	return &Body{
		ContentType: resp.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// cause strips the url.Error wrapper, which repeats the method and URL.
func cause(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err
	}

	return err
}

// errorField reports the "error" member of a JSON object body.
func errorField(data []byte) (string, bool) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return "", false
	}

	var body struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(trimmed, &body); err != nil {
		return "", false
	}

	raw := bytes.TrimSpace(body.Error)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", false
	}

	var msg string
	if err := json.Unmarshal(raw, &msg); err == nil {
		return msg, msg != ""
	}

	return string(raw), true
}
