// Package relay is the HTTP client for the two backend endpoints the
// assistant depends on: the ask endpoint answering a prompt with text and
// the speak endpoint answering text with synthesized audio. Both calls use
// the same deadline wiring: the caller bounds the context, the transport
// honors cancellation.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/codes"
)

var (
	// ErrNoAnswer is returned when the ask endpoint responds 2xx without a
	// usable answer field.
	ErrNoAnswer = errors.New("response missing answer")
	// ErrEmptyAudio is returned when the speak endpoint responds 2xx with
	// an empty body.
	ErrEmptyAudio = errors.New("empty audio response")
)

// StatusError reports a non-2xx response from either endpoint.
type StatusError struct {
	Endpoint string
	Code     int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s endpoint returned status %d", e.Endpoint, e.Code)
}

type ClientOption func(*Client)

func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, opts ...ClientOption) *Client {
	client := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

type askRequest struct {
	Prompt string `json:"prompt"`
}

type askResponse struct {
	Answer string `json:"answer"`
}

type speakRequest struct {
	Text string `json:"text"`
}

// Ask submits a prompt and returns the model's textual answer.
func (c *Client) Ask(ctx context.Context, prompt string) (string, error) {
	ctx, span := tracer.Start(ctx, "ask relay")
	defer span.End()

	body, err := c.post(ctx, "/api/ask", askRequest{Prompt: prompt}, "ask")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	var parsed askResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		err = fmt.Errorf("%w: %w", ErrNoAnswer, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	if strings.TrimSpace(parsed.Answer) == "" {
		span.RecordError(ErrNoAnswer)
		span.SetStatus(codes.Error, ErrNoAnswer.Error())
		return "", ErrNoAnswer
	}

	return parsed.Answer, nil
}

// Speak submits text and returns the synthesized audio payload.
func (c *Client) Speak(ctx context.Context, text string) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "speak relay")
	defer span.End()

	body, err := c.post(ctx, "/api/tts", speakRequest{Text: text}, "speak")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if len(body) == 0 {
		span.RecordError(ErrEmptyAudio)
		span.SetStatus(codes.Error, ErrEmptyAudio.Error())
		return nil, ErrEmptyAudio
	}

	return body, nil
}

func (c *Client) post(ctx context.Context, path string, payload any, endpoint string) ([]byte, error) {
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s request: %w", endpoint, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to build %s request: %w", endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{Endpoint: endpoint, Code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", endpoint, err)
	}

	return body, nil
}
