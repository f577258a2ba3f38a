package relayserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// OllamaBackend answers prompts through an Ollama-compatible generate
// endpoint, non-streaming.
type OllamaBackend struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

func NewOllamaBackend(baseURL, model string) *OllamaBackend {
	return &OllamaBackend{
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		httpClient: http.DefaultClient,
	}
}

func (b *OllamaBackend) Answer(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(struct {
		Model  string `json:"model"`
		Prompt string `json:"prompt"`
		Stream bool   `json:"stream"`
	}{Model: b.model, Prompt: prompt, Stream: false})
	if err != nil {
		return "", fmt.Errorf("failed to encode generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := b.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("generate request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		io.Copy(io.Discard, res.Body) //nolint:errcheck
		return "", fmt.Errorf("generate request failed with status %d", res.StatusCode)
	}

	var body struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode generate response: %w", err)
	}
	if strings.TrimSpace(body.Response) == "" {
		return "", fmt.Errorf("generate response contained no text")
	}

	return body.Response, nil
}
