package relayserver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// CoquiBackend synthesizes speech through a Coqui-style TTS server. The
// text goes out as a query parameter alongside a fixed speaker and
// language; the response body is the WAV payload.
type CoquiBackend struct {
	baseURL    string
	speakerID  string
	languageID string
	httpClient *http.Client
}

func NewCoquiBackend(baseURL, speakerID, languageID string) *CoquiBackend {
	return &CoquiBackend{
		baseURL:    strings.TrimRight(baseURL, "/"),
		speakerID:  speakerID,
		languageID: languageID,
		httpClient: http.DefaultClient,
	}
}

func (b *CoquiBackend) Synthesize(ctx context.Context, text string) (io.ReadCloser, error) {
	query := url.Values{}
	query.Set("text", text)
	query.Set("speaker_id", b.speakerID)
	query.Set("language_id", b.languageID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+"/api/tts?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create synthesis request: %w", err)
	}

	res, err := b.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("synthesis request failed: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		io.Copy(io.Discard, res.Body) //nolint:errcheck
		res.Body.Close()
		return nil, fmt.Errorf("synthesis request failed with status %d", res.StatusCode)
	}

	return res.Body, nil
}
