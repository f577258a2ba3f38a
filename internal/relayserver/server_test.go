package relayserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type stubAnswers struct {
	answer string
	err    error

	prompts []string
}

func (s *stubAnswers) Answer(_ context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.answer, s.err
}

type stubSpeech struct {
	audio []byte
	err   error

	texts []string
}

func (s *stubSpeech) Synthesize(_ context.Context, text string) (io.ReadCloser, error) {
	s.texts = append(s.texts, text)
	if s.err != nil {
		return nil, s.err
	}
	return io.NopCloser(bytes.NewReader(s.audio)), nil
}

func postJSON(t *testing.T, handler http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	return res
}

func TestHandleAsk(t *testing.T) {
	answers := &stubAnswers{answer: "The capital of France is Paris."}
	handler := New(answers, &stubSpeech{}).Handler()

	res := postJSON(t, handler, "/api/ask", `{"prompt":"What is the capital of France?"}`)

	if res.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", res.Code)
	}
	if len(answers.prompts) != 1 || answers.prompts[0] != "What is the capital of France?" {
		t.Fatalf("expected the prompt to be forwarded verbatim, got %v", answers.prompts)
	}

	var body map[string]string
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("expected a JSON body, got error %v", err)
	}
	if body["answer"] != "The capital of France is Paris." {
		t.Fatalf("expected the backend answer, got %q", body["answer"])
	}
}

func TestHandleAskMissingPrompt(t *testing.T) {
	answers := &stubAnswers{}
	handler := New(answers, &stubSpeech{}).Handler()

	for _, body := range []string{`{}`, `{"prompt":"  "}`, `not json`} {
		res := postJSON(t, handler, "/api/ask", body)
		if res.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400 for body %q, got %d", body, res.Code)
		}
	}
	if len(answers.prompts) != 0 {
		t.Fatalf("expected no backend calls, got %v", answers.prompts)
	}
}

func TestHandleAskBackendFailure(t *testing.T) {
	handler := New(&stubAnswers{err: errors.New("upstream down")}, &stubSpeech{}).Handler()

	res := postJSON(t, handler, "/api/ask", `{"prompt":"hello"}`)

	if res.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", res.Code)
	}
	if strings.Contains(res.Body.String(), "upstream down") {
		t.Fatalf("expected an opaque error body, got %q", res.Body.String())
	}
}

func TestHandleSpeak(t *testing.T) {
	speech := &stubSpeech{audio: []byte("RIFFfakewav")}
	handler := New(&stubAnswers{}, speech).Handler()

	res := postJSON(t, handler, "/api/tts", `{"text":"hello there"}`)

	if res.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", res.Code)
	}
	if got := res.Header().Get("Content-Type"); got != "audio/wav" {
		t.Fatalf("expected audio/wav content type, got %q", got)
	}
	if res.Body.String() != "RIFFfakewav" {
		t.Fatalf("expected the audio payload, got %q", res.Body.String())
	}
	if len(speech.texts) != 1 || speech.texts[0] != "hello there" {
		t.Fatalf("expected the text to be forwarded verbatim, got %v", speech.texts)
	}
}

func TestHandleSpeakMissingText(t *testing.T) {
	handler := New(&stubAnswers{}, &stubSpeech{}).Handler()

	res := postJSON(t, handler, "/api/tts", `{"text":""}`)
	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", res.Code)
	}
}

func TestHandleSpeakBackendFailure(t *testing.T) {
	handler := New(&stubAnswers{}, &stubSpeech{err: errors.New("tts down")}).Handler()

	res := postJSON(t, handler, "/api/tts", `{"text":"hello"}`)
	if res.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", res.Code)
	}
}

func TestHealthz(t *testing.T) {
	handler := New(&stubAnswers{}, &stubSpeech{}).Handler()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", res.Code)
	}
}

func TestOllamaBackend(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Fatalf("expected path /api/generate, got %q", r.URL.Path)
		}

		var body struct {
			Model  string `json:"model"`
			Prompt string `json:"prompt"`
			Stream bool   `json:"stream"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("expected a JSON body, got error %v", err)
		}
		if body.Model != "llama3" || body.Prompt != "hello" || body.Stream {
			t.Fatalf("unexpected generate request: %+v", body)
		}

		json.NewEncoder(w).Encode(map[string]string{"response": "hi there"}) //nolint:errcheck
	}))
	defer upstream.Close()

	answer, err := NewOllamaBackend(upstream.URL, "llama3").Answer(context.Background(), "hello")
	if err != nil {
		t.Fatalf("expected an answer, got error %v", err)
	}
	if answer != "hi there" {
		t.Fatalf("expected answer %q, got %q", "hi there", answer)
	}
}

func TestOllamaBackendUpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer upstream.Close()

	if _, err := NewOllamaBackend(upstream.URL, "llama3").Answer(context.Background(), "hello"); err == nil {
		t.Fatal("expected an error, got nil")
	}
}

func TestCoquiBackend(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tts" {
			t.Fatalf("expected path /api/tts, got %q", r.URL.Path)
		}

		query := r.URL.Query()
		if query.Get("text") != "hello there" {
			t.Fatalf("expected text query %q, got %q", "hello there", query.Get("text"))
		}
		if query.Get("speaker_id") != "Marcos Rudaski" {
			t.Fatalf("expected speaker query, got %q", query.Get("speaker_id"))
		}
		if query.Get("language_id") != "en" {
			t.Fatalf("expected language query, got %q", query.Get("language_id"))
		}

		w.Write([]byte("RIFFfakewav")) //nolint:errcheck
	}))
	defer upstream.Close()

	audio, err := NewCoquiBackend(upstream.URL, "Marcos Rudaski", "en").Synthesize(context.Background(), "hello there")
	if err != nil {
		t.Fatalf("expected audio, got error %v", err)
	}
	defer audio.Close()

	payload, err := io.ReadAll(audio)
	if err != nil {
		t.Fatalf("expected to read the payload, got error %v", err)
	}
	if string(payload) != "RIFFfakewav" {
		t.Fatalf("expected the audio payload, got %q", payload)
	}
}

func TestCoquiBackendUpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer upstream.Close()

	if _, err := NewCoquiBackend(upstream.URL, "s", "en").Synthesize(context.Background(), "hello"); err == nil {
		t.Fatal("expected an error, got nil")
	}
}
