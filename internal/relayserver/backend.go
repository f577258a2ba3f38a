package relayserver

import (
	"context"
	"io"
)

// AnswerBackend produces a textual answer for a prompt.
type AnswerBackend interface {
	Answer(ctx context.Context, prompt string) (string, error)
}

// SpeechBackend synthesizes speech for a piece of text. The returned
// reader streams the audio payload and must be closed by the caller.
type SpeechBackend interface {
	Synthesize(ctx context.Context, text string) (io.ReadCloser, error)
}
