// Package speechtotext defines the streaming speech recognition contract
// the interaction core is written against, independent of whether a real
// engine is available in the current environment.
package speechtotext

import (
	"context"
	"errors"
)

// ErrNotSupported is reported when no recognition engine is available.
var ErrNotSupported = errors.New("speech recognition is not supported in this environment")

// ErrorCode is the structured engine error taxonomy surfaced to callers.
type ErrorCode string

const (
	// ErrorCodeNoSpeech means no speech was detected before the engine gave
	// up. Deliberately silent at the notification level.
	ErrorCodeNoSpeech ErrorCode = "no-speech"
	// ErrorCodeAudioCapture means the microphone could not be read.
	ErrorCodeAudioCapture ErrorCode = "audio-capture"
	// ErrorCodeNotAllowed means capture permission was denied.
	ErrorCodeNotAllowed ErrorCode = "not-allowed"
	// ErrorCodeNetwork means the engine's transport failed.
	ErrorCodeNetwork ErrorCode = "network"
	// ErrorCodeServiceNotAllowed means the recognition service refused the
	// session.
	ErrorCodeServiceNotAllowed ErrorCode = "service-not-allowed"
	// ErrorCodeBadGrammar means the engine rejected the recognition grammar.
	ErrorCodeBadGrammar ErrorCode = "bad-grammar"
	// ErrorCodeUnknown is the catch-all for uncategorized engine failures.
	ErrorCodeUnknown ErrorCode = "unknown"
)

// Recognizer is a continuous streaming speech-to-text engine.
type Recognizer interface {
	// Transcribe opens a recognition stream and begins delivering results
	// through the configured callbacks.
	Transcribe(ctx context.Context, opts ...TranscriptionOption) error
	// SendAudio feeds captured audio into the open stream.
	SendAudio(audio []byte) error
	// Finalize asks the engine to commit any pending interim text.
	Finalize() error
	// Close tears the stream down.
	Close(ctx context.Context) error
}

// Unavailable is the engine variant used when no real engine exists. Every
// attempt to transcribe fails with ErrNotSupported; everything else is a
// no-op, so a controller built on it stays safe to call.
type Unavailable struct{}

var _ Recognizer = Unavailable{}

func (Unavailable) Transcribe(context.Context, ...TranscriptionOption) error {
	return ErrNotSupported
}

func (Unavailable) SendAudio([]byte) error       { return nil }
func (Unavailable) Finalize() error              { return nil }
func (Unavailable) Close(context.Context) error  { return nil }
func (Unavailable) IsSupported() bool            { return false }
