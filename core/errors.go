package assistant

import (
	"context"
	"errors"
	"net/url"

	"github.com/mlisica/voiceloop/core/relay"
)

// ErrorKind buckets every failure the interaction core can produce.
type ErrorKind string

const (
	// ErrorNetwork covers transport failures and request timeouts.
	ErrorNetwork ErrorKind = "network"
	// ErrorServer covers non-2xx responses from the ask path.
	ErrorServer ErrorKind = "server"
	// ErrorMicPermission covers denied or failing microphone access.
	ErrorMicPermission ErrorKind = "mic_permission"
	// ErrorSpeechRecognition covers capture-engine failures and empty
	// transcript submissions.
	ErrorSpeechRecognition ErrorKind = "speech_recognition"
	// ErrorTTS covers synthesis and playback failures.
	ErrorTTS ErrorKind = "tts"
	// ErrorUnknown covers everything uncategorized, including malformed
	// success responses.
	ErrorUnknown ErrorKind = "unknown"
)

// ErrorInfo is the single live "last error" value. Transient: each new
// failure overwrites it, nothing retains it in history.
type ErrorInfo struct {
	Kind    ErrorKind
	Message string
	Details string
}

func (e *ErrorInfo) Error() string {
	if e.Details != "" {
		return string(e.Kind) + ": " + e.Message + ": " + e.Details
	}
	return string(e.Kind) + ": " + e.Message
}

func classifyAskError(err error) ErrorInfo {
	var statusErr *relay.StatusError
	var urlErr *url.Error

	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return ErrorInfo{Kind: ErrorNetwork, Message: "request timeout", Details: "the request took too long to complete"}
	case errors.As(err, &statusErr):
		return ErrorInfo{Kind: ErrorServer, Message: "server error", Details: err.Error()}
	case errors.Is(err, relay.ErrNoAnswer):
		return ErrorInfo{Kind: ErrorUnknown, Message: "invalid response format", Details: err.Error()}
	case errors.As(err, &urlErr):
		return ErrorInfo{Kind: ErrorNetwork, Message: "network connection failed", Details: err.Error()}
	default:
		return ErrorInfo{Kind: ErrorUnknown, Message: "failed to get response", Details: err.Error()}
	}
}

func classifySpeakError(err error) ErrorInfo {
	var statusErr *relay.StatusError

	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return ErrorInfo{Kind: ErrorTTS, Message: "text-to-speech timeout", Details: "audio generation took longer than expected"}
	case errors.As(err, &statusErr):
		return ErrorInfo{Kind: ErrorTTS, Message: "text-to-speech service error", Details: err.Error()}
	case errors.Is(err, relay.ErrEmptyAudio):
		return ErrorInfo{Kind: ErrorTTS, Message: "empty audio response", Details: err.Error()}
	default:
		return ErrorInfo{Kind: ErrorTTS, Message: "failed to play audio response", Details: err.Error()}
	}
}
