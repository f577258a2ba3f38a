// Package assistant orchestrates a single voice conversation: captured
// speech is submitted as a prompt, the response is appended to the
// conversation and spoken back through the configured player.
package assistant

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/mlisica/voiceloop/core/events"
	"github.com/mlisica/voiceloop/core/notify"
)

const (
	defaultAskTimeout   = 30 * time.Second
	defaultSpeakTimeout = 45 * time.Second
)

// Responder produces a textual answer for a prompt and synthesized speech
// for a piece of text.
type Responder interface {
	Ask(ctx context.Context, prompt string) (string, error)
	Speak(ctx context.Context, text string) ([]byte, error)
}

// Assistant drives the ask/speak cycle of a conversation. Turns are
// processed one at a time; history only ever grows in user/assistant
// pairs.
type Assistant struct {
	turnMu sync.Mutex

	responder Responder
	player    *speechPlayer
	notifier  notify.Notifier
	emitEvent eventEmitter

	askTimeout   time.Duration
	speakTimeout time.Duration

	turns *turns

	askInFlight atomic.Bool
	ttsInFlight atomic.Bool

	errMu   sync.Mutex
	lastErr *ErrorInfo
}

func New(responder Responder, opts ...AssistantOption) *Assistant {
	a := &Assistant{
		responder:    responder,
		player:       newSpeechPlayer(),
		notifier:     notify.Nop{},
		emitEvent:    noopEventEmitter,
		askTimeout:   defaultAskTimeout,
		speakTimeout: defaultSpeakTimeout,
		turns:        &turns{},
	}

	for _, opt := range opts {
		opt(a)
	}

	a.player.SetCallbacks(
		func() { a.emitEvent(events.NewAssistantPlaybackStarted()) },
		func() { a.emitEvent(events.NewAssistantPlaybackEnded()) },
	)

	return a
}

// Turns returns a snapshot of the conversation history, oldest first.
func (a *Assistant) Turns() []Turn { return a.turns.Snapshot() }

// IsAsking reports whether a response request is currently in flight.
func (a *Assistant) IsAsking() bool { return a.askInFlight.Load() }

// IsSpeaking reports whether synthesis or playback is currently in flight.
func (a *Assistant) IsSpeaking() bool { return a.ttsInFlight.Load() }

// LastError returns a copy of the most recent turn error, or nil.
func (a *Assistant) LastError() *ErrorInfo {
	a.errMu.Lock()
	defer a.errMu.Unlock()

	if a.lastErr == nil {
		return nil
	}
	errInfo := *a.lastErr
	return &errInfo
}

// ClearError discards the most recent turn error.
func (a *Assistant) ClearError() {
	a.errMu.Lock()
	defer a.errMu.Unlock()
	a.lastErr = nil
}

// HandleTurn runs one full conversation turn for the captured transcript.
// The transcript is trimmed before use; an empty one fails the turn
// without contacting the responder. A successful ask appends the
// user/assistant pair to history before speech synthesis starts, so
// synthesis and playback failures never lose the exchange.
func (a *Assistant) HandleTurn(ctx context.Context, transcript string) error {
	a.turnMu.Lock()
	defer a.turnMu.Unlock()

	ctx, span := tracer.Start(ctx, "assistant.handle_turn",
		trace.WithAttributes(attribute.Int("transcript.length", len(transcript))),
	)
	defer span.End()

	prompt := strings.TrimSpace(transcript)
	if prompt == "" {
		errInfo := ErrorInfo{
			Kind:    ErrorSpeechRecognition,
			Message: "no speech detected",
			Details: "empty transcript received",
		}
		a.failTurn(span, errInfo, nil)
		return &errInfo
	}

	a.emitEvent(events.NewTurnStarted(prompt))

	answer, err := a.ask(ctx, prompt)
	if err != nil {
		errInfo := classifyAskError(err)
		a.failTurn(span, errInfo, err)
		return &errInfo
	}

	a.turns.appendPair(newTurn(RoleUser, prompt), newTurn(RoleAssistant, answer))
	a.emitEvent(events.NewConversationUpdated())
	a.emitEvent(events.NewAssistantResponseFinal(answer))

	if err := a.speak(ctx, answer); err != nil {
		errInfo := classifySpeakError(err)
		a.failTurn(span, errInfo, err)
		return &errInfo
	}

	a.emitEvent(events.NewTurnCompleted())
	span.SetStatus(codes.Ok, "")
	return nil
}

func (a *Assistant) ask(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.askTimeout)
	defer cancel()

	a.askInFlight.Store(true)
	a.emitEvent(events.NewAskingStateChanged(true))
	a.emitEvent(events.NewAssistantResponseStarted())
	defer func() {
		a.askInFlight.Store(false)
		a.emitEvent(events.NewAskingStateChanged(false))
	}()

	return a.responder.Ask(ctx, prompt)
}

func (a *Assistant) speak(ctx context.Context, text string) error {
	a.ttsInFlight.Store(true)
	a.emitEvent(events.NewSpeakingStateChanged(true))
	defer func() {
		a.ttsInFlight.Store(false)
		a.emitEvent(events.NewSpeakingStateChanged(false))
	}()

	// The deadline bounds only the synthesis request. Playback takes as
	// long as the audio lasts, so it runs under the caller's context.
	synthesisCtx, cancel := context.WithTimeout(ctx, a.speakTimeout)
	wav, err := a.responder.Speak(synthesisCtx, text)
	cancel()
	if err != nil {
		return err
	}

	return a.player.Play(ctx, wav)
}

func (a *Assistant) failTurn(span trace.Span, errInfo ErrorInfo, cause error) {
	a.errMu.Lock()
	a.lastErr = &errInfo
	a.errMu.Unlock()

	if cause != nil {
		span.RecordError(cause)
	}
	span.SetStatus(codes.Error, errInfo.Message)
	logger.Warn("Turn failed", "kind", string(errInfo.Kind), "message", errInfo.Message, "details", errInfo.Details)

	a.emitEvent(events.NewTurnFailed(string(errInfo.Kind), errInfo.Message))
	a.notify(errInfo)
}

func (a *Assistant) notify(errInfo ErrorInfo) {
	switch errInfo.Kind {
	case ErrorNetwork:
		a.notifier.Error("Network Error", "Please check your internet connection and try again.")
	case ErrorServer:
		a.notifier.Error("Server Error", "Our servers are experiencing issues. Please try again later.")
	case ErrorMicPermission:
		a.notifier.Error("Microphone Permission", "Please allow microphone access to use voice features.")
	case ErrorSpeechRecognition:
		a.notifier.Warning("Speech Recognition", "Could not understand speech. Please try speaking more clearly.")
	case ErrorTTS:
		a.notifier.Warning("Text-to-Speech", "Could not play audio response. The text is still available.")
	default:
		a.notifier.Error("Unknown Error", errInfo.Message)
	}
}
