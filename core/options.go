package assistant

import (
	"time"

	"github.com/mlisica/voiceloop/core/events"
	"github.com/mlisica/voiceloop/core/notify"
)

type AssistantOption func(*Assistant)

// WithNotifier wires the notifier user-facing errors are surfaced through.
// Defaults to the no-op notifier.
func WithNotifier(notifier notify.Notifier) AssistantOption {
	return func(a *Assistant) {
		if notifier != nil {
			a.notifier = notifier
		}
	}
}

// WithPlayer wires the audio playback backend used for spoken responses.
// Without one, synthesized audio is silently discarded.
func WithPlayer(player Player) AssistantOption {
	return func(a *Assistant) {
		a.player.set(player)
	}
}

// WithAskTimeout overrides the deadline on a single response request.
func WithAskTimeout(timeout time.Duration) AssistantOption {
	return func(a *Assistant) {
		if timeout > 0 {
			a.askTimeout = timeout
		}
	}
}

// WithSpeakTimeout overrides the deadline on a single synthesis request.
func WithSpeakTimeout(timeout time.Duration) AssistantOption {
	return func(a *Assistant) {
		if timeout > 0 {
			a.speakTimeout = timeout
		}
	}
}

// WithGreeting seeds the conversation with an assistant turn shown before
// any user input.
func WithGreeting(message string) AssistantOption {
	return func(a *Assistant) {
		if message != "" {
			a.turns.push(newTurn(RoleAssistant, message))
		}
	}
}

// WithEventCallback registers a callback for turn lifecycle events.
func WithEventCallback(callback func(events.Event)) AssistantOption {
	return func(a *Assistant) {
		if callback != nil {
			a.emitEvent = eventEmitter(callback)
		}
	}
}
