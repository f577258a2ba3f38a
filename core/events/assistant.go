package events

const (
	// KindAssistantResponseStarted identifies dispatch of the model request.
	KindAssistantResponseStarted Kind = "assistant_response.started"
	// KindAssistantResponseFinal identifies arrival of the model answer.
	KindAssistantResponseFinal Kind = "assistant_response.final"
	// KindAssistantPlaybackStarted identifies the start of answer playback.
	KindAssistantPlaybackStarted Kind = "assistant_playback.started"
	// KindAssistantPlaybackEnded identifies the end of answer playback.
	KindAssistantPlaybackEnded Kind = "assistant_playback.ended"
)

// AssistantResponseStarted marks dispatch of the model request.
type AssistantResponseStarted struct{ Base }

// NewAssistantResponseStarted creates a response started event.
func NewAssistantResponseStarted() AssistantResponseStarted {
	return AssistantResponseStarted{Base: NewBase(KindAssistantResponseStarted)}
}

// AssistantResponseFinal carries the model's textual answer.
type AssistantResponseFinal struct {
	Base
	Answer string
}

// NewAssistantResponseFinal creates a response final event.
func NewAssistantResponseFinal(answer string) AssistantResponseFinal {
	return AssistantResponseFinal{Base: NewBase(KindAssistantResponseFinal), Answer: answer}
}

// AssistantPlaybackStarted marks the start of spoken answer playback.
type AssistantPlaybackStarted struct{ Base }

// NewAssistantPlaybackStarted creates a playback started event.
func NewAssistantPlaybackStarted() AssistantPlaybackStarted {
	return AssistantPlaybackStarted{Base: NewBase(KindAssistantPlaybackStarted)}
}

// AssistantPlaybackEnded marks the end of spoken answer playback.
type AssistantPlaybackEnded struct{ Base }

// NewAssistantPlaybackEnded creates a playback ended event.
func NewAssistantPlaybackEnded() AssistantPlaybackEnded {
	return AssistantPlaybackEnded{Base: NewBase(KindAssistantPlaybackEnded)}
}
