package events

const (
	// KindTurnStarted identifies admission of a new voice turn.
	KindTurnStarted Kind = "turn_state.started"
	// KindTurnCompleted identifies successful turn completion.
	KindTurnCompleted Kind = "turn_state.completed"
	// KindTurnFailed identifies a classified turn failure.
	KindTurnFailed Kind = "turn_state.failed"
	// KindAskingStateChanged identifies model request in-flight flag changes.
	KindAskingStateChanged Kind = "turn_state.asking_changed"
	// KindSpeakingStateChanged identifies synthesis in-flight flag changes.
	KindSpeakingStateChanged Kind = "turn_state.speaking_changed"
	// KindConversationUpdated identifies conversation history changes.
	KindConversationUpdated Kind = "turn_state.conversation_updated"
)

// TurnStarted marks admission of a new voice turn.
type TurnStarted struct {
	Base
	Prompt string
}

// NewTurnStarted creates a turn started event.
func NewTurnStarted(prompt string) TurnStarted {
	return TurnStarted{Base: NewBase(KindTurnStarted), Prompt: prompt}
}

// TurnCompleted marks successful completion of the current turn.
type TurnCompleted struct{ Base }

// NewTurnCompleted creates a turn completed event.
func NewTurnCompleted() TurnCompleted {
	return TurnCompleted{Base: NewBase(KindTurnCompleted)}
}

// TurnFailed carries the classification of a turn failure. Reason is the
// error kind the failure was classified as.
type TurnFailed struct {
	Base
	Reason  string
	Message string
}

// NewTurnFailed creates a turn failed event.
func NewTurnFailed(reason, message string) TurnFailed {
	return TurnFailed{Base: NewBase(KindTurnFailed), Reason: reason, Message: message}
}

// AskingStateChanged carries the model request in-flight flag.
type AskingStateChanged struct {
	Base
	InFlight bool
}

// NewAskingStateChanged creates an asking state change event.
func NewAskingStateChanged(inFlight bool) AskingStateChanged {
	return AskingStateChanged{Base: NewBase(KindAskingStateChanged), InFlight: inFlight}
}

// SpeakingStateChanged carries the synthesis in-flight flag.
type SpeakingStateChanged struct {
	Base
	InFlight bool
}

// NewSpeakingStateChanged creates a speaking state change event.
func NewSpeakingStateChanged(inFlight bool) SpeakingStateChanged {
	return SpeakingStateChanged{Base: NewBase(KindSpeakingStateChanged), InFlight: inFlight}
}

// ConversationUpdated signals that conversation history changed and
// consumers should re-read their snapshot.
type ConversationUpdated struct{ Base }

// NewConversationUpdated creates a conversation updated event.
func NewConversationUpdated() ConversationUpdated {
	return ConversationUpdated{Base: NewBase(KindConversationUpdated)}
}
