package events

import "time"

// Kind identifies an event type. Kinds are namespaced strings such as
// "user_input.capture_started"; the full set is listed in the package
// documentation.
type Kind string

// Event is implemented by every event in this package.
type Event interface {
	Kind() Kind
	Timestamp() time.Time
}

// Base carries the kind and creation time every event shares. Events embed
// it and build it with NewBase in their constructor.
type Base struct {
	kind Kind
	at   time.Time
}

func NewBase(kind Kind) Base {
	return Base{kind: kind, at: time.Now()}
}

func (b Base) Kind() Kind { return b.kind }

// Timestamp reports when the event was created, not when it was observed.
func (b Base) Timestamp() time.Time { return b.at }
