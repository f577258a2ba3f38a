// Package notify provides transient user-facing notifications without
// coupling the component that raises them to the component that renders
// them. Producers receive an explicit Notifier; Nop is the default so early
// lifecycle errors never crash an unwired caller.
package notify

import "time"

type Kind string

const (
	KindError   Kind = "error"
	KindSuccess Kind = "success"
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
)

// Notification is a single transient message. Each notification is
// independent: its own duration, its own dismissal, insertion order only.
type Notification struct {
	ID       string
	Kind     Kind
	Title    string
	Message  string
	Duration time.Duration
}

type Notifier interface {
	Show(notification Notification)

	Error(title, message string)
	Success(title, message string)
	Warning(title, message string)
	Info(title, message string)
}

// Nop absorbs every notification.
type Nop struct{}

var _ Notifier = Nop{}

func (Nop) Show(Notification)       {}
func (Nop) Error(string, string)    {}
func (Nop) Success(string, string)  {}
func (Nop) Warning(string, string)  {}
func (Nop) Info(string, string)     {}
