package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const defaultDuration = 5 * time.Second

type CenterOption func(*Center)

// WithDefaultDuration overrides the display duration used when a
// notification does not carry its own.
func WithDefaultDuration(duration time.Duration) CenterOption {
	return func(c *Center) {
		if duration > 0 {
			c.defaultDuration = duration
		}
	}
}

// WithChangeCallback registers a callback invoked with a snapshot of the
// visible notifications after every change.
func WithChangeCallback(callback func(visible []Notification)) CenterOption {
	return func(c *Center) {
		if callback != nil {
			c.onChange = callback
		}
	}
}

// Center holds the currently visible notifications in insertion order.
// Every notification expires on its own timer and can be dismissed
// independently of the others. There is no deduplication.
type Center struct {
	mu              sync.Mutex
	visible         []Notification
	timers          map[string]*time.Timer
	closed          bool
	defaultDuration time.Duration
	onChange        func(visible []Notification)
}

var _ Notifier = (*Center)(nil)

func NewCenter(opts ...CenterOption) *Center {
	center := &Center{
		timers:          map[string]*time.Timer{},
		defaultDuration: defaultDuration,
		onChange:        func([]Notification) {},
	}
	for _, opt := range opts {
		opt(center)
	}
	return center
}

func (c *Center) Show(notification Notification) {
	if notification.ID == "" {
		notification.ID = uuid.NewString()
	}
	if notification.Duration <= 0 {
		notification.Duration = c.defaultDuration
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.visible = append(c.visible, notification)
	id := notification.ID
	c.timers[id] = time.AfterFunc(notification.Duration, func() { c.Dismiss(id) })
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.onChange(snapshot)
}

func (c *Center) Error(title, message string)   { c.Show(Notification{Kind: KindError, Title: title, Message: message}) }
func (c *Center) Success(title, message string) { c.Show(Notification{Kind: KindSuccess, Title: title, Message: message}) }
func (c *Center) Warning(title, message string) { c.Show(Notification{Kind: KindWarning, Title: title, Message: message}) }
func (c *Center) Info(title, message string)    { c.Show(Notification{Kind: KindInfo, Title: title, Message: message}) }

// Dismiss removes a single notification, whether it expired or the user
// dismissed it explicitly. Unknown IDs are ignored.
func (c *Center) Dismiss(id string) {
	c.mu.Lock()
	if timer, ok := c.timers[id]; ok {
		timer.Stop()
		delete(c.timers, id)
	}

	removed := false
	for i, notification := range c.visible {
		if notification.ID == id {
			c.visible = append(c.visible[:i], c.visible[i+1:]...)
			removed = true
			break
		}
	}
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	if removed {
		c.onChange(snapshot)
	}
}

// Visible returns a copy of the currently visible notifications in
// insertion order.
func (c *Center) Visible() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Close stops all expiry timers. Notifications shown after Close are
// absorbed.
func (c *Center) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	for id, timer := range c.timers {
		timer.Stop()
		delete(c.timers, id)
	}
	c.visible = nil
}

func (c *Center) snapshotLocked() []Notification {
	snapshot := make([]Notification, len(c.visible))
	copy(snapshot, c.visible)
	return snapshot
}
