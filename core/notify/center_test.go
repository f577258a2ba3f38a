package notify

import (
	"testing"
	"time"
)

func TestNopAbsorbsEverything(t *testing.T) {
	var notifier Notifier = Nop{}

	notifier.Show(Notification{Title: "ignored"})
	notifier.Error("ignored", "")
	notifier.Success("ignored", "")
	notifier.Warning("ignored", "")
	notifier.Info("ignored", "")
}

func TestCenterKeepsInsertionOrder(t *testing.T) {
	center := NewCenter()
	defer center.Close()

	center.Error("first", "")
	center.Warning("second", "")
	center.Info("third", "")

	visible := center.Visible()
	if len(visible) != 3 {
		t.Fatalf("expected 3 visible notifications, got %d", len(visible))
	}

	titles := []string{visible[0].Title, visible[1].Title, visible[2].Title}
	if titles[0] != "first" || titles[1] != "second" || titles[2] != "third" {
		t.Fatalf("expected insertion order [first second third], got %v", titles)
	}

	if visible[0].Kind != KindError || visible[1].Kind != KindWarning || visible[2].Kind != KindInfo {
		t.Fatalf("expected kinds to be preserved, got %v", visible)
	}
}

func TestCenterDismissRemovesOnlyTarget(t *testing.T) {
	center := NewCenter()
	defer center.Close()

	center.Error("keep", "")
	center.Error("drop", "")

	visible := center.Visible()
	center.Dismiss(visible[1].ID)

	remaining := center.Visible()
	if len(remaining) != 1 || remaining[0].Title != "keep" {
		t.Fatalf("expected only %q to remain, got %v", "keep", remaining)
	}

	// Dismissing an unknown ID is a no-op.
	center.Dismiss("not-a-real-id")
	if got := len(center.Visible()); got != 1 {
		t.Fatalf("expected 1 visible notification, got %d", got)
	}
}

func TestCenterExpiresNotificationsIndependently(t *testing.T) {
	changes := make(chan []Notification, 16)
	center := NewCenter(
		WithDefaultDuration(10*time.Millisecond),
		WithChangeCallback(func(visible []Notification) {
			changes <- visible
		}),
	)
	defer center.Close()

	center.Show(Notification{Kind: KindInfo, Title: "short"})
	center.Show(Notification{Kind: KindInfo, Title: "long", Duration: time.Minute})

	deadline := time.After(time.Second)
	for {
		select {
		case visible := <-changes:
			if len(visible) == 1 {
				if visible[0].Title != "long" {
					t.Fatalf("expected %q to outlive %q, got %v", "long", "short", visible)
				}
				return
			}
		case <-deadline:
			t.Fatalf("expected the short notification to expire, still visible: %v", center.Visible())
		}
	}
}

func TestCenterShowAfterCloseIsAbsorbed(t *testing.T) {
	center := NewCenter()
	center.Close()

	center.Error("ignored", "")
	if got := len(center.Visible()); got != 0 {
		t.Fatalf("expected no visible notifications after close, got %d", got)
	}
}
