package assistant

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one conversation entry. Immutable once created.
type Turn struct {
	ID        string
	Role      Role
	Content   string
	Timestamp time.Time
}

func newTurn(role Role, content string) Turn {
	return Turn{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// turns is the append-only conversation history. Under normal success it
// only ever grows by matched user/assistant pairs, committed in one
// critical section so a consumer never observes the user turn without its
// answer.
type turns struct {
	mu    sync.RWMutex
	turns []Turn
}

func (t *turns) push(turn Turn) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.turns = append(t.turns, turn)
}

func (t *turns) appendPair(user, assistant Turn) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.turns = append(t.turns, user, assistant)
}

func (t *turns) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.turns)
}

// Snapshot returns a point-in-time copy of the history.
func (t *turns) Snapshot() []Turn {
	t.mu.RLock()
	defer t.mu.RUnlock()

	snapshot := []Turn{}
	if err := copier.Copy(&snapshot, &t.turns); err != nil {
		snapshot = make([]Turn, len(t.turns))
		copy(snapshot, t.turns)
	}
	return snapshot
}

// Values is an iterator that goes over all the stored turns starting from
// the earliest towards the latest.
func (t *turns) Values(yield func(Turn) bool) {
	for _, turn := range t.Snapshot() {
		if !yield(turn) {
			return
		}
	}
}
