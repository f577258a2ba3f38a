package assistant

import "testing"

func TestTurnsAppendPair(t *testing.T) {
	store := &turns{}
	store.appendPair(newTurn(RoleUser, "hello"), newTurn(RoleAssistant, "hi"))
	store.appendPair(newTurn(RoleUser, "bye"), newTurn(RoleAssistant, "goodbye"))

	if store.Len() != 4 {
		t.Fatalf("expected 4 turns, got %d", store.Len())
	}

	snapshot := store.Snapshot()
	for i, expected := range []struct {
		role    Role
		content string
	}{
		{RoleUser, "hello"},
		{RoleAssistant, "hi"},
		{RoleUser, "bye"},
		{RoleAssistant, "goodbye"},
	} {
		if snapshot[i].Role != expected.role || snapshot[i].Content != expected.content {
			t.Fatalf("expected turn %d to be %s %q, got %s %q",
				i, expected.role, expected.content, snapshot[i].Role, snapshot[i].Content)
		}
	}
}

func TestTurnsSnapshotIsDetached(t *testing.T) {
	store := &turns{}
	store.push(newTurn(RoleAssistant, "greeting"))

	snapshot := store.Snapshot()
	snapshot[0].Content = "mutated"

	if got := store.Snapshot()[0].Content; got != "greeting" {
		t.Fatalf("expected stored content %q, got %q", "greeting", got)
	}
}

func TestTurnsHaveIdentity(t *testing.T) {
	first := newTurn(RoleUser, "hello")
	second := newTurn(RoleUser, "hello")

	if first.ID == second.ID {
		t.Fatal("expected distinct turn IDs")
	}
	if first.Timestamp.IsZero() {
		t.Fatal("expected a non-zero timestamp")
	}
}

func TestTurnsValuesIteration(t *testing.T) {
	store := &turns{}
	store.push(newTurn(RoleUser, "one"))
	store.push(newTurn(RoleAssistant, "two"))

	var contents []string
	for turn := range store.Values {
		contents = append(contents, turn.Content)
	}

	if len(contents) != 2 || contents[0] != "one" || contents[1] != "two" {
		t.Fatalf("expected iteration order [one two], got %v", contents)
	}
}
