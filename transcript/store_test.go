package transcript

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/marbleseoul/server/session"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func msgAt(content string, at time.Time) session.Message {
	return session.Message{
		ID:        uuid.Must(uuid.NewV7()).String(),
		Role:      session.RoleUser,
		Content:   content,
		CreatedAt: at,
	}
}

func TestAppendAndMessagesOrdered(t *testing.T) {
	store := openTestStore(t)
	base := time.Now()

	// Append out of order; reads must come back chronological.
	for _, m := range []session.Message{
		msgAt("second", base.Add(time.Second)),
		msgAt("first", base),
		msgAt("third", base.Add(2*time.Second)),
	} {
		if err := store.Append("s1", m); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	messages, err := store.Messages("s1", 0)
	if err != nil {
		t.Fatalf("Messages: %v", err)
	}
	if len(messages) != 3 {
		t.Fatalf("got %d messages", len(messages))
	}
	for i, want := range []string{"first", "second", "third"} {
		if messages[i].Content != want {
			t.Errorf("message %d = %q, want %q", i, messages[i].Content, want)
		}
	}
}

func TestMessagesLimit(t *testing.T) {
	store := openTestStore(t)
	base := time.Now()
	for i := 0; i < 5; i++ {
		if err := store.Append("s1", msgAt("m", base.Add(time.Duration(i)*time.Millisecond))); err != nil {
			t.Fatal(err)
		}
	}
	messages, err := store.Messages("s1", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(messages) != 2 {
		t.Errorf("got %d messages, want 2", len(messages))
	}
}

func TestMessagesIsolatedPerSession(t *testing.T) {
	store := openTestStore(t)
	now := time.Now()
	if err := store.Append("s1", msgAt("mine", now)); err != nil {
		t.Fatal(err)
	}
	// A session ID sharing the prefix must not leak into s1's scan.
	if err := store.Append("s1x", msgAt("other", now)); err != nil {
		t.Fatal(err)
	}

	messages, err := store.Messages("s1", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(messages) != 1 || messages[0].Content != "mine" {
		t.Errorf("s1 transcript = %+v", messages)
	}
}

func TestSessionIDs(t *testing.T) {
	store := openTestStore(t)
	now := time.Now()
	for _, id := range []string{"a", "b", "a"} {
		if err := store.Append(id, msgAt("x", now)); err != nil {
			t.Fatal(err)
		}
		now = now.Add(time.Millisecond)
	}

	ids, err := store.SessionIDs()
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 2 {
		t.Errorf("SessionIDs = %v", ids)
	}
}

func TestDeleteSession(t *testing.T) {
	store := openTestStore(t)
	now := time.Now()
	if err := store.Append("gone", msgAt("x", now)); err != nil {
		t.Fatal(err)
	}
	if err := store.Append("kept", msgAt("y", now)); err != nil {
		t.Fatal(err)
	}

	if err := store.DeleteSession("gone"); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	messages, err := store.Messages("gone", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(messages) != 0 {
		t.Errorf("deleted session still has %d messages", len(messages))
	}
	kept, _ := store.Messages("kept", 0)
	if len(kept) != 1 {
		t.Error("delete removed another session's messages")
	}
}
