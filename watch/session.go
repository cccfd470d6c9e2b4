package watch

import (
	"errors"
	"log/slog"

	"github.com/marbleseoul/server/session"
)

// SessionWatcher notifies subscribers when a session's state changes.
// Store callbacks run under the store's lock, so changes are handed to a
// buffered channel and fanned out from a separate goroutine.
type SessionWatcher struct {
	*BaseWatcher
	store   *session.Store
	eventCh chan string
}

func NewSessionWatcher(store *session.Store) *SessionWatcher {
	w := &SessionWatcher{
		BaseWatcher: NewBaseWatcher("se"),
		store:       store,
		eventCh:     make(chan string, 16),
	}
	store.AddOnChangeListener(w.onSessionChange)
	return w
}

func (w *SessionWatcher) Start() {
	go w.eventLoop()
	slog.Info("SessionWatcher started")
}

func (w *SessionWatcher) Stop() {
	w.Cancel()
	slog.Info("SessionWatcher stopped")
}

// onSessionChange runs under the session store's lock; it must not block.
func (w *SessionWatcher) onSessionChange(sessionID string) {
	if w.Context().Err() != nil {
		return
	}
	select {
	case w.eventCh <- sessionID:
	default:
		slog.Warn("session change event dropped (buffer full)", "session", sessionID)
	}
}

func (w *SessionWatcher) eventLoop() {
	for {
		select {
		case <-w.Context().Done():
			return
		case id := <-w.eventCh:
			w.notifyChange(id)
		}
	}
}

type sessionChangedParams struct {
	ID      string           `json:"id"`
	Session *session.Summary `json:"session,omitempty"`
	Deleted bool             `json:"deleted,omitempty"`
}

func (w *SessionWatcher) notifyChange(sessionID string) {
	if !w.HasSubscriptions() {
		return
	}

	var summary *session.Summary
	deleted := false
	state, err := w.store.Get(sessionID)
	var notFound session.ErrNotFound
	switch {
	case err == nil:
		s := state.Summarize()
		summary = &s
	case errors.As(err, &notFound):
		deleted = true
	default:
		slog.Error("failed to load session for notification", "session", sessionID, "error", err)
		return
	}

	w.NotifyAll("session.changed", func(sub *Subscription) any {
		if sub.SessionID != "" && sub.SessionID != sessionID {
			return nil
		}
		return sessionChangedParams{ID: sub.ID, Session: summary, Deleted: deleted}
	})
}

// Subscribe registers a subscriber, optionally scoped to one session,
// and returns the subscription ID.
func (w *SessionWatcher) Subscribe(notifier Notifier, sessionID string) string {
	id := w.GenerateID()
	w.AddSubscription(&Subscription{ID: id, Notifier: notifier, SessionID: sessionID})
	return id
}
