package session

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned for operations on unknown session IDs.
type ErrNotFound struct{ ID string }

func (e ErrNotFound) Error() string {
	return fmt.Sprintf("session %s not found", e.ID)
}

// Store keeps all live sessions in memory.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*State

	listenerMu sync.Mutex
	listeners  []func(sessionID string)
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*State)}
}

// Create starts a new session in the overview stage.
func (s *Store) Create() *State {
	now := time.Now()
	state := &State{
		ID:        uuid.Must(uuid.NewV7()).String(),
		CreatedAt: now,
		UpdatedAt: now,
		ViewStage: StageOverview,
	}

	s.mu.Lock()
	s.sessions[state.ID] = state
	s.mu.Unlock()

	return state.clone()
}

// Get returns a copy of the session state.
func (s *Store) Get(id string) (*State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound{ID: id}
	}
	return state.clone(), nil
}

// List returns all sessions, newest first.
func (s *Store) List() []*State {
	s.mu.RLock()
	states := make([]*State, 0, len(s.sessions))
	for _, state := range s.sessions {
		states = append(states, state.clone())
	}
	s.mu.RUnlock()

	sort.Slice(states, func(i, j int) bool {
		if !states[i].CreatedAt.Equal(states[j].CreatedAt) {
			return states[i].CreatedAt.After(states[j].CreatedAt)
		}
		return states[i].ID > states[j].ID
	})
	return states
}

// Delete removes a session.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	_, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
	}
	s.mu.Unlock()

	if !ok {
		return ErrNotFound{ID: id}
	}
	s.notifyListeners(id)
	return nil
}

// Update applies fn to the session under the lock, bumps UpdatedAt, and
// notifies listeners. An error from fn leaves the state untouched.
func (s *Store) Update(id string, fn func(*State) error) (*State, error) {
	s.mu.Lock()
	state, ok := s.sessions[id]
	if !ok {
		s.mu.Unlock()
		return nil, ErrNotFound{ID: id}
	}

	// Work on a copy so a failing fn cannot leave partial changes.
	next := state.clone()
	if err := fn(next); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	next.UpdatedAt = time.Now()
	s.sessions[id] = next
	result := next.clone()
	s.mu.Unlock()

	s.notifyListeners(id)
	return result, nil
}

// Reset clears a session back to the overview stage, dropping the
// transcript and every selection.
func (s *Store) Reset(id string) (*State, error) {
	return s.Update(id, func(state *State) error {
		state.ViewStage = StageOverview
		state.SelectedDistrict = ""
		state.SelectedQuintile = 0
		state.ClearComparison()
		state.Messages = nil
		return nil
	})
}

// AddOnChangeListener registers a callback invoked with the session ID
// after every mutation. Callbacks run synchronously; keep them short.
func (s *Store) AddOnChangeListener(fn func(sessionID string)) {
	s.listenerMu.Lock()
	defer s.listenerMu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Store) notifyListeners(id string) {
	s.listenerMu.Lock()
	listeners := make([]func(string), len(s.listeners))
	copy(listeners, s.listeners)
	s.listenerMu.Unlock()

	for _, fn := range listeners {
		fn(id)
	}
}
