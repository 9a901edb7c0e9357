package store

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/tom26757207-cyber/line-archive/internal/session"
)

// ErrNotFound is returned when no session has the requested identifier.
var ErrNotFound = fmt.Errorf("session not found")

// archiveState is the serialized form of the whole collection, written as
// one unit on every mutation.
type archiveState struct {
	Sessions []*session.Session `json:"sessions"`
	ActiveID string             `json:"activeId,omitempty"`
}

// Archive is the ordered collection of sessions, most recently inserted
// first. All mutations are write-through: the full collection is persisted
// before the call returns, and a failed persist rolls the in-memory state
// back. A single mutex gives the single-writer discipline; no cross-process
// locking.
type Archive struct {
	mu       sync.Mutex
	blob     BlobStore
	sessions []*session.Session
	activeID string
}

// Open loads the collection from the blob store. An empty store yields an
// empty collection.
func Open(blob BlobStore) (*Archive, error) {
	a := &Archive{blob: blob}

	data, err := blob.Get()
	if err != nil {
		return nil, fmt.Errorf("load archive: %w", err)
	}
	if len(data) == 0 {
		return a, nil
	}

	var state archiveState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decode archive: %w", err)
	}
	a.sessions = state.Sessions
	a.activeID = state.ActiveID
	return a, nil
}

// Insert adds s at the front. A session with the same identifier is removed
// first (replace-and-promote), never an error. The inserted session becomes
// the active selection.
func (a *Archive) Insert(s *session.Session) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	prevSessions, prevActive := a.sessions, a.activeID

	kept := make([]*session.Session, 0, len(a.sessions)+1)
	kept = append(kept, s)
	for _, existing := range a.sessions {
		if existing.ID != s.ID {
			kept = append(kept, existing)
		}
	}
	a.sessions = kept
	a.activeID = s.ID

	if err := a.persistLocked(); err != nil {
		a.sessions, a.activeID = prevSessions, prevActive
		return err
	}
	return nil
}

// Delete removes the session with the given identifier. Deleting the active
// session clears the active selection.
func (a *Archive) Delete(id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	prevSessions, prevActive := a.sessions, a.activeID

	kept := make([]*session.Session, 0, len(a.sessions))
	found := false
	for _, s := range a.sessions {
		if s.ID == id {
			found = true
			continue
		}
		kept = append(kept, s)
	}
	if !found {
		return ErrNotFound
	}
	a.sessions = kept
	if a.activeID == id {
		a.activeID = ""
	}

	if err := a.persistLocked(); err != nil {
		a.sessions, a.activeID = prevSessions, prevActive
		return err
	}
	return nil
}

// Get returns the session with the given identifier.
func (a *Archive) Get(id string) (*session.Session, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, s := range a.sessions {
		if s.ID == id {
			return s, true
		}
	}
	return nil, false
}

// Sessions returns the collection in order, newest insertion first.
func (a *Archive) Sessions() []*session.Session {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]*session.Session, len(a.sessions))
	copy(out, a.sessions)
	return out
}

// Active returns the currently selected session, if any.
func (a *Archive) Active() (*session.Session, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, s := range a.sessions {
		if s.ID == a.activeID {
			return s, true
		}
	}
	return nil, false
}

// SetActive selects a session by identifier and persists the selection.
func (a *Archive) SetActive(id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	found := false
	for _, s := range a.sessions {
		if s.ID == id {
			found = true
			break
		}
	}
	if !found {
		return ErrNotFound
	}

	prev := a.activeID
	a.activeID = id
	if err := a.persistLocked(); err != nil {
		a.activeID = prev
		return err
	}
	return nil
}

// Len returns the number of stored sessions.
func (a *Archive) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.sessions)
}

// Persist rewrites the full collection. Callers that mutate a held session
// in place (analysis merge) use this to flush.
func (a *Archive) Persist() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.persistLocked()
}

func (a *Archive) persistLocked() error {
	state := archiveState{Sessions: a.sessions, ActiveID: a.activeID}
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode archive: %w", err)
	}
	if err := a.blob.Set(data); err != nil {
		return fmt.Errorf("persist archive: %w", err)
	}
	return nil
}
