package memory

import (
	"context"

	"bunnylords/internal/app/ports"
	"bunnylords/internal/domain/keep"
)

type SessionRepo struct {
	store *Store
}

func NewSessionRepo(store *Store) SessionRepo {
	return SessionRepo{store: store}
}

func (r SessionRepo) GetByID(_ context.Context, sessionID string) (keep.SessionSnapshot, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	snap, ok := r.store.sessions[sessionID]
	if !ok {
		return keep.SessionSnapshot{}, ports.ErrNotFound
	}
	return snap, nil
}

func (r SessionRepo) Create(_ context.Context, snap keep.SessionSnapshot) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, exists := r.store.sessions[snap.SessionID]; exists {
		return ports.ErrConflict
	}
	r.store.sessions[snap.SessionID] = snap
	return nil
}

func (r SessionRepo) SaveWithVersion(_ context.Context, snap keep.SessionSnapshot, expectedVersion int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	current, ok := r.store.sessions[snap.SessionID]
	if !ok {
		return ports.ErrNotFound
	}
	if current.StateVersion != expectedVersion {
		return ports.ErrConflict
	}
	r.store.sessions[snap.SessionID] = snap
	return nil
}
