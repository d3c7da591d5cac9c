package memory

import (
	"context"

	"bunnylords/internal/domain/keep"
)

type EventRepo struct {
	store *Store
}

func NewEventRepo(store *Store) EventRepo {
	return EventRepo{store: store}
}

func (r EventRepo) Append(_ context.Context, sessionID string, events []keep.DomainEvent) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.events[sessionID] = append(r.store.events[sessionID], events...)
	return nil
}

// ListBySessionID returns the newest events up to limit, oldest first.
func (r EventRepo) ListBySessionID(_ context.Context, sessionID string, limit int) ([]keep.DomainEvent, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	all := r.store.events[sessionID]
	if limit > 0 && len(all) > limit {
		all = all[len(all)-limit:]
	}
	out := make([]keep.DomainEvent, len(all))
	copy(out, all)
	return out, nil
}
