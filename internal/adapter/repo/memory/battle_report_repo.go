package memory

import (
	"context"

	"bunnylords/internal/app/ports"
)

type BattleReportRepo struct {
	store *Store
}

func NewBattleReportRepo(store *Store) BattleReportRepo {
	return BattleReportRepo{store: store}
}

func (r BattleReportRepo) Save(_ context.Context, report ports.BattleReportRecord) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, exists := r.store.reports[report.ReportID]; exists {
		return ports.ErrConflict
	}
	r.store.reports[report.ReportID] = report
	r.store.byOwner[report.SessionID] = append(r.store.byOwner[report.SessionID], report.ReportID)
	return nil
}

func (r BattleReportRepo) GetByID(_ context.Context, reportID string) (ports.BattleReportRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	report, ok := r.store.reports[reportID]
	if !ok {
		return ports.BattleReportRecord{}, ports.ErrNotFound
	}
	return report, nil
}

// ListBySessionID returns the newest reports up to limit, oldest first.
func (r BattleReportRepo) ListBySessionID(_ context.Context, sessionID string, limit int) ([]ports.BattleReportRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	ids := r.store.byOwner[sessionID]
	if limit > 0 && len(ids) > limit {
		ids = ids[len(ids)-limit:]
	}
	out := make([]ports.BattleReportRecord, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.store.reports[id])
	}
	return out, nil
}
