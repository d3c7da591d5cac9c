package tick

import (
	"context"
	"errors"
	"strings"
	"time"

	"bunnylords/internal/app/ports"
	"bunnylords/internal/domain/keep"
)

var (
	ErrInvalidRequest = errors.New("invalid tick request")
	ErrInvalidDT      = errors.New("dt out of range")
)

// MaxDTSeconds caps one advance call. Catching up after a long absence is
// the caller's job, issued as several ticks.
const MaxDTSeconds = 86400

// UseCase advances the simulation clock of one session and persists the
// result under optimistic concurrency.
type UseCase struct {
	TxManager   ports.TxManager
	SessionRepo ports.SessionRepository
	EventRepo   ports.EventRepository
	Catalog     *keep.Catalog
	Now         func() time.Time
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.SessionID) == "" {
		return Response{}, ErrInvalidRequest
	}
	if req.DT <= 0 || req.DT > MaxDTSeconds {
		return Response{}, ErrInvalidDT
	}

	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	now := nowFn()

	var out Response
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		snap, err := u.SessionRepo.GetByID(txCtx, req.SessionID)
		if err != nil {
			return err
		}
		s := keep.RestoreSession(u.Catalog, snap)

		report := s.Advance(req.DT)

		expected := s.Version
		s.Version++
		s.UpdatedAt = now
		updated := s.Snapshot()
		if err := u.SessionRepo.SaveWithVersion(txCtx, updated, expected); err != nil {
			return err
		}

		if events := eventsFromReport(report, now); len(events) > 0 {
			if err := u.EventRepo.Append(txCtx, req.SessionID, events); err != nil {
				return err
			}
		}

		out = Response{State: updated, Report: report}
		return nil
	})
	if err != nil {
		return Response{}, err
	}
	return out, nil
}

func eventsFromReport(report keep.TickReport, now time.Time) []keep.DomainEvent {
	var events []keep.DomainEvent
	for _, b := range report.BuildingsCompleted {
		events = append(events, keep.DomainEvent{
			Type: keep.EventBuildingCompleted, OccurredAt: now,
			Payload: map[string]any{"building_id": b.BuildingID, "level": b.Level, "x": b.X, "y": b.Y},
		})
	}
	for _, tr := range report.TroopsTrained {
		events = append(events, keep.DomainEvent{
			Type: keep.EventTroopBatchTrained, OccurredAt: now,
			Payload: map[string]any{"troop_id": tr.TroopID, "count": tr.Count},
		})
	}
	for _, id := range report.ResearchCompleted {
		events = append(events, keep.DomainEvent{
			Type: keep.EventResearchCompleted, OccurredAt: now,
			Payload: map[string]any{"research_id": id},
		})
	}
	return events
}
