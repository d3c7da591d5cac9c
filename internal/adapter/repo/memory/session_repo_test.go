package memory

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"bunnylords/internal/app/ports"
	"bunnylords/internal/domain/keep"
)

func TestSessionRepo_VersionedSave(t *testing.T) {
	store := NewStore()
	repo := NewSessionRepo(store)
	ctx := context.Background()

	snap := keep.SessionSnapshot{SessionID: "session-1", StateVersion: 1}
	if err := repo.Create(ctx, snap); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if err := repo.Create(ctx, snap); !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("duplicate create: expected ErrConflict, got %v", err)
	}

	snap.StateVersion = 2
	if err := repo.SaveWithVersion(ctx, snap, 1); err != nil {
		t.Fatalf("SaveWithVersion error: %v", err)
	}
	// a stale writer still expects version 1
	if err := repo.SaveWithVersion(ctx, snap, 1); !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("stale save: expected ErrConflict, got %v", err)
	}

	got, err := repo.GetByID(ctx, "session-1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.StateVersion != 2 {
		t.Fatalf("expected version 2 persisted, got %d", got.StateVersion)
	}
}

func TestSessionRepo_NotFound(t *testing.T) {
	repo := NewSessionRepo(NewStore())
	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := repo.SaveWithVersion(context.Background(), keep.SessionSnapshot{SessionID: "missing"}, 1); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on save, got %v", err)
	}
}

func TestBattleReportRepo_LimitKeepsNewest(t *testing.T) {
	store := NewStore()
	repo := NewBattleReportRepo(store)
	ctx := context.Background()

	for _, id := range []string{"r1", "r2", "r3"} {
		if err := repo.Save(ctx, ports.BattleReportRecord{ReportID: id, SessionID: "session-1"}); err != nil {
			t.Fatalf("Save %s error: %v", id, err)
		}
	}

	// the newest two, oldest first, same window shape as the event repo
	got, err := repo.ListBySessionID(ctx, "session-1", 2)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 2 || got[0].ReportID != "r2" || got[1].ReportID != "r3" {
		t.Fatalf("unexpected window: %+v", got)
	}
}

func TestStore_ConcurrentCreateAndTxSave(t *testing.T) {
	store := NewStore()
	repo := NewSessionRepo(store)
	tx := NewTxManager(store)
	ctx := context.Background()

	if err := repo.Create(ctx, keep.SessionSnapshot{SessionID: "shared", StateVersion: 1}); err != nil {
		t.Fatalf("seed create: %v", err)
	}

	done := make(chan error, 2)
	go func() {
		for i := 0; i < 200; i++ {
			if err := repo.Create(ctx, keep.SessionSnapshot{SessionID: fmt.Sprintf("s-%d", i), StateVersion: 1}); err != nil {
				done <- err
				return
			}
		}
		done <- nil
	}()
	go func() {
		version := int64(1)
		for i := 0; i < 200; i++ {
			err := tx.RunInTx(ctx, func(txCtx context.Context) error {
				snap, err := repo.GetByID(txCtx, "shared")
				if err != nil {
					return err
				}
				snap.StateVersion = version + 1
				return repo.SaveWithVersion(txCtx, snap, version)
			})
			if err != nil {
				done <- err
				return
			}
			version++
		}
		done <- nil
	}()
	for i := 0; i < 2; i++ {
		if err := <-done; err != nil {
			t.Fatalf("concurrent access: %v", err)
		}
	}

	got, err := repo.GetByID(ctx, "shared")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.StateVersion != 201 {
		t.Fatalf("expected 200 versioned saves, got version %d", got.StateVersion)
	}
}

func TestEventRepo_LimitKeepsNewest(t *testing.T) {
	store := NewStore()
	repo := NewEventRepo(store)
	ctx := context.Background()

	events := []keep.DomainEvent{
		{Type: "a"}, {Type: "b"}, {Type: "c"},
	}
	if err := repo.Append(ctx, "session-1", events); err != nil {
		t.Fatalf("Append error: %v", err)
	}
	got, err := repo.ListBySessionID(ctx, "session-1", 2)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 2 || got[0].Type != "b" || got[1].Type != "c" {
		t.Fatalf("unexpected window: %+v", got)
	}
}

var (
	_ ports.SessionRepository      = SessionRepo{}
	_ ports.BattleReportRepository = BattleReportRepo{}
	_ ports.EventRepository        = EventRepo{}
	_ ports.TxManager              = TxManager{}
)
