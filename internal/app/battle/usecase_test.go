package battle

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"bunnylords/internal/app/ports"
	"bunnylords/internal/domain/keep"
)

func battleCatalog() *keep.Catalog {
	return &keep.Catalog{
		Resources: map[string]keep.ResourceDef{
			"gold": {ID: "gold", StartingAmount: 0, BaseCapacity: 10000},
		},
		Buildings: map[string]*keep.BuildingDef{
			keep.CastleID: {
				ID: keep.CastleID, Name: "Castle", MaxLevel: 10, Unique: true,
				Levels: map[int]keep.BuildingLevel{1: {}},
			},
		},
		Troops: map[string]*keep.TroopDef{
			"warrior_bunny": {
				ID: "warrior_bunny", Name: "Warrior Bunny", Type: keep.TroopInfantry,
				Stats: keep.Stats{HP: 100, Atk: 20, Def: 10, Speed: 5},
			},
			"scout_bunny": {
				ID: "scout_bunny", Name: "Scout Bunny", Type: keep.TroopCavalry,
				Stats: keep.Stats{HP: 40, Atk: 8, Def: 2, Speed: 8},
			},
		},
		Heroes: map[string]*keep.HeroDef{
			"general_thumper": {
				ID: "general_thumper", Name: "Thumper",
				BaseStats: keep.Stats{HP: 100, Atk: 20, Def: 15, Speed: 8},
				Growth:    keep.Stats{HP: 10, Atk: 2, Def: 1.5, Speed: 0.5},
			},
		},
		Stages: map[string]*keep.StageDef{
			"stage_1": {
				ID: "stage_1", Name: "Meadow Skirmish", UnlockNext: "stage_2",
				Enemies: map[string]int{"scout_bunny": 5},
				Rewards: map[string]float64{"gold": 50, "xp": 100},
			},
			"stage_2": {
				ID: "stage_2", Name: "Fox Den",
				Enemies:       map[string]int{"warrior_bunny": 20},
				RequiredPower: 5000,
			},
		},
		FirstStage: "stage_1",
	}
}

func battleFixture(t *testing.T) (UseCase, *battleSessionStore, *reportRecorder, *battleMetrics) {
	t.Helper()
	cat := battleCatalog()
	s := keep.NewSession("session-1", cat)
	s.Army.Add("warrior_bunny", 10)

	repo := &battleSessionStore{snap: s.Snapshot()}
	reports := &reportRecorder{}
	metrics := &battleMetrics{}
	uc := UseCase{
		TxManager:   passTx{},
		SessionRepo: repo,
		ReportRepo:  reports,
		EventRepo:   &battleEventRecorder{},
		Catalog:     cat,
		Metrics:     metrics,
		NewID:       func() string { return "report-1" },
		NewRand:     func() *rand.Rand { return rand.New(rand.NewSource(1)) },
		Now:         func() time.Time { return time.Unix(1700000000, 0) },
	}
	return uc, repo, reports, metrics
}

func TestUseCase_VictorySettlesRewards(t *testing.T) {
	uc, repo, reports, metrics := battleFixture(t)

	out, err := uc.Execute(context.Background(), Request{SessionID: "session-1", StageID: "stage_1"})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if out.ResultCode != ResultOK {
		t.Fatalf("expected OK, got %s (%s)", out.ResultCode, out.Reason)
	}
	if !out.Result.Victory {
		t.Fatal("expected victory")
	}
	if out.Rewards["gold"] != 50 {
		t.Fatalf("expected gold reward, got %v", out.Rewards)
	}
	if out.HeroXP != 100 {
		t.Fatalf("expected 100 hero xp, got %d", out.HeroXP)
	}
	if out.State.Resources.Amounts["gold"] != 50 {
		t.Fatalf("gold not credited: %v", out.State.Resources.Amounts)
	}
	if len(out.State.CampaignCompleted) != 1 || out.State.CampaignCompleted[0] != "stage_1" {
		t.Fatalf("stage not completed: %v", out.State.CampaignCompleted)
	}
	if out.State.Heroes[0].Level != 2 {
		t.Fatalf("hero xp not applied: %+v", out.State.Heroes[0])
	}
	if reports.saved == nil || reports.saved.ReportID != "report-1" || !reports.saved.Victory {
		t.Fatalf("report not filed: %+v", reports.saved)
	}
	if metrics.victories != 1 {
		t.Fatalf("victory not recorded: %d", metrics.victories)
	}
	if repo.snap.StateVersion != 2 {
		t.Fatalf("session not saved with bumped version: %d", repo.snap.StateVersion)
	}
}

func TestUseCase_LockedStageIsRejectedNotError(t *testing.T) {
	uc, repo, reports, metrics := battleFixture(t)

	out, err := uc.Execute(context.Background(), Request{SessionID: "session-1", StageID: "stage_2"})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if out.ResultCode != ResultRejected || out.Reason != "stage locked" {
		t.Fatalf("expected rejection, got %s (%s)", out.ResultCode, out.Reason)
	}
	if repo.snap.StateVersion != 1 {
		t.Fatalf("rejection must not save: version %d", repo.snap.StateVersion)
	}
	if reports.saved != nil {
		t.Fatalf("rejection filed a report: %+v", reports.saved)
	}
	if metrics.victories+metrics.defeats != 0 {
		t.Fatal("rejection recorded battle metrics")
	}
}

func TestUseCase_PowerGateRejects(t *testing.T) {
	uc, repo, _, _ := battleFixture(t)

	s := keep.RestoreSession(uc.Catalog, repo.snap)
	s.Campaign.CompleteStage("stage_1")
	repo.snap = s.Snapshot()

	out, err := uc.Execute(context.Background(), Request{SessionID: "session-1", StageID: "stage_2"})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if out.ResultCode != ResultRejected || out.Reason != "army power below stage requirement" {
		t.Fatalf("expected power rejection, got %s (%s)", out.ResultCode, out.Reason)
	}
}

func TestUseCase_EmptyArmyRejects(t *testing.T) {
	uc, repo, _, _ := battleFixture(t)

	s := keep.RestoreSession(uc.Catalog, repo.snap)
	s.Army.Remove("warrior_bunny", 10)
	repo.snap = s.Snapshot()

	out, err := uc.Execute(context.Background(), Request{SessionID: "session-1", StageID: "stage_1"})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if out.ResultCode != ResultRejected || out.Reason != "no troops to field" {
		t.Fatalf("expected empty-army rejection, got %s (%s)", out.ResultCode, out.Reason)
	}
}

func TestUseCase_UnknownStage(t *testing.T) {
	uc, _, _, _ := battleFixture(t)
	if _, err := uc.Execute(context.Background(), Request{SessionID: "session-1", StageID: "stage_99"}); !errors.Is(err, ErrUnknownStage) {
		t.Fatalf("expected ErrUnknownStage, got %v", err)
	}
}

func TestUseCase_DefeatRecordedWithoutRewards(t *testing.T) {
	uc, repo, _, metrics := battleFixture(t)

	// one scout against twenty warriors is hopeless but passes every gate
	s := keep.RestoreSession(uc.Catalog, repo.snap)
	s.Army.Remove("warrior_bunny", 10)
	s.Army.Add("scout_bunny", 1)
	s.Campaign.CompleteStage("stage_1")
	repo.snap = s.Snapshot()
	uc.Catalog.Stages["stage_2"].RequiredPower = 0

	out, err := uc.Execute(context.Background(), Request{SessionID: "session-1", StageID: "stage_2"})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if out.Result.Victory {
		t.Fatal("expected defeat")
	}
	if len(out.Rewards) != 0 || out.HeroXP != 0 {
		t.Fatalf("defeat paid out: %v xp=%d", out.Rewards, out.HeroXP)
	}
	if len(out.State.CampaignCompleted) != 1 {
		t.Fatalf("defeat completed a stage: %v", out.State.CampaignCompleted)
	}
	if metrics.defeats != 1 {
		t.Fatalf("defeat not recorded: %d", metrics.defeats)
	}
}

type passTx struct{}

func (passTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type battleSessionStore struct {
	snap keep.SessionSnapshot
}

func (r *battleSessionStore) GetByID(_ context.Context, _ string) (keep.SessionSnapshot, error) {
	return r.snap, nil
}

func (r *battleSessionStore) Create(_ context.Context, _ keep.SessionSnapshot) error { return nil }

func (r *battleSessionStore) SaveWithVersion(_ context.Context, snap keep.SessionSnapshot, _ int64) error {
	r.snap = snap
	return nil
}

type reportRecorder struct {
	saved *ports.BattleReportRecord
}

func (r *reportRecorder) Save(_ context.Context, report ports.BattleReportRecord) error {
	r.saved = &report
	return nil
}

func (r *reportRecorder) GetByID(_ context.Context, _ string) (ports.BattleReportRecord, error) {
	if r.saved == nil {
		return ports.BattleReportRecord{}, ports.ErrNotFound
	}
	return *r.saved, nil
}

func (r *reportRecorder) ListBySessionID(_ context.Context, _ string, _ int) ([]ports.BattleReportRecord, error) {
	if r.saved == nil {
		return nil, nil
	}
	return []ports.BattleReportRecord{*r.saved}, nil
}

type battleEventRecorder struct {
	appended []keep.DomainEvent
}

func (r *battleEventRecorder) Append(_ context.Context, _ string, events []keep.DomainEvent) error {
	r.appended = append(r.appended, events...)
	return nil
}

func (r *battleEventRecorder) ListBySessionID(_ context.Context, _ string, _ int) ([]keep.DomainEvent, error) {
	return r.appended, nil
}

type battleMetrics struct {
	victories int
	defeats   int
}

func (m *battleMetrics) RecordVictory(string, int) { m.victories++ }
func (m *battleMetrics) RecordDefeat(string, int)  { m.defeats++ }

var (
	_ ports.TxManager              = passTx{}
	_ ports.SessionRepository      = (*battleSessionStore)(nil)
	_ ports.BattleReportRepository = (*reportRecorder)(nil)
	_ ports.EventRepository        = (*battleEventRecorder)(nil)
	_ ports.BattleMetrics          = (*battleMetrics)(nil)
)
