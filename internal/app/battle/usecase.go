package battle

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"bunnylords/internal/app/ports"
	"bunnylords/internal/domain/combat"
	"bunnylords/internal/domain/keep"
)

var (
	ErrInvalidRequest = errors.New("invalid battle request")
	ErrUnknownStage   = errors.New("unknown stage")
)

// UseCase fights one campaign stage: it gates on unlock order and required
// power, resolves the auto-battle, settles losses and rewards back into the
// session, and files a replayable report.
type UseCase struct {
	TxManager   ports.TxManager
	SessionRepo ports.SessionRepository
	ReportRepo  ports.BattleReportRepository
	EventRepo   ports.EventRepository
	Catalog     *keep.Catalog
	Metrics     ports.BattleMetrics
	NewID       func() string
	NewRand     func() *rand.Rand
	Now         func() time.Time
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.SessionID) == "" || u.Catalog == nil {
		return Response{}, ErrInvalidRequest
	}
	stage, ok := u.Catalog.Stages[req.StageID]
	if !ok {
		return Response{}, ErrUnknownStage
	}

	newID := u.NewID
	if newID == nil {
		newID = uuid.NewString
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

		// rule gates are recoverable no-ops, not errors
		if !s.Campaign.IsUnlocked(u.Catalog, stage.ID) {
			out = Response{ResultCode: ResultRejected, Reason: "stage locked", State: snap}
			return nil
		}
		if s.Army.TotalCount() == 0 {
			out = Response{ResultCode: ResultRejected, Reason: "no troops to field", State: snap}
			return nil
		}
		if s.ArmyPower() < stage.RequiredPower {
			out = Response{ResultCode: ResultRejected, Reason: "army power below stage requirement", State: snap}
			return nil
		}

		bonuses := s.Research.Bonuses(u.Catalog.Research)
		engine := combat.Engine{
			Troops:  u.Catalog.Troops,
			Heroes:  s.HeroTotalStats(),
			Bonuses: bonuses,
		}
		if u.NewRand != nil {
			engine.Rand = u.NewRand()
		}
		result := engine.Resolve(s.Army.Counts(), stage.Enemies)

		for troopID, lost := range result.PlayerLosses {
			s.Army.Remove(troopID, lost)
		}

		rewards := map[string]float64{}
		heroXP := 0
		if result.Victory {
			for resource, amount := range stage.Rewards {
				if resource == keep.RewardXP {
					heroXP = int(amount * (1 + bonuses.HeroXP))
					continue
				}
				s.Ledger.Add(resource, amount)
				rewards[resource] = amount
			}
			for _, h := range s.Heroes {
				h.AddXP(heroXP)
			}
			s.Campaign.CompleteStage(stage.ID)
			s.Quests.CampaignCompleted()
		}
		s.Quests.SetArmyPower(s.ArmyPower())

		expected := s.Version
		s.Version++
		s.UpdatedAt = now
		updated := s.Snapshot()
		if err := u.SessionRepo.SaveWithVersion(txCtx, updated, expected); err != nil {
			return err
		}

		report := ports.BattleReportRecord{
			ReportID:  newID(),
			SessionID: req.SessionID,
			StageID:   stage.ID,
			Victory:   result.Victory,
			Ticks:     result.Ticks,
			Result:    result,
			FoughtAt:  now,
		}
		if err := u.ReportRepo.Save(txCtx, report); err != nil {
			return err
		}

		events := []keep.DomainEvent{{
			Type: keep.EventBattleResolved, OccurredAt: now,
			Payload: map[string]any{
				"report_id": report.ReportID,
				"stage_id":  stage.ID,
				"victory":   result.Victory,
				"ticks":     result.Ticks,
			},
		}}
		if result.Victory {
			events = append(events, keep.DomainEvent{
				Type: keep.EventStageCompleted, OccurredAt: now,
				Payload: map[string]any{"stage_id": stage.ID},
			})
		}
		if err := u.EventRepo.Append(txCtx, req.SessionID, events); err != nil {
			return err
		}

		out = Response{
			ResultCode: ResultOK,
			ReportID:   report.ReportID,
			Result:     result,
			Rewards:    rewards,
			HeroXP:     heroXP,
			State:      updated,
		}
		return nil
	})
	if err != nil {
		return Response{}, err
	}

	if u.Metrics != nil && out.ResultCode == ResultOK {
		if out.Result.Victory {
			u.Metrics.RecordVictory(stage.ID, out.Result.Ticks)
		} else {
			u.Metrics.RecordDefeat(stage.ID, out.Result.Ticks)
		}
	}
	return out, nil
}
