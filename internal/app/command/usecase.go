package command

import (
	"context"
	"errors"
	"strings"
	"time"

	"bunnylords/internal/app/ports"
	"bunnylords/internal/domain/keep"
)

var (
	ErrInvalidRequest = errors.New("invalid command request")
	ErrUnknownIntent  = errors.New("unknown intent type")
)

// UseCase applies one player command to a session. Domain rejections are not
// errors: they come back as a REJECTED result with the domain's reason so
// the transport can render them as a normal response.
type UseCase struct {
	TxManager   ports.TxManager
	SessionRepo ports.SessionRepository
	EventRepo   ports.EventRepository
	Catalog     *keep.Catalog
	Metrics     ports.CommandMetrics
	Now         func() time.Time
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.SessionID) == "" {
		return Response{}, ErrInvalidRequest
	}
	if req.Intent.Type == "" {
		return Response{}, ErrUnknownIntent
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

		ok, reason, err := u.dispatch(s, req.Intent, now)
		if err != nil {
			return err
		}
		if !ok {
			out = Response{ResultCode: ResultRejected, Reason: reason, State: snap}
			return nil
		}

		expected := s.Version
		s.Version++
		s.UpdatedAt = now
		updated := s.Snapshot()
		if err := u.SessionRepo.SaveWithVersion(txCtx, updated, expected); err != nil {
			return err
		}

		if req.Intent.Type == IntentClaimQuest {
			event := keep.DomainEvent{
				Type: keep.EventQuestClaimed, OccurredAt: now,
				Payload: map[string]any{"quest_id": req.Intent.QuestID},
			}
			if err := u.EventRepo.Append(txCtx, req.SessionID, []keep.DomainEvent{event}); err != nil {
				return err
			}
		}

		out = Response{ResultCode: ResultOK, State: updated}
		return nil
	})
	if err != nil {
		if u.Metrics != nil {
			u.Metrics.RecordRejected(string(req.Intent.Type))
		}
		return Response{}, err
	}
	if u.Metrics != nil {
		if out.ResultCode == ResultOK {
			u.Metrics.RecordAccepted(string(req.Intent.Type))
		} else {
			u.Metrics.RecordRejected(string(req.Intent.Type))
		}
	}
	return out, nil
}

func (u UseCase) dispatch(s *keep.Session, intent Intent, now time.Time) (bool, string, error) {
	switch intent.Type {
	case IntentPlaceBuilding:
		ok, reason := s.PlaceBuilding(intent.BuildingID, intent.X, intent.Y)
		return ok, reason, nil
	case IntentUpgradeBuilding:
		ok, reason := s.UpgradeBuilding(intent.X, intent.Y)
		return ok, reason, nil
	case IntentClickBuilding:
		ok, reason := s.ClickBuilding(intent.X, intent.Y)
		return ok, reason, nil
	case IntentStartTraining:
		ok, reason := s.StartTraining(intent.TroopID, intent.Count)
		return ok, reason, nil
	case IntentCancelTraining:
		ok, reason := s.CancelTraining(intent.QueueIndex)
		return ok, reason, nil
	case IntentStartResearch:
		ok, reason := s.StartResearch(intent.ResearchID)
		return ok, reason, nil
	case IntentCancelResearch:
		ok, reason := s.CancelResearch()
		return ok, reason, nil
	case IntentClaimQuest:
		ok, reason := s.ClaimQuest(intent.QuestID, now)
		return ok, reason, nil
	case IntentEquipItem:
		ok, reason := s.EquipItem(intent.HeroID, intent.ItemID)
		return ok, reason, nil
	case IntentUnequipItem:
		ok, reason := s.UnequipItem(intent.HeroID, intent.Slot)
		return ok, reason, nil
	default:
		return false, "", ErrUnknownIntent
	}
}
