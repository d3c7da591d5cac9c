package status

import (
	"context"
	"errors"
	"sort"
	"strings"

	"bunnylords/internal/app/ports"
	"bunnylords/internal/domain/keep"
)

var ErrInvalidRequest = errors.New("invalid status request")

// UseCase renders the full player-facing view of one session: the persisted
// state plus everything derived from it against the live catalog.
type UseCase struct {
	SessionRepo ports.SessionRepository
	Catalog     *keep.Catalog
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.SessionID) == "" {
		return Response{}, ErrInvalidRequest
	}
	snap, err := u.SessionRepo.GetByID(ctx, req.SessionID)
	if err != nil {
		return Response{}, err
	}
	s := keep.RestoreSession(u.Catalog, snap)

	unlocked := []string{}
	for id := range u.Catalog.Stages {
		if s.Campaign.IsUnlocked(u.Catalog, id) {
			unlocked = append(unlocked, id)
		}
	}
	sort.Strings(unlocked)

	return Response{
		State:             snap,
		ArmyPower:         s.ArmyPower(),
		TrainingSpeedMult: s.TrainingSpeedMult(),
		ClaimableQuests:   s.Quests.ClaimableIDs(),
		UnlockedStages:    unlocked,
		Bonuses:           s.Research.Bonuses(u.Catalog.Research),
	}, nil
}
