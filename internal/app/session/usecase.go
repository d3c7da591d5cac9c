package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"bunnylords/internal/app/ports"
	"bunnylords/internal/domain/keep"
)

var ErrInvalidRequest = errors.New("invalid session request")

// UseCase creates a fresh game session seeded from the catalog and persists
// its first snapshot.
type UseCase struct {
	TxManager   ports.TxManager
	SessionRepo ports.SessionRepository
	Catalog     *keep.Catalog
	NewID       func() string
	Now         func() time.Time
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if u.Catalog == nil || u.TxManager == nil {
		return Response{}, ErrInvalidRequest
	}

	newID := u.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}

	s := keep.NewSession(newID(), u.Catalog)
	s.UpdatedAt = nowFn()

	snap := s.Snapshot()
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		return u.SessionRepo.Create(txCtx, snap)
	})
	if err != nil {
		return Response{}, err
	}
	return Response{SessionID: s.ID, State: snap}, nil
}
