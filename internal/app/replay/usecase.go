package replay

import (
	"context"
	"errors"
	"strings"

	"bunnylords/internal/app/ports"
)

var ErrInvalidRequest = errors.New("invalid replay request")

const defaultEventLimit = 100

// UseCase serves playback data: a single battle report with its full log,
// or the recent event history of a session.
type UseCase struct {
	ReportRepo ports.BattleReportRepository
	EventRepo  ports.EventRepository
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.ReportID) != "" {
		report, err := u.ReportRepo.GetByID(ctx, req.ReportID)
		if err != nil {
			return Response{}, err
		}
		return Response{Report: &report}, nil
	}

	if strings.TrimSpace(req.SessionID) == "" {
		return Response{}, ErrInvalidRequest
	}
	limit := req.Limit
	if limit <= 0 {
		limit = defaultEventLimit
	}
	events, err := u.EventRepo.ListBySessionID(ctx, req.SessionID, limit)
	if err != nil {
		return Response{}, err
	}
	reports, err := u.ReportRepo.ListBySessionID(ctx, req.SessionID, limit)
	if err != nil {
		return Response{}, err
	}
	return Response{Events: events, Reports: reports}, nil
}
