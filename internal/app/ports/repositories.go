package ports

import (
	"context"
	"time"

	"bunnylords/internal/domain/combat"
	"bunnylords/internal/domain/keep"
)

type SessionRepository interface {
	GetByID(ctx context.Context, sessionID string) (keep.SessionSnapshot, error)
	Create(ctx context.Context, snap keep.SessionSnapshot) error
	SaveWithVersion(ctx context.Context, snap keep.SessionSnapshot, expectedVersion int64) error
}

type BattleReportRecord struct {
	ReportID  string
	SessionID string
	StageID   string
	Victory   bool
	Ticks     int
	Result    combat.Result
	FoughtAt  time.Time
}

type BattleReportRepository interface {
	Save(ctx context.Context, report BattleReportRecord) error
	GetByID(ctx context.Context, reportID string) (BattleReportRecord, error)
	ListBySessionID(ctx context.Context, sessionID string, limit int) ([]BattleReportRecord, error)
}

type EventRepository interface {
	Append(ctx context.Context, sessionID string, events []keep.DomainEvent) error
	ListBySessionID(ctx context.Context, sessionID string, limit int) ([]keep.DomainEvent, error)
}
