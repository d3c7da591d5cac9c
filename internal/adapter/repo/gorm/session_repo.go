package gormrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"bunnylords/internal/adapter/repo/gorm/model"
	"bunnylords/internal/app/ports"
	"bunnylords/internal/domain/keep"

	"gorm.io/gorm"
)

// SessionRepo persists whole session snapshots as jsonb, with an optimistic
// version column alongside for conflict detection.
type SessionRepo struct {
	db *gorm.DB
}

func NewSessionRepo(db *gorm.DB) SessionRepo {
	return SessionRepo{db: db}
}

func (r SessionRepo) GetByID(ctx context.Context, sessionID string) (keep.SessionSnapshot, error) {
	var m model.GameSession
	if err := getDBFromCtx(ctx, r.db).Where("session_id = ?", sessionID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return keep.SessionSnapshot{}, ports.ErrNotFound
		}
		return keep.SessionSnapshot{}, err
	}
	var snap keep.SessionSnapshot
	if err := json.Unmarshal(m.Snapshot, &snap); err != nil {
		return keep.SessionSnapshot{}, fmt.Errorf("decode session %s: %w", sessionID, err)
	}
	return snap, nil
}

func (r SessionRepo) Create(ctx context.Context, snap keep.SessionSnapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", snap.SessionID, err)
	}
	m := model.GameSession{
		SessionID: snap.SessionID,
		Snapshot:  b,
		Version:   snap.StateVersion,
		UpdatedAt: snap.SavedAt,
	}
	return getDBFromCtx(ctx, r.db).Create(&m).Error
}

func (r SessionRepo) SaveWithVersion(ctx context.Context, snap keep.SessionSnapshot, expectedVersion int64) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", snap.SessionID, err)
	}
	res := getDBFromCtx(ctx, r.db).Model(&model.GameSession{}).
		Where("session_id = ? AND version = ?", snap.SessionID, expectedVersion).
		Updates(map[string]any{
			"snapshot":   b,
			"version":    snap.StateVersion,
			"updated_at": snap.SavedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}
