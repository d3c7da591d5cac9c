package gormrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"bunnylords/internal/adapter/repo/gorm/model"
	"bunnylords/internal/app/ports"
	"bunnylords/internal/domain/combat"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BattleReportRepo struct {
	db *gorm.DB
}

func NewBattleReportRepo(db *gorm.DB) BattleReportRepo {
	return BattleReportRepo{db: db}
}

func (r BattleReportRepo) Save(ctx context.Context, report ports.BattleReportRecord) error {
	b, err := json.Marshal(report.Result)
	if err != nil {
		return fmt.Errorf("encode report %s: %w", report.ReportID, err)
	}
	m := model.BattleReport{
		ReportID:  report.ReportID,
		SessionID: report.SessionID,
		StageID:   report.StageID,
		Victory:   report.Victory,
		Ticks:     int32(report.Ticks),
		Result:    b,
		FoughtAt:  report.FoughtAt,
	}
	return getDBFromCtx(ctx, r.db).Create(&m).Error
}

func (r BattleReportRepo) GetByID(ctx context.Context, reportID string) (ports.BattleReportRecord, error) {
	var m model.BattleReport
	if err := getDBFromCtx(ctx, r.db).Where("report_id = ?", reportID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.BattleReportRecord{}, ports.ErrNotFound
		}
		return ports.BattleReportRecord{}, err
	}
	return recordFromRow(m)
}

// ListBySessionID returns the newest reports up to limit, oldest first.
func (r BattleReportRepo) ListBySessionID(ctx context.Context, sessionID string, limit int) ([]ports.BattleReportRecord, error) {
	rows := []model.BattleReport{}
	query := getDBFromCtx(ctx, r.db).
		Where("session_id = ?", sessionID).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{{Column: clause.Column{Name: "fought_at"}, Desc: true}},
		})
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]ports.BattleReportRecord, len(rows))
	for i, row := range rows {
		record, err := recordFromRow(row)
		if err != nil {
			return nil, err
		}
		out[len(rows)-1-i] = record
	}
	return out, nil
}

func recordFromRow(m model.BattleReport) (ports.BattleReportRecord, error) {
	var result combat.Result
	if len(m.Result) > 0 {
		if err := json.Unmarshal(m.Result, &result); err != nil {
			return ports.BattleReportRecord{}, fmt.Errorf("decode report %s: %w", m.ReportID, err)
		}
	}
	return ports.BattleReportRecord{
		ReportID:  m.ReportID,
		SessionID: m.SessionID,
		StageID:   m.StageID,
		Victory:   m.Victory,
		Ticks:     int(m.Ticks),
		Result:    result,
		FoughtAt:  m.FoughtAt,
	}, nil
}
