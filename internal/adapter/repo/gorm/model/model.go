package model

import "time"

// Hand-written row types for the three tables in migrations/. Regenerate
// with tools/modelgen after a schema change if the columns drift.

type GameSession struct {
	SessionID string    `gorm:"column:session_id;primaryKey"`
	Snapshot  []byte    `gorm:"column:snapshot;type:jsonb"`
	Version   int64     `gorm:"column:version"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (GameSession) TableName() string { return "game_sessions" }

type BattleReport struct {
	ReportID  string    `gorm:"column:report_id;primaryKey"`
	SessionID string    `gorm:"column:session_id;index"`
	StageID   string    `gorm:"column:stage_id"`
	Victory   bool      `gorm:"column:victory"`
	Ticks     int32     `gorm:"column:ticks"`
	Result    []byte    `gorm:"column:result;type:jsonb"`
	FoughtAt  time.Time `gorm:"column:fought_at"`
}

func (BattleReport) TableName() string { return "battle_reports" }

type DomainEvent struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement"`
	SessionID  string    `gorm:"column:session_id;index"`
	Type       string    `gorm:"column:type"`
	OccurredAt time.Time `gorm:"column:occurred_at"`
	Payload    []byte    `gorm:"column:payload;type:jsonb"`
}

func (DomainEvent) TableName() string { return "domain_events" }
