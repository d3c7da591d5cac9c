package ports

type BattleMetrics interface {
	RecordVictory(stageID string, ticks int)
	RecordDefeat(stageID string, ticks int)
}

type CommandMetrics interface {
	RecordAccepted(kind string)
	RecordRejected(kind string)
}
