package keep

import "time"

// DomainEvent is the persisted form of a discrete occurrence. The core
// reports occurrences as return values; the app layer turns them into
// events for the event log.
type DomainEvent struct {
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload"`
}

const (
	EventBuildingCompleted = "building_completed"
	EventTroopBatchTrained = "troop_batch_trained"
	EventResearchCompleted = "research_completed"
	EventStageCompleted    = "campaign_stage_completed"
	EventBattleResolved    = "battle_resolved"
	EventQuestClaimed      = "quest_claimed"
)
