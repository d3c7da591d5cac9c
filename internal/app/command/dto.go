package command

import "bunnylords/internal/domain/keep"

type IntentType string

const (
	IntentPlaceBuilding   IntentType = "place_building"
	IntentUpgradeBuilding IntentType = "upgrade_building"
	IntentClickBuilding   IntentType = "click_building"
	IntentStartTraining   IntentType = "start_training"
	IntentCancelTraining  IntentType = "cancel_training"
	IntentStartResearch   IntentType = "start_research"
	IntentCancelResearch  IntentType = "cancel_research"
	IntentClaimQuest      IntentType = "claim_quest"
	IntentEquipItem       IntentType = "equip_item"
	IntentUnequipItem     IntentType = "unequip_item"
)

type ResultCode string

const (
	ResultOK       ResultCode = "OK"
	ResultRejected ResultCode = "REJECTED"
)

// Intent carries the parameters of every command kind; each kind reads only
// its own fields.
type Intent struct {
	Type       IntentType `json:"type"`
	BuildingID string     `json:"building_id,omitempty"`
	X          int        `json:"x,omitempty"`
	Y          int        `json:"y,omitempty"`
	TroopID    string     `json:"troop_id,omitempty"`
	Count      int        `json:"count,omitempty"`
	QueueIndex int        `json:"queue_index,omitempty"`
	ResearchID string     `json:"research_id,omitempty"`
	QuestID    string     `json:"quest_id,omitempty"`
	HeroID     string     `json:"hero_id,omitempty"`
	ItemID     string     `json:"item_id,omitempty"`
	Slot       string     `json:"slot,omitempty"`
}

type Request struct {
	SessionID string
	Intent    Intent
}

type Response struct {
	ResultCode ResultCode           `json:"result_code"`
	Reason     string               `json:"reason,omitempty"`
	State      keep.SessionSnapshot `json:"state"`
}
