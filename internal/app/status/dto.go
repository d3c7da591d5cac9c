package status

import "bunnylords/internal/domain/keep"

type Request struct {
	SessionID string
}

type Response struct {
	State             keep.SessionSnapshot `json:"state"`
	ArmyPower         int                  `json:"army_power"`
	TrainingSpeedMult float64              `json:"training_speed_mult"`
	ClaimableQuests   []string             `json:"claimable_quests"`
	UnlockedStages    []string             `json:"unlocked_stages"`
	Bonuses           keep.Bonuses         `json:"bonuses"`
}
