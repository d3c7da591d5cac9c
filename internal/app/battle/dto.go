package battle

import (
	"bunnylords/internal/domain/combat"
	"bunnylords/internal/domain/keep"
)

type ResultCode string

const (
	ResultOK       ResultCode = "OK"
	ResultRejected ResultCode = "REJECTED"
)

type Request struct {
	SessionID string
	StageID   string
}

// Response carries ResultRejected with a Reason when a rule gate blocks the
// attack; the session is untouched and no report is filed.
type Response struct {
	ResultCode ResultCode           `json:"result_code"`
	Reason     string               `json:"reason,omitempty"`
	ReportID   string               `json:"report_id,omitempty"`
	Result     combat.Result        `json:"result"`
	Rewards    map[string]float64   `json:"rewards,omitempty"`
	HeroXP     int                  `json:"hero_xp"`
	State      keep.SessionSnapshot `json:"state"`
}
