package replay

import (
	"bunnylords/internal/app/ports"
	"bunnylords/internal/domain/keep"
)

type Request struct {
	SessionID string
	ReportID  string
	Limit     int
}

type Response struct {
	Report  *ports.BattleReportRecord  `json:"report,omitempty"`
	Events  []keep.DomainEvent         `json:"events,omitempty"`
	Reports []ports.BattleReportRecord `json:"reports,omitempty"`
}
