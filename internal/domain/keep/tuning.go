package keep

import "time"

const (
	GridCols = 8
	GridRows = 8

	CastleID   = "castle"
	BarracksID = "barracks"
	AcademyID  = "academy"

	// One production credit per elapsed simulation second.
	ProductionTickSeconds = 1.0

	MaxTrainingJobs = 5

	XPPerLevel = 100

	ResearchRefundRate = 0.5

	DailyClaimCooldown = 24 * time.Hour

	SnapshotVersion = "1.0"
)

var EquipSlots = []string{"weapon", "armor", "helmet", "accessory"}
