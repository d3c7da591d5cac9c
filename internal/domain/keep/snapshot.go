package keep

import "time"

// SessionSnapshot is the persisted session-state contract. Writing it and
// restoring it reproduces the simulation state for every field here; save
// entries referencing ids missing from the catalog are skipped per entry,
// never fatal.

type ResourceSnapshot struct {
	Amounts  map[string]float64 `json:"amounts"`
	Capacity map[string]float64 `json:"capacity"`
}

type BuildingSnapshot struct {
	ID           string  `json:"id"`
	X            int     `json:"x"`
	Y            int     `json:"y"`
	Level        int     `json:"level"`
	Constructing bool    `json:"constructing"`
	Timer        float64 `json:"timer"`
	Total        float64 `json:"total"`
	PendingLevel int     `json:"pending_level"`
	ClickTimer   float64 `json:"click_timer"`
	Clicks       int     `json:"clicks"`
}

type TrainingJobSnapshot struct {
	TroopID     string  `json:"troop_id"`
	Total       int     `json:"total_count"`
	Trained     int     `json:"trained_count"`
	TimePerUnit float64 `json:"time_per_unit"`
	Timer       float64 `json:"timer"`
}

type HeroSnapshot struct {
	ID        string            `json:"id"`
	Level     int               `json:"level"`
	XP        int               `json:"xp"`
	Equipment map[string]string `json:"equipment"`
}

type ResearchSnapshot struct {
	Completed []string `json:"completed"`
	Current   string   `json:"current,omitempty"`
	Timer     float64  `json:"timer"`
	Total     float64  `json:"total_time"`
}

type QuestSnapshot struct {
	Progress  int       `json:"progress"`
	Claimed   bool      `json:"claimed"`
	LastClaim time.Time `json:"last_claim_time"`
}

type SessionSnapshot struct {
	SessionID         string                   `json:"session_id"`
	Version           string                   `json:"version"`
	SavedAt           time.Time                `json:"saved_at"`
	CastleLevel       int                      `json:"castle_level"`
	Resources         ResourceSnapshot         `json:"resources"`
	Buildings         []BuildingSnapshot       `json:"buildings"`
	Army              map[string]int           `json:"army"`
	TrainingQueue     []TrainingJobSnapshot    `json:"training_queue"`
	Heroes            []HeroSnapshot           `json:"heroes"`
	Inventory         []string                 `json:"inventory"`
	CampaignCompleted []string                 `json:"campaign_completed"`
	Research          ResearchSnapshot         `json:"research"`
	Quests            map[string]QuestSnapshot `json:"quests"`
	ProductionTimer   float64                  `json:"production_timer"`
	StateVersion      int64                    `json:"state_version"`
}

func (s *Session) Snapshot() SessionSnapshot {
	snap := SessionSnapshot{
		SessionID:   s.ID,
		Version:     SnapshotVersion,
		SavedAt:     s.UpdatedAt,
		CastleLevel: s.CastleLevel(),
		Resources: ResourceSnapshot{
			Amounts:  s.Ledger.Amounts(),
			Capacity: s.Ledger.Capacities(),
		},
		Army:              s.Army.Counts(),
		Inventory:         s.Inventory.IDs(),
		CampaignCompleted: s.Campaign.CompletedIDs(),
		Research: ResearchSnapshot{
			Completed: s.Research.CompletedIDs(),
			Current:   s.Research.Current,
			Timer:     s.Research.Timer,
			Total:     s.Research.Total,
		},
		Quests:          make(map[string]QuestSnapshot),
		ProductionTimer: s.ProductionTimer,
		StateVersion:    s.Version,
	}
	for _, b := range s.Buildings {
		snap.Buildings = append(snap.Buildings, BuildingSnapshot{
			ID: b.ID(), X: b.X, Y: b.Y, Level: b.Level,
			Constructing: b.Constructing, Timer: b.Timer, Total: b.Total,
			PendingLevel: b.PendingLevel, ClickTimer: b.ClickTimer, Clicks: b.Clicks,
		})
	}
	for _, j := range s.Training.Jobs() {
		snap.TrainingQueue = append(snap.TrainingQueue, TrainingJobSnapshot{
			TroopID: j.TroopID, Total: j.Total, Trained: j.Trained,
			TimePerUnit: j.TimePerUnit, Timer: j.Timer,
		})
	}
	for _, h := range s.Heroes {
		hs := HeroSnapshot{ID: h.ID(), Level: h.Level, XP: h.XP, Equipment: map[string]string{}}
		for slot, item := range h.Equipment {
			if item != nil {
				hs.Equipment[slot] = item.ID
			}
		}
		snap.Heroes = append(snap.Heroes, hs)
	}
	for id, q := range s.Quests.Quests() {
		snap.Quests[id] = QuestSnapshot{Progress: q.Progress, Claimed: q.Claimed, LastClaim: q.LastClaim}
	}
	return snap
}

// RestoreSession rebuilds a session from a snapshot against the current
// catalog. Best-effort: entries with ids the catalog no longer knows are
// dropped silently.
func RestoreSession(cat *Catalog, snap SessionSnapshot) *Session {
	s := &Session{
		ID:              snap.SessionID,
		Catalog:         cat,
		Ledger:          NewLedger(cat.Resources),
		Army:            NewArmy(),
		Training:        NewTrainingQueue(),
		Inventory:       NewInventory(),
		Research:        NewResearchTree(),
		Quests:          NewQuestLog(cat.Quests),
		Campaign:        NewCampaignProgress(),
		ProductionTimer: snap.ProductionTimer,
		Version:         snap.StateVersion,
		UpdatedAt:       snap.SavedAt,
	}

	s.Ledger.Restore(cat.Resources, snap.Resources.Amounts, snap.Resources.Capacity)

	for _, bs := range snap.Buildings {
		def, ok := cat.Buildings[bs.ID]
		if !ok {
			continue
		}
		b := NewBuilding(def, bs.X, bs.Y, bs.Level)
		b.Constructing = bs.Constructing
		b.Timer = bs.Timer
		b.Total = bs.Total
		b.PendingLevel = bs.PendingLevel
		if b.PendingLevel < b.Level {
			b.PendingLevel = b.Level
		}
		b.ClickTimer = bs.ClickTimer
		b.Clicks = bs.Clicks
		s.Buildings = append(s.Buildings, b)
	}

	s.Army.Restore(cat.Troops, snap.Army)

	jobs := make([]TrainingJob, 0, len(snap.TrainingQueue))
	for _, js := range snap.TrainingQueue {
		jobs = append(jobs, TrainingJob{
			TroopID: js.TroopID, Total: js.Total, Trained: js.Trained,
			TimePerUnit: js.TimePerUnit, Timer: js.Timer,
		})
	}
	s.Training.Restore(cat.Troops, jobs)

	for _, hs := range snap.Heroes {
		def, ok := cat.Heroes[hs.ID]
		if !ok {
			continue
		}
		h := NewHero(def, hs.Level)
		h.XP = hs.XP
		for slot, itemID := range hs.Equipment {
			if item, ok := cat.Equipment[itemID]; ok {
				h.Equipment[slot] = item
			}
		}
		s.Heroes = append(s.Heroes, h)
	}

	s.Inventory.Restore(cat.Equipment, snap.Inventory)
	s.Campaign.Restore(snap.CampaignCompleted)
	s.Research.Restore(snap.Research.Completed, snap.Research.Current, snap.Research.Timer, snap.Research.Total)
	if s.Research.Current != "" {
		if _, ok := cat.Research[s.Research.Current]; !ok {
			s.Research.Current = ""
			s.Research.Timer = 0
			s.Research.Total = 0
		}
	}
	for id, qs := range snap.Quests {
		s.Quests.Restore(id, qs.Progress, qs.Claimed, qs.LastClaim)
	}

	return s
}
