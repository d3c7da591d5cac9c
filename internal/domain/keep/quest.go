package keep

import (
	"sort"
	"time"
)

// Quest track types. Counter tracks increment on occurrences; absolute
// tracks are set-to-value.
const (
	TrackBuildingComplete = "building_complete"
	TrackCastleLevel      = "castle_level"
	TrackTroopsTrained    = "troops_trained"
	TrackCampaignComplete = "campaign_complete"
	TrackResearchComplete = "research_complete"
	TrackArmyPower        = "army_power"
)

const QuestCategoryDaily = "daily"

// The "xp" reward key is reserved for hero experience and handled by the
// orchestrator, never credited to the ledger here.
const RewardXP = "xp"

type Quest struct {
	Def       *QuestDef
	Progress  int
	Claimed   bool
	LastClaim time.Time
}

func (q *Quest) Complete() bool {
	return q.Progress >= q.Def.Target
}

func (q *Quest) increment(amount int) {
	q.Progress += amount
	if q.Progress > q.Def.Target {
		q.Progress = q.Def.Target
	}
}

func (q *Quest) setProgress(value int) {
	if value > q.Def.Target {
		value = q.Def.Target
	}
	q.Progress = value
}

func (q *Quest) canClaimDaily(now time.Time) bool {
	if q.Def.Category != QuestCategoryDaily {
		return true
	}
	if q.LastClaim.IsZero() {
		return true
	}
	return now.Sub(q.LastClaim) >= DailyClaimCooldown
}

// QuestLog owns the live quest instances and their progress counters. The
// orchestrator feeds it through the typed notification methods.
type QuestLog struct {
	quests map[string]*Quest
}

func NewQuestLog(defs map[string]*QuestDef) *QuestLog {
	log := &QuestLog{quests: make(map[string]*Quest, len(defs))}
	for id, def := range defs {
		log.quests[id] = &Quest{Def: def}
	}
	return log
}

func (l *QuestLog) Get(id string) (*Quest, bool) {
	q, ok := l.quests[id]
	return q, ok
}

func (l *QuestLog) active(trackType string) []*Quest {
	var out []*Quest
	for _, q := range l.quests {
		if q.Def.TrackType == trackType && !q.Claimed {
			out = append(out, q)
		}
	}
	return out
}

func (l *QuestLog) BuildingCompleted(buildingID string, level int) {
	for _, q := range l.active(TrackBuildingComplete) {
		q.increment(1)
	}
	if buildingID == CastleID {
		for _, q := range l.active(TrackCastleLevel) {
			q.setProgress(level)
		}
	}
}

func (l *QuestLog) TroopsTrained(count int) {
	for _, q := range l.active(TrackTroopsTrained) {
		q.increment(count)
	}
}

func (l *QuestLog) CampaignCompleted() {
	for _, q := range l.active(TrackCampaignComplete) {
		q.increment(1)
	}
}

func (l *QuestLog) ResearchCompleted() {
	for _, q := range l.active(TrackResearchComplete) {
		q.increment(1)
	}
}

// SetArmyPower updates the absolute army_power tracks. Called by the
// orchestrator once per tick, not event-driven.
func (l *QuestLog) SetArmyPower(power int) {
	for _, q := range l.active(TrackArmyPower) {
		q.setProgress(power)
	}
}

// Claim converts a completed quest's rewards into ledger credits. Daily
// quests are additionally gated on a 24h cooldown since the last claim.
// Repeatable quests reset immediately for the next cycle.
func (l *QuestLog) Claim(id string, ledger *Ledger, now time.Time) (bool, string) {
	q, ok := l.quests[id]
	if !ok {
		return false, "unknown quest"
	}
	if !q.Complete() {
		return false, "quest not complete"
	}
	if q.Claimed {
		return false, "already claimed"
	}
	if !q.canClaimDaily(now) {
		return false, "daily cooldown active"
	}
	for resource, amount := range q.Def.Rewards {
		if resource == RewardXP {
			continue
		}
		ledger.Add(resource, amount)
	}
	q.Claimed = true
	q.LastClaim = now
	if q.Def.Repeatable {
		q.Progress = 0
		q.Claimed = false
	}
	return true, ""
}

func (l *QuestLog) ClaimableIDs() []string {
	var out []string
	for id, q := range l.quests {
		if q.Complete() && !q.Claimed {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

func (l *QuestLog) Quests() map[string]*Quest {
	return l.quests
}

func (l *QuestLog) Restore(id string, progress int, claimed bool, lastClaim time.Time) {
	q, ok := l.quests[id]
	if !ok {
		return
	}
	q.Progress = progress
	if q.Progress > q.Def.Target {
		q.Progress = q.Def.Target
	}
	q.Claimed = claimed
	q.LastClaim = lastClaim
}
