package combat

import (
	"math"

	"bunnylords/internal/domain/keep"
)

type Side string

const (
	SidePlayer Side = "player"
	SideEnemy  Side = "enemy"
)

// strongTarget is the fixed rock-paper-scissors relation: infantry beats
// cavalry beats ranged beats infantry; siege is neutral against itself.
func strongTarget(t keep.TroopType) keep.TroopType {
	switch t {
	case keep.TroopInfantry:
		return keep.TroopCavalry
	case keep.TroopCavalry:
		return keep.TroopRanged
	case keep.TroopRanged:
		return keep.TroopInfantry
	case keep.TroopSiege:
		return keep.TroopSiege
	}
	return ""
}

// Unit is a group of identical troops sharing one pooled hp value for the
// duration of a battle. HPPerUnit is fixed at group creation and the count
// is always re-derived from the pool by ceiling division; this pooled model
// is deliberate, per-unit hp tracking would change outcomes.
type Unit struct {
	TroopID      string         `json:"troop_id"`
	Name         string         `json:"name"`
	Type         keep.TroopType `json:"type"`
	Side         Side           `json:"side"`
	Count        int            `json:"count"`
	InitialCount int            `json:"initial_count"`
	HPPerUnit    float64        `json:"hp_per_unit"`
	TotalHP      float64        `json:"total_hp"`
	MaxHP        float64        `json:"max_hp"`
	Atk          float64        `json:"atk"`
	Def          float64        `json:"def"`
	Speed        float64        `json:"speed"`
}

func newUnit(def *keep.TroopDef, count int, stats keep.Stats, side Side) *Unit {
	return &Unit{
		TroopID:      def.ID,
		Name:         def.Name,
		Type:         def.Type,
		Side:         side,
		Count:        count,
		InitialCount: count,
		HPPerUnit:    stats.HP,
		TotalHP:      stats.HP * float64(count),
		MaxHP:        stats.HP * float64(count),
		Atk:          stats.Atk,
		Def:          stats.Def,
		Speed:        stats.Speed,
	}
}

func (u *Unit) Alive() bool {
	return u.TotalHP > 0 && u.Count > 0
}

// TakeDamage drains the pool and returns how many whole units died. The
// killed count never exceeds the units that were standing.
func (u *Unit) TakeDamage(damage float64) int {
	u.TotalHP -= damage
	if u.TotalHP < 0 {
		u.TotalHP = 0
	}
	newCount := 0
	if u.TotalHP > 0 && u.HPPerUnit > 0 {
		newCount = int(math.Ceil(u.TotalHP / u.HPPerUnit))
	}
	if newCount > u.Count {
		newCount = u.Count
	}
	killed := u.Count - newCount
	u.Count = newCount
	return killed
}

func (u *Unit) HPPct() float64 {
	if u.MaxHP <= 0 {
		return 0
	}
	return u.TotalHP / u.MaxHP
}
