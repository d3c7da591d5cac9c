package combat

import (
	"math/rand"
	"sort"

	"bunnylords/internal/domain/keep"
)

// MaxTicks bounds the battle loop so low-damage-vs-high-hp compositions
// cannot run away.
const MaxTicks = 100

// Each hero contributes 2% of its atk/def as a multiplicative player bonus.
const heroStatRate = 0.02

const (
	advantageMult = 1.30
	penaltyMult   = 0.75
)

// Event is one replayable battle-log entry. The log records resulting
// damage values, not the RNG seed, so playback is exact even though
// resolution itself has a random spread.
type Event struct {
	Tick         int          `json:"tick"`
	Type         string       `json:"type"`
	Attacker     string       `json:"attacker,omitempty"`
	AttackerID   string       `json:"attacker_id,omitempty"`
	AttackerSide Side         `json:"attacker_side,omitempty"`
	Defender     string       `json:"defender,omitempty"`
	DefenderID   string       `json:"defender_id,omitempty"`
	DefenderSide Side         `json:"defender_side,omitempty"`
	Damage       int          `json:"damage,omitempty"`
	Killed       int          `json:"killed,omitempty"`
	Target       string       `json:"target,omitempty"`
	Player       []GroupCount `json:"player,omitempty"`
	Enemy        []GroupCount `json:"enemy,omitempty"`
	Victory      bool         `json:"victory,omitempty"`
}

type GroupCount struct {
	TroopID string `json:"id"`
	Name    string `json:"name"`
	Count   int    `json:"count"`
}

type Result struct {
	Victory      bool           `json:"victory"`
	Log          []Event        `json:"log"`
	PlayerUnits  []Unit         `json:"player_units"`
	EnemyUnits   []Unit         `json:"enemy_units"`
	PlayerLosses map[string]int `json:"player_losses"`
	EnemyLosses  map[string]int `json:"enemy_losses"`
	Ticks        int            `json:"ticks"`
}

// Engine resolves one battle synchronously. Resolve runs to completion in a
// single call and hands back the full log for later playback; it never
// blocks on the frame loop. Rand is injectable so tests can pin the spread.
type Engine struct {
	Troops  map[string]*keep.TroopDef
	Heroes  []keep.Stats
	Bonuses keep.Bonuses
	Rand    *rand.Rand
}

func (e Engine) buildPlayerUnits(army map[string]int) []*Unit {
	heroAtkBonus := 0.0
	heroDefBonus := 0.0
	for _, h := range e.Heroes {
		heroAtkBonus += h.Atk * heroStatRate
		heroDefBonus += h.Def * heroStatRate
	}

	var units []*Unit
	for _, troopID := range sortedIDs(army) {
		count := army[troopID]
		if count <= 0 {
			continue
		}
		def, ok := e.Troops[troopID]
		if !ok {
			continue
		}
		stats := def.Stats
		mult := e.Bonuses.TroopStatMult
		stats.HP *= 1 + mult.HP
		stats.Atk *= 1 + mult.Atk
		stats.Def *= 1 + mult.Def
		stats.Speed *= 1 + mult.Speed
		stats.Atk *= 1 + heroAtkBonus
		stats.Def *= 1 + heroDefBonus
		units = append(units, newUnit(def, count, stats, SidePlayer))
	}
	return units
}

func (e Engine) buildEnemyUnits(army map[string]int) []*Unit {
	var units []*Unit
	for _, troopID := range sortedIDs(army) {
		count := army[troopID]
		if count <= 0 {
			continue
		}
		def, ok := e.Troops[troopID]
		if !ok {
			continue
		}
		units = append(units, newUnit(def, count, def.Stats, SideEnemy))
	}
	return units
}

// Resolve runs the full auto-battle. Victory requires the enemy wiped with
// at least one player unit standing; a mutual wipe or a tick-limit timeout
// with enemies alive is a defeat.
func (e Engine) Resolve(playerArmy, enemyArmy map[string]int) Result {
	rng := e.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}

	pUnits := e.buildPlayerUnits(playerArmy)
	eUnits := e.buildEnemyUnits(enemyArmy)

	var log []Event
	log = append(log, Event{
		Tick: 0, Type: "start",
		Player: groupCounts(pUnits),
		Enemy:  groupCounts(eUnits),
	})

	pInitial := initialCounts(pUnits)
	eInitial := initialCounts(eUnits)

	// Research traps fire once, before any unit acts.
	if trap := e.Bonuses.TrapDamage; trap > 0 {
		for _, eu := range eUnits {
			dmg := eu.MaxHP * trap
			eu.TakeDamage(dmg)
			log = append(log, Event{Tick: 0, Type: "trap", Target: eu.Name, Damage: int(dmg)})
		}
	}

	// Turn order is fixed for the whole battle: every unit from both sides,
	// fastest first. It is not re-sorted as units die.
	order := make([]*Unit, 0, len(pUnits)+len(eUnits))
	order = append(order, pUnits...)
	order = append(order, eUnits...)
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].Speed > order[j].Speed
	})

	tick := 0
	for tick < MaxTicks {
		tick++
		pAlive := aliveUnits(pUnits)
		eAlive := aliveUnits(eUnits)
		if len(pAlive) == 0 || len(eAlive) == 0 {
			break
		}

		for _, unit := range order {
			if !unit.Alive() {
				continue
			}
			targets := eAlive
			if unit.Side == SideEnemy {
				targets = pAlive
			}
			if len(targets) == 0 {
				break
			}

			target := pickTarget(unit, targets)
			damage := e.attackDamage(rng, unit, target)
			killed := target.TakeDamage(damage)

			log = append(log, Event{
				Tick: tick, Type: "attack",
				Attacker: unit.Name, AttackerID: unit.TroopID, AttackerSide: unit.Side,
				Defender: target.Name, DefenderID: target.TroopID, DefenderSide: target.Side,
				Damage: int(damage), Killed: killed,
			})

			// Refresh alive lists so a group wiped mid-tick neither acts
			// nor gets targeted for the rest of the tick.
			pAlive = aliveUnits(pUnits)
			eAlive = aliveUnits(eUnits)
			if len(pAlive) == 0 || len(eAlive) == 0 {
				break
			}
		}
	}

	pAlive := aliveUnits(pUnits)
	eAlive := aliveUnits(eUnits)
	victory := len(pAlive) > 0 && len(eAlive) == 0

	log = append(log, Event{Tick: tick, Type: "end", Victory: victory})

	return Result{
		Victory:      victory,
		Log:          log,
		PlayerUnits:  snapshotUnits(pUnits),
		EnemyUnits:   snapshotUnits(eUnits),
		PlayerLosses: lossMap(pInitial, pUnits),
		EnemyLosses:  lossMap(eInitial, eUnits),
		Ticks:        tick,
	}
}

// pickTarget prefers groups of the attacker's strong-vs type and
// focus-fires the one with the lowest pooled hp; with no advantaged group
// alive, the whole list is fair game.
func pickTarget(attacker *Unit, targets []*Unit) *Unit {
	advantaged := strongTarget(attacker.Type)
	var pool []*Unit
	for _, t := range targets {
		if t.Type == advantaged {
			pool = append(pool, t)
		}
	}
	if len(pool) == 0 {
		pool = targets
	}
	best := pool[0]
	for _, t := range pool[1:] {
		if t.TotalHP < best.TotalHP {
			best = t
		}
	}
	return best
}

// attackDamage: group damage scales with surviving members, defense soaks
// half its value, then the advantage multiplier and a ±10% spread apply.
func (e Engine) attackDamage(rng *rand.Rand, attacker, defender *Unit) float64 {
	base := attacker.Atk * float64(attacker.Count)
	net := base - defender.Def*0.5
	if net < 1 {
		net = 1
	}
	if defender.Type == strongTarget(attacker.Type) {
		net *= advantageMult
	} else if strongTarget(defender.Type) == attacker.Type {
		net *= penaltyMult
	}
	spread := 0.9 + rng.Float64()*0.2
	return net * spread
}

func aliveUnits(units []*Unit) []*Unit {
	var out []*Unit
	for _, u := range units {
		if u.Alive() {
			out = append(out, u)
		}
	}
	return out
}

func groupCounts(units []*Unit) []GroupCount {
	out := make([]GroupCount, 0, len(units))
	for _, u := range units {
		out = append(out, GroupCount{TroopID: u.TroopID, Name: u.Name, Count: u.Count})
	}
	return out
}

func initialCounts(units []*Unit) map[string]int {
	out := make(map[string]int, len(units))
	for _, u := range units {
		out[u.TroopID] = u.Count
	}
	return out
}

func lossMap(initial map[string]int, units []*Unit) map[string]int {
	out := map[string]int{}
	for _, u := range units {
		if lost := initial[u.TroopID] - u.Count; lost > 0 {
			out[u.TroopID] = lost
		}
	}
	return out
}

func snapshotUnits(units []*Unit) []Unit {
	out := make([]Unit, 0, len(units))
	for _, u := range units {
		out = append(out, *u)
	}
	return out
}

func sortedIDs(army map[string]int) []string {
	out := make([]string, 0, len(army))
	for id := range army {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
