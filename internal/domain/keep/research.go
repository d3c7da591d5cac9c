package keep

import "sort"

// StatMult is a per-stat multiplicative bonus (0.1 == +10%).
type StatMult struct {
	HP    float64 `json:"hp,omitempty"`
	Atk   float64 `json:"atk,omitempty"`
	Def   float64 `json:"def,omitempty"`
	Speed float64 `json:"speed,omitempty"`
}

// Bonuses is the fixed-schema aggregation of research effects. Individual
// research definitions carry one of these too; aggregation is a plain
// field-wise additive fold, so completed research always stacks additively.
type Bonuses struct {
	ProductionMult map[string]float64 `json:"production_bonus,omitempty"`
	CapacityBonus  map[string]float64 `json:"capacity_bonus,omitempty"`
	TroopStatMult  StatMult           `json:"troop_bonus,omitempty"`
	TrainingSpeed  float64            `json:"training_speed_bonus,omitempty"`
	DefenseBonus   float64            `json:"defense_bonus,omitempty"`
	TrapDamage     float64            `json:"trap_damage,omitempty"`
	HeroXP         float64            `json:"hero_xp_bonus,omitempty"`
	HeroStat       float64            `json:"hero_stat_bonus,omitempty"`
}

func (b *Bonuses) accumulate(effect Bonuses) {
	for id, mult := range effect.ProductionMult {
		if b.ProductionMult == nil {
			b.ProductionMult = map[string]float64{}
		}
		b.ProductionMult[id] += mult
	}
	for id, amount := range effect.CapacityBonus {
		if b.CapacityBonus == nil {
			b.CapacityBonus = map[string]float64{}
		}
		b.CapacityBonus[id] += amount
	}
	b.TroopStatMult.HP += effect.TroopStatMult.HP
	b.TroopStatMult.Atk += effect.TroopStatMult.Atk
	b.TroopStatMult.Def += effect.TroopStatMult.Def
	b.TroopStatMult.Speed += effect.TroopStatMult.Speed
	b.TrainingSpeed += effect.TrainingSpeed
	b.DefenseBonus += effect.DefenseBonus
	b.TrapDamage += effect.TrapDamage
	b.HeroXP += effect.HeroXP
	b.HeroStat += effect.HeroStat
}

// ResearchTree holds the append-only completed set and the single in-flight
// research job.
type ResearchTree struct {
	completed map[string]struct{}
	Current   string
	Timer     float64
	Total     float64
}

func NewResearchTree() *ResearchTree {
	return &ResearchTree{completed: make(map[string]struct{})}
}

func (t *ResearchTree) IsCompleted(id string) bool {
	_, ok := t.completed[id]
	return ok
}

func (t *ResearchTree) IsResearching() bool {
	return t.Current != ""
}

func (t *ResearchTree) CompletedCount() int {
	return len(t.completed)
}

func (t *ResearchTree) CompletedIDs() []string {
	out := make([]string, 0, len(t.completed))
	for id := range t.completed {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// IsAvailable reports whether a research can be started: not yet completed,
// academy level high enough and all prerequisites in the completed set.
func (t *ResearchTree) IsAvailable(defs map[string]*ResearchDef, id string, academyLevel int) bool {
	def, ok := defs[id]
	if !ok {
		return false
	}
	if t.IsCompleted(id) {
		return false
	}
	if def.RequiresAcademy > academyLevel {
		return false
	}
	for _, req := range def.Requires {
		if !t.IsCompleted(req) {
			return false
		}
	}
	return true
}

// Start begins a research. Fails without mutating anything if one is already
// in flight, the research is unavailable, or payment fails.
func (t *ResearchTree) Start(defs map[string]*ResearchDef, ledger *Ledger, id string, academyLevel int) (bool, string) {
	if t.IsResearching() {
		return false, "already researching"
	}
	if !t.IsAvailable(defs, id, academyLevel) {
		return false, "requirements not met"
	}
	def := defs[id]
	if !ledger.Pay(def.Cost) {
		return false, "not enough resources"
	}
	t.Current = id
	t.Timer = def.Time
	t.Total = def.Time
	return true, ""
}

// Cancel aborts the in-flight research, refunding half the paid cost.
// Fractional refund amounts are fine, the ledger holds floats.
func (t *ResearchTree) Cancel(defs map[string]*ResearchDef, ledger *Ledger) bool {
	if !t.IsResearching() {
		return false
	}
	if def, ok := defs[t.Current]; ok {
		for id, amount := range def.Cost {
			ledger.Add(id, amount*ResearchRefundRate)
		}
	}
	t.Current = ""
	t.Timer = 0
	t.Total = 0
	return true
}

// Update ticks the research timer. Returns the completed id once, on the
// tick it finishes.
func (t *ResearchTree) Update(dt float64) (string, bool) {
	if !t.IsResearching() {
		return "", false
	}
	t.Timer -= dt
	if t.Timer > 0 {
		return "", false
	}
	id := t.Current
	t.completed[id] = struct{}{}
	t.Current = ""
	t.Timer = 0
	t.Total = 0
	return id, true
}

func (t *ResearchTree) Progress() float64 {
	if !t.IsResearching() || t.Total <= 0 {
		return 0
	}
	return 1.0 - t.Timer/t.Total
}

// Bonuses folds every completed research effect into one aggregate. The
// completed set only grows, so this is recomputed on demand rather than
// cached.
func (t *ResearchTree) Bonuses(defs map[string]*ResearchDef) Bonuses {
	var out Bonuses
	for id := range t.completed {
		if def, ok := defs[id]; ok {
			out.accumulate(def.Effect)
		}
	}
	return out
}

func (t *ResearchTree) Restore(completed []string, current string, timer, total float64) {
	t.completed = make(map[string]struct{}, len(completed))
	for _, id := range completed {
		t.completed[id] = struct{}{}
	}
	t.Current = current
	t.Timer = timer
	t.Total = total
}
