package keep

// Army is the troop composition map. Counts never go negative and
// zero-count entries are pruned on removal.
type Army struct {
	troops map[string]int
}

func NewArmy() *Army {
	return &Army{troops: make(map[string]int)}
}

func (a *Army) Add(troopID string, count int) {
	if count <= 0 || troopID == "" {
		return
	}
	a.troops[troopID] += count
}

func (a *Army) Remove(troopID string, count int) bool {
	if count <= 0 {
		return true
	}
	cur := a.troops[troopID]
	if cur < count {
		return false
	}
	if cur == count {
		delete(a.troops, troopID)
		return true
	}
	a.troops[troopID] = cur - count
	return true
}

func (a *Army) Count(troopID string) int {
	return a.troops[troopID]
}

func (a *Army) TotalCount() int {
	total := 0
	for _, c := range a.troops {
		total += c
	}
	return total
}

func (a *Army) Power(defs map[string]*TroopDef) int {
	total := 0
	for id, count := range a.troops {
		if def, ok := defs[id]; ok {
			total += def.Power() * count
		}
	}
	return total
}

func (a *Army) Counts() map[string]int {
	out := make(map[string]int, len(a.troops))
	for id, c := range a.troops {
		out[id] = c
	}
	return out
}

// Restore replaces the composition from a save record, dropping entries
// whose troop type is no longer in the catalog.
func (a *Army) Restore(defs map[string]*TroopDef, counts map[string]int) {
	a.troops = make(map[string]int, len(counts))
	for id, c := range counts {
		if _, ok := defs[id]; ok && c > 0 {
			a.troops[id] = c
		}
	}
}
