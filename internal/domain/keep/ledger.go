package keep

// Ledger tracks per-resource amounts and capacities. Amounts are clamped to
// capacity on credit; debits fail before going negative.
type Ledger struct {
	amounts  map[string]float64
	capacity map[string]float64
}

func NewLedger(defs map[string]ResourceDef) *Ledger {
	l := &Ledger{
		amounts:  make(map[string]float64, len(defs)),
		capacity: make(map[string]float64, len(defs)),
	}
	for id, def := range defs {
		l.amounts[id] = def.StartingAmount
		l.capacity[id] = def.BaseCapacity
	}
	return l
}

func (l *Ledger) Get(id string) float64 {
	return l.amounts[id]
}

func (l *Ledger) Capacity(id string) float64 {
	return l.capacity[id]
}

func (l *Ledger) Add(id string, amount float64) {
	cur := l.amounts[id]
	next := cur + amount
	if cap, ok := l.capacity[id]; ok && next > cap {
		next = cap
	}
	l.amounts[id] = next
}

// Spend deducts a single resource. Returns false, unchanged, on insufficient
// funds.
func (l *Ledger) Spend(id string, amount float64) bool {
	if l.amounts[id] < amount {
		return false
	}
	l.amounts[id] -= amount
	return true
}

func (l *Ledger) CanAfford(cost map[string]float64) bool {
	for id, amount := range cost {
		if l.amounts[id] < amount {
			return false
		}
	}
	return true
}

// Pay deducts a full cost map atomically: either every listed resource is
// deducted or nothing is.
func (l *Ledger) Pay(cost map[string]float64) bool {
	if !l.CanAfford(cost) {
		return false
	}
	for id, amount := range cost {
		l.amounts[id] -= amount
	}
	return true
}

func (l *Ledger) AddCapacity(id string, bonus float64) {
	l.capacity[id] += bonus
}

func (l *Ledger) Amounts() map[string]float64 {
	out := make(map[string]float64, len(l.amounts))
	for id, v := range l.amounts {
		out[id] = v
	}
	return out
}

func (l *Ledger) Capacities() map[string]float64 {
	out := make(map[string]float64, len(l.capacity))
	for id, v := range l.capacity {
		out[id] = v
	}
	return out
}

// Restore overwrites the ledger from a snapshot, backfilling any resource
// the snapshot predates with its catalog defaults.
func (l *Ledger) Restore(defs map[string]ResourceDef, amounts, capacity map[string]float64) {
	l.amounts = make(map[string]float64, len(defs))
	l.capacity = make(map[string]float64, len(defs))
	for id, v := range amounts {
		l.amounts[id] = v
	}
	for id, v := range capacity {
		l.capacity[id] = v
	}
	for id, def := range defs {
		if _, ok := l.amounts[id]; !ok {
			l.amounts[id] = 0
		}
		if _, ok := l.capacity[id]; !ok {
			l.capacity[id] = def.BaseCapacity
		}
	}
}
