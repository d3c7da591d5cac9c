package keep

// Building is a placed instance on the base grid. At most one construction
// job is in flight; PendingLevel never drops below Level.
type Building struct {
	Def          *BuildingDef
	X            int
	Y            int
	Level        int
	Constructing bool
	Timer        float64
	Total        float64
	PendingLevel int

	// Click-gate state, only meaningful when Def.Gate.Kind == GateClickCycle.
	ClickTimer float64
	Clicks     int
}

func NewBuilding(def *BuildingDef, x, y, level int) *Building {
	return &Building{Def: def, X: x, Y: y, Level: level, PendingLevel: level}
}

func (b *Building) ID() string {
	return b.Def.ID
}

func (b *Building) CanUpgrade() bool {
	return !b.Constructing && b.Level < b.Def.DefinedMaxLevel()
}

// StartBuild begins construction toward targetLevel. The caller pays the
// cost beforehand; this only arms the timer. Invalid while already
// constructing.
func (b *Building) StartBuild(targetLevel int, buildTime float64) bool {
	if b.Constructing || targetLevel < b.Level {
		return false
	}
	b.Constructing = true
	b.PendingLevel = targetLevel
	b.Timer = buildTime
	b.Total = buildTime
	if buildTime <= 0 {
		// zero-time builds finish on the next Update
		b.Timer = 0
	}
	return true
}

// Update ticks the construction and gate timers. Returns true exactly once,
// on the tick the construction job completes.
func (b *Building) Update(dt float64) bool {
	if b.Def.Gate.Kind == GateClickCycle && !b.Constructing {
		b.ClickTimer += dt
		if period := b.Def.Gate.PeriodSeconds; period > 0 {
			for b.ClickTimer >= period {
				b.ClickTimer -= period
				b.Clicks = 0
			}
		}
	}

	if !b.Constructing {
		return false
	}
	b.Timer -= dt
	if b.Timer <= 0 {
		b.Timer = 0
		b.Constructing = false
		b.Level = b.PendingLevel
		return true
	}
	return false
}

// Click registers one gate interaction. No effect on ungated or
// under-construction buildings.
func (b *Building) Click() bool {
	if b.Def.Gate.Kind != GateClickCycle || b.Constructing {
		return false
	}
	b.Clicks++
	return true
}

// Production returns the per-tick resource output. Empty while under
// construction or while a click gate is unsatisfied for the current period.
func (b *Building) Production() map[string]float64 {
	if b.Constructing {
		return nil
	}
	if b.Def.Gate.Kind == GateClickCycle && b.Clicks < b.Def.Gate.ClickThreshold {
		return nil
	}
	return b.Def.ProductionFor(b.Level)
}

func (b *Building) Progress() float64 {
	if !b.Constructing || b.Total <= 0 {
		return 1.0
	}
	return 1.0 - b.Timer/b.Total
}
