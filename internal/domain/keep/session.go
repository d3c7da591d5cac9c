package keep

import (
	"sort"
	"time"
)

// Session is the aggregate owning all mutable simulation state for one game.
// It is single-threaded by design: an external driver calls Advance once per
// frame and the command methods in between, always from the same goroutine.
type Session struct {
	ID        string
	Catalog   *Catalog
	Ledger    *Ledger
	Buildings []*Building
	Army      *Army
	Training  *TrainingQueue
	Heroes    []*Hero
	Inventory *Inventory
	Research  *ResearchTree
	Quests    *QuestLog
	Campaign  *CampaignProgress

	// Accumulates frame time toward the next whole production tick.
	ProductionTimer float64

	Version   int64
	UpdatedAt time.Time
}

// NewSession seeds a fresh game: ledger from the resource catalog, the
// castle placed mid-grid, one of every hero in the catalog.
func NewSession(id string, cat *Catalog) *Session {
	s := &Session{
		ID:        id,
		Catalog:   cat,
		Ledger:    NewLedger(cat.Resources),
		Army:      NewArmy(),
		Training:  NewTrainingQueue(),
		Inventory: NewInventory(),
		Research:  NewResearchTree(),
		Quests:    NewQuestLog(cat.Quests),
		Campaign:  NewCampaignProgress(),
		Version:   1,
	}
	if castle, ok := cat.Buildings[CastleID]; ok {
		s.Buildings = append(s.Buildings, NewBuilding(castle, GridCols/2-1, GridRows/2-1, 1))
	}
	for _, id := range sortedHeroIDs(cat.Heroes) {
		s.Heroes = append(s.Heroes, NewHero(cat.Heroes[id], 1))
	}
	return s
}

type BuildingCompletion struct {
	BuildingID string `json:"building_id"`
	Level      int    `json:"level"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
}

// TickReport is the event surface of one Advance call. The orchestrator
// fans these out however it likes; the core never pushes onto a bus.
type TickReport struct {
	BuildingsCompleted []BuildingCompletion `json:"buildings_completed,omitempty"`
	TroopsTrained      []TrainingCompletion `json:"troops_trained,omitempty"`
	ResearchCompleted  []string             `json:"research_completed,omitempty"`
}

func (r TickReport) Empty() bool {
	return len(r.BuildingsCompleted) == 0 && len(r.TroopsTrained) == 0 && len(r.ResearchCompleted) == 0
}

// Advance runs one frame of the simulation: construction timers, resource
// production, training, research, then quest progress.
func (s *Session) Advance(dt float64) TickReport {
	var report TickReport
	if dt <= 0 {
		return report
	}

	bonuses := s.Research.Bonuses(s.Catalog.Research)

	for _, b := range s.Buildings {
		if b.Update(dt) {
			report.BuildingsCompleted = append(report.BuildingsCompleted, BuildingCompletion{
				BuildingID: b.ID(), Level: b.Level, X: b.X, Y: b.Y,
			})
			s.Quests.BuildingCompleted(b.ID(), b.Level)
		}
	}

	// Production is credited once per whole elapsed tick so a large dt
	// yields the same totals as many small ones.
	s.ProductionTimer += dt
	for s.ProductionTimer >= ProductionTickSeconds {
		s.ProductionTimer -= ProductionTickSeconds
		s.applyProduction(bonuses)
	}

	completions := s.Training.Update(dt, s.Army)
	for _, c := range completions {
		s.Quests.TroopsTrained(c.Count)
	}
	report.TroopsTrained = completions

	if id, done := s.Research.Update(dt); done {
		report.ResearchCompleted = append(report.ResearchCompleted, id)
		s.Quests.ResearchCompleted()
		// Flat capacity effects apply once, at completion; the raised
		// capacity is then persisted verbatim.
		if def, ok := s.Catalog.Research[id]; ok {
			for resource, amount := range def.Effect.CapacityBonus {
				s.Ledger.AddCapacity(resource, amount)
			}
		}
	}

	s.Quests.SetArmyPower(s.ArmyPower())
	return report
}

func (s *Session) applyProduction(bonuses Bonuses) {
	for _, b := range s.Buildings {
		for resource, amount := range b.Production() {
			s.Ledger.Add(resource, amount*(1+bonuses.ProductionMult[resource]))
		}
	}
}

// BuildingAt returns the building occupying a grid cell.
func (s *Session) BuildingAt(x, y int) *Building {
	for _, b := range s.Buildings {
		if b.X == x && b.Y == y {
			return b
		}
	}
	return nil
}

func (s *Session) findBuilding(defID string) *Building {
	for _, b := range s.Buildings {
		if b.ID() == defID {
			return b
		}
	}
	return nil
}

// CastleLevel is 0 with no castle placed, which blocks every gated action.
func (s *Session) CastleLevel() int {
	if castle := s.findBuilding(CastleID); castle != nil {
		return castle.Level
	}
	return 0
}

func (s *Session) AcademyLevel() int {
	if academy := s.findBuilding(AcademyID); academy != nil && !academy.Constructing {
		return academy.Level
	}
	return 0
}

// TrainingSpeedMult combines the barracks level bonus with the aggregated
// research training-speed bonus.
func (s *Session) TrainingSpeedMult() float64 {
	mult := 1.0
	if barracks := s.findBuilding(BarracksID); barracks != nil && !barracks.Constructing {
		if data, ok := barracks.Def.LevelData(barracks.Level); ok && data.TrainingSpeed > 0 {
			mult = data.TrainingSpeed
		}
	}
	bonuses := s.Research.Bonuses(s.Catalog.Research)
	return mult * (1 + bonuses.TrainingSpeed)
}

func (s *Session) ArmyPower() int {
	return s.Army.Power(s.Catalog.Troops)
}

// PlaceBuilding pays the level-1 cost and starts construction on an empty
// cell. Unique buildings can exist at most once.
func (s *Session) PlaceBuilding(defID string, x, y int) (bool, string) {
	def, ok := s.Catalog.Buildings[defID]
	if !ok {
		return false, "unknown building"
	}
	if x < 0 || x >= GridCols || y < 0 || y >= GridRows {
		return false, "out of grid"
	}
	if s.BuildingAt(x, y) != nil {
		return false, "cell occupied"
	}
	if def.Unique && s.findBuilding(defID) != nil {
		return false, "already built"
	}
	if defID != CastleID && s.CastleLevel() < def.RequiresCastle {
		return false, "castle level too low"
	}
	if !s.Ledger.Pay(def.CostFor(1)) {
		return false, "not enough resources"
	}
	b := NewBuilding(def, x, y, 0)
	b.StartBuild(1, def.BuildTimeFor(1))
	s.Buildings = append(s.Buildings, b)
	return true, ""
}

// UpgradeBuilding pays the next-level cost and starts the upgrade job.
func (s *Session) UpgradeBuilding(x, y int) (bool, string) {
	b := s.BuildingAt(x, y)
	if b == nil {
		return false, "no building there"
	}
	if !b.CanUpgrade() {
		return false, "cannot upgrade"
	}
	next := b.Level + 1
	if b.ID() != CastleID && s.CastleLevel() < b.Def.RequiresCastle {
		return false, "castle level too low"
	}
	if !s.Ledger.Pay(b.Def.CostFor(next)) {
		return false, "not enough resources"
	}
	b.StartBuild(next, b.Def.BuildTimeFor(next))
	return true, ""
}

func (s *Session) ClickBuilding(x, y int) (bool, string) {
	b := s.BuildingAt(x, y)
	if b == nil {
		return false, "no building there"
	}
	if !b.Click() {
		return false, "nothing to collect"
	}
	return true, ""
}

func (s *Session) StartTraining(troopID string, count int) (bool, string) {
	def, ok := s.Catalog.Troops[troopID]
	if !ok {
		return false, "unknown troop type"
	}
	if barracks := s.findBuilding(BarracksID); barracks == nil || barracks.Level < def.RequiresBarracks {
		return false, "barracks level too low"
	}
	if ok, reason := s.Training.CanTrain(s.Catalog.Troops, s.Ledger, troopID, count); !ok {
		return false, reason
	}
	if !s.Training.Start(s.Catalog.Troops, s.Ledger, troopID, count, s.TrainingSpeedMult()) {
		return false, "not enough resources"
	}
	return true, ""
}

func (s *Session) CancelTraining(index int) (bool, string) {
	if !s.Training.Cancel(s.Catalog.Troops, s.Ledger, index) {
		return false, "no such job"
	}
	return true, ""
}

func (s *Session) StartResearch(id string) (bool, string) {
	return s.Research.Start(s.Catalog.Research, s.Ledger, id, s.AcademyLevel())
}

func (s *Session) CancelResearch() (bool, string) {
	if !s.Research.Cancel(s.Catalog.Research, s.Ledger) {
		return false, "nothing in progress"
	}
	return true, ""
}

func (s *Session) ClaimQuest(id string, now time.Time) (bool, string) {
	return s.Quests.Claim(id, s.Ledger, now)
}

// EquipItem moves an item from the inventory into a hero slot; a displaced
// item goes back to the inventory.
func (s *Session) EquipItem(heroID, itemID string) (bool, string) {
	hero := s.heroByID(heroID)
	if hero == nil {
		return false, "unknown hero"
	}
	item := s.Inventory.Remove(itemID)
	if item == nil {
		return false, "item not in inventory"
	}
	if displaced := hero.Equip(item); displaced != nil {
		s.Inventory.Add(displaced)
	}
	return true, ""
}

func (s *Session) UnequipItem(heroID, slot string) (bool, string) {
	hero := s.heroByID(heroID)
	if hero == nil {
		return false, "unknown hero"
	}
	item := hero.Unequip(slot)
	if item == nil {
		return false, "slot empty"
	}
	s.Inventory.Add(item)
	return true, ""
}

func (s *Session) heroByID(id string) *Hero {
	for _, h := range s.Heroes {
		if h.ID() == id {
			return h
		}
	}
	return nil
}

// HeroTotalStats collects the total stats of every hero, the shape the
// combat resolver consumes.
func (s *Session) HeroTotalStats() []Stats {
	out := make([]Stats, 0, len(s.Heroes))
	for _, h := range s.Heroes {
		out = append(out, h.TotalStats())
	}
	return out
}

func sortedHeroIDs(defs map[string]*HeroDef) []string {
	out := make([]string, 0, len(defs))
	for id := range defs {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
