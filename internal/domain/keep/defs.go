package keep

// Definition catalogs are immutable after load. Instances hold pointers into
// the catalog; the catalog always outlives them.

type TroopType string

const (
	TroopInfantry TroopType = "infantry"
	TroopCavalry  TroopType = "cavalry"
	TroopRanged   TroopType = "ranged"
	TroopSiege    TroopType = "siege"
)

type Stats struct {
	HP    float64 `json:"hp"`
	Atk   float64 `json:"atk"`
	Def   float64 `json:"def"`
	Speed float64 `json:"speed"`
}

type ResourceDef struct {
	ID             string
	Name           string
	StartingAmount float64
	BaseCapacity   float64
}

type GateKind string

const (
	GateNone       GateKind = "none"
	GateClickCycle GateKind = "click_cycle"
)

// ProductionGate configures whether a building's production is gated on
// player interaction. With GateClickCycle the building only produces while
// it has received at least ClickThreshold clicks inside the current period;
// the click counter resets every PeriodSeconds.
type ProductionGate struct {
	Kind           GateKind
	ClickThreshold int
	PeriodSeconds  float64
}

type BuildingLevel struct {
	Cost          map[string]float64
	BuildTime     float64
	Production    map[string]float64
	TrainingSpeed float64
	Unlocks       []string
}

type BuildingDef struct {
	ID             string
	Name           string
	Category       string
	MaxLevel       int
	Unique         bool
	RequiresCastle int
	Gate           ProductionGate
	Levels         map[int]BuildingLevel
}

func (d *BuildingDef) LevelData(level int) (BuildingLevel, bool) {
	data, ok := d.Levels[level]
	return data, ok
}

func (d *BuildingDef) CostFor(level int) map[string]float64 {
	if data, ok := d.Levels[level]; ok {
		return data.Cost
	}
	return nil
}

func (d *BuildingDef) BuildTimeFor(level int) float64 {
	if data, ok := d.Levels[level]; ok {
		return data.BuildTime
	}
	return 0
}

func (d *BuildingDef) ProductionFor(level int) map[string]float64 {
	if data, ok := d.Levels[level]; ok {
		return data.Production
	}
	return nil
}

// DefinedMaxLevel is the highest level with data present. It may be below
// MaxLevel while the catalog only ships early-game levels.
func (d *BuildingDef) DefinedMaxLevel() int {
	max := 0
	for level := range d.Levels {
		if level > max {
			max = level
		}
	}
	return max
}

type TroopDef struct {
	ID               string
	Name             string
	Tier             int
	Type             TroopType
	Stats            Stats
	TrainingTime     float64
	Cost             map[string]float64
	RequiresBarracks int
}

func (d *TroopDef) Power() int {
	s := d.Stats
	return int(s.HP + s.Atk*2 + s.Def + s.Speed)
}

type HeroDef struct {
	ID        string
	Name      string
	Title     string
	Role      string
	BaseStats Stats
	Growth    Stats
}

type EquipmentDef struct {
	ID     string
	Name   string
	Slot   string
	Rarity string
	Stats  Stats
}

type ResearchDef struct {
	ID              string
	Name            string
	Category        string
	Effect          Bonuses
	Cost            map[string]float64
	Time            float64
	Requires        []string
	RequiresAcademy int
}

type QuestDef struct {
	ID         string
	Name       string
	Category   string
	TrackType  string
	Target     int
	Rewards    map[string]float64
	Repeatable bool
}

type StageDef struct {
	ID            string
	Name          string
	Enemies       map[string]int
	Rewards       map[string]float64
	RequiredPower int
	UnlockNext    string
}

// Catalog bundles every definition table. It is built once at startup and
// injected into components; nothing in this package loads files.
type Catalog struct {
	Resources  map[string]ResourceDef
	Buildings  map[string]*BuildingDef
	Troops     map[string]*TroopDef
	Heroes     map[string]*HeroDef
	Equipment  map[string]*EquipmentDef
	Research   map[string]*ResearchDef
	Quests     map[string]*QuestDef
	Stages     map[string]*StageDef
	FirstStage string
}
