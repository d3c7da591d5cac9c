package yamlcatalog

// File formats for the catalogs/ directory. Every definition file is a list
// of entries keyed by id; campaign.yaml additionally names the entry stage.

type statsDTO struct {
	HP    float64 `yaml:"hp"`
	Atk   float64 `yaml:"atk"`
	Def   float64 `yaml:"def"`
	Speed float64 `yaml:"speed"`
}

type resourceDTO struct {
	ID             string  `yaml:"id"`
	Name           string  `yaml:"name"`
	StartingAmount float64 `yaml:"starting_amount"`
	BaseCapacity   float64 `yaml:"base_capacity"`
}

type gateDTO struct {
	Kind           string  `yaml:"kind"`
	ClickThreshold int     `yaml:"click_threshold"`
	PeriodSeconds  float64 `yaml:"period_seconds"`
}

type buildingLevelDTO struct {
	Cost          map[string]float64 `yaml:"cost"`
	BuildTime     float64            `yaml:"build_time"`
	Production    map[string]float64 `yaml:"production"`
	TrainingSpeed float64            `yaml:"training_speed"`
	Unlocks       []string           `yaml:"unlocks"`
}

type buildingDTO struct {
	ID             string                   `yaml:"id"`
	Name           string                   `yaml:"name"`
	Category       string                   `yaml:"category"`
	MaxLevel       int                      `yaml:"max_level"`
	Unique         bool                     `yaml:"unique"`
	RequiresCastle int                      `yaml:"requires_castle"`
	Gate           *gateDTO                 `yaml:"gate"`
	Levels         map[int]buildingLevelDTO `yaml:"levels"`
}

type troopDTO struct {
	ID               string             `yaml:"id"`
	Name             string             `yaml:"name"`
	Tier             int                `yaml:"tier"`
	Type             string             `yaml:"type"`
	Stats            statsDTO           `yaml:"stats"`
	TrainingTime     float64            `yaml:"training_time"`
	Cost             map[string]float64 `yaml:"cost"`
	RequiresBarracks int                `yaml:"requires_barracks"`
}

type heroDTO struct {
	ID        string   `yaml:"id"`
	Name      string   `yaml:"name"`
	Title     string   `yaml:"title"`
	Role      string   `yaml:"role"`
	BaseStats statsDTO `yaml:"base_stats"`
	Growth    statsDTO `yaml:"growth"`
}

type equipmentDTO struct {
	ID     string   `yaml:"id"`
	Name   string   `yaml:"name"`
	Slot   string   `yaml:"slot"`
	Rarity string   `yaml:"rarity"`
	Stats  statsDTO `yaml:"stats"`
}

type statMultDTO struct {
	HP    float64 `yaml:"hp"`
	Atk   float64 `yaml:"atk"`
	Def   float64 `yaml:"def"`
	Speed float64 `yaml:"speed"`
}

type effectDTO struct {
	ProductionMult map[string]float64 `yaml:"production_mult"`
	CapacityBonus  map[string]float64 `yaml:"capacity_bonus"`
	TroopStatMult  statMultDTO        `yaml:"troop_stat_mult"`
	TrainingSpeed  float64            `yaml:"training_speed"`
	DefenseBonus   float64            `yaml:"defense_bonus"`
	TrapDamage     float64            `yaml:"trap_damage"`
	HeroXP         float64            `yaml:"hero_xp"`
	HeroStat       float64            `yaml:"hero_stat"`
}

type researchDTO struct {
	ID              string             `yaml:"id"`
	Name            string             `yaml:"name"`
	Category        string             `yaml:"category"`
	Effect          effectDTO          `yaml:"effect"`
	Cost            map[string]float64 `yaml:"cost"`
	Time            float64            `yaml:"time"`
	Requires        []string           `yaml:"requires"`
	RequiresAcademy int                `yaml:"requires_academy"`
}

type questDTO struct {
	ID         string             `yaml:"id"`
	Name       string             `yaml:"name"`
	Category   string             `yaml:"category"`
	TrackType  string             `yaml:"track_type"`
	Target     int                `yaml:"target"`
	Rewards    map[string]float64 `yaml:"rewards"`
	Repeatable bool               `yaml:"repeatable"`
}

type stageDTO struct {
	ID            string             `yaml:"id"`
	Name          string             `yaml:"name"`
	Enemies       map[string]int     `yaml:"enemies"`
	Rewards       map[string]float64 `yaml:"rewards"`
	RequiredPower int                `yaml:"required_power"`
	UnlockNext    string             `yaml:"unlock_next"`
}

type campaignDTO struct {
	FirstStage string     `yaml:"first_stage"`
	Stages     []stageDTO `yaml:"stages"`
}
