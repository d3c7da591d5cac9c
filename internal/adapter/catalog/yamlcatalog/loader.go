package yamlcatalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"bunnylords/internal/domain/keep"
)

// Loader reads the definition catalogs from a directory of YAML files and
// assembles the immutable keep.Catalog the simulation runs against.
type Loader struct {
	Dir string
}

func New(dir string) Loader {
	return Loader{Dir: dir}
}

func (l Loader) Load(_ context.Context) (*keep.Catalog, error) {
	cat := &keep.Catalog{
		Resources: map[string]keep.ResourceDef{},
		Buildings: map[string]*keep.BuildingDef{},
		Troops:    map[string]*keep.TroopDef{},
		Heroes:    map[string]*keep.HeroDef{},
		Equipment: map[string]*keep.EquipmentDef{},
		Research:  map[string]*keep.ResearchDef{},
		Quests:    map[string]*keep.QuestDef{},
		Stages:    map[string]*keep.StageDef{},
	}

	var resources []resourceDTO
	if err := l.readFile("resources.yaml", &resources); err != nil {
		return nil, err
	}
	for _, r := range resources {
		cat.Resources[r.ID] = keep.ResourceDef{
			ID: r.ID, Name: r.Name,
			StartingAmount: r.StartingAmount, BaseCapacity: r.BaseCapacity,
		}
	}

	var buildings []buildingDTO
	if err := l.readFile("buildings.yaml", &buildings); err != nil {
		return nil, err
	}
	for _, b := range buildings {
		def := &keep.BuildingDef{
			ID: b.ID, Name: b.Name, Category: b.Category,
			MaxLevel: b.MaxLevel, Unique: b.Unique, RequiresCastle: b.RequiresCastle,
			Levels: map[int]keep.BuildingLevel{},
		}
		if b.Gate != nil {
			def.Gate = keep.ProductionGate{
				Kind:           keep.GateKind(b.Gate.Kind),
				ClickThreshold: b.Gate.ClickThreshold,
				PeriodSeconds:  b.Gate.PeriodSeconds,
			}
		}
		for level, data := range b.Levels {
			def.Levels[level] = keep.BuildingLevel{
				Cost: data.Cost, BuildTime: data.BuildTime,
				Production: data.Production, TrainingSpeed: data.TrainingSpeed,
				Unlocks: data.Unlocks,
			}
		}
		cat.Buildings[b.ID] = def
	}

	var troops []troopDTO
	if err := l.readFile("troops.yaml", &troops); err != nil {
		return nil, err
	}
	for _, t := range troops {
		cat.Troops[t.ID] = &keep.TroopDef{
			ID: t.ID, Name: t.Name, Tier: t.Tier, Type: keep.TroopType(t.Type),
			Stats:            statsFromDTO(t.Stats),
			TrainingTime:     t.TrainingTime,
			Cost:             t.Cost,
			RequiresBarracks: t.RequiresBarracks,
		}
	}

	var heroes []heroDTO
	if err := l.readFile("heroes.yaml", &heroes); err != nil {
		return nil, err
	}
	for _, h := range heroes {
		cat.Heroes[h.ID] = &keep.HeroDef{
			ID: h.ID, Name: h.Name, Title: h.Title, Role: h.Role,
			BaseStats: statsFromDTO(h.BaseStats),
			Growth:    statsFromDTO(h.Growth),
		}
	}

	var equipment []equipmentDTO
	if err := l.readFile("equipment.yaml", &equipment); err != nil {
		return nil, err
	}
	for _, e := range equipment {
		cat.Equipment[e.ID] = &keep.EquipmentDef{
			ID: e.ID, Name: e.Name, Slot: e.Slot, Rarity: e.Rarity,
			Stats: statsFromDTO(e.Stats),
		}
	}

	var research []researchDTO
	if err := l.readFile("research.yaml", &research); err != nil {
		return nil, err
	}
	for _, r := range research {
		cat.Research[r.ID] = &keep.ResearchDef{
			ID: r.ID, Name: r.Name, Category: r.Category,
			Effect: keep.Bonuses{
				ProductionMult: r.Effect.ProductionMult,
				CapacityBonus:  r.Effect.CapacityBonus,
				TroopStatMult: keep.StatMult{
					HP: r.Effect.TroopStatMult.HP, Atk: r.Effect.TroopStatMult.Atk,
					Def: r.Effect.TroopStatMult.Def, Speed: r.Effect.TroopStatMult.Speed,
				},
				TrainingSpeed: r.Effect.TrainingSpeed,
				DefenseBonus:  r.Effect.DefenseBonus,
				TrapDamage:    r.Effect.TrapDamage,
				HeroXP:        r.Effect.HeroXP,
				HeroStat:      r.Effect.HeroStat,
			},
			Cost: r.Cost, Time: r.Time,
			Requires: r.Requires, RequiresAcademy: r.RequiresAcademy,
		}
	}

	var quests []questDTO
	if err := l.readFile("quests.yaml", &quests); err != nil {
		return nil, err
	}
	for _, q := range quests {
		cat.Quests[q.ID] = &keep.QuestDef{
			ID: q.ID, Name: q.Name, Category: q.Category,
			TrackType: q.TrackType, Target: q.Target,
			Rewards: q.Rewards, Repeatable: q.Repeatable,
		}
	}

	var campaign campaignDTO
	if err := l.readFile("campaign.yaml", &campaign); err != nil {
		return nil, err
	}
	cat.FirstStage = campaign.FirstStage
	for _, s := range campaign.Stages {
		cat.Stages[s.ID] = &keep.StageDef{
			ID: s.ID, Name: s.Name,
			Enemies: s.Enemies, Rewards: s.Rewards,
			RequiredPower: s.RequiredPower, UnlockNext: s.UnlockNext,
		}
	}

	if err := validate(cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (l Loader) readFile(name string, out any) error {
	b, err := os.ReadFile(filepath.Join(l.Dir, name))
	if err != nil {
		return fmt.Errorf("read catalog %s: %w", name, err)
	}
	if err := yaml.Unmarshal(b, out); err != nil {
		return fmt.Errorf("parse catalog %s: %w", name, err)
	}
	return nil
}

func statsFromDTO(s statsDTO) keep.Stats {
	return keep.Stats{HP: s.HP, Atk: s.Atk, Def: s.Def, Speed: s.Speed}
}

// validate catches the cross-file references that would otherwise surface as
// silently skipped entries at runtime.
func validate(cat *keep.Catalog) error {
	if _, ok := cat.Buildings[keep.CastleID]; !ok {
		return fmt.Errorf("catalog: missing %s building", keep.CastleID)
	}
	for id, t := range cat.Troops {
		for resource := range t.Cost {
			if _, ok := cat.Resources[resource]; !ok {
				return fmt.Errorf("catalog: troop %s costs unknown resource %s", id, resource)
			}
		}
	}
	for id, s := range cat.Stages {
		for troopID := range s.Enemies {
			if _, ok := cat.Troops[troopID]; !ok {
				return fmt.Errorf("catalog: stage %s fields unknown troop %s", id, troopID)
			}
		}
	}
	if cat.FirstStage != "" {
		if _, ok := cat.Stages[cat.FirstStage]; !ok {
			return fmt.Errorf("catalog: first stage %s not defined", cat.FirstStage)
		}
	}
	for id, r := range cat.Research {
		for _, req := range r.Requires {
			if _, ok := cat.Research[req]; !ok {
				return fmt.Errorf("catalog: research %s requires unknown %s", id, req)
			}
		}
	}
	return nil
}
