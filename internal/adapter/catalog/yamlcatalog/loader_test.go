package yamlcatalog

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bunnylords/internal/domain/keep"
)

func writeCatalogDir(t *testing.T, overrides map[string]string) string {
	t.Helper()
	files := map[string]string{
		"resources.yaml": `
- id: carrots
  name: Carrots
  starting_amount: 100
  base_capacity: 1000
- id: wood
  name: Wood
  starting_amount: 500
  base_capacity: 1000
`,
		"buildings.yaml": `
- id: castle
  name: Castle
  category: core
  max_level: 10
  unique: true
  levels:
    1: {}
    2:
      cost: {wood: 100}
      build_time: 20
- id: stone_quarry
  name: Stone Quarry
  category: resource
  max_level: 5
  requires_castle: 1
  gate:
    kind: click_cycle
    click_threshold: 3
    period_seconds: 30
  levels:
    1:
      cost: {wood: 15}
      build_time: 2
      production: {carrots: 1}
`,
		"troops.yaml": `
- id: warrior_bunny
  name: Warrior Bunny
  tier: 1
  type: infantry
  stats: {hp: 100, atk: 20, def: 10, speed: 5}
  training_time: 2
  cost: {wood: 5}
`,
		"heroes.yaml": `
- id: general_thumper
  name: Thumper
  title: The Ironpaw
  role: warlord
  base_stats: {hp: 100, atk: 20, def: 15, speed: 8}
  growth: {hp: 10, atk: 2, def: 1.5, speed: 0.5}
`,
		"equipment.yaml": `
- id: carrot_blade
  name: Carrot Blade
  slot: weapon
  rarity: rare
  stats: {atk: 12}
`,
		"research.yaml": `
- id: farming_1
  name: Crop Rotation
  category: economy
  effect:
    production_mult: {carrots: 0.1}
  cost: {wood: 50}
  time: 30
- id: sharp_claws
  name: Sharp Claws
  category: military
  effect:
    troop_stat_mult: {atk: 0.1}
    trap_damage: 0.05
  cost: {wood: 60}
  time: 40
  requires: [farming_1]
`,
		"quests.yaml": `
- id: first_builder
  name: First Builder
  category: achievement
  track_type: building_complete
  target: 3
  rewards: {wood: 100, xp: 50}
- id: daily_drill
  name: Daily Drill
  category: daily
  track_type: troops_trained
  target: 5
  rewards: {carrots: 50}
  repeatable: true
`,
		"campaign.yaml": `
first_stage: stage_1
stages:
  - id: stage_1
    name: Meadow Skirmish
    enemies: {warrior_bunny: 5}
    rewards: {wood: 50, xp: 100}
    unlock_next: stage_2
  - id: stage_2
    name: Fox Den
    enemies: {warrior_bunny: 10}
    required_power: 800
`,
	}
	for name, content := range overrides {
		files[name] = content
	}
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func TestLoaderAssemblesCatalog(t *testing.T) {
	dir := writeCatalogDir(t, nil)
	cat, err := New(dir).Load(context.Background())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if got := cat.Resources["wood"].StartingAmount; got != 500 {
		t.Fatalf("wood starting amount: %v", got)
	}

	quarry := cat.Buildings["stone_quarry"]
	if quarry == nil {
		t.Fatal("stone_quarry missing")
	}
	if quarry.Gate.Kind != keep.GateClickCycle || quarry.Gate.ClickThreshold != 3 {
		t.Fatalf("gate not loaded: %+v", quarry.Gate)
	}
	if got := quarry.CostFor(1)["wood"]; got != 15 {
		t.Fatalf("quarry level-1 cost: %v", got)
	}
	castle := cat.Buildings[keep.CastleID]
	if !castle.Unique || castle.BuildTimeFor(2) != 20 {
		t.Fatalf("castle levels not loaded: %+v", castle)
	}

	warrior := cat.Troops["warrior_bunny"]
	if warrior.Type != keep.TroopInfantry || warrior.Stats.Atk != 20 {
		t.Fatalf("troop not loaded: %+v", warrior)
	}

	claws := cat.Research["sharp_claws"]
	if claws.Effect.TroopStatMult.Atk != 0.1 || claws.Effect.TrapDamage != 0.05 {
		t.Fatalf("research effect not loaded: %+v", claws.Effect)
	}
	if len(claws.Requires) != 1 || claws.Requires[0] != "farming_1" {
		t.Fatalf("research requires not loaded: %v", claws.Requires)
	}

	if cat.FirstStage != "stage_1" {
		t.Fatalf("first stage: %s", cat.FirstStage)
	}
	if cat.Stages["stage_1"].UnlockNext != "stage_2" {
		t.Fatalf("stage chain not loaded: %+v", cat.Stages["stage_1"])
	}
	if cat.Stages["stage_2"].RequiredPower != 800 {
		t.Fatalf("required power not loaded: %+v", cat.Stages["stage_2"])
	}

	if !cat.Quests["daily_drill"].Repeatable {
		t.Fatal("daily quest not repeatable")
	}
}

func TestLoaderSeedsPlayableSession(t *testing.T) {
	dir := writeCatalogDir(t, nil)
	cat, err := New(dir).Load(context.Background())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	s := keep.NewSession("session-1", cat)
	if s.CastleLevel() != 1 {
		t.Fatalf("castle not seeded: %d", s.CastleLevel())
	}
	if len(s.Heroes) != 1 {
		t.Fatalf("heroes not seeded: %d", len(s.Heroes))
	}
}

func TestLoaderRejectsDanglingReferences(t *testing.T) {
	cases := []struct {
		name    string
		file    string
		content string
		wantSub string
	}{
		{
			"stage with unknown troop", "campaign.yaml", `
first_stage: stage_1
stages:
  - id: stage_1
    enemies: {dragon_bunny: 5}
`, "unknown troop",
		},
		{
			"research with unknown prerequisite", "research.yaml", `
- id: farming_2
  name: Golden Carrots
  requires: [farming_1]
  time: 60
`, "requires unknown",
		},
		{
			"missing castle", "buildings.yaml", `
- id: barn
  name: Barn
  max_level: 1
  levels:
    1: {}
`, "missing castle",
		},
	}
	for _, tc := range cases {
		dir := writeCatalogDir(t, map[string]string{tc.file: tc.content})
		if _, err := New(dir).Load(context.Background()); err == nil || !strings.Contains(err.Error(), tc.wantSub) {
			t.Fatalf("%s: expected error containing %q, got %v", tc.name, tc.wantSub, err)
		}
	}
}

func TestLoaderMissingFile(t *testing.T) {
	dir := t.TempDir()
	if _, err := New(dir).Load(context.Background()); err == nil {
		t.Fatal("expected error for empty catalog dir")
	}
}
