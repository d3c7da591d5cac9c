package combat

import (
	"testing"

	"bunnylords/internal/domain/keep"
)

func warriorDef() *keep.TroopDef {
	return &keep.TroopDef{
		ID: "warrior_bunny", Name: "Warrior Bunny", Tier: 1, Type: keep.TroopInfantry,
		Stats: keep.Stats{HP: 100, Atk: 20, Def: 10, Speed: 5},
	}
}

func TestPooledDamageKillsByCeilingDivision(t *testing.T) {
	u := newUnit(warriorDef(), 10, warriorDef().Stats, SidePlayer)

	// 150 damage off a 1000 pool leaves 850, ceil(850/100)=9 standing
	if killed := u.TakeDamage(150); killed != 1 {
		t.Fatalf("expected 1 killed, got %d", killed)
	}
	if u.Count != 9 {
		t.Fatalf("expected 9 standing, got %d", u.Count)
	}

	// another 50 leaves 800, still exactly 8 whole units
	if killed := u.TakeDamage(50); killed != 1 {
		t.Fatalf("expected 1 more killed, got %d", killed)
	}

	// a tiny scratch leaves 799.5, ceil keeps 8 standing
	if killed := u.TakeDamage(0.5); killed != 0 {
		t.Fatalf("scratch killed %d", killed)
	}
}

func TestOverkillClampsToStanding(t *testing.T) {
	u := newUnit(warriorDef(), 3, warriorDef().Stats, SideEnemy)
	if killed := u.TakeDamage(10000); killed != 3 {
		t.Fatalf("expected 3 killed on overkill, got %d", killed)
	}
	if u.Alive() {
		t.Fatal("wiped group still alive")
	}
	if u.TotalHP != 0 {
		t.Fatalf("pool went negative: %v", u.TotalHP)
	}
}

func TestStrongTargetCycle(t *testing.T) {
	cases := map[keep.TroopType]keep.TroopType{
		keep.TroopInfantry: keep.TroopCavalry,
		keep.TroopCavalry:  keep.TroopRanged,
		keep.TroopRanged:   keep.TroopInfantry,
		keep.TroopSiege:    keep.TroopSiege,
	}
	for attacker, want := range cases {
		if got := strongTarget(attacker); got != want {
			t.Fatalf("strongTarget(%s) = %s, want %s", attacker, got, want)
		}
	}
}
