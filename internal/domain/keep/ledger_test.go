package keep

import "testing"

func testResourceDefs() map[string]ResourceDef {
	return map[string]ResourceDef{
		"carrots": {ID: "carrots", StartingAmount: 95, BaseCapacity: 100},
		"wood":    {ID: "wood", StartingAmount: 100, BaseCapacity: 500},
		"gold":    {ID: "gold", StartingAmount: 10, BaseCapacity: 200},
	}
}

func TestLedgerAddClampsToCapacity(t *testing.T) {
	l := NewLedger(testResourceDefs())
	l.Add("carrots", 20)
	if got := l.Get("carrots"); got != 100 {
		t.Fatalf("expected clamp to 100, got %v", got)
	}
}

func TestLedgerSpendFailsWithoutMutating(t *testing.T) {
	l := NewLedger(testResourceDefs())
	if l.Spend("gold", 11) {
		t.Fatal("expected spend to fail")
	}
	if got := l.Get("gold"); got != 10 {
		t.Fatalf("failed spend mutated ledger: %v", got)
	}
	if !l.Spend("gold", 10) {
		t.Fatal("expected spend to succeed")
	}
	if got := l.Get("gold"); got != 0 {
		t.Fatalf("expected 0 gold, got %v", got)
	}
}

func TestLedgerPayIsAtomic(t *testing.T) {
	l := NewLedger(testResourceDefs())
	cost := map[string]float64{"wood": 50, "gold": 50}
	if l.Pay(cost) {
		t.Fatal("expected pay to fail, gold insufficient")
	}
	if l.Get("wood") != 100 || l.Get("gold") != 10 {
		t.Fatalf("failed pay partially deducted: wood=%v gold=%v", l.Get("wood"), l.Get("gold"))
	}

	cost = map[string]float64{"wood": 50, "gold": 5}
	if !l.Pay(cost) {
		t.Fatal("expected pay to succeed")
	}
	if l.Get("wood") != 50 || l.Get("gold") != 5 {
		t.Fatalf("pay deducted wrong amounts: wood=%v gold=%v", l.Get("wood"), l.Get("gold"))
	}
}

func TestLedgerConservationUnderMixedOps(t *testing.T) {
	l := NewLedger(testResourceDefs())
	ops := []func(){
		func() { l.Add("wood", 1000) },
		func() { l.Spend("wood", 200) },
		func() { l.Pay(map[string]float64{"wood": 100, "gold": 100}) },
		func() { l.Add("gold", -5) },
		func() { l.Spend("gold", 3) },
		func() { l.Add("carrots", 50) },
	}
	for _, op := range ops {
		op()
		for _, id := range []string{"carrots", "wood", "gold"} {
			if l.Get(id) < 0 {
				t.Fatalf("%s went negative: %v", id, l.Get(id))
			}
			if l.Get(id) > l.Capacity(id) {
				t.Fatalf("%s exceeded capacity: %v > %v", id, l.Get(id), l.Capacity(id))
			}
		}
	}
}

func TestLedgerAddCapacity(t *testing.T) {
	l := NewLedger(testResourceDefs())
	l.AddCapacity("carrots", 50)
	l.Add("carrots", 100)
	if got := l.Get("carrots"); got != 150 {
		t.Fatalf("expected 150 after capacity bump, got %v", got)
	}
}

func TestLedgerRestoreBackfillsNewResources(t *testing.T) {
	l := NewLedger(testResourceDefs())
	l.Restore(testResourceDefs(), map[string]float64{"wood": 42}, map[string]float64{"wood": 300})
	if got := l.Get("wood"); got != 42 {
		t.Fatalf("expected restored wood=42, got %v", got)
	}
	if got := l.Capacity("carrots"); got != 100 {
		t.Fatalf("expected backfilled carrot capacity, got %v", got)
	}
	if got := l.Get("carrots"); got != 0 {
		t.Fatalf("expected backfilled carrot amount 0, got %v", got)
	}
}
