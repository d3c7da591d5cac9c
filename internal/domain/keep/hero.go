package keep

// Hero is a live instance with level, xp and checked-out equipment. Items
// move between a Hero slot and the Inventory; they are never duplicated.
type Hero struct {
	Def       *HeroDef
	Level     int
	XP        int
	Equipment map[string]*EquipmentDef
}

func NewHero(def *HeroDef, level int) *Hero {
	if level < 1 {
		level = 1
	}
	equipment := make(map[string]*EquipmentDef, len(EquipSlots))
	for _, slot := range EquipSlots {
		equipment[slot] = nil
	}
	return &Hero{Def: def, Level: level, Equipment: equipment}
}

func (h *Hero) ID() string {
	return h.Def.ID
}

func (h *Hero) StatsAtLevel(level int) Stats {
	base := h.Def.BaseStats
	growth := h.Def.Growth
	n := float64(level - 1)
	return Stats{
		HP:    base.HP + growth.HP*n,
		Atk:   base.Atk + growth.Atk*n,
		Def:   base.Def + growth.Def*n,
		Speed: base.Speed + growth.Speed*n,
	}
}

func (h *Hero) BaseStats() Stats {
	return h.StatsAtLevel(h.Level)
}

func (h *Hero) GearStats() Stats {
	var total Stats
	for _, item := range h.Equipment {
		if item == nil {
			continue
		}
		total.HP += item.Stats.HP
		total.Atk += item.Stats.Atk
		total.Def += item.Stats.Def
		total.Speed += item.Stats.Speed
	}
	return total
}

func (h *Hero) TotalStats() Stats {
	base := h.BaseStats()
	gear := h.GearStats()
	return Stats{
		HP:    base.HP + gear.HP,
		Atk:   base.Atk + gear.Atk,
		Def:   base.Def + gear.Def,
		Speed: base.Speed + gear.Speed,
	}
}

func (h *Hero) Power() int {
	s := h.TotalStats()
	return int(s.HP + s.Atk*3 + s.Def*2 + s.Speed)
}

func (h *Hero) XPToNext() int {
	return h.Level * XPPerLevel
}

// AddXP accumulates xp and levels up for every threshold crossed, possibly
// several in one addition. Returns levels gained.
func (h *Hero) AddXP(amount int) int {
	if amount <= 0 {
		return 0
	}
	h.XP += amount
	gained := 0
	for h.XP >= h.XPToNext() {
		h.XP -= h.XPToNext()
		h.Level++
		gained++
	}
	return gained
}

// Equip places an item into its slot and returns whatever it displaced.
func (h *Hero) Equip(item *EquipmentDef) *EquipmentDef {
	if item == nil {
		return nil
	}
	old := h.Equipment[item.Slot]
	h.Equipment[item.Slot] = item
	return old
}

func (h *Hero) Unequip(slot string) *EquipmentDef {
	old := h.Equipment[slot]
	h.Equipment[slot] = nil
	return old
}

// Inventory holds unequipped equipment.
type Inventory struct {
	items []*EquipmentDef
}

func NewInventory() *Inventory {
	return &Inventory{}
}

func (inv *Inventory) Add(item *EquipmentDef) {
	if item != nil {
		inv.items = append(inv.items, item)
	}
}

func (inv *Inventory) Remove(itemID string) *EquipmentDef {
	for i, item := range inv.items {
		if item.ID == itemID {
			inv.items = append(inv.items[:i], inv.items[i+1:]...)
			return item
		}
	}
	return nil
}

func (inv *Inventory) BySlot(slot string) []*EquipmentDef {
	var out []*EquipmentDef
	for _, item := range inv.items {
		if item.Slot == slot {
			out = append(out, item)
		}
	}
	return out
}

func (inv *Inventory) IDs() []string {
	out := make([]string, 0, len(inv.items))
	for _, item := range inv.items {
		out = append(out, item.ID)
	}
	return out
}

func (inv *Inventory) Restore(defs map[string]*EquipmentDef, ids []string) {
	inv.items = inv.items[:0]
	for _, id := range ids {
		if def, ok := defs[id]; ok {
			inv.items = append(inv.items, def)
		}
	}
}
