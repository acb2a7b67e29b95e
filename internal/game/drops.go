package game

//go:generate go tool mockgen -destination=./mocks/rand_mock.go -package=mocks . Rand

// Rand is the pseudo-random source the simulation draws from. *rand.Rand
// satisfies it; tests inject a seeded or mocked source.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// dropEntry is one weighted row of a DropTable.
type dropEntry struct {
	def    AmmoDef
	weight float64
}

// DropTable picks weighted random ammunition for dead enemies.
type DropTable struct {
	entries []dropEntry
	total   float64
}

// NewDropTable builds a table weighted by each definition's rarity. Zero
// weight definitions are skipped.
func NewDropTable(defs []AmmoDef) *DropTable {
	t := &DropTable{}
	for _, d := range defs {
		w := d.Rarity.DropWeight()
		if w <= 0 {
			continue
		}
		t.entries = append(t.entries, dropEntry{def: d, weight: w})
		t.total += w
	}
	return t
}

// DefaultDropTable is the table built from DroppableAmmo.
func DefaultDropTable() *DropTable {
	return NewDropTable(DroppableAmmo())
}

// TotalWeight is the sum of all entry weights.
func (t *DropTable) TotalWeight() float64 { return t.total }

// Len is the number of droppable entries.
func (t *DropTable) Len() int { return len(t.entries) }

// Roll picks a definition and rolls its use count. ok is false for an empty
// table.
func (t *DropTable) Roll(rng Rand) (AmmoDef, bool) {
	if len(t.entries) == 0 || t.total <= 0 {
		return AmmoDef{}, false
	}
	roll := rng.Float64() * t.total
	chosen := t.entries[len(t.entries)-1].def
	for _, e := range t.entries {
		roll -= e.weight
		if roll <= 0 {
			chosen = e.def
			break
		}
	}
	return chosen.WithUses(rollUses(chosen, rng)), true
}

// rollUses picks a use count from the definition's drop range.
func rollUses(d AmmoDef, rng Rand) int {
	r := d.DropUses
	if r.Max <= 0 || r.Max < r.Min {
		return d.UsesRemaining
	}
	if r.Max == r.Min {
		return r.Min
	}
	return r.Min + rng.Intn(r.Max-r.Min+1)
}
