package stowage

import "fmt"

// GridSpec is the deterministic rule set a SlotGrid is built from. The same
// spec always yields the same grid, which keeps candidate iteration (and
// therefore tie-breaking) reproducible.
type GridSpec struct {
	Bays  int
	Rows  int
	Tiers int

	// BaseTierCapacity is the per-slot weight capacity at tier 0;
	// TierCapacityStep is subtracted once per tier above it, so capacity never
	// increases with height.
	BaseTierCapacity float64
	TierCapacityStep float64

	// MaxStackWeight caps the cumulative cargo weight of a (bay, row) column.
	MaxStackWeight float64

	// PoweredRows lists rows fitted with reefer plugs; FortyFootBays lists bays
	// whose slots accept TEU40 units. All other bays accept TEU20.
	PoweredRows   []int
	FortyFootBays []int
}

// Validate checks the spec's structural invariants, including that the top
// tier still has positive capacity.
func (s GridSpec) Validate() error {
	if s.Bays < 1 || s.Rows < 1 || s.Tiers < 1 {
		return fmt.Errorf("%w: dimensions %dx%dx%d", ErrInvalidGridSpec, s.Bays, s.Rows, s.Tiers)
	}
	if s.BaseTierCapacity <= 0 || s.TierCapacityStep < 0 || s.MaxStackWeight <= 0 {
		return fmt.Errorf("%w: capacities base=%.2f step=%.2f stack=%.2f",
			ErrInvalidGridSpec, s.BaseTierCapacity, s.TierCapacityStep, s.MaxStackWeight)
	}
	if s.TierCapacity(s.Tiers-1) <= 0 {
		return fmt.Errorf("%w: top tier capacity would be %.2f", ErrInvalidGridSpec, s.TierCapacity(s.Tiers-1))
	}
	return nil
}

// TierCapacity returns the per-slot weight capacity at the given tier.
func (s GridSpec) TierCapacity(tier int) float64 {
	return s.BaseTierCapacity - float64(tier)*s.TierCapacityStep
}

func (s GridSpec) sizeClassFor(bay int) SizeClass {
	for _, b := range s.FortyFootBays {
		if b == bay {
			return TEU40
		}
	}
	return TEU20
}

func (s GridSpec) poweredRow(row int) bool {
	for _, r := range s.PoweredRows {
		if r == row {
			return true
		}
	}
	return false
}

// Slot is one discrete stowage position. Occupant is the ID of the cargo unit
// currently stowed there, empty when free.
type Slot struct {
	Coord        Coord
	Size         SizeClass
	Powered      bool
	TierCapacity float64
	Occupant     string

	weight float64
}

// SlotGrid holds the immutable slot shape of a vessel plus its mutable
// occupancy state. Slots are stored in ascending (bay, row, tier) order and
// all iteration follows that order.
type SlotGrid struct {
	spec     GridSpec
	slots    []Slot
	index    map[Coord]int
	stacks   map[[2]int]float64
	occupied int
}

// NewSlotGrid builds an empty grid from the spec.
func NewSlotGrid(spec GridSpec) (*SlotGrid, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	g := &SlotGrid{
		spec:   spec,
		slots:  make([]Slot, 0, spec.Bays*spec.Rows*spec.Tiers),
		index:  make(map[Coord]int, spec.Bays*spec.Rows*spec.Tiers),
		stacks: make(map[[2]int]float64),
	}

	for bay := 0; bay < spec.Bays; bay++ {
		for row := 0; row < spec.Rows; row++ {
			for tier := 0; tier < spec.Tiers; tier++ {
				c := Coord{Bay: bay, Row: row, Tier: tier}
				g.index[c] = len(g.slots)
				g.slots = append(g.slots, Slot{
					Coord:        c,
					Size:         spec.sizeClassFor(bay),
					Powered:      spec.poweredRow(row),
					TierCapacity: spec.TierCapacity(tier),
				})
			}
		}
	}

	return g, nil
}

// SlotsMatching returns copies of every slot accepting the size class, in
// canonical ascending (bay, row, tier) order.
func (g *SlotGrid) SlotsMatching(size SizeClass) []Slot {
	matched := make([]Slot, 0, len(g.slots))
	for _, slot := range g.slots {
		if slot.Size == size {
			matched = append(matched, slot)
		}
	}
	return matched
}

// SlotAt returns a copy of the slot at the coordinate.
func (g *SlotGrid) SlotAt(c Coord) (Slot, bool) {
	i, ok := g.index[c]
	if !ok {
		return Slot{}, false
	}
	return g.slots[i], true
}

// Occupy marks the slot as holding the cargo unit and adds its weight to the
// column's stack ledger.
func (g *SlotGrid) Occupy(c Coord, cargoID string, weight float64) error {
	i, ok := g.index[c]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSlot, c)
	}
	if g.slots[i].Occupant != "" {
		return fmt.Errorf("%w: %s holds %s", ErrSlotOccupied, c, g.slots[i].Occupant)
	}

	g.slots[i].Occupant = cargoID
	g.slots[i].weight = weight
	g.stacks[[2]int{c.Bay, c.Row}] += weight
	g.occupied++
	return nil
}

// Release frees the slot and removes its cargo weight from the stack ledger.
// Forward packing never releases, but re-planning flows do.
func (g *SlotGrid) Release(c Coord) error {
	i, ok := g.index[c]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSlot, c)
	}
	if g.slots[i].Occupant == "" {
		return fmt.Errorf("%w: %s", ErrSlotEmpty, c)
	}

	g.stacks[[2]int{c.Bay, c.Row}] -= g.slots[i].weight
	g.slots[i].Occupant = ""
	g.slots[i].weight = 0
	g.occupied--
	return nil
}

// StackWeight is the cumulative cargo weight currently stowed in the
// (bay, row) column across all tiers.
func (g *SlotGrid) StackWeight(bay, row int) float64 {
	return g.stacks[[2]int{bay, row}]
}

// MaxStackWeight returns the configured column weight limit.
func (g *SlotGrid) MaxStackWeight() float64 {
	return g.spec.MaxStackWeight
}

// TotalSlots returns the number of slots in the grid.
func (g *SlotGrid) TotalSlots() int {
	return len(g.slots)
}

// OccupiedCount returns the number of slots currently holding cargo.
func (g *SlotGrid) OccupiedCount() int {
	return g.occupied
}

// Dimensions returns the grid's bay, row and tier counts.
func (g *SlotGrid) Dimensions() (bays, rows, tiers int) {
	return g.spec.Bays, g.spec.Rows, g.spec.Tiers
}

// Occupancy returns the coordinates currently holding cargo, in canonical
// order. Used for diagnostics and plan summaries.
func (g *SlotGrid) Occupancy() []Coord {
	coords := make([]Coord, 0, g.occupied)
	for _, slot := range g.slots {
		if slot.Occupant != "" {
			coords = append(coords, slot.Coord)
		}
	}
	return coords
}
