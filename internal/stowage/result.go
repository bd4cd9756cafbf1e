package stowage

// PlacementRecord is one committed assignment: which unit went where, and the
// ship's metacentric height right after the commit. Records are append-only
// within a run and keep commit order.
type PlacementRecord struct {
	UnitID string
	Slot   Coord
	GM     float64
}

// UnplacedUnit records a unit the run could not stow, with the most specific
// rejection reason encountered across its candidate slots.
type UnplacedUnit struct {
	UnitID string
	Reason Reason
}

// Metrics summarises a completed run.
type Metrics struct {
	PlacementRate   float64 // placed units / total units, percent
	SlotUtilization float64 // occupied slots / total slots, percent
	GM              float64 // metres, after the final commit
	Stable          bool    // GM >= threshold
}

// Result is the complete outcome of one pack run.
type Result struct {
	Strategy   Strategy
	Placements []PlacementRecord
	Unplaced   []UnplacedUnit
	Metrics    Metrics
}
