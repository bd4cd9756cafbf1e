package stowage

// Reason tags why a candidate slot was rejected, or why a unit could not be
// placed at all. Reasons are diagnostics carried in the result; they never
// drive control flow beyond short-circuiting the check chain.
type Reason uint8

const (
	ReasonNone Reason = iota
	ReasonNoMatchingSlots
	ReasonSizeMismatch
	ReasonSlotOccupied
	ReasonTierCapacity
	ReasonStackLimit
	ReasonPowerUnavailable
	ReasonHazmatSeparation
	ReasonStability
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonNoMatchingSlots:
		return "no_matching_slots"
	case ReasonSizeMismatch:
		return "size_mismatch"
	case ReasonSlotOccupied:
		return "slot_occupied"
	case ReasonTierCapacity:
		return "tier_capacity_exceeded"
	case ReasonStackLimit:
		return "stack_limit_exceeded"
	case ReasonPowerUnavailable:
		return "power_unavailable"
	case ReasonHazmatSeparation:
		return "hazmat_separation"
	case ReasonStability:
		return "stability_limit"
	default:
		return "unknown"
	}
}

// moreSpecific picks the reason to report for an unplaced unit. The Reason
// ordering doubles as the specificity ranking: stability and hazmat failures
// say more about the manifest than a generic occupancy or size mismatch, so
// when different candidates fail differently the highest-ranked reason wins.
func moreSpecific(a, b Reason) Reason {
	if b > a {
		return b
	}
	return a
}

// checkPlacement evaluates the hard feasibility of stowing unit in slot given
// the current grid, ship state and committed hazmat coordinates. Checks run in
// a fixed order and short-circuit on the first failure. On success it returns
// the simulated post-placement GM (also an input to the stability score term)
// and ReasonNone.
func checkPlacement(unit CargoUnit, slot Slot, grid *SlotGrid, ship *ShipState, hazmat []Coord, set Settings) (float64, Reason) {
	if unit.Size != slot.Size {
		return 0, ReasonSizeMismatch
	}
	if slot.Occupant != "" {
		return 0, ReasonSlotOccupied
	}
	if unit.Weight > slot.TierCapacity {
		return 0, ReasonTierCapacity
	}
	// Column limit is evaluated against the post-placement stack weight.
	if grid.StackWeight(slot.Coord.Bay, slot.Coord.Row)+unit.Weight > grid.MaxStackWeight() {
		return 0, ReasonStackLimit
	}
	if unit.Kind == KindReefer && !slot.Powered {
		return 0, ReasonPowerUnavailable
	}
	if unit.Kind == KindHazmat {
		for _, placed := range hazmat {
			if slot.Coord.ManhattanDistance(placed) < set.HazmatSeparation {
				return 0, ReasonHazmatSeparation
			}
		}
	}

	gm, err := ship.SimulateGM(unit.Weight, ship.profile.TierHeight(slot.Coord.Tier))
	if err != nil || gm < set.GMThreshold {
		return 0, ReasonStability
	}
	return gm, ReasonNone
}
