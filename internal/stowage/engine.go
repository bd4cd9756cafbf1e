package stowage

import (
	"context"
	"fmt"
	"sort"
)

// Engine packs cargo manifests onto a vessel. It is safe for concurrent use:
// every Pack call builds its own SlotGrid and ShipState from the immutable
// profile, grid spec and settings captured at construction.
type Engine struct {
	profile  ShipProfile
	gridSpec GridSpec
	settings Settings
}

// NewEngine validates ship constants, grid spec and settings up front; a run
// can only fail afterwards through malformed cargo input, never through the
// ship itself.
func NewEngine(profile ShipProfile, gridSpec GridSpec, settings Settings) (*Engine, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	if err := gridSpec.Validate(); err != nil {
		return nil, err
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		profile:  profile,
		gridSpec: gridSpec,
		settings: settings,
	}, nil
}

// Settings returns the settings the engine was constructed with.
func (e *Engine) Settings() Settings {
	return e.settings
}

// GridSpec returns the grid spec the engine was constructed with.
func (e *Engine) GridSpec() GridSpec {
	return e.gridSpec
}

// Profile returns the ship profile the engine was constructed with.
func (e *Engine) Profile() ShipProfile {
	return e.profile
}

// Pack runs a single greedy pass over the manifest: sort per strategy, then
// for each unit gather candidate slots, filter through the constraint chain,
// score the survivors and commit the best. A unit with no feasible slot is
// recorded as unplaced and the run continues; only malformed input or context
// cancellation aborts the run.
func (e *Engine) Pack(ctx context.Context, units []CargoUnit, strategy Strategy) (*Result, error) {
	if strategy != StrategyHeavyFirst && strategy != StrategyPriority && strategy != StrategyHazmatFirst {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStrategy, strategy)
	}
	if err := validateUnits(units); err != nil {
		return nil, err
	}

	grid, err := NewSlotGrid(e.gridSpec)
	if err != nil {
		return nil, err
	}
	ship, err := NewShipState(e.profile)
	if err != nil {
		return nil, err
	}

	ordered := orderUnits(units, strategy)

	result := &Result{
		Strategy:   strategy,
		Placements: make([]PlacementRecord, 0, len(ordered)),
		Unplaced:   make([]UnplacedUnit, 0),
	}

	bays, rows, tiers := grid.Dimensions()
	var hazmatPlaced []Coord

	for _, unit := range ordered {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("pack aborted: %w", err)
		}

		candidates := grid.SlotsMatching(unit.Size)

		bestReason := ReasonNoMatchingSlots
		var best Slot
		bestScore := -1.0
		found := false

		for _, slot := range candidates {
			gm, reason := checkPlacement(unit, slot, grid, ship, hazmatPlaced, e.settings)
			if reason != ReasonNone {
				bestReason = moreSpecific(bestReason, reason)
				continue
			}
			// Strict comparison keeps the earliest slot in canonical order on
			// a tied score.
			if score := scoreCandidate(slot, gm, e.settings, bays, rows, tiers); score > bestScore {
				bestScore = score
				best = slot
				found = true
			}
		}

		if !found {
			result.Unplaced = append(result.Unplaced, UnplacedUnit{UnitID: unit.ID, Reason: bestReason})
			continue
		}

		if err := grid.Occupy(best.Coord, unit.ID, unit.Weight); err != nil {
			return nil, err
		}
		if err := ship.Commit(unit.Weight, e.profile.TierHeight(best.Coord.Tier)); err != nil {
			return nil, err
		}
		if unit.Kind == KindHazmat {
			hazmatPlaced = append(hazmatPlaced, best.Coord)
		}
		result.Placements = append(result.Placements, PlacementRecord{
			UnitID: unit.ID,
			Slot:   best.Coord,
			GM:     ship.GM(),
		})
	}

	result.Metrics = Metrics{
		SlotUtilization: float64(grid.OccupiedCount()) / float64(grid.TotalSlots()) * 100,
		GM:              ship.GM(),
		Stable:          ship.GM() >= e.settings.GMThreshold,
	}
	if len(units) > 0 {
		result.Metrics.PlacementRate = float64(len(result.Placements)) / float64(len(units)) * 100
	}

	return result, nil
}

// validateUnits enforces the cargo input contract: unique non-empty IDs, known
// size classes, positive weights.
func validateUnits(units []CargoUnit) error {
	seen := make(map[string]struct{}, len(units))
	for _, unit := range units {
		if unit.ID == "" {
			return fmt.Errorf("%w: empty id", ErrInvalidCargo)
		}
		if _, dup := seen[unit.ID]; dup {
			return fmt.Errorf("%w: duplicate id %q", ErrInvalidCargo, unit.ID)
		}
		seen[unit.ID] = struct{}{}
		if unit.Size != TEU20 && unit.Size != TEU40 {
			return fmt.Errorf("%w: unit %q has unknown size class", ErrInvalidCargo, unit.ID)
		}
		if unit.Weight <= 0 {
			return fmt.Errorf("%w: unit %q has weight %.3f", ErrInvalidCargo, unit.ID, unit.Weight)
		}
	}
	return nil
}

// orderUnits returns a sorted copy of the manifest. All sorts are stable so
// equal keys keep input order and reruns are byte-identical.
func orderUnits(units []CargoUnit, strategy Strategy) []CargoUnit {
	ordered := make([]CargoUnit, len(units))
	copy(ordered, units)

	switch strategy {
	case StrategyHeavyFirst:
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].Weight > ordered[j].Weight
		})
	case StrategyPriority:
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].Priority < ordered[j].Priority
		})
	case StrategyHazmatFirst:
		// Stable partition: hazmat first, both groups in original order.
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].Kind == KindHazmat && ordered[j].Kind != KindHazmat
		})
	}

	return ordered
}
