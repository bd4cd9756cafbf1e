package stowage

import "errors"

var (
	// ErrInvalidProfile is returned when ship constants are missing or non-positive.
	ErrInvalidProfile = errors.New("ship profile requires positive lightship weight, KG, KB, BM and tier heights")
	// ErrMissingStabilityConstants is returned when GM is requested without KB/BM.
	ErrMissingStabilityConstants = errors.New("stability constants KB and BM must be positive")
	// ErrZeroDisplacement is returned when a KG update would divide by a non-positive total weight.
	ErrZeroDisplacement = errors.New("total displacement must be positive for KG update")
	// ErrInvalidGridSpec is returned when grid dimensions or capacities are invalid.
	ErrInvalidGridSpec = errors.New("grid requires positive dimensions and capacities that never increase with tier")
	// ErrInvalidSettings is returned when planner settings violate their bounds.
	ErrInvalidSettings = errors.New("settings require a positive GM threshold, non-negative separation and weights, and an ordered bay range")
	// ErrInvalidCargo is returned when a cargo unit has no ID, a duplicate ID, an unknown size class or a non-positive weight.
	ErrInvalidCargo = errors.New("cargo units require unique ids, known size classes and positive weights")
	// ErrUnknownStrategy is returned for a loading strategy outside the closed set.
	ErrUnknownStrategy = errors.New("unknown loading strategy")
	// ErrUnknownSlot is returned when a coordinate does not address a slot in the grid.
	ErrUnknownSlot = errors.New("no slot at coordinate")
	// ErrSlotOccupied is returned when occupying a slot that already holds cargo.
	ErrSlotOccupied = errors.New("slot already occupied")
	// ErrSlotEmpty is returned when releasing a slot that holds no cargo.
	ErrSlotEmpty = errors.New("slot is not occupied")
)
