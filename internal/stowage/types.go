package stowage

import (
	"fmt"
	"strings"
)

// SizeClass identifies the discrete footprint a cargo unit occupies and a slot
// accepts. Matching is exact: a TEU20 unit never fits a TEU40 slot.
type SizeClass uint8

const (
	SizeUnknown SizeClass = iota
	TEU20
	TEU40
)

func (s SizeClass) String() string {
	switch s {
	case TEU20:
		return "TEU20"
	case TEU40:
		return "TEU40"
	default:
		return "unknown"
	}
}

// ParseSizeClass accepts the canonical "TEU20"/"TEU40" forms as well as the
// short "20"/"40" and "20ft"/"40ft" forms used in cargo manifests.
func ParseSizeClass(raw string) (SizeClass, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "TEU20", "20", "20FT":
		return TEU20, nil
	case "TEU40", "40", "40FT":
		return TEU40, nil
	default:
		return SizeUnknown, fmt.Errorf("%w: unknown size class %q", ErrInvalidCargo, raw)
	}
}

// CargoKind is the closed set of regulatory cargo categories.
type CargoKind uint8

const (
	KindGeneral CargoKind = iota
	KindReefer
	KindHazmat
)

func (k CargoKind) String() string {
	switch k {
	case KindGeneral:
		return "general"
	case KindReefer:
		return "reefer"
	case KindHazmat:
		return "hazmat"
	default:
		return "unknown"
	}
}

// ParseCargoKind maps a manifest string onto the closed CargoKind set.
func ParseCargoKind(raw string) (CargoKind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "general":
		return KindGeneral, nil
	case "reefer":
		return KindReefer, nil
	case "hazmat":
		return KindHazmat, nil
	default:
		return KindGeneral, fmt.Errorf("%w: unknown cargo kind %q", ErrInvalidCargo, raw)
	}
}

// CargoUnit is an immutable description of one unit to be stowed.
// HazmatClass carries the IMO class label and is meaningful only when Kind is
// KindHazmat. Priority orders units under StrategyPriority; lower values load
// earlier.
type CargoUnit struct {
	ID          string
	Size        SizeClass
	Kind        CargoKind
	HazmatClass string
	Weight      float64 // tonnes
	Priority    int
}

// Coord addresses a slot. Identity of a slot is its coordinate triple.
type Coord struct {
	Bay  int
	Row  int
	Tier int
}

func (c Coord) String() string {
	return fmt.Sprintf("%02d-%02d-%02d", c.Bay, c.Row, c.Tier)
}

// ManhattanDistance is the sum of absolute coordinate differences in slot-index
// space. Hazmat separation is defined in these units, not in metres.
func (c Coord) ManhattanDistance(o Coord) int {
	return absInt(c.Bay-o.Bay) + absInt(c.Row-o.Row) + absInt(c.Tier-o.Tier)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Strategy selects the order in which cargo units are offered to the engine.
type Strategy uint8

const (
	StrategyHeavyFirst Strategy = iota
	StrategyPriority
	StrategyHazmatFirst
)

func (s Strategy) String() string {
	switch s {
	case StrategyHeavyFirst:
		return "heavy_first"
	case StrategyPriority:
		return "priority"
	case StrategyHazmatFirst:
		return "hazmat_first"
	default:
		return "unknown"
	}
}

// ParseStrategy maps the wire name of a loading strategy onto the closed set.
func ParseStrategy(raw string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "heavy_first":
		return StrategyHeavyFirst, nil
	case "priority":
		return StrategyPriority, nil
	case "hazmat_first":
		return StrategyHazmatFirst, nil
	default:
		return StrategyHeavyFirst, fmt.Errorf("%w: %q", ErrUnknownStrategy, raw)
	}
}
