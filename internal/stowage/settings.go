package stowage

import "fmt"

// DefaultHazmatSeparation is the minimum Manhattan distance between hazmat
// placements when none is configured.
const DefaultHazmatSeparation = 3

// ScoringWeights are the non-negative weights of the four slot score terms.
// They need not sum to one; each term is already normalised to [0, 1].
type ScoringWeights struct {
	Tier       float64
	Stability  float64
	Centerline float64
	Bay        float64
}

// Settings is the tunable part of the planner. Immutable during a run: Pack
// captures the engine's copy, so mutating a settings store between runs never
// affects a run in flight.
type Settings struct {
	// GMThreshold is the minimum metacentric height, in metres, the ship must
	// retain after every commit.
	GMThreshold float64
	// HazmatSeparation is the minimum Manhattan distance, in slot-index units,
	// between any two hazmat placements.
	HazmatSeparation int
	// PreferredBayFrom/To is the inclusive bay range the bay score term favours.
	PreferredBayFrom int
	PreferredBayTo   int
	Weights          ScoringWeights
}

// DefaultSettings returns the planner defaults: GM threshold 0.3 m, hazmat
// separation 3 slots, the forward bays preferred, tier and stability terms
// dominating the score.
func DefaultSettings() Settings {
	return Settings{
		GMThreshold:      0.3,
		HazmatSeparation: DefaultHazmatSeparation,
		PreferredBayFrom: 0,
		PreferredBayTo:   4,
		Weights: ScoringWeights{
			Tier:       1.0,
			Stability:  1.0,
			Centerline: 0.5,
			Bay:        0.25,
		},
	}
}

// Validate checks the settings bounds. Construction-time: an engine never
// starts a run with invalid settings.
func (s Settings) Validate() error {
	if s.GMThreshold <= 0 {
		return fmt.Errorf("%w: gm threshold %.3f", ErrInvalidSettings, s.GMThreshold)
	}
	if s.HazmatSeparation < 0 {
		return fmt.Errorf("%w: hazmat separation %d", ErrInvalidSettings, s.HazmatSeparation)
	}
	if s.PreferredBayFrom < 0 || s.PreferredBayTo < s.PreferredBayFrom {
		return fmt.Errorf("%w: preferred bays %d..%d", ErrInvalidSettings, s.PreferredBayFrom, s.PreferredBayTo)
	}
	if s.Weights.Tier < 0 || s.Weights.Stability < 0 || s.Weights.Centerline < 0 || s.Weights.Bay < 0 {
		return fmt.Errorf("%w: negative scoring weight", ErrInvalidSettings)
	}
	return nil
}
