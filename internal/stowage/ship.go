package stowage

import "fmt"

// ShipProfile holds the stability constants of a vessel. KB and BM are treated
// as constant for the duration of one pack run; trim and heel effects on them
// are out of scope. Slot heights above keel grow linearly with tier, which
// keeps the height mapping monotonic as required by the KG update.
type ShipProfile struct {
	LightshipWeight float64 // tonnes, vessel without cargo
	LightshipKG     float64 // metres, vertical centre of gravity when light
	KB              float64 // metres, vertical centre of buoyancy
	BM              float64 // metres, metacentric radius
	TierBaseHeight  float64 // metres, slot centroid height at tier 0
	TierHeightStep  float64 // metres added per tier
}

// Validate fails fast on malformed constants. All construction-time; a profile
// that passes here cannot produce a zero-displacement KG update mid-run.
func (p ShipProfile) Validate() error {
	if p.LightshipWeight <= 0 || p.LightshipKG <= 0 {
		return fmt.Errorf("%w: lightship weight=%.2f kg=%.2f", ErrInvalidProfile, p.LightshipWeight, p.LightshipKG)
	}
	if p.KB <= 0 || p.BM <= 0 {
		return fmt.Errorf("%w: kb=%.2f bm=%.2f", ErrInvalidProfile, p.KB, p.BM)
	}
	if p.TierBaseHeight <= 0 || p.TierHeightStep <= 0 {
		return fmt.Errorf("%w: tier heights base=%.2f step=%.2f", ErrInvalidProfile, p.TierBaseHeight, p.TierHeightStep)
	}
	return nil
}

// TierHeight is the vertical placement height above keel for a slot at the
// given tier.
func (p ShipProfile) TierHeight(tier int) float64 {
	return p.TierBaseHeight + float64(tier)*p.TierHeightStep
}

// ShipState is the mutable physical ledger of one pack run: total carried
// weight, vertical centre of gravity and the derived metacentric height. KG is
// recomputed from the full moment sum on every commit rather than nudged
// incrementally, so floating-point error does not accumulate across commits.
type ShipState struct {
	profile     ShipProfile
	cargoWeight float64
	cargoMoment float64
	kg          float64
	gm          float64
}

// NewShipState validates the profile and returns a state carrying no cargo.
func NewShipState(profile ShipProfile) (*ShipState, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	gm, err := ComputeGM(profile, profile.LightshipKG)
	if err != nil {
		return nil, err
	}
	return &ShipState{
		profile: profile,
		kg:      profile.LightshipKG,
		gm:      gm,
	}, nil
}

// TotalWeight is lightship weight plus all committed cargo weight.
func (s *ShipState) TotalWeight() float64 {
	return s.profile.LightshipWeight + s.cargoWeight
}

// KG is the current vertical centre of gravity.
func (s *ShipState) KG() float64 {
	return s.kg
}

// GM is the current metacentric height.
func (s *ShipState) GM() float64 {
	return s.gm
}

// SimulateGM computes the metacentric height the ship would have after adding
// the weight at the given height, without mutating state.
func (s *ShipState) SimulateGM(weight, height float64) (float64, error) {
	kg, err := UpdateKG(s.TotalWeight(), s.kg, weight, height)
	if err != nil {
		return 0, err
	}
	return ComputeGM(s.profile, kg)
}

// Commit adds the weight at the given height and recomputes KG and GM from the
// accumulated moment sum.
func (s *ShipState) Commit(weight, height float64) error {
	cargoWeight := s.cargoWeight + weight
	cargoMoment := s.cargoMoment + weight*height

	total := s.profile.LightshipWeight + cargoWeight
	if total <= 0 {
		return ErrZeroDisplacement
	}

	kg := (s.profile.LightshipWeight*s.profile.LightshipKG + cargoMoment) / total
	gm, err := ComputeGM(s.profile, kg)
	if err != nil {
		return err
	}

	s.cargoWeight = cargoWeight
	s.cargoMoment = cargoMoment
	s.kg = kg
	s.gm = gm
	return nil
}
