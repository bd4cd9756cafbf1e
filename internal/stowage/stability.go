package stowage

// ComputeGM returns the metacentric height KB + BM - KG for the given vertical
// centre of gravity. KB and BM must be supplied at ship construction; a profile
// without them is rejected here rather than yielding a silent zero margin.
func ComputeGM(profile ShipProfile, kg float64) (float64, error) {
	if profile.KB <= 0 || profile.BM <= 0 {
		return 0, ErrMissingStabilityConstants
	}
	return profile.KB + profile.BM - kg, nil
}

// UpdateKG folds an added weight at a given height into a prior weight/KG pair
// by moment summation:
//
//	newKG = (priorWeight*priorKG + addedWeight*height) / (priorWeight + addedWeight)
//
// A non-positive denominator is only reachable through a malformed lightship
// weight, which ShipProfile.Validate rejects at construction; it is still
// guarded here so the function stays safe when called standalone.
func UpdateKG(priorWeight, priorKG, addedWeight, height float64) (float64, error) {
	total := priorWeight + addedWeight
	if total <= 0 {
		return 0, ErrZeroDisplacement
	}
	return (priorWeight*priorKG + addedWeight*height) / total, nil
}
