package stowage

// scoreCandidate ranks an already-feasible slot for a cargo unit. Each term is
// normalised to [0, 1] before weighting, so the configured weights compare
// like against like:
//
//   - tier: lower tiers score higher, keeping weight low in the ship
//   - stability: saturating margin above the GM threshold
//   - centerline: rows nearest the physical centreline score higher
//   - bay: slots inside the preferred bay range score 1, decaying linearly
//     with bay distance outside it
//
// Ties between equal scores are not resolved here; the engine keeps the first
// candidate in canonical slot order.
func scoreCandidate(slot Slot, candidateGM float64, set Settings, bays, rows, tiers int) float64 {
	w := set.Weights
	return w.Tier*tierTerm(slot.Coord.Tier, tiers) +
		w.Stability*stabilityTerm(candidateGM, set.GMThreshold) +
		w.Centerline*centerlineTerm(slot.Coord.Row, rows) +
		w.Bay*bayTerm(slot.Coord.Bay, bays, set.PreferredBayFrom, set.PreferredBayTo)
}

func tierTerm(tier, tiers int) float64 {
	if tiers <= 1 {
		return 1
	}
	return 1 - float64(tier)/float64(tiers-1)
}

// stabilityTerm maps the margin above threshold onto [0, 1) with diminishing
// returns: a metre of spare GM matters, ten metres barely more.
func stabilityTerm(candidateGM, threshold float64) float64 {
	margin := candidateGM - threshold
	if margin <= 0 {
		return 0
	}
	return margin / (1 + margin)
}

func centerlineTerm(row, rows int) float64 {
	if rows <= 1 {
		return 1
	}
	mid := float64(rows-1) / 2
	dev := float64(row) - mid
	if dev < 0 {
		dev = -dev
	}
	return 1 - dev/mid
}

func bayTerm(bay, bays, from, to int) float64 {
	if bay >= from && bay <= to {
		return 1
	}
	dist := from - bay
	if bay > to {
		dist = bay - to
	}
	if bays <= 1 {
		return 0
	}
	term := 1 - float64(dist)/float64(bays-1)
	if term < 0 {
		return 0
	}
	return term
}
