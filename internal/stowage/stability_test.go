package stowage

import (
	"errors"
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func validProfile() ShipProfile {
	return ShipProfile{
		LightshipWeight: 8600,
		LightshipKG:     9.1,
		KB:              4.9,
		BM:              7.4,
		TierBaseHeight:  2.2,
		TierHeightStep:  2.6,
	}
}

func TestUpdateKG(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		priorWeight float64
		priorKG     float64
		addedWeight float64
		height      float64
		want        float64
		wantErr     error
	}{
		{
			name:        "CargoBelowCentreLowersKG",
			priorWeight: 100, priorKG: 5, addedWeight: 10, height: 2,
			want: (100*5 + 10*2) / 110.0,
		},
		{
			name:        "CargoAboveCentreRaisesKG",
			priorWeight: 100, priorKG: 5, addedWeight: 10, height: 6,
			want: (100*5 + 10*6) / 110.0,
		},
		{
			name:        "CargoAtCentreKeepsKG",
			priorWeight: 200, priorKG: 4.5, addedWeight: 50, height: 4.5,
			want: 4.5,
		},
		{
			name:        "ZeroDisplacement",
			priorWeight: 0, priorKG: 0, addedWeight: 0, height: 5,
			wantErr: ErrZeroDisplacement,
		},
		{
			name:        "NegativeDisplacement",
			priorWeight: -10, priorKG: 5, addedWeight: 5, height: 3,
			wantErr: ErrZeroDisplacement,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := UpdateKG(tc.priorWeight, tc.priorKG, tc.addedWeight, tc.height)

			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected error %v, got %v", tc.wantErr, err)
			}
			if tc.wantErr != nil {
				return
			}
			if !almostEqual(got, tc.want) {
				t.Fatalf("expected KG %.9f, got %.9f", tc.want, got)
			}
		})
	}
}

func TestComputeGM(t *testing.T) {
	t.Parallel()

	profile := validProfile()
	gm, err := ComputeGM(profile, profile.LightshipKG)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := 4.9 + 7.4 - 9.1; !almostEqual(gm, want) {
		t.Fatalf("expected GM %.3f, got %.3f", want, gm)
	}
}

func TestComputeGMMissingConstants(t *testing.T) {
	t.Parallel()

	for _, profile := range []ShipProfile{
		{KB: 0, BM: 7.4},
		{KB: 4.9, BM: 0},
		{},
	} {
		if _, err := ComputeGM(profile, 9.1); !errors.Is(err, ErrMissingStabilityConstants) {
			t.Fatalf("expected ErrMissingStabilityConstants for %+v, got %v", profile, err)
		}
	}
}

func TestNewShipStateRejectsInvalidProfiles(t *testing.T) {
	t.Parallel()

	invalid := []ShipProfile{
		{},
		{LightshipWeight: -1, LightshipKG: 9, KB: 5, BM: 7, TierBaseHeight: 2, TierHeightStep: 2},
		{LightshipWeight: 8600, LightshipKG: 0, KB: 5, BM: 7, TierBaseHeight: 2, TierHeightStep: 2},
		{LightshipWeight: 8600, LightshipKG: 9, KB: 0, BM: 7, TierBaseHeight: 2, TierHeightStep: 2},
		{LightshipWeight: 8600, LightshipKG: 9, KB: 5, BM: 7, TierBaseHeight: 2, TierHeightStep: 0},
	}

	for _, profile := range invalid {
		if _, err := NewShipState(profile); !errors.Is(err, ErrInvalidProfile) {
			t.Fatalf("expected ErrInvalidProfile for %+v, got %v", profile, err)
		}
	}
}

func TestShipStateCommitRecomputesFromMoments(t *testing.T) {
	t.Parallel()

	profile := validProfile()
	ship, err := NewShipState(profile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	commits := []struct{ weight, height float64 }{
		{22.5, profile.TierHeight(0)},
		{18.0, profile.TierHeight(1)},
		{14.5, profile.TierHeight(2)},
	}

	cargoWeight := 0.0
	cargoMoment := 0.0
	for _, c := range commits {
		if err := ship.Commit(c.weight, c.height); err != nil {
			t.Fatalf("unexpected commit error: %v", err)
		}
		cargoWeight += c.weight
		cargoMoment += c.weight * c.height

		wantKG := (profile.LightshipWeight*profile.LightshipKG + cargoMoment) / (profile.LightshipWeight + cargoWeight)
		if !almostEqual(ship.KG(), wantKG) {
			t.Fatalf("expected KG %.9f after commit, got %.9f", wantKG, ship.KG())
		}
		if !almostEqual(ship.GM(), profile.KB+profile.BM-wantKG) {
			t.Fatalf("expected GM %.9f after commit, got %.9f", profile.KB+profile.BM-wantKG, ship.GM())
		}
	}

	if want := profile.LightshipWeight + cargoWeight; !almostEqual(ship.TotalWeight(), want) {
		t.Fatalf("expected total weight %.3f, got %.3f", want, ship.TotalWeight())
	}
}

func TestSimulateGMDoesNotMutate(t *testing.T) {
	t.Parallel()

	ship, err := NewShipState(validProfile())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	beforeKG := ship.KG()
	beforeGM := ship.GM()
	beforeWeight := ship.TotalWeight()

	simulated, err := ship.SimulateGM(30, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if simulated >= beforeGM {
		t.Fatalf("expected simulated GM below %.3f for high cargo, got %.3f", beforeGM, simulated)
	}

	if ship.KG() != beforeKG || ship.GM() != beforeGM || ship.TotalWeight() != beforeWeight {
		t.Fatalf("SimulateGM mutated ship state")
	}
}
