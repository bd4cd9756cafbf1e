package stowage

import (
	"errors"
	"fmt"
	"testing"
)

func TestDefaultSettingsAreValid(t *testing.T) {
	t.Parallel()

	if err := DefaultSettings().Validate(); err != nil {
		t.Fatalf("default settings must validate, got %v", err)
	}
	if DefaultSettings().HazmatSeparation != DefaultHazmatSeparation {
		t.Fatalf("default separation should be %d", DefaultHazmatSeparation)
	}
}

func TestSettingsValidateRejectsInvalid(t *testing.T) {
	t.Parallel()

	mutations := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"ZeroThreshold", func(s *Settings) { s.GMThreshold = 0 }},
		{"NegativeThreshold", func(s *Settings) { s.GMThreshold = -0.5 }},
		{"NegativeSeparation", func(s *Settings) { s.HazmatSeparation = -1 }},
		{"NegativeBayFrom", func(s *Settings) { s.PreferredBayFrom = -1 }},
		{"InvertedBayRange", func(s *Settings) { s.PreferredBayFrom = 5; s.PreferredBayTo = 2 }},
		{"NegativeTierWeight", func(s *Settings) { s.Weights.Tier = -1 }},
		{"NegativeStabilityWeight", func(s *Settings) { s.Weights.Stability = -1 }},
		{"NegativeCenterlineWeight", func(s *Settings) { s.Weights.Centerline = -1 }},
		{"NegativeBayWeight", func(s *Settings) { s.Weights.Bay = -1 }},
	}

	for _, tc := range mutations {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			settings := DefaultSettings()
			tc.mutate(&settings)
			if err := settings.Validate(); !errors.Is(err, ErrInvalidSettings) {
				t.Fatalf("expected ErrInvalidSettings, got %v", err)
			}
		})
	}
}

func TestParseSizeClass(t *testing.T) {
	t.Parallel()

	valid := map[string]SizeClass{
		"TEU20": TEU20, "teu20": TEU20, "20": TEU20, "20ft": TEU20,
		"TEU40": TEU40, " 40 ": TEU40, "40FT": TEU40,
	}
	for raw, want := range valid {
		got, err := ParseSizeClass(raw)
		if err != nil || got != want {
			t.Fatalf("ParseSizeClass(%q) = %v, %v; want %v", raw, got, err, want)
		}
	}

	for _, raw := range []string{"", "45", "TEU45", "big"} {
		if _, err := ParseSizeClass(raw); !errors.Is(err, ErrInvalidCargo) {
			t.Fatalf("expected ErrInvalidCargo for %q, got %v", raw, err)
		}
	}
}

func TestParseCargoKind(t *testing.T) {
	t.Parallel()

	valid := map[string]CargoKind{
		"": KindGeneral, "general": KindGeneral, "Reefer": KindReefer, "HAZMAT": KindHazmat,
	}
	for raw, want := range valid {
		got, err := ParseCargoKind(raw)
		if err != nil || got != want {
			t.Fatalf("ParseCargoKind(%q) = %v, %v; want %v", raw, got, err, want)
		}
	}

	if _, err := ParseCargoKind("frozen"); !errors.Is(err, ErrInvalidCargo) {
		t.Fatalf("expected ErrInvalidCargo, got %v", err)
	}
}

func TestParseStrategy(t *testing.T) {
	t.Parallel()

	for raw, want := range map[string]Strategy{
		"heavy_first":  StrategyHeavyFirst,
		"priority":     StrategyPriority,
		"hazmat_first": StrategyHazmatFirst,
	} {
		got, err := ParseStrategy(raw)
		if err != nil || got != want {
			t.Fatalf("ParseStrategy(%q) = %v, %v; want %v", raw, got, err, want)
		}
		if got.String() != raw {
			t.Fatalf("round trip failed for %q: got %q", raw, got.String())
		}
	}

	if _, err := ParseStrategy("optimal"); !errors.Is(err, ErrUnknownStrategy) {
		t.Fatalf("expected ErrUnknownStrategy, got %v", err)
	}
}

func TestReasonStrings(t *testing.T) {
	t.Parallel()

	reasons := []Reason{
		ReasonNone, ReasonNoMatchingSlots, ReasonSizeMismatch, ReasonSlotOccupied,
		ReasonTierCapacity, ReasonStackLimit, ReasonPowerUnavailable,
		ReasonHazmatSeparation, ReasonStability,
	}
	seen := make(map[string]struct{}, len(reasons))
	for _, r := range reasons {
		s := r.String()
		if s == "" || s == "unknown" {
			t.Fatalf("reason %d has no name", r)
		}
		if _, dup := seen[s]; dup {
			t.Fatalf("duplicate reason name %q", s)
		}
		seen[s] = struct{}{}
	}

	if fmt.Sprintf("%s", Reason(200)) != "unknown" {
		t.Fatalf("out-of-range reason should stringify as unknown")
	}
}
