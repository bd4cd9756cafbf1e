package api

import (
	"fmt"
	"time"

	"github.com/eugenenazirov/stow-planner/internal/stowage"
)

type cargoUnitDTO struct {
	ID          string  `json:"id"`
	Size        string  `json:"size"`
	Kind        string  `json:"kind,omitempty"`
	HazmatClass string  `json:"hazmatClass,omitempty"`
	Weight      float64 `json:"weight"`
	Priority    int     `json:"priority,omitempty"`
}

type planRequest struct {
	Units    []cargoUnitDTO `json:"units"`
	Strategy string         `json:"strategy"`
}

type placementDTO struct {
	UnitID string  `json:"unitId"`
	Bay    int     `json:"bay"`
	Row    int     `json:"row"`
	Tier   int     `json:"tier"`
	GM     float64 `json:"gm"`
}

type unplacedDTO struct {
	UnitID string `json:"unitId"`
	Reason string `json:"reason"`
}

type metricsDTO struct {
	PlacementRate   float64 `json:"placementRate"`
	SlotUtilization float64 `json:"slotUtilization"`
	GM              float64 `json:"gm"`
	Stable          bool    `json:"stable"`
}

type planResponse struct {
	Strategy          string         `json:"strategy"`
	Placements        []placementDTO `json:"placements"`
	Unplaced          []unplacedDTO  `json:"unplaced"`
	Metrics           metricsDTO     `json:"metrics"`
	CalculationTimeMs int64          `json:"calculationTimeMs"`
}

type weightsDTO struct {
	Tier       float64 `json:"tier"`
	Stability  float64 `json:"stability"`
	Centerline float64 `json:"centerline"`
	Bay        float64 `json:"bay"`
}

type settingsDTO struct {
	GMThreshold      float64    `json:"gmThreshold"`
	HazmatSeparation int        `json:"hazmatSeparation"`
	PreferredBayFrom int        `json:"preferredBayFrom"`
	PreferredBayTo   int        `json:"preferredBayTo"`
	Weights          weightsDTO `json:"weights"`
}

type settingsResponse struct {
	Settings  settingsDTO `json:"settings"`
	UpdatedAt time.Time   `json:"updatedAt"`
	Message   string      `json:"message,omitempty"`
}

type shipResponse struct {
	LightshipWeight float64 `json:"lightshipWeight"`
	LightshipKG     float64 `json:"lightshipKg"`
	KB              float64 `json:"kb"`
	BM              float64 `json:"bm"`
	Bays            int     `json:"bays"`
	Rows            int     `json:"rows"`
	Tiers           int     `json:"tiers"`
	TotalSlots      int     `json:"totalSlots"`
	PoweredRows     []int   `json:"poweredRows"`
	FortyFootBays   []int   `json:"fortyFootBays"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func unitsFromDTO(dtos []cargoUnitDTO) ([]stowage.CargoUnit, error) {
	units := make([]stowage.CargoUnit, 0, len(dtos))
	for _, dto := range dtos {
		size, err := stowage.ParseSizeClass(dto.Size)
		if err != nil {
			return nil, fmt.Errorf("unit %q: %w", dto.ID, err)
		}
		kind, err := stowage.ParseCargoKind(dto.Kind)
		if err != nil {
			return nil, fmt.Errorf("unit %q: %w", dto.ID, err)
		}
		units = append(units, stowage.CargoUnit{
			ID:          dto.ID,
			Size:        size,
			Kind:        kind,
			HazmatClass: dto.HazmatClass,
			Weight:      dto.Weight,
			Priority:    dto.Priority,
		})
	}
	return units, nil
}

func planResponseFromResult(result *stowage.Result, elapsed time.Duration) planResponse {
	placements := make([]placementDTO, 0, len(result.Placements))
	for _, p := range result.Placements {
		placements = append(placements, placementDTO{
			UnitID: p.UnitID,
			Bay:    p.Slot.Bay,
			Row:    p.Slot.Row,
			Tier:   p.Slot.Tier,
			GM:     p.GM,
		})
	}

	unplaced := make([]unplacedDTO, 0, len(result.Unplaced))
	for _, u := range result.Unplaced {
		unplaced = append(unplaced, unplacedDTO{
			UnitID: u.UnitID,
			Reason: u.Reason.String(),
		})
	}

	return planResponse{
		Strategy:   result.Strategy.String(),
		Placements: placements,
		Unplaced:   unplaced,
		Metrics: metricsDTO{
			PlacementRate:   result.Metrics.PlacementRate,
			SlotUtilization: result.Metrics.SlotUtilization,
			GM:              result.Metrics.GM,
			Stable:          result.Metrics.Stable,
		},
		CalculationTimeMs: elapsed.Milliseconds(),
	}
}

func settingsToDTO(s stowage.Settings) settingsDTO {
	return settingsDTO{
		GMThreshold:      s.GMThreshold,
		HazmatSeparation: s.HazmatSeparation,
		PreferredBayFrom: s.PreferredBayFrom,
		PreferredBayTo:   s.PreferredBayTo,
		Weights: weightsDTO{
			Tier:       s.Weights.Tier,
			Stability:  s.Weights.Stability,
			Centerline: s.Weights.Centerline,
			Bay:        s.Weights.Bay,
		},
	}
}

func (dto settingsDTO) toSettings() stowage.Settings {
	return stowage.Settings{
		GMThreshold:      dto.GMThreshold,
		HazmatSeparation: dto.HazmatSeparation,
		PreferredBayFrom: dto.PreferredBayFrom,
		PreferredBayTo:   dto.PreferredBayTo,
		Weights: stowage.ScoringWeights{
			Tier:       dto.Weights.Tier,
			Stability:  dto.Weights.Stability,
			Centerline: dto.Weights.Centerline,
			Bay:        dto.Weights.Bay,
		},
	}
}
