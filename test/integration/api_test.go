package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/eugenenazirov/stow-planner/internal/application"
	"github.com/eugenenazirov/stow-planner/internal/config"
)

const configYAML = `
port: "8080"
enable_request_logging: false
ship:
  lightship_weight: 8600
  lightship_kg: 9.1
  kb: 4.9
  bm: 7.4
  tier_base_height: 2.2
  tier_height_step: 2.6
grid:
  bays: 6
  rows: 5
  tiers: 3
  base_tier_capacity: 60
  tier_capacity_step: 10
  max_stack_weight: 150
  powered_rows: [0, 4]
  forty_foot_bays: [1, 3, 5]
stowage:
  gm_threshold: 0.3
  hazmat_separation: 3
`

func newAppHandler(t *testing.T) http.Handler {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(configYAML), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	cfg, err := config.Load(&config.CLIOverrides{ConfigFile: path})
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	app, err := application.New(cfg, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("build application: %v", err)
	}
	return app.Server().Handler
}

func performRequest(t *testing.T, handler http.Handler, method, target string, body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestIntegrationFlow(t *testing.T) {
	handler := newAppHandler(t)
	jsonHeaders := map[string]string{"Content-Type": "application/json"}

	rec := performRequest(t, handler, http.MethodGet, "/api/health", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from health, got %d", rec.Code)
	}

	rec = performRequest(t, handler, http.MethodGet, "/api/ship", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from ship, got %d", rec.Code)
	}
	var ship struct {
		Bays       int `json:"bays"`
		TotalSlots int `json:"totalSlots"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&ship); err != nil {
		t.Fatalf("decode ship response: %v", err)
	}
	if ship.Bays != 6 || ship.TotalSlots != 6*5*3 {
		t.Fatalf("unexpected ship summary: %+v", ship)
	}

	settingsPayload, _ := json.Marshal(map[string]any{
		"gmThreshold":      0.35,
		"hazmatSeparation": 2,
		"preferredBayFrom": 1,
		"preferredBayTo":   4,
		"weights": map[string]float64{
			"tier":       1.0,
			"stability":  1.0,
			"centerline": 0.5,
			"bay":        0.25,
		},
	})
	rec = performRequest(t, handler, http.MethodPut, "/api/settings", settingsPayload, jsonHeaders)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from settings update, got %d: %s", rec.Code, rec.Body.String())
	}

	planPayload, _ := json.Marshal(map[string]any{
		"strategy": "heavy_first",
		"units": []map[string]any{
			{"id": "GEN-1", "size": "TEU20", "kind": "general", "weight": 22.5},
			{"id": "GEN-2", "size": "TEU40", "kind": "general", "weight": 28.0},
			{"id": "REEF-1", "size": "TEU20", "kind": "reefer", "weight": 18.0},
			{"id": "HAZ-1", "size": "TEU20", "kind": "hazmat", "hazmatClass": "3", "weight": 14.5},
			{"id": "HAZ-2", "size": "TEU40", "kind": "hazmat", "hazmatClass": "8", "weight": 16.0},
		},
	})
	rec = performRequest(t, handler, http.MethodPost, "/api/plan", planPayload, jsonHeaders)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from plan, got %d: %s", rec.Code, rec.Body.String())
	}

	var plan struct {
		Strategy   string `json:"strategy"`
		Placements []struct {
			UnitID string  `json:"unitId"`
			Bay    int     `json:"bay"`
			Row    int     `json:"row"`
			Tier   int     `json:"tier"`
			GM     float64 `json:"gm"`
		} `json:"placements"`
		Unplaced []struct {
			UnitID string `json:"unitId"`
			Reason string `json:"reason"`
		} `json:"unplaced"`
		Metrics struct {
			PlacementRate float64 `json:"placementRate"`
			GM            float64 `json:"gm"`
			Stable        bool    `json:"stable"`
		} `json:"metrics"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&plan); err != nil {
		t.Fatalf("decode plan response: %v", err)
	}

	if plan.Strategy != "heavy_first" {
		t.Fatalf("unexpected strategy %s", plan.Strategy)
	}
	if len(plan.Placements) != 5 || len(plan.Unplaced) != 0 {
		t.Fatalf("expected all 5 units placed, got %d placed / %d unplaced: %+v",
			len(plan.Placements), len(plan.Unplaced), plan.Unplaced)
	}
	if plan.Metrics.PlacementRate != 100 {
		t.Fatalf("expected placement rate 100, got %.1f", plan.Metrics.PlacementRate)
	}
	if !plan.Metrics.Stable || plan.Metrics.GM < 0.35 {
		t.Fatalf("expected stable plan with GM above threshold, got %+v", plan.Metrics)
	}

	// The updated GM threshold is reflected in each placement commit.
	for _, p := range plan.Placements {
		if p.GM < 0.35 {
			t.Fatalf("placement %s committed below threshold: GM %.3f", p.UnitID, p.GM)
		}
	}
}

func TestIntegrationRejectsMalformedPlan(t *testing.T) {
	handler := newAppHandler(t)

	rec := performRequest(t, handler, http.MethodPost, "/api/plan", []byte("{not json"), map[string]string{"Content-Type": "application/json"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed payload, got %d", rec.Code)
	}
}
