package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/eugenenazirov/stow-planner/internal/stowage"
	"github.com/eugenenazirov/stow-planner/internal/storage"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// Handler wires the stowage engine and settings storage into HTTP handlers.
// The ship profile and grid spec are fixed at startup; planner settings are
// read from storage per request so PUT /api/settings takes effect on the next
// plan without a restart.
type Handler struct {
	profile  stowage.ShipProfile
	gridSpec stowage.GridSpec
	storage  storage.Storage

	clock func() time.Time

	mu                sync.RWMutex
	settingsUpdatedAt time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// NewHandler constructs a Handler with the provided dependencies.
func NewHandler(profile stowage.ShipProfile, gridSpec stowage.GridSpec, store storage.Storage, opts ...HandlerOption) *Handler {
	h := &Handler{
		profile:  profile,
		gridSpec: gridSpec,
		storage:  store,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	h.settingsUpdatedAt = h.clock()
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := healthResponse{
		Status:    "ok",
		Timestamp: h.clock(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetShip(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := shipResponse{
		LightshipWeight: h.profile.LightshipWeight,
		LightshipKG:     h.profile.LightshipKG,
		KB:              h.profile.KB,
		BM:              h.profile.BM,
		Bays:            h.gridSpec.Bays,
		Rows:            h.gridSpec.Rows,
		Tiers:           h.gridSpec.Tiers,
		TotalSlots:      h.gridSpec.Bays * h.gridSpec.Rows * h.gridSpec.Tiers,
		PoweredRows:     h.gridSpec.PoweredRows,
		FortyFootBays:   h.gridSpec.FortyFootBays,
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	_ = r
	settings, err := h.storage.GetSettings()
	if err != nil {
		writeInternalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, settingsResponse{
		Settings:  settingsToDTO(settings),
		UpdatedAt: h.currentSettingsUpdatedAt(),
	})
}

func (h *Handler) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}

	if err := h.storage.SetSettings(req.toSettings()); err != nil {
		if errors.Is(err, stowage.ErrInvalidSettings) {
			writeError(w, http.StatusBadRequest, "Invalid settings", err.Error())
			return
		}
		writeInternalError(w, err)
		return
	}

	h.markSettingsUpdated()

	settings, err := h.storage.GetSettings()
	if err != nil {
		writeInternalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, settingsResponse{
		Settings:  settingsToDTO(settings),
		UpdatedAt: h.currentSettingsUpdatedAt(),
		Message:   "Settings updated successfully",
	})
}

func (h *Handler) handlePlan(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}

	if len(req.Units) == 0 {
		writeError(w, http.StatusBadRequest, "Invalid request", "units must contain at least one cargo unit")
		return
	}

	strategy, err := stowage.ParseStrategy(req.Strategy)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid strategy", err.Error())
		return
	}

	units, err := unitsFromDTO(req.Units)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid cargo unit", err.Error())
		return
	}

	settings, err := h.storage.GetSettings()
	if err != nil {
		writeInternalError(w, err)
		return
	}

	engine, err := stowage.NewEngine(h.profile, h.gridSpec, settings)
	if err != nil {
		writeInternalError(w, err)
		return
	}

	start := time.Now()
	result, packErr := engine.Pack(r.Context(), units, strategy)
	elapsed := time.Since(start)

	if packErr != nil {
		switch {
		case errors.Is(packErr, stowage.ErrInvalidCargo):
			writeError(w, http.StatusBadRequest, "Invalid cargo unit", packErr.Error())
		case errors.Is(packErr, stowage.ErrUnknownStrategy):
			writeError(w, http.StatusBadRequest, "Invalid strategy", packErr.Error())
		case errors.Is(packErr, context.Canceled), errors.Is(packErr, context.DeadlineExceeded):
			writeError(w, http.StatusServiceUnavailable, "Plan aborted", packErr.Error())
		default:
			writeInternalError(w, packErr)
		}
		return
	}

	writeJSON(w, http.StatusOK, planResponseFromResult(result, elapsed))
}

func (h *Handler) currentSettingsUpdatedAt() time.Time {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.settingsUpdatedAt
}

func (h *Handler) markSettingsUpdated() {
	h.mu.Lock()
	h.settingsUpdatedAt = h.clock()
	h.mu.Unlock()
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, errorResponse{
		Error:   message,
		Details: details,
	})
}

func writeInternalError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, "Internal error", err.Error())
}
