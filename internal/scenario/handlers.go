package scenario

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/DistrictLens/DL-Backend/internal/metrics"
)

// ChamberSetup is the per-chamber ground truth a new session starts from,
// supplied by the composition root out of the chamber config.
type ChamberSetup struct {
	Baseline Counts
	Parties  map[int]Party
}

// Handler exposes scenario sessions over HTTP.
type Handler struct {
	store    *SessionStore
	chambers map[string]ChamberSetup
}

func NewHandler(store *SessionStore, chambers map[string]ChamberSetup) *Handler {
	return &Handler{store: store, chambers: chambers}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// sessionResponse is the snapshot returned by every session endpoint.
type sessionResponse struct {
	ID             string         `json:"id"`
	Chamber        string         `json:"chamber"`
	BaselineCounts Counts         `json:"baseline_counts"`
	ScenarioCounts Counts         `json:"scenario_counts"`
	HasChanges     bool           `json:"has_changes"`
	FlippedCount   int            `json:"flipped_count"`
	Serialized     string         `json:"serialized"`
	Overrides      map[int]Status `json:"overrides"`
}

func snapshot(s *Session) sessionResponse {
	var resp sessionResponse
	s.View(func(e *Engine) {
		resp = sessionResponse{
			ID:             s.ID,
			Chamber:        e.Chamber(),
			BaselineCounts: e.BaselineCounts(),
			ScenarioCounts: e.ScenarioCounts(),
			HasChanges:     e.HasChanges(),
			FlippedCount:   e.FlippedCount(),
			Serialized:     e.Serialize(),
			Overrides:      e.Overrides(),
		}
	})
	return resp
}

// CreateSession handles POST /scenarios
// Body: {"chamber": "house", "scenario": "d1,r2,t3"} — the scenario string is
// optional and hydrates the session from a shared link.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Chamber  string `json:"chamber"`
		Scenario string `json:"scenario"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	setup, ok := h.chambers[body.Chamber]
	if !ok {
		http.Error(w, "Unknown chamber: must be house or senate", http.StatusBadRequest)
		return
	}

	engine := NewEngine(body.Chamber, setup.Baseline, setup.Parties)
	if body.Scenario != "" {
		engine.Apply(Parse(body.Scenario))
	}

	session := h.store.Create(engine)
	metrics.ScenarioSessionsTotal.Inc()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(snapshot(session))
}

// GetSession handles GET /scenarios/{id}
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	session := h.store.Get(chi.URLParam(r, "id"))
	if session == nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}
	writeJSON(w, snapshot(session))
}

// ToggleDistrict handles POST /scenarios/{id}/toggle
// Body: {"district": 42}
func (h *Handler) ToggleDistrict(w http.ResponseWriter, r *http.Request) {
	session := h.store.Get(chi.URLParam(r, "id"))
	if session == nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	var body struct {
		District *int `json:"district"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.District == nil {
		http.Error(w, "Invalid request body: district is required", http.StatusBadRequest)
		return
	}

	session.Update(func(e *Engine) {
		e.ToggleDistrict(*body.District)
	})
	metrics.ScenarioTogglesTotal.Inc()

	writeJSON(w, snapshot(session))
}

// SetDistrict handles POST /scenarios/{id}/districts/{district}
// Body: {"status": "d"|"r"|"t"|""} — empty string returns the district to
// baseline.
func (h *Handler) SetDistrict(w http.ResponseWriter, r *http.Request) {
	session := h.store.Get(chi.URLParam(r, "id"))
	if session == nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	district, err := strconv.Atoi(chi.URLParam(r, "district"))
	if err != nil {
		http.Error(w, "Invalid district number", http.StatusBadRequest)
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	status := Status(body.Status)
	switch status {
	case StatusBaseline, StatusFlippedD, StatusFlippedR, StatusTossup:
	default:
		http.Error(w, "Invalid status: must be d, r, t or empty", http.StatusBadRequest)
		return
	}

	session.Update(func(e *Engine) {
		e.SetDistrictStatus(district, status)
	})

	writeJSON(w, snapshot(session))
}

// ResetSession handles POST /scenarios/{id}/reset
func (h *Handler) ResetSession(w http.ResponseWriter, r *http.Request) {
	session := h.store.Get(chi.URLParam(r, "id"))
	if session == nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	session.Update(func(e *Engine) {
		e.ResetScenario()
	})

	writeJSON(w, snapshot(session))
}
