package boundaries

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/DistrictLens/DL-Backend/internal/metrics"
)

// Handler exposes the resolver over HTTP. The store and cache are injected by
// the composition root so tests can run against fakes.
type Handler struct {
	store *Store
	cache *ResultCache
}

func NewHandler(store *Store, cache *ResultCache) *Handler {
	return &Handler{store: store, cache: cache}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// Lookup handles GET /districts/lookup?lat=..&lng=..
// The response body is always a LookupResult; only malformed coordinates get
// a non-200 status, since load failures and outside-boundaries misses are
// expected conditions the client UI branches on.
func (h *Handler) Lookup(w http.ResponseWriter, r *http.Request) {
	lat, lng, err := parseCoords(r.URL.Query().Get("lat"), r.URL.Query().Get("lng"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	metrics.LookupsTotal.Inc()
	t0 := time.Now()

	result, cached := h.cache.Get(r.Context(), lat, lng)
	if !cached {
		result = h.store.Resolve(r.Context(), lat, lng)
		h.cache.Set(r.Context(), lat, lng, result)
	}

	if result.Success {
		metrics.LookupMatchesTotal.Inc()
	} else if result.Error == ErrOutsideBoundaries {
		metrics.LookupMissesTotal.Inc()
	}
	metrics.LookupDurationMs.Observe(float64(time.Since(t0).Milliseconds()))

	writeJSON(w, result)
}

// Health handles GET /districts/health — per-chamber load state so operators
// can tell a failed boundary source from a cold cache.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]LoadState{
		"house":  h.store.State(ChamberHouse),
		"senate": h.store.State(ChamberSenate),
	})
}

// PreloadBoundaries handles POST /districts/preload (admin): eagerly loads
// both chambers so the first user lookup doesn't pay the fetch cost.
func (h *Handler) PreloadBoundaries(w http.ResponseWriter, r *http.Request) {
	ok := h.store.Preload(r.Context())
	if !ok {
		log.Printf("[boundaries] preload failed: house=%s senate=%s",
			h.store.State(ChamberHouse), h.store.State(ChamberSenate))
	}
	writeJSON(w, map[string]bool{"loaded": ok})
}

func parseCoords(latStr, lngStr string) (float64, float64, error) {
	if latStr == "" || lngStr == "" {
		return 0, 0, fmt.Errorf("missing lat or lng parameter")
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid lat parameter")
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid lng parameter")
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return 0, 0, fmt.Errorf("coordinates out of range")
	}
	return lat, lng, nil
}
