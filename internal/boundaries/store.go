package boundaries

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/DistrictLens/DL-Backend/internal/metrics"
)

// LoadState tracks a collection's lifecycle. Transitions only move forward:
// unloaded → loading → loaded, or unloaded → loading → failed. A failed
// collection stays failed; there is no automatic retry within a process.
type LoadState string

const (
	StateUnloaded LoadState = "unloaded"
	StateLoading  LoadState = "loading"
	StateLoaded   LoadState = "loaded"
	StateFailed   LoadState = "failed"
)

// Source describes where one chamber's boundary file lives and which feature
// property carries the zero-padded district number (SLDLST / SLDUST).
type Source struct {
	URL         string
	PropertyKey string
}

type slot struct {
	state LoadState
	col   *Collection
	err   error
}

// Store owns the cached boundary collections for both chambers. Each
// collection is fetched and parsed at most once regardless of how many
// callers race on the first lookup: concurrent loads collapse onto a single
// in-flight fetch via singleflight, and the result (or failure) is pinned in
// the slot for the rest of the process.
type Store struct {
	fetcher Fetcher
	sources map[Chamber]Source

	group singleflight.Group
	mu    sync.Mutex
	slots map[Chamber]*slot
}

func NewStore(fetcher Fetcher, sources map[Chamber]Source) *Store {
	slots := make(map[Chamber]*slot, len(sources))
	for ch := range sources {
		slots[ch] = &slot{state: StateUnloaded}
	}
	return &Store{fetcher: fetcher, sources: sources, slots: slots}
}

// State reports a chamber's current load state, for health reporting.
func (s *Store) State(ch Chamber) LoadState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sl, ok := s.slots[ch]; ok {
		return sl.state
	}
	return StateUnloaded
}

// load returns the chamber's collection, triggering the fetch on first use.
// Callers arriving while a load is in flight attach to it rather than
// starting a second fetch.
func (s *Store) load(ctx context.Context, ch Chamber) (*Collection, error) {
	s.mu.Lock()
	sl, ok := s.slots[ch]
	if !ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("no boundary source configured for chamber %q", ch)
	}
	switch sl.state {
	case StateLoaded:
		s.mu.Unlock()
		return sl.col, nil
	case StateFailed:
		s.mu.Unlock()
		return nil, sl.err
	}
	s.mu.Unlock()

	// The load deliberately outlives the first caller: one request giving up
	// must not poison the shared fetch for everyone attached to it.
	loadCtx := context.WithoutCancel(ctx)

	v, err, _ := s.group.Do(string(ch), func() (any, error) {
		s.mu.Lock()
		// A previous flight may have finished between the slot check and Do.
		switch sl.state {
		case StateLoaded:
			s.mu.Unlock()
			return sl.col, nil
		case StateFailed:
			s.mu.Unlock()
			return nil, sl.err
		}
		sl.state = StateLoading
		s.mu.Unlock()

		start := time.Now()
		col, loadErr := s.fetchAndParse(loadCtx, ch)

		s.mu.Lock()
		defer s.mu.Unlock()
		if loadErr != nil {
			sl.state = StateFailed
			sl.err = loadErr
			metrics.BoundaryLoadsTotal.WithLabelValues(string(ch), "error").Inc()
			log.Printf("[boundaries] %s load failed after %s: %v", ch, time.Since(start).Round(time.Millisecond), loadErr)
			return nil, loadErr
		}
		sl.state = StateLoaded
		sl.col = col
		metrics.BoundaryLoadsTotal.WithLabelValues(string(ch), "ok").Inc()
		log.Printf("[boundaries] %s loaded: %d districts in %s", ch, len(col.Districts), time.Since(start).Round(time.Millisecond))
		return col, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Collection), nil
}

func (s *Store) fetchAndParse(ctx context.Context, ch Chamber) (*Collection, error) {
	src := s.sources[ch]
	data, err := s.fetcher.Fetch(ctx, src.URL)
	if err != nil {
		return nil, fmt.Errorf("loading %s boundaries: %w", ch, err)
	}
	col, err := ParseCollection(ch, src.PropertyKey, data)
	if err != nil {
		return nil, err
	}
	return col, nil
}

// loadBoth loads the two chambers in parallel and returns their collections
// alongside any per-chamber error.
func (s *Store) loadBoth(ctx context.Context) (house, senate *Collection, houseErr, senateErr error) {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		house, houseErr = s.load(ctx, ChamberHouse)
	}()
	go func() {
		defer wg.Done()
		senate, senateErr = s.load(ctx, ChamberSenate)
	}()
	wg.Wait()
	return house, senate, houseErr, senateErr
}

// Preload eagerly loads both chambers without performing a lookup. Safe to
// call at any point in the lifecycle: already-loaded chambers are a no-op,
// in-flight loads are awaited. Returns whether both collections are usable.
func (s *Store) Preload(ctx context.Context) bool {
	_, _, houseErr, senateErr := s.loadBoth(ctx)
	return houseErr == nil && senateErr == nil
}

// Resolve answers which legislative districts contain the given coordinate.
// It never returns an error value: every expected condition (load failure,
// point outside all boundaries) is folded into the LookupResult so callers
// can surface the right message without unwrapping anything.
func (s *Store) Resolve(ctx context.Context, lat, lng float64) LookupResult {
	house, senate, houseErr, senateErr := s.loadBoth(ctx)
	if houseErr != nil || senateErr != nil {
		return LookupResult{Success: false, Error: ErrLoadFailure}
	}

	pt := Point{Lat: lat, Lng: lng}
	var result LookupResult
	if n, ok := house.FindDistrict(pt); ok {
		result.HouseDistrict = &n
	}
	if n, ok := senate.FindDistrict(pt); ok {
		result.SenateDistrict = &n
	}

	result.Success = result.HouseDistrict != nil || result.SenateDistrict != nil
	if !result.Success {
		result.Error = ErrOutsideBoundaries
	}
	return result
}
