package boundaries

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testHandler(t *testing.T, fetcher Fetcher) *Handler {
	t.Helper()
	return NewHandler(NewStore(fetcher, testSources()), nil)
}

// TestLookupHandler_Success drives the full HTTP path for a resolvable point.
func TestLookupHandler_Success(t *testing.T) {
	h := testHandler(t, workingFetcher(0))

	req := httptest.NewRequest(http.MethodGet, "/lookup?lat=5&lng=5", nil)
	rec := httptest.NewRecorder()
	h.Lookup(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result LookupResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !result.Success || result.HouseDistrict == nil || *result.HouseDistrict != 75 {
		t.Errorf("unexpected result %+v", result)
	}
}

// TestLookupHandler_BadParams rejects missing, malformed and out-of-range
// coordinates with 400 before touching the store.
func TestLookupHandler_BadParams(t *testing.T) {
	h := testHandler(t, &fakeFetcher{})

	for _, query := range []string{
		"",
		"lat=5",
		"lng=5",
		"lat=abc&lng=5",
		"lat=5&lng=abc",
		"lat=91&lng=0",
		"lat=0&lng=181",
	} {
		req := httptest.NewRequest(http.MethodGet, "/lookup?"+query, nil)
		rec := httptest.NewRecorder()
		h.Lookup(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("query %q: expected 400, got %d", query, rec.Code)
		}
	}
}

// TestLookupHandler_LoadFailureBody: transport failures still produce a 200
// with the structured failure result, since the client branches on the body.
func TestLookupHandler_LoadFailureBody(t *testing.T) {
	h := testHandler(t, &fakeFetcher{})

	req := httptest.NewRequest(http.MethodGet, "/lookup?lat=5&lng=5", nil)
	rec := httptest.NewRecorder()
	h.Lookup(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var result LookupResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if result.Success || result.Error != ErrLoadFailure {
		t.Errorf("expected load-failure result, got %+v", result)
	}
}

func TestHealthHandler(t *testing.T) {
	h := testHandler(t, workingFetcher(0))

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	var states map[string]LoadState
	if err := json.Unmarshal(rec.Body.Bytes(), &states); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if states["house"] != StateUnloaded || states["senate"] != StateUnloaded {
		t.Errorf("expected both chambers unloaded before first lookup, got %v", states)
	}
}

func TestPreloadHandler(t *testing.T) {
	h := testHandler(t, workingFetcher(0))

	rec := httptest.NewRecorder()
	h.PreloadBoundaries(rec, httptest.NewRequest(http.MethodPost, "/preload", nil))

	var body map[string]bool
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !body["loaded"] {
		t.Error("expected loaded=true")
	}
}
