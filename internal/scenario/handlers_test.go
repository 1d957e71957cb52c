package scenario

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	h := NewHandler(NewSessionStore(0), map[string]ChamberSetup{
		"house": {
			Baseline: Counts{Dem: 24, Rep: 100, Tossup: 0},
			Parties:  map[int]Party{1: PartyR, 2: PartyD},
		},
	})
	srv := httptest.NewServer(h.SetupRoutes())
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url, body string) (*http.Response, sessionResponse) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })

	var snap sessionResponse
	if resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
	}
	return resp, snap
}

// TestScenarioSession_Lifecycle drives create → toggle ×2 → reset over HTTP
// and checks the derived counts at each step.
func TestScenarioSession_Lifecycle(t *testing.T) {
	srv := testServer(t)

	resp, snap := postJSON(t, srv.URL+"/", `{"chamber":"house"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if snap.ID == "" || snap.HasChanges {
		t.Fatalf("unexpected fresh session %+v", snap)
	}

	// District 1 is baseline R: first toggle flips it to D.
	_, snap = postJSON(t, srv.URL+"/"+snap.ID+"/toggle", `{"district":1}`)
	if got := snap.ScenarioCounts; got != (Counts{Dem: 25, Rep: 99, Tossup: 0}) {
		t.Errorf("after flip: expected {25 99 0}, got %+v", got)
	}
	if snap.Serialized != "d1" {
		t.Errorf("expected serialized %q, got %q", "d1", snap.Serialized)
	}

	_, snap = postJSON(t, srv.URL+"/"+snap.ID+"/toggle", `{"district":1}`)
	if got := snap.ScenarioCounts; got != (Counts{Dem: 24, Rep: 99, Tossup: 1}) {
		t.Errorf("after tossup: expected {24 99 1}, got %+v", got)
	}

	_, snap = postJSON(t, srv.URL+"/"+snap.ID+"/reset", `{}`)
	if snap.HasChanges || snap.ScenarioCounts != snap.BaselineCounts {
		t.Errorf("after reset: expected baseline, got %+v", snap)
	}
}

// TestScenarioSession_HydrateFromSharedLink creates a session from a
// serialized scenario string.
func TestScenarioSession_HydrateFromSharedLink(t *testing.T) {
	srv := testServer(t)

	resp, snap := postJSON(t, srv.URL+"/", `{"chamber":"house","scenario":"d1,t2"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if snap.FlippedCount != 2 {
		t.Errorf("expected 2 overrides, got %d", snap.FlippedCount)
	}
	// d1: R→D (+1/-1); t2: D→tossup (-1 dem, +1 tossup).
	if got := snap.ScenarioCounts; got != (Counts{Dem: 24, Rep: 99, Tossup: 1}) {
		t.Errorf("expected {24 99 1}, got %+v", got)
	}
}

func TestScenarioSession_SetDistrict(t *testing.T) {
	srv := testServer(t)

	_, snap := postJSON(t, srv.URL+"/", `{"chamber":"house"}`)

	_, snap = postJSON(t, srv.URL+"/"+snap.ID+"/districts/2", `{"status":"r"}`)
	if got := snap.ScenarioCounts; got != (Counts{Dem: 23, Rep: 101, Tossup: 0}) {
		t.Errorf("expected {23 101 0}, got %+v", got)
	}

	// Setting baseline removes the override.
	_, snap = postJSON(t, srv.URL+"/"+snap.ID+"/districts/2", `{"status":""}`)
	if snap.HasChanges {
		t.Errorf("expected no changes after baseline set, got %+v", snap)
	}

	resp, _ := postJSON(t, srv.URL+"/"+snap.ID+"/districts/2", `{"status":"x"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown status, got %d", resp.StatusCode)
	}
}

func TestScenarioSession_Errors(t *testing.T) {
	srv := testServer(t)

	resp, _ := postJSON(t, srv.URL+"/", `{"chamber":"parliament"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("unknown chamber: expected 400, got %d", resp.StatusCode)
	}

	resp, _ = postJSON(t, srv.URL+"/no-such-id/toggle", `{"district":1}`)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("missing session: expected 404, got %d", resp.StatusCode)
	}

	getResp, err := http.Get(srv.URL + "/no-such-id")
	if err != nil {
		t.Fatal(err)
	}
	defer getResp.Body.Close()
	if getResp.StatusCode != http.StatusNotFound {
		t.Errorf("missing session: expected 404, got %d", getResp.StatusCode)
	}
}

// TestSessionStore_ExpiredSessionsPruned verifies the TTL is enforced on
// read, not just on the next create: an idle session past its TTL is gone
// even when no new sessions ever arrive.
func TestSessionStore_ExpiredSessionsPruned(t *testing.T) {
	store := NewSessionStore(10 * time.Millisecond)

	s := store.Create(NewEngine("house", Counts{}, nil))
	if store.Get(s.ID) == nil {
		t.Fatal("expected fresh session to be retrievable")
	}

	time.Sleep(25 * time.Millisecond)

	if store.Get(s.ID) != nil {
		t.Error("expected idle session past TTL to be dropped on Get")
	}
	if store.Len() != 0 {
		t.Errorf("expected expired session removed from the store, got %d", store.Len())
	}

	// Creating a new session sweeps any other leftovers too.
	stale := store.Create(NewEngine("house", Counts{}, nil))
	time.Sleep(25 * time.Millisecond)
	fresh := store.Create(NewEngine("house", Counts{}, nil))
	if store.Get(stale.ID) != nil {
		t.Error("expected stale session swept by create")
	}
	if store.Get(fresh.ID) == nil {
		t.Error("expected fresh session to survive the sweep")
	}
}

func TestSessionStore_CreateAndGet(t *testing.T) {
	store := NewSessionStore(0)

	s := store.Create(NewEngine("house", Counts{}, nil))
	if s.ID == "" {
		t.Fatal("expected a session id")
	}
	if got := store.Get(s.ID); got != s {
		t.Error("expected Get to return the created session")
	}
	if store.Get("nope") != nil {
		t.Error("expected nil for unknown id")
	}
	if store.Len() != 1 {
		t.Errorf("expected 1 session, got %d", store.Len())
	}
}
