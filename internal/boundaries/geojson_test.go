package boundaries

import "testing"

const houseFixture = `{
	"type": "FeatureCollection",
	"features": [
		{
			"properties": {"SLDLST": "075", "NAMELSAD": "State House District 75"},
			"geometry": {"type": "Polygon", "coordinates": [[[0,0],[10,0],[10,10],[0,10],[0,0]]]}
		},
		{
			"properties": {"SLDLST": "012"},
			"geometry": {"type": "MultiPolygon", "coordinates": [
				[[[20,20],[30,20],[30,30],[20,30],[20,20]]],
				[[[40,40],[45,40],[45,45],[40,45],[40,40]]]
			]}
		}
	]
}`

// TestParseCollection_ZeroPaddedIDs verifies "075" parses to district 75 and
// "012" to 12, and that names come along when present.
func TestParseCollection_ZeroPaddedIDs(t *testing.T) {
	col, err := ParseCollection(ChamberHouse, "SLDLST", []byte(houseFixture))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(col.Districts) != 2 {
		t.Fatalf("expected 2 districts, got %d", len(col.Districts))
	}

	if col.Districts[0].Number != 75 {
		t.Errorf("expected district 75, got %d", col.Districts[0].Number)
	}
	if col.Districts[0].Name != "State House District 75" {
		t.Errorf("unexpected name %q", col.Districts[0].Name)
	}
	if col.Districts[1].Number != 12 {
		t.Errorf("expected district 12, got %d", col.Districts[1].Number)
	}
	if len(col.Districts[1].Polygons) != 2 {
		t.Errorf("expected 2 polygons from MultiPolygon, got %d", len(col.Districts[1].Polygons))
	}
}

// TestParseCollection_SkipsBadFeatures checks fail-closed id parsing and
// malformed-geometry resilience: bad features drop out, the rest load.
func TestParseCollection_SkipsBadFeatures(t *testing.T) {
	data := `{
		"type": "FeatureCollection",
		"features": [
			{
				"properties": {"SLDLST": "not-a-number"},
				"geometry": {"type": "Polygon", "coordinates": [[[0,0],[1,0],[1,1],[0,1],[0,0]]]}
			},
			{
				"properties": {"SLDUST": "022"},
				"geometry": {"type": "Polygon", "coordinates": [[[0,0],[1,0],[1,1],[0,1],[0,0]]]}
			},
			{
				"properties": {"SLDLST": "005"},
				"geometry": {"type": "Point", "coordinates": [1, 2]}
			},
			{
				"properties": {"SLDLST": "007"},
				"geometry": {"type": "Polygon", "coordinates": [[[0,0],[1,1]]]}
			},
			{
				"properties": {"SLDLST": "009"},
				"geometry": {"type": "Polygon", "coordinates": [[[0,0],[1,0],[1,1],[0,1],[0,0]]]}
			}
		]
	}`

	col, err := ParseCollection(ChamberHouse, "SLDLST", []byte(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Only "009" survives: bad id, wrong property key, unsupported geometry
	// and a two-vertex ring are all skipped.
	if len(col.Districts) != 1 || col.Districts[0].Number != 9 {
		t.Fatalf("expected only district 9 to survive, got %+v", col.Districts)
	}
}

func TestParseCollection_RejectsNonFeatureCollection(t *testing.T) {
	if _, err := ParseCollection(ChamberHouse, "SLDLST", []byte(`{"type":"Feature"}`)); err == nil {
		t.Error("expected error for non-FeatureCollection input")
	}
	if _, err := ParseCollection(ChamberHouse, "SLDLST", []byte(`not json`)); err == nil {
		t.Error("expected error for invalid JSON")
	}
}
