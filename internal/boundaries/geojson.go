package boundaries

import (
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"
)

type featureCollection struct {
	Type     string    `json:"type"`
	Features []feature `json:"features"`
}

type feature struct {
	Properties map[string]any `json:"properties"`
	Geometry   geometry       `json:"geometry"`
}

type geometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// ParseCollection decodes a GeoJSON FeatureCollection into a Collection,
// pulling each feature's district number from the given property key
// (SLDLST for house files, SLDUST for senate files). The property is a
// zero-padded numeric string ("075" → 75); features whose id is missing or
// unparsable are skipped rather than failing the load, as are features with
// degenerate geometry — a single bad feature must not take down the chamber.
func ParseCollection(chamber Chamber, propertyKey string, data []byte) (*Collection, error) {
	var fc featureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parsing %s boundary data: %w", chamber, err)
	}
	if !strings.EqualFold(fc.Type, "FeatureCollection") {
		return nil, fmt.Errorf("parsing %s boundary data: unexpected type %q", chamber, fc.Type)
	}

	col := &Collection{Chamber: chamber}
	for i, f := range fc.Features {
		number, ok := districtNumber(f.Properties, propertyKey)
		if !ok {
			log.Printf("[boundaries] %s feature %d: missing or unparsable %s, skipping", chamber, i, propertyKey)
			continue
		}

		polys, err := parseGeometry(f.Geometry)
		if err != nil {
			log.Printf("[boundaries] %s district %d: %v, skipping", chamber, number, err)
			continue
		}
		if len(polys) == 0 {
			log.Printf("[boundaries] %s district %d: empty geometry, skipping", chamber, number)
			continue
		}

		name, _ := f.Properties["NAMELSAD"].(string)
		col.Districts = append(col.Districts, District{
			Number:   number,
			Name:     name,
			Polygons: polys,
		})
	}

	return col, nil
}

// districtNumber extracts and parses the zero-padded district id property.
// Returns false for anything that doesn't parse to a non-negative integer.
func districtNumber(props map[string]any, key string) (int, bool) {
	raw, ok := props[key].(string)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func parseGeometry(g geometry) ([]Polygon, error) {
	switch strings.ToLower(g.Type) {
	case "polygon":
		var rings [][][]float64
		if err := json.Unmarshal(g.Coordinates, &rings); err != nil {
			return nil, fmt.Errorf("decoding polygon coordinates: %w", err)
		}
		poly, ok := buildPolygon(rings)
		if !ok {
			return nil, nil
		}
		return []Polygon{poly}, nil
	case "multipolygon":
		var parts [][][][]float64
		if err := json.Unmarshal(g.Coordinates, &parts); err != nil {
			return nil, fmt.Errorf("decoding multipolygon coordinates: %w", err)
		}
		var polys []Polygon
		for _, rings := range parts {
			if poly, ok := buildPolygon(rings); ok {
				polys = append(polys, poly)
			}
		}
		return polys, nil
	default:
		return nil, fmt.Errorf("unsupported geometry type %q", g.Type)
	}
}

// buildPolygon converts raw [lng,lat] ring coordinates into a Polygon with a
// precomputed bounding box. Rings with fewer than three vertices cannot
// contain anything and are dropped; a polygon whose outer ring is dropped is
// rejected entirely.
func buildPolygon(rawRings [][][]float64) (Polygon, bool) {
	var poly Polygon
	for _, rawRing := range rawRings {
		if len(rawRing) < 3 {
			if len(poly.Rings) == 0 {
				return Polygon{}, false
			}
			continue
		}
		ring := make([]Point, 0, len(rawRing))
		for _, coord := range rawRing {
			if len(coord) < 2 {
				continue
			}
			ring = append(ring, Point{Lat: coord[1], Lng: coord[0]})
		}
		if len(ring) < 3 {
			if len(poly.Rings) == 0 {
				return Polygon{}, false
			}
			continue
		}
		poly.Rings = append(poly.Rings, ring)
	}
	if len(poly.Rings) == 0 {
		return Polygon{}, false
	}
	poly.BBox = computeBBox(poly.Rings)
	return poly, true
}

func computeBBox(rings [][]Point) [4]float64 {
	bbox := [4]float64{180, 90, -180, -90}
	for _, ring := range rings {
		for _, pt := range ring {
			if pt.Lng < bbox[0] {
				bbox[0] = pt.Lng
			}
			if pt.Lat < bbox[1] {
				bbox[1] = pt.Lat
			}
			if pt.Lng > bbox[2] {
				bbox[2] = pt.Lng
			}
			if pt.Lat > bbox[3] {
				bbox[3] = pt.Lat
			}
		}
	}
	return bbox
}
