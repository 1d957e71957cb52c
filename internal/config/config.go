package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/DistrictLens/DL-Backend/internal/scenario"
)

// ChamberConfig describes one legislative chamber: where its boundary file
// lives, which GeoJSON property carries the district number, and the baseline
// electoral ground truth the scenario engine starts from.
type ChamberConfig struct {
	BoundaryURL      string                 `yaml:"boundary_url"`
	DistrictProperty string                 `yaml:"district_property"`
	Baseline         scenario.Counts        `yaml:"baseline"`
	Parties          map[int]scenario.Party `yaml:"parties"`
}

type Config struct {
	Chambers map[string]ChamberConfig `yaml:"chambers"`
}

// Default district-number property keys in Census TIGER exports.
var defaultProperties = map[string]string{
	"house":  "SLDLST",
	"senate": "SLDUST",
}

// Load reads and validates the chamber configuration. The path defaults to
// chambers.yaml; deployments override it via the CHAMBER_CONFIG env var.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("CHAMBER_CONFIG")
	}
	if path == "" {
		path = "chambers.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading chamber config: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates chamber configuration YAML.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing chamber config: %w", err)
	}

	for _, name := range []string{"house", "senate"} {
		ch, ok := cfg.Chambers[name]
		if !ok {
			return nil, fmt.Errorf("chamber config missing %q", name)
		}
		if ch.BoundaryURL == "" {
			return nil, fmt.Errorf("chamber %q: boundary_url is required", name)
		}
		if ch.DistrictProperty == "" {
			ch.DistrictProperty = defaultProperties[name]
		}
		if ch.Baseline.Dem < 0 || ch.Baseline.Rep < 0 || ch.Baseline.Tossup < 0 {
			return nil, fmt.Errorf("chamber %q: baseline counts must be non-negative", name)
		}
		for district, party := range ch.Parties {
			if party != scenario.PartyD && party != scenario.PartyR {
				return nil, fmt.Errorf("chamber %q district %d: party must be D or R, got %q", name, district, party)
			}
		}
		cfg.Chambers[name] = ch
	}

	return &cfg, nil
}
