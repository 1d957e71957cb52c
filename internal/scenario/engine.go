package scenario

// Party identifies which party currently holds a district. Districts with no
// known incumbent (vacant seats, nonpartisan offices) are simply absent from
// the baseline party map.
type Party string

const (
	PartyD Party = "D"
	PartyR Party = "R"
)

// Status is a hypothetical override applied to one district. Baseline is
// represented by absence from the override map and is never stored literally;
// StatusBaseline exists only so callers of SetDistrictStatus can request
// "remove my override".
type Status string

const (
	StatusBaseline Status = ""
	StatusFlippedD Status = "d"
	StatusFlippedR Status = "r"
	StatusTossup   Status = "t"
)

// Counts is an aggregate seat tally for one chamber.
type Counts struct {
	Dem    int `json:"dem" yaml:"dem"`
	Rep    int `json:"rep" yaml:"rep"`
	Tossup int `json:"tossup" yaml:"tossup"`
}

// Engine holds the what-if state for one chamber: a sparse map of district
// overrides on top of an immutable baseline. All operations are synchronous
// and never fail; the caller owns concurrency (one engine per session,
// mutated under the session store's lock).
type Engine struct {
	chamber   string
	baseline  Counts
	parties   map[int]Party
	overrides map[int]Status
}

// NewEngine builds an engine for a chamber from its baseline seat counts and
// the district → incumbent-party map. The parties map is treated as read-only
// ground truth; districts missing from it take the unknown-party toggle cycle.
func NewEngine(chamber string, baseline Counts, parties map[int]Party) *Engine {
	return &Engine{
		chamber:   chamber,
		baseline:  baseline,
		parties:   parties,
		overrides: make(map[int]Status),
	}
}

// Chamber returns the chamber tag this engine was built for.
func (e *Engine) Chamber() string { return e.chamber }

// BaselineCounts returns the immutable baseline seat tally.
func (e *Engine) BaselineCounts() Counts { return e.baseline }

// baselineParty resolves a district's incumbent party; absence means unknown.
func (e *Engine) baselineParty(district int) (Party, bool) {
	p, ok := e.parties[district]
	return p, ok
}

// ToggleDistrict advances a district through its toggle cycle. The cycle is
// anchored on the district's baseline party, not its current override:
//
//	baseline R:       baseline → flipped-D → tossup → baseline
//	baseline D:       baseline → flipped-R → tossup → baseline
//	unknown baseline: baseline → tossup → flipped-D → flipped-R → baseline
//
// Districts with a known incumbent only have two interesting non-baseline
// states (flip to the other party, or tossup); unknown-incumbent districts
// cycle through all three because there is no "other party" to single out.
func (e *Engine) ToggleDistrict(district int) {
	current := e.overrides[district]
	party, known := e.baselineParty(district)

	var next Status
	if known {
		other := StatusFlippedD
		if party == PartyD {
			other = StatusFlippedR
		}
		switch current {
		case StatusBaseline:
			next = other
		case other:
			next = StatusTossup
		default:
			next = StatusBaseline
		}
	} else {
		switch current {
		case StatusBaseline:
			next = StatusTossup
		case StatusTossup:
			next = StatusFlippedD
		case StatusFlippedD:
			next = StatusFlippedR
		default:
			next = StatusBaseline
		}
	}

	e.SetDistrictStatus(district, next)
}

// SetDistrictStatus records an override directly, replacing any existing one.
// Setting StatusBaseline (or anything unrecognized) deletes the entry, so no
// code path can ever materialize a literal baseline marker in the map.
func (e *Engine) SetDistrictStatus(district int, status Status) {
	switch status {
	case StatusFlippedD, StatusFlippedR, StatusTossup:
		e.overrides[district] = status
	default:
		delete(e.overrides, district)
	}
}

// ResetScenario drops every override, returning all districts to baseline.
func (e *Engine) ResetScenario() {
	e.overrides = make(map[int]Status)
}

// HasChanges reports whether any district deviates from baseline.
func (e *Engine) HasChanges() bool { return len(e.overrides) > 0 }

// FlippedCount is the number of districts carrying any non-baseline override.
func (e *Engine) FlippedCount() int { return len(e.overrides) }

// ScenarioCounts derives the hypothetical seat tally: baseline counts plus a
// delta per override. Total seats is invariant — every delta moves a seat
// between buckets, never creates or destroys one. Redundant overrides (a D
// district "flipped" to D via SetDistrictStatus) contribute a zero delta.
func (e *Engine) ScenarioCounts() Counts {
	counts := e.baseline
	for district, status := range e.overrides {
		party, known := e.baselineParty(district)
		switch status {
		case StatusFlippedD:
			if known && party == PartyR {
				counts.Dem++
				counts.Rep--
			} else if !known {
				counts.Dem++
			}
		case StatusFlippedR:
			if known && party == PartyD {
				counts.Dem--
				counts.Rep++
			} else if !known {
				counts.Rep++
			}
		case StatusTossup:
			if known && party == PartyR {
				counts.Rep--
			} else if known && party == PartyD {
				counts.Dem--
			}
			counts.Tossup++
		}
	}
	return counts
}

// Overrides returns a copy of the sparse override map, for snapshots.
func (e *Engine) Overrides() map[int]Status {
	out := make(map[int]Status, len(e.overrides))
	for d, s := range e.overrides {
		out[d] = s
	}
	return out
}

// Apply replaces the current overrides with a reconstructed map, typically
// one produced by Parse when hydrating a session from a shared link. Baseline
// and unrecognized statuses in the input are dropped, per the invariant.
func (e *Engine) Apply(overrides map[int]Status) {
	e.overrides = make(map[int]Status, len(overrides))
	for d, s := range overrides {
		e.SetDistrictStatus(d, s)
	}
}
