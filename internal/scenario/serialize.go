package scenario

import (
	"strconv"
	"strings"
)

// Serialize renders the override map as a compact, URL-safe string: one token
// per override, `d42` / `r23` / `t15`, joined with commas. An empty scenario
// serializes to "". Token order follows map iteration and is not stable
// across calls; consumers must treat the result as an unordered set.
func (e *Engine) Serialize() string {
	if len(e.overrides) == 0 {
		return ""
	}
	tokens := make([]string, 0, len(e.overrides))
	for district, status := range e.overrides {
		tokens = append(tokens, string(status)+strconv.Itoa(district))
	}
	return strings.Join(tokens, ",")
}

// Parse is the inverse of Serialize, used to hydrate a session from a
// `?scenario=` query value. Malformed tokens (unknown prefix, non-numeric
// district) are skipped rather than failing the whole string, so a mangled
// shared link still restores whatever survives.
func Parse(s string) map[int]Status {
	overrides := make(map[int]Status)
	if s == "" {
		return overrides
	}
	for _, token := range strings.Split(s, ",") {
		token = strings.TrimSpace(token)
		if len(token) < 2 {
			continue
		}
		var status Status
		switch token[0] {
		case 'd':
			status = StatusFlippedD
		case 'r':
			status = StatusFlippedR
		case 't':
			status = StatusTossup
		default:
			continue
		}
		district, err := strconv.Atoi(token[1:])
		if err != nil || district < 0 {
			continue
		}
		overrides[district] = status
	}
	return overrides
}
