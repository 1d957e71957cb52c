package boundaries

// Chamber identifies one of the two legislative bodies. Each chamber has its
// own district numbering and its own boundary collection.
type Chamber string

const (
	ChamberHouse  Chamber = "house"
	ChamberSenate Chamber = "senate"
)

// Point is a WGS84 coordinate.
type Point struct {
	Lat float64
	Lng float64
}

// Polygon is one GeoJSON polygon: ring 0 is the outer boundary, any further
// rings are holes. The bounding box is precomputed at parse time so the
// containment scan can reject most polygons without touching their vertices.
type Polygon struct {
	Rings [][]Point
	BBox  [4]float64 // minLng, minLat, maxLng, maxLat
}

// District is one legislative district's parsed boundary: the numeric id from
// the source's zero-padded property plus one polygon per MultiPolygon part.
type District struct {
	Number   int
	Name     string
	Polygons []Polygon
}

// Collection is the fully parsed boundary set for one chamber. Built once at
// load time and never mutated afterwards, so it is safe to share across
// concurrent lookups without locking.
type Collection struct {
	Chamber   Chamber
	Districts []District
}

// LookupResult is the resolver's output contract. Address lookup flows and
// map click handlers depend on this exact shape, including the distinction
// between "couldn't load boundary data" and "outside mapped boundaries".
type LookupResult struct {
	Success        bool   `json:"success"`
	HouseDistrict  *int   `json:"houseDistrict"`
	SenateDistrict *int   `json:"senateDistrict"`
	Error          string `json:"error,omitempty"`
}

// User-facing failure messages. Consuming UI branches on these two cases:
// a load failure suggests retrying later, an outside-boundaries miss does not.
const (
	ErrLoadFailure       = "Unable to load boundary data"
	ErrOutsideBoundaries = "Location is outside the mapped legislative boundaries"
)
