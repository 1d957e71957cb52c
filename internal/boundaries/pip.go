package boundaries

// Point-in-polygon via the even-odd (ray casting) rule: a horizontal ray from
// the point crosses the ring an odd number of times iff the point is inside.
//
// Edge convention: points exactly on a vertex or edge resolve to whatever the
// even-odd crossing count says. That outcome is deterministic for a given
// polygon and point but is deliberately not promised to be inclusive or
// exclusive; legislative boundaries follow streets and rivers, so real
// queries never land exactly on an edge at float64 precision.

// contains reports whether the point falls inside the polygon: inside the
// outer ring and outside every hole. The bounding box check rejects the vast
// majority of candidates before any vertex math.
func (p Polygon) contains(pt Point) bool {
	if !p.inBBox(pt) {
		return false
	}
	if len(p.Rings) == 0 || !pointInRing(pt, p.Rings[0]) {
		return false
	}
	for _, hole := range p.Rings[1:] {
		if pointInRing(pt, hole) {
			return false
		}
	}
	return true
}

func (p Polygon) inBBox(pt Point) bool {
	return pt.Lng >= p.BBox[0] && pt.Lng <= p.BBox[2] &&
		pt.Lat >= p.BBox[1] && pt.Lat <= p.BBox[3]
}

// pointInRing runs the even-odd crossing test over one vertex ring. The tiny
// epsilon in the divisor guards against division by zero on horizontal edges.
func pointInRing(pt Point, ring []Point) bool {
	n := len(ring)
	if n < 3 {
		return false
	}
	inside := false
	x, y := pt.Lng, pt.Lat
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := ring[i].Lng, ring[i].Lat
		xj, yj := ring[j].Lng, ring[j].Lat
		if ((yi > y) != (yj > y)) && (x < (xj-xi)*(y-yi)/(yj-yi+1e-12)+xi) {
			inside = !inside
		}
	}
	return inside
}

// FindDistrict scans the collection for the first district containing the
// point. Districts within a chamber do not overlap, so first match wins.
// Returns false when no district contains the point.
func (c *Collection) FindDistrict(pt Point) (int, bool) {
	for _, d := range c.Districts {
		for _, poly := range d.Polygons {
			if poly.contains(pt) {
				return d.Number, true
			}
		}
	}
	return 0, false
}
