package vmath

// SegmentHitsAABB reports whether the segment (x1,y1)-(x2,y2) passes through the
// interior of box, using the slab method. Grazing an edge does not count as a hit
func SegmentHitsAABB(x1, y1, x2, y2 float64, box AABB) bool {
	const eps = 1e-9
	tMin, tMax := 0.0, 1.0
	dx := x2 - x1
	dy := y2 - y1

	if !clipSlab(x1, dx, box.MinX, box.MaxX, &tMin, &tMax) {
		return false
	}
	if !clipSlab(y1, dy, box.MinY, box.MaxY, &tMin, &tMax) {
		return false
	}
	return tMax-tMin > eps
}

// clipSlab narrows [tMin,tMax] to the parameter range inside one slab
func clipSlab(p, d, lo, hi float64, tMin, tMax *float64) bool {
	if d == 0 {
		// Parallel: inside strictly or not at all
		return p > lo && p < hi
	}
	t1 := (lo - p) / d
	t2 := (hi - p) / d
	if t1 > t2 {
		t1, t2 = t2, t1
	}
	if t1 > *tMin {
		*tMin = t1
	}
	if t2 < *tMax {
		*tMax = t2
	}
	return *tMin < *tMax
}
