package game

import "math"

// HasLineOfSight returns true if the segment from (ax,ay) to (bx,by) is not
// blocked by any obstacle.
func HasLineOfSight(ax, ay, bx, by float64, obstacles []*Obstacle) bool {
	for _, o := range obstacles {
		if o.BlocksSegment(ax, ay, bx, by) {
			return false
		}
	}
	return true
}

// segmentsIntersect reports whether segment p1-p2 crosses segment p3-p4.
// Parallel (near-zero determinant) segments never intersect.
func segmentsIntersect(x1, y1, x2, y2, x3, y3, x4, y4 float64) bool {
	denom := (y4-y3)*(x2-x1) - (x4-x3)*(y2-y1)
	if math.Abs(denom) < 1e-4 {
		return false
	}
	ua := ((x4-x3)*(y1-y3) - (y4-y3)*(x1-x3)) / denom
	ub := ((x2-x1)*(y1-y3) - (y2-y1)*(x1-x3)) / denom
	return ua >= 0 && ua <= 1 && ub >= 0 && ub <= 1
}

// rayAABBClip runs the slab test for the line (ox,oy)->(ex,ey) against the
// box and returns the entry and exit parameters along the segment. The bool
// is false when the infinite line misses the box or the box lies entirely
// behind the origin.
func rayAABBClip(ox, oy, ex, ey, minX, minY, maxX, maxY float64) (float64, float64, bool) {
	dx := ex - ox
	dy := ey - oy

	tMin := math.Inf(-1)
	tMax := math.Inf(1)

	// X slab
	if math.Abs(dx) < 1e-12 {
		if ox < minX || ox > maxX {
			return 0, 0, false
		}
	} else {
		invD := 1.0 / dx
		t1 := (minX - ox) * invD
		t2 := (maxX - ox) * invD
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
	}

	// Y slab
	if math.Abs(dy) < 1e-12 {
		if oy < minY || oy > maxY {
			return 0, 0, false
		}
	} else {
		invD := 1.0 / dy
		t1 := (minY - oy) * invD
		t2 := (maxY - oy) * invD
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
	}

	if tMin > tMax || tMax < 0 {
		return 0, 0, false
	}
	return tMin, tMax, true
}

// rayHitT returns the first parameter in (0,1] where the ray from (ox,oy)
// toward (ex,ey) meets the box. A ray starting inside the box reports its
// exit point instead of its own origin.
func rayHitT(ox, oy, ex, ey float64, o *Obstacle) (float64, bool) {
	minX, minY, maxX, maxY := o.Bounds()
	tEnter, tExit, ok := rayAABBClip(ox, oy, ex, ey, minX, minY, maxX, maxY)
	if !ok {
		return 0, false
	}
	t := tEnter
	if t <= 0 {
		t = tExit
	}
	if t < 0 || t > 1 {
		return 0, false
	}
	return t, true
}
