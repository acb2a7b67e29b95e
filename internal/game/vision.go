package game

import (
	"errors"
	"fmt"
	"math"
)

const (
	// Default vision parameters.
	defaultViewDist    = 1000.0 // max sight range in world units
	defaultRayCount    = 500    // rays over the full 360° sweep
	circleVisionPoints = 8      // rim samples used by IsCircleVisible
)

// ErrInvalidVision is returned for a non-positive view distance or ray count.
var ErrInvalidVision = errors.New("invalid vision parameters")

// VisionSystem casts a fixed fan of rays from the viewer each tick and answers
// point and circle visibility queries against the obstacle set.
type VisionSystem struct {
	viewDist float64
	rayCount int

	// points holds one ray termination per angle, in angular order.
	points [][2]float64
}

// NewVisionSystem creates a vision system with the given range and angular
// resolution.
func NewVisionSystem(viewDist float64, rayCount int) (*VisionSystem, error) {
	if !(viewDist > 0) || math.IsInf(viewDist, 0) || rayCount <= 0 {
		return nil, fmt.Errorf("vision dist=%.1f rays=%d: %w", viewDist, rayCount, ErrInvalidVision)
	}
	return &VisionSystem{
		viewDist: viewDist,
		rayCount: rayCount,
		points:   make([][2]float64, 0, rayCount),
	}, nil
}

// ViewDistance returns the maximum sight range.
func (v *VisionSystem) ViewDistance() float64 { return v.viewDist }

// RayCount returns the number of rays in the sweep.
func (v *VisionSystem) RayCount() int { return v.rayCount }

// UpdateVision recasts every ray from (vx,vy) and latches the seen flag on
// each obstacle whose center is currently visible.
func (v *VisionSystem) UpdateVision(vx, vy float64, obstacles []*Obstacle) {
	v.points = v.points[:0]

	step := 2 * math.Pi / float64(v.rayCount)
	for i := 0; i < v.rayCount; i++ {
		a := float64(i) * step
		ex := vx + math.Cos(a)*v.viewDist
		ey := vy + math.Sin(a)*v.viewDist
		hx, hy := castRay(vx, vy, ex, ey, obstacles)
		v.points = append(v.points, [2]float64{hx, hy})
	}

	for _, o := range obstacles {
		if o.seen {
			continue
		}
		// The center always lies inside its own box, so the obstacle itself
		// is not counted as a blocker.
		if v.pointVisibleIgnoring(vx, vy, o.x, o.y, obstacles, o) {
			o.seen = true
		}
	}
}

// castRay returns the closest obstacle hit along (ox,oy)->(ex,ey), or the far
// endpoint when nothing is in the way.
func castRay(ox, oy, ex, ey float64, obstacles []*Obstacle) (float64, float64) {
	bestT := 1.0
	for _, o := range obstacles {
		if t, hit := rayHitT(ox, oy, ex, ey, o); hit && t < bestT {
			bestT = t
		}
	}
	return ox + (ex-ox)*bestT, oy + (ey-oy)*bestT
}

// IsPointVisible returns true if (tx,ty) is within range of the viewer and no
// obstacle blocks the sight line.
func (v *VisionSystem) IsPointVisible(vx, vy, tx, ty float64, obstacles []*Obstacle) bool {
	dx := tx - vx
	dy := ty - vy
	if dx*dx+dy*dy > v.viewDist*v.viewDist {
		return false
	}
	return HasLineOfSight(vx, vy, tx, ty, obstacles)
}

// IsCircleVisible approximates disc visibility: the center or any of eight
// evenly spaced rim points must be point-visible.
func (v *VisionSystem) IsCircleVisible(vx, vy, cx, cy, r float64, obstacles []*Obstacle) bool {
	if v.IsPointVisible(vx, vy, cx, cy, obstacles) {
		return true
	}
	for i := 0; i < circleVisionPoints; i++ {
		a := float64(i) / circleVisionPoints * 2 * math.Pi
		if v.IsPointVisible(vx, vy, cx+math.Cos(a)*r, cy+math.Sin(a)*r, obstacles) {
			return true
		}
	}
	return false
}

// IsObstacleVisible returns true if the obstacle's center or any corner is
// point-visible. The obstacle being tested is excluded from the blockers so
// its own faces don't hide its corners.
func (v *VisionSystem) IsObstacleVisible(vx, vy float64, o *Obstacle, obstacles []*Obstacle) bool {
	if v.pointVisibleIgnoring(vx, vy, o.x, o.y, obstacles, o) {
		return true
	}
	for _, c := range o.corners() {
		if v.pointVisibleIgnoring(vx, vy, c[0], c[1], obstacles, o) {
			return true
		}
	}
	return false
}

func (v *VisionSystem) pointVisibleIgnoring(vx, vy, tx, ty float64, obstacles []*Obstacle, self *Obstacle) bool {
	dx := tx - vx
	dy := ty - vy
	if dx*dx+dy*dy > v.viewDist*v.viewDist {
		return false
	}
	for _, o := range obstacles {
		if o != self && o.BlocksSegment(vx, vy, tx, ty) {
			return false
		}
	}
	return true
}

// VisiblePolygon returns a fresh copy of the ray termination points from the
// last UpdateVision, in angular order.
func (v *VisionSystem) VisiblePolygon() [][2]float64 {
	out := make([][2]float64, len(v.points))
	copy(out, v.points)
	return out
}
