package game

import (
	"errors"
	"fmt"
	"math"
)

const (
	obstacleDefaultSize = 60.0
	obstacleMaxHealth   = 1000.0
	pushOutEpsilon      = 0.1 // extra clearance past tangency so the circle doesn't re-trigger
)

// ErrInvalidDimensions is returned when an obstacle is built with a negative
// or non-finite size.
var ErrInvalidDimensions = errors.New("invalid obstacle dimensions")

// Obstacle is a destructible axis-aligned box that blocks movement,
// projectiles and sight.
type Obstacle struct {
	x, y         float64 // center
	halfW, halfH float64
	health       float64
	maxHealth    float64
	seen         bool // latched once the viewer has seen the center
}

// NewObstacle creates an obstacle centered on (x,y) with full health.
func NewObstacle(x, y, w, h float64) (*Obstacle, error) {
	if !(w >= 0) || !(h >= 0) || math.IsInf(w, 0) || math.IsInf(h, 0) {
		return nil, fmt.Errorf("new obstacle %.1fx%.1f: %w", w, h, ErrInvalidDimensions)
	}
	if math.IsNaN(x) || math.IsNaN(y) {
		return nil, fmt.Errorf("new obstacle at (%v,%v): %w", x, y, ErrInvalidDimensions)
	}
	return &Obstacle{
		x:         x,
		y:         y,
		halfW:     w / 2,
		halfH:     h / 2,
		health:    obstacleMaxHealth,
		maxHealth: obstacleMaxHealth,
	}, nil
}

// MustObstacle is NewObstacle for compiled-in layouts; it panics on bad input.
func MustObstacle(x, y, w, h float64) *Obstacle {
	o, err := NewObstacle(x, y, w, h)
	if err != nil {
		panic(err)
	}
	return o
}

// Center returns the obstacle center.
func (o *Obstacle) Center() (float64, float64) { return o.x, o.y }

// Size returns the full width and height.
func (o *Obstacle) Size() (float64, float64) { return o.halfW * 2, o.halfH * 2 }

// Bounds returns (minX, minY, maxX, maxY).
func (o *Obstacle) Bounds() (float64, float64, float64, float64) {
	return o.x - o.halfW, o.y - o.halfH, o.x + o.halfW, o.y + o.halfH
}

func (o *Obstacle) Health() float64 { return o.health }

// HealthFraction is health/maxHealth in [0,1].
func (o *Obstacle) HealthFraction() float64 {
	if o.maxHealth <= 0 {
		return 0
	}
	return clamp01(o.health / o.maxHealth)
}

// Destroyed reports whether the obstacle has been shot down.
func (o *Obstacle) Destroyed() bool { return o.health <= 0 }

// Seen reports whether the obstacle was ever visible to the viewer.
func (o *Obstacle) Seen() bool { return o.seen }

// TakeDamage subtracts amount from health, clamping at zero.
func (o *Obstacle) TakeDamage(amount float64) {
	if amount <= 0 {
		return
	}
	o.health = math.Max(0, o.health-amount)
}

// closestPoint clamps (px,py) onto the rectangle.
func (o *Obstacle) closestPoint(px, py float64) (float64, float64) {
	minX, minY, maxX, maxY := o.Bounds()
	return clamp(px, minX, maxX), clamp(py, minY, maxY)
}

// OverlapsCircle returns true if the circle (cx,cy,r) overlaps the box.
// Exact tangency does not count as overlap.
func (o *Obstacle) OverlapsCircle(cx, cy, r float64) bool {
	qx, qy := o.closestPoint(cx, cy)
	dx := cx - qx
	dy := cy - qy
	return dx*dx+dy*dy < r*r
}

// ContainsPoint is an inclusive bounds test.
func (o *Obstacle) ContainsPoint(px, py float64) bool {
	minX, minY, maxX, maxY := o.Bounds()
	return px >= minX && px <= maxX && py >= minY && py <= maxY
}

// BlocksSegment returns true if the segment (x1,y1)-(x2,y2) touches the box:
// either endpoint is inside, or the segment crosses one of the four edges.
func (o *Obstacle) BlocksSegment(x1, y1, x2, y2 float64) bool {
	if o.ContainsPoint(x1, y1) || o.ContainsPoint(x2, y2) {
		return true
	}
	minX, minY, maxX, maxY := o.Bounds()
	return segmentsIntersect(x1, y1, x2, y2, minX, minY, minX, maxY) ||
		segmentsIntersect(x1, y1, x2, y2, maxX, minY, maxX, maxY) ||
		segmentsIntersect(x1, y1, x2, y2, minX, minY, maxX, minY) ||
		segmentsIntersect(x1, y1, x2, y2, minX, maxY, maxX, maxY)
}

// PushOutCircle returns a new center for the circle that no longer overlaps
// the box. ok is false when there was no overlap to begin with.
func (o *Obstacle) PushOutCircle(cx, cy, r float64) (nx, ny float64, ok bool) {
	if !o.OverlapsCircle(cx, cy, r) {
		return cx, cy, false
	}

	qx, qy := o.closestPoint(cx, cy)
	dx := cx - qx
	dy := cy - qy
	dist := math.Sqrt(dx*dx + dy*dy)

	if dist < 0.001 {
		// Center is inside the box: shove it out through the nearest edge,
		// keeping the other axis coordinate.
		minX, minY, maxX, maxY := o.Bounds()
		toLeft := cx - minX
		toRight := maxX - cx
		toBottom := cy - minY
		toTop := maxY - cy
		nearest := math.Min(math.Min(toLeft, toRight), math.Min(toBottom, toTop))
		switch nearest {
		case toLeft:
			return minX - r - pushOutEpsilon, cy, true
		case toRight:
			return maxX + r + pushOutEpsilon, cy, true
		case toBottom:
			return cx, minY - r - pushOutEpsilon, true
		default:
			return cx, maxY + r + pushOutEpsilon, true
		}
	}

	push := r - dist + pushOutEpsilon
	return cx + dx/dist*push, cy + dy/dist*push, true
}

// corners returns the four box corners.
func (o *Obstacle) corners() [4][2]float64 {
	minX, minY, maxX, maxY := o.Bounds()
	return [4][2]float64{{minX, minY}, {maxX, minY}, {minX, maxY}, {maxX, maxY}}
}

// pushOutOfAll resolves a circle against every obstacle in order.
func pushOutOfAll(cx, cy, r float64, obstacles []*Obstacle) (float64, float64) {
	for _, o := range obstacles {
		if nx, ny, ok := o.PushOutCircle(cx, cy, r); ok {
			cx, cy = nx, ny
		}
	}
	return cx, cy
}

// removeDestroyedObstacles filters obstacles in place.
func removeDestroyedObstacles(obstacles []*Obstacle) []*Obstacle {
	kept := obstacles[:0]
	for _, o := range obstacles {
		if !o.Destroyed() {
			kept = append(kept, o)
		}
	}
	for i := len(kept); i < len(obstacles); i++ {
		obstacles[i] = nil
	}
	return kept
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp01(v float64) float64 { return clamp(v, 0, 1) }
