package game

import (
	"errors"
	"math"
	"testing"
)

func newTestVision(t *testing.T) *VisionSystem {
	t.Helper()
	v, err := NewVisionSystem(defaultViewDist, defaultRayCount)
	if err != nil {
		t.Fatalf("NewVisionSystem: %v", err)
	}
	return v
}

func TestVision_NewRejectsBadParams(t *testing.T) {
	cases := []struct {
		dist float64
		rays int
	}{
		{0, 10}, {-5, 10}, {100, 0}, {math.NaN(), 10}, {math.Inf(1), 10},
	}
	for _, c := range cases {
		if _, err := NewVisionSystem(c.dist, c.rays); !errors.Is(err, ErrInvalidVision) {
			t.Fatalf("dist=%v rays=%d: expected ErrInvalidVision, got %v", c.dist, c.rays, err)
		}
	}
}

func TestVision_TargetBehindObstacle_Hidden(t *testing.T) {
	v := newTestVision(t)
	obs := []*Obstacle{MustObstacle(100, 0, 20, 20)}
	if v.IsPointVisible(0, 0, 200, 0, obs) {
		t.Fatal("target directly behind obstacle should not be visible")
	}
	if !v.IsPointVisible(0, 0, 200, 0, nil) {
		t.Fatal("target should be visible once the obstacle is removed")
	}
}

func TestVision_BeyondViewDistance(t *testing.T) {
	v, err := NewVisionSystem(100, 8)
	if err != nil {
		t.Fatal(err)
	}
	if v.IsPointVisible(0, 0, 101, 0, nil) {
		t.Fatal("target beyond view distance should not be visible")
	}
	if !v.IsPointVisible(0, 0, 100, 0, nil) {
		t.Fatal("target exactly at view distance should be visible")
	}
}

func TestVision_CircleRimPeeksOut(t *testing.T) {
	v := newTestVision(t)
	// Obstacle hides the center of the circle but not its upper rim.
	obs := []*Obstacle{MustObstacle(100, 0, 10, 20)}
	if v.IsPointVisible(0, 0, 200, 0, obs) {
		t.Fatal("center should be hidden")
	}
	if !v.IsCircleVisible(0, 0, 200, 0, 25, obs) {
		t.Fatal("circle with a visible rim point should count as visible")
	}
}

func TestVision_CircleFullyHidden(t *testing.T) {
	v := newTestVision(t)
	obs := []*Obstacle{MustObstacle(100, 0, 20, 200)}
	if v.IsCircleVisible(0, 0, 200, 0, 25, obs) {
		t.Fatal("circle behind a wide wall should be hidden")
	}
}

func TestVision_PolygonOneHitPerRay(t *testing.T) {
	v, err := NewVisionSystem(500, 64)
	if err != nil {
		t.Fatal(err)
	}
	v.UpdateVision(0, 0, nil)
	poly := v.VisiblePolygon()
	if len(poly) != 64 {
		t.Fatalf("expected 64 points, got %d", len(poly))
	}
	for i, p := range poly {
		if d := math.Hypot(p[0], p[1]); math.Abs(d-500) > 1e-6 {
			t.Fatalf("ray %d: unobstructed ray should end at view distance, got %.3f", i, d)
		}
	}
}

func TestVision_PolygonStopsAtObstacle(t *testing.T) {
	v, err := NewVisionSystem(500, 4)
	if err != nil {
		t.Fatal(err)
	}
	// Ray 0 points along +x and meets the near face at x=90.
	v.UpdateVision(0, 0, []*Obstacle{MustObstacle(100, 0, 20, 20)})
	p := v.VisiblePolygon()[0]
	if math.Abs(p[0]-90) > 1e-6 || math.Abs(p[1]) > 1e-6 {
		t.Fatalf("expected hit at (90,0), got (%.3f,%.3f)", p[0], p[1])
	}
}

func TestVision_PolygonIsACopy(t *testing.T) {
	v, err := NewVisionSystem(100, 4)
	if err != nil {
		t.Fatal(err)
	}
	v.UpdateVision(0, 0, nil)
	p := v.VisiblePolygon()
	p[0][0] = 12345
	if v.VisiblePolygon()[0][0] == 12345 {
		t.Fatal("mutating the returned polygon must not affect the vision system")
	}
}

func TestVision_SeenLatches(t *testing.T) {
	v := newTestVision(t)
	o := MustObstacle(100, 0, 20, 20)
	obs := []*Obstacle{o}

	v.UpdateVision(0, 0, obs)
	if !o.Seen() {
		t.Fatal("obstacle in plain view should be marked seen")
	}
	// Move far out of range: the flag stays set.
	v.UpdateVision(5000, 5000, obs)
	if !o.Seen() {
		t.Fatal("seen flag must never reset")
	}
}

func TestVision_HiddenObstacleNotSeen(t *testing.T) {
	v := newTestVision(t)
	wall := MustObstacle(100, 0, 20, 400)
	hidden := MustObstacle(300, 0, 20, 20)
	v.UpdateVision(0, 0, []*Obstacle{wall, hidden})
	if hidden.Seen() {
		t.Fatal("obstacle behind a wall should not be seen")
	}
	if !wall.Seen() {
		t.Fatal("wall facing the viewer should be seen")
	}
}

func TestVision_ObstacleVisibleByCorner(t *testing.T) {
	v := newTestVision(t)
	// Blocker hides the target's center but not its top corners.
	blocker := MustObstacle(100, 0, 10, 20)
	target := MustObstacle(300, 0, 40, 80)
	obs := []*Obstacle{blocker, target}
	if !v.IsObstacleVisible(0, 0, target, obs) {
		t.Fatal("obstacle with a visible corner should be visible")
	}
}
