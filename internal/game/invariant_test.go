package game

import (
	"testing"
)

// --- Invariant helpers ---

// checkHealthBounded verifies no actor or obstacle ever has negative health
// or more than its maximum.
func checkHealthBounded(t *testing.T, w *World) {
	t.Helper()
	p := w.player
	if p.health < 0 || p.health > p.maxHealth {
		t.Fatalf("T=%d player health out of range: %.2f", w.tick, p.health)
	}
	for _, e := range w.enemies {
		if e.health < 0 || e.health > e.maxHealth {
			t.Fatalf("T=%d %s health out of range: %.2f", w.tick, e.label, e.health)
		}
	}
	for _, o := range w.obstacles {
		if o.health < 0 || o.health > o.maxHealth {
			t.Fatalf("T=%d obstacle at (%.0f,%.0f) health out of range: %.2f", w.tick, o.x, o.y, o.health)
		}
	}
}

// checkMagazinesBounded verifies capacity, exhausted-round and timer
// invariants for every magazine.
func checkMagazinesBounded(t *testing.T, w *World) {
	t.Helper()
	for _, m := range w.mags.Magazines() {
		if len(m.rounds) > m.capacity {
			t.Fatalf("T=%d %s holds %d rounds, capacity %d", w.tick, m.name, len(m.rounds), m.capacity)
		}
		for i, r := range m.rounds {
			if r.UsesRemaining == 0 {
				t.Fatalf("T=%d %s slot %d stores exhausted %s", w.tick, m.name, i, r.Name)
			}
		}
		if m.reloadTimer < 0 || m.rearrangeTimer < 0 {
			t.Fatalf("T=%d %s negative timer: reload=%.3f rearrange=%.3f",
				w.tick, m.name, m.reloadTimer, m.rearrangeTimer)
		}
	}
}

// checkPlayerClear verifies the player never rests inside an obstacle.
func checkPlayerClear(t *testing.T, w *World) {
	t.Helper()
	p := w.player
	for _, o := range w.obstacles {
		if o.OverlapsCircle(p.x, p.y, playerRadius) {
			t.Fatalf("T=%d player at (%.2f,%.2f) overlaps obstacle at (%.0f,%.0f)", w.tick, p.x, p.y, o.x, o.y)
		}
	}
}

// checkTimeScaleBounded verifies the world clock stays within its clamp.
func checkTimeScaleBounded(t *testing.T, w *World) {
	t.Helper()
	if w.timeScale < w.cfg.TimeScaleMin || w.timeScale > w.cfg.TimeScaleMax {
		t.Fatalf("T=%d time scale %.4f outside [%.2f,%.2f]",
			w.tick, w.timeScale, w.cfg.TimeScaleMin, w.cfg.TimeScaleMax)
	}
}

// runChecked drives w with src, running every invariant after each tick.
// seen latches are tracked across ticks: once set they must never clear.
func runChecked(t *testing.T, w *World, src InputSource, ticks int) {
	t.Helper()
	seen := map[*Obstacle]bool{}
	for i := 0; i < ticks && !w.gameOver; i++ {
		w.Update(1.0/60, src.Poll(w))
		checkHealthBounded(t, w)
		checkMagazinesBounded(t, w)
		checkPlayerClear(t, w)
		checkTimeScaleBounded(t, w)
		for _, o := range w.obstacles {
			if seen[o] && !o.seen {
				t.Fatalf("T=%d obstacle at (%.0f,%.0f) lost its seen flag", w.tick, o.x, o.y)
			}
			if o.seen {
				seen[o] = true
			}
		}
	}
}

// --- Invariant test scenarios ---

func TestInvariant_AutopilotArena(t *testing.T) {
	w, err := NewWorld(
		WithSeed(11),
		WithObstacle(180, 0, 60, 60),
		WithObstacle(-160, 120, 120, 40),
		WithObstacle(0, -220, 40, 120),
	)
	if err != nil {
		t.Fatal(err)
	}
	runChecked(t, w, NewAutopilot(140), 1800)
	if w.stats.ShotsFired == 0 {
		t.Fatal("autopilot never fired")
	}
}

func TestInvariant_ShieldedSwarm(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ShieldChance = 1
	cfg.SpawnInterval = 0.5
	w, err := NewWorld(WithSeed(23), WithConfig(cfg), WithObstacle(120, 120, 80, 80))
	if err != nil {
		t.Fatal(err)
	}
	runChecked(t, w, NewAutopilot(100), 1200)
	for _, e := range w.enemies {
		if e.shield == nil {
			t.Fatalf("%s spawned without a shield at ShieldChance=1", e.label)
		}
	}
}

func TestInvariant_WalkIntoWall(t *testing.T) {
	w, err := NewWorld(WithSpawning(false), WithObstacle(100, 0, 40, 400))
	if err != nil {
		t.Fatal(err)
	}
	runChecked(t, w, walkRight{}, 240)
	if w.player.x >= 80-playerRadius {
		t.Fatalf("player passed into the wall: x=%.2f", w.player.x)
	}
}

type walkRight struct{}

func (walkRight) Poll(*World) Input { return Input{MoveX: 1, AimX: 1000} }
