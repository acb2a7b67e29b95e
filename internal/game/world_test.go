package game_test

import (
	"errors"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Garsondee/Mags/internal/game"
	"github.com/Garsondee/Mags/internal/game/mocks"
)

const tickDT = 1.0 / 60

func newWorld(t *testing.T, opts ...game.Option) *game.World {
	t.Helper()
	w, err := game.NewWorld(opts...)
	require.NoError(t, err)
	return w
}

func TestWorld_RejectsBadObstacle(t *testing.T) {
	_, err := game.NewWorld(game.WithObstacle(0, 0, -1, 5))
	assert.True(t, errors.Is(err, game.ErrInvalidDimensions), "got %v", err)
}

func TestWorld_RejectsBadVision(t *testing.T) {
	cfg := game.DefaultConfig()
	cfg.RayCount = 0
	_, err := game.NewWorld(game.WithConfig(cfg))
	assert.ErrorIs(t, err, game.ErrInvalidVision)
}

func TestWorld_ShootsEnemyDown(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := mocks.NewMockInputSource(ctrl)
	src.EXPECT().Poll(gomock.Any()).Return(game.Input{
		AimX: 200, AimY: 0, Fire: true, HoldTime: true,
	}).AnyTimes()

	w := newWorld(t, game.WithSeed(3), game.WithSpawning(false), game.WithEnemy(200, 0, game.ElementNone))
	n := w.Run(src, 180, tickDT)

	assert.Equal(t, 180, n)
	assert.False(t, w.GameOver())
	assert.Equal(t, 1, w.Stats().Kills)
	assert.Empty(t, w.Enemies())
	assert.Len(t, w.Pickups(), 1, "every kill drops ammunition")
	assert.GreaterOrEqual(t, w.Stats().ShotsFired, 7)
	assert.Equal(t, 1, w.Log().CountCategory("combat", "kill"))
	assert.Equal(t, 1, w.Log().CountCategory("ammo", "drop"))
}

func TestWorld_BombAndPickupReturnToMagazine(t *testing.T) {
	mm, err := game.NewMagazineManager([]game.MagazineSpec{{Name: "Only", Capacity: 1, Color: color.RGBA{A: 255}}})
	require.NoError(t, err)
	bomb := game.AmmoBomb
	bomb.Damage = 200
	require.True(t, mm.Magazines()[0].Add(bomb))

	w := newWorld(t,
		game.WithSeed(9),
		game.WithSpawning(false),
		game.WithMagazines(mm),
		game.WithEnemy(100, 0, game.ElementNone),
	)

	w.Update(tickDT, game.Input{Fire: true, AimX: 100, HoldTime: true})
	require.Empty(t, w.Enemies(), "bomb should kill the enemy on the firing tick")
	require.Len(t, w.Pickups(), 1)
	assert.Zero(t, mm.Magazines()[0].Len(), "single-use bomb is spent")
	dropped := w.Pickups()[0].Ammo()

	for i := 0; i < 30 && len(w.Pickups()) > 0; i++ {
		w.Update(tickDT, game.Input{MoveX: 1, AimX: 1000})
	}
	assert.Empty(t, w.Pickups())
	assert.Equal(t, 1, w.Stats().Pickups)
	top, ok := mm.Magazines()[0].PeekTop()
	require.True(t, ok)
	assert.Equal(t, dropped.Name, top.Name)
}

func TestWorld_PickupStaysWhenMagazinesFull(t *testing.T) {
	mm, err := game.NewMagazineManager([]game.MagazineSpec{{Name: "Only", Capacity: 1}})
	require.NoError(t, err)
	bomb := game.AmmoBomb
	bomb.Damage = 500
	require.True(t, mm.Magazines()[0].Add(bomb))

	w := newWorld(t, game.WithSpawning(false), game.WithMagazines(mm), game.WithEnemy(100, 0, game.ElementNone))
	w.Update(tickDT, game.Input{Fire: true, HoldTime: true})
	require.Len(t, w.Pickups(), 1)

	// Refill the only slot so the pickup has nowhere to go.
	require.True(t, mm.Magazines()[0].Add(game.AmmoWeak))
	for i := 0; i < 40; i++ {
		w.Update(tickDT, game.Input{MoveX: 1, AimX: 1000})
	}
	px, _ := w.Player().Position()
	require.Greater(t, px, 100.0, "player walked over the pickup")
	assert.Len(t, w.Pickups(), 1, "pickup stays in the world when every magazine is full")
	assert.Zero(t, w.Stats().Pickups)
}

func TestWorld_SpawnUsesInjectedRand(t *testing.T) {
	ctrl := gomock.NewController(t)
	rng := mocks.NewMockRand(ctrl)
	gomock.InOrder(
		// First attempt lands inside the obstacle at (500,0) and is rejected.
		rng.EXPECT().Float64().Return(0.0),
		rng.EXPECT().Float64().Return(0.5),
		// Second attempt: straight down at distance 500, shielded green.
		rng.EXPECT().Float64().Return(0.25),
		rng.EXPECT().Float64().Return(0.5),
		rng.EXPECT().Float64().Return(0.1),
		rng.EXPECT().Intn(3).Return(1),
	)

	w := newWorld(t, game.WithRand(rng), game.WithObstacle(500, 0, 100, 100))
	for i := 0; i < 4; i++ {
		w.Update(0.5, game.Input{HoldTime: true})
	}

	require.Len(t, w.Enemies(), 1)
	e := w.Enemies()[0]
	x, y := e.Position()
	assert.InDelta(t, 0, x, 1e-9)
	assert.InDelta(t, 500, y, 1e-9)
	assert.True(t, e.HasActiveShield())
	assert.Equal(t, game.ElementGreen, e.Shield().Element())
	assert.True(t, w.Log().HasEntry("world", "spawn", "shield=green"))
}

func TestWorld_TimeScaleFollowsMovement(t *testing.T) {
	w := newWorld(t, game.WithSpawning(false))
	for i := 0; i < 120; i++ {
		w.Update(tickDT, game.Input{})
	}
	cfg := w.Config()
	assert.Less(t, w.TimeScale(), 0.05, "idle player slows the world")
	assert.GreaterOrEqual(t, w.TimeScale(), cfg.TimeScaleMin)

	for i := 0; i < 120; i++ {
		w.Update(tickDT, game.Input{MoveX: 1})
	}
	assert.Greater(t, w.TimeScale(), 0.95)
	assert.LessOrEqual(t, w.TimeScale(), cfg.TimeScaleMax)
}

func TestWorld_SlowTimeSlowsEnemies(t *testing.T) {
	fast := newWorld(t, game.WithSpawning(false), game.WithEnemy(400, 0, game.ElementNone))
	slow := newWorld(t, game.WithSpawning(false), game.WithEnemy(400, 0, game.ElementNone))
	for i := 0; i < 60; i++ {
		fast.Update(tickDT, game.Input{HoldTime: true})
		slow.Update(tickDT, game.Input{})
	}
	fx, _ := fast.Enemies()[0].Position()
	sx, _ := slow.Enemies()[0].Position()
	assert.Less(t, fx, sx, "enemy under full time should have closed more distance")
}

func TestWorld_ContactDamageEndsRun(t *testing.T) {
	cfg := game.DefaultConfig()
	cfg.ContactDPS = 1000
	cfg.Spawning = false
	w := newWorld(t, game.WithConfig(cfg), game.WithEnemy(30, 0, game.ElementNone))

	ctrl := gomock.NewController(t)
	src := mocks.NewMockInputSource(ctrl)
	src.EXPECT().Poll(w).Return(game.Input{HoldTime: true}).MinTimes(1)

	n := w.Run(src, 600, tickDT)
	assert.Less(t, n, 600)
	assert.True(t, w.GameOver())
	assert.Zero(t, w.Player().Health())
	assert.Equal(t, 1, w.Log().CountCategory("world", "player_dead"))

	before := w.Tick()
	w.Update(tickDT, game.Input{})
	assert.Equal(t, before, w.Tick(), "a finished world does not advance")

	out := game.DetermineRunOutcome(w)
	assert.Equal(t, game.OutcomeDied, out.Outcome)
	assert.Equal(t, "died_without_kills", out.Description)
}

func TestWorld_SnapshotIsACopy(t *testing.T) {
	w := newWorld(t,
		game.WithSpawning(false),
		game.WithObstacle(100, 0, 20, 20),
		game.WithObstacle(300, 0, 20, 20),
		game.WithEnemy(0, 200, game.ElementRed),
	)
	w.Update(tickDT, game.Input{HoldTime: true})

	s := w.Snapshot()
	assert.Len(t, s.Polygon, w.Config().RayCount)
	require.Len(t, s.Magazines, 4)
	require.Len(t, s.Obstacles, 2)
	assert.True(t, s.Obstacles[0].Seen)
	assert.True(t, s.Obstacles[0].Visible)
	assert.False(t, s.Obstacles[1].Seen, "obstacle hidden behind another is not seen")
	require.Len(t, s.Enemies, 1)
	assert.True(t, s.Enemies[0].ShieldActive)
	assert.Equal(t, game.ElementRed, s.Enemies[0].Shield)
	assert.True(t, s.Enemies[0].Visible)

	s.Magazines[0].Rounds[0].Name = "mutated"
	top, _ := w.Magazines().Magazines()[0].PeekTop()
	assert.Equal(t, "Weak", top.Name)
}

func TestWorld_DeterministicWithSeed(t *testing.T) {
	run := func() (string, game.RunStats) {
		w := newWorld(t, game.WithSeed(77), game.WithObstacle(150, 150, 60, 60), game.WithObstacle(-200, 80, 60, 120))
		w.Run(game.NewAutopilot(120), 900, tickDT)
		return w.Log().Format(), w.Stats()
	}
	logA, statsA := run()
	logB, statsB := run()
	assert.Equal(t, statsA, statsB)
	assert.Equal(t, logA, logB)
	assert.NotEmpty(t, logA)
}
