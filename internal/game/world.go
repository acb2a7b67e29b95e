package game

import (
	"fmt"
	"math"
)

//go:generate go tool mockgen -destination=./mocks/input_mock.go -package=mocks . InputSource

// Config holds the world-level tunables. Per-entity constants live next to
// their types.
type Config struct {
	ViewDistance float64
	RayCount     int

	Spawning      bool
	SpawnInterval float64 // world seconds between spawn attempts
	SpawnMinDist  float64
	SpawnMaxDist  float64
	SpawnAttempts int
	ShieldChance  float64
	MaxEnemies    int // 0 = no cap

	PickupRadius float64

	TimeScaleMin  float64
	TimeScaleMax  float64
	TimeScaleLerp float64

	ContactDPS float64 // damage per world second an enemy deals while touching the player
}

// DefaultConfig returns the standard tuning.
func DefaultConfig() Config {
	return Config{
		ViewDistance:  defaultViewDist,
		RayCount:      defaultRayCount,
		Spawning:      true,
		SpawnInterval: 2.0,
		SpawnMinDist:  400,
		SpawnMaxDist:  600,
		SpawnAttempts: 10,
		ShieldChance:  0.2,
		PickupRadius:  50,
		TimeScaleMin:  0.02,
		TimeScaleMax:  1.0,
		TimeScaleLerp: 12,
		ContactDPS:    10,
	}
}

// Input is one tick of already-debounced player intent.
type Input struct {
	MoveX, MoveY float64 // signed axes; normalized by the player
	AimX, AimY   float64 // world-space aim point
	Fire         bool
	Rearrange    bool
	Select       int // 1-based magazine slot; 0 = no change
	Cycle        int // +1 next, -1 previous, 0 = no change
	HoldTime     bool
}

// InputSource supplies the input for the next tick. The windowed view, the
// headless autopilot and test scripts all implement it.
type InputSource interface {
	Poll(w *World) Input
}

// Pickup is dropped ammunition lying in the world.
type Pickup struct {
	x, y float64
	def  AmmoDef
	age  float64
}

// NewPickup places a definition at (x,y).
func NewPickup(x, y float64, def AmmoDef) *Pickup {
	return &Pickup{x: x, y: y, def: def}
}

func (p *Pickup) Position() (float64, float64) { return p.x, p.y }
func (p *Pickup) Ammo() AmmoDef                { return p.def }
func (p *Pickup) Age() float64                 { return p.age }

// World is the tick driver. It owns every piece of mutable simulation state
// and advances it synchronously in Update.
type World struct {
	cfg  Config
	rng  Rand
	seed int64

	player      *Player
	enemies     []*Enemy
	obstacles   []*Obstacle
	projectiles []*Projectile
	pickups     []*Pickup
	mags        *MagazineManager
	vision      *VisionSystem
	combat      *CombatManager
	log         *EventLog
	drops       *DropTable

	tick        int
	elapsed     float64 // world seconds
	timeScale   float64
	spawnTimer  float64
	nextEnemyID int
	gameOver    bool
	stats       RunStats
}

func (w *World) Config() Config                 { return w.cfg }
func (w *World) Tick() int                      { return w.tick }
func (w *World) Elapsed() float64               { return w.elapsed }
func (w *World) TimeScale() float64             { return w.timeScale }
func (w *World) GameOver() bool                 { return w.gameOver }
func (w *World) Player() *Player                { return w.player }
func (w *World) Enemies() []*Enemy              { return w.enemies }
func (w *World) Obstacles() []*Obstacle         { return w.obstacles }
func (w *World) Projectiles() []*Projectile     { return w.projectiles }
func (w *World) Pickups() []*Pickup             { return w.pickups }
func (w *World) Magazines() *MagazineManager    { return w.mags }
func (w *World) Vision() *VisionSystem          { return w.vision }
func (w *World) Impacts() []*ImpactEffect       { return w.combat.ActiveImpacts() }
func (w *World) Log() *EventLog                 { return w.log }
func (w *World) Stats() RunStats                { return w.stats }

// VisibleEnemies returns live enemies whose body is visible from the player.
func (w *World) VisibleEnemies() []*Enemy {
	var out []*Enemy
	for _, e := range w.enemies {
		if e.Dead() {
			continue
		}
		if w.vision.IsCircleVisible(w.player.x, w.player.y, e.x, e.y, enemyRadius, w.obstacles) {
			out = append(out, e)
		}
	}
	return out
}

// Update advances the world by one frame. realDt is wall-clock seconds; the
// player moves in real time and everything else in scaled world time.
//
// Order: time scale, player, actions, magazines, enemies, projectiles,
// collisions, deaths and drops, destroyed obstacles, pickups, spawning,
// impact effects, vision.
func (w *World) Update(realDt float64, in Input) {
	if w.gameOver || realDt <= 0 {
		return
	}
	w.tick++

	w.updateTimeScale(realDt, in)
	dt := realDt * w.timeScale
	w.elapsed += dt

	w.player.Move(in.MoveX, in.MoveY, realDt)
	w.player.x, w.player.y = pushOutOfAll(w.player.x, w.player.y, playerRadius, w.obstacles)
	w.player.AimAt(in.AimX, in.AimY)

	w.handleActions(in)
	w.mags.Update(dt)
	w.player.Update(realDt)

	w.updateEnemies(dt)

	for _, p := range w.projectiles {
		p.Update(dt)
	}
	w.combat.ResolveCollisions(w.tick, w.projectiles, w.enemies, w.obstacles)
	w.projectiles = removeDeadProjectiles(w.projectiles)

	var dropped []*Pickup
	before := len(w.enemies)
	w.enemies, dropped = w.combat.CollectDead(w.tick, w.enemies)
	w.stats.Kills += before - len(w.enemies)
	w.pickups = append(w.pickups, dropped...)

	w.removeDestroyedObstacles()
	w.collectPickups(dt)

	if w.cfg.Spawning {
		w.spawnTimer += dt
		if w.spawnTimer >= w.cfg.SpawnInterval {
			w.spawnTimer = 0
			w.trySpawnEnemy()
		}
	}

	w.combat.UpdateImpacts(dt)
	w.vision.UpdateVision(w.player.x, w.player.y, w.obstacles)

	if w.player.Dead() {
		w.gameOver = true
		w.log.Add(w.tick, "P", "world", "player_dead",
			fmt.Sprintf("at %.1fs, %d kills", w.elapsed, w.stats.Kills), w.elapsed)
	}
}

// Run polls src and advances the world up to ticks times with a fixed step.
// It stops early on game over and returns the number of ticks advanced.
func (w *World) Run(src InputSource, ticks int, dt float64) int {
	n := 0
	for n < ticks && !w.gameOver {
		w.Update(dt, src.Poll(w))
		n++
	}
	return n
}

func (w *World) updateTimeScale(realDt float64, in Input) {
	target := w.cfg.TimeScaleMin
	if in.MoveX != 0 || in.MoveY != 0 || in.HoldTime {
		target = w.cfg.TimeScaleMax
	}
	k := math.Min(1, w.cfg.TimeScaleLerp*realDt)
	w.timeScale += (target - w.timeScale) * k
	w.timeScale = clamp(w.timeScale, w.cfg.TimeScaleMin, w.cfg.TimeScaleMax)
}

func (w *World) handleActions(in Input) {
	if in.Select > 0 {
		w.mags.Select(in.Select - 1)
	}
	switch {
	case in.Cycle > 0:
		w.mags.CycleNext()
	case in.Cycle < 0:
		w.mags.CyclePrevious()
	}

	if in.Rearrange && w.mags.Rearrange() {
		w.stats.Rearranges++
		top, _ := w.mags.Selected().PeekTop()
		w.log.Add(w.tick, "P", "ammo", "rearrange",
			fmt.Sprintf("%s next=%s", w.mags.Selected().Name(), top.Name), 0)
	}

	if in.Fire {
		w.fire()
	}
}

func (w *World) fire() {
	mag := w.mags.Selected()
	top, ok := mag.PeekTop()
	if !ok || !mag.CanShoot() {
		return
	}
	gx, gy := w.player.GunTip()
	p := w.mags.Shoot(gx, gy, w.player.aimAngle)
	if p == nil {
		return
	}
	w.stats.ShotsFired++
	w.player.triggerMuzzleFlash()
	w.log.Add(w.tick, "P", "ammo", "shoot",
		fmt.Sprintf("%s from %s", top.Name, mag.Name()), float64(top.UsesRemaining))

	if top.Behavior == BehaviorBomb {
		w.combat.ApplyBomb(w.tick, p, w.player.x, w.player.y, w.enemies, w.obstacles)
		return
	}
	w.projectiles = append(w.projectiles, p)
}

func (w *World) updateEnemies(dt float64) {
	for _, e := range w.enemies {
		if e.Dead() {
			continue
		}
		dmg, expired := e.Update(dt, w.player.x, w.player.y, w.obstacles)
		if dmg > 0 {
			w.log.AddVerbose(w.tick, e.label, "effect", "tick", fmt.Sprintf("%.2f", dmg), dmg)
		}
		for _, c := range expired {
			w.log.Add(w.tick, e.label, "effect", "expire", c.Kind.String(), c.Damage)
			if c.Damage > 0 {
				w.log.Add(w.tick, e.label, "effect", "shatter", fmt.Sprintf("%.1f", c.Damage), c.Damage)
			}
		}
		if !e.Dead() && e.CollidesWith(w.player.x, w.player.y, playerRadius) {
			hit := w.cfg.ContactDPS * dt
			w.player.TakeDamage(hit)
			w.stats.DamageTaken += hit
		}
	}
}

func (w *World) removeDestroyedObstacles() {
	for _, o := range w.obstacles {
		if o.Destroyed() {
			w.log.Add(w.tick, "--", "world", "obstacle_destroyed",
				fmt.Sprintf("(%.0f,%.0f)", o.x, o.y), 0)
			w.stats.ObstaclesDestroyed++
		}
	}
	w.obstacles = removeDestroyedObstacles(w.obstacles)
}

func (w *World) collectPickups(dt float64) {
	r2 := w.cfg.PickupRadius * w.cfg.PickupRadius
	kept := w.pickups[:0]
	for _, pk := range w.pickups {
		pk.age += dt
		dx := pk.x - w.player.x
		dy := pk.y - w.player.y
		if dx*dx+dy*dy < r2 {
			if idx := w.mags.AddToFirstAvailable(pk.def); idx >= 0 {
				w.stats.Pickups++
				w.log.Add(w.tick, "P", "ammo", "pickup",
					fmt.Sprintf("%s x%d -> %s", pk.def.Name, pk.def.UsesRemaining, w.mags.magazines[idx].Name()),
					float64(idx))
				continue
			}
		}
		kept = append(kept, pk)
	}
	for i := len(kept); i < len(w.pickups); i++ {
		w.pickups[i] = nil
	}
	w.pickups = kept
}

// trySpawnEnemy places one enemy on a ring around the player, outside every
// obstacle. Gives up after SpawnAttempts tries.
func (w *World) trySpawnEnemy() bool {
	if w.cfg.MaxEnemies > 0 && len(w.enemies) >= w.cfg.MaxEnemies {
		return false
	}
	for i := 0; i < w.cfg.SpawnAttempts; i++ {
		angle := w.rng.Float64() * 2 * math.Pi
		dist := w.cfg.SpawnMinDist + w.rng.Float64()*(w.cfg.SpawnMaxDist-w.cfg.SpawnMinDist)
		x := w.player.x + math.Cos(angle)*dist
		y := w.player.y + math.Sin(angle)*dist
		if overlapsAny(x, y, enemyRadius, w.obstacles) {
			continue
		}
		var shield *Shield
		if w.rng.Float64() < w.cfg.ShieldChance {
			shield = NewShield(shieldElements[w.rng.Intn(len(shieldElements))])
		}
		e := w.addEnemy(x, y, shield)
		detail := fmt.Sprintf("(%.0f,%.0f)", x, y)
		if shield != nil {
			detail += " shield=" + shield.element.String()
		}
		w.log.Add(w.tick, e.label, "world", "spawn", detail, 0)
		return true
	}
	return false
}

func (w *World) addEnemy(x, y float64, shield *Shield) *Enemy {
	e := NewEnemy(w.nextEnemyID, x, y, shield)
	w.nextEnemyID++
	w.enemies = append(w.enemies, e)
	return e
}

func overlapsAny(x, y, r float64, obstacles []*Obstacle) bool {
	for _, o := range obstacles {
		if o.OverlapsCircle(x, y, r) {
			return true
		}
	}
	return false
}
