package game

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"
)

// --- Combat constants ---

const (
	impactLifetime      = 0.2  // seconds an impact effect persists
	impactMinParticles  = 6    // particles per impact, plus up to impactExtraParticle-1
	impactExtraParticle = 4    // random extra particles
	impactFriction      = 0.92 // particle speed retained per update
)

// --- Impact effects ---

// ImpactEffect is a short-lived cosmetic burst where a projectile struck.
type ImpactEffect struct {
	x, y      float64
	color     color.RGBA
	age       float64
	particles []ImpactParticle
}

// ImpactParticle is one spark of an ImpactEffect.
type ImpactParticle struct {
	X, Y  float64
	Size  float64
	angle float64
	speed float64
}

func (ie *ImpactEffect) Position() (float64, float64) { return ie.x, ie.y }
func (ie *ImpactEffect) Color() color.RGBA            { return ie.color }

// Progress is age/lifetime in [0,1].
func (ie *ImpactEffect) Progress() float64 { return clamp01(ie.age / impactLifetime) }

// Done returns true when the effect should be removed.
func (ie *ImpactEffect) Done() bool { return ie.age >= impactLifetime }

// Particles returns a copy of the current sparks.
func (ie *ImpactEffect) Particles() []ImpactParticle {
	out := make([]ImpactParticle, len(ie.particles))
	copy(out, ie.particles)
	return out
}

func (ie *ImpactEffect) update(dt float64) {
	ie.age += dt
	for i := range ie.particles {
		p := &ie.particles[i]
		p.X += math.Cos(p.angle) * p.speed * dt
		p.Y += math.Sin(p.angle) * p.speed * dt
		p.speed *= impactFriction
	}
}

// --- Combat Manager ---

// CombatManager resolves projectile collisions, splash, bombs, deaths and
// drops, and owns the impact effects they spawn.
type CombatManager struct {
	impacts []*ImpactEffect
	rng     Rand       // gameplay randomness: drops
	fxRng   *rand.Rand // cosmetic only; never affects outcomes
	drops   *DropTable
	log     *EventLog
}

// NewCombatManager creates a combat manager drawing drops from rng.
func NewCombatManager(rng Rand, drops *DropTable, fxSeed int64, log *EventLog) *CombatManager {
	if drops == nil {
		drops = DefaultDropTable()
	}
	return &CombatManager{
		rng:   rng,
		fxRng: rand.New(rand.NewSource(fxSeed)), // #nosec G404 -- cosmetic only
		drops: drops,
		log:   log,
	}
}

// ActiveImpacts returns the impact effects still playing.
func (cm *CombatManager) ActiveImpacts() []*ImpactEffect {
	return cm.impacts
}

// UpdateImpacts ages impact effects and drops finished ones.
func (cm *CombatManager) UpdateImpacts(dt float64) {
	kept := cm.impacts[:0]
	for _, ie := range cm.impacts {
		ie.update(dt)
		if !ie.Done() {
			kept = append(kept, ie)
		}
	}
	for i := len(kept); i < len(cm.impacts); i++ {
		cm.impacts[i] = nil
	}
	cm.impacts = kept
}

func (cm *CombatManager) spawnImpact(x, y float64, c color.RGBA) {
	n := impactMinParticles + cm.fxRng.Intn(impactExtraParticle)
	ie := &ImpactEffect{x: x, y: y, color: c, particles: make([]ImpactParticle, 0, n)}
	for i := 0; i < n; i++ {
		ie.particles = append(ie.particles, ImpactParticle{
			X:     x,
			Y:     y,
			Size:  2 + cm.fxRng.Float64()*4,
			angle: cm.fxRng.Float64() * 2 * math.Pi,
			speed: 80 + cm.fxRng.Float64()*120,
		})
	}
	cm.impacts = append(cm.impacts, ie)
}

// ResolveCollisions runs the ordered collision pass for one tick, after all
// positions have advanced:
//  1. projectile vs obstacle (with obstacle splash for detonations)
//  2. projectile vs enemy (with enemy splash for detonations)
//  3. leftover splash for projectiles that detonated without finishing both
//     passes (in-flight detonations, or a hit on the other target class)
//
// Splash never hits the directly struck target and never chains.
func (cm *CombatManager) ResolveCollisions(tick int, projectiles []*Projectile, enemies []*Enemy, obstacles []*Obstacle) {
	// 1. Obstacles first: they can absorb a round before it reaches an enemy.
	for _, p := range projectiles {
		if !p.alive {
			continue
		}
		for _, o := range obstacles {
			if o.Destroyed() || !o.OverlapsCircle(p.x, p.y, p.radius) {
				continue
			}
			o.TakeDamage(p.damage)
			cm.log.AddVerbose(tick, "--", "combat", "obstacle_hit",
				fmt.Sprintf("%s %.1f at (%.0f,%.0f)", p.name, p.damage, o.x, o.y), p.damage)
			cm.spawnImpact(p.x, p.y, p.color)
			p.hitObstacle = o
			p.OnHit()
			if p.hasSplash() {
				cm.splashObstacles(tick, p, obstacles)
			}
			break
		}
	}

	// 2. Enemies.
	for _, p := range projectiles {
		if !p.alive {
			continue
		}
		for _, e := range enemies {
			if e.Dead() || !e.CollidesWith(p.x, p.y, p.radius) {
				continue
			}
			res := e.TakeDamage(p.damage, p.effect, p.element)
			cm.logHit(tick, e, p.name, "hit", res)
			cm.spawnImpact(p.x, p.y, p.color)
			p.hitEnemy = e
			p.OnHit()
			if p.hasSplash() {
				cm.splashEnemies(tick, p, enemies)
			}
			break
		}
	}

	// 3. Detonations that still owe splash.
	for _, p := range projectiles {
		if !p.hasSplash() {
			continue
		}
		if !p.enemySplashDone {
			cm.splashEnemies(tick, p, enemies)
		}
		if !p.obstacleSplashDone {
			cm.splashObstacles(tick, p, obstacles)
		}
	}
}

func (cm *CombatManager) splashEnemies(tick int, p *Projectile, enemies []*Enemy) {
	p.enemySplashDone = true
	if p.hitEnemy == nil && p.hitObstacle == nil {
		// In-flight detonation gets its own burst; hits already spawned one.
		cm.spawnImpact(p.x, p.y, p.color)
	}
	r2 := p.splashRadius * p.splashRadius
	for _, e := range enemies {
		if e == p.hitEnemy || e.Dead() {
			continue
		}
		dx := e.x - p.x
		dy := e.y - p.y
		if dx*dx+dy*dy >= r2 {
			continue
		}
		res := e.TakeDamage(p.splashDamage, p.effect, p.element)
		cm.logHit(tick, e, p.name, "splash", res)
	}
}

func (cm *CombatManager) splashObstacles(tick int, p *Projectile, obstacles []*Obstacle) {
	p.obstacleSplashDone = true
	r2 := p.splashRadius * p.splashRadius
	for _, o := range obstacles {
		if o == p.hitObstacle || o.Destroyed() {
			continue
		}
		dx := o.x - p.x
		dy := o.y - p.y
		if dx*dx+dy*dy >= r2 {
			continue
		}
		o.TakeDamage(p.splashDamage)
		cm.log.AddVerbose(tick, "--", "combat", "obstacle_splash",
			fmt.Sprintf("%s %.1f at (%.0f,%.0f)", p.name, p.splashDamage, o.x, o.y), p.splashDamage)
	}
}

// ApplyBomb resolves a bomb instantly around (cx,cy): every enemy and
// obstacle whose center lies within the bomb's radius takes its damage.
func (cm *CombatManager) ApplyBomb(tick int, p *Projectile, cx, cy float64, enemies []*Enemy, obstacles []*Obstacle) {
	r2 := p.radius * p.radius
	hits := 0
	for _, e := range enemies {
		if e.Dead() {
			continue
		}
		dx := e.x - cx
		dy := e.y - cy
		if dx*dx+dy*dy >= r2 {
			continue
		}
		res := e.TakeDamage(p.damage, p.effect, p.element)
		cm.logHit(tick, e, p.name, "bomb", res)
		hits++
	}
	for _, o := range obstacles {
		dx := o.x - cx
		dy := o.y - cy
		if dx*dx+dy*dy >= r2 {
			continue
		}
		o.TakeDamage(p.damage)
	}
	p.alive = false
	cm.spawnImpact(cx, cy, p.color)
	cm.log.Add(tick, "P", "combat", "bomb",
		fmt.Sprintf("%s r=%.0f at (%.0f,%.0f) hit %d", p.name, p.radius, cx, cy, hits), float64(hits))
}

func (cm *CombatManager) logHit(tick int, e *Enemy, source, key string, res DamageResult) {
	detail := fmt.Sprintf("%s %.1f", source, res.Dealt)
	switch {
	case res.ShieldBroken:
		detail += " (shield broke)"
	case res.Mitigated:
		detail += " (shielded)"
	}
	cm.log.Add(tick, e.label, "combat", key, detail, res.Dealt)
	if res.ShieldBroken {
		cm.log.Add(tick, e.label, "combat", "shield_break", e.shield.element.String(), 0)
	}
	if res.Status.Event != "" {
		cm.log.Add(tick, e.label, "effect", res.Status.Event,
			fmt.Sprintf("%s %.2fs", res.Status.Kind, res.Status.Seconds), res.Status.Seconds)
	}
}

// CollectDead removes dead enemies, rolling each one's drop exactly once.
// Returns the survivors and any pickups spawned.
func (cm *CombatManager) CollectDead(tick int, enemies []*Enemy) ([]*Enemy, []*Pickup) {
	var pickups []*Pickup
	kept := enemies[:0]
	for _, e := range enemies {
		if !e.Dead() {
			kept = append(kept, e)
			continue
		}
		cm.log.Add(tick, e.label, "combat", "kill", fmt.Sprintf("at (%.0f,%.0f)", e.x, e.y), 0)
		if e.dropRolled {
			continue
		}
		e.dropRolled = true
		if def, ok := cm.drops.Roll(cm.rng); ok {
			pickups = append(pickups, NewPickup(e.x, e.y, def))
			cm.log.Add(tick, e.label, "ammo", "drop",
				fmt.Sprintf("%s x%d", def.Name, def.UsesRemaining), float64(def.UsesRemaining))
		}
	}
	for i := len(kept); i < len(enemies); i++ {
		enemies[i] = nil
	}
	return kept, pickups
}
