package game

import (
	"image/color"
	"math"
)

const (
	projectileMaxDistance = 800.0 // world units before a round expires
	grenadeFuse           = 2.0   // seconds before a grenade detonates in flight
)

// Projectile is a round in flight.
type Projectile struct {
	x, y             float64
	originX, originY float64
	angle            float64
	speed            float64
	damage           float64
	radius           float64
	color            color.RGBA
	behavior         Behavior
	splashDamage     float64
	splashRadius     float64
	effect           StatusKind
	element          Element
	name             string

	traveled float64
	lifetime float64
	alive    bool
	exploded bool

	// Splash bookkeeping for the current resolution pass.
	obstacleSplashDone bool
	enemySplashDone    bool
	hitEnemy           *Enemy
	hitObstacle        *Obstacle
}

func (p *Projectile) Position() (float64, float64) { return p.x, p.y }
func (p *Projectile) Angle() float64                { return p.angle }
func (p *Projectile) Radius() float64               { return p.radius }
func (p *Projectile) Damage() float64               { return p.damage }
func (p *Projectile) Color() color.RGBA             { return p.color }
func (p *Projectile) Behavior() Behavior            { return p.behavior }
func (p *Projectile) Effect() StatusKind            { return p.effect }
func (p *Projectile) Element() Element              { return p.element }
func (p *Projectile) Name() string                  { return p.name }
func (p *Projectile) SplashRadius() float64         { return p.splashRadius }
func (p *Projectile) SplashDamage() float64         { return p.splashDamage }

// Alive reports whether the projectile is still in flight.
func (p *Projectile) Alive() bool { return p.alive }

// Exploded reports whether a grenade has detonated.
func (p *Projectile) Exploded() bool { return p.exploded }

// hasSplash is true for a detonated projectile carrying splash stats.
func (p *Projectile) hasSplash() bool {
	return p.exploded && p.splashRadius > 0
}

// Update advances the projectile by dt. Bombs never travel and are retired
// immediately.
func (p *Projectile) Update(dt float64) {
	if !p.alive {
		return
	}
	if p.behavior == BehaviorBomb {
		p.alive = false
		return
	}

	move := p.speed * dt
	p.x += math.Cos(p.angle) * move
	p.y += math.Sin(p.angle) * move
	p.traveled += move
	p.lifetime += dt

	if p.traveled > projectileMaxDistance {
		if p.behavior == BehaviorGrenade {
			p.explode()
		} else {
			p.alive = false
		}
		return
	}
	if p.behavior == BehaviorGrenade && p.lifetime >= grenadeFuse {
		p.explode()
	}
}

// OnHit retires the projectile after a collision; grenades detonate.
func (p *Projectile) OnHit() {
	if !p.alive {
		return
	}
	if p.behavior == BehaviorGrenade {
		p.explode()
		return
	}
	p.alive = false
}

func (p *Projectile) explode() {
	p.exploded = true
	p.alive = false
}

// removeDeadProjectiles filters retired projectiles in place.
func removeDeadProjectiles(ps []*Projectile) []*Projectile {
	kept := ps[:0]
	for _, p := range ps {
		if p.alive {
			kept = append(kept, p)
		}
	}
	for i := len(kept); i < len(ps); i++ {
		ps[i] = nil
	}
	return kept
}
