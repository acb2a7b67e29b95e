package game

import (
	"fmt"
	"math"
)

const (
	playerRadius       = 20.0
	playerSpeed        = 250.0 // units per real second
	playerMaxHP        = 100.0
	muzzleFlashSeconds = 0.08

	enemyRadius      = 25.0
	enemySpeed       = 80.0 // units per world second
	enemyMaxHP       = 100.0
	enemyAvoidMargin = 50.0 // extra steering radius around obstacles

	shieldReduction = 0.5 // damage multiplier while a shield holds
)

// --- Player ---

// Player is the single controllable actor.
type Player struct {
	x, y      float64
	aimAngle  float64
	health    float64
	maxHealth float64
	flash     float64 // muzzle flash seconds remaining
}

// NewPlayer creates a full-health player at (x,y).
func NewPlayer(x, y float64) *Player {
	return &Player{x: x, y: y, health: playerMaxHP, maxHealth: playerMaxHP}
}

func (p *Player) Position() (float64, float64) { return p.x, p.y }
func (p *Player) Radius() float64               { return playerRadius }
func (p *Player) AimAngle() float64             { return p.aimAngle }
func (p *Player) Health() float64               { return p.health }
func (p *Player) Dead() bool                    { return p.health <= 0 }

// HealthFraction is health/maxHealth in [0,1].
func (p *Player) HealthFraction() float64 { return clamp01(p.health / p.maxHealth) }

// MuzzleFlash returns the remaining flash fraction in [0,1].
func (p *Player) MuzzleFlash() float64 { return clamp01(p.flash / muzzleFlashSeconds) }

// Move applies a normalized movement intent over dt seconds.
func (p *Player) Move(dx, dy, dt float64) {
	l := math.Hypot(dx, dy)
	if l == 0 || dt <= 0 {
		return
	}
	p.x += dx / l * playerSpeed * dt
	p.y += dy / l * playerSpeed * dt
}

// AimAt points the gun at a world position.
func (p *Player) AimAt(tx, ty float64) {
	if tx == p.x && ty == p.y {
		return
	}
	p.aimAngle = math.Atan2(ty-p.y, tx-p.x)
}

// GunTip is the muzzle position on the player's rim along the aim angle.
func (p *Player) GunTip() (float64, float64) {
	return p.x + math.Cos(p.aimAngle)*playerRadius, p.y + math.Sin(p.aimAngle)*playerRadius
}

// TakeDamage subtracts amount, clamping at zero.
func (p *Player) TakeDamage(amount float64) {
	if amount <= 0 {
		return
	}
	p.health = math.Max(0, p.health-amount)
}

func (p *Player) triggerMuzzleFlash() { p.flash = muzzleFlashSeconds }

// Update ticks the player's cosmetic timers.
func (p *Player) Update(dt float64) {
	if p.flash > 0 {
		p.flash = math.Max(0, p.flash-dt)
	}
}

// --- Shield ---

// Shield halves incoming damage until struck by its own element.
type Shield struct {
	element   Element
	active    bool
	reduction float64
}

// NewShield creates an active shield of the element.
func NewShield(e Element) *Shield {
	return &Shield{element: e, active: true, reduction: shieldReduction}
}

func (s *Shield) Element() Element    { return s.element }
func (s *Shield) Active() bool        { return s != nil && s.active }
func (s *Shield) Reduction() float64  { return s.reduction }

// tryBreak deactivates the shield if e matches exactly. ElementNone never
// matches.
func (s *Shield) tryBreak(e Element) bool {
	if !s.active || e == ElementNone || e != s.element {
		return false
	}
	s.active = false
	return true
}

// --- Enemy ---

// Enemy chases the player and soaks projectiles.
type Enemy struct {
	id        int
	label     string
	x, y      float64
	health    float64
	maxHealth float64
	shield    *Shield
	effects   StatusEffectManager

	dropRolled bool
	pulse      float64 // shield animation phase
}

// NewEnemy creates an enemy. A nil shield means unshielded.
func NewEnemy(id int, x, y float64, shield *Shield) *Enemy {
	return &Enemy{
		id:        id,
		label:     fmt.Sprintf("E%d", id),
		x:         x,
		y:         y,
		health:    enemyMaxHP,
		maxHealth: enemyMaxHP,
		shield:    shield,
	}
}

func (e *Enemy) ID() int                       { return e.id }
func (e *Enemy) Label() string                 { return e.label }
func (e *Enemy) Position() (float64, float64)  { return e.x, e.y }
func (e *Enemy) Radius() float64               { return enemyRadius }
func (e *Enemy) Health() float64               { return e.health }
func (e *Enemy) Shield() *Shield               { return e.shield }
func (e *Enemy) Effects() *StatusEffectManager { return &e.effects }
func (e *Enemy) Pulse() float64                { return e.pulse }

// Dead is derived from health.
func (e *Enemy) Dead() bool { return e.health <= 0 }

// HasActiveShield reports whether a shield is still up.
func (e *Enemy) HasActiveShield() bool { return e.shield.Active() }

// HealthFraction is health/maxHealth in [0,1].
func (e *Enemy) HealthFraction() float64 { return clamp01(e.health / e.maxHealth) }

// CollidesWith is a circle-circle test against (px,py,pr).
func (e *Enemy) CollidesWith(px, py, pr float64) bool {
	dx := px - e.x
	dy := py - e.y
	rr := enemyRadius + pr
	return dx*dx+dy*dy < rr*rr
}

// DamageResult reports what TakeDamage did.
type DamageResult struct {
	Dealt        float64
	Mitigated    bool // an intact shield halved the hit
	ShieldBroken bool
	Status       StatusChange
	Killed       bool // this hit took the enemy from alive to dead
}

// TakeDamage applies a hit. An active shield breaks only on an exact element
// match, in which case full damage lands; otherwise the shield halves the
// damage and stays up. The status effect is applied either way.
func (e *Enemy) TakeDamage(amount float64, effect StatusKind, element Element) DamageResult {
	var res DamageResult
	wasAlive := !e.Dead()
	final := math.Max(0, amount)

	if e.shield.Active() {
		if e.shield.tryBreak(element) {
			res.ShieldBroken = true
		} else {
			final *= e.shield.reduction
			res.Mitigated = true
		}
	}

	e.applyDamage(final)
	res.Dealt = final
	if effect != StatusNone {
		res.Status = e.effects.Apply(NewStatusEffect(effect))
	}
	res.Killed = wasAlive && e.Dead()
	return res
}

func (e *Enemy) applyDamage(amount float64) {
	if amount <= 0 {
		return
	}
	e.health = math.Max(0, e.health-amount)
}

// Update ticks status effects, then steers toward (px,py) around obstacles
// and resolves overlaps. Returns the status damage taken and any expiries.
func (e *Enemy) Update(dt, px, py float64, obstacles []*Obstacle) (float64, []StatusChange) {
	dmg, expired := e.effects.Update(dt)
	e.applyDamage(dmg)
	e.pulse += dt * 3

	if e.Dead() || dt <= 0 {
		return dmg, expired
	}

	speed := enemySpeed * e.effects.SpeedMultiplier()
	dx := px - e.x
	dy := py - e.y
	l := math.Hypot(dx, dy)
	if l <= enemyRadius {
		return dmg, expired
	}
	dx /= l
	dy /= l

	// Steer away from nearby obstacles.
	var ax, ay float64
	for _, o := range obstacles {
		ox := e.x - o.x
		oy := e.y - o.y
		od := math.Hypot(ox, oy)
		reach := enemyRadius + enemyAvoidMargin + o.halfW
		if od < reach && od > 0.1 {
			strength := 1 - od/reach
			ax += ox / od * strength * 2
			ay += oy / od * strength * 2
		}
	}
	dx += ax
	dy += ay
	if fl := math.Hypot(dx, dy); fl > 0.1 {
		dx /= fl
		dy /= fl
	}

	nx := e.x + dx*speed*dt
	ny := e.y + dy*speed*dt
	e.x, e.y = pushOutOfAll(nx, ny, enemyRadius, obstacles)
	return dmg, expired
}
