package game

import "math"

const (
	burningDuration = 4.0 // seconds
	burningDPS      = 8.0
	frozenDuration  = 3.0 // seconds
	frozenSlow      = 0.4 // movement multiplier while frozen
	frozenShatter   = 20.0
)

// StatusKind is the closed set of status effects an actor can carry.
type StatusKind int

const (
	StatusNone StatusKind = iota
	StatusBurning
	StatusFrozen
)

func (k StatusKind) String() string {
	switch k {
	case StatusNone:
		return "none"
	case StatusBurning:
		return "burning"
	case StatusFrozen:
		return "frozen"
	default:
		return "unknown"
	}
}

// StatusTarget is the actor category an effect is meant for.
type StatusTarget int

const (
	TargetEnemy StatusTarget = iota
	TargetPlayer
)

// StatusEffect is one timed effect instance.
type StatusEffect struct {
	Kind      StatusKind
	Duration  float64 // initial duration
	Remaining float64
	Target    StatusTarget

	DamagePerSecond float64 // burning
	SpeedMultiplier float64 // frozen; 1 for effects that don't slow
	ShatterDamage   float64 // frozen; dealt once on expiry
}

// NewStatusEffect builds the default-tuned instance for a kind.
func NewStatusEffect(kind StatusKind) StatusEffect {
	switch kind {
	case StatusBurning:
		return StatusEffect{
			Kind:            StatusBurning,
			Duration:        burningDuration,
			Remaining:       burningDuration,
			Target:          TargetEnemy,
			DamagePerSecond: burningDPS,
			SpeedMultiplier: 1,
		}
	case StatusFrozen:
		return StatusEffect{
			Kind:            StatusFrozen,
			Duration:        frozenDuration,
			Remaining:       frozenDuration,
			Target:          TargetEnemy,
			SpeedMultiplier: frozenSlow,
			ShatterDamage:   frozenShatter,
		}
	default:
		return StatusEffect{Kind: StatusNone, SpeedMultiplier: 1}
	}
}

// WithDuration returns a copy with a different duration.
func (e StatusEffect) WithDuration(d float64) StatusEffect {
	d = math.Max(0, d)
	e.Duration = d
	e.Remaining = d
	return e
}

// Expired reports whether the effect has run out.
func (e StatusEffect) Expired() bool { return e.Remaining <= 0 }

// Progress returns elapsed/duration in [0,1] for indicators.
func (e StatusEffect) Progress() float64 {
	if e.Duration <= 0 {
		return 1
	}
	return clamp01(1 - e.Remaining/e.Duration)
}

// tick returns the damage the effect deals over dt, before its timer moves.
func (e *StatusEffect) tick(dt float64) float64 {
	switch e.Kind {
	case StatusBurning:
		return e.DamagePerSecond * math.Min(dt, e.Remaining)
	default:
		return 0
	}
}

// expire returns the one-off damage dealt when the effect runs out.
func (e *StatusEffect) expire() float64 {
	switch e.Kind {
	case StatusFrozen:
		return e.ShatterDamage
	default:
		return 0
	}
}

// StatusChange describes what happened to an effect during Apply or Update,
// so callers can log it.
type StatusChange struct {
	Kind    StatusKind
	Event   string // "apply", "refresh", "expire"
	Damage  float64
	Seconds float64
}

// StatusEffectManager holds at most one effect per kind for an actor.
type StatusEffectManager struct {
	effects []StatusEffect
}

// Apply adds the effect, or refreshes an existing one of the same kind to
// max(remaining, new duration). Instances never stack.
func (m *StatusEffectManager) Apply(e StatusEffect) StatusChange {
	if e.Kind == StatusNone {
		return StatusChange{}
	}
	for i := range m.effects {
		if m.effects[i].Kind == e.Kind {
			m.effects[i].Remaining = math.Max(m.effects[i].Remaining, e.Duration)
			return StatusChange{Kind: e.Kind, Event: "refresh", Seconds: m.effects[i].Remaining}
		}
	}
	m.effects = append(m.effects, e)
	return StatusChange{Kind: e.Kind, Event: "apply", Seconds: e.Remaining}
}

// Update advances every effect by dt and returns the total damage dealt
// (periodic damage plus expiry bursts) together with any expiries.
func (m *StatusEffectManager) Update(dt float64) (float64, []StatusChange) {
	if dt <= 0 || len(m.effects) == 0 {
		return 0, nil
	}
	total := 0.0
	var expired []StatusChange
	kept := m.effects[:0]
	for _, e := range m.effects {
		total += e.tick(dt)
		e.Remaining = math.Max(0, e.Remaining-dt)
		if e.Expired() {
			burst := e.expire()
			total += burst
			expired = append(expired, StatusChange{Kind: e.Kind, Event: "expire", Damage: burst})
			continue
		}
		kept = append(kept, e)
	}
	m.effects = kept
	return total, expired
}

// Has reports whether an effect of the kind is active.
func (m *StatusEffectManager) Has(kind StatusKind) bool {
	_, ok := m.Get(kind)
	return ok
}

// Get returns a copy of the active effect of the kind.
func (m *StatusEffectManager) Get(kind StatusKind) (StatusEffect, bool) {
	for _, e := range m.effects {
		if e.Kind == kind {
			return e, true
		}
	}
	return StatusEffect{}, false
}

// SpeedMultiplier is the product of all active movement modifiers.
func (m *StatusEffectManager) SpeedMultiplier() float64 {
	mul := 1.0
	for _, e := range m.effects {
		if e.SpeedMultiplier > 0 {
			mul *= e.SpeedMultiplier
		}
	}
	return mul
}

// Active returns a snapshot of the active effects in application order.
func (m *StatusEffectManager) Active() []StatusEffect {
	out := make([]StatusEffect, len(m.effects))
	copy(out, m.effects)
	return out
}

// Clear drops every effect without triggering expiry.
func (m *StatusEffectManager) Clear() {
	m.effects = m.effects[:0]
}
