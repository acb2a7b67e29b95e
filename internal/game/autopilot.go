package game

import "math"

// Autopilot is a scripted InputSource for headless runs. It circles the
// origin, keeps time flowing, and shoots at the nearest visible enemy with
// the best round it can find.
type Autopilot struct {
	orbitRadius float64
	orbitSpeed  float64 // radians per tick
	phase       float64
}

// NewAutopilot returns an autopilot orbiting at radius.
func NewAutopilot(radius float64) *Autopilot {
	return &Autopilot{orbitRadius: radius, orbitSpeed: 0.01}
}

// Poll implements InputSource.
func (a *Autopilot) Poll(w *World) Input {
	p := w.Player()
	a.phase += a.orbitSpeed

	tx := math.Cos(a.phase) * a.orbitRadius
	ty := math.Sin(a.phase) * a.orbitRadius
	in := Input{
		MoveX:    tx - p.x,
		MoveY:    ty - p.y,
		HoldTime: true,
		AimX:     p.x + math.Cos(p.aimAngle),
		AimY:     p.y + math.Sin(p.aimAngle),
	}
	if math.Hypot(in.MoveX, in.MoveY) < 5 {
		in.MoveX, in.MoveY = 0, 0
	}

	target, dist := nearestEnemy(p, w.VisibleEnemies())
	if target == nil {
		return in
	}
	in.AimX, in.AimY = target.x, target.y

	mm := w.Magazines()
	if best := bestMagazine(mm, target, dist); best >= 0 && best != mm.SelectedIndex() {
		in.Select = best + 1
		return in
	}

	sel := mm.Selected()
	top, ok := sel.PeekTop()
	if !ok {
		return in
	}
	if !roundUseful(top, target, dist) {
		in.Rearrange = sel.CanRearrange() && sel.Len() > 1
		return in
	}
	in.Fire = sel.CanShoot()
	return in
}

func nearestEnemy(p *Player, enemies []*Enemy) (*Enemy, float64) {
	var best *Enemy
	bestDist := math.Inf(1)
	for _, e := range enemies {
		d := math.Hypot(e.x-p.x, e.y-p.y)
		if d < bestDist {
			best, bestDist = e, d
		}
	}
	return best, bestDist
}

// roundUseful rejects rounds that would be wasted on this target.
func roundUseful(d AmmoDef, target *Enemy, dist float64) bool {
	if d.Behavior == BehaviorBomb {
		return dist < d.Radius
	}
	if target.HasActiveShield() && d.Element != ElementNone {
		return d.Element == target.shield.element
	}
	return true
}

// bestMagazine scores each magazine's top round against the target and
// returns the index worth switching to, or -1 to stay.
func bestMagazine(mm *MagazineManager, target *Enemy, dist float64) int {
	best, bestScore := -1, 0.0
	for i, m := range mm.Magazines() {
		top, ok := m.PeekTop()
		if !ok || !m.CanShoot() || !roundUseful(top, target, dist) {
			continue
		}
		score := top.Damage
		if target.HasActiveShield() && top.Element == target.shield.element {
			score *= 4
		}
		if top.Effect != StatusNone && !target.effects.Has(top.Effect) {
			score += 10
		}
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	sel := mm.SelectedIndex()
	if top, ok := mm.Selected().PeekTop(); ok && mm.Selected().CanShoot() && roundUseful(top, target, dist) {
		// Stay unless the switch is clearly better.
		if cur := top.Damage; bestScore < cur*1.5 {
			return sel
		}
	}
	return best
}
