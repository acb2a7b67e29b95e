package game

import (
	"errors"
	"fmt"
	"image/color"
)

// ErrInvalidCapacity is returned when a magazine is built with no slots.
var ErrInvalidCapacity = errors.New("magazine capacity must be positive")

// Magazine is a bounded stack of ammunition definitions. Index 0 is the
// bottom; the last element is the top and fires next.
type Magazine struct {
	name     string
	capacity int
	color    color.RGBA
	rounds   []AmmoDef

	reloadTimer    float64
	reloadTotal    float64
	rearrangeTimer float64
	rearrangeTotal float64
}

// NewMagazine creates an empty magazine.
func NewMagazine(name string, capacity int, c color.RGBA) (*Magazine, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("magazine %q capacity %d: %w", name, capacity, ErrInvalidCapacity)
	}
	return &Magazine{
		name:     name,
		capacity: capacity,
		color:    c,
		rounds:   make([]AmmoDef, 0, capacity),
	}, nil
}

func (m *Magazine) Name() string      { return m.name }
func (m *Magazine) Capacity() int     { return m.capacity }
func (m *Magazine) Color() color.RGBA { return m.color }
func (m *Magazine) Len() int          { return len(m.rounds) }
func (m *Magazine) Full() bool        { return len(m.rounds) >= m.capacity }

// Rounds returns a copy of the stack, bottom first.
func (m *Magazine) Rounds() []AmmoDef {
	out := make([]AmmoDef, len(m.rounds))
	copy(out, m.rounds)
	return out
}

// PeekTop returns the definition that would fire next.
func (m *Magazine) PeekTop() (AmmoDef, bool) {
	if len(m.rounds) == 0 {
		return AmmoDef{}, false
	}
	return m.rounds[len(m.rounds)-1], true
}

// Add pushes a definition on top. Exhausted definitions and full magazines
// are refused.
func (m *Magazine) Add(d AmmoDef) bool {
	if d.Exhausted() || m.Full() {
		return false
	}
	m.rounds = append(m.rounds, d)
	return true
}

// AddToBottom inserts a definition under the rest of the stack.
func (m *Magazine) AddToBottom(d AmmoDef) bool {
	if d.Exhausted() || m.Full() {
		return false
	}
	m.rounds = append(m.rounds, AmmoDef{})
	copy(m.rounds[1:], m.rounds)
	m.rounds[0] = d
	return true
}

func (m *Magazine) popTop() AmmoDef {
	top := m.rounds[len(m.rounds)-1]
	m.rounds = m.rounds[:len(m.rounds)-1]
	return top
}

// CanShoot is true unless the magazine is reloading.
func (m *Magazine) CanShoot() bool { return m.reloadTimer <= 0 }

// CanRearrange is true when neither timer is running.
func (m *Magazine) CanRearrange() bool { return m.reloadTimer <= 0 && m.rearrangeTimer <= 0 }

// Reloading reports whether the reload timer is running.
func (m *Magazine) Reloading() bool { return m.reloadTimer > 0 }

// Rearranging reports whether the rearrange timer is running.
func (m *Magazine) Rearranging() bool { return m.rearrangeTimer > 0 }

// Shoot pops the top definition and returns a projectile built from it, or
// nil when the magazine is reloading or empty. The popped round goes back to
// the bottom unless it has just been used up.
func (m *Magazine) Shoot(x, y, angle float64) *Projectile {
	if !m.CanShoot() || len(m.rounds) == 0 {
		return nil
	}
	top := m.popTop()
	p := top.NewProjectile(x, y, angle)
	m.startReload(top.ReloadTime)

	if top.Infinite() {
		m.AddToBottom(top)
		return p
	}
	if next := top.WithDecrementedUse(); !next.Exhausted() {
		m.AddToBottom(next)
	}
	return p
}

// Rearrange moves the top definition to the bottom without spending a use.
func (m *Magazine) Rearrange() bool {
	if !m.CanRearrange() || len(m.rounds) == 0 {
		return false
	}
	top := m.popTop()
	m.AddToBottom(top)
	m.startRearrange(top.RearrangeTime)
	return true
}

func (m *Magazine) startReload(d float64) {
	if d <= 0 {
		m.reloadTimer, m.reloadTotal = 0, 0
		return
	}
	m.reloadTimer, m.reloadTotal = d, d
}

func (m *Magazine) startRearrange(d float64) {
	if d <= 0 {
		m.rearrangeTimer, m.rearrangeTotal = 0, 0
		return
	}
	m.rearrangeTimer, m.rearrangeTotal = d, d
}

// Update counts both timers down, clamping at zero.
func (m *Magazine) Update(dt float64) {
	if dt <= 0 {
		return
	}
	if m.reloadTimer > 0 {
		m.reloadTimer -= dt
		if m.reloadTimer <= 0 {
			m.reloadTimer, m.reloadTotal = 0, 0
		}
	}
	if m.rearrangeTimer > 0 {
		m.rearrangeTimer -= dt
		if m.rearrangeTimer <= 0 {
			m.rearrangeTimer, m.rearrangeTotal = 0, 0
		}
	}
}

// ReloadProgress is 1 - remaining/total, or 0 when no reload is running.
func (m *Magazine) ReloadProgress() float64 {
	return timerProgress(m.reloadTimer, m.reloadTotal)
}

// RearrangeProgress is 1 - remaining/total, or 0 when idle.
func (m *Magazine) RearrangeProgress() float64 {
	return timerProgress(m.rearrangeTimer, m.rearrangeTotal)
}

func timerProgress(remaining, total float64) float64 {
	if remaining <= 0 || total <= 0 {
		return 0
	}
	return clamp01(1 - remaining/total)
}

// --- Magazine Manager ---

// MagazineSpec describes one magazine for NewMagazineManager.
type MagazineSpec struct {
	Name     string
	Capacity int
	Color    color.RGBA
}

// DefaultMagazineSpecs is the standard four-magazine loadout.
func DefaultMagazineSpecs() []MagazineSpec {
	return []MagazineSpec{
		{Name: "Primary", Capacity: 6, Color: color.RGBA{R: 102, G: 153, B: 204, A: 255}},
		{Name: "Secondary", Capacity: 4, Color: color.RGBA{R: 204, G: 153, B: 102, A: 255}},
		{Name: "Heavy", Capacity: 3, Color: color.RGBA{R: 153, G: 102, B: 153, A: 255}},
		{Name: "Special", Capacity: 8, Color: color.RGBA{R: 102, G: 204, B: 128, A: 255}},
	}
}

// MagazineManager owns the player's ordered magazines and the selection.
type MagazineManager struct {
	magazines []*Magazine
	selected  int
}

// NewMagazineManager builds empty magazines from specs.
func NewMagazineManager(specs []MagazineSpec) (*MagazineManager, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("magazine manager: %w", ErrInvalidCapacity)
	}
	mm := &MagazineManager{}
	for _, s := range specs {
		m, err := NewMagazine(s.Name, s.Capacity, s.Color)
		if err != nil {
			return nil, err
		}
		mm.magazines = append(mm.magazines, m)
	}
	return mm, nil
}

// DefaultMagazineManager returns the standard loadout, each magazine holding
// one infinite Weak round.
func DefaultMagazineManager() *MagazineManager {
	mm, err := NewMagazineManager(DefaultMagazineSpecs())
	if err != nil {
		panic(err)
	}
	for _, m := range mm.magazines {
		m.Add(AmmoWeak)
	}
	return mm
}

// Magazines returns the magazines in declared order.
func (mm *MagazineManager) Magazines() []*Magazine { return mm.magazines }

// Len is the number of magazines.
func (mm *MagazineManager) Len() int { return len(mm.magazines) }

// SelectedIndex is the index of the active magazine.
func (mm *MagazineManager) SelectedIndex() int { return mm.selected }

// Selected returns the active magazine.
func (mm *MagazineManager) Selected() *Magazine { return mm.magazines[mm.selected] }

// Select switches to the magazine at index. Out of range indices are ignored.
func (mm *MagazineManager) Select(index int) bool {
	if index < 0 || index >= len(mm.magazines) {
		return false
	}
	mm.selected = index
	return true
}

// CycleNext selects the next magazine, wrapping around.
func (mm *MagazineManager) CycleNext() {
	mm.selected = (mm.selected + 1) % len(mm.magazines)
}

// CyclePrevious selects the previous magazine, wrapping around.
func (mm *MagazineManager) CyclePrevious() {
	mm.selected = (mm.selected - 1 + len(mm.magazines)) % len(mm.magazines)
}

// Shoot fires from the selected magazine.
func (mm *MagazineManager) Shoot(x, y, angle float64) *Projectile {
	return mm.Selected().Shoot(x, y, angle)
}

// Rearrange rearranges the selected magazine.
func (mm *MagazineManager) Rearrange() bool {
	return mm.Selected().Rearrange()
}

// Update advances every magazine's timers, not only the selected one.
func (mm *MagazineManager) Update(dt float64) {
	for _, m := range mm.magazines {
		m.Update(dt)
	}
}

// AddToFirstAvailable pushes d onto the first magazine with a free slot, in
// declared order. Returns the magazine index, or -1 if every magazine is full
// or d is exhausted.
func (mm *MagazineManager) AddToFirstAvailable(d AmmoDef) int {
	if d.Exhausted() {
		return -1
	}
	for i, m := range mm.magazines {
		if m.Add(d) {
			return i
		}
	}
	return -1
}
