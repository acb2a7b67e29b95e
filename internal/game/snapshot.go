package game

import "image/color"

// Snapshot is a read-only value copy of everything the rendering
// collaborator needs for one frame. Mutating it never affects the World.
type Snapshot struct {
	Tick      int
	Elapsed   float64
	TimeScale float64
	GameOver  bool

	Player      PlayerView
	Enemies     []EnemyView
	Obstacles   []ObstacleView
	Projectiles []ProjectileView
	Pickups     []PickupView
	Impacts     []ImpactView
	Polygon     [][2]float64

	Magazines []MagazineView
	Selected  int
	Stats     RunStats
}

type PlayerView struct {
	X, Y       float64
	Radius     float64
	Health     float64
	HealthFrac float64
	Aim        float64
	Flash      float64
}

type EnemyView struct {
	ID           int
	Label        string
	X, Y         float64
	Radius       float64
	HealthFrac   float64
	Shield       Element
	ShieldActive bool
	Effects      []StatusEffect
	Pulse        float64
	Visible      bool
}

type ObstacleView struct {
	MinX, MinY, MaxX, MaxY float64
	HealthFrac             float64
	Seen                   bool
	Visible                bool
}

type ProjectileView struct {
	X, Y     float64
	Radius   float64
	Angle    float64
	Behavior Behavior
	Color    color.RGBA
}

type PickupView struct {
	X, Y float64
	Ammo AmmoDef
	Age  float64
}

type ImpactView struct {
	X, Y      float64
	Color     color.RGBA
	Progress  float64
	Particles []ImpactParticle
}

type MagazineView struct {
	Name              string
	Capacity          int
	Color             color.RGBA
	Rounds            []AmmoDef // bottom first
	Reloading         bool
	Rearranging       bool
	ReloadProgress    float64
	RearrangeProgress float64
}

// Snapshot copies the current world state.
func (w *World) Snapshot() Snapshot {
	p := w.player
	s := Snapshot{
		Tick:      w.tick,
		Elapsed:   w.elapsed,
		TimeScale: w.timeScale,
		GameOver:  w.gameOver,
		Player: PlayerView{
			X: p.x, Y: p.y,
			Radius:     playerRadius,
			Health:     p.health,
			HealthFrac: p.HealthFraction(),
			Aim:        p.aimAngle,
			Flash:      p.MuzzleFlash(),
		},
		Polygon:  w.vision.VisiblePolygon(),
		Selected: w.mags.SelectedIndex(),
		Stats:    w.stats,
	}

	for _, e := range w.enemies {
		ev := EnemyView{
			ID:         e.id,
			Label:      e.label,
			X:          e.x,
			Y:          e.y,
			Radius:     enemyRadius,
			HealthFrac: e.HealthFraction(),
			Effects:    e.effects.Active(),
			Pulse:      e.pulse,
			Visible:    w.vision.IsCircleVisible(p.x, p.y, e.x, e.y, enemyRadius, w.obstacles),
		}
		if e.shield != nil {
			ev.Shield = e.shield.element
			ev.ShieldActive = e.shield.Active()
		}
		s.Enemies = append(s.Enemies, ev)
	}

	for _, o := range w.obstacles {
		minX, minY, maxX, maxY := o.Bounds()
		s.Obstacles = append(s.Obstacles, ObstacleView{
			MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY,
			HealthFrac: o.HealthFraction(),
			Seen:       o.seen,
			Visible:    w.vision.IsObstacleVisible(p.x, p.y, o, w.obstacles),
		})
	}

	for _, pr := range w.projectiles {
		s.Projectiles = append(s.Projectiles, ProjectileView{
			X: pr.x, Y: pr.y,
			Radius:   pr.radius,
			Angle:    pr.angle,
			Behavior: pr.behavior,
			Color:    pr.color,
		})
	}

	for _, pk := range w.pickups {
		s.Pickups = append(s.Pickups, PickupView{X: pk.x, Y: pk.y, Ammo: pk.def, Age: pk.age})
	}

	for _, ie := range w.combat.ActiveImpacts() {
		s.Impacts = append(s.Impacts, ImpactView{
			X: ie.x, Y: ie.y,
			Color:     ie.color,
			Progress:  ie.Progress(),
			Particles: ie.Particles(),
		})
	}

	for _, m := range w.mags.Magazines() {
		s.Magazines = append(s.Magazines, MagazineView{
			Name:              m.name,
			Capacity:          m.capacity,
			Color:             m.color,
			Rounds:            m.Rounds(),
			Reloading:         m.Reloading(),
			Rearranging:       m.Rearranging(),
			ReloadProgress:    m.ReloadProgress(),
			RearrangeProgress: m.RearrangeProgress(),
		})
	}
	return s
}
