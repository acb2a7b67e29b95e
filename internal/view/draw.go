package view

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Mags/internal/game"
)

const gridSpacing = 100.0

var (
	backgroundColor = color.RGBA{R: 18, G: 20, B: 24, A: 255}
	gridColor       = color.RGBA{R: 32, G: 36, B: 42, A: 255}
	fogColor        = color.RGBA{R: 6, G: 7, B: 9, A: 215}
	playerColor     = color.RGBA{R: 90, G: 160, B: 255, A: 255}
	enemyColor      = color.RGBA{R: 200, G: 60, B: 60, A: 255}
	burningTint     = color.RGBA{R: 255, G: 140, B: 40, A: 255}
	frozenTint      = color.RGBA{R: 140, G: 210, B: 255, A: 255}
)

func (g *Game) drawGrid(screen *ebiten.Image) {
	c := &g.cam
	halfW := float64(c.w) / 2
	halfH := float64(c.h) / 2
	x0 := math.Floor((c.x-halfW)/gridSpacing) * gridSpacing
	y0 := math.Floor((c.y-halfH)/gridSpacing) * gridSpacing
	for x := x0; x <= c.x+halfW; x += gridSpacing {
		sx, _ := c.toScreen(x, 0)
		vector.StrokeLine(screen, sx, 0, sx, float32(c.h), 1.0, gridColor, false)
	}
	for y := y0; y <= c.y+halfH; y += gridSpacing {
		_, sy := c.toScreen(0, y)
		vector.StrokeLine(screen, 0, sy, float32(c.w), sy, 1.0, gridColor, false)
	}
}

// drawObstacles draws only obstacles the player has ever seen. Ones outside
// current sight are drawn dimmed, the last known shape.
func (g *Game) drawObstacles(screen *ebiten.Image, obstacles []game.ObstacleView) {
	for _, o := range obstacles {
		if !o.Seen {
			continue
		}
		x0, y0 := g.cam.toScreen(o.MinX, o.MinY)
		x1, y1 := g.cam.toScreen(o.MaxX, o.MaxY)
		w, h := x1-x0, y1-y0

		shade := uint8(60 + 60*o.HealthFrac)
		fill := color.RGBA{R: shade, G: shade, B: shade + 10, A: 255}
		edge := color.RGBA{R: 150, G: 150, B: 160, A: 255}
		if !o.Visible {
			fill = color.RGBA{R: shade / 2, G: shade / 2, B: shade/2 + 5, A: 255}
			edge = color.RGBA{R: 70, G: 70, B: 80, A: 255}
		}
		vector.FillRect(screen, x0+3, y0+3, w, h, color.RGBA{A: 90}, false)
		vector.FillRect(screen, x0, y0, w, h, fill, false)
		vector.StrokeRect(screen, x0, y0, w, h, 1.0, edge, false)
	}
}

func (g *Game) drawPickups(screen *ebiten.Image, pickups []game.PickupView) {
	for _, p := range pickups {
		if !g.cam.onScreen(p.X, p.Y, 12) {
			continue
		}
		sx, sy := g.cam.toScreen(p.X, p.Y)
		bob := float32(math.Sin(p.Age*4) * 2)
		vector.DrawFilledCircle(screen, sx, sy+bob, 6, p.Ammo.Color, true)
		vector.StrokeCircle(screen, sx, sy+bob, 9, 1.0, color.RGBA{R: 255, G: 255, B: 255, A: 120}, true)
	}
}

func (g *Game) drawEnemies(screen *ebiten.Image, enemies []game.EnemyView) {
	for _, e := range enemies {
		if !e.Visible || !g.cam.onScreen(e.X, e.Y, e.Radius+6) {
			continue
		}
		sx, sy := g.cam.toScreen(e.X, e.Y)
		r := float32(e.Radius)

		body := enemyColor
		for _, fx := range e.Effects {
			switch fx.Kind {
			case game.StatusBurning:
				body = blend(body, burningTint, 0.5)
			case game.StatusFrozen:
				body = blend(body, frozenTint, 0.6)
			}
		}
		vector.DrawFilledCircle(screen, sx, sy, r, body, true)

		if e.ShieldActive {
			pulse := float32(0.5+0.5*math.Sin(e.Pulse)) * 2
			vector.StrokeCircle(screen, sx, sy, r+4+pulse, 2.0, e.Shield.Color(), true)
		}

		// Health bar.
		bw := r * 2
		vector.FillRect(screen, sx-r, sy-r-8, bw, 3, color.RGBA{R: 60, G: 20, B: 20, A: 255}, false)
		vector.FillRect(screen, sx-r, sy-r-8, bw*float32(e.HealthFrac), 3, color.RGBA{R: 80, G: 220, B: 80, A: 255}, false)
	}
}

func (g *Game) drawProjectiles(screen *ebiten.Image, projectiles []game.ProjectileView) {
	for _, p := range projectiles {
		if !g.cam.onScreen(p.X, p.Y, p.Radius+10) {
			continue
		}
		sx, sy := g.cam.toScreen(p.X, p.Y)
		tail := float32(p.Radius * 2.5)
		tx := sx - float32(math.Cos(p.Angle))*tail
		ty := sy - float32(math.Sin(p.Angle))*tail
		trail := p.Color
		trail.A = 110
		vector.StrokeLine(screen, tx, ty, sx, sy, float32(p.Radius), trail, true)
		vector.DrawFilledCircle(screen, sx, sy, float32(p.Radius), p.Color, true)
		if p.Behavior == game.BehaviorGrenade {
			vector.StrokeCircle(screen, sx, sy, float32(p.Radius)+2, 1.0, color.RGBA{R: 255, G: 255, B: 255, A: 160}, true)
		}
	}
}

func (g *Game) drawImpacts(screen *ebiten.Image, impacts []game.ImpactView) {
	for _, ie := range impacts {
		c := ie.Color
		c.A = uint8(255 * (1 - ie.Progress))
		for _, p := range ie.Particles {
			sx, sy := g.cam.toScreen(p.X, p.Y)
			size := float32(p.Size * (1 - ie.Progress*0.5))
			vector.FillRect(screen, sx-size/2, sy-size/2, size, size, c, false)
		}
	}
}

func (g *Game) drawPlayer(screen *ebiten.Image, p game.PlayerView) {
	sx, sy := g.cam.toScreen(p.X, p.Y)
	r := float32(p.Radius)
	vector.DrawFilledCircle(screen, sx, sy, r, playerColor, true)

	bx := sx + float32(math.Cos(p.Aim))*(r+10)
	by := sy + float32(math.Sin(p.Aim))*(r+10)
	vector.StrokeLine(screen, sx, sy, bx, by, 4.0, color.RGBA{R: 210, G: 220, B: 235, A: 255}, true)
	if p.Flash > 0 {
		vector.DrawFilledCircle(screen, bx, by, 4+6*float32(p.Flash), color.RGBA{R: 255, G: 230, B: 120, A: uint8(255 * p.Flash)}, true)
	}
}

// drawFog darkens everything outside the visibility polygon. The polygon is
// cut out of a fog layer through a mask so overlapping fans never stack.
func (g *Game) drawFog(screen *ebiten.Image, polygon [][2]float64) {
	if len(polygon) < 3 {
		return
	}
	if g.fogBuf == nil {
		g.fogBuf = ebiten.NewImage(g.cam.w, g.cam.h)
		g.maskBuf = ebiten.NewImage(g.cam.w, g.cam.h)
	}
	g.fogBuf.Fill(fogColor)
	g.maskBuf.Clear()

	var path vector.Path
	x0, y0 := g.cam.toScreen(polygon[0][0], polygon[0][1])
	path.MoveTo(x0, y0)
	for _, pt := range polygon[1:] {
		x, y := g.cam.toScreen(pt[0], pt[1])
		path.LineTo(x, y)
	}
	path.Close()
	vector.FillPath(g.maskBuf, &path, &vector.FillOptions{}, &vector.DrawPathOptions{AntiAlias: true})

	g.fogBuf.DrawImage(g.maskBuf, &ebiten.DrawImageOptions{Blend: ebiten.BlendDestinationOut})
	screen.DrawImage(g.fogBuf, nil)
}

func blend(a, b color.RGBA, t float64) color.RGBA {
	mix := func(x, y uint8) uint8 { return uint8(float64(x)*(1-t) + float64(y)*t) }
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}
