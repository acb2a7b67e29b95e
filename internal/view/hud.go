package view

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/Mags/internal/game"
)

const (
	hudMargin    = 12
	magRowHeight = 22
	magSlotSize  = 14
	magLabelW    = 90
	barWidth     = 160
)

var (
	hudText     = color.RGBA{R: 220, G: 225, B: 230, A: 255}
	hudDim      = color.RGBA{R: 120, G: 125, B: 130, A: 255}
	hudPanel    = color.RGBA{R: 12, G: 14, B: 18, A: 200}
	reloadColor = color.RGBA{R: 230, G: 90, B: 60, A: 255}
	shuffleCol  = color.RGBA{R: 90, G: 170, B: 230, A: 255}
)

type hud struct {
	face text.Face
}

func newHUD() *hud {
	return &hud{face: text.NewGoXFace(basicfont.Face7x13)}
}

func (h *hud) print(screen *ebiten.Image, s string, x, y float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, h.face, op)
}

func (h *hud) draw(screen *ebiten.Image, s game.Snapshot, viewW, viewH int) {
	h.drawVitals(screen, s)
	h.drawMagazines(screen, s, viewH)
	h.drawHelp(screen, viewW, viewH)
	if s.GameOver {
		h.drawGameOver(screen, s, viewW, viewH)
	}
}

func (h *hud) drawVitals(screen *ebiten.Image, s game.Snapshot) {
	x, y := float32(hudMargin), float32(hudMargin)
	vector.FillRect(screen, x-4, y-4, barWidth+120, 58, hudPanel, false)

	h.print(screen, fmt.Sprintf("HP %3.0f", s.Player.Health), float64(x), float64(y), hudText)
	bar(screen, x+60, y+2, barWidth, 9, s.Player.HealthFrac, color.RGBA{R: 80, G: 210, B: 90, A: 255})

	h.print(screen, fmt.Sprintf("T  x%.2f", s.TimeScale), float64(x), float64(y+18), hudText)
	bar(screen, x+60, y+20, barWidth, 9, s.TimeScale, color.RGBA{R: 200, G: 200, B: 90, A: 255})

	h.print(screen, fmt.Sprintf("%.0fs  kills %d  shots %d", s.Elapsed, s.Stats.Kills, s.Stats.ShotsFired),
		float64(x), float64(y+36), hudDim)
}

// drawMagazines lists every magazine as a row of slots, bottom round on the
// left and the next shot on the right.
func (h *hud) drawMagazines(screen *ebiten.Image, s game.Snapshot, viewH int) {
	rows := len(s.Magazines)
	top := float32(viewH - hudMargin - rows*magRowHeight)
	maxCap := 0
	for _, m := range s.Magazines {
		maxCap = max(maxCap, m.Capacity)
	}
	panelW := float32(magLabelW + maxCap*(magSlotSize+3) + 12)
	vector.FillRect(screen, hudMargin-4, top-6, panelW, float32(rows*magRowHeight)+8, hudPanel, false)

	for i, m := range s.Magazines {
		y := top + float32(i*magRowHeight)
		label := fmt.Sprintf("%d %s", i+1, m.Name)
		c := hudDim
		if i == s.Selected {
			c = hudText
			vector.StrokeRect(screen, hudMargin-2, y-3, panelW-4, magRowHeight-2, 1.0, m.Color, false)
		}
		h.print(screen, label, hudMargin, float64(y), c)

		sx := float32(hudMargin + magLabelW)
		for slot := 0; slot < m.Capacity; slot++ {
			px := sx + float32(slot*(magSlotSize+3))
			if slot < len(m.Rounds) {
				r := m.Rounds[slot]
				vector.FillRect(screen, px, y, magSlotSize, magSlotSize, r.Color, false)
				if r.UsesRemaining > 0 {
					h.print(screen, fmt.Sprint(r.UsesRemaining), float64(px+4), float64(y+1), color.Black)
				}
			} else {
				vector.StrokeRect(screen, px, y, magSlotSize, magSlotSize, 1.0, hudDim, false)
			}
		}

		switch {
		case m.Reloading:
			bar(screen, sx, y+magSlotSize+1, float32(m.Capacity*(magSlotSize+3)-3), 2, m.ReloadProgress, reloadColor)
		case m.Rearranging:
			bar(screen, sx, y+magSlotSize+1, float32(m.Capacity*(magSlotSize+3)-3), 2, m.RearrangeProgress, shuffleCol)
		}
	}
}

func (h *hud) drawHelp(screen *ebiten.Image, viewW, viewH int) {
	const help = "WASD move  LMB fire  R rearrange  1-4/Q/E select  SPACE time"
	h.print(screen, help, float64(viewW-len(help)*7-hudMargin), float64(viewH-hudMargin-13), hudDim)
}

func (h *hud) drawGameOver(screen *ebiten.Image, s game.Snapshot, viewW, viewH int) {
	cx, cy := float32(viewW)/2, float32(viewH)/2
	vector.FillRect(screen, cx-150, cy-40, 300, 80, color.RGBA{R: 10, G: 10, B: 12, A: 230}, false)
	vector.StrokeRect(screen, cx-150, cy-40, 300, 80, 1.0, reloadColor, false)
	h.print(screen, "YOU DIED", float64(cx-28), float64(cy-28), reloadColor)
	h.print(screen, fmt.Sprintf("survived %.0fs  kills %d", s.Elapsed, s.Stats.Kills), float64(cx-90), float64(cy-6), hudText)
	h.print(screen, "ENTER to restart", float64(cx-56), float64(cy+14), hudDim)
}

func (h *hud) drawStatus(screen *ebiten.Image, msg string, viewW int) {
	x := float64(viewW/2 - len(msg)*7/2)
	h.print(screen, msg, x, hudMargin, hudText)
}

// bar draws a horizontal progress bar filled to frac in [0,1].
func bar(screen *ebiten.Image, x, y, w, h float32, frac float64, c color.RGBA) {
	frac = min(max(frac, 0), 1)
	vector.FillRect(screen, x, y, w, h, color.RGBA{R: 40, G: 42, B: 48, A: 255}, false)
	vector.FillRect(screen, x, y, w*float32(frac), h, c, false)
}
