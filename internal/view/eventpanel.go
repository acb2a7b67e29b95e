package view

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Mags/internal/game"
)

const (
	panelWidth      = 300
	panelMaxEntries = 60
	panelLineHeight = 14
	panelHighlight  = 3
)

// EventPanel is a fixed-size ring buffer of recent world events drawn as a
// side panel. The world's EventLog is unbounded; the panel only keeps what
// fits on screen.
type EventPanel struct {
	entries []game.EventEntry
	head    int
	count   int
	cursor  int // how far into the EventLog the panel has read
}

func NewEventPanel() *EventPanel {
	return &EventPanel{entries: make([]game.EventEntry, panelMaxEntries)}
}

// Add appends an entry, overwriting the oldest once full.
func (p *EventPanel) Add(e game.EventEntry) {
	p.entries[p.head] = e
	p.head = (p.head + 1) % panelMaxEntries
	if p.count < panelMaxEntries {
		p.count++
	}
}

// Feed pulls every entry recorded since the previous call.
func (p *EventPanel) Feed(log *game.EventLog) {
	if log.Len() < p.cursor {
		// A fresh world replaced the old log.
		p.Reset()
	}
	for _, e := range log.Since(p.cursor) {
		p.Add(e)
	}
	p.cursor = log.Len()
}

func (p *EventPanel) Reset() {
	p.head, p.count, p.cursor = 0, 0, 0
}

// Recent returns entries oldest first.
func (p *EventPanel) Recent() []game.EventEntry {
	out := make([]game.EventEntry, p.count)
	for i := 0; i < p.count; i++ {
		idx := (p.head - p.count + i + panelMaxEntries) % panelMaxEntries
		out[i] = p.entries[idx]
	}
	return out
}

func categoryColor(category string) color.RGBA {
	switch category {
	case "combat":
		return color.RGBA{R: 220, G: 80, B: 70, A: 255}
	case "effect":
		return color.RGBA{R: 120, G: 180, B: 240, A: 255}
	case "ammo":
		return color.RGBA{R: 230, G: 200, B: 90, A: 255}
	default:
		return color.RGBA{R: 140, G: 150, B: 140, A: 255}
	}
}

func (p *EventPanel) Draw(screen *ebiten.Image, panelX, panelH int) {
	x := float32(panelX)
	vector.FillRect(screen, x, 0, panelWidth, float32(panelH), color.RGBA{R: 10, G: 12, B: 14, A: 230}, false)
	vector.StrokeLine(screen, x, 0, x, float32(panelH), 1.0, color.RGBA{R: 50, G: 60, B: 70, A: 255}, false)
	vector.FillRect(screen, x, 0, panelWidth, 16, color.RGBA{R: 20, G: 26, B: 32, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "EVENTS  (C: copy)", panelX+8, 0)

	entries := p.Recent()
	maxVisible := (panelH - 24) / panelLineHeight
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}

	y := 20
	for i, e := range entries {
		if i >= len(entries)-panelHighlight {
			vector.FillRect(screen, x+2, float32(y), panelWidth-4, panelLineHeight, color.RGBA{R: 30, G: 36, B: 44, A: 160}, false)
		}
		vector.FillRect(screen, x+5, float32(y+4), 3, 6, categoryColor(e.Category), false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%4d %-3s %s %s", e.Tick, e.Actor, e.Key, e.Value), panelX+12, y-1)
		y += panelLineHeight
	}
}
