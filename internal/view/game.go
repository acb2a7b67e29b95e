// Package view is the ebiten front end: it polls keyboard and mouse into a
// game.Input, steps the World once per frame and draws its Snapshot.
package view

import (
	"fmt"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/Garsondee/Mags/internal/game"
)

const (
	defaultWidth  = 1280
	defaultHeight = 800
	statusSeconds = 2.5
)

// WorldFactory builds a fresh world for the first run and every restart.
type WorldFactory func() (*game.World, error)

// Game implements ebiten.Game around a single game.World.
type Game struct {
	newWorld WorldFactory
	world    *game.World

	cam   camera
	input *keyboardInput
	panel *EventPanel
	hud   *hud

	fogBuf  *ebiten.Image
	maskBuf *ebiten.Image

	width, height int

	status      string
	statusTimer float64
}

// New creates the windowed game and its first world.
func New(newWorld WorldFactory) (*Game, error) {
	w, err := newWorld()
	if err != nil {
		return nil, fmt.Errorf("view: %w", err)
	}
	g := &Game{
		newWorld: newWorld,
		world:    w,
		panel:    NewEventPanel(),
		hud:      newHUD(),
		width:    defaultWidth,
		height:   defaultHeight,
	}
	g.input = &keyboardInput{cam: &g.cam}
	g.cam.resize(g.viewportWidth(), g.height)
	g.cam.follow(w.Player().Position())
	return g, nil
}

// viewportWidth is the width left for the world once the event panel is drawn.
func (g *Game) viewportWidth() int {
	return max(g.width-panelWidth, 1)
}

func (g *Game) Update() error {
	dt := 1.0 / float64(ebiten.TPS())

	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.setStatus(copyLog(g.world.Log()))
	}
	if g.world.GameOver() && inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		if err := g.restart(); err != nil {
			return err
		}
	}

	g.world.Update(dt, g.input.Poll(g.world))
	g.cam.follow(g.world.Player().Position())
	g.panel.Feed(g.world.Log())

	if g.statusTimer > 0 {
		g.statusTimer -= dt
	}
	return nil
}

func (g *Game) restart() error {
	out := game.DetermineRunOutcome(g.world)
	slog.Info("run finished", "outcome", out.Outcome, "reason", out.Description,
		"ticks", out.Ticks, "kills", out.Kills)

	w, err := g.newWorld()
	if err != nil {
		return fmt.Errorf("restart: %w", err)
	}
	g.world = w
	g.panel.Reset()
	g.setStatus("new run")
	return nil
}

func (g *Game) setStatus(msg string) {
	g.status = msg
	g.statusTimer = statusSeconds
}

func (g *Game) Draw(screen *ebiten.Image) {
	snap := g.world.Snapshot()

	screen.Fill(backgroundColor)
	g.drawGrid(screen)
	g.drawObstacles(screen, snap.Obstacles)
	g.drawPickups(screen, snap.Pickups)
	g.drawEnemies(screen, snap.Enemies)
	g.drawProjectiles(screen, snap.Projectiles)
	g.drawImpacts(screen, snap.Impacts)
	g.drawPlayer(screen, snap.Player)
	g.drawFog(screen, snap.Polygon)

	g.hud.draw(screen, snap, g.viewportWidth(), g.height)
	if g.statusTimer > 0 {
		g.hud.drawStatus(screen, g.status, g.viewportWidth())
	}
	g.panel.Draw(screen, g.viewportWidth(), g.height)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.fogBuf, g.maskBuf = nil, nil
	}
	g.cam.resize(g.viewportWidth(), g.height)
	return g.width, g.height
}
