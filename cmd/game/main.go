package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Mags/internal/game"
	"github.com/Garsondee/Mags/internal/view"
)

func main() {
	seed := flag.Int64("seed", 0, "world seed (0 = time based, new seed per restart)")
	verbose := flag.Bool("verbose", false, "record per-tick effect and obstacle events")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	newWorld := func() (*game.World, error) {
		s := *seed
		if s == 0 {
			s = time.Now().UnixNano()
		}
		slog.Info("starting run", "seed", s)
		return game.NewWorld(
			game.WithSeed(s),
			game.WithVerbose(*verbose),
			game.WithObstacle(220, -40, 80, 80),
			game.WithObstacle(-180, 160, 140, 40),
			game.WithObstacle(-260, -220, 60, 60),
			game.WithObstacle(340, 260, 40, 160),
			game.WithObstacle(0, -360, 200, 40),
		)
	}

	g, err := view.New(newWorld)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowTitle("Mags")
	ebiten.SetWindowSize(1280, 800)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
