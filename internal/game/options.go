package game

import (
	"errors"
	"fmt"
	"math/rand"
)

// optionKind controls the pass in which an option is applied.
type optionKind int

const (
	optInfra  optionKind = iota // config, seed, rng, log, loadout: applied first
	optEntity                   // player, obstacles, enemies: applied once systems exist
)

// Option configures a World during construction.
type Option struct {
	kind optionKind
	fn   func(*World) error
}

// WithConfig replaces the whole world configuration.
func WithConfig(cfg Config) Option {
	return Option{optInfra, func(w *World) error {
		w.cfg = cfg
		return nil
	}}
}

// WithSeed seeds the gameplay RNG and the cosmetic effects RNG.
func WithSeed(seed int64) Option {
	return Option{optInfra, func(w *World) error {
		w.seed = seed
		w.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- game only
		return nil
	}}
}

// WithRand injects the gameplay random source, for scripted tests.
func WithRand(rng Rand) Option {
	return Option{optInfra, func(w *World) error {
		if rng == nil {
			return errors.New("nil random source")
		}
		w.rng = rng
		return nil
	}}
}

// WithEventLog records into an existing log.
func WithEventLog(log *EventLog) Option {
	return Option{optInfra, func(w *World) error {
		w.log = log
		return nil
	}}
}

// WithVerbose enables per-tick verbose logging.
func WithVerbose(v bool) Option {
	return Option{optInfra, func(w *World) error {
		w.log = NewEventLog(v)
		return nil
	}}
}

// WithSpawning turns periodic enemy spawning on or off.
func WithSpawning(on bool) Option {
	return Option{optInfra, func(w *World) error {
		w.cfg.Spawning = on
		return nil
	}}
}

// WithDropTable replaces the default drop table.
func WithDropTable(t *DropTable) Option {
	return Option{optInfra, func(w *World) error {
		w.drops = t
		return nil
	}}
}

// WithMagazines replaces the default loadout.
func WithMagazines(mm *MagazineManager) Option {
	return Option{optInfra, func(w *World) error {
		if mm == nil || mm.Len() == 0 {
			return fmt.Errorf("loadout: %w", ErrInvalidCapacity)
		}
		w.mags = mm
		return nil
	}}
}

// WithPlayerAt moves the player's starting position.
func WithPlayerAt(x, y float64) Option {
	return Option{optEntity, func(w *World) error {
		w.player.x, w.player.y = x, y
		return nil
	}}
}

// WithObstacle adds a w×h obstacle centered at (x,y).
func WithObstacle(x, y, width, height float64) Option {
	return Option{optEntity, func(w *World) error {
		o, err := NewObstacle(x, y, width, height)
		if err != nil {
			return err
		}
		w.obstacles = append(w.obstacles, o)
		return nil
	}}
}

// WithEnemy adds an enemy at (x,y). ElementNone means no shield.
func WithEnemy(x, y float64, shield Element) Option {
	return Option{optEntity, func(w *World) error {
		var s *Shield
		if shield != ElementNone {
			s = NewShield(shield)
		}
		w.addEnemy(x, y, s)
		return nil
	}}
}

// NewWorld builds a world in two ordered passes:
//  1. Infrastructure (config, seed, rng, log, loadout)
//  2. Vision and combat systems, then entities
//
// The first vision pass runs before NewWorld returns so snapshots are
// meaningful at tick zero.
func NewWorld(opts ...Option) (*World, error) {
	w := &World{
		cfg:       DefaultConfig(),
		seed:      1,
		rng:       rand.New(rand.NewSource(1)), // #nosec G404 -- game only
		log:       NewEventLog(false),
		timeScale: 1,
	}
	var errs []error
	for _, o := range opts {
		if o.kind == optInfra {
			errs = append(errs, o.fn(w))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("new world: %w", err)
	}

	vs, err := NewVisionSystem(w.cfg.ViewDistance, w.cfg.RayCount)
	if err != nil {
		return nil, fmt.Errorf("new world: %w", err)
	}
	w.vision = vs
	if w.mags == nil {
		w.mags = DefaultMagazineManager()
	}
	w.combat = NewCombatManager(w.rng, w.drops, w.seed, w.log)
	w.player = NewPlayer(0, 0)

	for _, o := range opts {
		if o.kind == optEntity {
			errs = append(errs, o.fn(w))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("new world: %w", err)
	}

	w.vision.UpdateVision(w.player.x, w.player.y, w.obstacles)
	return w, nil
}
