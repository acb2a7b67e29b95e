package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Garsondee/Mags/internal/game"
)

type runStats struct {
	runIndex int
	seed     int64
	runID    string

	outcome game.RunOutcomeReason

	firstSpawnTick  int
	firstKillTick   int
	firstPickupTick int
	deathTick       int

	spawns        int
	hits          int
	splashHits    int
	bombs         int
	shieldBreaks  int
	effectApplies int
	shatters      int
	drops         int
	dropsByName   map[string]int
	damageDealt   float64
}

type config struct {
	runs     int
	ticks    int
	seedBase int64
	seedStep int64
	dt       float64
	viewRays int
	parallel int
	orbit    float64
}

func main() {
	var cfg config
	flag.IntVar(&cfg.runs, "runs", 5, "number of headless simulation runs")
	flag.IntVar(&cfg.ticks, "ticks", 3600, "ticks per run")
	flag.Int64Var(&cfg.seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&cfg.seedStep, "seed-step", 1, "seed increment between runs")
	flag.Float64Var(&cfg.dt, "dt", 1.0/60, "fixed real-time step per tick in seconds")
	flag.IntVar(&cfg.viewRays, "view-rays", 500, "vision rays per sweep")
	flag.IntVar(&cfg.parallel, "parallel", 4, "runs simulated concurrently")
	flag.Float64Var(&cfg.orbit, "orbit", 120, "autopilot orbit radius")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := validate(cfg); err != nil {
		fmt.Println("error:", err)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	batchID := uuid.NewString()
	slog.Info("starting batch", "batch", batchID, "runs", cfg.runs, "ticks", cfg.ticks, "parallel", cfg.parallel)

	all, err := runBatch(ctx, cfg)
	if err != nil {
		slog.Error("batch failed", "batch", batchID, "err", err)
		os.Exit(1)
	}

	fmt.Printf("=== Headless Arena Report ===\n")
	fmt.Printf("batch=%s runs=%d ticks=%d seed_base=%d seed_step=%d dt=%.4f view_rays=%d\n\n",
		batchID, cfg.runs, cfg.ticks, cfg.seedBase, cfg.seedStep, cfg.dt, cfg.viewRays)
	for _, rs := range all {
		printRun(rs)
	}
	printAggregate(all)
	slog.Info("batch complete", "batch", batchID)
}

func validate(cfg config) error {
	switch {
	case cfg.runs <= 0:
		return fmt.Errorf("-runs must be > 0")
	case cfg.ticks <= 0:
		return fmt.Errorf("-ticks must be > 0")
	case cfg.dt <= 0:
		return fmt.Errorf("-dt must be > 0")
	case cfg.viewRays <= 0:
		return fmt.Errorf("-view-rays must be > 0")
	case cfg.parallel <= 0:
		return fmt.Errorf("-parallel must be > 0")
	}
	return nil
}

// runBatch simulates every seed, at most cfg.parallel at a time. Each world
// is single-threaded and owned by exactly one goroutine.
func runBatch(ctx context.Context, cfg config) ([]runStats, error) {
	all := make([]runStats, cfg.runs)
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(cfg.parallel)
	for i := 0; i < cfg.runs; i++ {
		seed := cfg.seedBase + int64(i)*cfg.seedStep
		eg.Go(func() error {
			rs, err := runArena(ctx, cfg, i+1, seed)
			if err != nil {
				return fmt.Errorf("run %d (seed=%d): %w", i+1, seed, err)
			}
			all[i] = rs
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return all, nil
}

// arenaLayout is the fixed crate layout every headless run fights in.
func arenaLayout() []game.Option {
	return []game.Option{
		game.WithObstacle(200, 0, 60, 60),
		game.WithObstacle(-200, 0, 60, 60),
		game.WithObstacle(0, 200, 60, 60),
		game.WithObstacle(0, -200, 60, 60),
		game.WithObstacle(260, 260, 120, 40),
		game.WithObstacle(-260, -260, 40, 120),
		game.WithObstacle(-300, 240, 60, 60),
		game.WithObstacle(320, -220, 60, 60),
	}
}

func runArena(ctx context.Context, cfg config, runIndex int, seed int64) (runStats, error) {
	wc := game.DefaultConfig()
	wc.RayCount = cfg.viewRays

	opts := append([]game.Option{game.WithConfig(wc), game.WithSeed(seed)}, arenaLayout()...)
	w, err := game.NewWorld(opts...)
	if err != nil {
		return runStats{}, err
	}

	pilot := game.NewAutopilot(cfg.orbit)
	for done := 0; done < cfg.ticks && !w.GameOver(); {
		if err := ctx.Err(); err != nil {
			return runStats{}, err
		}
		step := min(60, cfg.ticks-done)
		done += w.Run(pilot, step, cfg.dt)
		if w.GameOver() {
			break
		}
	}

	rs := summarize(w.Log())
	rs.runIndex = runIndex
	rs.seed = seed
	rs.runID = uuid.NewString()
	rs.outcome = game.DetermineRunOutcome(w)
	return rs, nil
}

// summarize folds an event log into per-run counters.
func summarize(log *game.EventLog) runStats {
	entries := log.Entries()
	rs := runStats{dropsByName: map[string]int{}}
	for _, e := range entries {
		switch e.Category {
		case "combat":
			switch e.Key {
			case "hit":
				rs.hits++
				rs.damageDealt += e.NumVal
			case "splash":
				rs.splashHits++
				rs.damageDealt += e.NumVal
			case "bomb":
				if e.Actor == "P" {
					rs.bombs++
				} else {
					rs.damageDealt += e.NumVal
				}
			case "shield_break":
				rs.shieldBreaks++
			}
		case "effect":
			switch e.Key {
			case "apply":
				rs.effectApplies++
			case "shatter":
				rs.shatters++
			}
		case "ammo":
			if e.Key == "drop" {
				rs.drops++
				name, _, _ := strings.Cut(e.Value, " x")
				rs.dropsByName[name]++
			}
		case "world":
			if e.Key == "spawn" {
				rs.spawns++
			}
		}
	}
	rs.firstSpawnTick = firstTick(entries, "world", "spawn", "")
	rs.firstKillTick = firstTick(entries, "combat", "kill", "")
	rs.firstPickupTick = firstTick(entries, "ammo", "pickup", "")
	rs.deathTick = firstTick(entries, "world", "player_dead", "")
	return rs
}

func firstTick(entries []game.EventEntry, category, key, contains string) int {
	for _, e := range entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			return e.Tick
		}
	}
	return -1
}

// accuracy is direct hits per shot fired.
func accuracy(rs runStats) float64 {
	if rs.outcome.Stats.ShotsFired == 0 {
		return 0
	}
	return float64(rs.hits) / float64(rs.outcome.Stats.ShotsFired)
}

// detectOverrun reports runs where enemies pile up faster than the player
// can clear them, even if the player is still alive.
func detectOverrun(rs runStats) (bool, string) {
	var reasons []string
	if rs.outcome.EnemiesAlive >= 8 {
		reasons = append(reasons, "crowded_arena")
	}
	if rs.spawns > 0 && float64(rs.outcome.Kills)/float64(rs.spawns) < 0.25 {
		reasons = append(reasons, "low_clear_rate")
	}
	if rs.outcome.Outcome == game.OutcomeDied && rs.outcome.EnemiesAlive > 0 {
		reasons = append(reasons, "player_swarmed")
	}
	if len(reasons) < 2 {
		return false, strings.Join(reasons, ",")
	}
	return true, strings.Join(reasons, ",")
}

func printRun(rs runStats) {
	o := rs.outcome
	fmt.Printf("--- Run %d (seed=%d id=%s) ---\n", rs.runIndex, rs.seed, rs.runID)
	fmt.Printf("outcome=%s reason=%s ticks=%d world_time=%.1fs player_hp=%.1f\n",
		o.Outcome, o.Description, o.Ticks, o.Elapsed, o.PlayerHealth)
	fmt.Printf("phase_markers: first_spawn=%d first_kill=%d first_pickup=%d death=%d\n",
		rs.firstSpawnTick, rs.firstKillTick, rs.firstPickupTick, rs.deathTick)
	fmt.Printf("combat: shots=%d hits=%d accuracy=%.2f splash=%d bombs=%d shield_breaks=%d damage=%.0f\n",
		o.Stats.ShotsFired, rs.hits, accuracy(rs), rs.splashHits, rs.bombs, rs.shieldBreaks, rs.damageDealt)
	fmt.Printf("enemies: spawned=%d killed=%d alive=%d effects=%d shatters=%d\n",
		rs.spawns, o.Kills, o.EnemiesAlive, rs.effectApplies, rs.shatters)
	fmt.Printf("ammo: drops=%d pickups=%d rearranges=%d obstacles_destroyed=%d\n",
		rs.drops, o.Stats.Pickups, o.Stats.Rearranges, o.Stats.ObstaclesDestroyed)
	if overrun, reason := detectOverrun(rs); overrun {
		fmt.Printf("overrun=true reason=%s\n", reason)
	}
	fmt.Println()
}

func printAggregate(all []runStats) {
	outcomes := map[string]int{}
	dropTotals := map[string]int{}
	killTicks := make([]int, 0, len(all))
	deathTicks := make([]int, 0, len(all))
	totalKills := 0
	totalShots := 0
	totalHits := 0
	totalPickups := 0
	overruns := 0

	for _, rs := range all {
		outcomes[rs.outcome.Outcome.String()]++
		for name, n := range rs.dropsByName {
			dropTotals[name] += n
		}
		if rs.firstKillTick >= 0 {
			killTicks = append(killTicks, rs.firstKillTick)
		}
		if rs.deathTick >= 0 {
			deathTicks = append(deathTicks, rs.deathTick)
		}
		totalKills += rs.outcome.Kills
		totalShots += rs.outcome.Stats.ShotsFired
		totalHits += rs.hits
		totalPickups += rs.outcome.Stats.Pickups
		if ok, _ := detectOverrun(rs); ok {
			overruns++
		}
	}

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d outcomes=[%s] overruns=%d\n", len(all), joinCounts(outcomes), overruns)
	fmt.Printf("avg_per_run: kills=%.1f shots=%.1f hits=%.1f pickups=%.1f\n",
		avg(totalKills, len(all)), avg(totalShots, len(all)), avg(totalHits, len(all)), avg(totalPickups, len(all)))
	fmt.Printf("phase_marker_avg_ticks: first_kill=%s death=%s\n", avgTickString(killTicks), avgTickString(deathTicks))
	fmt.Printf("drops_by_type: [%s]\n", joinCounts(dropTotals))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

// joinCounts renders a count map as "k=v" pairs in key order.
func joinCounts(counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, counts[k]))
	}
	return strings.Join(parts, " ")
}
