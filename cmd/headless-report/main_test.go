package main

import (
	"context"
	"strings"
	"testing"

	"github.com/Garsondee/Mags/internal/game"
)

func TestSummarize_CountsEvents(t *testing.T) {
	log := game.NewEventLog(false)
	log.Add(3, "E0", "world", "spawn", "(400,0)", 0)
	log.Add(9, "E0", "combat", "hit", "Weak 15.0", 15)
	log.Add(9, "E0", "combat", "shield_break", "red", 0)
	log.Add(12, "E0", "combat", "splash", "Grenade 30.0", 30)
	log.Add(12, "E0", "effect", "apply", "frozen 3.00s", 3)
	log.Add(14, "E0", "combat", "kill", "at (300,0)", 0)
	log.Add(14, "E0", "ammo", "drop", "Rifle x3", 3)
	log.Add(20, "P", "ammo", "pickup", "Rifle x3 -> Primary", 0)

	rs := summarize(log)
	if rs.spawns != 1 || rs.hits != 1 || rs.splashHits != 1 || rs.shieldBreaks != 1 {
		t.Fatalf("unexpected counts: %+v", rs)
	}
	if rs.damageDealt != 45 {
		t.Fatalf("expected 45 damage, got %.1f", rs.damageDealt)
	}
	if rs.dropsByName["Rifle"] != 1 {
		t.Fatalf("expected one Rifle drop, got %v", rs.dropsByName)
	}
	if rs.firstSpawnTick != 3 || rs.firstKillTick != 14 || rs.firstPickupTick != 20 || rs.deathTick != -1 {
		t.Fatalf("unexpected phase markers: spawn=%d kill=%d pickup=%d death=%d",
			rs.firstSpawnTick, rs.firstKillTick, rs.firstPickupTick, rs.deathTick)
	}
}

func TestDetectOverrun_TrueWhenCrowdedAndSlowToClear(t *testing.T) {
	rs := runStats{
		spawns:  20,
		outcome: game.RunOutcomeReason{Kills: 2, EnemiesAlive: 12, Outcome: game.OutcomeSurvived},
	}
	overrun, reason := detectOverrun(rs)
	if !overrun {
		t.Fatalf("expected overrun=true, got false (reason=%s)", reason)
	}
	if !strings.Contains(reason, "crowded_arena") || !strings.Contains(reason, "low_clear_rate") {
		t.Fatalf("expected both reasons, got: %s", reason)
	}
}

func TestDetectOverrun_FalseWhenClearingWell(t *testing.T) {
	rs := runStats{
		spawns:  20,
		outcome: game.RunOutcomeReason{Kills: 18, EnemiesAlive: 2, Outcome: game.OutcomeDominant},
	}
	if overrun, reason := detectOverrun(rs); overrun {
		t.Fatalf("expected overrun=false (reason=%s)", reason)
	}
}

func TestAccuracy_NoShots(t *testing.T) {
	if got := accuracy(runStats{hits: 3}); got != 0 {
		t.Fatalf("expected 0 accuracy without shots, got %.2f", got)
	}
}

func TestValidate_RejectsNonPositive(t *testing.T) {
	good := config{runs: 1, ticks: 1, dt: 0.016, viewRays: 10, parallel: 1}
	if err := validate(good); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
	bad := good
	bad.parallel = 0
	if err := validate(bad); err == nil {
		t.Fatal("expected error for -parallel 0")
	}
}

func TestRunBatch_DeterministicAcrossParallelism(t *testing.T) {
	cfg := config{runs: 3, ticks: 300, seedBase: 5, seedStep: 2, dt: 1.0 / 60, viewRays: 120, parallel: 1, orbit: 120}
	serial, err := runBatch(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	cfg.parallel = 3
	parallel, err := runBatch(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	for i := range serial {
		a, b := serial[i], parallel[i]
		if a.seed != b.seed || a.outcome.Stats != b.outcome.Stats || a.hits != b.hits || a.spawns != b.spawns {
			t.Fatalf("run %d differs between serial and parallel execution", i+1)
		}
	}
}

func TestRunBatch_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cfg := config{runs: 2, ticks: 100, dt: 1.0 / 60, viewRays: 10, parallel: 2, orbit: 50}
	if _, err := runBatch(ctx, cfg); err == nil {
		t.Fatal("expected cancellation error")
	}
}
