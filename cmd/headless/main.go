// Command headless runs an encounter without a window and prints the combat
// totals. The player gets no input, so a run shows the enemy AI and, with
// -berserk, the autonomous barrage.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Shiru-Kage/BerserkSigilofRuin/config"
	"github.com/Shiru-Kage/BerserkSigilofRuin/ecs"
	"github.com/Shiru-Kage/BerserkSigilofRuin/ecs/component"
	"github.com/Shiru-Kage/BerserkSigilofRuin/observability"
	"github.com/Shiru-Kage/BerserkSigilofRuin/sim"
	"go.uber.org/zap"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "", "path to a YAML config file")
	levelName := flag.String("level", "", "level name (overrides level.name)")
	ticks := flag.Int("ticks", -1, "tick limit, 0 = until the encounter ends (overrides sim.max_ticks)")
	seed := flag.Int64("seed", 0, "random seed (overrides sim.seed)")
	berserk := flag.Bool("berserk", false, "start with full rage")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *levelName != "" {
		cfg.Level.Name = *levelName
	}
	if *ticks >= 0 {
		cfg.Sim.MaxTicks = *ticks
	}
	if *seed != 0 {
		cfg.Sim.Seed = *seed
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	world, err := sim.NewWorld(cfg.Level.Name, sim.OptionsFromConfig(cfg, logger))
	if err != nil {
		logger.Fatal("loading world", zap.Error(err))
	}
	if *berserk {
		if r, ok := ecs.Get(world.ECS, world.Player, component.RageComponent.Kind()); ok && r.Controller != nil {
			r.Controller.Force(r.Controller.Max())
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stats, err := world.Run(ctx, cfg.Sim.MaxTicks)
	if err != nil {
		logger.Warn("run stopped", zap.Error(err))
	}

	logger.Info("encounter finished",
		zap.String("level", cfg.Level.Name),
		zap.Int("ticks", stats.Ticks),
		zap.Float64("sim_seconds", float64(stats.Ticks)*world.Dt()),
		zap.Int("kills", stats.Kills),
		zap.Int("enemies_left", world.Enemies()),
		zap.Int("hits_dealt", stats.HitsDealt),
		zap.Int("hits_taken", stats.HitsTaken),
		zap.Float64("damage_dealt", stats.DamageDealt),
		zap.Float64("damage_taken", stats.DamageTaken),
		zap.Int("berserks", stats.Berserks),
		zap.Int("barrages", stats.Barrages),
		zap.Int("berserk_ticks", stats.BerserkTicks),
		zap.Bool("player_dead", stats.PlayerDead),
		zap.Duration("elapsed", time.Since(start)),
	)
	fmt.Fprintf(os.Stdout, "ticks=%d kills=%d berserks=%d barrages=%d player_dead=%v\n",
		stats.Ticks, stats.Kills, stats.Berserks, stats.Barrages, stats.PlayerDead)
}
