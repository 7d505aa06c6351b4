// Package sim owns a running simulation: the ECS world, the physics space,
// the loaded level and the fixed system order. The demo game and the
// headless runner both drive it one tick at a time.
package sim

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/Shiru-Kage/BerserkSigilofRuin/config"
	"github.com/Shiru-Kage/BerserkSigilofRuin/ecs"
	"github.com/Shiru-Kage/BerserkSigilofRuin/ecs/component"
	"github.com/Shiru-Kage/BerserkSigilofRuin/ecs/entity"
	"github.com/Shiru-Kage/BerserkSigilofRuin/ecs/system"
	"github.com/Shiru-Kage/BerserkSigilofRuin/levels"
	"github.com/Shiru-Kage/BerserkSigilofRuin/physics"
	"github.com/Shiru-Kage/BerserkSigilofRuin/prefabs"
	"go.uber.org/zap"
)

type Options struct {
	Dt      float64
	Seed    int64
	Gravity float64
	Loader  prefabs.Loader
	Logger  *zap.Logger
	// Before runs ahead of the simulation systems every tick. The demo puts
	// its input system here.
	Before []ecs.System
}

// OptionsFromConfig maps the application config onto world options.
func OptionsFromConfig(cfg config.Config, logger *zap.Logger) Options {
	return Options{
		Dt:      cfg.Sim.Dt(),
		Seed:    cfg.Sim.Seed,
		Gravity: cfg.Sim.Gravity,
		Loader:  prefabs.Loader{Dir: cfg.Prefabs.Dir},
		Logger:  logger,
	}
}

// World owns level loading, spawning and the tick loop.
type World struct {
	Level  *levels.Level
	ECS    *ecs.World
	Space  *physics.Space
	Player ecs.Entity

	opts   Options
	logger *zap.Logger
	ticks  int
	stats  Stats
}

// NewWorld creates a world and loads the named level.
func NewWorld(levelName string, opts Options) (*World, error) {
	if opts.Dt <= 0 {
		opts.Dt = 1.0 / 60.0
	}
	w := &World{opts: opts, logger: opts.Logger}
	if w.logger == nil {
		w.logger = zap.NewNop()
	}
	if err := w.Load(levelName); err != nil {
		return nil, err
	}
	return w, nil
}

// Load replaces the running simulation with a fresh one for the named level.
// Prefabs are re-read, so a reload picks up edited files. The world is left
// untouched when loading fails.
func (w *World) Load(levelName string) error {
	if w == nil {
		return errors.New("world is nil")
	}
	lvl, err := loadLevel(levelName)
	if err != nil {
		return err
	}

	world := ecs.NewWorld()
	space := physics.NewSpace(w.opts.Gravity)
	env := w.env(world, space)

	player, err := w.spawnEntities(env, lvl)
	if err != nil {
		return err
	}

	for _, s := range w.opts.Before {
		world.AddSystem(s)
	}
	dt, logger := w.opts.Dt, w.logger
	world.AddSystem(system.NewPlayerSystem(logger))
	world.AddSystem(system.NewAISystem(dt, logger))
	world.AddSystem(system.NewRageSystem(dt, logger))
	world.AddSystem(system.NewCombatSystem(space, dt, logger))
	world.AddSystem(system.NewPhysicsSystem(space, dt))
	world.AddSystem(system.NewHealthSystem(space, dt, logger))
	world.AddSystem(system.NewAnimationSystem(dt))

	w.Level, w.ECS, w.Space, w.Player = lvl, world, space, player
	w.ticks = 0
	w.stats = Stats{}
	w.watchPlayer()
	w.logger.Info("level loaded", zap.String("level", lvl.Name), zap.Int("entities", len(lvl.Entities)))
	return nil
}

// Reload reloads the current level.
func (w *World) Reload() error {
	if w == nil || w.Level == nil {
		return errors.New("no level loaded")
	}
	return w.Load(w.Level.Name)
}

// env seeds a fresh source per load so a reload replays deterministically.
func (w *World) env(world *ecs.World, space *physics.Space) entity.Env {
	return entity.Env{
		World:  world,
		Space:  space,
		Loader: w.opts.Loader,
		Rand:   rand.New(rand.NewSource(w.opts.Seed)),
		Logger: w.logger,
	}
}

// Step advances the simulation one fixed tick.
func (w *World) Step() {
	w.ECS.Update()
	w.ticks++
	w.stats.Ticks = w.ticks
	w.collectCombat(w.ECS.Events().Drain())
}

func (w *World) Ticks() int {
	return w.ticks
}

func (w *World) Dt() float64 {
	return w.opts.Dt
}

// Stats returns the running totals.
func (w *World) Stats() Stats {
	return w.stats
}

// SetInput writes the player's input for the next tick.
func (w *World) SetInput(in component.Input) {
	if p, ok := ecs.Get(w.ECS, w.Player, component.InputComponent.Kind()); ok {
		*p = in
	}
}

// Enemies counts living enemy entities.
func (w *World) Enemies() int {
	n := 0
	ecs.ForEach(w.ECS, component.EnemyTagComponent.Kind(), func(ecs.Entity, *component.EnemyTag) { n++ })
	return n
}

// Done reports whether the encounter is over: the player is gone or no
// enemy is left.
func (w *World) Done() bool {
	return !ecs.IsAlive(w.ECS, w.Player) || w.Enemies() == 0
}

// Run steps until the encounter is over, maxTicks is reached (0 means no
// limit) or ctx is cancelled.
func (w *World) Run(ctx context.Context, maxTicks int) (Stats, error) {
	for !w.Done() {
		if maxTicks > 0 && w.ticks >= maxTicks {
			break
		}
		if err := ctx.Err(); err != nil {
			return w.stats, fmt.Errorf("sim: run interrupted at tick %d: %w", w.ticks, err)
		}
		w.Step()
	}
	return w.stats, nil
}
