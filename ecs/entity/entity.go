// Package entity spawns agents into the world: it decodes their prefabs,
// builds the behavior objects and binds them to entities.
package entity

import (
	"errors"
	"math/rand"

	"github.com/Shiru-Kage/BerserkSigilofRuin/ai"
	"github.com/Shiru-Kage/BerserkSigilofRuin/combat"
	"github.com/Shiru-Kage/BerserkSigilofRuin/ecs"
	"github.com/Shiru-Kage/BerserkSigilofRuin/ecs/component"
	"github.com/Shiru-Kage/BerserkSigilofRuin/physics"
	"github.com/Shiru-Kage/BerserkSigilofRuin/prefabs"
	"github.com/jakecoffman/cp"
	"go.uber.org/zap"
)

// attackHold is how long an attack clip shows after a notification.
const attackHold = 0.3

// Env is what every spawner needs.
type Env struct {
	World  *ecs.World
	Space  *physics.Space
	Loader prefabs.Loader
	// Rand seeds per-agent randomness. Nil uses a fixed seed.
	Rand   *rand.Rand
	Logger *zap.Logger
}

func (env Env) validate() error {
	if env.World == nil || env.Space == nil {
		return errors.New("spawn env needs a world and a space")
	}
	return nil
}

func (env Env) logger() *zap.Logger {
	if env.Logger == nil {
		return zap.NewNop()
	}
	return env.Logger
}

// rng derives a per-agent source so agents don't share one stream.
func (env Env) rng() *rand.Rand {
	if env.Rand == nil {
		return rand.New(rand.NewSource(1))
	}
	return rand.New(rand.NewSource(env.Rand.Int63()))
}

// newCombat builds an agent's combat state and logs its combat transitions.
func newCombat(attack combat.AttackerConfig, timeout float64, logger *zap.Logger) *component.Combat {
	tracker := combat.NewActivityTracker(timeout)
	tracker.OnEnter(func() { logger.Debug("combat entered") })
	tracker.OnExit(func() { logger.Debug("combat exited") })
	return &component.Combat{
		Attacker: combat.NewAttacker(attack),
		Tracker:  tracker,
	}
}

// Targets resolves handles to body positions. Destroyed entities and dying
// entities are no longer targets.
func (env Env) Targets() ai.Targets {
	w, space := env.World, env.Space
	return ai.TargetsFunc(func(e ecs.Entity) (cp.Vector, bool) {
		if !e.Valid() || !ecs.IsAlive(w, e) {
			return cp.Vector{}, false
		}
		if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok && h.Health != nil && h.Health.Dead() {
			return cp.Vector{}, false
		}
		b, ok := space.Body(e)
		if !ok {
			return cp.Vector{}, false
		}
		return b.Position(), true
	})
}
