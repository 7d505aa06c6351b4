package entity

import (
	"errors"
	"fmt"

	"github.com/Shiru-Kage/BerserkSigilofRuin/ai"
	"github.com/Shiru-Kage/BerserkSigilofRuin/combat"
	"github.com/Shiru-Kage/BerserkSigilofRuin/ecs"
	"github.com/Shiru-Kage/BerserkSigilofRuin/ecs/component"
	"github.com/Shiru-Kage/BerserkSigilofRuin/physics"
	"github.com/Shiru-Kage/BerserkSigilofRuin/prefabs"
	"github.com/jakecoffman/cp"
	"go.uber.org/zap"
)

// NewEnemy spawns an autonomous agent at pos. The override carries the
// per-instance tuning a level attaches. A controller that cannot be built is
// logged and the enemy spawns disabled: it keeps its body and health but
// never acts.
func NewEnemy(env Env, spec *prefabs.EnemySpec, pos cp.Vector, override prefabs.SpawnOverride) (ecs.Entity, error) {
	if spec == nil {
		return 0, errors.New("enemy: nil spec")
	}
	if err := env.validate(); err != nil {
		return 0, fmt.Errorf("enemy: %w", err)
	}
	w := env.World

	attackCfg, err := spec.Attack.Config(physics.LayerPlayer)
	if err != nil {
		return 0, fmt.Errorf("enemy: %w", err)
	}
	bodyLayers, err := spec.Collider.BodyLayers(physics.LayerEnemy)
	if err != nil {
		return 0, fmt.Errorf("enemy: %w", err)
	}

	entity := ecs.CreateEntity(w)
	logger := env.logger().With(zap.String("agent", spec.Name), zap.Stringer("entity", entity))

	if err := ecs.Add(w, entity, component.EnemyTagComponent.Kind(), &component.EnemyTag{}); err != nil {
		return 0, fmt.Errorf("enemy: add enemy tag: %w", err)
	}

	width, height := spec.Collider.Size()
	body := env.Space.AddBody(entity, physics.BodyOptions{
		Position: pos,
		Width:    width,
		Height:   height,
		Mass:     spec.Collider.Mass,
		Layers:   bodyLayers,
	})
	if err := ecs.Add(w, entity, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Body:   body,
		Width:  width,
		Height: height,
		Layers: bodyLayers,
	}); err != nil {
		return 0, fmt.Errorf("enemy: add physics body: %w", err)
	}

	maxHP, defense, deathDelay := spec.Health.Values(3)
	setF(&maxHP, override.Health.Max)
	setF(&defense, override.Health.Defense)
	setF(&deathDelay, override.Health.DeathDelay)
	health := combat.NewHealth(maxHP, defense)
	if err := ecs.Add(w, entity, component.HealthComponent.Kind(), &component.Health{
		Health:     health,
		DeathDelay: deathDelay,
	}); err != nil {
		return 0, fmt.Errorf("enemy: add health: %w", err)
	}

	cmb := newCombat(attackCfg, spec.Combat.TimeoutOr(5), logger)
	if err := ecs.Add(w, entity, component.CombatComponent.Kind(), cmb); err != nil {
		return 0, fmt.Errorf("enemy: add combat: %w", err)
	}
	health.OnDamaged(func(float64) { cmb.Tracker.NotifyActivity() })

	controller, err := newEnemyController(env, spec, override, height/2, body, logger)
	if err != nil {
		logger.Error("enemy spawned disabled", zap.Error(err))
		controller = nil
	}
	if err := ecs.Add(w, entity, component.AIComponent.Kind(), &component.AI{Controller: controller}); err != nil {
		return 0, fmt.Errorf("enemy: add ai: %w", err)
	}

	anim := &component.Animation{AttackHold: attackHold}
	if controller != nil {
		anim.Bind(controller)
		controller.SubscribeAttack(cmb.Request)
	}
	if err := ecs.Add(w, entity, component.AnimationComponent.Kind(), anim); err != nil {
		return 0, fmt.Errorf("enemy: add animation: %w", err)
	}

	return entity, nil
}

func newEnemyController(env Env, spec *prefabs.EnemySpec, override prefabs.SpawnOverride, halfHeight float64, motion physics.Motion, logger *zap.Logger) (*ai.Controller, error) {
	cfg, err := spec.ControllerConfig(halfHeight)
	if err != nil {
		return nil, err
	}
	override.Patrol.Apply(&cfg.Patrol)
	return ai.NewController(cfg, ai.ControllerDeps{
		Query:   env.Space,
		Motion:  motion,
		Targets: env.Targets(),
		Logger:  logger,
	})
}

func setF(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}
