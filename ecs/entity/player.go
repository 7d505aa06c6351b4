package entity

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/Shiru-Kage/BerserkSigilofRuin/ai"
	"github.com/Shiru-Kage/BerserkSigilofRuin/combat"
	"github.com/Shiru-Kage/BerserkSigilofRuin/ecs"
	"github.com/Shiru-Kage/BerserkSigilofRuin/ecs/component"
	"github.com/Shiru-Kage/BerserkSigilofRuin/physics"
	"github.com/Shiru-Kage/BerserkSigilofRuin/prefabs"
	"github.com/Shiru-Kage/BerserkSigilofRuin/rage"
	"github.com/jakecoffman/cp"
	"go.uber.org/zap"
)

// NewPlayer spawns the player at pos. A rage controller that cannot be built
// leaves the player without rage; everything else is fatal to the spawn.
func NewPlayer(env Env, spec *prefabs.PlayerSpec, pos cp.Vector) (ecs.Entity, error) {
	if spec == nil {
		return 0, errors.New("player: nil spec")
	}
	if err := env.validate(); err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}
	w := env.World
	logger := env.logger()

	pcfg, err := spec.PlayerConfig()
	if err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}
	attackCfg, err := spec.Attack.Config(physics.LayerEnemy)
	if err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}
	bodyLayers, err := spec.Collider.BodyLayers(physics.LayerPlayer)
	if err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}

	entity := ecs.CreateEntity(w)
	logger = logger.With(zap.String("agent", spec.Name), zap.Stringer("entity", entity))

	if err := ecs.Add(w, entity, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return 0, fmt.Errorf("player: add player tag: %w", err)
	}
	if err := ecs.Add(w, entity, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return 0, fmt.Errorf("player: add input: %w", err)
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
		return 0, fmt.Errorf("player: add physics body: %w", err)
	}

	maxHP, defense, deathDelay := spec.Health.Values(100)
	health := combat.NewHealth(maxHP, defense)
	if err := ecs.Add(w, entity, component.HealthComponent.Kind(), &component.Health{
		Health:     health,
		DeathDelay: deathDelay,
	}); err != nil {
		return 0, fmt.Errorf("player: add health: %w", err)
	}

	combo := combat.NewAttackSequencer(spec.SequencerConfig())
	controller, err := ai.NewPlayerController(pcfg, env.Space, body, combo, logger)
	if err != nil {
		return 0, fmt.Errorf("player: controller: %w", err)
	}
	if err := ecs.Add(w, entity, component.PlayerComponent.Kind(), &component.Player{
		Controller: controller,
		Combo:      combo,
	}); err != nil {
		return 0, fmt.Errorf("player: add player: %w", err)
	}

	cmb := newCombat(attackCfg, spec.Combat.TimeoutOr(5), logger)
	if err := ecs.Add(w, entity, component.CombatComponent.Kind(), cmb); err != nil {
		return 0, fmt.Errorf("player: add combat: %w", err)
	}

	anim := &component.Animation{AttackHold: attackHold}
	anim.Bind(controller)
	if err := ecs.Add(w, entity, component.AnimationComponent.Kind(), anim); err != nil {
		return 0, fmt.Errorf("player: add animation: %w", err)
	}

	unsubAttack := controller.SubscribeAttack(cmb.Request)

	rc, err := newRage(env, spec, height/2, cmb.Tracker, controller, health, body, logger)
	if err != nil {
		logger.Error("rage disabled", zap.Error(err))
	}
	if err := ecs.Add(w, entity, component.RageComponent.Kind(), &component.Rage{Controller: rc}); err != nil {
		return 0, fmt.Errorf("player: add rage: %w", err)
	}

	if rc == nil {
		health.OnDamaged(func(float64) { cmb.Tracker.NotifyActivity() })
		return entity, nil
	}
	health.OnDamaged(func(float64) { rc.OnDamageTaken() })
	rc.OnSourceChanged(func(src ai.AnimationData) {
		unsubAttack()
		unsubAttack = src.SubscribeAttack(cmb.Request)
		anim.Bind(src)
	})
	return entity, nil
}

func newRage(env Env, spec *prefabs.PlayerSpec, halfHeight float64, tracker *combat.ActivityTracker, manual rage.Manual, health *combat.Health, motion physics.Motion, logger *zap.Logger) (*rage.Controller, error) {
	cfg, sensorCfg, err := spec.RageConfig(halfHeight)
	if err != nil {
		return nil, err
	}
	rng := env.rng()
	deps := rage.BerserkDeps{
		Motion: motion,
		Rand:   rng,
		Logger: logger,
	}

	targets := env.Targets()
	sensor, err := ai.NewSensor(sensorCfg, env.Space, targets)
	if err != nil {
		logger.Warn("berserk sensor unavailable, barrage disabled", zap.Error(err))
	} else {
		deps.Sensor = sensor
		deps.Targets = targets
		if !spec.Rage.Barrage.Disabled {
			deps.Trigger = barrageTrigger(env, spec.Rage.Barrage.Script, cfg.Barrage.Chance, rng, logger)
		}
	}

	return rage.NewController(cfg, rage.Deps{
		Tracker: tracker,
		Manual:  manual,
		Health:  health,
		Berserk: deps,
		Logger:  logger,
	})
}

// barrageTrigger compiles the named script, falling back to the plain chance
// when it is missing or broken.
func barrageTrigger(env Env, script string, chance float64, rng *rand.Rand, logger *zap.Logger) rage.Trigger {
	if script == "" {
		return rage.NewChanceTrigger(chance, rng)
	}
	src, err := env.Loader.LoadScript(script)
	if err == nil {
		var t *rage.ScriptTrigger
		if t, err = rage.NewScriptTrigger(src, chance, rng); err == nil {
			return t
		}
	}
	logger.Warn("barrage script unusable, using chance", zap.String("script", script), zap.Error(err))
	return rage.NewChanceTrigger(chance, rng)
}
