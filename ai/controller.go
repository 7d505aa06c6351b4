package ai

import (
	"fmt"
	"math"

	"github.com/Shiru-Kage/BerserkSigilofRuin/common"
	"github.com/Shiru-Kage/BerserkSigilofRuin/ecs"
	"github.com/Shiru-Kage/BerserkSigilofRuin/physics"
	"github.com/jakecoffman/cp"
	"go.uber.org/zap"
)

type ControllerConfig struct {
	Patrol PatrolConfig
	Sensor SensorConfig
	Stuck  StuckConfig

	Speed        float64
	JumpForce    float64
	JumpCooldown float64

	StoppingDistance float64
	ChaseMemory      float64

	// HalfHeight is the distance from the body center down to the feet.
	HalfHeight float64
}

func DefaultControllerConfig() ControllerConfig {
	return ControllerConfig{
		Patrol:           DefaultPatrolConfig(),
		Sensor:           DefaultSensorConfig(),
		Stuck:            DefaultStuckConfig(),
		Speed:            2,
		JumpForce:        6,
		JumpCooldown:     0.2,
		StoppingDistance: 0.5,
		ChaseMemory:      2,
		HalfHeight:       0.5,
	}
}

// Mode is the behavior the controller dispatched on the last tick.
type Mode int

const (
	ModePatrol Mode = iota
	ModeChase
	ModeDisabled
)

func (m Mode) String() string {
	switch m {
	case ModePatrol:
		return "patrol"
	case ModeChase:
		return "chase"
	case ModeDisabled:
		return "disabled"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ControllerDeps are the collaborators a Controller needs.
type ControllerDeps struct {
	Query   physics.Query
	Motion  physics.Motion
	Targets Targets
	Logger  *zap.Logger
}

// Controller drives one autonomous agent: it picks patrol or chase from
// target detection, gates jumps, converts intent to velocity and runs stuck
// recovery.
type Controller struct {
	cfg    ControllerConfig
	motion physics.Motion
	// kept for target positions while chasing
	targets Targets
	logger  *zap.Logger

	sensor *Sensor
	patrol *Patrol
	chase  *Chase
	stuck  *StuckDetector
	gate   JumpGate

	jumpTimer  float64
	chasing    bool
	chaseTimer float64
	target     ecs.Entity

	moveInput cp.Vector
	facing    float64
	grounded  bool
	mode      Mode
	disabled  bool

	attack common.Signal[AttackEvent]
}

// NewController builds a controller with its patrol anchored at the body's
// current position.
func NewController(cfg ControllerConfig, deps ControllerDeps) (*Controller, error) {
	if deps.Motion == nil {
		return nil, fmt.Errorf("ai: controller motion: %w", ErrMissingCollaborator)
	}
	sensor, err := NewSensor(cfg.Sensor, deps.Query, deps.Targets)
	if err != nil {
		return nil, fmt.Errorf("ai: controller sensor: %w", err)
	}
	logger := loggerOrNop(deps.Logger)

	c := &Controller{
		cfg:     cfg,
		motion:  deps.Motion,
		targets: deps.Targets,
		logger:  logger,
		sensor:  sensor,
		chase:   NewChase(cfg.StoppingDistance),
		stuck:   NewStuckDetector(cfg.Stuck),
	}
	c.patrol = NewPatrol(deps.Motion.Position(), cfg.Patrol, logger)
	c.facing = common.SignOrOne(c.patrol.DetectionDirection().X)
	c.gate.CanJump = c.canJump
	c.gate.Jump = c.jump
	c.chase.OnAttackRequested(func(target ecs.Entity) {
		c.attack.Emit(AttackEvent{Target: target})
	})
	return c, nil
}

// Tick advances the controller by dt seconds.
func (c *Controller) Tick(dt float64) {
	if c.disabled {
		return
	}
	dt = common.NonNegative(dt)

	c.jumpTimer = common.CountDown(c.jumpTimer, dt)

	pos := c.motion.Position()
	feet := c.feet(pos)
	c.grounded = c.sensor.IsGrounded(feet)
	c.gate.Grounded = c.grounded

	targetPos, hasTarget := c.targetPosition()
	detectDir := c.patrol.DetectionDirection()
	if c.chasing && hasTarget {
		detectDir = common.Normalize(targetPos.Sub(pos))
	}

	if detected, ok := c.sensor.GetTarget(pos, detectDir, dt); ok {
		if !c.chasing {
			c.logger.Debug("chase begin", zap.Stringer("target", detected))
		}
		c.target = detected
		c.chasing = true
		c.chaseTimer = common.NonNegative(c.cfg.ChaseMemory)
	} else if c.chasing {
		c.chaseTimer = common.CountDown(c.chaseTimer, dt)
		if c.chaseTimer == 0 {
			c.endChase()
		}
	}

	targetPos, hasTarget = c.targetPosition()
	if c.chasing && !hasTarget {
		c.endChase()
	}

	if c.chasing {
		c.mode = ModeChase
		c.moveInput = c.chase.Update(c.target, targetPos, pos, feet, c.sensor, &c.gate)
	} else {
		c.mode = ModePatrol
		c.moveInput = c.patrol.Update(dt, c.motion, feet, c.sensor, &c.gate)
	}

	vel := c.motion.Velocity()
	c.motion.SetVelocity(cp.Vector{X: c.moveInput.X * c.cfg.Speed, Y: vel.Y})

	switch {
	case c.moveInput.X != 0:
		c.facing = math.Copysign(1, c.moveInput.X)
	case c.chasing && targetPos.X != pos.X:
		c.facing = math.Copysign(1, targetPos.X-pos.X)
	}

	forward := c.patrol.CurrentDirection()
	if c.chasing {
		forward = common.Normalize(targetPos.Sub(pos))
	}
	if c.stuck.Update(dt, pos, c.grounded, forward, feet, c.sensor, c.canJump, c.jump) {
		c.logger.Debug("stuck recovery jump", zap.Float64("x", pos.X), zap.Float64("y", pos.Y))
	}
}

func (c *Controller) targetPosition() (cp.Vector, bool) {
	if !c.target.Valid() {
		return cp.Vector{}, false
	}
	return c.targets.Position(c.target)
}

func (c *Controller) endChase() {
	c.logger.Debug("chase end", zap.Stringer("target", c.target))
	c.chasing = false
	c.chaseTimer = 0
	c.target = 0
}

func (c *Controller) feet(pos cp.Vector) cp.Vector {
	return pos.Add(down(c.cfg.HalfHeight))
}

func (c *Controller) canJump() bool {
	return c.jumpTimer <= 0
}

func (c *Controller) jump() {
	vel := c.motion.Velocity()
	c.motion.SetVelocity(cp.Vector{X: vel.X, Y: c.cfg.JumpForce})
	c.jumpTimer = common.NonNegative(c.cfg.JumpCooldown)
}

// Disable zeroes intent and velocity and stops all further dispatch.
func (c *Controller) Disable() {
	if c.disabled {
		return
	}
	c.disabled = true
	c.mode = ModeDisabled
	c.moveInput = cp.Vector{}
	c.motion.SetVelocity(cp.Vector{})
	c.chasing = false
	c.target = 0
	c.sensor.ForgetTarget()
}

func (c *Controller) Disabled() bool {
	return c.disabled
}

func (c *Controller) Mode() Mode {
	return c.mode
}

// Target returns the chased entity, if any.
func (c *Controller) Target() (ecs.Entity, bool) {
	return c.target, c.chasing && c.target.Valid()
}

func (c *Controller) Patrol() *Patrol {
	return c.patrol
}

func (c *Controller) Sensor() *Sensor {
	return c.sensor
}

func (c *Controller) JumpCooldown() float64 {
	return c.jumpTimer
}

func (c *Controller) MoveInput() cp.Vector {
	return c.moveInput
}

func (c *Controller) Velocity() cp.Vector {
	return c.motion.Velocity()
}

func (c *Controller) IsGrounded() bool {
	return c.grounded
}

func (c *Controller) ComboCount() int {
	return 0
}

// Facing is -1 or +1: the last horizontal intent, or toward the chased
// target while holding position.
func (c *Controller) Facing() float64 {
	return c.facing
}

func (c *Controller) SubscribeAttack(fn func(AttackEvent)) (unsubscribe func()) {
	return c.attack.Subscribe(fn)
}
