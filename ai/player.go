package ai

import (
	"fmt"
	"math"

	"github.com/Shiru-Kage/BerserkSigilofRuin/combat"
	"github.com/Shiru-Kage/BerserkSigilofRuin/common"
	"github.com/Shiru-Kage/BerserkSigilofRuin/physics"
	"github.com/jakecoffman/cp"
	"go.uber.org/zap"
)

type PlayerConfig struct {
	Speed     float64
	JumpForce float64

	// Ground check: two downward rays at ±GroundRaySpread from
	// position + GroundCheckOffset. The origin must sit above the feet; rays
	// starting inside ground geometry report no hit.
	GroundCheckOffset cp.Vector
	GroundRaySpread   float64
	GroundRayLength   float64
	GroundLayers      physics.Layer

	// ResetOnComboFinished drops the combo once it reaches its maximum.
	ResetOnComboFinished bool
}

func DefaultPlayerConfig() PlayerConfig {
	return PlayerConfig{
		Speed:             6,
		JumpForce:         12,
		GroundCheckOffset: cp.Vector{X: 0, Y: -0.45},
		GroundRaySpread:   0.5,
		GroundRayLength:   0.15,
		GroundLayers:      physics.LayerGround,
	}
}

// Input is one tick of player commands.
type Input struct {
	MoveX  float64
	Jump   bool
	Attack bool
}

// PlayerController is the manual behavior source: it applies input to the
// body and routes attack presses through the combo sequencer.
type PlayerController struct {
	cfg    PlayerConfig
	query  physics.Query
	motion physics.Motion
	combo  *combat.AttackSequencer
	logger *zap.Logger

	moveInput cp.Vector
	facing    float64
	grounded  bool
	disabled  bool

	attack common.Signal[AttackEvent]
	unsubs []func()
}

func NewPlayerController(cfg PlayerConfig, query physics.Query, motion physics.Motion, combo *combat.AttackSequencer, logger *zap.Logger) (*PlayerController, error) {
	if query == nil || motion == nil || combo == nil {
		return nil, fmt.Errorf("ai: player controller: %w", ErrMissingCollaborator)
	}
	p := &PlayerController{
		cfg:    cfg,
		query:  query,
		motion: motion,
		combo:  combo,
		logger: loggerOrNop(logger),
		facing: 1,
	}
	p.unsubs = append(p.unsubs,
		combo.OnComboAttack(func(index int) {
			p.attack.Emit(AttackEvent{ComboIndex: index})
		}),
		combo.OnComboFinished(func() {
			if p.cfg.ResetOnComboFinished {
				p.combo.ForceReset()
			}
		}),
	)
	return p, nil
}

// Tick applies one tick of input.
func (p *PlayerController) Tick(in Input) {
	if p.disabled {
		return
	}
	p.grounded = p.checkGrounded()

	move := common.Clamp(in.MoveX, -1, 1)
	p.moveInput = cp.Vector{X: move}
	if move != 0 {
		p.facing = math.Copysign(1, move)
	}

	vel := p.motion.Velocity()
	vel.X = move * p.cfg.Speed
	if in.Jump && p.grounded {
		vel.Y = p.cfg.JumpForce
	}
	p.motion.SetVelocity(vel)

	if in.Attack {
		p.combo.HandleAttackRequest()
	}
}

func (p *PlayerController) checkGrounded() bool {
	origin := p.motion.Position().Add(p.cfg.GroundCheckOffset)
	for _, side := range []float64{-1, 1} {
		rayOrigin := origin.Add(cp.Vector{X: side * p.cfg.GroundRaySpread})
		if _, ok := p.query.Raycast(rayOrigin, down(1), p.cfg.GroundRayLength, p.cfg.GroundLayers); ok {
			return true
		}
	}
	return false
}

// Disable stops input handling and zeroes velocity. Used on death.
func (p *PlayerController) Disable() {
	if p.disabled {
		return
	}
	p.disabled = true
	p.moveInput = cp.Vector{}
	p.motion.SetVelocity(cp.Vector{})
	for _, unsub := range p.unsubs {
		unsub()
	}
	p.unsubs = nil
	p.logger.Debug("player controller disabled")
}

func (p *PlayerController) Disabled() bool {
	return p.disabled
}

func (p *PlayerController) MoveInput() cp.Vector {
	return p.moveInput
}

func (p *PlayerController) Velocity() cp.Vector {
	return p.motion.Velocity()
}

func (p *PlayerController) IsGrounded() bool {
	return p.grounded
}

func (p *PlayerController) ComboCount() int {
	return p.combo.Count()
}

func (p *PlayerController) Facing() float64 {
	return p.facing
}

func (p *PlayerController) SubscribeAttack(fn func(AttackEvent)) (unsubscribe func()) {
	return p.attack.Subscribe(fn)
}
