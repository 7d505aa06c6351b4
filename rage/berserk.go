package rage

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/Shiru-Kage/BerserkSigilofRuin/ai"
	"github.com/Shiru-Kage/BerserkSigilofRuin/common"
	"github.com/Shiru-Kage/BerserkSigilofRuin/ecs"
	"github.com/Shiru-Kage/BerserkSigilofRuin/physics"
	"github.com/jakecoffman/cp"
	"go.uber.org/zap"
)

type BerserkConfig struct {
	Speed        float64
	JumpForce    float64
	JumpCooldown float64
	HalfHeight   float64

	// Swings land at random intervals in [1, AttackIntervalFactor] seconds,
	// each followed by AttackCooldown.
	AttackIntervalFactor float64
	AttackCooldown       float64
}

func DefaultBerserkConfig() BerserkConfig {
	return BerserkConfig{
		Speed:                6,
		JumpForce:            12,
		JumpCooldown:         0.2,
		HalfHeight:           0.5,
		AttackIntervalFactor: 1.5,
		AttackCooldown:       0.5,
	}
}

type BarrageConfig struct {
	Chance          float64
	Interval        float64
	EntryGate       float64
	DetectionRadius float64
	// StoppingDistance is the barrage chase's attack range.
	StoppingDistance float64
}

func DefaultBarrageConfig() BarrageConfig {
	return BarrageConfig{
		Chance:           0.35,
		Interval:         1,
		EntryGate:        0.3,
		DetectionRadius:  5,
		StoppingDistance: 0.5,
	}
}

// BerserkDeps are the collaborators of the autonomous source. Sensor and
// Trigger are optional: without them barrage is disabled and the source only
// rampages.
type BerserkDeps struct {
	Motion  physics.Motion
	Sensor  *ai.Sensor
	Targets ai.Targets
	Trigger Trigger
	Rand    *rand.Rand
	// State feeds the trigger policy.
	State  func() TriggerState
	Logger *zap.Logger
}

// barrage is the transient pursue-and-strike sub-mode.
type barrage struct {
	target     ecs.Entity
	entryTimer float64
}

// Berserk is the autonomous behavior source used while berserk: it rampages
// forward, swings at random intervals and periodically may barrage the
// nearest target.
type Berserk struct {
	cfg        BerserkConfig
	barrageCfg BarrageConfig
	deps       BerserkDeps
	logger     *zap.Logger

	chase *ai.Chase
	gate  ai.JumpGate

	dir        float64
	jumpTimer  float64
	swingTimer float64
	checkTimer float64
	barrage    *barrage

	moveInput cp.Vector
	grounded  bool

	attack common.Signal[ai.AttackEvent]
}

func NewBerserk(cfg BerserkConfig, barrageCfg BarrageConfig, deps BerserkDeps, facing float64) (*Berserk, error) {
	if deps.Motion == nil {
		return nil, fmt.Errorf("rage: berserk motion: %w", ai.ErrMissingCollaborator)
	}
	if deps.Rand == nil {
		deps.Rand = rand.New(rand.NewSource(1))
	}
	b := &Berserk{
		cfg:        cfg,
		barrageCfg: barrageCfg,
		deps:       deps,
		logger:     deps.Logger,
		chase:      ai.NewChase(barrageCfg.StoppingDistance),
		dir:        common.SignOrOne(facing),
		checkTimer: common.NonNegative(barrageCfg.Interval),
	}
	if b.logger == nil {
		b.logger = zap.NewNop()
	}
	b.gate.CanJump = func() bool { return b.jumpTimer <= 0 }
	b.gate.Jump = b.jump
	b.swingTimer = b.nextSwingInterval()
	b.chase.OnAttackRequested(b.barrageStrike)
	return b, nil
}

// BarrageEnabled reports whether the collaborators needed for barrage exist.
func (b *Berserk) BarrageEnabled() bool {
	return b.deps.Sensor != nil && b.deps.Targets != nil && b.deps.Trigger != nil
}

// InBarrage reports whether the barrage sub-mode is active.
func (b *Berserk) InBarrage() bool {
	return b.barrage != nil
}

// AwaitingEntry reports whether the barrage is still in its entry gate.
func (b *Berserk) AwaitingEntry() bool {
	return b.barrage != nil && b.barrage.entryTimer > 0
}

// BarrageTarget returns the barrage target, if any.
func (b *Berserk) BarrageTarget() (ecs.Entity, bool) {
	if b.barrage == nil {
		return 0, false
	}
	return b.barrage.target, true
}

// Tick advances the autonomous source by dt.
func (b *Berserk) Tick(dt float64) {
	dt = common.NonNegative(dt)
	b.jumpTimer = common.CountDown(b.jumpTimer, dt)

	pos := b.deps.Motion.Position()
	feet := pos.Add(cp.Vector{Y: -b.cfg.HalfHeight})
	b.grounded = b.deps.Sensor == nil || b.deps.Sensor.IsGrounded(feet)
	b.gate.Grounded = b.grounded

	if b.barrage != nil {
		b.moveInput = b.tickBarrage(dt, pos, feet)
	} else {
		b.checkBarrage(dt, pos)
		if b.barrage != nil {
			b.moveInput = cp.Vector{}
		} else {
			b.moveInput = b.rampage(feet)
			b.tickSwing(dt)
		}
	}

	vel := b.deps.Motion.Velocity()
	b.deps.Motion.SetVelocity(cp.Vector{X: b.moveInput.X * b.cfg.Speed, Y: vel.Y})
}

func (b *Berserk) tickBarrage(dt float64, pos, feet cp.Vector) cp.Vector {
	target := b.barrage.target
	targetPos, ok := b.deps.Targets.Position(target)
	if !ok {
		b.logger.Debug("barrage target lost", zap.Stringer("target", target))
		b.barrage = nil
		return cp.Vector{}
	}
	if b.barrage.entryTimer > 0 {
		b.barrage.entryTimer = common.CountDown(b.barrage.entryTimer, dt)
		return cp.Vector{}
	}
	if targetPos.X != pos.X {
		b.dir = math.Copysign(1, targetPos.X-pos.X)
	}
	var advisor ai.JumpAdvisor = noJump{}
	if b.deps.Sensor != nil {
		advisor = b.deps.Sensor
	}
	return b.chase.Update(target, targetPos, pos, feet, advisor, &b.gate)
}

// barrageStrike ends the barrage with a single attack.
func (b *Berserk) barrageStrike(target ecs.Entity) {
	if b.barrage == nil {
		return
	}
	b.barrage = nil
	b.logger.Debug("barrage strike", zap.Stringer("target", target))
	b.attack.Emit(ai.AttackEvent{Target: target})
}

func (b *Berserk) checkBarrage(dt float64, pos cp.Vector) {
	if !b.BarrageEnabled() {
		return
	}
	b.checkTimer = common.CountDown(b.checkTimer, dt)
	if b.checkTimer > 0 {
		return
	}
	b.checkTimer = common.NonNegative(b.barrageCfg.Interval)

	var state TriggerState
	if b.deps.State != nil {
		state = b.deps.State()
	}
	fire, err := b.deps.Trigger.ShouldBarrage(state)
	if err != nil {
		b.logger.Warn("barrage trigger failed", zap.Error(err))
		return
	}
	if !fire {
		return
	}
	target, ok := b.deps.Sensor.FindClosestTarget(pos, b.barrageCfg.DetectionRadius)
	if !ok {
		return
	}
	b.barrage = &barrage{target: target, entryTimer: common.NonNegative(b.barrageCfg.EntryGate)}
	b.gate.Reset()
	b.logger.Debug("barrage begin", zap.Stringer("target", target))
}

func (b *Berserk) rampage(feet cp.Vector) cp.Vector {
	if b.deps.Sensor == nil {
		return cp.Vector{X: b.dir}
	}
	forward := cp.Vector{X: b.dir}
	warranted := b.deps.Sensor.ShouldJump(forward, feet)
	if b.gate.Try(warranted) {
		return cp.Vector{}
	}
	// still blocked after the jump settled: turn around
	if warranted && b.gate.Jumped() && b.grounded && b.jumpTimer <= 0 {
		b.dir = -b.dir
		b.gate.Reset()
		return cp.Vector{}
	}
	return forward
}

func (b *Berserk) tickSwing(dt float64) {
	b.swingTimer -= dt
	if b.swingTimer > 0 {
		return
	}
	b.attack.Emit(ai.AttackEvent{})
	b.swingTimer = common.NonNegative(b.cfg.AttackCooldown) + b.nextSwingInterval()
}

func (b *Berserk) nextSwingInterval() float64 {
	hi := math.Max(1, b.cfg.AttackIntervalFactor)
	return 1 + b.deps.Rand.Float64()*(hi-1)
}

func (b *Berserk) jump() {
	vel := b.deps.Motion.Velocity()
	b.deps.Motion.SetVelocity(cp.Vector{X: vel.X, Y: b.cfg.JumpForce})
	b.jumpTimer = common.NonNegative(b.cfg.JumpCooldown)
}

// Stop zeroes intent and velocity.
func (b *Berserk) Stop() {
	b.moveInput = cp.Vector{}
	b.barrage = nil
	b.deps.Motion.SetVelocity(cp.Vector{})
}

func (b *Berserk) MoveInput() cp.Vector {
	return b.moveInput
}

func (b *Berserk) Velocity() cp.Vector {
	return b.deps.Motion.Velocity()
}

func (b *Berserk) IsGrounded() bool {
	return b.grounded
}

func (b *Berserk) ComboCount() int {
	return 0
}

func (b *Berserk) Facing() float64 {
	return b.dir
}

func (b *Berserk) SubscribeAttack(fn func(ai.AttackEvent)) (unsubscribe func()) {
	return b.attack.Subscribe(fn)
}

type noJump struct{}

func (noJump) ShouldJump(cp.Vector, cp.Vector) bool { return false }
