// Package rage implements the rage resource and the berserk meta-state that
// takes control away from the player while the resource drains.
package rage

import (
	"fmt"

	"github.com/Shiru-Kage/BerserkSigilofRuin/ai"
	"github.com/Shiru-Kage/BerserkSigilofRuin/combat"
	"github.com/Shiru-Kage/BerserkSigilofRuin/common"
	"go.uber.org/zap"
)

type Config struct {
	Max            float64
	PerHit         float64
	PerDamageTaken float64
	// DrainRate and HealthDrainRate are per second while berserk.
	DrainRate       float64
	HealthDrainRate float64

	Barrage BarrageConfig
	Berserk BerserkConfig
}

func DefaultConfig() Config {
	return Config{
		Max:             100,
		PerHit:          5,
		PerDamageTaken:  10,
		DrainRate:       25,
		HealthDrainRate: 5,
		Barrage:         DefaultBarrageConfig(),
		Berserk:         DefaultBerserkConfig(),
	}
}

type State int

const (
	StateNormal State = iota
	StateBerserk
)

func (s State) String() string {
	if s == StateBerserk {
		return "berserk"
	}
	return "normal"
}

// Manual is the player-driven source that berserk replaces.
type Manual interface {
	ai.AnimationData
	Facing() float64
}

type Deps struct {
	Tracker *combat.ActivityTracker
	Manual  Manual
	// Health drains while berserk. Optional.
	Health *combat.Health
	// Berserk collaborators; Motion is required to build the autonomous
	// source.
	Berserk BerserkDeps
	Logger  *zap.Logger
}

type Controller struct {
	cfg    Config
	deps   Deps
	logger *zap.Logger

	value    float64
	state    State
	berserk  *Berserk
	disabled bool
	active   ai.AnimationData

	entered common.Signal[struct{}]
	exited  common.Signal[struct{}]
	source  common.Signal[ai.AnimationData]
}

func NewController(cfg Config, deps Deps) (*Controller, error) {
	if deps.Tracker == nil {
		return nil, fmt.Errorf("rage: combat tracker: %w", ai.ErrMissingCollaborator)
	}
	if deps.Manual == nil {
		return nil, fmt.Errorf("rage: manual source: %w", ai.ErrMissingCollaborator)
	}
	if deps.Berserk.Motion == nil {
		return nil, fmt.Errorf("rage: berserk motion: %w", ai.ErrMissingCollaborator)
	}
	cfg.Max = common.NonNegative(cfg.Max)
	c := &Controller{
		cfg:    cfg,
		deps:   deps,
		logger: deps.Logger,
		active: deps.Manual,
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	if c.deps.Berserk.Logger == nil {
		c.deps.Berserk.Logger = c.logger
	}
	if c.deps.Berserk.State == nil {
		c.deps.Berserk.State = c.triggerState
	}
	return c, nil
}

func (c *Controller) Value() float64 {
	return c.value
}

func (c *Controller) Max() float64 {
	return c.cfg.Max
}

func (c *Controller) State() State {
	return c.state
}

func (c *Controller) IsBerserk() bool {
	return c.state == StateBerserk
}

// Berserk returns the autonomous source. It is nil outside berserk.
func (c *Controller) Berserk() *Berserk {
	return c.berserk
}

// Active returns the source currently driving the agent.
func (c *Controller) Active() ai.AnimationData {
	return c.active
}

// Add accrues amount while normal and in combat, clamped to [0, Max].
func (c *Controller) Add(amount float64) {
	if c.disabled || c.state == StateBerserk || !c.deps.Tracker.InCombat() {
		return
	}
	c.set(c.value + amount)
}

// AddFromHit accrues the per-hit amount for damage dealt.
func (c *Controller) AddFromHit() {
	c.Add(c.cfg.PerHit)
}

// OnDamageTaken marks combat activity and accrues the per-damage amount.
func (c *Controller) OnDamageTaken() {
	c.deps.Tracker.NotifyActivity()
	c.Add(c.cfg.PerDamageTaken)
}

// Force sets the resource directly, bypassing accrual gating. Transitions
// still apply.
func (c *Controller) Force(v float64) {
	if c.disabled {
		return
	}
	c.set(v)
}

func (c *Controller) set(v float64) {
	c.value = common.Clamp(v, 0, c.cfg.Max)
	c.evaluate()
}

func (c *Controller) evaluate() {
	switch {
	case c.state == StateNormal && c.value >= c.cfg.Max && c.cfg.Max > 0:
		c.enter()
	case c.state == StateBerserk && c.value <= 0:
		c.exit()
	}
}

// Tick drains the resource and health while berserk and advances the
// autonomous source.
func (c *Controller) Tick(dt float64) {
	if c.disabled || c.state != StateBerserk {
		return
	}
	dt = common.NonNegative(dt)
	if c.deps.Health != nil {
		c.deps.Health.Drain(common.NonNegative(c.cfg.HealthDrainRate) * dt)
	}
	c.set(c.value - common.NonNegative(c.cfg.DrainRate)*dt)
	if c.berserk != nil {
		c.berserk.Tick(dt)
	}
}

func (c *Controller) enter() {
	b, err := NewBerserk(c.cfg.Berserk, c.cfg.Barrage, c.deps.Berserk, c.deps.Manual.Facing())
	if err != nil {
		c.logger.Error("berserk source", zap.Error(err))
		return
	}
	c.state = StateBerserk
	c.berserk = b
	c.logger.Info("entered berserk", zap.Float64("rage", c.value))
	c.swap(b)
	c.entered.Emit(struct{}{})
}

func (c *Controller) exit() {
	c.state = StateNormal
	c.value = 0
	if c.berserk != nil {
		c.berserk.Stop()
		c.berserk = nil
	}
	c.logger.Info("exited berserk")
	c.swap(c.deps.Manual)
	c.exited.Emit(struct{}{})
}

// Disable halts the berserk source in place and freezes the resource. No
// transition signals fire. Used on death.
func (c *Controller) Disable() {
	if c.disabled {
		return
	}
	c.disabled = true
	if c.berserk != nil {
		c.berserk.Stop()
	}
}

// Fail disables the controller after a fault and hands control back to the
// manual source. SourceChanged fires if the berserk source was active, so
// subscribers can move their bindings. Entered and exited do not fire.
func (c *Controller) Fail() {
	if c.disabled {
		return
	}
	c.disabled = true
	if c.berserk != nil {
		c.berserk.Stop()
		c.berserk = nil
	}
	c.state = StateNormal
	c.value = 0
	c.logger.Warn("rage controller failed, manual control restored")
	if c.active != ai.AnimationData(c.deps.Manual) {
		c.swap(c.deps.Manual)
	}
}

func (c *Controller) Disabled() bool {
	return c.disabled
}

func (c *Controller) swap(src ai.AnimationData) {
	c.active = src
	c.source.Emit(src)
}

func (c *Controller) triggerState() TriggerState {
	s := TriggerState{Rage: c.value, RageMax: c.cfg.Max}
	if c.deps.Health != nil {
		s.Health = c.deps.Health.Current()
		s.HealthMax = c.deps.Health.Max()
	}
	return s
}

func (c *Controller) OnEnteredBerserk(fn func()) (unsubscribe func()) {
	return c.entered.Subscribe(func(struct{}) { fn() })
}

func (c *Controller) OnExitedBerserk(fn func()) (unsubscribe func()) {
	return c.exited.Subscribe(func(struct{}) { fn() })
}

// OnSourceChanged fires with the new active source on every berserk
// transition.
func (c *Controller) OnSourceChanged(fn func(ai.AnimationData)) (unsubscribe func()) {
	return c.source.Subscribe(fn)
}
