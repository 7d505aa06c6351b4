package combat

import "github.com/Shiru-Kage/BerserkSigilofRuin/common"

type SequencerConfig struct {
	ResetTime float64
	MaxCombo  int
	// Variants is the number of distinct attack animations. Combo indices are
	// clamped to Variants-1.
	Variants int
}

func DefaultSequencerConfig() SequencerConfig {
	return SequencerConfig{ResetTime: 2, MaxCombo: 3, Variants: 3}
}

// AttackSequencer counts successive attack requests into a bounded combo.
// The count is zero exactly when the combo is inactive.
type AttackSequencer struct {
	cfg    SequencerConfig
	count  int
	active bool
	timer  float64

	attack   common.Signal[int]
	finished common.Signal[struct{}]
}

func NewAttackSequencer(cfg SequencerConfig) *AttackSequencer {
	if cfg.MaxCombo < 1 {
		cfg.MaxCombo = 1
	}
	if cfg.Variants < 1 {
		cfg.Variants = 1
	}
	cfg.ResetTime = common.NonNegative(cfg.ResetTime)
	return &AttackSequencer{cfg: cfg}
}

// HandleAttackRequest advances the combo and returns the attack index it
// emitted.
func (s *AttackSequencer) HandleAttackRequest() int {
	if s.timer <= 0 {
		s.reset()
	}
	if !s.active {
		s.active = true
		s.count = 1
	} else if s.count < s.cfg.MaxCombo {
		s.count++
	}
	s.timer = s.cfg.ResetTime

	index := s.count - 1
	if index > s.cfg.Variants-1 {
		index = s.cfg.Variants - 1
	}
	s.attack.Emit(index)
	if s.count == s.cfg.MaxCombo {
		s.finished.Emit(struct{}{})
	}
	return index
}

// Tick counts the reset window down and drops the combo when it elapses.
func (s *AttackSequencer) Tick(dt float64) {
	if !s.active {
		return
	}
	s.timer -= common.NonNegative(dt)
	if s.timer <= 0 {
		s.reset()
	}
}

// ForceReset returns to idle immediately.
func (s *AttackSequencer) ForceReset() {
	s.reset()
}

func (s *AttackSequencer) reset() {
	s.count = 0
	s.active = false
	s.timer = 0
}

func (s *AttackSequencer) Count() int {
	return s.count
}

func (s *AttackSequencer) Active() bool {
	return s.active
}

func (s *AttackSequencer) MaxCombo() int {
	return s.cfg.MaxCombo
}

// OnComboAttack subscribes to combo attacks. The payload is the attack index.
func (s *AttackSequencer) OnComboAttack(fn func(index int)) (unsubscribe func()) {
	return s.attack.Subscribe(fn)
}

// OnComboFinished subscribes to combos reaching MaxCombo.
func (s *AttackSequencer) OnComboFinished(fn func()) (unsubscribe func()) {
	return s.finished.Subscribe(func(struct{}) { fn() })
}
