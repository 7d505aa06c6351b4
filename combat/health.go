package combat

import "github.com/Shiru-Kage/BerserkSigilofRuin/common"

// Damageable is anything that accepts pre-mitigation damage.
type Damageable interface {
	TakeDamage(amount float64) float64
}

// Health is a reusable health pool. The receiver applies its own flat
// defense; attackers pass raw damage.
type Health struct {
	max     float64
	current float64
	defense float64
	dead    bool

	damaged common.Signal[float64]
	died    common.Signal[struct{}]
}

// NewHealth creates a full health pool. A non-positive max becomes 1.
func NewHealth(max, defense float64) *Health {
	if max <= 0 {
		max = 1
	}
	return &Health{max: max, current: max, defense: common.NonNegative(defense)}
}

// IsAlive reports whether the pool is not depleted.
func (h *Health) IsAlive() bool {
	return h != nil && !h.dead && h.current > 0
}

func (h *Health) Dead() bool {
	return h != nil && h.dead
}

// TakeDamage mitigates amount by defense and applies it. Dead pools and
// non-positive amounts are ignored. A hit emits either damaged or died,
// never both. Returns the damage applied.
func (h *Health) TakeDamage(amount float64) float64 {
	if h == nil || h.dead || amount <= 0 {
		return 0
	}
	applied := amount - h.defense
	if applied <= 0 {
		return 0
	}
	h.current -= applied
	if h.current <= 0 {
		h.current = 0
		h.dead = true
		h.died.Emit(struct{}{})
		return applied
	}
	h.damaged.Emit(applied)
	return applied
}

// Drain removes health without counting as a hit: no mitigation and no
// damaged notification. Death is still reported.
func (h *Health) Drain(amount float64) {
	if h == nil || h.dead || amount <= 0 {
		return
	}
	h.current -= amount
	if h.current <= 0 {
		h.current = 0
		h.dead = true
		h.died.Emit(struct{}{})
	}
}

// Heal restores health up to max.
func (h *Health) Heal(amount float64) {
	if h == nil || h.dead || amount <= 0 {
		return
	}
	h.current = common.Clamp(h.current+amount, 0, h.max)
}

// RestoreFull refills a living pool.
func (h *Health) RestoreFull() {
	if h == nil || h.dead {
		return
	}
	h.current = h.max
}

func (h *Health) Current() float64 {
	if h == nil {
		return 0
	}
	return h.current
}

func (h *Health) Max() float64 {
	if h == nil {
		return 0
	}
	return h.max
}

func (h *Health) Defense() float64 {
	if h == nil {
		return 0
	}
	return h.defense
}

// OnDamaged subscribes to non-lethal hits. The payload is the damage applied.
// A lethal hit is reported only through OnDied, so subscribers that track
// activity or accrue resources from hits never see the killing blow.
func (h *Health) OnDamaged(fn func(amount float64)) (unsubscribe func()) {
	return h.damaged.Subscribe(fn)
}

// OnDied subscribes to death.
func (h *Health) OnDied(fn func()) (unsubscribe func()) {
	return h.died.Subscribe(func(struct{}) { fn() })
}
