package combat

import "github.com/Shiru-Kage/BerserkSigilofRuin/common"

// ActivityTracker marks an agent in combat for Timeout seconds after the last
// hostile action.
type ActivityTracker struct {
	timeout  float64
	timer    float64
	inCombat bool

	entered common.Signal[struct{}]
	exited  common.Signal[struct{}]
}

func NewActivityTracker(timeout float64) *ActivityTracker {
	return &ActivityTracker{timeout: common.NonNegative(timeout)}
}

// NotifyActivity enters combat and refreshes the timeout.
func (t *ActivityTracker) NotifyActivity() {
	if t == nil {
		return
	}
	t.timer = t.timeout
	if !t.inCombat {
		t.inCombat = true
		t.entered.Emit(struct{}{})
	}
}

func (t *ActivityTracker) Tick(dt float64) {
	if t == nil || !t.inCombat {
		return
	}
	t.timer -= common.NonNegative(dt)
	if t.timer <= 0 {
		t.timer = 0
		t.inCombat = false
		t.exited.Emit(struct{}{})
	}
}

func (t *ActivityTracker) InCombat() bool {
	return t != nil && t.inCombat
}

func (t *ActivityTracker) OnEnter(fn func()) (unsubscribe func()) {
	return t.entered.Subscribe(func(struct{}) { fn() })
}

func (t *ActivityTracker) OnExit(fn func()) (unsubscribe func()) {
	return t.exited.Subscribe(func(struct{}) { fn() })
}
