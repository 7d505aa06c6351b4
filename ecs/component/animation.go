package component

import (
	"github.com/Shiru-Kage/BerserkSigilofRuin/ai"
	"github.com/Shiru-Kage/BerserkSigilofRuin/ecs"
)

const (
	ClipIdle   = "idle"
	ClipRun    = "run"
	ClipJump   = "jump"
	ClipFall   = "fall"
	ClipDead   = "dead"
	ClipAttack = "attack"
)

// Animation is the binding between an entity's active behavior source and
// the clip it should show.
type Animation struct {
	Source ai.AnimationData
	Clip   string
	Facing float64
	// AttackIndex is the combo index of the last attack notification.
	AttackIndex int
	AttackTimer float64
	// AttackHold is how long an attack clip is held after a notification.
	AttackHold float64

	Unsubscribe func()
}

var AnimationComponent = ecs.NewComponent[Animation]()

// Bind switches the animation to src and subscribes to its attack
// notifications.
func (a *Animation) Bind(src ai.AnimationData) {
	if a.Unsubscribe != nil {
		a.Unsubscribe()
		a.Unsubscribe = nil
	}
	a.Source = src
	if src == nil {
		return
	}
	a.Unsubscribe = src.SubscribeAttack(func(ev ai.AttackEvent) {
		a.AttackIndex = ev.ComboIndex
		a.AttackTimer = a.AttackHold
	})
}
