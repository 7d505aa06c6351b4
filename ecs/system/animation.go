package system

import (
	"strconv"

	"github.com/Shiru-Kage/BerserkSigilofRuin/ai"
	"github.com/Shiru-Kage/BerserkSigilofRuin/common"
	"github.com/Shiru-Kage/BerserkSigilofRuin/ecs"
	"github.com/Shiru-Kage/BerserkSigilofRuin/ecs/component"
)

// AnimationSystem reads each entity's active source once per tick and
// derives the clip to show.
type AnimationSystem struct {
	dt float64
}

func NewAnimationSystem(dt float64) *AnimationSystem {
	return &AnimationSystem{dt: dt}
}

func (a *AnimationSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.AnimationComponent.Kind(), func(e ecs.Entity, anim *component.Animation) {
		anim.AttackTimer = common.CountDown(anim.AttackTimer, a.dt)

		if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok && h.Health != nil && h.Health.Dead() {
			anim.Clip = component.ClipDead
			return
		}
		if anim.Source == nil {
			anim.Clip = component.ClipIdle
			return
		}
		if f, ok := anim.Source.(facer); ok {
			anim.Facing = f.Facing()
		}
		anim.Clip = Clip(anim.Source, anim.AttackIndex, anim.AttackTimer > 0)
	})
}

// Clip maps a source's animation data to a clip name. Attack clips are
// numbered from 1.
func Clip(src ai.AnimationData, attackIndex int, attacking bool) string {
	switch {
	case attacking:
		return component.ClipAttack + strconv.Itoa(attackIndex+1)
	case !src.IsGrounded() && src.Velocity().Y > 0:
		return component.ClipJump
	case !src.IsGrounded():
		return component.ClipFall
	case src.MoveInput().X != 0:
		return component.ClipRun
	default:
		return component.ClipIdle
	}
}
