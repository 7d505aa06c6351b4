package ai

import (
	"github.com/Shiru-Kage/BerserkSigilofRuin/common"
	"github.com/Shiru-Kage/BerserkSigilofRuin/ecs"
	"github.com/jakecoffman/cp"
)

// Chase pursues a target until within stopping distance, then requests an
// attack every tick it stays in range. Whether the attack lands is decided by
// the attacker's own cooldown.
type Chase struct {
	stoppingDistance float64
	attack           common.Signal[ecs.Entity]
}

func NewChase(stoppingDistance float64) *Chase {
	return &Chase{stoppingDistance: common.NonNegative(stoppingDistance)}
}

func (c *Chase) StoppingDistance() float64 {
	return c.stoppingDistance
}

// OnAttackRequested subscribes to attack requests. The payload is the target.
func (c *Chase) OnAttackRequested(fn func(target ecs.Entity)) (unsubscribe func()) {
	return c.attack.Subscribe(fn)
}

// Update returns the movement intent toward targetPos.
func (c *Chase) Update(target ecs.Entity, targetPos, self, feet cp.Vector, advisor JumpAdvisor, gate *JumpGate) cp.Vector {
	toTarget := targetPos.Sub(self)
	if toTarget.Length() <= c.stoppingDistance {
		c.attack.Emit(target)
		return cp.Vector{}
	}

	direction := common.Normalize(toTarget)
	if gate.Try(advisor.ShouldJump(direction, feet)) {
		return cp.Vector{}
	}
	return direction
}
