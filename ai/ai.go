// Package ai holds the per-agent decision core: environment sensing, stuck
// recovery, patrol and chase behaviors, and the controllers that orchestrate
// them into movement intent each tick.
package ai

import (
	"errors"

	"github.com/Shiru-Kage/BerserkSigilofRuin/ecs"
	"github.com/jakecoffman/cp"
	"go.uber.org/zap"
)

// ErrMissingCollaborator is returned by constructors when a required
// collaborator is nil. Callers disable the agent instead of failing.
var ErrMissingCollaborator = errors.New("ai: missing collaborator")

// Targets resolves entity handles to positions. It reports false for handles
// whose entity no longer exists.
type Targets interface {
	Position(e ecs.Entity) (cp.Vector, bool)
}

// TargetsFunc adapts a function to Targets.
type TargetsFunc func(e ecs.Entity) (cp.Vector, bool)

func (f TargetsFunc) Position(e ecs.Entity) (cp.Vector, bool) {
	return f(e)
}

// AttackEvent is delivered to attack subscribers. ComboIndex is zero for
// agents without a combo.
type AttackEvent struct {
	ComboIndex int
	Target     ecs.Entity
}

// AnimationData is the read-only view an animation driver polls once per
// render tick.
type AnimationData interface {
	MoveInput() cp.Vector
	Velocity() cp.Vector
	IsGrounded() bool
	ComboCount() int
	SubscribeAttack(fn func(AttackEvent)) (unsubscribe func())
}

func loggerOrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}

func down(v float64) cp.Vector {
	return cp.Vector{X: 0, Y: -v}
}
