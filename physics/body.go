package physics

import (
	"github.com/Shiru-Kage/BerserkSigilofRuin/ecs"
	"github.com/jakecoffman/cp"
)

// Body is the motion actuator for an agent's chipmunk body. Values are in
// world units.
type Body struct {
	entity     ecs.Entity
	body       *cp.Body
	shape      *cp.Shape
	halfHeight float64
}

func (b *Body) Entity() ecs.Entity {
	return b.entity
}

func (b *Body) Position() cp.Vector {
	return fromSpace(b.body.Position())
}

// SetPosition teleports the body. Queries see the new position after the
// next Step.
func (b *Body) SetPosition(p cp.Vector) {
	b.body.SetPosition(toSpace(p))
}

func (b *Body) Velocity() cp.Vector {
	return fromSpace(b.body.Velocity())
}

func (b *Body) SetVelocity(v cp.Vector) {
	b.body.SetVelocityVector(toSpace(v))
}

// HalfHeight is the distance from the body center to its feet.
func (b *Body) HalfHeight() float64 {
	return b.halfHeight
}

// BB returns the current bounds of the body shape.
func (b *Body) BB() cp.BB {
	return bbFromSpace(b.shape.BB())
}
