package system

import (
	"github.com/Shiru-Kage/BerserkSigilofRuin/ecs"
	"github.com/Shiru-Kage/BerserkSigilofRuin/physics"
)

type PhysicsSystem struct {
	space *physics.Space
	dt    float64
}

func NewPhysicsSystem(space *physics.Space, dt float64) *PhysicsSystem {
	return &PhysicsSystem{space: space, dt: dt}
}

func (s *PhysicsSystem) Update(w *ecs.World) {
	if s.space == nil {
		return
	}
	s.space.Step(s.dt)
}
