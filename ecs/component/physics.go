package component

import (
	"github.com/Shiru-Kage/BerserkSigilofRuin/ecs"
	"github.com/Shiru-Kage/BerserkSigilofRuin/physics"
)

// PhysicsBody links an entity to its body in the physics space.
type PhysicsBody struct {
	Body   *physics.Body
	Width  float64
	Height float64
	Layers physics.Layer
}

var PhysicsBodyComponent = ecs.NewComponent[PhysicsBody]()
