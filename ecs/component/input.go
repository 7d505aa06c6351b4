package component

import "github.com/Shiru-Kage/BerserkSigilofRuin/ecs"

// Input stores per-tick input state for an entity.
type Input struct {
	MoveX  float64
	Jump   bool
	Attack bool
}

var InputComponent = ecs.NewComponent[Input]()
