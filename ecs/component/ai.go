package component

import (
	"github.com/Shiru-Kage/BerserkSigilofRuin/ai"
	"github.com/Shiru-Kage/BerserkSigilofRuin/ecs"
)

// AI drives an enemy. A nil Controller means the agent spawned disabled.
type AI struct {
	Controller *ai.Controller
}

var AIComponent = ecs.NewComponent[AI]()
