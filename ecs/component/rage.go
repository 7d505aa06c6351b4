package component

import (
	"github.com/Shiru-Kage/BerserkSigilofRuin/ecs"
	"github.com/Shiru-Kage/BerserkSigilofRuin/rage"
)

type Rage struct {
	Controller *rage.Controller
}

var RageComponent = ecs.NewComponent[Rage]()
