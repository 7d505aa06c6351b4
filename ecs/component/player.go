package component

import (
	"github.com/Shiru-Kage/BerserkSigilofRuin/ai"
	"github.com/Shiru-Kage/BerserkSigilofRuin/combat"
	"github.com/Shiru-Kage/BerserkSigilofRuin/ecs"
)

type Player struct {
	Controller *ai.PlayerController
	Combo      *combat.AttackSequencer
}

var PlayerComponent = ecs.NewComponent[Player]()
