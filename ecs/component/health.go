package component

import (
	"github.com/Shiru-Kage/BerserkSigilofRuin/combat"
	"github.com/Shiru-Kage/BerserkSigilofRuin/ecs"
)

// Health wraps the damage receiver. Once dead the entity lingers for
// DeathDelay seconds before it is destroyed.
type Health struct {
	Health     *combat.Health
	DeathDelay float64

	Dying      bool
	DeathTimer float64
}

var HealthComponent = ecs.NewComponent[Health]()
