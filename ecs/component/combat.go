package component

import (
	"github.com/Shiru-Kage/BerserkSigilofRuin/ai"
	"github.com/Shiru-Kage/BerserkSigilofRuin/combat"
	"github.com/Shiru-Kage/BerserkSigilofRuin/ecs"
)

// Combat holds an entity's attacker and activity tracker. Requests collects
// the attack notifications raised since the last combat tick.
type Combat struct {
	Attacker *combat.Attacker
	Tracker  *combat.ActivityTracker
	Requests []ai.AttackEvent
	// Hits counts targets damaged over the entity's lifetime.
	Hits int
}

var CombatComponent = ecs.NewComponent[Combat]()

// Request queues an attack notification.
func (c *Combat) Request(ev ai.AttackEvent) {
	c.Requests = append(c.Requests, ev)
}
