package system

import (
	"github.com/Shiru-Kage/BerserkSigilofRuin/combat"
	"github.com/Shiru-Kage/BerserkSigilofRuin/common"
	"github.com/Shiru-Kage/BerserkSigilofRuin/ecs"
	"github.com/Shiru-Kage/BerserkSigilofRuin/ecs/component"
	"github.com/Shiru-Kage/BerserkSigilofRuin/physics"
	"go.uber.org/zap"
)

type facer interface {
	Facing() float64
}

// CombatSystem ticks combo sequencers, activity trackers and attackers, and
// resolves landed strikes into health.
type CombatSystem struct {
	query  physics.Query
	dt     float64
	logger *zap.Logger
}

func NewCombatSystem(query physics.Query, dt float64, logger *zap.Logger) *CombatSystem {
	return &CombatSystem{query: query, dt: dt, logger: loggerOrNop(logger)}
}

func (s *CombatSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.PlayerComponent.Kind(), func(e ecs.Entity, p *component.Player) {
		if p.Combo != nil {
			p.Combo.Tick(s.dt)
		}
	})

	ecs.ForEach(w, component.CombatComponent.Kind(), func(e ecs.Entity, c *component.Combat) {
		if c.Tracker != nil {
			c.Tracker.Tick(s.dt)
		}
		if c.Attacker == nil {
			c.Requests = c.Requests[:0]
			return
		}
		if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok && h.Health.Dead() {
			c.Requests = c.Requests[:0]
			c.Attacker.Cancel()
			return
		}

		// the attacker's own cooldown decides which requests start a swing
		for range c.Requests {
			c.Attacker.TryAttack()
		}
		c.Requests = c.Requests[:0]

		body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok || body.Body == nil {
			return
		}
		strike, landed := c.Attacker.Tick(s.dt, body.Body.Position(), s.facing(w, e), s.query)
		if landed {
			s.resolve(w, e, c, strike)
		}
	})
}

func (s *CombatSystem) facing(w *ecs.World, e ecs.Entity) float64 {
	if anim, ok := ecs.Get(w, e, component.AnimationComponent.Kind()); ok {
		if f, ok := anim.Source.(facer); ok {
			return f.Facing()
		}
		return common.SignOrOne(anim.Facing)
	}
	return 1
}

func (s *CombatSystem) resolve(w *ecs.World, attacker ecs.Entity, c *component.Combat, strike combat.Strike) {
	for _, target := range strike.Targets {
		if target == attacker || !ecs.IsAlive(w, target) {
			continue
		}
		h, ok := ecs.Get(w, target, component.HealthComponent.Kind())
		if !ok || h.Health == nil {
			s.logger.Debug("strike hit entity without health", zap.Stringer("target", target))
			continue
		}
		if h.Health.Dead() {
			continue
		}
		applied := h.Health.TakeDamage(strike.Damage)
		c.Hits++
		if c.Tracker != nil {
			c.Tracker.NotifyActivity()
		}
		if r, ok := ecs.Get(w, attacker, component.RageComponent.Kind()); ok && r.Controller != nil {
			r.Controller.AddFromHit()
		}
		w.Events().Push(EventHit, HitEvent{Attacker: attacker, Target: target, Damage: applied})
	}
}
