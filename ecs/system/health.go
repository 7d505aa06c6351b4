package system

import (
	"github.com/Shiru-Kage/BerserkSigilofRuin/common"
	"github.com/Shiru-Kage/BerserkSigilofRuin/ecs"
	"github.com/Shiru-Kage/BerserkSigilofRuin/ecs/component"
	"github.com/Shiru-Kage/BerserkSigilofRuin/physics"
	"github.com/jakecoffman/cp"
	"go.uber.org/zap"
)

// HealthSystem disables dead entities, then removes their body and destroys
// them once the death delay has passed. Destruction invalidates every handle
// other agents still hold.
type HealthSystem struct {
	space  *physics.Space
	dt     float64
	logger *zap.Logger
}

func NewHealthSystem(space *physics.Space, dt float64, logger *zap.Logger) *HealthSystem {
	return &HealthSystem{space: space, dt: dt, logger: loggerOrNop(logger)}
}

func (s *HealthSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.HealthComponent.Kind(), func(e ecs.Entity, h *component.Health) {
		if h.Health == nil {
			return
		}
		if !h.Dying {
			if !h.Health.Dead() {
				return
			}
			h.Dying = true
			h.DeathTimer = common.NonNegative(h.DeathDelay)
			s.disable(w, e)
			w.Events().Push(EventDied, e)
			s.logger.Info("entity died", zap.Stringer("entity", e))
			return
		}

		h.DeathTimer = common.CountDown(h.DeathTimer, s.dt)
		if h.DeathTimer > 0 {
			return
		}
		if s.space != nil {
			s.space.RemoveBody(e)
		}
		if anim, ok := ecs.Get(w, e, component.AnimationComponent.Kind()); ok {
			anim.Bind(nil)
		}
		ecs.DestroyEntity(w, e)
	})
}

func (s *HealthSystem) disable(w *ecs.World, e ecs.Entity) {
	if a, ok := ecs.Get(w, e, component.AIComponent.Kind()); ok && a.Controller != nil {
		a.Controller.Disable()
	}
	if p, ok := ecs.Get(w, e, component.PlayerComponent.Kind()); ok && p.Controller != nil {
		p.Controller.Disable()
	}
	if r, ok := ecs.Get(w, e, component.RageComponent.Kind()); ok && r.Controller != nil {
		r.Controller.Disable()
	}
	if c, ok := ecs.Get(w, e, component.CombatComponent.Kind()); ok {
		c.Requests = c.Requests[:0]
		if c.Attacker != nil {
			c.Attacker.Cancel()
		}
	}
	if b, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && b.Body != nil {
		b.Body.SetVelocity(cp.Vector{})
	}
}
