package system

import (
	"github.com/Shiru-Kage/BerserkSigilofRuin/ecs"
	"github.com/Shiru-Kage/BerserkSigilofRuin/ecs/component"
	"go.uber.org/zap"
)

// RageSystem drains berserk rage and ticks the autonomous source.
type RageSystem struct {
	dt     float64
	logger *zap.Logger
}

func NewRageSystem(dt float64, logger *zap.Logger) *RageSystem {
	return &RageSystem{dt: dt, logger: loggerOrNop(logger)}
}

func (s *RageSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.RageComponent.Kind(), func(e ecs.Entity, r *component.Rage) {
		if r.Controller == nil || r.Controller.Disabled() {
			return
		}
		if guard(s.logger, "rage", e, func() { r.Controller.Tick(s.dt) }) {
			return
		}
		// source-change subscribers rebind attack and animation to the player
		r.Controller.Fail()
		r.Controller = nil
	})
}
