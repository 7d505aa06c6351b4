package system

import (
	"github.com/Shiru-Kage/BerserkSigilofRuin/ecs"
	"github.com/Shiru-Kage/BerserkSigilofRuin/ecs/component"
	"go.uber.org/zap"
)

type AISystem struct {
	dt     float64
	logger *zap.Logger
}

func NewAISystem(dt float64, logger *zap.Logger) *AISystem {
	return &AISystem{dt: dt, logger: loggerOrNop(logger)}
}

func (s *AISystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.AIComponent.Kind(), func(e ecs.Entity, a *component.AI) {
		if a.Controller == nil || a.Controller.Disabled() {
			return
		}
		if !guard(s.logger, "ai", e, func() { a.Controller.Tick(s.dt) }) {
			a.Controller.Disable()
		}
	})
}
