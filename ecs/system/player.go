package system

import (
	"github.com/Shiru-Kage/BerserkSigilofRuin/ai"
	"github.com/Shiru-Kage/BerserkSigilofRuin/ecs"
	"github.com/Shiru-Kage/BerserkSigilofRuin/ecs/component"
	"go.uber.org/zap"
)

// PlayerSystem feeds input to the manual player controller. While the rage
// controller is berserk the manual source is suspended.
type PlayerSystem struct {
	logger *zap.Logger
}

func NewPlayerSystem(logger *zap.Logger) *PlayerSystem {
	return &PlayerSystem{logger: loggerOrNop(logger)}
}

func (s *PlayerSystem) Update(w *ecs.World) {
	ecs.ForEach2(w, component.PlayerComponent.Kind(), component.InputComponent.Kind(), func(e ecs.Entity, p *component.Player, in *component.Input) {
		if p.Controller == nil || p.Controller.Disabled() {
			return
		}
		if r, ok := ecs.Get(w, e, component.RageComponent.Kind()); ok && r.Controller != nil && r.Controller.IsBerserk() {
			return
		}
		input := ai.Input{MoveX: in.MoveX, Jump: in.Jump, Attack: in.Attack}
		if !guard(s.logger, "player", e, func() { p.Controller.Tick(input) }) {
			p.Controller.Disable()
		}
	})
}
