// Package system holds the per-tick systems. Each runs at a fixed dt and
// isolates agents from each other: a panicking agent is logged and disabled
// while the rest keep ticking.
package system

import (
	"github.com/Shiru-Kage/BerserkSigilofRuin/ecs"
	"go.uber.org/zap"
)

// Event types pushed onto the world's event queue.
const (
	EventHit  ecs.EventType = "hit"
	EventDied ecs.EventType = "died"
)

// HitEvent is the payload of an EventHit. EventDied carries the ecs.Entity.
type HitEvent struct {
	Attacker ecs.Entity
	Target   ecs.Entity
	Damage   float64
}

func loggerOrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}

// guard runs fn and reports whether it completed without panicking.
func guard(logger *zap.Logger, system string, e ecs.Entity, fn func()) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("agent tick failed, disabling",
				zap.String("system", system),
				zap.Stringer("entity", e),
				zap.Any("panic", r),
			)
			ok = false
		}
	}()
	fn()
	return true
}
