package combat

import (
	"github.com/Shiru-Kage/BerserkSigilofRuin/common"
	"github.com/Shiru-Kage/BerserkSigilofRuin/ecs"
	"github.com/Shiru-Kage/BerserkSigilofRuin/physics"
	"github.com/jakecoffman/cp"
)

type AttackerConfig struct {
	Cooldown     float64
	WindUp       float64
	Damage       float64
	Radius       float64
	Offset       cp.Vector
	TargetLayers physics.Layer
}

func DefaultAttackerConfig() AttackerConfig {
	return AttackerConfig{
		Cooldown:     0.5,
		WindUp:       0.25,
		Damage:       1,
		Radius:       0.5,
		Offset:       cp.Vector{X: 0.5},
		TargetLayers: physics.LayerEnemy,
	}
}

// Strike is a landed attack: every entity inside the attack circle.
type Strike struct {
	Center  cp.Vector
	Damage  float64
	Targets []ecs.Entity
}

// Attacker turns attack requests into strikes after a wind-up, refusing new
// requests while cooling down.
type Attacker struct {
	cfg      AttackerConfig
	cooldown float64
	windUp   float64
	pending  bool
}

func NewAttacker(cfg AttackerConfig) *Attacker {
	cfg.Cooldown = common.NonNegative(cfg.Cooldown)
	cfg.WindUp = common.NonNegative(cfg.WindUp)
	cfg.Radius = common.NonNegative(cfg.Radius)
	return &Attacker{cfg: cfg}
}

func (a *Attacker) Config() AttackerConfig {
	return a.cfg
}

// CanAttack reports whether the cooldown has elapsed.
func (a *Attacker) CanAttack() bool {
	return a.cooldown <= 0
}

// TryAttack starts an attack unless cooling down.
func (a *Attacker) TryAttack() bool {
	if !a.CanAttack() {
		return false
	}
	a.cooldown = a.cfg.Cooldown
	a.windUp = a.cfg.WindUp
	a.pending = true
	return true
}

// Pending reports whether a started attack has not landed yet.
func (a *Attacker) Pending() bool {
	return a.pending
}

// Tick advances the timers. When the wind-up of a pending attack elapses the
// strike lands at origin + offset (mirrored by facing) and is returned.
func (a *Attacker) Tick(dt float64, origin cp.Vector, facing float64, query physics.Query) (Strike, bool) {
	dt = common.NonNegative(dt)
	a.cooldown = common.CountDown(a.cooldown, dt)
	if !a.pending {
		return Strike{}, false
	}
	a.windUp = common.CountDown(a.windUp, dt)
	if a.windUp > 0 {
		return Strike{}, false
	}
	a.pending = false

	center := origin.Add(cp.Vector{X: a.cfg.Offset.X * common.SignOrOne(facing), Y: a.cfg.Offset.Y})
	strike := Strike{Center: center, Damage: a.cfg.Damage}
	if query != nil {
		strike.Targets = query.OverlapAll(physics.Circle(center, a.cfg.Radius), a.cfg.TargetLayers)
	}
	return strike, true
}

// Cancel drops a pending attack.
func (a *Attacker) Cancel() {
	a.pending = false
	a.windUp = 0
}
