package ai

import (
	"math"

	"github.com/Shiru-Kage/BerserkSigilofRuin/common"
	"github.com/Shiru-Kage/BerserkSigilofRuin/physics"
	"github.com/jakecoffman/cp"
	"go.uber.org/zap"
)

type PatrolConfig struct {
	// Direction from the spawn point to the second waypoint. Zero means
	// right.
	Direction        cp.Vector
	Distance         float64
	WaitTime         float64
	ArrivalThreshold float64
}

func DefaultPatrolConfig() PatrolConfig {
	return PatrolConfig{
		Direction:        cp.Vector{X: 1},
		Distance:         3,
		WaitTime:         0.5,
		ArrivalThreshold: 0.1,
	}
}

// JumpAdvisor reports whether the terrain ahead warrants a jump.
type JumpAdvisor interface {
	ShouldJump(direction, feet cp.Vector) bool
}

// Patrol walks an agent back and forth between two waypoints, pausing at
// each end.
type Patrol struct {
	cfg    PatrolConfig
	logger *zap.Logger

	pointA cp.Vector
	pointB cp.Vector
	target cp.Vector

	waiting   bool
	waitTimer float64

	current cp.Vector
	last    cp.Vector
}

// NewPatrol places waypoint A at start and B at Distance along Direction.
func NewPatrol(start cp.Vector, cfg PatrolConfig, logger *zap.Logger) *Patrol {
	dir := common.Normalize(cfg.Direction)
	if dir.LengthSq() == 0 {
		dir = cp.Vector{X: 1}
	}
	cfg.Distance = common.NonNegative(cfg.Distance)
	cfg.WaitTime = common.NonNegative(cfg.WaitTime)
	cfg.ArrivalThreshold = common.NonNegative(cfg.ArrivalThreshold)

	p := &Patrol{
		cfg:    cfg,
		logger: loggerOrNop(logger),
		pointA: start,
		pointB: start.Add(dir.Mult(cfg.Distance)),
	}
	p.target = p.pointB
	p.current = horizontal(p.target.Sub(p.pointA))
	if p.current.LengthSq() == 0 {
		p.current = cp.Vector{X: 1}
	}
	p.last = p.current
	return p
}

// Update advances the patrol one tick and returns the movement intent.
func (p *Patrol) Update(dt float64, body physics.Motion, feet cp.Vector, advisor JumpAdvisor, gate *JumpGate) cp.Vector {
	if p.waiting {
		p.waitTimer -= common.NonNegative(dt)
		if p.waitTimer <= 0 {
			p.waitTimer = 0
			p.waiting = false
			if p.target == p.pointA {
				p.target = p.pointB
			} else {
				p.target = p.pointA
			}
			p.current = horizontal(p.target.Sub(body.Position()))
			if p.current.LengthSq() != 0 {
				p.last = p.current
			}
			p.logger.Debug("patrol flipped",
				zap.Float64("target_x", p.target.X),
				zap.Float64("dir_x", p.current.X),
			)
		}
		return cp.Vector{}
	}

	direction := horizontal(p.target.Sub(feet))
	if direction.LengthSq() != 0 {
		p.last = direction
	}

	if gate.Try(advisor.ShouldJump(direction, feet)) {
		return cp.Vector{}
	}

	if math.Abs(p.target.X-feet.X) < p.cfg.ArrivalThreshold && gate.Grounded {
		pos := body.Position()
		body.SetPosition(cp.Vector{X: p.target.X, Y: pos.Y})
		p.waiting = true
		p.waitTimer = p.cfg.WaitTime
		return cp.Vector{}
	}

	return direction
}

// Waiting reports whether the agent is paused at a waypoint.
func (p *Patrol) Waiting() bool {
	return p.waiting
}

// Waypoints returns A and B.
func (p *Patrol) Waypoints() (cp.Vector, cp.Vector) {
	return p.pointA, p.pointB
}

// Target returns the waypoint currently walked toward.
func (p *Patrol) Target() cp.Vector {
	return p.target
}

// CurrentDirection is the direction chosen at the last flip.
func (p *Patrol) CurrentDirection() cp.Vector {
	return p.current
}

// DetectionDirection is the last non-zero movement direction.
func (p *Patrol) DetectionDirection() cp.Vector {
	return p.last
}

func horizontal(v cp.Vector) cp.Vector {
	return common.Normalize(cp.Vector{X: v.X})
}
