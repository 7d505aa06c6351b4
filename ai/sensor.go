package ai

import (
	"math"

	"github.com/Shiru-Kage/BerserkSigilofRuin/common"
	"github.com/Shiru-Kage/BerserkSigilofRuin/ecs"
	"github.com/Shiru-Kage/BerserkSigilofRuin/physics"
	"github.com/jakecoffman/cp"
)

const (
	minObstacleRays = 1
	maxObstacleRays = 10
)

type SensorConfig struct {
	GroundBoxSize cp.Vector
	GroundLayers  physics.Layer

	ObstacleRayLength  float64
	ObstacleRayOffset  cp.Vector
	ObstacleRayCount   int
	ObstacleRaySpacing float64
	ObstacleLayers     physics.Layer

	LedgeRayLength float64
	LedgeRayOffset cp.Vector
	// LedgeGroundFraction marks a ledge when the downward ray hits ground
	// farther than this fraction of its length. Values >= 1 only treat a
	// missing hit as a ledge.
	LedgeGroundFraction float64

	DetectionOffset   cp.Vector
	DetectionRange    float64
	LoseInterestDelay float64
	TargetLayers      physics.Layer
	// OccluderLayers block the detection ray. Zero means targets are seen
	// through walls.
	OccluderLayers physics.Layer
}

func DefaultSensorConfig() SensorConfig {
	return SensorConfig{
		GroundBoxSize:       cp.Vector{X: 0.4, Y: 0.05},
		GroundLayers:        physics.LayerGround,
		ObstacleRayLength:   1,
		ObstacleRayOffset:   cp.Vector{X: 0.3, Y: 0.5},
		ObstacleRayCount:    3,
		ObstacleRaySpacing:  0.25,
		ObstacleLayers:      physics.LayerObstacle,
		LedgeRayLength:      1,
		LedgeRayOffset:      cp.Vector{X: 0.3, Y: 0.1},
		LedgeGroundFraction: 0.9,
		DetectionOffset:     cp.Vector{X: 0.5, Y: 0.5},
		DetectionRange:      5,
		LoseInterestDelay:   2,
		TargetLayers:        physics.LayerPlayer,
	}
}

// Sensor answers environment questions for one agent. The ray queries are
// pure; only the detection memory carries state between ticks.
type Sensor struct {
	cfg     SensorConfig
	query   physics.Query
	targets Targets
	memory  DetectionMemory
}

func NewSensor(cfg SensorConfig, query physics.Query, targets Targets) (*Sensor, error) {
	if query == nil || targets == nil {
		return nil, ErrMissingCollaborator
	}
	cfg.ObstacleRayCount = common.ClampInt(cfg.ObstacleRayCount, minObstacleRays, maxObstacleRays)
	return &Sensor{cfg: cfg, query: query, targets: targets}, nil
}

func (s *Sensor) Config() SensorConfig {
	return s.cfg
}

// IsGrounded reports whether the ground box under feet overlaps ground.
func (s *Sensor) IsGrounded(feet cp.Vector) bool {
	return s.query.Overlap(physics.Box(feet, s.cfg.GroundBoxSize.X, s.cfg.GroundBoxSize.Y), s.cfg.GroundLayers)
}

// ShouldJump reports an obstacle ahead or a ledge ahead in the travel
// direction.
func (s *Sensor) ShouldJump(direction, feet cp.Vector) bool {
	if s.IsObstacleInFront(direction, feet) {
		return true
	}
	return s.ledgeAhead(direction, feet)
}

// IsObstacleInFront casts the forward rays, stopping at the first hit.
func (s *Sensor) IsObstacleInFront(direction, feet cp.Vector) bool {
	dirX := common.SignOrOne(direction.X)
	forward := cp.Vector{X: dirX}
	for i := 0; i < s.cfg.ObstacleRayCount; i++ {
		origin := feet.Add(cp.Vector{
			X: s.cfg.ObstacleRayOffset.X * dirX,
			Y: s.cfg.ObstacleRayOffset.Y + float64(i)*s.cfg.ObstacleRaySpacing,
		})
		if _, ok := s.query.Raycast(origin, forward, s.cfg.ObstacleRayLength, s.cfg.ObstacleLayers); ok {
			return true
		}
	}
	return false
}

func (s *Sensor) ledgeAhead(direction, feet cp.Vector) bool {
	dirX := common.SignOrOne(direction.X)
	origin := feet.Add(cp.Vector{X: s.cfg.LedgeRayOffset.X * dirX, Y: s.cfg.LedgeRayOffset.Y})
	hit, ok := s.query.Raycast(origin, down(1), s.cfg.LedgeRayLength, s.cfg.GroundLayers)
	if !ok {
		return true
	}
	if s.cfg.LedgeGroundFraction >= 1 {
		return false
	}
	return hit.Distance > s.cfg.LedgeRayLength*s.cfg.LedgeGroundFraction
}

// GetTarget casts the detection ray from self toward the remembered target,
// or along fallback when nothing is remembered. A hit refreshes the memory;
// a miss decays it by dt.
func (s *Sensor) GetTarget(self, fallback cp.Vector, dt float64) (ecs.Entity, bool) {
	origin := self.Add(s.cfg.DetectionOffset)

	direction := common.Normalize(fallback)
	if e, ok := s.memory.Target(); ok {
		if pos, alive := s.targets.Position(e); alive {
			direction = common.Normalize(pos.Sub(origin))
		} else {
			s.memory.Forget()
		}
	}

	if e, ok := s.cast(origin, direction); ok {
		s.memory.See(e, s.cfg.LoseInterestDelay)
	} else {
		s.memory.Decay(dt)
	}
	return s.memory.Target()
}

func (s *Sensor) cast(origin, direction cp.Vector) (ecs.Entity, bool) {
	if direction.LengthSq() == 0 {
		return 0, false
	}
	hit, ok := s.query.Raycast(origin, direction, s.cfg.DetectionRange, s.cfg.TargetLayers|s.cfg.OccluderLayers)
	if !ok || !hit.Entity.Valid() {
		return 0, false
	}
	if _, alive := s.targets.Position(hit.Entity); !alive {
		return 0, false
	}
	return hit.Entity, true
}

// ForgetTarget clears the detection memory.
func (s *Sensor) ForgetTarget() {
	s.memory.Forget()
}

// Memory returns a copy of the detection memory.
func (s *Sensor) Memory() DetectionMemory {
	return s.memory
}

// FindClosestTarget returns the live target-layer entity nearest to center
// within radius.
func (s *Sensor) FindClosestTarget(center cp.Vector, radius float64) (ecs.Entity, bool) {
	var best ecs.Entity
	bestDist := math.Inf(1)
	for _, e := range s.query.OverlapAll(physics.Circle(center, radius), s.cfg.TargetLayers) {
		pos, ok := s.targets.Position(e)
		if !ok {
			continue
		}
		if d := pos.Distance(center); d < bestDist {
			bestDist = d
			best = e
		}
	}
	return best, best.Valid()
}

// DetectionMemory is the last-seen target and its lose-interest countdown.
// The timer never goes negative and an expired memory holds no target.
type DetectionMemory struct {
	target ecs.Entity
	timer  float64
}

func (m *DetectionMemory) See(e ecs.Entity, delay float64) {
	m.target = e
	m.timer = common.NonNegative(delay)
}

func (m *DetectionMemory) Decay(dt float64) {
	if !m.target.Valid() {
		m.timer = 0
		return
	}
	m.timer = common.CountDown(m.timer, dt)
	if m.timer == 0 {
		m.target = 0
	}
}

func (m *DetectionMemory) Forget() {
	m.target = 0
	m.timer = 0
}

func (m DetectionMemory) Target() (ecs.Entity, bool) {
	return m.target, m.target.Valid()
}

func (m DetectionMemory) Timer() float64 {
	return m.timer
}
