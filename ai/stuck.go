package ai

import (
	"github.com/Shiru-Kage/BerserkSigilofRuin/common"
	"github.com/jakecoffman/cp"
)

type StuckConfig struct {
	// Epsilon is the displacement below which the agent counts as stalled.
	Epsilon float64
	// Threshold is how long a stall lasts before the recovery jump.
	Threshold float64
}

func DefaultStuckConfig() StuckConfig {
	return StuckConfig{Epsilon: 0.05, Threshold: 0.5}
}

// ObstacleScanner reports obstacles ahead of feet in a direction.
type ObstacleScanner interface {
	IsObstacleInFront(direction, feet cp.Vector) bool
}

// StuckDetector forces a jump when an agent pushes against an obstacle
// without making progress.
type StuckDetector struct {
	cfg       StuckConfig
	reference cp.Vector
	timer     float64
	stalled   bool
}

func NewStuckDetector(cfg StuckConfig) *StuckDetector {
	return &StuckDetector{cfg: cfg}
}

// Update advances the detector one tick and reports whether it jumped.
func (s *StuckDetector) Update(dt float64, pos cp.Vector, grounded bool, forward, feet cp.Vector, scanner ObstacleScanner, canJump func() bool, jump func()) bool {
	if !scanner.IsObstacleInFront(forward, feet) {
		s.stalled = false
		s.timer = 0
		s.reference = pos
		return false
	}

	if pos.Distance(s.reference) >= s.cfg.Epsilon || !grounded {
		// moving against the obstacle, e.g. climbing
		s.stalled = false
		s.timer = 0
		s.reference = pos
		return false
	}

	s.stalled = true
	s.timer += common.NonNegative(dt)
	if s.timer > s.cfg.Threshold && (canJump == nil || canJump()) {
		if jump != nil {
			jump()
		}
		s.timer = 0
		return true
	}
	return false
}

// Stalled reports whether the last tick counted as stalled.
func (s *StuckDetector) Stalled() bool {
	return s.stalled
}

func (s *StuckDetector) Timer() float64 {
	return s.timer
}
