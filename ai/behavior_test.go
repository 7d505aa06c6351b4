package ai

import (
	"testing"

	"github.com/Shiru-Kage/BerserkSigilofRuin/ecs"
	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scannerFunc func(direction, feet cp.Vector) bool

func (f scannerFunc) IsObstacleInFront(direction, feet cp.Vector) bool { return f(direction, feet) }
func (f scannerFunc) ShouldJump(direction, feet cp.Vector) bool { return f(direction, feet) }

func always(v bool) scannerFunc {
	return func(cp.Vector, cp.Vector) bool { return v }
}

func TestStuckDetector(t *testing.T) {
	right := cp.Vector{X: 1}

	t.Run("clear_never_jumps", func(t *testing.T) {
		s := NewStuckDetector(DefaultStuckConfig())
		for i := 0; i < 20; i++ {
			assert.False(t, s.Update(0.1, cp.Vector{}, true, right, cp.Vector{}, always(false), nil, nil))
		}
		assert.False(t, s.Stalled())
	})

	t.Run("stalled_jumps_once_per_threshold", func(t *testing.T) {
		s := NewStuckDetector(DefaultStuckConfig())
		jumps := 0
		jump := func() { jumps++ }
		var jumpedAt []int
		for i := 1; i <= 12; i++ {
			if s.Update(0.1, cp.Vector{}, true, right, cp.Vector{}, always(true), nil, jump) {
				jumpedAt = append(jumpedAt, i)
			}
		}
		assert.Equal(t, []int{6, 12}, jumpedAt)
		assert.Equal(t, 2, jumps)
	})

	t.Run("cooldown_blocks_jump", func(t *testing.T) {
		s := NewStuckDetector(DefaultStuckConfig())
		for i := 0; i < 10; i++ {
			assert.False(t, s.Update(0.1, cp.Vector{}, true, right, cp.Vector{}, always(true), func() bool { return false }, nil))
		}
		assert.Greater(t, s.Timer(), 0.5)
	})

	t.Run("moving_resets_timer", func(t *testing.T) {
		s := NewStuckDetector(DefaultStuckConfig())
		for i := 0; i < 20; i++ {
			pos := cp.Vector{X: float64(i) * 0.1}
			assert.False(t, s.Update(0.1, pos, true, right, cp.Vector{}, always(true), nil, nil))
		}
		assert.Equal(t, 0.0, s.Timer())
	})

	t.Run("airborne_does_not_accumulate", func(t *testing.T) {
		s := NewStuckDetector(DefaultStuckConfig())
		for i := 0; i < 10; i++ {
			assert.False(t, s.Update(0.1, cp.Vector{}, false, right, cp.Vector{}, always(true), nil, nil))
		}
		assert.Equal(t, 0.0, s.Timer())
	})
}

func TestJumpGate(t *testing.T) {
	jumps := 0
	allowed := true
	g := &JumpGate{Grounded: true, CanJump: func() bool { return allowed }, Jump: func() { jumps++ }}

	assert.True(t, g.Try(true))
	assert.False(t, g.Try(true), "already jumped for this obstacle")
	g.Grounded = false
	assert.False(t, g.Try(false))
	assert.True(t, g.Jumped(), "airborne ticks keep the flag")
	g.Grounded = true
	assert.False(t, g.Try(false))
	assert.False(t, g.Jumped(), "cleared once grounded past the obstacle")

	allowed = false
	assert.False(t, g.Try(true), "cooldown")
	assert.Equal(t, 1, jumps)
}

func TestPatrolWaypoints(t *testing.T) {
	cases := []struct {
		name string
		dir  cp.Vector
		want cp.Vector
	}{
		{"zero_direction_is_right", cp.Vector{}, cp.Vector{X: 4, Y: 1}},
		{"normalized", cp.Vector{X: -5}, cp.Vector{X: -2, Y: 1}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := NewPatrol(cp.Vector{X: 1, Y: 1}, PatrolConfig{Direction: c.dir, Distance: 3}, nil)
			a, b := p.Waypoints()
			assert.Equal(t, cp.Vector{X: 1, Y: 1}, a)
			assert.InDelta(t, c.want.X, b.X, 1e-9)
			assert.InDelta(t, c.want.Y, b.Y, 1e-9)
		})
	}
}

func TestPatrolJumpConsumesTick(t *testing.T) {
	p := NewPatrol(cp.Vector{}, DefaultPatrolConfig(), nil)
	body := newFakeBody(cp.Vector{X: 0, Y: 0.5}, 0)
	jumps := 0
	gate := &JumpGate{Grounded: true, Jump: func() { jumps++ }}

	intent := p.Update(1.0/60, body, cp.Vector{}, always(true), gate)
	assert.Equal(t, cp.Vector{}, intent)
	assert.Equal(t, 1, jumps)

	intent = p.Update(1.0/60, body, cp.Vector{}, always(true), gate)
	assert.Equal(t, cp.Vector{X: 1}, intent, "keeps walking after the jump was taken")
	assert.Equal(t, cp.Vector{X: 1}, p.DetectionDirection())
}

func TestChaseStopsAtStoppingDistance(t *testing.T) {
	c := NewChase(0.5)
	var requested []ecs.Entity
	c.OnAttackRequested(func(e ecs.Entity) { requested = append(requested, e) })
	gate := &JumpGate{Grounded: true}
	target := ecs.Entity(9)

	intent := c.Update(target, cp.Vector{X: 0.5}, cp.Vector{}, cp.Vector{Y: -0.5}, always(true), gate)
	assert.Equal(t, cp.Vector{}, intent)
	assert.Equal(t, []ecs.Entity{target}, requested)
	assert.False(t, gate.Jumped(), "no jump while holding position")

	intent = c.Update(target, cp.Vector{X: -3, Y: 4}, cp.Vector{}, cp.Vector{Y: -0.5}, always(false), gate)
	assert.InDelta(t, -0.6, intent.X, 1e-9)
	assert.InDelta(t, 0.8, intent.Y, 1e-9)
	assert.Len(t, requested, 1)
}

func TestChaseJumpGating(t *testing.T) {
	c := NewChase(0.5)
	jumps := 0
	gate := &JumpGate{Grounded: true, Jump: func() { jumps++ }}
	target := ecs.Entity(1)

	intent := c.Update(target, cp.Vector{X: 3}, cp.Vector{}, cp.Vector{}, always(true), gate)
	assert.Equal(t, cp.Vector{}, intent, "jump zeroes the tick's intent")
	require.True(t, gate.Jumped())

	intent = c.Update(target, cp.Vector{X: 3}, cp.Vector{}, cp.Vector{}, always(true), gate)
	assert.Equal(t, cp.Vector{X: 1}, intent)
	assert.Equal(t, 1, jumps)

	c.Update(target, cp.Vector{X: 3}, cp.Vector{}, cp.Vector{}, always(false), gate)
	assert.False(t, gate.Jumped())
}
