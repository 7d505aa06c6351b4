package ai

import (
	"testing"

	"github.com/Shiru-Kage/BerserkSigilofRuin/ecs"
	"github.com/Shiru-Kage/BerserkSigilofRuin/physics"
	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tick = 1.0 / 60

type agentFixture struct {
	world *fakeWorld
	body  *fakeBody
	ctrl  *Controller
}

// newAgent spawns an enemy at (0,0) standing on flat ground with its feet at
// y=-0.5.
func newAgent(t *testing.T, mutate func(*ControllerConfig)) *agentFixture {
	t.Helper()
	w := newFakeWorld().flatGround(-50, 50, -0.5)
	body := newFakeBody(cp.Vector{}, physics.LayerEnemy)
	cfg := DefaultControllerConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	ctrl, err := NewController(cfg, ControllerDeps{Query: w, Motion: body, Targets: w})
	require.NoError(t, err)
	return &agentFixture{world: w, body: body, ctrl: ctrl}
}

func (f *agentFixture) step(n int) {
	for i := 0; i < n; i++ {
		f.ctrl.Tick(tick)
		f.body.step(tick)
	}
}

func TestControllerMissingCollaborators(t *testing.T) {
	w := newFakeWorld()
	cases := []struct {
		name string
		deps ControllerDeps
	}{
		{"no_motion", ControllerDeps{Query: w, Targets: w}},
		{"no_query", ControllerDeps{Motion: newFakeBody(cp.Vector{}, 0), Targets: w}},
		{"no_targets", ControllerDeps{Query: w, Motion: newFakeBody(cp.Vector{}, 0)}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := NewController(DefaultControllerConfig(), c.deps)
			assert.ErrorIs(t, err, ErrMissingCollaborator)
		})
	}
}

func TestControllerPatrolArrivesAndWaits(t *testing.T) {
	f := newAgent(t, nil)

	f.step(90)

	assert.InDelta(t, 3.0, f.body.pos.X, 1e-9, "snapped to waypoint B")
	assert.Equal(t, ModePatrol, f.ctrl.Mode())
	assert.True(t, f.ctrl.Patrol().Waiting())
	assert.Equal(t, cp.Vector{}, f.ctrl.MoveInput())
	assert.True(t, f.ctrl.IsGrounded())
}

func TestControllerPatrolWaitDuration(t *testing.T) {
	f := newAgent(t, nil)

	ticks := 0
	for !f.ctrl.Patrol().Waiting() {
		f.step(1)
		ticks++
		require.Less(t, ticks, 200, "never arrived")
	}
	arrived := ticks
	for f.ctrl.Patrol().Waiting() {
		f.step(1)
		ticks++
		require.Less(t, ticks, 400, "never left")
	}
	waited := float64(ticks-arrived) * tick
	assert.InDelta(t, 0.5, waited, tick+1e-9)

	f.step(1)
	assert.Less(t, f.ctrl.MoveInput().X, 0.0, "walking back toward A")
	assert.Equal(t, cp.Vector{}, f.ctrl.Patrol().Target())
}

func TestControllerChasesAndAttacks(t *testing.T) {
	f := newAgent(t, nil)
	player := ecs.Entity(42)
	target := f.world.add(player, newFakeBody(cp.Vector{X: 3}, physics.LayerPlayer))
	target.half.Y = 1

	var attacks []AttackEvent
	f.ctrl.SubscribeAttack(func(e AttackEvent) { attacks = append(attacks, e) })

	f.step(1)
	require.Equal(t, ModeChase, f.ctrl.Mode())
	got, ok := f.ctrl.Target()
	require.True(t, ok)
	assert.Equal(t, player, got)
	assert.Greater(t, f.ctrl.MoveInput().X, 0.0)
	assert.InDelta(t, 2.0, f.body.vel.X, 1e-9)

	target.pos = cp.Vector{X: f.body.pos.X + 0.4}
	f.step(1)
	assert.Equal(t, cp.Vector{}, f.ctrl.MoveInput(), "holds position in range")
	require.Len(t, attacks, 1)
	assert.Equal(t, player, attacks[0].Target)
	assert.Equal(t, 1.0, f.ctrl.Facing())

	delete(f.world.entities, player)
	f.step(1)
	assert.Equal(t, ModePatrol, f.ctrl.Mode(), "destroyed target ends the chase")
	_, ok = f.ctrl.Target()
	assert.False(t, ok)
}

func TestControllerChaseMemory(t *testing.T) {
	f := newAgent(t, nil)
	player := ecs.Entity(7)
	target := f.world.add(player, newFakeBody(cp.Vector{X: 3}, physics.LayerPlayer))
	target.half.Y = 1

	f.ctrl.Tick(0.1)
	require.Equal(t, ModeChase, f.ctrl.Mode())

	// Out of detection range but still alive. The sensor remembers the
	// target for LoseInterestDelay, then the controller keeps chasing for
	// ChaseMemory: 2 s + 2 s with the defaults.
	target.pos = cp.Vector{X: 40}
	for i := 0; i < 25; i++ {
		f.ctrl.Tick(0.1)
	}
	assert.Equal(t, ModeChase, f.ctrl.Mode(), "sensor memory expired, chase memory running")

	for i := 0; i < 13; i++ {
		f.ctrl.Tick(0.1)
	}
	assert.Equal(t, ModeChase, f.ctrl.Mode(), "3.8 s after losing sight")

	for i := 0; i < 5; i++ {
		f.ctrl.Tick(0.1)
	}
	assert.Equal(t, ModePatrol, f.ctrl.Mode(), "both memories spent")
}

func TestControllerJumpsOnceAtObstacle(t *testing.T) {
	f := newAgent(t, nil)
	f.world.wall(cp.BB{L: 1, B: -0.5, R: 2, T: 0.3})

	f.ctrl.Tick(tick)
	assert.InDelta(t, 6.0, f.body.vel.Y, 1e-9, "jump force applied")
	assert.Equal(t, 0.0, f.body.vel.X, "jump consumes the tick's horizontal intent")
	assert.InDelta(t, 0.2, f.ctrl.JumpCooldown(), 1e-9)

	f.ctrl.Tick(tick)
	assert.Less(t, f.ctrl.JumpCooldown(), 0.2, "no second jump for the same obstacle")
	assert.InDelta(t, 2.0, f.body.vel.X, 1e-9)
}

func TestControllerDisable(t *testing.T) {
	f := newAgent(t, nil)
	f.step(5)
	require.NotEqual(t, 0.0, f.body.vel.X)

	f.ctrl.Disable()
	assert.Equal(t, cp.Vector{}, f.body.vel)
	assert.Equal(t, cp.Vector{}, f.ctrl.MoveInput())
	assert.Equal(t, ModeDisabled, f.ctrl.Mode())

	f.body.vel = cp.Vector{X: 1}
	f.ctrl.Tick(tick)
	assert.Equal(t, cp.Vector{X: 1}, f.body.vel, "no further dispatch")
}

func TestControllerAnimationContract(t *testing.T) {
	f := newAgent(t, nil)
	var data AnimationData = f.ctrl
	f.step(2)
	assert.Equal(t, cp.Vector{X: 1}, data.MoveInput())
	assert.Equal(t, f.body.vel, data.Velocity())
	assert.True(t, data.IsGrounded())
	assert.Equal(t, 0, data.ComboCount())
}
