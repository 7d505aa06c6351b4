package entity

import (
	"math/rand"
	"testing"

	"github.com/Shiru-Kage/BerserkSigilofRuin/ecs"
	"github.com/Shiru-Kage/BerserkSigilofRuin/ecs/component"
	"github.com/Shiru-Kage/BerserkSigilofRuin/levels"
	"github.com/Shiru-Kage/BerserkSigilofRuin/physics"
	"github.com/Shiru-Kage/BerserkSigilofRuin/prefabs"
	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const dt = 1.0 / 60.0

func newEnv(t *testing.T) Env {
	t.Helper()
	space := physics.NewSpace(-30)
	space.AddStaticBox(cp.BB{L: -50, B: -1, R: 50, T: 0}, physics.LayerGround|physics.LayerObstacle)
	return Env{
		World: ecs.NewWorld(),
		Space: space,
		Rand:  rand.New(rand.NewSource(3)),
	}
}

func playerSpec(t *testing.T) *prefabs.PlayerSpec {
	t.Helper()
	spec, err := prefabs.LoadPlayerSpec(prefabs.Loader{})
	require.NoError(t, err)
	return spec
}

func enemySpec(t *testing.T) *prefabs.EnemySpec {
	t.Helper()
	spec, err := prefabs.LoadEnemySpec(prefabs.Loader{})
	require.NoError(t, err)
	return spec
}

func TestNewPlayer(t *testing.T) {
	env := newEnv(t)
	e, err := NewPlayer(env, playerSpec(t), cp.Vector{X: 0, Y: 0.5})
	require.NoError(t, err)

	w := env.World
	assert.True(t, ecs.Has(w, e, component.PlayerTagComponent.Kind()))
	assert.True(t, ecs.Has(w, e, component.InputComponent.Kind()))

	p, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
	require.True(t, ok)
	require.NotNil(t, p.Controller)

	r, ok := ecs.Get(w, e, component.RageComponent.Kind())
	require.True(t, ok)
	require.NotNil(t, r.Controller)

	anim, ok := ecs.Get(w, e, component.AnimationComponent.Kind())
	require.True(t, ok)
	assert.Same(t, p.Controller, anim.Source)

	h, ok := ecs.Get(w, e, component.HealthComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, 100.0, h.Health.Max())

	body, ok := env.Space.Body(e)
	require.True(t, ok)
	assert.Equal(t, cp.Vector{X: 0, Y: 0.5}, body.Position())
}

func TestPlayerDamageFeedsRage(t *testing.T) {
	env := newEnv(t)
	e, err := NewPlayer(env, playerSpec(t), cp.Vector{Y: 0.5})
	require.NoError(t, err)

	h, _ := ecs.Get(env.World, e, component.HealthComponent.Kind())
	r, _ := ecs.Get(env.World, e, component.RageComponent.Kind())
	c, _ := ecs.Get(env.World, e, component.CombatComponent.Kind())

	h.Health.TakeDamage(10)
	assert.True(t, c.Tracker.InCombat())
	assert.Equal(t, 10.0, r.Controller.Value())
}

func TestPlayerBerserkRebindsSources(t *testing.T) {
	env := newEnv(t)
	e, err := NewPlayer(env, playerSpec(t), cp.Vector{Y: 0.5})
	require.NoError(t, err)

	w := env.World
	p, _ := ecs.Get(w, e, component.PlayerComponent.Kind())
	r, _ := ecs.Get(w, e, component.RageComponent.Kind())
	c, _ := ecs.Get(w, e, component.CombatComponent.Kind())
	anim, _ := ecs.Get(w, e, component.AnimationComponent.Kind())

	r.Controller.Force(r.Controller.Max())
	require.True(t, r.Controller.IsBerserk())
	berserk := r.Controller.Berserk()
	require.NotNil(t, berserk)
	assert.Same(t, berserk, anim.Source)

	// the first random swing lands within 1.5s and is routed to combat
	for i := 0; i < 100 && len(c.Requests) == 0; i++ {
		r.Controller.Tick(dt)
	}
	require.NotEmpty(t, c.Requests)
	assert.True(t, r.Controller.IsBerserk())

	r.Controller.Force(0)
	assert.False(t, r.Controller.IsBerserk())
	assert.Same(t, p.Controller, anim.Source)
}

func TestPlayerMissingScriptFallsBack(t *testing.T) {
	env := newEnv(t)
	spec := playerSpec(t)
	spec.Rage.Barrage.Script = "missing.tengo"

	e, err := NewPlayer(env, spec, cp.Vector{Y: 0.5})
	require.NoError(t, err)
	r, _ := ecs.Get(env.World, e, component.RageComponent.Kind())
	assert.NotNil(t, r.Controller)
}

func TestPlayerBadSpec(t *testing.T) {
	env := newEnv(t)
	spec := playerSpec(t)
	spec.Attack.TargetLayers = []string{"nope"}

	_, err := NewPlayer(env, spec, cp.Vector{Y: 0.5})
	assert.Error(t, err)

	_, err = NewPlayer(Env{}, playerSpec(t), cp.Vector{})
	assert.Error(t, err)
}

func TestNewEnemyOverride(t *testing.T) {
	env := newEnv(t)
	dist := 2.0
	maxHP := 7.0
	override := prefabs.SpawnOverride{
		Patrol: prefabs.PatrolSpec{
			Direction: &prefabs.VecSpec{X: -1},
			Distance:  &dist,
		},
		Health: prefabs.HealthSpec{Max: &maxHP},
	}

	e, err := NewEnemy(env, enemySpec(t), cp.Vector{X: 5, Y: 0.5}, override)
	require.NoError(t, err)

	w := env.World
	assert.True(t, ecs.Has(w, e, component.EnemyTagComponent.Kind()))
	a, ok := ecs.Get(w, e, component.AIComponent.Kind())
	require.True(t, ok)
	require.NotNil(t, a.Controller)

	_, b := a.Controller.Patrol().Waypoints()
	assert.InDelta(t, 3.0, b.X, 1e-9)

	h, _ := ecs.Get(w, e, component.HealthComponent.Kind())
	assert.Equal(t, 7.0, h.Health.Max())

	anim, _ := ecs.Get(w, e, component.AnimationComponent.Kind())
	assert.Same(t, a.Controller, anim.Source)
}

func TestNewEnemyDisabledOnBadController(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	env := newEnv(t)
	env.Logger = zap.New(core)

	spec := enemySpec(t)
	spec.Sensor.TargetLayers = []string{"ghosts"}

	e, err := NewEnemy(env, spec, cp.Vector{X: 5, Y: 0.5}, prefabs.SpawnOverride{})
	require.NoError(t, err)

	a, ok := ecs.Get(env.World, e, component.AIComponent.Kind())
	require.True(t, ok)
	assert.Nil(t, a.Controller)
	assert.True(t, ecs.Has(env.World, e, component.HealthComponent.Kind()))
	assert.Equal(t, 1, logs.FilterMessage("enemy spawned disabled").Len())
}

func TestTargets(t *testing.T) {
	env := newEnv(t)
	e, err := NewEnemy(env, enemySpec(t), cp.Vector{X: 5, Y: 0.5}, prefabs.SpawnOverride{})
	require.NoError(t, err)
	targets := env.Targets()

	pos, ok := targets.Position(e)
	require.True(t, ok)
	assert.InDelta(t, 5.0, pos.X, 1e-9)

	_, ok = targets.Position(0)
	assert.False(t, ok, "invalid handle")

	h, _ := ecs.Get(env.World, e, component.HealthComponent.Kind())
	h.Health.TakeDamage(h.Health.Max())
	_, ok = targets.Position(e)
	assert.False(t, ok, "dead entity")

	env.Space.RemoveBody(e)
	ecs.DestroyEntity(env.World, e)
	_, ok = targets.Position(e)
	assert.False(t, ok, "destroyed entity")
}

func TestLoadLevelToWorld(t *testing.T) {
	lvl, err := levels.LoadLevelFromFS("arena.json")
	require.NoError(t, err)

	env := Env{World: ecs.NewWorld(), Space: physics.NewSpace(-30)}
	player, err := LoadLevelToWorld(env, lvl, playerSpec(t), enemySpec(t))
	require.NoError(t, err)
	require.True(t, player.Valid())
	assert.True(t, ecs.Has(env.World, player, component.PlayerTagComponent.Kind()))

	enemies := 0
	ecs.ForEach(env.World, component.EnemyTagComponent.Kind(), func(e ecs.Entity, _ *component.EnemyTag) {
		enemies++
		a, ok := ecs.Get(env.World, e, component.AIComponent.Kind())
		require.True(t, ok)
		assert.NotNil(t, a.Controller)
	})
	assert.Equal(t, 3, enemies)

	_, err = LoadLevelToWorld(env, lvl, nil, enemySpec(t))
	assert.Error(t, err)
}
