package rage

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChanceTrigger(t *testing.T) {
	never := NewChanceTrigger(0, rand.New(rand.NewSource(1)))
	always := NewChanceTrigger(1, nil)
	for i := 0; i < 100; i++ {
		fire, err := never.ShouldBarrage(TriggerState{})
		require.NoError(t, err)
		assert.False(t, fire)

		fire, err = always.ShouldBarrage(TriggerState{})
		require.NoError(t, err)
		assert.True(t, fire)
	}
}

func TestChanceTriggerIsSeeded(t *testing.T) {
	roll := func() []bool {
		tr := NewChanceTrigger(0.35, rand.New(rand.NewSource(42)))
		out := make([]bool, 20)
		for i := range out {
			out[i], _ = tr.ShouldBarrage(TriggerState{})
		}
		return out
	}
	assert.Equal(t, roll(), roll())
}

func TestScriptTrigger(t *testing.T) {
	src := []byte(`trigger = health < health_max / 2 && rage > 0`)
	tr, err := NewScriptTrigger(src, 0.35, nil)
	require.NoError(t, err)

	cases := []struct {
		name  string
		state TriggerState
		want  bool
	}{
		{"healthy", TriggerState{Rage: 50, RageMax: 100, Health: 80, HealthMax: 100}, false},
		{"wounded", TriggerState{Rage: 50, RageMax: 100, Health: 30, HealthMax: 100}, true},
		{"drained", TriggerState{Rage: 0, RageMax: 100, Health: 30, HealthMax: 100}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			fire, err := tr.ShouldBarrage(c.state)
			require.NoError(t, err)
			assert.Equal(t, c.want, fire)
		})
	}
}

func TestScriptTriggerChanceRoll(t *testing.T) {
	always, err := NewScriptTrigger([]byte(`trigger = roll < chance`), 1, nil)
	require.NoError(t, err)
	never, err := NewScriptTrigger([]byte(`trigger = roll < chance`), 0, nil)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		fire, err := always.ShouldBarrage(TriggerState{})
		require.NoError(t, err)
		assert.True(t, fire)
		fire, err = never.ShouldBarrage(TriggerState{})
		require.NoError(t, err)
		assert.False(t, fire)
	}
}

func TestScriptTriggerStdlib(t *testing.T) {
	src := []byte(`
math := import("math")
trigger = math.abs(rage - rage_max) < 1
`)
	tr, err := NewScriptTrigger(src, 0, nil)
	require.NoError(t, err)

	fire, err := tr.ShouldBarrage(TriggerState{Rage: 99.5, RageMax: 100})
	require.NoError(t, err)
	assert.True(t, fire)
}

func TestScriptTriggerCompileError(t *testing.T) {
	_, err := NewScriptTrigger([]byte(`trigger = (`), 0, nil)
	assert.Error(t, err)
}
