package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestSequencerComboWithinWindow(t *testing.T) {
	s := NewAttackSequencer(DefaultSequencerConfig())
	var indices []int
	finished := 0
	s.OnComboAttack(func(i int) { indices = append(indices, i) })
	s.OnComboFinished(func() { finished++ })

	const dt = 1.0 / 60
	for i := 0; i < 3; i++ {
		s.HandleAttackRequest()
		if i == 0 {
			assert.Equal(t, 0, finished)
		}
		// wait one second between requests, inside the 2s window
		for j := 0; j < 60; j++ {
			s.Tick(dt)
		}
	}

	assert.Equal(t, []int{0, 1, 2}, indices)
	assert.Equal(t, 1, finished)
}

func TestSequencerResetsAfterWindow(t *testing.T) {
	s := NewAttackSequencer(DefaultSequencerConfig())
	require.Equal(t, 0, s.HandleAttackRequest())
	require.Equal(t, 1, s.HandleAttackRequest())

	s.Tick(2.5)
	assert.False(t, s.Active())
	assert.Equal(t, 0, s.Count())
	assert.Equal(t, 0, s.HandleAttackRequest(), "restarts at count 1")
	assert.Equal(t, 1, s.Count())
}

func TestSequencerStaysAtMaxAndClampsIndex(t *testing.T) {
	s := NewAttackSequencer(SequencerConfig{ResetTime: 2, MaxCombo: 4, Variants: 2})
	finished := 0
	s.OnComboFinished(func() { finished++ })

	got := []int{}
	for i := 0; i < 6; i++ {
		got = append(got, s.HandleAttackRequest())
	}
	assert.Equal(t, []int{0, 1, 1, 1, 1, 1}, got)
	assert.Equal(t, 4, s.Count(), "no wraparound while active")
	assert.Equal(t, 3, finished, "every request at max reports finished")

	s.ForceReset()
	assert.False(t, s.Active())
	assert.Equal(t, 0, s.Count())
}

func TestSequencerCountBoundsProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		maxCombo := rapid.IntRange(1, 6).Draw(t, "maxCombo")
		s := NewAttackSequencer(SequencerConfig{
			ResetTime: rapid.Float64Range(0, 3).Draw(t, "reset"),
			MaxCombo:  maxCombo,
			Variants:  rapid.IntRange(1, 6).Draw(t, "variants"),
		})
		ops := rapid.IntRange(1, 80).Draw(t, "ops")
		for i := 0; i < ops; i++ {
			switch rapid.IntRange(0, 2).Draw(t, "op") {
			case 0:
				s.HandleAttackRequest()
			case 1:
				s.Tick(rapid.Float64Range(0, 1).Draw(t, "dt"))
			case 2:
				if rapid.Bool().Draw(t, "force") {
					s.ForceReset()
				}
			}
			if s.Count() < 0 || s.Count() > maxCombo {
				t.Fatalf("count %d outside [0,%d]", s.Count(), maxCombo)
			}
			if (s.Count() == 0) == s.Active() {
				t.Fatalf("count %d with active=%v", s.Count(), s.Active())
			}
		}
	})
}
