package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

// SignOrOne returns -1 for negative values and +1 otherwise, so a zero
// direction still yields a usable ray direction.
func SignOrOne(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// NonNegative clamps negative configuration values to zero.
func NonNegative(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}

// CountDown decrements a timer by dt, never going below zero.
func CountDown(timer, dt float64) float64 {
	timer -= dt
	if timer < 0 {
		return 0
	}
	return timer
}

// Normalize returns v scaled to unit length, or the zero vector for a zero
// input.
func Normalize(v cp.Vector) cp.Vector {
	l := v.Length()
	if l == 0 {
		return cp.Vector{}
	}
	return cp.Vector{X: v.X / l, Y: v.Y / l}
}
