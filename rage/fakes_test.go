package rage

import (
	"math"

	"github.com/Shiru-Kage/BerserkSigilofRuin/ai"
	"github.com/Shiru-Kage/BerserkSigilofRuin/ecs"
	"github.com/Shiru-Kage/BerserkSigilofRuin/physics"
	"github.com/jakecoffman/cp"
)

type box struct {
	bb     cp.BB
	layers physics.Layer
}

// arena is a query surface with static boxes and enemy targets of size
// 0.8x1.
type arena struct {
	statics []box
	enemies map[ecs.Entity]cp.Vector
}

func newArena() *arena {
	a := &arena{enemies: make(map[ecs.Entity]cp.Vector)}
	a.statics = append(a.statics, box{bb: cp.BB{L: -50, B: -5.5, R: 50, T: -0.5}, layers: physics.LayerGround | physics.LayerObstacle})
	return a
}

func enemyBB(p cp.Vector) cp.BB {
	return cp.NewBBForExtents(p, 0.4, 0.5)
}

func (a *arena) Position(e ecs.Entity) (cp.Vector, bool) {
	p, ok := a.enemies[e]
	return p, ok
}

func (a *arena) Overlap(s physics.Shape, mask physics.Layer) bool {
	for _, st := range a.statics {
		if st.layers.Has(mask) && st.bb.Intersects(s.BB()) {
			return true
		}
	}
	return len(a.OverlapAll(s, mask)) > 0
}

func (a *arena) OverlapAll(s physics.Shape, mask physics.Layer) []ecs.Entity {
	if !physics.LayerEnemy.Has(mask) {
		return nil
	}
	var out []ecs.Entity
	for e, p := range a.enemies {
		if enemyBB(p).Intersects(s.BB()) {
			out = append(out, e)
		}
	}
	return out
}

func (a *arena) Raycast(origin, dir cp.Vector, maxDist float64, mask physics.Layer) (physics.Hit, bool) {
	if dir.LengthSq() == 0 {
		return physics.Hit{}, false
	}
	d := dir.Normalize().Mult(maxDist)
	best := math.Inf(1)
	var hit physics.Hit
	try := func(bb cp.BB, e ecs.Entity) {
		if ok, t := slab(origin, d, bb); ok && t < best {
			best = t
			hit = physics.Hit{Point: origin.Add(d.Mult(t)), Entity: e, Distance: t * maxDist}
		}
	}
	for _, st := range a.statics {
		if st.layers.Has(mask) {
			try(st.bb, 0)
		}
	}
	if physics.LayerEnemy.Has(mask) {
		for e, p := range a.enemies {
			try(enemyBB(p), e)
		}
	}
	return hit, !math.IsInf(best, 1)
}

func slab(o, d cp.Vector, bb cp.BB) (bool, float64) {
	tmin, tmax := 0.0, 1.0
	axis := func(o, d, lo, hi float64) bool {
		if d == 0 {
			return o >= lo && o <= hi
		}
		t1, t2 := (lo-o)/d, (hi-o)/d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
		return true
	}
	if !axis(o.X, d.X, bb.L, bb.R) || !axis(o.Y, d.Y, bb.B, bb.T) {
		return false, 0
	}
	return tmax >= tmin, tmin
}

// walker slides horizontally on the ground and never leaves it. Jumps only
// show up as vertical velocity. X is clamped to [minX, maxX].
type walker struct {
	pos        cp.Vector
	vel        cp.Vector
	minX, maxX float64
}

func newWalker() *walker {
	return &walker{minX: math.Inf(-1), maxX: math.Inf(1)}
}

func (w *walker) Position() cp.Vector { return w.pos }
func (w *walker) SetPosition(p cp.Vector) { w.pos = p }
func (w *walker) Velocity() cp.Vector { return w.vel }
func (w *walker) SetVelocity(v cp.Vector) { w.vel = v }

func (w *walker) step(dt float64) {
	w.pos.X = math.Min(w.maxX, math.Max(w.minX, w.pos.X+w.vel.X*dt))
}

// manual stands in for the player controller.
type manual struct {
	facing float64
}

func (m *manual) MoveInput() cp.Vector { return cp.Vector{} }
func (m *manual) Velocity() cp.Vector { return cp.Vector{} }
func (m *manual) IsGrounded() bool { return true }
func (m *manual) ComboCount() int { return 0 }
func (m *manual) Facing() float64 { return m.facing }

func (m *manual) SubscribeAttack(func(ai.AttackEvent)) func() {
	return func() {}
}

type alwaysTrigger struct{}

func (alwaysTrigger) ShouldBarrage(TriggerState) (bool, error) { return true, nil }
