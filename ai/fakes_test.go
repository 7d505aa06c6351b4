package ai

import (
	"math"

	"github.com/Shiru-Kage/BerserkSigilofRuin/ecs"
	"github.com/Shiru-Kage/BerserkSigilofRuin/physics"
	"github.com/jakecoffman/cp"
)

type staticBox struct {
	bb     cp.BB
	layers physics.Layer
}

// fakeWorld is a pure query surface over boxes, plus registered entities that
// double as targets.
type fakeWorld struct {
	statics  []staticBox
	entities map[ecs.Entity]*fakeBody
	raycasts int
}

func newFakeWorld() *fakeWorld {
	return &fakeWorld{entities: make(map[ecs.Entity]*fakeBody)}
}

// flatGround adds ground with its top at y=top spanning [l, r].
func (w *fakeWorld) flatGround(l, r, top float64) *fakeWorld {
	w.statics = append(w.statics, staticBox{bb: cp.BB{L: l, B: top - 5, R: r, T: top}, layers: physics.LayerGround | physics.LayerObstacle})
	return w
}

func (w *fakeWorld) wall(bb cp.BB) *fakeWorld {
	w.statics = append(w.statics, staticBox{bb: bb, layers: physics.LayerObstacle})
	return w
}

func (w *fakeWorld) add(e ecs.Entity, b *fakeBody) *fakeBody {
	w.entities[e] = b
	return b
}

func (w *fakeWorld) Position(e ecs.Entity) (cp.Vector, bool) {
	b, ok := w.entities[e]
	if !ok {
		return cp.Vector{}, false
	}
	return b.pos, true
}

func (w *fakeWorld) Overlap(s physics.Shape, mask physics.Layer) bool {
	bb := s.BB()
	for _, st := range w.statics {
		if st.layers.Has(mask) && st.bb.Intersects(bb) {
			return true
		}
	}
	return len(w.OverlapAll(s, mask)) > 0
}

func (w *fakeWorld) OverlapAll(s physics.Shape, mask physics.Layer) []ecs.Entity {
	bb := s.BB()
	var out []ecs.Entity
	for e, b := range w.entities {
		if b.layers.Has(mask) && b.bb().Intersects(bb) {
			out = append(out, e)
		}
	}
	return out
}

func (w *fakeWorld) Raycast(origin, dir cp.Vector, maxDist float64, mask physics.Layer) (physics.Hit, bool) {
	w.raycasts++
	if dir.LengthSq() == 0 {
		return physics.Hit{}, false
	}
	d := dir.Normalize().Mult(maxDist)
	best := math.Inf(1)
	var hit physics.Hit
	try := func(bb cp.BB, e ecs.Entity) {
		if ok, t := segmentBB(origin, d, bb); ok && t < best {
			best = t
			hit = physics.Hit{Point: origin.Add(d.Mult(t)), Entity: e, Distance: t * maxDist}
		}
	}
	for _, st := range w.statics {
		if st.layers.Has(mask) {
			try(st.bb, 0)
		}
	}
	for e, b := range w.entities {
		if b.layers.Has(mask) {
			try(b.bb(), e)
		}
	}
	return hit, !math.IsInf(best, 1)
}

func segmentBB(o, d cp.Vector, bb cp.BB) (bool, float64) {
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

// fakeBody is a kinematic motion: it integrates velocity, applies gravity
// while airborne and lands on the plane y=ground.
type fakeBody struct {
	pos    cp.Vector
	vel    cp.Vector
	half   cp.Vector
	layers physics.Layer
	ground float64
}

// newFakeBody places a 0.8x1 body standing on ground at feet height.
func newFakeBody(pos cp.Vector, layers physics.Layer) *fakeBody {
	return &fakeBody{pos: pos, half: cp.Vector{X: 0.4, Y: 0.5}, layers: layers, ground: pos.Y - 0.5}
}

func (b *fakeBody) Position() cp.Vector { return b.pos }
func (b *fakeBody) SetPosition(p cp.Vector) { b.pos = p }
func (b *fakeBody) Velocity() cp.Vector { return b.vel }
func (b *fakeBody) SetVelocity(v cp.Vector) { b.vel = v }

func (b *fakeBody) bb() cp.BB {
	return cp.NewBBForExtents(b.pos, b.half.X, b.half.Y)
}

const fakeGravity = 30.0

func (b *fakeBody) step(dt float64) {
	b.pos = b.pos.Add(b.vel.Mult(dt))
	feet := b.pos.Y - b.half.Y
	if feet > b.ground || b.vel.Y > 0 {
		b.vel.Y -= fakeGravity * dt
		return
	}
	b.pos.Y = b.ground + b.half.Y
	b.vel.Y = 0
}
