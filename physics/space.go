package physics

import (
	"math"

	"github.com/Shiru-Kage/BerserkSigilofRuin/ecs"
	"github.com/jakecoffman/cp"
)

const (
	defaultGravity = -30.0

	// unitScale converts world units (one per tile) to chipmunk units. The
	// solver's collision slop is tuned for pixel-sized shapes.
	unitScale = 32.0
)

func toSpace(v cp.Vector) cp.Vector {
	return v.Mult(unitScale)
}

func fromSpace(v cp.Vector) cp.Vector {
	return v.Mult(1 / unitScale)
}

func bbToSpace(bb cp.BB) cp.BB {
	return cp.BB{L: bb.L * unitScale, B: bb.B * unitScale, R: bb.R * unitScale, T: bb.T * unitScale}
}

func bbFromSpace(bb cp.BB) cp.BB {
	return cp.BB{L: bb.L / unitScale, B: bb.B / unitScale, R: bb.R / unitScale, T: bb.T / unitScale}
}

// Space wraps a chipmunk space and implements Query over its shapes. All
// arguments and results are in world units.
type Space struct {
	space   *cp.Space
	bodies  map[ecs.Entity]*Body
	statics []cp.BB
}

// NewSpace creates a space with downward gravity in world units per second
// squared. A zero gravity uses the default.
func NewSpace(gravity float64) *Space {
	if gravity == 0 {
		gravity = defaultGravity
	}
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: gravity * unitScale})
	return &Space{space: space, bodies: make(map[ecs.Entity]*Body)}
}

// AddStaticBox adds level geometry covering bb on the given layers.
func (s *Space) AddStaticBox(bb cp.BB, layers Layer) {
	if s == nil {
		return
	}
	shape := cp.NewBox2(s.space.StaticBody, bbToSpace(bb), 0)
	shape.SetFriction(0.8)
	shape.SetFilter(shapeFilter(layers))
	s.space.AddShape(shape)
	s.statics = append(s.statics, bb)
}

// BodyOptions describes a dynamic agent body.
type BodyOptions struct {
	Position cp.Vector
	Width    float64
	Height   float64
	Mass     float64
	Layers   Layer
}

// AddBody creates a non-rotating dynamic body for entity e. Adding a body for
// an entity that already has one replaces it.
func (s *Space) AddBody(e ecs.Entity, opts BodyOptions) *Body {
	if s == nil {
		return nil
	}
	s.RemoveBody(e)

	mass := opts.Mass
	if mass <= 0 {
		mass = 1
	}
	w, h := opts.Width, opts.Height
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}

	body := cp.NewBody(mass, math.Inf(1))
	body.SetPosition(toSpace(opts.Position))
	shape := cp.NewBox(body, w*unitScale, h*unitScale, 0)
	shape.SetFriction(0)
	shape.SetFilter(shapeFilter(opts.Layers))
	shape.UserData = e

	s.space.AddBody(body)
	s.space.AddShape(shape)

	b := &Body{entity: e, body: body, shape: shape, halfHeight: h / 2}
	s.bodies[e] = b
	return b
}

// Body returns the body registered for e.
func (s *Space) Body(e ecs.Entity) (*Body, bool) {
	if s == nil {
		return nil, false
	}
	b, ok := s.bodies[e]
	return b, ok
}

// RemoveBody removes the body of e from the space.
func (s *Space) RemoveBody(e ecs.Entity) bool {
	if s == nil {
		return false
	}
	b, ok := s.bodies[e]
	if !ok {
		return false
	}
	s.space.RemoveShape(b.shape)
	s.space.RemoveBody(b.body)
	delete(s.bodies, e)
	return true
}

// Bodies returns the number of dynamic bodies.
func (s *Space) Bodies() int {
	if s == nil {
		return 0
	}
	return len(s.bodies)
}

// Step advances the simulation by dt seconds.
func (s *Space) Step(dt float64) {
	if s == nil || dt <= 0 {
		return
	}
	s.space.Step(dt)
}

// Overlap reports whether any shape on mask overlaps the query shape.
func (s *Space) Overlap(q Shape, mask Layer) bool {
	found := false
	s.eachOverlap(q, mask, func(*cp.Shape) bool {
		found = true
		return false
	})
	return found
}

// OverlapAll returns the entities whose shapes on mask overlap the query
// shape. Level geometry is skipped.
func (s *Space) OverlapAll(q Shape, mask Layer) []ecs.Entity {
	var out []ecs.Entity
	seen := make(map[ecs.Entity]struct{})
	s.eachOverlap(q, mask, func(shape *cp.Shape) bool {
		e, ok := shape.UserData.(ecs.Entity)
		if !ok {
			return true
		}
		if _, dup := seen[e]; !dup {
			seen[e] = struct{}{}
			out = append(out, e)
		}
		return true
	})
	return out
}

func (s *Space) eachOverlap(q Shape, mask Layer, fn func(*cp.Shape) bool) {
	if s == nil || mask == LayerNone {
		return
	}
	done := false
	s.space.BBQuery(bbToSpace(q.BB()), queryFilter(mask), func(shape *cp.Shape, _ interface{}) {
		if done {
			return
		}
		if q.IsCircle() && !circleTouchesBB(q.Center, q.Radius, bbFromSpace(shape.BB())) {
			return
		}
		if !fn(shape) {
			done = true
		}
	}, nil)
}

// Raycast returns the first shape on mask hit by the segment from origin
// along dir for maxDist.
func (s *Space) Raycast(origin, dir cp.Vector, maxDist float64, mask Layer) (Hit, bool) {
	if s == nil || maxDist <= 0 || mask == LayerNone || dir.LengthSq() == 0 {
		return Hit{}, false
	}
	dir = dir.Normalize()
	start := toSpace(origin)
	end := toSpace(origin.Add(dir.Mult(maxDist)))
	info := s.space.SegmentQueryFirst(start, end, 0, queryFilter(mask))
	if info.Shape == nil {
		return Hit{}, false
	}
	hit := Hit{Point: fromSpace(info.Point), Normal: info.Normal, Distance: info.Alpha * maxDist}
	if e, ok := info.Shape.UserData.(ecs.Entity); ok {
		hit.Entity = e
	}
	return hit, true
}

// EachBody calls fn for every dynamic body.
func (s *Space) EachBody(fn func(e ecs.Entity, b *Body)) {
	if s == nil || fn == nil {
		return
	}
	for e, b := range s.bodies {
		fn(e, b)
	}
}

// EachStaticBox calls fn with the bounds of every static shape.
func (s *Space) EachStaticBox(fn func(bb cp.BB)) {
	if s == nil || fn == nil {
		return
	}
	for _, bb := range s.statics {
		fn(bb)
	}
}

// all agent and level shapes are axis-aligned boxes, so the bounds are exact.
func circleTouchesBB(c cp.Vector, r float64, bb cp.BB) bool {
	nearest := cp.Vector{
		X: math.Max(bb.L, math.Min(c.X, bb.R)),
		Y: math.Max(bb.B, math.Min(c.Y, bb.T)),
	}
	return nearest.Sub(c).LengthSq() <= r*r
}
