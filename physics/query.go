package physics

import (
	"github.com/Shiru-Kage/BerserkSigilofRuin/ecs"
	"github.com/jakecoffman/cp"
)

// Shape is a query volume: an axis-aligned box when Radius is zero, a circle
// otherwise.
type Shape struct {
	Center      cp.Vector
	HalfExtents cp.Vector
	Radius      float64
}

// Box returns a box query shape centered on c with the given full size.
func Box(c cp.Vector, w, h float64) Shape {
	return Shape{Center: c, HalfExtents: cp.Vector{X: w / 2, Y: h / 2}}
}

// Circle returns a circle query shape.
func Circle(c cp.Vector, r float64) Shape {
	return Shape{Center: c, Radius: r}
}

func (s Shape) IsCircle() bool {
	return s.Radius > 0
}

// BB returns the bounding box of the shape.
func (s Shape) BB() cp.BB {
	if s.IsCircle() {
		return cp.NewBBForCircle(s.Center, s.Radius)
	}
	return cp.NewBBForExtents(s.Center, s.HalfExtents.X, s.HalfExtents.Y)
}

// Hit is a raycast result. Entity is zero for level geometry.
type Hit struct {
	Point    cp.Vector
	Normal   cp.Vector
	Entity   ecs.Entity
	Distance float64
}

// Query is the side-effect free physics query surface behaviors read the
// world through. Implementations must be safe to call from every agent's
// tick.
type Query interface {
	Overlap(shape Shape, mask Layer) bool
	OverlapAll(shape Shape, mask Layer) []ecs.Entity
	Raycast(origin, dir cp.Vector, maxDist float64, mask Layer) (Hit, bool)
}

// Motion reads and writes an agent's physical body.
type Motion interface {
	Position() cp.Vector
	SetPosition(p cp.Vector)
	Velocity() cp.Vector
	SetVelocity(v cp.Vector)
}
