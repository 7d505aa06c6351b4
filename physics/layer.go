package physics

import "github.com/jakecoffman/cp"

// Layer is a collision layer bitmask. Shapes belong to one or more layers and
// queries select shapes by mask.
type Layer uint

const (
	LayerGround Layer = 1 << iota
	LayerObstacle
	LayerPlayer
	LayerEnemy

	LayerNone Layer = 0
	LayerAll  Layer = LayerGround | LayerObstacle | LayerPlayer | LayerEnemy
)

// Has reports whether any bit of other is set in l.
func (l Layer) Has(other Layer) bool {
	return l&other != 0
}

// membership filter for a shape that lives on l and collides with everything.
func shapeFilter(l Layer) cp.ShapeFilter {
	return cp.NewShapeFilter(cp.NO_GROUP, uint(l), cp.ALL_CATEGORIES)
}

// query filter selecting shapes on any layer of mask.
func queryFilter(mask Layer) cp.ShapeFilter {
	return cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, uint(mask))
}

var layerNames = map[string]Layer{
	"ground":   LayerGround,
	"obstacle": LayerObstacle,
	"player":   LayerPlayer,
	"enemy":    LayerEnemy,
}

// ParseLayers maps layer names ("ground", "player", ...) onto a mask.
// Unknown names are reported in the second return value.
func ParseLayers(names []string) (Layer, []string) {
	var mask Layer
	var unknown []string
	for _, n := range names {
		l, ok := layerNames[n]
		if !ok {
			unknown = append(unknown, n)
			continue
		}
		mask |= l
	}
	return mask, unknown
}
