package physics

import "github.com/jakecoffman/cp"

// TileGrid is a row-major tile layer with row 0 at the top of the level.
// Non-zero cells are solid.
type TileGrid struct {
	Width  int
	Height int
	Cells  []int
}

func (g TileGrid) solid(x, y int) bool {
	return g.Cells[y*g.Width+x] != 0
}

// MergeTiles merges contiguous solid tiles into rectangles, expanding each
// greedily by width then height. Rectangles are returned in world units with
// y pointing up and tileSize units per tile.
func MergeTiles(g TileGrid, tileSize float64) []cp.BB {
	if g.Width <= 0 || g.Height <= 0 || len(g.Cells) != g.Width*g.Height {
		return nil
	}
	if tileSize <= 0 {
		tileSize = 1
	}
	var out []cp.BB
	processed := make([]bool, len(g.Cells))
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			idx := y*g.Width + x
			if processed[idx] {
				continue
			}
			if !g.solid(x, y) {
				processed[idx] = true
				continue
			}

			w := 1
			for x+w < g.Width {
				idx2 := y*g.Width + (x + w)
				if processed[idx2] || !g.solid(x+w, y) {
					break
				}
				w++
			}

			h := 1
		heightLoop:
			for y+h < g.Height {
				for xi := x; xi < x+w; xi++ {
					if processed[(y+h)*g.Width+xi] || !g.solid(xi, y+h) {
						break heightLoop
					}
				}
				h++
			}

			for yy := y; yy < y+h; yy++ {
				for xx := x; xx < x+w; xx++ {
					processed[yy*g.Width+xx] = true
				}
			}

			// flip rows so that row 0 is the highest
			top := float64(g.Height-y) * tileSize
			out = append(out, cp.BB{
				L: float64(x) * tileSize,
				R: float64(x+w) * tileSize,
				T: top,
				B: top - float64(h)*tileSize,
			})
		}
	}
	return out
}

// AddTiles merges the grid and adds the rectangles as static geometry.
func (s *Space) AddTiles(g TileGrid, tileSize float64, layers Layer) int {
	boxes := MergeTiles(g, tileSize)
	for _, bb := range boxes {
		s.AddStaticBox(bb, layers)
	}
	return len(boxes)
}
