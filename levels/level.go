package levels

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"github.com/Shiru-Kage/BerserkSigilofRuin/physics"
	"github.com/jakecoffman/cp"
)

//go:embed *.json
var LevelsFS embed.FS

const (
	EntityPlayer = "player"
	EntityEnemy  = "enemy"
)

// Level is a tile map. Each layer is a row-major Width*Height array with row
// 0 at the top; nonzero cells are solid.
type Level struct {
	Name      string      `json:"name"`
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	TileSize  float64     `json:"tile_size"`
	Layers    [][]int     `json:"layers"`
	LayerMeta []LayerMeta `json:"layer_meta,omitempty"`
	Entities  []Entity    `json:"entities,omitempty"`
}

type LayerMeta struct {
	Name    string `json:"name"`
	Physics bool   `json:"physics"`
	// CollisionLayers the merged boxes live on. Empty means ground and
	// obstacle.
	CollisionLayers []string `json:"collision_layers,omitempty"`
}

// Entity is a spawn point in tile coordinates.
type Entity struct {
	Type  string         `json:"type"`
	X     int            `json:"x"`
	Y     int            `json:"y"`
	Props map[string]any `json:"props,omitempty"`
}

func LoadLevelFromFS(name string) (*Level, error) {
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if lvl.TileSize <= 0 {
		lvl.TileSize = 1
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

// Validate checks layer dimensions and spawn points.
func (l *Level) Validate() error {
	var errs []error
	if l.Width <= 0 || l.Height <= 0 {
		errs = append(errs, fmt.Errorf("level %q: bad size %dx%d", l.Name, l.Width, l.Height))
	}
	for i, layer := range l.Layers {
		if len(layer) != l.Width*l.Height {
			errs = append(errs, fmt.Errorf("level %q: layer %d has %d cells, want %d", l.Name, i, len(layer), l.Width*l.Height))
		}
	}
	players := 0
	for i, e := range l.Entities {
		switch e.Type {
		case EntityPlayer:
			players++
		case EntityEnemy:
		default:
			errs = append(errs, fmt.Errorf("level %q: entity %d: unknown type %q", l.Name, i, e.Type))
		}
		if e.X < 0 || e.X >= l.Width || e.Y < 0 || e.Y >= l.Height {
			errs = append(errs, fmt.Errorf("level %q: entity %d outside the map", l.Name, i))
		}
	}
	if players > 1 {
		errs = append(errs, fmt.Errorf("level %q: %d player spawns", l.Name, players))
	}
	return errors.Join(errs...)
}

// Grid returns layer i as a physics tile grid.
func (l *Level) Grid(i int) physics.TileGrid {
	return physics.TileGrid{Width: l.Width, Height: l.Height, Cells: l.Layers[i]}
}

// PhysicsLayers returns the collision layers of tile layer i.
func (l *Level) PhysicsLayers(i int) (physics.Layer, bool, error) {
	if i >= len(l.LayerMeta) {
		return physics.LayerGround | physics.LayerObstacle, true, nil
	}
	meta := l.LayerMeta[i]
	if !meta.Physics {
		return 0, false, nil
	}
	if len(meta.CollisionLayers) == 0 {
		return physics.LayerGround | physics.LayerObstacle, true, nil
	}
	mask, unknown := physics.ParseLayers(meta.CollisionLayers)
	if len(unknown) > 0 {
		return 0, false, fmt.Errorf("level %q: layer %d: unknown collision layers %v", l.Name, i, unknown)
	}
	return mask, true, nil
}

// SpawnPosition is the world-space center of a body of the given height
// standing on the floor of the entity's cell.
func (l *Level) SpawnPosition(e Entity, height float64) cp.Vector {
	ts := l.TileSize
	return cp.Vector{
		X: (float64(e.X) + 0.5) * ts,
		Y: float64(l.Height-1-e.Y)*ts + height/2,
	}
}

// Build adds every physics layer to the space and returns the number of
// static boxes created.
func (l *Level) Build(space *physics.Space) (int, error) {
	total := 0
	for i := range l.Layers {
		mask, solid, err := l.PhysicsLayers(i)
		if err != nil {
			return total, err
		}
		if !solid {
			continue
		}
		total += space.AddTiles(l.Grid(i), l.TileSize, mask)
	}
	return total, nil
}
