package main

import (
	"fmt"

	"github.com/Shiru-Kage/BerserkSigilofRuin/config"
	"github.com/Shiru-Kage/BerserkSigilofRuin/ecs"
	"github.com/Shiru-Kage/BerserkSigilofRuin/ecs/component"
	"github.com/Shiru-Kage/BerserkSigilofRuin/prefabs"
	"github.com/Shiru-Kage/BerserkSigilofRuin/sim"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"
)

type Game struct {
	frames int
	debug  bool

	cfg     config.Config
	logger  *zap.Logger
	world   *sim.World
	watcher *prefabs.Watcher
}

func NewGame(cfg config.Config, debug bool, logger *zap.Logger) (*Game, error) {
	opts := sim.OptionsFromConfig(cfg, logger)
	opts.Before = append(opts.Before, NewInputSystem(DefaultBindings()))

	world, err := sim.NewWorld(cfg.Level.Name, opts)
	if err != nil {
		return nil, err
	}
	g := &Game{
		debug:  debug,
		cfg:    cfg,
		logger: logger,
		world:  world,
	}

	if cfg.Prefabs.Watch {
		w, err := prefabs.NewWatcher(cfg.Prefabs.Dir)
		if err != nil {
			logger.Warn("prefab watcher disabled", zap.Error(err))
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

// Close stops the prefab watcher.
func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}

func (g *Game) Update() error {
	g.frames++

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debug = !g.debug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) || g.prefabsChanged() {
		if err := g.world.Reload(); err != nil {
			// keep playing the old spawn; the edit is probably half-saved
			g.logger.Warn("reload failed", zap.Error(err))
		}
	}
	if g.debug && inpututil.IsKeyJustPressed(ebiten.KeyB) {
		g.forceBerserk()
	}

	g.world.Step()
	return nil
}

// prefabsChanged drains pending watcher events without blocking.
func (g *Game) prefabsChanged() bool {
	if g.watcher == nil {
		return false
	}
	changed := false
	for {
		select {
		case c, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return changed
			}
			g.logger.Info("prefab changed, respawning", zap.String("file", c.Path), zap.Stringer("kind", c.Kind))
			changed = true
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return changed
			}
			g.logger.Warn("prefab watcher", zap.Error(err))
		default:
			return changed
		}
	}
}

func (g *Game) forceBerserk() {
	r, ok := ecs.Get(g.world.ECS, g.world.Player, component.RageComponent.Kind())
	if ok && r.Controller != nil {
		r.Controller.Force(r.Controller.Max())
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	cam := Camera{
		Scale:  g.cfg.Window.Scale,
		Width:  g.cfg.Window.Width,
		Height: g.cfg.Window.Height,
	}
	if b, ok := g.world.Space.Body(g.world.Player); ok {
		cam.Center = b.Position()
	}
	DebugDraw(screen, g.world.ECS, g.world.Space, cam)

	if g.debug {
		s := g.world.Stats()
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS %.1f  tick %d  enemies %d  kills %d  berserks %d  barrages %d",
			ebiten.ActualFPS(), s.Ticks, g.world.Enemies(), s.Kills, s.Berserks, s.Barrages), 10, g.cfg.Window.Height-20)
	}
	if g.world.Done() {
		msg := "all enemies slain - R to restart"
		if s := g.world.Stats(); s.PlayerDead {
			msg = "you died - R to restart"
		}
		ebitenutil.DebugPrintAt(screen, msg, g.cfg.Window.Width/2-100, g.cfg.Window.Height/2)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Window.Width, g.cfg.Window.Height
}
