package main

import (
	"fmt"
	"image/color"

	"github.com/Shiru-Kage/BerserkSigilofRuin/ecs"
	"github.com/Shiru-Kage/BerserkSigilofRuin/ecs/component"
	"github.com/Shiru-Kage/BerserkSigilofRuin/physics"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
)

var (
	colorTile    = color.RGBA{R: 70, G: 70, B: 80, A: 255}
	colorPlayer  = color.RGBA{R: 80, G: 160, B: 255, A: 255}
	colorBerserk = color.RGBA{R: 220, G: 40, B: 40, A: 255}
	colorEnemy   = color.RGBA{R: 230, G: 170, B: 60, A: 255}
	colorDead    = color.RGBA{R: 90, G: 90, B: 90, A: 255}
	colorHealth  = color.RGBA{R: 60, G: 200, B: 90, A: 255}
	colorRage    = color.RGBA{R: 200, G: 30, B: 30, A: 255}
	colorBarBack = color.RGBA{A: 160}
)

// Camera maps y-up world units onto the screen.
type Camera struct {
	Center cp.Vector
	Scale  float64
	Width  int
	Height int
}

func (c Camera) toScreen(p cp.Vector) (float32, float32) {
	x := (p.X-c.Center.X)*c.Scale + float64(c.Width)/2
	y := float64(c.Height)/2 - (p.Y-c.Center.Y)*c.Scale
	return float32(x), float32(y)
}

func (c Camera) rect(bb cp.BB) (x, y, w, h float32) {
	x, y = c.toScreen(cp.Vector{X: bb.L, Y: bb.T})
	return x, y, float32((bb.R - bb.L) * c.Scale), float32((bb.T - bb.B) * c.Scale)
}

// DebugDraw renders level geometry, agent boxes with health bars and the
// player's rage bar.
func DebugDraw(screen *ebiten.Image, w *ecs.World, space *physics.Space, cam Camera) {
	space.EachStaticBox(func(bb cp.BB) {
		x, y, wd, ht := cam.rect(bb)
		vector.FillRect(screen, x, y, wd, ht, colorTile, false)
	})

	ecs.ForEach(w, component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, pb *component.PhysicsBody) {
		if pb.Body == nil {
			return
		}
		bb := pb.Body.BB()
		x, y, wd, ht := cam.rect(bb)
		vector.FillRect(screen, x, y, wd, ht, bodyColor(w, e), false)

		if anim, ok := ecs.Get(w, e, component.AnimationComponent.Kind()); ok {
			ebitenutil.DebugPrintAt(screen, anim.Clip, int(x), int(y)-28)
			eyeX := x + wd*0.75
			if anim.Facing < 0 {
				eyeX = x + wd*0.25
			}
			vector.FillRect(screen, eyeX-2, y+ht*0.25, 4, 4, color.White, false)
		}
		if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok && h.Health != nil && h.Health.Max() > 0 {
			drawBar(screen, x, y-8, wd, 4, h.Health.Current()/h.Health.Max(), colorHealth)
		}
	})

	if e, ok := ecs.First(w, component.RageComponent.Kind()); ok {
		r, _ := ecs.Get(w, e, component.RageComponent.Kind())
		if r.Controller != nil && r.Controller.Max() > 0 {
			drawBar(screen, 10, 10, 200, 10, r.Controller.Value()/r.Controller.Max(), colorRage)
			ebitenutil.DebugPrintAt(screen, fmt.Sprintf("rage %.0f  %s", r.Controller.Value(), r.Controller.State()), 10, 24)
		}
	}
}

func bodyColor(w *ecs.World, e ecs.Entity) color.Color {
	if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok && h.Dying {
		return colorDead
	}
	if r, ok := ecs.Get(w, e, component.RageComponent.Kind()); ok && r.Controller != nil && r.Controller.IsBerserk() {
		return colorBerserk
	}
	if ecs.Has(w, e, component.PlayerTagComponent.Kind()) {
		return colorPlayer
	}
	return colorEnemy
}

func drawBar(screen *ebiten.Image, x, y, w, h float32, frac float64, c color.Color) {
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	vector.FillRect(screen, x, y, w, h, colorBarBack, false)
	vector.FillRect(screen, x, y, w*float32(frac), h, c, false)
}
