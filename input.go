package main

import (
	"math"

	"github.com/Shiru-Kage/BerserkSigilofRuin/ecs"
	"github.com/Shiru-Kage/BerserkSigilofRuin/ecs/component"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const stickDeadzone = 0.2

// Bindings maps keys and gamepad buttons to player commands.
type Bindings struct {
	Left   []ebiten.Key
	Right  []ebiten.Key
	Jump   []ebiten.Key
	Attack []ebiten.Key

	PadJump   ebiten.StandardGamepadButton
	PadAttack ebiten.StandardGamepadButton
}

func DefaultBindings() Bindings {
	return Bindings{
		Left:      []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft},
		Right:     []ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight},
		Jump:      []ebiten.Key{ebiten.KeySpace, ebiten.KeyW, ebiten.KeyArrowUp},
		Attack:    []ebiten.Key{ebiten.KeyJ},
		PadJump:   ebiten.StandardGamepadButtonRightBottom,
		PadAttack: ebiten.StandardGamepadButtonRightLeft,
	}
}

// InputSystem samples the keyboard, mouse and first gamepad into the
// player's Input component. Jump and attack are edge-triggered.
type InputSystem struct {
	bindings Bindings
}

func NewInputSystem(b Bindings) *InputSystem {
	return &InputSystem{bindings: b}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	b := i.bindings

	stick := 0.0
	jump := anyJustPressed(b.Jump)
	attack := anyJustPressed(b.Attack) || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	if pads := ebiten.AppendGamepadIDs(nil); len(pads) > 0 {
		id := pads[0]
		stick = ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		jump = jump || inpututil.IsStandardGamepadButtonJustPressed(id, b.PadJump)
		attack = attack || inpututil.IsStandardGamepadButtonJustPressed(id, b.PadAttack)
	}
	in := component.Input{
		MoveX:  moveAxis(anyPressed(b.Left), anyPressed(b.Right), stick),
		Jump:   jump,
		Attack: attack,
	}

	ecs.ForEach2(w, component.PlayerTagComponent.Kind(), component.InputComponent.Kind(), func(_ ecs.Entity, _ *component.PlayerTag, input *component.Input) {
		*input = in
	})
}

// moveAxis folds the digital directions and the analog stick into one
// horizontal intent in [-1, 1]. The stick wins outside its deadzone.
func moveAxis(left, right bool, stick float64) float64 {
	if math.Abs(stick) > stickDeadzone {
		return math.Max(-1, math.Min(1, stick))
	}
	x := 0.0
	if left {
		x--
	}
	if right {
		x++
	}
	return x
}

func anyPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

func anyJustPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}
