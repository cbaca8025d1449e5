package app

import (
	"github.com/hajimehoshi/ebiten/v2"

	"famigo/internal/input"
)

// keyNames maps config key names to ebiten keys.
var keyNames = map[string]ebiten.Key{
	"A": ebiten.KeyA, "B": ebiten.KeyB, "C": ebiten.KeyC, "D": ebiten.KeyD,
	"E": ebiten.KeyE, "F": ebiten.KeyF, "G": ebiten.KeyG, "H": ebiten.KeyH,
	"I": ebiten.KeyI, "J": ebiten.KeyJ, "K": ebiten.KeyK, "L": ebiten.KeyL,
	"M": ebiten.KeyM, "N": ebiten.KeyN, "O": ebiten.KeyO, "P": ebiten.KeyP,
	"Q": ebiten.KeyQ, "R": ebiten.KeyR, "S": ebiten.KeyS, "T": ebiten.KeyT,
	"U": ebiten.KeyU, "V": ebiten.KeyV, "W": ebiten.KeyW, "X": ebiten.KeyX,
	"Y": ebiten.KeyY, "Z": ebiten.KeyZ,
	"Up":         ebiten.KeyArrowUp,
	"Down":       ebiten.KeyArrowDown,
	"Left":       ebiten.KeyArrowLeft,
	"Right":      ebiten.KeyArrowRight,
	"Enter":      ebiten.KeyEnter,
	"Space":      ebiten.KeySpace,
	"Tab":        ebiten.KeyTab,
	"ShiftLeft":  ebiten.KeyShiftLeft,
	"ShiftRight": ebiten.KeyShiftRight,
}

// binding associates one keyboard key with one controller button.
type binding struct {
	key    ebiten.Key
	button input.Button
}

// bindings compiles a KeyMapping into pollable pairs; unknown key names are
// skipped.
func bindings(m KeyMapping) []binding {
	out := make([]binding, 0, 8)
	add := func(name string, button input.Button) {
		if key, ok := keyNames[name]; ok {
			out = append(out, binding{key: key, button: button})
		}
	}
	add(m.A, input.ButtonA)
	add(m.B, input.ButtonB)
	add(m.Select, input.ButtonSelect)
	add(m.Start, input.ButtonStart)
	add(m.Up, input.ButtonUp)
	add(m.Down, input.ButtonDown)
	add(m.Left, input.ButtonLeft)
	add(m.Right, input.ButtonRight)
	return out
}
