package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/BrendanWorks/runnergame/tuning"
)

// Input holds the per-frame control state for the runner.
type Input struct {
	// JumpPressed is true on the frame a jump control fired (key,
	// gamepad, tap, or swipe up).
	JumpPressed bool
	// JumpHeld is true while a jump control is held down.
	JumpHeld bool
	// FastFallPressed is true on the frame a fast-fall control fired
	// (key or swipe down).
	FastFallPressed bool
	// FastFallHeld is true while the fast-fall key is held.
	FastFallHeld bool
	// PausePressed is true on the frame the pause key was pressed.
	PausePressed bool
	// RestartPressed is true on the frame the restart key was pressed.
	RestartPressed bool
	// DebugPressed is true on the frame the debug overlay key was pressed.
	DebugPressed bool

	gestures tuning.GestureConfig
	touches  map[ebiten.TouchID]*touchTrack
	touchIDs []ebiten.TouchID
}

// touchTrack follows one finger from press to release so the gesture
// can be classified when it lifts.
type touchTrack struct {
	startY int
	lastY  int
	frames int
}

func NewInput(gestures tuning.GestureConfig) *Input {
	return &Input{
		gestures: gestures,
		touches:  map[ebiten.TouchID]*touchTrack{},
	}
}

// Retune swaps the gesture thresholds on a live tuning reload.
func (i *Input) Retune(gestures tuning.GestureConfig) {
	if i == nil {
		return
	}
	i.gestures = gestures
}

// Update polls the keyboard, gamepad, and touch screen.
func (i *Input) Update() {
	if i == nil {
		return
	}

	i.JumpPressed = inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		inpututil.IsKeyJustPressed(ebiten.KeyW) ||
		inpututil.IsKeyJustPressed(ebiten.KeyUp)
	i.JumpHeld = ebiten.IsKeyPressed(ebiten.KeySpace) ||
		ebiten.IsKeyPressed(ebiten.KeyW) ||
		ebiten.IsKeyPressed(ebiten.KeyUp)
	i.FastFallPressed = inpututil.IsKeyJustPressed(ebiten.KeyS) ||
		inpututil.IsKeyJustPressed(ebiten.KeyDown)
	i.FastFallHeld = ebiten.IsKeyPressed(ebiten.KeyS) ||
		ebiten.IsKeyPressed(ebiten.KeyDown)
	i.PausePressed = inpututil.IsKeyJustPressed(ebiten.KeyEscape) ||
		inpututil.IsKeyJustPressed(ebiten.KeyP)
	i.RestartPressed = inpututil.IsKeyJustPressed(ebiten.KeyR) ||
		inpututil.IsKeyJustPressed(ebiten.KeyEnter)
	i.DebugPressed = inpututil.IsKeyJustPressed(ebiten.KeyF3)

	if ids := ebiten.GamepadIDs(); len(ids) > 0 {
		gid := ids[0]
		if inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightBottom) {
			i.JumpPressed = true
		}
		if ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonRightBottom) {
			i.JumpHeld = true
		}
		if inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightLeft) {
			i.FastFallPressed = true
		}
		if inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonCenterRight) {
			i.PausePressed = true
		}
	}

	i.updateTouch()
}

func (i *Input) updateTouch() {
	i.touchIDs = inpututil.AppendJustPressedTouchIDs(i.touchIDs[:0])
	for _, id := range i.touchIDs {
		_, y := ebiten.TouchPosition(id)
		i.touches[id] = &touchTrack{startY: y, lastY: y}
	}

	for id, tr := range i.touches {
		if inpututil.IsTouchJustReleased(id) {
			i.classifyGesture(tr)
			delete(i.touches, id)
			continue
		}
		if _, y := ebiten.TouchPosition(id); y != 0 || tr.lastY == 0 {
			tr.lastY = y
		}
		tr.frames++
	}
}

// classifyGesture turns a finished touch into a control: swipe up
// jumps, swipe down fast-falls, a quick tap jumps.
func (i *Input) classifyGesture(tr *touchTrack) {
	dy := float64(tr.lastY - tr.startY)
	switch {
	case dy <= -i.gestures.SwipeThreshold:
		i.JumpPressed = true
	case dy >= i.gestures.SwipeThreshold:
		i.FastFallPressed = true
	case float64(tr.frames)/60 <= i.gestures.TapMaxSeconds:
		i.JumpPressed = true
	}
}
