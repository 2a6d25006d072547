package ui

import (
	"time"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var (
	cursorPosition       = ebiten.CursorPosition
	isMouseButtonPressed = ebiten.IsMouseButtonPressed
	isKeyJustPressed     = inpututil.IsKeyJustPressed
	isKeyPressed         = ebiten.IsKeyPressed
	appendInputChars     = ebiten.AppendInputChars
	wheel                = ebiten.Wheel
	appendTouchIDs       = ebiten.AppendTouchIDs
	touchPosition        = ebiten.TouchPosition

	now             = time.Now
	copyToClipboard = clipboard.WriteAll
)

// SetInputForTest replaces input functions during tests and returns a function
// to restore the originals.
func SetInputForTest(
	cursor func() (int, int),
	mouse func(ebiten.MouseButton) bool,
	key func(ebiten.Key) bool,
	wh func() (float64, float64),
	touches func([]ebiten.TouchID) []ebiten.TouchID,
	touchPos func(ebiten.TouchID) (int, int),
) func() {
	oldCursor := cursorPosition
	oldMouse := isMouseButtonPressed
	oldKey := isKeyJustPressed
	oldWheel := wheel
	oldTouches := appendTouchIDs
	oldTouchPos := touchPosition
	cursorPosition = cursor
	isMouseButtonPressed = mouse
	isKeyJustPressed = key
	wheel = wh
	appendTouchIDs = touches
	touchPosition = touchPos
	return func() {
		cursorPosition = oldCursor
		isMouseButtonPressed = oldMouse
		isKeyJustPressed = oldKey
		wheel = oldWheel
		appendTouchIDs = oldTouches
		touchPosition = oldTouchPos
	}
}
