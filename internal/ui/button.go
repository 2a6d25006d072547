package ui

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

const buttonTextSize = 15

// ButtonVisual is implemented by styles capable of drawing a button.
// pressed indicates the mouse button is currently down; hovered indicates the
// cursor is over the control so styles can provide hover feedback.
type ButtonVisual interface {
	Draw(dst *ebiten.Image, r image.Rectangle, pressed, hovered bool)
}

// Button is a basic clickable component with a rectangular bounds and text label.
type Button struct {
	r       image.Rectangle
	Text    string
	Style   ButtonVisual
	OnClick func()
	pressed bool
	hovered bool
	held    int
}

// NewButton constructs a button with the given label, style, and optional click handler.
func NewButton(text string, style ButtonVisual, onClick func()) *Button {
	return &Button{Text: text, Style: style, OnClick: onClick}
}

// Rect returns the button's bounds.
func (b *Button) Rect() image.Rectangle { return b.r }

// SetRect sets the button's bounds.
func (b *Button) SetRect(r image.Rectangle) { b.r = r }

// Contains reports whether (x, y) is inside the button.
func (b *Button) Contains(x, y int) bool { return image.Pt(x, y).In(b.r) }

// Draw renders the button and its centred label.
func (b *Button) Draw(dst *ebiten.Image) {
	if b.Style != nil {
		b.Style.Draw(dst, b.r, b.pressed, b.hovered)
	}
	f := sansFace(buttonTextSize)
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(b.r.Min.X+b.r.Dx()/2), float64(b.r.Min.Y+b.r.Dy()/2))
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.ColorScale.ScaleWithColor(colLabel)
	text.Draw(dst, b.Text, f, op)
}

// Handle processes the mouse at (mx,my). OnClick fires once on the first
// frame the button is pressed inside; holding does not repeat.
func (b *Button) Handle(mx, my int, pressed bool) bool {
	inside := b.Contains(mx, my)
	b.hovered = inside
	if pressed && inside {
		b.held++
		if b.held == 1 && b.OnClick != nil {
			b.OnClick()
		}
		b.pressed = true
		return true
	}
	b.pressed = false
	b.held = 0
	return false
}

// Tap fires OnClick when (x, y) is inside. Touch hosts deliver a whole
// press-and-release at once, so there is no held state.
func (b *Button) Tap(x, y int) bool {
	if !b.Contains(x, y) {
		return false
	}
	if b.OnClick != nil {
		b.OnClick()
	}
	return true
}
