package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ingyamilmolinar/holostack/internal/utils"
)

// ButtonStyle describes rectangular button visuals.
type ButtonStyle struct {
	Fill   color.Color
	Hover  color.Color
	Border color.Color
}

// Draw renders the button rectangle using the global drawButton primitive.
func (s ButtonStyle) Draw(dst *ebiten.Image, r image.Rectangle, pressed, hovered bool) {
	fill := s.Fill
	if hovered && s.Hover != nil {
		fill = s.Hover
	}
	drawButton(dst, r, fill, s.Border, pressed)
}

// PanelStyle styles the detail panel and other framed boxes.
type PanelStyle struct {
	Fill   color.Color
	Border color.Color
}

func (s PanelStyle) Draw(dst *ebiten.Image, r image.Rectangle) {
	drawRect(dst, r, s.Fill, true)
	drawRect(dst, r, s.Border, false)
}

// TextInputStyle styles a text input box. Border fades toward Focus while
// the box has focus.
type TextInputStyle struct {
	Fill   color.Color
	Border color.Color
	Focus  color.Color
}

// Draw renders the box; glow in [0,1] is how far the focus fade has come.
func (s TextInputStyle) Draw(dst *ebiten.Image, r image.Rectangle, glow float64) {
	border := s.Border
	if glow > 0 && s.Focus != nil {
		a, _ := colorful.MakeColor(s.Border)
		b, _ := colorful.MakeColor(s.Focus)
		border = a.BlendRgb(b, utils.Clamp(glow, 0, 1))
	}
	drawButton(dst, r, s.Fill, border, false)
}

var (
	defaultButtonStyle = ButtonStyle{Fill: colButton, Hover: colButtonHover, Border: colButtonBorder}
	detailPanelStyle   = PanelStyle{Fill: colPanel, Border: colPanelBorder}
	searchInputStyle   = TextInputStyle{Fill: colPanel, Border: colButtonBorder, Focus: colFocus}
)
