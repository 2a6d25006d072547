package ui

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	colBackground = hex("#0b0e1a") // also the fog colour
	colLabel      = hex("#e2e8f0")
	colRowTitle   = hex("#cbd5e1")
	colWire       = withAlpha(hex("#b6c2cf"), 0.22)

	colPanel       = withAlpha(hex("#0f172a"), 0.94)
	colPanelBorder = hex("#334155")
	colScrim       = withAlpha(hex("#020617"), 0.6)
	colMuted       = hex("#94a3b8")

	colButton       = hex("#1e293b")
	colButtonHover  = hex("#334155")
	colButtonBorder = hex("#64748b")
	colFocus        = hex("#38bdf8")
)

func hex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// withAlpha returns c as a non-premultiplied colour with alpha a in [0,1].
func withAlpha(c colorful.Color, a float64) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(a*255 + 0.5)}
}
