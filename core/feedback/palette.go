package feedback

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ingyamilmolinar/holostack/core/model"
)

// DefaultBase is the card body colour under the foil.
const DefaultBase = "#0f172a"

// Palette returns one base colour per category. A category's own colour
// wins; the rest are derived from DefaultBase by rotating its hue so rows
// stay distinguishable while keeping the same lightness.
func Palette(c *model.Catalog) []colorful.Color {
	base, _ := colorful.Hex(DefaultBase)
	h, ch, l := base.Hcl()
	out := make([]colorful.Color, c.Len())
	for i := range out {
		if hex := c.Color(i); hex != "" {
			if col, err := colorful.Hex(hex); err == nil {
				out[i] = col
				continue
			}
		}
		hue := math.Mod(h+float64(i)*360/float64(max(c.Len(), 1)), 360)
		out[i] = colorful.Hcl(hue, ch, l).Clamped()
	}
	return out
}

// Accent is a bright variant of a base colour, used for labels and the
// active row in hosts without shaders.
func Accent(base colorful.Color) colorful.Color {
	h, _, _ := base.Hcl()
	return colorful.Hcl(h, 0.45, 0.78).Clamped()
}

// Dimmed blends c toward black the same way the shader dims inactive rows.
func Dimmed(c colorful.Color) colorful.Color {
	return c.BlendRgb(colorful.Color{}, 1-dimFactor)
}

// RGB returns c as shader-ready float32 components.
func RGB(c colorful.Color) [3]float32 {
	return [3]float32{float32(c.R), float32(c.G), float32(c.B)}
}
