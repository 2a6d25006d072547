package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/ingyamilmolinar/holostack/core/model"
)

/* ------------------------------------------------------------------
   cache 1×1 images per colour
   ------------------------------------------------------------------ */

var pixelCache = map[string]*ebiten.Image{}

func key(c color.Color) string {
	r, g, b, a := c.RGBA()
	return fmt.Sprintf("%d_%d_%d_%d", r, g, b, a)
}

func pixel(c color.Color) *ebiten.Image {
	k := key(c)
	if img, ok := pixelCache[k]; ok {
		return img
	}
	img := ebiten.NewImage(1, 1)
	img.Fill(c)
	pixelCache[k] = img
	return img
}

/* ------------------------------------------------------------------
   card label textures, one per distinct title/subtitle pair
   ------------------------------------------------------------------ */

const (
	labelTexW = 512
	labelTexH = 256
)

var labelCache = map[model.Card]*ebiten.Image{}

// labelTexture draws the title in bold with the optional subtitle below it,
// left aligned on a transparent 512×256 canvas.
func labelTexture(c model.Card) *ebiten.Image {
	k := model.Card{Title: c.Title, Subtitle: c.Subtitle}
	if img, ok := labelCache[k]; ok {
		return img
	}
	img := ebiten.NewImage(labelTexW, labelTexH)

	title := boldFace(44)
	op := &text.DrawOptions{}
	op.GeoM.Translate(20, 12)
	op.ColorScale.ScaleWithColor(colLabel)
	text.Draw(img, truncate(c.Title, title, labelTexW-40), title, op)

	if c.HasSubtitle() {
		sub := sansFace(28)
		op = &text.DrawOptions{}
		op.GeoM.Translate(20, 72)
		op.ColorScale.ScaleWithColor(colLabel)
		op.ColorScale.ScaleAlpha(0.85)
		text.Draw(img, truncate(c.Subtitle, sub, labelTexW-40), sub, op)
	}
	labelCache[k] = img
	return img
}
