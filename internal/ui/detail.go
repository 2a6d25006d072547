package ui

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/ingyamilmolinar/holostack/core/engine"
	"github.com/ingyamilmolinar/holostack/core/model"
	game_log "github.com/ingyamilmolinar/holostack/internal/log"
)

const (
	detailPad          = 24
	noDescription      = "Detailed description coming soon…"
	detailCopyHint     = "C  copy    Esc  close"
	detailTitleSize    = 30
	detailSubtitleSize = 18
)

// detailView is the modal shown while a card is selected. It owns a
// read-only single-card scene that animates on its own.
type detailView struct {
	id      model.CardID
	card    model.Card
	preview *engine.Scene
	cam     *Camera
	rowYaw  float64
	logger  *game_log.Logger

	panel    image.Rectangle
	closeBtn *Button
	copyBtn  *Button
	meshes   []cardMesh
	notice   string
	pressed  bool // a press started inside the panel

	onClose func()
}

func newDetailView(id model.CardID, c model.Card, preview *engine.Scene, rowYaw float64, logger *game_log.Logger, onClose func()) *detailView {
	d := &detailView{
		id:      id,
		card:    c,
		preview: preview,
		cam:     NewCamera(),
		rowYaw:  rowYaw,
		logger:  logger,
		onClose: onClose,
	}
	d.closeBtn = NewButton("Close", defaultButtonStyle, func() { d.onClose() })
	d.copyBtn = NewButton("Copy", defaultButtonStyle, d.copy)
	return d
}

// Layout centres the panel in a w×h screen. The preview takes the left part.
func (d *detailView) Layout(w, h int) {
	pw := min(w*7/10, 960)
	ph := min(h*7/10, 560)
	x0, y0 := (w-pw)/2, (h-ph)/2
	d.panel = image.Rect(x0, y0, x0+pw, y0+ph)
	d.cam.Viewport = image.Rect(x0+detailPad, y0+detailPad, x0+pw*45/100, y0+ph-detailPad)
	d.closeBtn.SetRect(image.Rect(d.panel.Max.X-detailPad-90, y0+detailPad, d.panel.Max.X-detailPad, y0+detailPad+30))
	d.copyBtn.SetRect(image.Rect(d.textLeft(), d.panel.Max.Y-detailPad-30, d.textLeft()+90, d.panel.Max.Y-detailPad))
}

func (d *detailView) textLeft() int { return d.cam.Viewport.Max.X + detailPad }

// Text is what the copy action puts on the clipboard.
func (d *detailView) Text() string {
	if d.card.HasSubtitle() {
		return d.card.Title + "\n" + d.card.Subtitle
	}
	return d.card.Title
}

func (d *detailView) copy() {
	if err := copyToClipboard(d.Text()); err != nil {
		d.logger.Warnf("[UI] copy %s failed: %v", d.id, err)
		d.notice = "Copy failed"
		return
	}
	d.logger.Debugf("[UI] copied %s", d.id)
	d.notice = "Copied"
}

// Update handles the mouse while the panel is open. A press that starts
// outside the panel closes it.
func (d *detailView) Update(mx, my int, left, leftPrev bool) {
	pressEdge := left && !leftPrev
	if pressEdge {
		d.pressed = image.Pt(mx, my).In(d.panel)
		if !d.pressed {
			d.onClose()
			return
		}
	}
	btnDown := left && d.pressed
	if d.closeBtn.Handle(mx, my, btnDown) {
		return
	}
	d.copyBtn.Handle(mx, my, btnDown)

	if id, uv, ok := HitTest(d.meshes, float64(mx), float64(my)); ok && image.Pt(mx, my).In(d.cam.Viewport) {
		d.preview.Hover(id, uv)
	} else {
		d.preview.Leave()
	}
}

// Tap handles a touch tap: buttons first, and a tap outside the panel
// closes it.
func (d *detailView) Tap(x, y int) {
	if !image.Pt(x, y).In(d.panel) {
		d.onClose()
		return
	}
	if !d.closeBtn.Tap(x, y) {
		d.copyBtn.Tap(x, y)
	}
}

// Frame advances the preview scene and reprojects it.
func (d *detailView) Frame(dt float64) {
	d.preview.Frame(dt)
	d.meshes = d.view().Meshes()
}

func (d *detailView) view() stackView {
	return stackView{scene: d.preview, cam: d.cam, rowYaw: d.rowYaw}
}

func (d *detailView) Draw(dst *ebiten.Image, shader *ebiten.Shader) {
	b := dst.Bounds()
	drawRect(dst, b, colScrim, true)
	detailPanelStyle.Draw(dst, d.panel)

	vp := dst.SubImage(d.cam.Viewport).(*ebiten.Image)
	vp.Fill(colBackground)
	drawStack(vp, d.view(), d.meshes, shader)

	x := float64(d.textLeft())
	maxW := float64(d.panel.Max.X-detailPad) - x
	title := boldFace(detailTitleSize)
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, float64(d.panel.Min.Y+detailPad+40))
	op.ColorScale.ScaleWithColor(colLabel)
	text.Draw(dst, truncate(d.card.Title, title, maxW), title, op)

	desc := d.card.Subtitle
	if !d.card.HasSubtitle() {
		desc = noDescription
	}
	sub := sansFace(detailSubtitleSize)
	op = &text.DrawOptions{}
	op.GeoM.Translate(x, float64(d.panel.Min.Y+detailPad+90))
	op.ColorScale.ScaleWithColor(colMuted)
	text.Draw(dst, truncate(desc, sub, maxW), sub, op)

	hint := sansFace(13)
	op = &text.DrawOptions{}
	op.GeoM.Translate(x+100, float64(d.copyBtn.Rect().Min.Y+8))
	op.ColorScale.ScaleWithColor(colMuted)
	msg := detailCopyHint
	if d.notice != "" {
		msg = d.notice + "    " + msg
	}
	text.Draw(dst, msg, hint, op)

	d.closeBtn.Draw(dst)
	d.copyBtn.Draw(dst)
}
