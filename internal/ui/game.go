package ui

import (
	"fmt"
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/ingyamilmolinar/holostack/core/engine"
	"github.com/ingyamilmolinar/holostack/core/model"
	"github.com/ingyamilmolinar/holostack/core/nav"
	game_log "github.com/ingyamilmolinar/holostack/internal/log"
	"github.com/ingyamilmolinar/holostack/internal/utils"
)

const (
	clickSlop    = 6 // px a press may travel and still count as a click
	controlQueue = 32
)

/* ───────────────────────── data types ───────────────────────── */

// Options are the host settings that are not part of the scene.
type Options struct {
	RowYaw float64 // radians about Y applied to every row
}

func DefaultOptions() Options { return Options{RowYaw: defaultYaw} }

// Control is a request posted from outside the game loop, such as the fyne
// panel. It is applied on the next Update.
type Control struct {
	Intent  nav.Intent
	Open    bool // open the active card; Intent is ignored
	Dismiss bool // close the detail view; Intent is ignored
}

type pressState struct {
	active   bool // a drag gesture is in progress
	onButton bool
	x, y     int
}

// touchState follows the first finger down. A touch that lifts within
// clickSlop of where it started, without a swipe step, is a tap.
type touchState struct {
	active  bool
	id      ebiten.TouchID
	x0, y0  int
	x, y    int
	far     int // largest travel from the start on either axis
	stepped bool
}

func (t *touchState) track(x, y int) {
	t.x, t.y = x, y
	t.far = max(t.far, utils.Abs(x-t.x0), utils.Abs(y-t.y0))
}

func (t touchState) isTap() bool { return !t.stepped && t.far <= clickSlop }

type Game struct {
	/* subsystems */
	scene  *engine.Scene
	cam    *Camera
	opts   Options
	logger *game_log.Logger

	/* visuals */
	shader      *ebiten.Shader
	shaderTried bool
	meshes      []cardMesh // last projection, used for drawing and hit tests
	frame       int64

	/* controls */
	prevBtn   *Button
	nextBtn   *Button
	detail    *detailView
	search    *TextInput
	searching bool
	notice    string
	controls  chan Control

	/* input state */
	last     time.Time
	leftPrev bool
	press    pressState
	touch    touchState
	touchIDs []ebiten.TouchID

	/* misc */
	winW, winH int
}

/* ───────────────────── constructor & layout ─────────────────── */

func New(scene *engine.Scene, opts Options, logger *game_log.Logger) *Game {
	g := &Game{
		scene:    scene,
		cam:      NewCamera(),
		opts:     opts,
		logger:   logger,
		controls: make(chan Control, controlQueue),
	}
	g.prevBtn = NewButton("◄  Prev", defaultButtonStyle, func() { g.scene.Input().PrevCard() })
	g.nextBtn = NewButton("Next  ►", defaultButtonStyle, func() { g.scene.Input().NextCard() })
	g.search = NewTextInput(image.Rectangle{}, searchInputStyle)
	g.search.Placeholder = "Search cards"

	scene.OnSelect = g.openDetail
	scene.OnDismiss = g.closeDetail
	if st := scene.State(); st.ModalOpen() {
		g.openDetail(st.SelectedID, *st.Selected)
	}
	g.initJS()
	return g
}

func (g *Game) Layout(w, h int) (int, int) {
	if w != g.winW || h != g.winH {
		g.logger.Debugf("[UI] Layout: winW: %d, winH: %d", w, h)
	}
	g.winW, g.winH = w, h
	g.cam.Viewport = image.Rect(0, 0, w, h)
	g.prevBtn.SetRect(image.Rect(w/2-130, h-56, w/2-10, h-20))
	g.nextBtn.SetRect(image.Rect(w/2+10, h-56, w/2+130, h-20))
	g.search.Rect = image.Rect(w/2-180, 16, w/2+180, 50)
	if g.detail != nil {
		g.detail.Layout(w, h)
	}
	return w, h
}

// Scene returns the scene the game renders.
func (g *Game) Scene() *engine.Scene { return g.scene }

// Post queues c for the next Update without blocking. It reports false when
// the queue is full.
func (g *Game) Post(c Control) bool {
	select {
	case g.controls <- c:
		return true
	default:
		g.logger.Warnf("[UI] control queue full, dropped %+v", c)
		return false
	}
}

/* ─────────────────────── detail view ─────────────────────── */

func (g *Game) openDetail(id model.CardID, c model.Card) {
	preview := g.scene.Preview()
	if preview == nil {
		return
	}
	if g.detail != nil {
		g.detail.preview.Close()
	}
	g.closeSearch()
	g.scene.Leave()
	g.scene.Input().PointerCancel()
	g.scene.Input().TouchEnd()
	g.press = pressState{}
	g.detail = newDetailView(id, c, preview, g.opts.RowYaw, g.logger, g.scene.Dismiss)
	if g.winW > 0 {
		g.detail.Layout(g.winW, g.winH)
	}
	g.logger.Infof("[UI] detail open: %s", c.Title)
}

func (g *Game) closeDetail() {
	if g.detail == nil {
		return
	}
	g.detail.preview.Close()
	g.detail = nil
	g.logger.Debugf("[UI] detail closed")
}

/* ─────────────── Update ─────────────────────────────────────────────────── */

func (g *Game) Update() error {
	t := now()
	dt := 0.0
	if !g.last.IsZero() {
		dt = t.Sub(g.last).Seconds()
	}
	g.last = t

	g.drainControls()
	g.handleKeys()

	mx, my := cursorPosition()
	left := isMouseButtonPressed(ebiten.MouseButtonLeft)
	if g.detail != nil {
		g.detail.Update(mx, my, left, g.leftPrev)
	} else {
		g.handlePointer(mx, my, left)
		g.handleWheel()
	}
	g.leftPrev = left
	g.handleTouch()

	g.scene.Frame(dt)
	if g.detail != nil {
		g.detail.Frame(dt)
	}
	g.meshes = g.view().Meshes()
	g.frame++
	g.reportStateJS()
	return nil
}

func (g *Game) view() stackView {
	return stackView{scene: g.scene, cam: g.cam, rowYaw: g.opts.RowYaw}
}

func (g *Game) drainControls() {
	for {
		select {
		case c := <-g.controls:
			switch {
			case c.Dismiss:
				g.scene.Dismiss()
			case c.Open:
				if g.detail == nil {
					g.scene.SelectActive()
				}
			case g.detail == nil:
				g.scene.Apply(c.Intent)
			}
		default:
			return
		}
	}
}

func (g *Game) handleKeys() {
	if g.searching {
		g.handleSearchKeys()
		return
	}
	if isKeyJustPressed(ebiten.KeyEscape) {
		g.scene.Dismiss()
	}
	if g.detail != nil {
		if isKeyJustPressed(ebiten.KeyC) {
			g.detail.copy()
		}
		return
	}
	in := g.scene.Input()
	switch {
	case isKeyJustPressed(ebiten.KeyArrowLeft):
		in.PrevCard()
	case isKeyJustPressed(ebiten.KeyArrowRight):
		in.NextCard()
	case isKeyJustPressed(ebiten.KeyArrowUp):
		in.Wheel(-1)
	case isKeyJustPressed(ebiten.KeyArrowDown):
		in.Wheel(1)
	case isKeyJustPressed(ebiten.KeyEnter), isKeyJustPressed(ebiten.KeyNumpadEnter):
		g.scene.SelectActive()
	case isKeyJustPressed(ebiten.KeySlash):
		g.openSearch()
	}
}

/* ─────────────── search ─────────────────────────────────────────────────── */

// openSearch focuses the search box. Typing starts on the next frame so the
// slash itself is not entered.
func (g *Game) openSearch() {
	g.searching = true
	g.notice = ""
	g.search.SetText("")
	g.search.Focus()
}

func (g *Game) closeSearch() {
	g.searching = false
	g.search.focused = false
}

func (g *Game) handleSearchKeys() {
	switch {
	case isKeyJustPressed(ebiten.KeyEscape):
		g.closeSearch()
		return
	case isKeyJustPressed(ebiten.KeyEnter), isKeyJustPressed(ebiten.KeyNumpadEnter):
		g.submitSearch()
		return
	}
	g.search.Update()
	if !g.search.Focused() {
		g.closeSearch()
	}
}

// submitSearch opens the best match for the typed query.
func (g *Game) submitSearch() {
	q := g.search.Value()
	g.closeSearch()
	id, ok := g.scene.Catalog().Find(q)
	if !ok {
		g.logger.Debugf("[UI] search %q matched nothing", q)
		g.notice = fmt.Sprintf("No card matches %q", q)
		return
	}
	g.logger.Debugf("[UI] search %q -> %s", q, id)
	g.scene.Select(id)
}

// handlePointer turns mouse state into hover, drag and click input. A press
// that starts on a button never becomes a drag.
func (g *Game) handlePointer(mx, my int, left bool) {
	in := g.scene.Input()
	pressEdge := left && !g.leftPrev
	btnDown := left && (pressEdge || g.press.onButton)
	g.prevBtn.Handle(mx, my, btnDown)
	g.nextBtn.Handle(mx, my, btnDown)
	onButton := g.prevBtn.Contains(mx, my) || g.nextBtn.Contains(mx, my) ||
		g.searching && image.Pt(mx, my).In(g.search.Rect)

	fx, fy := float64(mx), float64(my)
	id, uv, hit := HitTest(g.meshes, fx, fy)
	if hit && !onButton && image.Pt(mx, my).In(g.cam.Viewport) {
		g.scene.Hover(id, uv)
	} else {
		g.scene.Leave()
	}

	switch {
	case pressEdge && onButton:
		g.press = pressState{onButton: true}
	case pressEdge:
		g.press = pressState{active: true, x: mx, y: my}
		in.PointerDown(fy)
	case left && g.press.active:
		in.PointerMove(fy)
	case !left && g.leftPrev:
		if g.press.active {
			if hit && g.isClick(mx, my) {
				g.scene.Select(id)
			}
			in.PointerUp()
		}
		g.press = pressState{}
	}
}

func (g *Game) isClick(mx, my int) bool {
	return g.scene.Input().DragDistance() <= clickSlop &&
		utils.Abs(mx-g.press.x) <= clickSlop && utils.Abs(my-g.press.y) <= clickSlop
}

// handleWheel forwards the vertical wheel. Ebiten reports scrolling down as
// a negative offset; the unifier wants down positive.
func (g *Game) handleWheel() {
	_, wy := wheel()
	if wy == 0 {
		return
	}
	if !g.scene.Input().Wheel(-wy) {
		g.logger.Debugf("[UI] wheel %.2f passed through", wy)
	}
}

// handleTouch follows the first finger down until it lifts. Swipes feed the
// unifier while no detail view is open; taps go where a click would.
func (g *Game) handleTouch() {
	g.touchIDs = appendTouchIDs(g.touchIDs[:0])
	in := g.scene.Input()
	gestures := g.detail == nil
	if g.touch.active {
		for _, id := range g.touchIDs {
			if id == g.touch.id {
				x, y := touchPosition(id)
				g.touch.track(x, y)
				if gestures && in.TouchMove(float64(y)) {
					g.touch.stepped = true
				}
				return
			}
		}
		t := g.touch
		g.touch = touchState{}
		in.TouchEnd()
		if t.isTap() {
			g.tap(t.x, t.y)
		}
		return
	}
	if len(g.touchIDs) > 0 {
		id := g.touchIDs[0]
		x, y := touchPosition(id)
		g.touch = touchState{active: true, id: id, x0: x, y0: y, x: x, y: y}
		if gestures {
			in.TouchStart(float64(y))
		}
	}
}

// tap routes a touch tap the way a mouse click would go.
func (g *Game) tap(x, y int) {
	g.logger.Debugf("[UI] tap at %d,%d", x, y)
	if g.detail != nil {
		g.detail.Tap(x, y)
		return
	}
	if g.searching && !image.Pt(x, y).In(g.search.Rect) {
		g.closeSearch()
	}
	if g.prevBtn.Tap(x, y) || g.nextBtn.Tap(x, y) || !image.Pt(x, y).In(g.cam.Viewport) {
		return
	}
	if id, _, ok := HitTest(g.meshes, float64(x), float64(y)); ok {
		g.scene.Select(id)
	}
}

/* ─────────────── Draw ─────────────────────────────────────────────────── */

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colBackground)
	shader := g.holoShader()
	drawStack(screen, g.view(), g.meshes, shader)
	g.drawHUD(screen)
	if g.detail != nil {
		g.detail.Draw(screen, shader)
	}
}

func (g *Game) holoShader() *ebiten.Shader {
	if !g.shaderTried {
		g.shaderTried = true
		s, err := loadHoloShader()
		if err != nil {
			g.logger.Warnf("[UI] holo shader unavailable, drawing flat cards: %v", err)
		}
		g.shader = s
	}
	return g.shader
}

// drawStack draws row titles, then the cards back to front.
func drawStack(dst *ebiten.Image, v stackView, meshes []cardMesh, shader *ebiten.Shader) {
	c := v.scene.Catalog()
	for i := 0; i < c.Len(); i++ {
		x, y, size, ok := v.TitleAnchor(i)
		if !ok || size < 4 {
			continue
		}
		op := &text.DrawOptions{}
		op.GeoM.Translate(x, y)
		op.SecondaryAlign = text.AlignCenter
		op.ColorScale.ScaleWithColor(colRowTitle)
		text.Draw(dst, c.Name(i), sansFace(size), op)
	}
	for i := range meshes {
		cm := &meshes[i]
		u := v.scene.Uniforms(cm.ID)
		drawHoloCard(dst, cm, u, shader)
		drawWire(dst, cm)
		drawLabel(dst, cm, u.Dim)
	}
}

func (g *Game) drawHUD(dst *ebiten.Image) {
	st := g.scene.Status()
	op := &text.DrawOptions{}
	op.GeoM.Translate(20, 16)
	op.LineSpacing = 22
	op.ColorScale.ScaleWithColor(colLabel)
	text.Draw(dst, statusText(st), sansFace(16), op)

	if g.notice != "" {
		op := &text.DrawOptions{}
		op.GeoM.Translate(20, 64)
		op.ColorScale.ScaleWithColor(colMuted)
		text.Draw(dst, g.notice, sansFace(14), op)
	}
	if g.searching {
		g.search.Draw(dst)
	}
	g.prevBtn.Draw(dst)
	g.nextBtn.Draw(dst)
}

// statusText is the two-line readout drawn in the corner.
func statusText(st engine.Status) string {
	return fmt.Sprintf("Category: %s\nCard: %d / %d", st.CategoryName, st.CardIndex+1, st.CardCount)
}
