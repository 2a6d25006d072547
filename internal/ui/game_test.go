package ui

import (
	"errors"
	"image"
	"io"
	"math"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/ingyamilmolinar/holostack/core/engine"
	"github.com/ingyamilmolinar/holostack/core/model"
	"github.com/ingyamilmolinar/holostack/core/nav"
	game_log "github.com/ingyamilmolinar/holostack/internal/log"
)

var testLogger *game_log.Logger

func init() {
	testLogger = game_log.New(io.Discard, game_log.LevelError)
}

// fakeInput backs the input seams with plain fields.
type fakeInput struct {
	x, y    int
	left    bool
	keys    map[ebiten.Key]bool // just pressed
	held    map[ebiten.Key]bool
	chars   []rune
	wheelY  float64
	touches map[ebiten.TouchID]image.Point
	clock   time.Time
}

func installInput(t *testing.T) *fakeInput {
	f := &fakeInput{
		keys:    map[ebiten.Key]bool{},
		held:    map[ebiten.Key]bool{},
		touches: map[ebiten.TouchID]image.Point{},
		clock:   time.Unix(1000, 0),
	}
	restore := SetInputForTest(
		func() (int, int) { return f.x, f.y },
		func(b ebiten.MouseButton) bool { return b == ebiten.MouseButtonLeft && f.left },
		func(k ebiten.Key) bool { return f.keys[k] },
		func() (float64, float64) { return 0, f.wheelY },
		func(ids []ebiten.TouchID) []ebiten.TouchID {
			for id := range f.touches {
				ids = append(ids, id)
			}
			return ids
		},
		func(id ebiten.TouchID) (int, int) {
			p := f.touches[id]
			return p.X, p.Y
		},
	)
	oldNow, oldHeld, oldChars := now, isKeyPressed, appendInputChars
	now = func() time.Time { return f.clock }
	isKeyPressed = func(k ebiten.Key) bool { return f.held[k] }
	appendInputChars = func(rs []rune) []rune { return append(rs, f.chars...) }
	t.Cleanup(func() {
		restore()
		now, isKeyPressed, appendInputChars = oldNow, oldHeld, oldChars
	})
	return f
}

// step runs one Update 16ms after the previous one. Keys and wheel are
// one-shot.
func (f *fakeInput) step(t *testing.T, g *Game) {
	t.Helper()
	f.clock = f.clock.Add(16 * time.Millisecond)
	if err := g.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}
	f.keys = map[ebiten.Key]bool{}
	f.chars = nil
	f.wheelY = 0
}

// tap puts a finger down at (x, y) and lifts it two frames later.
func (f *fakeInput) tap(t *testing.T, g *Game, x, y int) {
	t.Helper()
	f.touches[7] = image.Pt(x, y)
	f.step(t, g)
	f.step(t, g)
	delete(f.touches, 7)
	f.step(t, g)
}

// typeText enters s in one frame, as a fast typist would.
func (f *fakeInput) typeText(t *testing.T, g *Game, s string) {
	t.Helper()
	f.chars = []rune(s)
	f.step(t, g)
}

func (f *fakeInput) press(t *testing.T, g *Game, k ebiten.Key) {
	t.Helper()
	f.keys[k] = true
	f.step(t, g)
}

func (f *fakeInput) click(t *testing.T, g *Game, x, y int) {
	t.Helper()
	f.x, f.y, f.left = x, y, true
	f.step(t, g)
	f.left = false
	f.step(t, g)
}

func newTestGame(t *testing.T) (*Game, *fakeInput) {
	t.Helper()
	f := installInput(t)
	f.x, f.y = -50, -50
	scene := engine.NewScene(model.DefaultCatalog(), engine.DefaultConfig(), testLogger)
	g := New(scene, DefaultOptions(), testLogger)
	g.Layout(1280, 720)
	f.step(t, g)
	return g, f
}

func cardCentre(t *testing.T, g *Game, id model.CardID) (int, int) {
	t.Helper()
	v := meshFor(t, g.meshes, id).Verts[meshSegs/2][meshSegs/2]
	return int(math.Round(v.X)), int(math.Round(v.Y))
}

func TestWheelDownAdvancesCategory(t *testing.T) {
	g, f := newTestGame(t)
	f.wheelY = 1 // scrolling up at the first row is a no-op
	f.step(t, g)
	if st := g.scene.State(); st.CategoryIndex != 0 {
		t.Fatalf("category=%d after wheel up at top", st.CategoryIndex)
	}
	f.wheelY = -1
	f.step(t, g)
	if st := g.scene.State(); st.CategoryIndex != 1 || st.CardIndex != 0 {
		t.Fatalf("state=%+v want category 1", st)
	}
}

func TestKeyboardNavigation(t *testing.T) {
	g, f := newTestGame(t)
	f.press(t, g, ebiten.KeyArrowRight)
	f.press(t, g, ebiten.KeyArrowRight)
	f.press(t, g, ebiten.KeyArrowLeft)
	if st := g.scene.State(); st.CardIndex != 1 {
		t.Fatalf("card=%d want 1", st.CardIndex)
	}
	f.press(t, g, ebiten.KeyEnter)
	st := g.scene.State()
	if !st.ModalOpen() || st.SelectedID != (model.CardID{Index: 1}) || g.detail == nil {
		t.Fatalf("enter did not open the active card: %+v", st)
	}
	if !g.detail.preview.ReadOnly() || g.detail.card.Title != "TypeScript" {
		t.Fatalf("detail=%+v", g.detail.card)
	}
	f.press(t, g, ebiten.KeyEscape)
	if g.scene.State().ModalOpen() || g.detail != nil {
		t.Fatalf("escape did not dismiss")
	}
	if st := g.scene.State(); st.CardIndex != 1 {
		t.Fatalf("dismiss moved the card index to %d", st.CardIndex)
	}
}

func TestPointerDragStepsCategories(t *testing.T) {
	g, f := newTestGame(t)
	f.x, f.y, f.left = 300, 400, true
	f.step(t, g)
	for _, y := range []int{350, 300, 250} {
		f.y = y
		f.step(t, g)
	}
	f.left = false
	f.step(t, g)
	st := g.scene.State()
	if st.CategoryIndex != 2 {
		t.Fatalf("category=%d after a 150px drag, want 2", st.CategoryIndex)
	}
	if st.ModalOpen() {
		t.Fatalf("drag opened a card")
	}
	if g.scene.Input().Dragging() {
		t.Fatalf("drag not released")
	}
}

func TestClickOpensCard(t *testing.T) {
	g, f := newTestGame(t)
	x, y := cardCentre(t, g, model.CardID{})
	f.click(t, g, x, y)
	st := g.scene.State()
	if !st.ModalOpen() || st.SelectedID != (model.CardID{}) {
		t.Fatalf("click did not open card 0/0: %+v", st)
	}
	if g.detail == nil || g.detail.Text() != "React / Next\nHooks, SSR, RSC" {
		t.Fatalf("detail not shown")
	}
}

func TestButtonPressNeverDrags(t *testing.T) {
	g, f := newTestGame(t)
	r := g.nextBtn.Rect()
	f.x, f.y, f.left = r.Min.X+5, r.Min.Y+5, true
	f.step(t, g)
	f.step(t, g) // holding does not repeat
	f.y -= 200
	f.step(t, g)
	f.left = false
	f.step(t, g)
	st := g.scene.State()
	if st.CardIndex != 1 || st.CategoryIndex != 0 {
		t.Fatalf("state=%+v want card 1 in category 0", st)
	}
	r = g.prevBtn.Rect()
	f.click(t, g, r.Min.X+5, r.Min.Y+5)
	f.click(t, g, r.Min.X+5, r.Min.Y+5)
	if st := g.scene.State(); st.CardIndex != 0 {
		t.Fatalf("prev did not clamp at 0: %+v", st)
	}
}

func TestDetailBlocksGestures(t *testing.T) {
	g, f := newTestGame(t)
	f.press(t, g, ebiten.KeyEnter)
	f.wheelY = -1
	f.step(t, g)
	f.press(t, g, ebiten.KeyArrowRight)
	st := g.scene.State()
	if st.CategoryIndex != 0 || st.CardIndex != 0 || !st.ModalOpen() {
		t.Fatalf("gestures leaked through the detail view: %+v", st)
	}
	if g.scene.HoverState().Active {
		t.Fatalf("main scene hovered under the detail view")
	}
	f.click(t, g, 5, 5)
	if g.scene.State().ModalOpen() {
		t.Fatalf("click outside the panel did not dismiss")
	}
}

func TestCloseButtonDismisses(t *testing.T) {
	g, f := newTestGame(t)
	f.press(t, g, ebiten.KeyEnter)
	r := g.detail.closeBtn.Rect()
	f.click(t, g, r.Min.X+3, r.Min.Y+3)
	if g.scene.State().ModalOpen() || g.detail != nil {
		t.Fatalf("close button did not dismiss")
	}
}

func TestCopyCard(t *testing.T) {
	g, f := newTestGame(t)
	var copied string
	orig := copyToClipboard
	copyToClipboard = func(s string) error { copied = s; return nil }
	defer func() { copyToClipboard = orig }()

	f.press(t, g, ebiten.KeyArrowDown)
	f.press(t, g, ebiten.KeyEnter)
	f.press(t, g, ebiten.KeyC)
	if copied != "Node / Express\nREST, WS" || g.detail.notice != "Copied" {
		t.Fatalf("copied=%q notice=%q", copied, g.detail.notice)
	}

	copyToClipboard = func(string) error { return errors.New("no clipboard") }
	f.press(t, g, ebiten.KeyC)
	if g.detail.notice != "Copy failed" {
		t.Fatalf("notice=%q", g.detail.notice)
	}
}

func TestControlsFromOtherGoroutines(t *testing.T) {
	g, f := newTestGame(t)
	done := make(chan bool)
	go func() { done <- g.Post(Control{Intent: nav.Intent{Kind: nav.AdvanceCategory, Dir: 1}}) }()
	if !<-done {
		t.Fatalf("post rejected")
	}
	g.Post(Control{Open: true})
	f.step(t, g)
	st := g.scene.State()
	if st.CategoryIndex != 1 || !st.ModalOpen() {
		t.Fatalf("state=%+v want category 1 open", st)
	}
	preview := g.detail.preview
	g.Post(Control{Open: true})
	f.step(t, g)
	if g.detail.preview != preview {
		t.Fatalf("open while open replaced the detail view")
	}
	g.Post(Control{Intent: nav.Intent{Kind: nav.AdvanceCard, Dir: 1}})
	g.Post(Control{Dismiss: true})
	f.step(t, g)
	if st := g.scene.State(); st.ModalOpen() || st.CardIndex != 0 {
		t.Fatalf("state=%+v: intent applied under the detail view", st)
	}
	for i := 0; i < controlQueue; i++ {
		g.Post(Control{})
	}
	if g.Post(Control{}) {
		t.Fatalf("post blocked or accepted past capacity")
	}
}

func TestTouchSwipeOncePerGesture(t *testing.T) {
	g, f := newTestGame(t)
	f.touches[1] = image.Pt(300, 400)
	f.step(t, g)
	for _, y := range []int{396, 380, 300, 200} {
		f.touches[1] = image.Pt(300, y)
		f.step(t, g)
	}
	delete(f.touches, 1)
	f.step(t, g)
	if st := g.scene.State(); st.CategoryIndex != 1 {
		t.Fatalf("category=%d want exactly one step", st.CategoryIndex)
	}
	f.touches[2] = image.Pt(300, 400)
	f.step(t, g)
	f.touches[2] = image.Pt(300, 420)
	f.step(t, g)
	if st := g.scene.State(); st.CategoryIndex != 0 {
		t.Fatalf("swipe down: category=%d want 0", st.CategoryIndex)
	}
	delete(f.touches, 2)
	f.step(t, g)
	if g.scene.State().ModalOpen() {
		t.Fatalf("a swipe was taken for a tap")
	}
}

func TestTouchTapsActLikeClicks(t *testing.T) {
	g, f := newTestGame(t)
	r := g.nextBtn.Rect()
	f.tap(t, g, r.Min.X+5, r.Min.Y+5)
	if st := g.scene.State(); st.CardIndex != 1 {
		t.Fatalf("tap on next: card=%d want 1", st.CardIndex)
	}
	r = g.prevBtn.Rect()
	f.tap(t, g, r.Min.X+5, r.Min.Y+5)
	if st := g.scene.State(); st.CardIndex != 0 {
		t.Fatalf("tap on prev: card=%d want 0", st.CardIndex)
	}

	for i := 0; i < 120; i++ {
		f.step(t, g)
	}
	x, y := cardCentre(t, g, model.CardID{})
	f.tap(t, g, x, y)
	if st := g.scene.State(); !st.ModalOpen() || st.SelectedID != (model.CardID{}) || g.detail == nil {
		t.Fatalf("tap on a card did not open it: %+v", st)
	}

	r = g.detail.closeBtn.Rect()
	f.tap(t, g, r.Min.X+3, r.Min.Y+3)
	if g.scene.State().ModalOpen() || g.detail != nil {
		t.Fatalf("tap on close did not dismiss")
	}

	f.press(t, g, ebiten.KeyEnter)
	f.tap(t, g, 5, 5)
	if g.scene.State().ModalOpen() || g.detail != nil {
		t.Fatalf("tap outside the panel did not dismiss")
	}
	if st := g.scene.State(); st.CategoryIndex != 0 || st.CardIndex != 0 {
		t.Fatalf("taps moved the stack: %+v", st)
	}
}

func TestTouchDriftBeyondSlopIsNotATap(t *testing.T) {
	g, f := newTestGame(t)
	r := g.nextBtn.Rect()
	f.touches[3] = image.Pt(r.Min.X+5, r.Min.Y+5)
	f.step(t, g)
	f.touches[3] = image.Pt(r.Min.X+5+clickSlop+1, r.Min.Y+5)
	f.step(t, g)
	delete(f.touches, 3)
	f.step(t, g)
	if st := g.scene.State(); st.CardIndex != 0 {
		t.Fatalf("drifting touch clicked next: %+v", st)
	}
}

func TestSearchOpensBestMatch(t *testing.T) {
	g, f := newTestGame(t)
	f.keys[ebiten.KeySlash] = true
	f.chars = []rune("/")
	f.step(t, g)
	if !g.searching || !g.search.Focused() || g.search.Value() != "" {
		t.Fatalf("slash: searching=%v value=%q", g.searching, g.search.Value())
	}

	f.typeText(t, g, "redx")
	f.held[ebiten.KeyBackspace] = true
	f.step(t, g)
	f.step(t, g) // held, no repeat yet
	f.held[ebiten.KeyBackspace] = false
	f.typeText(t, g, "s")
	f.held[ebiten.KeyArrowLeft] = true
	f.keys[ebiten.KeyArrowLeft] = true
	f.step(t, g)
	f.held[ebiten.KeyArrowLeft] = false
	f.typeText(t, g, "i")
	if g.search.Value() != "redis" {
		t.Fatalf("typed %q want redis", g.search.Value())
	}
	if st := g.scene.State(); st.CardIndex != 0 {
		t.Fatalf("arrow keys navigated while typing: %+v", st)
	}

	f.press(t, g, ebiten.KeyEnter)
	st := g.scene.State()
	if g.searching || !st.ModalOpen() || st.SelectedID != (model.CardID{Category: 2, Index: 1}) {
		t.Fatalf("enter opened %+v", st)
	}
	if g.detail == nil || g.detail.card.Title != "Redis" {
		t.Fatalf("detail not shown for the match")
	}
}

func TestSearchWithoutMatch(t *testing.T) {
	g, f := newTestGame(t)
	f.press(t, g, ebiten.KeySlash)
	f.typeText(t, g, "zzzzqqq")
	f.press(t, g, ebiten.KeyEnter)
	if g.searching || g.scene.State().ModalOpen() {
		t.Fatalf("unmatched search opened a card")
	}
	if g.notice != `No card matches "zzzzqqq"` {
		t.Fatalf("notice=%q", g.notice)
	}

	f.press(t, g, ebiten.KeySlash)
	f.typeText(t, g, "node")
	f.press(t, g, ebiten.KeyEscape)
	if g.searching || g.scene.State().ModalOpen() {
		t.Fatalf("escape did not cancel the search")
	}
	f.press(t, g, ebiten.KeySlash)
	f.click(t, g, 5, 5)
	if g.searching {
		t.Fatalf("click outside the box kept the search open")
	}
}

func TestHoverFollowsPointer(t *testing.T) {
	g, f := newTestGame(t)
	f.x, f.y = cardCentre(t, g, model.CardID{})
	for i := 0; i < 60; i++ {
		f.step(t, g)
	}
	h := g.scene.HoverState()
	if !h.Active || h.Card != (model.CardID{}) {
		t.Fatalf("hover=%+v", h)
	}
	if u := g.scene.Uniforms(model.CardID{}); u.Hover < 0.5 {
		t.Fatalf("hover uniform=%f after 1s", u.Hover)
	}
	f.x, f.y = -50, -50
	f.step(t, g)
	if g.scene.HoverState().Active {
		t.Fatalf("hover kept after leaving")
	}
}

func TestOpenBeforeHostStarts(t *testing.T) {
	installInput(t)
	scene := engine.NewScene(model.DefaultCatalog(), engine.DefaultConfig(), testLogger)
	scene.Select(model.CardID{Category: 3, Index: 2})
	g := New(scene, DefaultOptions(), testLogger)
	g.Layout(800, 600)
	if g.detail == nil || g.detail.card.Title != scene.Catalog().Card(model.CardID{Category: 3, Index: 2}).Title {
		t.Fatalf("pre-selected card not shown")
	}
	if g.detail.panel.Empty() || !g.detail.panel.In(g.cam.Viewport) {
		t.Fatalf("panel=%v viewport=%v", g.detail.panel, g.cam.Viewport)
	}
}

func TestStatusText(t *testing.T) {
	got := statusText(engine.Status{CategoryName: "Data", CardIndex: 2, CardCount: 6})
	if got != "Category: Data\nCard: 3 / 6" {
		t.Fatalf("status=%q", got)
	}
}
