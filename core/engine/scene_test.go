package engine

import (
	"io"
	"math"
	"testing"

	"github.com/ingyamilmolinar/holostack/core/model"
	"github.com/ingyamilmolinar/holostack/core/motion"
	"github.com/ingyamilmolinar/holostack/core/nav"
	game_log "github.com/ingyamilmolinar/holostack/internal/log"
)

var testLogger = game_log.New(io.Discard, game_log.LevelError)

func newScene() *Scene {
	return NewScene(model.DefaultCatalog(), DefaultConfig(), testLogger)
}

func drain(s *Scene) []Status {
	var out []Status
	for {
		select {
		case st := <-s.Events:
			out = append(out, st)
		default:
			return out
		}
	}
}

func TestStatusReadout(t *testing.T) {
	s := newScene()
	s.Apply(nav.Intent{Kind: nav.AdvanceCategory, Dir: 1})
	s.Apply(nav.Intent{Kind: nav.AdvanceCard, Dir: 1})
	st := s.Status()
	if st.CategoryName != "Backend" || st.CardIndex != 1 || st.CardCount != 6 {
		t.Fatalf("status=%+v", st)
	}
	if got := st.String(); got != "Category: Backend  Card: 2 / 6" {
		t.Fatalf("readout=%q", got)
	}
	if ev := drain(s); len(ev) != 2 {
		t.Fatalf("events=%v want 2", ev)
	}
}

func TestNoEventForNoop(t *testing.T) {
	s := newScene()
	s.Apply(nav.Intent{Kind: nav.AdvanceCategory, Dir: -1})
	s.Input().Wheel(-1)
	s.Input().PrevCard()
	if ev := drain(s); len(ev) != 0 {
		t.Fatalf("no-op intents produced events %v", ev)
	}
}

func TestGestureDrivesMotion(t *testing.T) {
	s := newScene()
	s.Input().Wheel(1)
	for i := 0; i < 600; i++ {
		s.Frame(1.0 / 60)
	}
	want := s.Config().Motion.RowSpacing
	if math.Abs(s.Motion().StackY()-want) > 1e-3 {
		t.Fatalf("stackY=%v want %v", s.Motion().StackY(), want)
	}
	if u := s.Uniforms(model.CardID{Category: 1}); u.Dim != 0 {
		t.Fatalf("active row dimmed")
	}
	if u := s.Uniforms(model.CardID{Category: 0}); u.Dim != 1 {
		t.Fatalf("inactive row not dimmed")
	}
	if s.Frames() != 600 {
		t.Fatalf("frames=%d", s.Frames())
	}
}

func TestSelectDismissCallbacks(t *testing.T) {
	s := newScene()
	var opened model.Card
	dismissed := 0
	s.OnSelect = func(_ model.CardID, c model.Card) { opened = c }
	s.OnDismiss = func() { dismissed++ }

	s.Apply(nav.Intent{Kind: nav.AdvanceCategory, Dir: 1})
	s.Apply(nav.Intent{Kind: nav.AdvanceCategory, Dir: 1})
	s.Apply(nav.Intent{Kind: nav.AdvanceCard, Dir: 1})
	if !s.SelectActive() {
		t.Fatalf("select active failed")
	}
	if opened.Title != "Redis" {
		t.Fatalf("opened=%q want Redis", opened.Title)
	}
	if st := s.Status(); !st.ModalOpen || st.CategoryIndex != 2 || st.CardIndex != 1 {
		t.Fatalf("status after select=%+v", st)
	}
	s.Dismiss()
	s.Dismiss()
	if dismissed != 1 {
		t.Fatalf("dismissed=%d want 1", dismissed)
	}
	if st := s.Status(); st.ModalOpen || st.CategoryIndex != 2 || st.CardIndex != 1 {
		t.Fatalf("status after dismiss=%+v", st)
	}
}

func TestPreviewIsReadOnly(t *testing.T) {
	s := newScene()
	if s.Preview() != nil {
		t.Fatalf("preview without selection")
	}
	s.Select(model.CardID{Category: 4, Index: 2})
	p := s.Preview()
	if p == nil || !p.ReadOnly() {
		t.Fatalf("preview=%v", p)
	}
	if p.Catalog().Len() != 1 || p.Catalog().Name(0) != "AI" || p.Catalog().Card(model.CardID{}).Title != "Vector DB" {
		t.Fatalf("preview catalog wrong")
	}
	if p.Select(model.CardID{}) {
		t.Fatalf("read-only scene accepted selection")
	}
	// the preview animates independently of its parent
	p.Hover(model.CardID{}, motion.Vec2{X: 0.8, Y: 0.8})
	p.Frame(0.5)
	if p.Uniforms(model.CardID{}).Hover == 0 {
		t.Fatalf("preview hover did not animate")
	}
	if s.Uniforms(model.CardID{Category: 4, Index: 2}).Hover != 0 {
		t.Fatalf("preview hover leaked into parent")
	}
}

func TestHoverUnknownCardLeaves(t *testing.T) {
	s := newScene()
	s.Hover(model.CardID{Category: 0, Index: 1}, motion.Vec2{X: 0.1, Y: 0.1})
	if !s.HoverState().Active {
		t.Fatalf("hover not recorded")
	}
	s.Hover(model.CardID{Category: 9}, motion.Vec2{})
	if s.HoverState().Active {
		t.Fatalf("hover on missing card kept")
	}
}

func TestClose(t *testing.T) {
	s := newScene()
	s.Input().Wheel(1)
	s.Select(model.CardID{Category: 1})
	s.Hover(model.CardID{}, motion.Center)
	s.Close()
	if st := s.State(); st.CategoryIndex != 0 || st.ModalOpen() {
		t.Fatalf("state after close=%+v", st)
	}
	if s.HoverState().Active || s.Input().Dragging() {
		t.Fatalf("ephemeral state survived close")
	}
}
