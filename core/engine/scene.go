package engine

import (
	"fmt"

	"github.com/ingyamilmolinar/holostack/core/feedback"
	"github.com/ingyamilmolinar/holostack/core/input"
	"github.com/ingyamilmolinar/holostack/core/model"
	"github.com/ingyamilmolinar/holostack/core/motion"
	"github.com/ingyamilmolinar/holostack/core/nav"
	game_log "github.com/ingyamilmolinar/holostack/internal/log"
)

// Config gathers the tunables of every scene component.
type Config struct {
	Motion   motion.Config
	Input    input.Config
	Feedback feedback.Config
	ReadOnly bool // ignore selection requests (detail preview)
}

func DefaultConfig() Config {
	return Config{
		Motion:   motion.DefaultConfig(),
		Input:    input.DefaultConfig(),
		Feedback: feedback.DefaultConfig(),
	}
}

// Status is the readout shown next to the scene.
type Status struct {
	CategoryIndex int
	CardIndex     int
	CategoryName  string
	CardCount     int
	ModalOpen     bool
}

func (s Status) String() string {
	return fmt.Sprintf("Category: %s  Card: %d / %d", s.CategoryName, s.CardIndex+1, s.CardCount)
}

// Scene wires the navigator, the input unifier, the motion controller and
// the feedback engine for one catalog. Hosts feed it input between frames
// and call Frame once per rendered frame; nothing in it runs on its own.
type Scene struct {
	catalog  *model.Catalog
	cfg      Config
	nav      *nav.Navigator
	input    *input.Unifier
	motion   *motion.Controller
	feedback *feedback.Engine
	hover    motion.Hover
	logger   *game_log.Logger
	frame    int64

	// Events receives a Status after every state change. Sends never block;
	// a slow reader misses intermediate states.
	Events chan Status

	OnSelect  func(id model.CardID, c model.Card)
	OnDismiss func()
}

func NewScene(c *model.Catalog, cfg Config, logger *game_log.Logger) *Scene {
	s := &Scene{
		catalog:  c,
		cfg:      cfg,
		nav:      nav.New(c, logger),
		motion:   motion.NewController(c, cfg.Motion),
		feedback: feedback.NewEngine(c, cfg.Feedback),
		logger:   logger,
		Events:   make(chan Status, 16),
	}
	s.input = input.New(cfg.Input, s.nav, logger)
	s.input.OnIntent = func(_ nav.Intent, applied bool) {
		if applied {
			s.changed()
		}
	}
	logger.Infof("[SCENE] %d categories, read-only=%t", c.Len(), cfg.ReadOnly)
	return s
}

func (s *Scene) changed() {
	select {
	case s.Events <- s.Status():
	default:
	}
}

func (s *Scene) Catalog() *model.Catalog    { return s.catalog }
func (s *Scene) Config() Config             { return s.cfg }
func (s *Scene) Input() *input.Unifier      { return s.input }
func (s *Scene) Motion() *motion.Controller { return s.motion }
func (s *Scene) Feedback() *feedback.Engine { return s.feedback }
func (s *Scene) State() nav.State           { return s.nav.State() }
func (s *Scene) HoverState() motion.Hover   { return s.hover }
func (s *Scene) ReadOnly() bool             { return s.cfg.ReadOnly }
func (s *Scene) Frames() int64              { return s.frame }

// CanAdvance reports whether the intent would move the navigator.
func (s *Scene) CanAdvance(k nav.Kind, dir int) bool { return s.nav.CanAdvance(k, dir) }

func (s *Scene) Status() Status {
	st := s.nav.State()
	return Status{
		CategoryIndex: st.CategoryIndex,
		CardIndex:     st.CardIndex,
		CategoryName:  s.catalog.Name(st.CategoryIndex),
		CardCount:     s.catalog.CardCount(st.CategoryIndex),
		ModalOpen:     st.ModalOpen(),
	}
}

// Frame advances all damped state by dt seconds. It is the only place state
// progresses over time.
func (s *Scene) Frame(dt float64) {
	st := s.nav.State()
	s.motion.Step(st, s.hover, dt)
	s.feedback.Step(st, s.hover, dt)
	s.frame++
}

// Apply runs an intent that did not come through a gesture, such as a
// control panel button.
func (s *Scene) Apply(i nav.Intent) bool {
	ok := s.nav.Apply(i)
	if ok {
		s.changed()
	}
	return ok
}

// Select opens the detail view for id. Read-only scenes refuse.
func (s *Scene) Select(id model.CardID) bool {
	if s.cfg.ReadOnly {
		return false
	}
	if !s.nav.Select(id) {
		return false
	}
	s.logger.Infof("[SCENE] open %v", id)
	if s.OnSelect != nil {
		s.OnSelect(id, s.catalog.Card(id))
	}
	s.changed()
	return true
}

// SelectActive opens the card currently centred in the active row.
func (s *Scene) SelectActive() bool {
	st := s.nav.State()
	return s.Select(model.CardID{Category: st.CategoryIndex, Index: st.CardIndex})
}

func (s *Scene) Dismiss() {
	if !s.nav.State().ModalOpen() {
		return
	}
	s.nav.Dismiss()
	if s.OnDismiss != nil {
		s.OnDismiss()
	}
	s.changed()
}

// Hover records the pointer over card id at surface coordinate uv.
func (s *Scene) Hover(id model.CardID, uv motion.Vec2) {
	if !s.catalog.Contains(id) {
		s.Leave()
		return
	}
	s.hover = motion.Hover{Active: true, Card: id, UV: uv}
}

// Leave clears the hover; the hotspot and tilt then decay to centre.
func (s *Scene) Leave() { s.hover = motion.Hover{} }

// Uniforms returns the shader snapshot of card id for this frame.
func (s *Scene) Uniforms(id model.CardID) feedback.Uniforms { return s.feedback.Uniforms(id) }

// Preview builds the read-only single-card scene shown inside the detail
// view, or nil when nothing is selected.
func (s *Scene) Preview() *Scene {
	st := s.nav.State()
	if !st.ModalOpen() {
		return nil
	}
	cat := st.SelectedID.Category
	cfg := s.cfg
	cfg.ReadOnly = true
	return NewScene(model.Single(s.catalog.Name(cat), s.catalog.Color(cat), *st.Selected), cfg, s.logger)
}

// Close drops navigation and gesture state, as when the scene unmounts.
func (s *Scene) Close() {
	s.nav.Reset()
	s.input.Reset()
	s.hover = motion.Hover{}
	s.logger.Debugf("[SCENE] closed after %d frames", s.frame)
}
