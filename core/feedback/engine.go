// Package feedback keeps the per-card shader uniforms of the holographic
// card material and hands them to whatever rendering backend is in use.
package feedback

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ingyamilmolinar/holostack/core/model"
	"github.com/ingyamilmolinar/holostack/core/motion"
	"github.com/ingyamilmolinar/holostack/core/nav"
)

// dimFactor is the brightness kept by cards outside the active row.
const dimFactor = 0.6

// Uniform names shared with the shader source.
const (
	UniformTime      = "Time"
	UniformHover     = "Hover"
	UniformPointer   = "Pointer"
	UniformDim       = "Dim"
	UniformBaseColor = "BaseColor"
)

// UniformSetter is the capability a material exposes to receive uniforms.
type UniformSetter interface {
	SetFloat(name string, v float32)
	SetVec2(name string, x, y float32)
	SetVec3(name string, x, y, z float32)
}

type Config struct {
	HoverRate   float64 // damping of hover amount (1/s)
	PointerRate float64 // damping of the hotspot toward the pointer (1/s)
}

func DefaultConfig() Config {
	return Config{HoverRate: 4, PointerRate: 15}
}

// Uniforms is one card's shader state for the current frame.
type Uniforms struct {
	Time      float64
	Hover     float64
	Pointer   motion.Vec2
	Dim       float64
	BaseColor colorful.Color
}

// Bind pushes u into dst.
func (u Uniforms) Bind(dst UniformSetter) {
	dst.SetFloat(UniformTime, float32(u.Time))
	dst.SetFloat(UniformHover, float32(u.Hover))
	dst.SetVec2(UniformPointer, float32(u.Pointer.X), float32(u.Pointer.Y))
	dst.SetFloat(UniformDim, float32(u.Dim))
	rgb := RGB(u.BaseColor)
	dst.SetVec3(UniformBaseColor, rgb[0], rgb[1], rgb[2])
}

// Engine advances every card's uniforms once per rendered frame. It only
// reads navigation state.
type Engine struct {
	cfg   Config
	time  float64
	cards [][]Uniforms
}

func NewEngine(c *model.Catalog, cfg Config) *Engine {
	pal := Palette(c)
	e := &Engine{cfg: cfg, cards: make([][]Uniforms, c.Len())}
	for row := range e.cards {
		e.cards[row] = make([]Uniforms, c.CardCount(row))
		dim := 0.0
		if row != 0 {
			dim = 1
		}
		for i := range e.cards[row] {
			e.cards[row][i] = Uniforms{Pointer: motion.Center, Dim: dim, BaseColor: pal[row]}
		}
	}
	return e
}

// Step accumulates time and damps hover and hotspot toward h. Dim follows
// the active category immediately.
func (e *Engine) Step(s nav.State, h motion.Hover, dt float64) {
	if dt > 0 {
		e.time += dt
	}
	for row := range e.cards {
		dim := 0.0
		if row != s.CategoryIndex {
			dim = 1
		}
		for i := range e.cards[row] {
			u := &e.cards[row][i]
			hovered, uv := h.Target(model.CardID{Category: row, Index: i})
			want := 0.0
			if hovered {
				want = 1
			}
			u.Time = e.time
			u.Hover = motion.Damp(u.Hover, want, e.cfg.HoverRate, dt)
			u.Pointer = motion.DampVec2(u.Pointer, uv, e.cfg.PointerRate, dt)
			u.Dim = dim
		}
	}
}

// Time is the total animation time fed through Step.
func (e *Engine) Time() float64 { return e.time }

// Uniforms returns the current snapshot for card id.
func (e *Engine) Uniforms(id model.CardID) Uniforms { return e.cards[id.Category][id.Index] }
