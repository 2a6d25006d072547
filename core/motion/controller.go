package motion

import (
	"github.com/ingyamilmolinar/holostack/core/model"
	"github.com/ingyamilmolinar/holostack/core/nav"
)

type Config struct {
	RowSpacing  float64 // world units between row centres
	CardSpacing float64 // world units between card centres
	StackRate   float64 // damping of the stack's Y offset (1/s)
	RowRate     float64 // damping of each row's card-group X offset (1/s)
	TiltRate    float64 // damping of per-card tilt (1/s)
	TiltGainX   float64 // radians about X per unit of vertical UV offset
	TiltGainY   float64 // radians about Y per unit of horizontal UV offset
}

func DefaultConfig() Config {
	return Config{
		RowSpacing:  5.6,
		CardSpacing: 3.8,
		StackRate:   4,
		RowRate:     4,
		TiltRate:    6,
		TiltGainX:   0.22,
		TiltGainY:   0.26,
	}
}

// Hover is the pointer's relation to the cards this frame. At most one card
// is hovered; UV is that card's surface coordinate with v growing upward.
type Hover struct {
	Active bool
	Card   model.CardID
	UV     Vec2
}

// Target returns the pointer target for card id: the hover UV when id is
// the hovered card, otherwise the surface centre.
func (h Hover) Target(id model.CardID) (bool, Vec2) {
	if h.Active && h.Card == id {
		return true, h.UV
	}
	return false, Center
}

// Controller turns navigation indices into damped world-space offsets. It is
// derived state: every value converges toward the navigator and nothing here
// is read back into it.
type Controller struct {
	cfg    Config
	stackY float64
	rowX   []float64
	tilt   [][]Vec2 // X: rotation about X, Y: rotation about Y
}

func NewController(c *model.Catalog, cfg Config) *Controller {
	ctl := &Controller{
		cfg:  cfg,
		rowX: make([]float64, c.Len()),
		tilt: make([][]Vec2, c.Len()),
	}
	for i := range ctl.tilt {
		ctl.tilt[i] = make([]Vec2, c.CardCount(i))
	}
	return ctl
}

func (c *Controller) Config() Config { return c.cfg }

// Step advances every animated value by dt seconds toward the targets
// implied by s and h.
func (c *Controller) Step(s nav.State, h Hover, dt float64) {
	c.stackY = Damp(c.stackY, float64(s.CategoryIndex)*c.cfg.RowSpacing, c.cfg.StackRate, dt)
	for row := range c.rowX {
		target := 0.0
		if row == s.CategoryIndex {
			target = -float64(s.CardIndex) * c.cfg.CardSpacing
		}
		c.rowX[row] = Damp(c.rowX[row], target, c.cfg.RowRate, dt)
		for i := range c.tilt[row] {
			hovered, uv := h.Target(model.CardID{Category: row, Index: i})
			var want Vec2
			if hovered {
				d := uv.Sub(Center)
				want = Vec2{X: -d.Y * c.cfg.TiltGainX, Y: d.X * c.cfg.TiltGainY}
			}
			c.tilt[row][i] = DampVec2(c.tilt[row][i], want, c.cfg.TiltRate, dt)
		}
	}
}

// StackY is the animated vertical offset applied to the whole row stack.
func (c *Controller) StackY() float64 { return c.stackY }

// RowY is the fixed position of row i inside the stack.
func (c *Controller) RowY(i int) float64 { return -float64(i) * c.cfg.RowSpacing }

// RowOffset is the animated X offset of row i's card group.
func (c *Controller) RowOffset(i int) float64 { return c.rowX[i] }

// CardX is the fixed position of card i inside its row's group.
func (c *Controller) CardX(i int) float64 { return float64(i) * c.cfg.CardSpacing }

// CardTilt returns the animated (aboutX, aboutY) rotation of a card.
func (c *Controller) CardTilt(id model.CardID) Vec2 { return c.tilt[id.Category][id.Index] }
