package nav

import (
	"fmt"

	"github.com/ingyamilmolinar/holostack/core/model"
	game_log "github.com/ingyamilmolinar/holostack/internal/log"
)

// Kind tags a navigation intent.
type Kind int

const (
	AdvanceCategory Kind = iota
	AdvanceCard
)

func (k Kind) String() string {
	switch k {
	case AdvanceCategory:
		return "advanceCategory"
	case AdvanceCard:
		return "advanceCard"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Intent is a device-independent navigation request. Dir is +1 or -1.
type Intent struct {
	Kind Kind
	Dir  int
}

func (i Intent) String() string { return fmt.Sprintf("%s(%+d)", i.Kind, i.Dir) }

// State is a snapshot of where the user is. Selected is non-nil only while
// the detail view is open.
type State struct {
	CategoryIndex int
	CardIndex     int
	Selected      *model.Card
	SelectedID    model.CardID
}

// ModalOpen reports whether the detail view is showing.
func (s State) ModalOpen() bool { return s.Selected != nil }

// Navigator owns (categoryIndex, cardIndex, selection). Every transition is
// total: requests that would leave the valid range are no-ops.
type Navigator struct {
	catalog  *model.Catalog
	category int
	card     int
	selected *model.Card
	selID    model.CardID
	logger   *game_log.Logger
}

func New(c *model.Catalog, logger *game_log.Logger) *Navigator {
	return &Navigator{catalog: c, logger: logger}
}

func (n *Navigator) Catalog() *model.Catalog { return n.catalog }

func (n *Navigator) State() State {
	s := State{CategoryIndex: n.category, CardIndex: n.card, SelectedID: n.selID}
	if n.selected != nil {
		c := *n.selected
		s.Selected = &c
	}
	return s
}

// CanAdvance reports whether the intent would change the indices.
func (n *Navigator) CanAdvance(k Kind, dir int) bool {
	if dir != 1 && dir != -1 {
		return false
	}
	switch k {
	case AdvanceCategory:
		next := n.category + dir
		return next >= 0 && next < n.catalog.Len()
	case AdvanceCard:
		next := n.card + dir
		return next >= 0 && next < n.catalog.CardCount(n.category)
	}
	return false
}

// AdvanceCategory moves one row up or down and resets the card index.
// It returns false, changing nothing, at either end of the stack.
func (n *Navigator) AdvanceCategory(dir int) bool {
	if !n.CanAdvance(AdvanceCategory, dir) {
		n.logger.Debugf("[NAV] advanceCategory(%+d) ignored at category %d/%d", dir, n.category, n.catalog.Len())
		return false
	}
	n.category += dir
	n.card = 0
	n.logger.Debugf("[NAV] category -> %d (%s)", n.category, n.catalog.Name(n.category))
	return true
}

// AdvanceCard moves within the active row without wrapping.
func (n *Navigator) AdvanceCard(dir int) bool {
	if !n.CanAdvance(AdvanceCard, dir) {
		n.logger.Debugf("[NAV] advanceCard(%+d) ignored at card %d/%d", dir, n.card, n.catalog.CardCount(n.category))
		return false
	}
	n.card += dir
	n.logger.Debugf("[NAV] card -> %d", n.card)
	return true
}

// Apply dispatches a unified intent and reports whether state changed.
func (n *Navigator) Apply(i Intent) bool {
	switch i.Kind {
	case AdvanceCategory:
		return n.AdvanceCategory(i.Dir)
	case AdvanceCard:
		return n.AdvanceCard(i.Dir)
	}
	n.logger.Warnf("[NAV] unknown intent %v", i)
	return false
}

// Select opens the detail view for the card at id. Indices are untouched.
// An id outside the catalog is ignored.
func (n *Navigator) Select(id model.CardID) bool {
	if !n.catalog.Contains(id) {
		n.logger.Debugf("[NAV] select %v ignored: no such card", id)
		return false
	}
	c := n.catalog.Card(id)
	n.selected = &c
	n.selID = id
	n.logger.Debugf("[NAV] selected %v (%s)", id, c.Title)
	return true
}

// Dismiss closes the detail view.
func (n *Navigator) Dismiss() {
	if n.selected != nil {
		n.logger.Debugf("[NAV] dismissed %s", n.selected.Title)
	}
	n.selected = nil
	n.selID = model.CardID{}
}

// Reset returns to the initial state (0, 0, closed).
func (n *Navigator) Reset() {
	n.category, n.card = 0, 0
	n.Dismiss()
}
