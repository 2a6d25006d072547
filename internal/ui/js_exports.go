//go:build js && !test

package ui

import (
	"syscall/js"

	"github.com/ingyamilmolinar/holostack/core/nav"
)

// initJS exposes navigation helpers to the hosting page.
func (g *Game) initJS() {
	post := func(c Control) js.Func {
		return js.FuncOf(func(js.Value, []js.Value) any {
			return js.ValueOf(g.Post(c))
		})
	}
	js.Global().Set("holostackPrevCard", post(Control{Intent: nav.Intent{Kind: nav.AdvanceCard, Dir: -1}}))
	js.Global().Set("holostackNextCard", post(Control{Intent: nav.Intent{Kind: nav.AdvanceCard, Dir: 1}}))
	js.Global().Set("holostackPrevCategory", post(Control{Intent: nav.Intent{Kind: nav.AdvanceCategory, Dir: -1}}))
	js.Global().Set("holostackNextCategory", post(Control{Intent: nav.Intent{Kind: nav.AdvanceCategory, Dir: 1}}))
	js.Global().Set("holostackOpen", post(Control{Open: true}))
	js.Global().Set("holostackClose", post(Control{Dismiss: true}))
}

// reportStateJS publishes the status readout for the page and its tests.
func (g *Game) reportStateJS() {
	st := g.scene.Status()
	js.Global().Set("__holostack", js.ValueOf(map[string]any{
		"category":  st.CategoryIndex,
		"card":      st.CardIndex,
		"name":      st.CategoryName,
		"modalOpen": st.ModalOpen,
	}))
}
