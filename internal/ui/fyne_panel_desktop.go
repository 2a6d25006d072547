//go:build fyne

package ui

import (
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ingyamilmolinar/holostack/core/nav"
)

// RunFynePanel launches a control window implemented with Fyne. Buttons post
// controls to the game; the status label follows the scene's events.
func RunFynePanel(g *Game) {
	initial := g.Scene().Status().String()
	go func() {
		a := app.New()
		w := a.NewWindow("Controls")

		status := widget.NewLabel(initial)
		post := func(c Control) func() { return func() { g.Post(c) } }

		prevCat := widget.NewButton("▲ Category", post(Control{Intent: nav.Intent{Kind: nav.AdvanceCategory, Dir: -1}}))
		nextCat := widget.NewButton("▼ Category", post(Control{Intent: nav.Intent{Kind: nav.AdvanceCategory, Dir: 1}}))
		prevCard := widget.NewButton("◀ Card", post(Control{Intent: nav.Intent{Kind: nav.AdvanceCard, Dir: -1}}))
		nextCard := widget.NewButton("Card ▶", post(Control{Intent: nav.Intent{Kind: nav.AdvanceCard, Dir: 1}}))
		open := widget.NewButton("Open", post(Control{Open: true}))
		closeBtn := widget.NewButton("Close", post(Control{Dismiss: true}))

		go func() {
			for st := range g.Scene().Events {
				status.SetText(st.String())
			}
		}()

		w.SetContent(container.NewVBox(
			status,
			container.NewGridWithColumns(2, prevCat, nextCat),
			container.NewGridWithColumns(2, prevCard, nextCard),
			container.NewGridWithColumns(2, open, closeBtn),
		))
		w.ShowAndRun()
	}()
}
