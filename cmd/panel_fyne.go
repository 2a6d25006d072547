//go:build fyne

package main

import "github.com/ingyamilmolinar/holostack/internal/ui"

func startPanel(g *ui.Game) { ui.RunFynePanel(g) }
