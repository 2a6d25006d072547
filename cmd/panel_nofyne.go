//go:build !fyne

package main

import "github.com/ingyamilmolinar/holostack/internal/ui"

func startPanel(*ui.Game) {}
