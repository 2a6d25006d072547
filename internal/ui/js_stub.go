//go:build !js || test

package ui

func (g *Game) initJS()        {}
func (g *Game) reportStateJS() {}
