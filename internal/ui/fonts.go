package ui

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	sansSource = mustFaceSource("Go Regular", goregular.TTF)
	boldSource = mustFaceSource("Go Bold", gobold.TTF)
)

func mustFaceSource(name string, ttf []byte) *text.GoTextFaceSource {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(ttf))
	if err != nil {
		panic(fmt.Sprintf("failed to load %s font: %v", name, err))
	}
	return src
}

func sansFace(size float64) *text.GoTextFace { return &text.GoTextFace{Source: sansSource, Size: size} }
func boldFace(size float64) *text.GoTextFace { return &text.GoTextFace{Source: boldSource, Size: size} }

// textWidth measures a single line of s.
func textWidth(s string, f text.Face) float64 {
	w, _ := text.Measure(s, f, 0)
	return w
}

// truncate shortens s with an ellipsis until it fits in maxW pixels.
func truncate(s string, f text.Face, maxW float64) string {
	if textWidth(s, f) <= maxW {
		return s
	}
	r := []rune(s)
	for len(r) > 0 {
		r = r[:len(r)-1]
		if t := string(r) + "…"; textWidth(t, f) <= maxW {
			return t
		}
	}
	return ""
}
