package ui

import (
	_ "embed"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/ingyamilmolinar/holostack/core/feedback"
)

//go:embed holo.kage
var holoKage []byte

var (
	holoOnce   sync.Once
	holoShader *ebiten.Shader
	holoErr    error
)

// loadHoloShader compiles the card material on first use.
func loadHoloShader() (*ebiten.Shader, error) {
	holoOnce.Do(func() { holoShader, holoErr = ebiten.NewShader(holoKage) })
	return holoShader, holoErr
}

// uniformMap is the Kage uniform table of one draw call.
type uniformMap map[string]any

func (m uniformMap) SetFloat(name string, v float32)      { m[name] = v }
func (m uniformMap) SetVec2(name string, x, y float32)    { m[name] = []float32{x, y} }
func (m uniformMap) SetVec3(name string, x, y, z float32) { m[name] = []float32{x, y, z} }

var _ feedback.UniformSetter = uniformMap(nil)

// cardTriangles appends the card mesh to vs and is. Vertex colours carry
// the shading inputs of the material: R fresnel, G and B the surface
// coordinate, A the fog amount.
func cardTriangles(cm *cardMesh, vs []ebiten.Vertex, is []uint16) ([]ebiten.Vertex, []uint16) {
	base := uint16(len(vs))
	for r := 0; r <= meshSegs; r++ {
		for c := 0; c <= meshSegs; c++ {
			mv := cm.Verts[r][c]
			vs = append(vs, ebiten.Vertex{
				DstX:   float32(mv.X),
				DstY:   float32(mv.Y),
				ColorR: float32(mv.Fresnel),
				ColorG: float32(mv.U),
				ColorB: float32(mv.V),
				ColorA: float32(mv.Fog),
			})
		}
	}
	const stride = meshSegs + 1
	for r := 0; r < meshSegs; r++ {
		for c := 0; c < meshSegs; c++ {
			a := base + uint16(r*stride+c)
			b, d := a+1, a+stride
			e := d + 1
			is = append(is, a, b, e, a, e, d)
		}
	}
	return vs, is
}

// drawHoloCard renders one card with the holo material, or with a flat
// dimmed fill when the shader is unavailable.
func drawHoloCard(dst *ebiten.Image, cm *cardMesh, u feedback.Uniforms, shader *ebiten.Shader) {
	vs, is := cardTriangles(cm, nil, nil)
	if shader != nil {
		uniforms := uniformMap{}
		u.Bind(uniforms)
		op := &ebiten.DrawTrianglesShaderOptions{Uniforms: uniforms, AntiAlias: true}
		dst.DrawTrianglesShader(vs, is, shader, op)
		return
	}
	fill := u.BaseColor
	if u.Dim > 0 {
		fill = feedback.Dimmed(fill)
	}
	rgb := feedback.RGB(fill)
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 0.5, 0.5
		vs[i].ColorR, vs[i].ColorG, vs[i].ColorB, vs[i].ColorA = rgb[0], rgb[1], rgb[2], 1
	}
	dst.DrawTriangles(vs, is, pixel(color.White), &ebiten.DrawTrianglesOptions{})
}

// drawLabel maps the card's label texture onto its projected quad.
func drawLabel(dst *ebiten.Image, cm *cardMesh, dim float64) {
	img := labelTexture(cm.Card)
	scale := float32(1 - 0.4*dim)
	vs := make([]ebiten.Vertex, 4)
	for i, mv := range cm.Label {
		vs[i] = ebiten.Vertex{
			DstX:   float32(mv.X),
			DstY:   float32(mv.Y),
			SrcX:   float32(mv.U * labelTexW),
			SrcY:   float32((1 - mv.V) * labelTexH),
			ColorR: scale,
			ColorG: scale,
			ColorB: scale,
			ColorA: 1,
		}
	}
	op := &ebiten.DrawTrianglesOptions{Filter: ebiten.FilterLinear}
	dst.DrawTriangles(vs, []uint16{0, 1, 2, 0, 2, 3}, img, op)
}

// drawWire strokes the card outline just above the card plane.
func drawWire(dst *ebiten.Image, cm *cardMesh) {
	for i := range cm.Wire {
		a, b := cm.Wire[i], cm.Wire[(i+1)%len(cm.Wire)]
		drawLine(dst, a[0], a[1], b[0], b[1], colWire)
	}
}
