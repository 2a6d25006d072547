package ui

import (
	"sort"

	"github.com/ingyamilmolinar/holostack/core/engine"
	"github.com/ingyamilmolinar/holostack/core/model"
	"github.com/ingyamilmolinar/holostack/core/motion"
	"github.com/ingyamilmolinar/holostack/internal/utils"
)

// Scene layout in world units.
const (
	cardW      = 2.6
	cardH      = 3.6
	labelW     = 2.0
	labelH     = 0.9
	labelZ     = 0.008
	wireZ      = 0.006
	titleY     = 2.4
	titleSize  = 0.32
	meshSegs   = 6 // quads per card side; keeps affine UV error small
	fogStart   = 7.0
	fogEnd     = 18.0
	defaultYaw = -0.18
)

// meshVertex is a projected card vertex with its shading inputs.
type meshVertex struct {
	X, Y    float64
	U, V    float64 // card surface coordinate, v grows upward
	Fresnel float64
	Fog     float64
}

// cardMesh is one card after projection.
type cardMesh struct {
	ID    model.CardID
	Card  model.Card
	Depth float64 // view depth of the card centre
	// Verts is indexed [row][col] with row 0 on the bottom edge.
	Verts [meshSegs + 1][meshSegs + 1]meshVertex
	Label [4]meshVertex // bl, br, tr, tl of the label quad
	Wire  [4][2]float64 // outline corners in screen space
}

// stackView projects a Scene through a Camera.
type stackView struct {
	scene  *engine.Scene
	cam    *Camera
	rowYaw float64
}

// toWorld maps a point in card id's local frame into the world: card tilt,
// slide along the row, row shear, then the row and stack heights.
func (v stackView) toWorld(id model.CardID, q utils.Vec3) utils.Vec3 {
	m := v.scene.Motion()
	tilt := m.CardTilt(id)
	q = q.RotY(tilt.Y).RotX(tilt.X)
	q = q.Add(utils.V3(m.RowOffset(id.Category)+m.CardX(id.Index), 0, 0))
	q = q.RotY(v.rowYaw)
	return q.Add(utils.V3(0, m.RowY(id.Category)+m.StackY(), 0))
}

func (v stackView) normal(id model.CardID) utils.Vec3 {
	tilt := v.scene.Motion().CardTilt(id)
	return utils.V3(0, 0, 1).RotY(tilt.Y).RotX(tilt.X).RotY(v.rowYaw)
}

func (v stackView) vertex(id model.CardID, n, local utils.Vec3, u, uvV float64) (meshVertex, bool) {
	w := v.toWorld(id, local)
	x, y, depth, ok := v.cam.Project(w)
	if !ok {
		return meshVertex{}, false
	}
	return meshVertex{
		X: x, Y: y, U: u, V: uvV,
		Fresnel: v.cam.Fresnel(w, n),
		Fog:     FogAmount(depth, fogStart, fogEnd),
	}, true
}

// project builds the mesh of one card, or reports false when any part of it
// falls outside the camera range.
func (v stackView) project(id model.CardID) (cardMesh, bool) {
	cm := cardMesh{ID: id, Card: v.scene.Catalog().Card(id)}
	n := v.normal(id)
	_, _, depth, ok := v.cam.Project(v.toWorld(id, utils.Vec3{}))
	if !ok {
		return cm, false
	}
	cm.Depth = depth
	for r := 0; r <= meshSegs; r++ {
		for c := 0; c <= meshSegs; c++ {
			u := float64(c) / meshSegs
			uv := float64(r) / meshSegs
			local := utils.V3((u-0.5)*cardW, (uv-0.5)*cardH, 0)
			mv, ok := v.vertex(id, n, local, u, uv)
			if !ok {
				return cm, false
			}
			cm.Verts[r][c] = mv
		}
	}
	ly := cardH * 0.35
	corners := [4][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	for i, k := range corners {
		local := utils.V3(k[0]*labelW/2, ly+k[1]*labelH/2, labelZ)
		mv, ok := v.vertex(id, n, local, (k[0]+1)/2, (k[1]+1)/2)
		if !ok {
			return cm, false
		}
		cm.Label[i] = mv
		x, y, _, ok := v.cam.Project(v.toWorld(id, utils.V3(k[0]*cardW/2, k[1]*cardH/2, wireZ)))
		if !ok {
			return cm, false
		}
		cm.Wire[i] = [2]float64{x, y}
	}
	return cm, true
}

// Meshes returns every visible card sorted back to front.
func (v stackView) Meshes() []cardMesh {
	var out []cardMesh
	v.scene.Catalog().Each(func(id model.CardID, _ model.Card) {
		if cm, ok := v.project(id); ok {
			out = append(out, cm)
		}
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Depth > out[j].Depth })
	return out
}

// TitleAnchor returns the screen position and pixel size of row i's title.
// The title sits in row space and does not slide with the cards.
func (v stackView) TitleAnchor(i int) (x, y, size float64, ok bool) {
	m := v.scene.Motion()
	p := utils.V3(-1.5*m.Config().CardSpacing, titleY, 0).RotY(v.rowYaw)
	p = p.Add(utils.V3(0, m.RowY(i)+m.StackY(), 0))
	x, y, _, ok = v.cam.Project(p)
	if !ok {
		return 0, 0, 0, false
	}
	_, top, _, ok := v.cam.Project(p.Add(utils.V3(0, titleSize, 0)))
	if !ok {
		return 0, 0, 0, false
	}
	return x, y, y - top, true
}

// HitTest finds the front-most card under screen point (px, py) and the
// surface coordinate hit. meshes must be sorted back to front.
func HitTest(meshes []cardMesh, px, py float64) (model.CardID, motion.Vec2, bool) {
	for i := len(meshes) - 1; i >= 0; i-- {
		cm := &meshes[i]
		for r := 0; r < meshSegs; r++ {
			for c := 0; c < meshSegs; c++ {
				a, b := cm.Verts[r][c], cm.Verts[r][c+1]
				d, e := cm.Verts[r+1][c], cm.Verts[r+1][c+1]
				if uv, ok := triangleUV(a, b, e, px, py); ok {
					return cm.ID, uv, true
				}
				if uv, ok := triangleUV(a, e, d, px, py); ok {
					return cm.ID, uv, true
				}
			}
		}
	}
	return model.CardID{}, motion.Vec2{}, false
}

// triangleUV interpolates the surface coordinate at (px, py) when the point
// lies inside triangle abc.
func triangleUV(a, b, c meshVertex, px, py float64) (motion.Vec2, bool) {
	den := (b.Y-c.Y)*(a.X-c.X) + (c.X-b.X)*(a.Y-c.Y)
	if den == 0 {
		return motion.Vec2{}, false
	}
	l1 := ((b.Y-c.Y)*(px-c.X) + (c.X-b.X)*(py-c.Y)) / den
	l2 := ((c.Y-a.Y)*(px-c.X) + (a.X-c.X)*(py-c.Y)) / den
	l3 := 1 - l1 - l2
	const eps = -1e-9
	if l1 < eps || l2 < eps || l3 < eps {
		return motion.Vec2{}, false
	}
	return motion.Vec2{
		X: utils.Clamp(l1*a.U+l2*b.U+l3*c.U, 0, 1),
		Y: utils.Clamp(l1*a.V+l2*b.V+l3*c.V, 0, 1),
	}, true
}
