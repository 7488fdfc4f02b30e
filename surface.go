package quill

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// whiteSource backs solid-color fills. A 3x3 image with only the center texel
// sampled, so antialiased triangle edges never bleed past the fill color.
var (
	whiteSource *ebiten.Image
	whiteSub    *ebiten.Image
)

// whiteImages creates the fill sources on first use so code that never draws
// never touches the GPU.
func whiteImages() (*ebiten.Image, *ebiten.Image) {
	if whiteSource == nil {
		whiteSource = ebiten.NewImage(3, 3)
		whiteSource.Fill(ColorWhite.toRGBA())
		whiteSub = whiteSource.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSource, whiteSub
}

// paintState is the transform and alpha snapshot pushed around each
// primitive's render callback.
type paintState struct {
	geom  ebiten.GeoM
	alpha float64
}

// Surface is the persistent drawing canvas primitives render onto. It wraps
// an offscreen image and carries the current paint transform and alpha that
// the registry scopes per primitive. Draw helpers take local coordinates and
// honor both.
type Surface struct {
	img   *ebiten.Image
	w, h  int
	geom  ebiten.GeoM
	alpha float64

	// Reused triangle buffers for path fills and strokes.
	verts []ebiten.Vertex
	inds  []uint16
}

// NewSurface creates a surface of the given pixel size. Dimensions clamp to
// a 1x1 minimum. The backing image is allocated on first use.
func NewSurface(w, h int) *Surface {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return &Surface{w: w, h: h, alpha: 1}
}

// Image returns the underlying canvas image, creating it on first use.
func (s *Surface) Image() *ebiten.Image {
	if s.img == nil {
		s.img = ebiten.NewImage(s.w, s.h)
	}
	return s.img
}

// Width returns the canvas width in pixels.
func (s *Surface) Width() int {
	return s.w
}

// Height returns the canvas height in pixels.
func (s *Surface) Height() int {
	return s.h
}

// SetSize reallocates the canvas at a new pixel size. Contents are lost.
// No-op when the size is unchanged.
func (s *Surface) SetSize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if w == s.w && h == s.h {
		return
	}
	s.w, s.h = w, h
	if s.img != nil {
		s.img.Deallocate()
		s.img = nil
	}
}

// Clear fills the canvas with transparent black.
func (s *Surface) Clear() {
	s.Image().Clear()
}

// Background fills the entire canvas with the given color.
func (s *Surface) Background(c Color) {
	s.Image().Fill(c.toRGBA())
}

// Alpha returns the current paint alpha.
func (s *Surface) Alpha() float64 {
	return s.alpha
}

func (s *Surface) save() paintState {
	return paintState{geom: s.geom, alpha: s.alpha}
}

func (s *Surface) restore(st paintState) {
	s.geom = st.geom
	s.alpha = st.alpha
}

// transformBy composes translate(x,y) ∘ rotate(r) ∘ scale(k) onto the current
// transform: a local point is scaled, rotated, translated, then passed
// through whatever transform was already in effect.
func (s *Surface) transformBy(x, y, rotation, scale float64) {
	var m ebiten.GeoM
	m.Scale(scale, scale)
	m.Rotate(rotation)
	m.Translate(x, y)
	m.Concat(s.geom)
	s.geom = m
}

// scaleAlpha multiplies the current paint alpha.
func (s *Surface) scaleAlpha(a float64) {
	s.alpha *= a
}

// scaleFactor approximates the current transform's scale from the length of
// its x basis vector. Exact for uniform scale, which is all primitives apply.
func (s *Surface) scaleFactor() float64 {
	return math.Hypot(s.geom.Element(0, 0), s.geom.Element(1, 0))
}

// FillRect fills an axis-aligned rectangle given in local coordinates.
func (s *Surface) FillRect(x, y, w, h float64, c Color) {
	src, _ := whiteImages()
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(w/3, h/3)
	op.GeoM.Translate(x, y)
	op.GeoM.Concat(s.geom)
	a := float32(clamp01(c.A * s.alpha))
	op.ColorScale.Scale(float32(c.R)*a, float32(c.G)*a, float32(c.B)*a, a)
	s.Image().DrawImage(src, &op)
}

// FillCircle fills a circle centered at a local point.
func (s *Surface) FillCircle(cx, cy, r float64, c Color) {
	tx, ty := s.geom.Apply(cx, cy)
	var path vector.Path
	path.Arc(float32(tx), float32(ty), float32(r*s.scaleFactor()), 0, 2*math.Pi, vector.Clockwise)
	path.Close()
	s.fillPath(&path, c)
}

// StrokeLine strokes a segment between two local points.
func (s *Surface) StrokeLine(x0, y0, x1, y1, width float64, c Color) {
	s.StrokePolyline([]Vec2{{x0, y0}, {x1, y1}}, width, c)
}

// StrokePolyline strokes the connected segments through the given local
// points.
func (s *Surface) StrokePolyline(points []Vec2, width float64, c Color) {
	if len(points) < 2 {
		return
	}
	var path vector.Path
	for i, pt := range points {
		tx, ty := s.geom.Apply(pt.X, pt.Y)
		if i == 0 {
			path.MoveTo(float32(tx), float32(ty))
		} else {
			path.LineTo(float32(tx), float32(ty))
		}
	}
	s.strokePath(&path, width*s.scaleFactor(), c)
}

// FillPolygon fills the polygon through the given local points.
func (s *Surface) FillPolygon(points []Vec2, c Color) {
	if len(points) < 3 {
		return
	}
	var path vector.Path
	for i, pt := range points {
		tx, ty := s.geom.Apply(pt.X, pt.Y)
		if i == 0 {
			path.MoveTo(float32(tx), float32(ty))
		} else {
			path.LineTo(float32(tx), float32(ty))
		}
	}
	path.Close()
	s.fillPath(&path, c)
}

func (s *Surface) fillPath(path *vector.Path, c Color) {
	_, sub := whiteImages()
	s.verts, s.inds = path.AppendVerticesAndIndicesForFilling(s.verts[:0], s.inds[:0])
	s.tintVertices(c)
	s.Image().DrawTriangles(s.verts, s.inds, sub, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func (s *Surface) strokePath(path *vector.Path, width float64, c Color) {
	_, sub := whiteImages()
	opts := &vector.StrokeOptions{
		Width:    float32(width),
		LineCap:  vector.LineCapRound,
		LineJoin: vector.LineJoinRound,
	}
	s.verts, s.inds = path.AppendVerticesAndIndicesForStroke(s.verts[:0], s.inds[:0], opts)
	s.tintVertices(c)
	s.Image().DrawTriangles(s.verts, s.inds, sub, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

// tintVertices writes the premultiplied tint and points SrcX/SrcY at the
// white source's center texel.
func (s *Surface) tintVertices(c Color) {
	a := float32(clamp01(c.A * s.alpha))
	cr := float32(c.R) * a
	cg := float32(c.G) * a
	cb := float32(c.B) * a
	for i := range s.verts {
		v := &s.verts[i]
		v.SrcX = 1
		v.SrcY = 1
		v.ColorR = cr
		v.ColorG = cg
		v.ColorB = cb
		v.ColorA = a
	}
}
