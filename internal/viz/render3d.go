package viz

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/voxdiff/internal/grid"
)

type Vec3 struct {
	X, Y, Z float64
}

// Vec3 methods.
func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Length() float64      { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

// Camera manages 3D projection to a 2D plane.
type Camera struct {
	Distance, Near   float64
	RotX, RotY, RotZ float64
	Zoom             float64
}

// NewCamera returns a camera tilted so all three axes of the cube are visible.
func NewCamera() *Camera {
	return &Camera{Distance: 50, Near: 0.1, RotX: 0.5, RotY: 0.6, Zoom: 1.0}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) RotateZ(a float64) { c.RotZ += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

// RotatePoint rotates a point around the camera's axes.
func (c *Camera) RotatePoint(p Vec3) Vec3 {
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cz, sz := math.Cos(c.RotZ), math.Sin(c.RotZ)
	p.X, p.Y = p.X*cz-p.Y*sz, p.X*sz+p.Y*cz
	return p
}

// Project converts 3D world coordinates to 2D screen coordinates.
// Returns x, y, depth, and visibility. Larger depth is closer to the viewer.
func (c *Camera) Project(p Vec3, sw, sh int) (int, int, float64, bool) {
	rot := c.RotatePoint(p).Scale(c.Zoom)
	dist := c.Distance
	if rot.Z >= dist-c.Near {
		return 0, 0, 0, false
	}
	scale := dist / (dist - rot.Z)
	minDim := float64(sh)
	if float64(sw) < minDim {
		minDim = float64(sw)
	}
	pScale := minDim / 3.0
	sx := int(rot.X*scale*pScale) + sw/2
	sy := int(-rot.Y*scale*pScale) + sh/2
	return sx, sy, rot.Z, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

type Edge struct {
	Start, End Vec3
	Color      string
}

type Wireframe struct{ Edges []Edge }

func NewWireframe() *Wireframe                   { return &Wireframe{Edges: make([]Edge, 0)} }
func (w *Wireframe) AddEdge(s, e Vec3, c string) { w.Edges = append(w.Edges, Edge{s, e, c}) }

// CreateBoxWireframe outlines the box spanning -half..half on each axis.
func CreateBoxWireframe(half Vec3, color string) *Wireframe {
	w := NewWireframe()
	x, y, z := half.X, half.Y, half.Z
	v := []Vec3{{-x, -y, -z}, {x, -y, -z}, {x, y, -z}, {-x, y, -z}, {-x, -y, z}, {x, -y, z}, {x, y, z}, {-x, y, z}}
	ei := [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}, {4, 5}, {5, 6}, {6, 7}, {7, 4}, {0, 4}, {1, 5}, {2, 6}, {3, 7}}
	for _, e := range ei {
		w.AddEdge(v[e[0]], v[e[1]], color)
	}
	return w
}

// minVisible is the brightest channel value below which a point is not drawn.
const minVisible = 0.03

// Scene is the projected view of a grid's point list.
type Scene struct {
	Camera    *Camera
	Bounds    *Wireframe
	PointSize float64

	points []Vec3
	colors []string
}

// NewScene normalizes positions so the grid fits in [-1, 1] around its
// center, keeping the aspect ratio of the dimensions.
func NewScene(snap grid.Snapshot, boundsColor string) *Scene {
	d := snap.Dims
	span := float64(max(d.X, d.Y, d.Z) - 1)
	if span <= 0 {
		span = 1
	}
	center := Vec3{float64(d.X-1) / 2, float64(d.Y-1) / 2, float64(d.Z-1) / 2}

	s := &Scene{
		Camera:    NewCamera(),
		PointSize: 1,
		points:    make([]Vec3, len(snap.Positions)),
		colors:    make([]string, len(snap.Positions)),
	}
	for i, p := range snap.Positions {
		v := Vec3{p[0], p[1], p[2]}
		s.points[i] = v.Sub(center).Scale(2 / span)
	}
	s.Bounds = CreateBoxWireframe(center.Scale(2/span), boundsColor)
	s.SetColors(snap.Colors)
	return s
}

func (s *Scene) Len() int { return len(s.points) }

// SetColors replaces the point colors. Extra entries are ignored.
func (s *Scene) SetColors(colors []grid.Color) {
	for i := range s.colors {
		if i >= len(colors) {
			s.colors[i] = ""
			continue
		}
		s.colors[i] = Hex(colors[i])
	}
}

// Hex formats c as #rrggbb, or "" when the color is too dark to show.
func Hex(c grid.Color) string {
	if max(c[0], c[1], c[2]) < minVisible {
		return ""
	}
	return HexColor(c)
}

// HexColor formats c as "#rrggbb" after clamping, with no visibility cutoff.
func HexColor(c grid.Color) string {
	c = grid.Clamp(c)
	to8 := func(v float64) int { return int(math.Round(v * 255)) }
	return fmt.Sprintf("#%02x%02x%02x", to8(c[0]), to8(c[1]), to8(c[2]))
}

type projected struct {
	x, y  int
	depth float64
	color string
}

// Draw paints the bounds and the visible points onto c, farthest first so
// the closest point owns a shared cell.
func (s *Scene) Draw(c *Canvas) {
	if c == nil {
		return
	}
	cw, ch := c.PixelWidth(), c.PixelHeight()

	if s.Bounds != nil {
		for _, e := range s.Bounds.Edges {
			x1, y1, _, v1 := s.Camera.Project(e.Start, cw, ch)
			x2, y2, _, v2 := s.Camera.Project(e.End, cw, ch)
			if v1 || v2 {
				c.DrawLine(x1, y1, x2, y2, e.Color)
			}
		}
	}

	proj := make([]projected, 0, len(s.points))
	for i, p := range s.points {
		if s.colors[i] == "" {
			continue
		}
		x, y, depth, ok := s.Camera.Project(p, cw, ch)
		if ok {
			proj = append(proj, projected{x, y, depth, s.colors[i]})
		}
	}
	sort.SliceStable(proj, func(i, j int) bool { return proj[i].depth < proj[j].depth })

	big := s.PointSize >= 8
	for _, p := range proj {
		c.Set(p.x, p.y, p.color)
		if big {
			c.Set(p.x+1, p.y, p.color)
			c.Set(p.x, p.y+1, p.color)
			c.Set(p.x+1, p.y+1, p.color)
		}
	}
}
