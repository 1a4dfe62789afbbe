package gui

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/voxdiff/internal/grid"
)

// minVisible is the brightest channel value below which a cube is skipped.
const minVisible = 0.03

var (
	ColText    = rl.NewColor(140, 140, 140, 255) // Neutral Gray
	ColTextDim = rl.NewColor(60, 60, 60, 255)    // Dark Gray
	ColBounds  = rl.NewColor(50, 50, 50, 255)
)

func toRL(c grid.Color) rl.Color {
	c = grid.Clamp(c)
	to8 := func(v float64) uint8 { return uint8(math.Round(v * 255)) }
	return rl.NewColor(to8(c[0]), to8(c[1]), to8(c[2]), 255)
}

func visible(c grid.Color) bool {
	return max(c[0], c[1], c[2]) >= minVisible
}

// layout centers the grid on the origin with one world unit per cell.
func layout(snap grid.Snapshot) []rl.Vector3 {
	d := snap.Dims
	cx, cy, cz := float64(d.X-1)/2, float64(d.Y-1)/2, float64(d.Z-1)/2
	out := make([]rl.Vector3, len(snap.Positions))
	for i, p := range snap.Positions {
		out[i] = rl.NewVector3(float32(p[0]-cx), float32(p[1]-cy), float32(p[2]-cz))
	}
	return out
}

// orbit places the camera on a sphere of radius dist around the origin.
func orbit(yaw, pitch, dist float32) rl.Vector3 {
	y, p := float64(yaw), float64(pitch)
	return rl.NewVector3(
		dist*float32(math.Cos(p)*math.Sin(y)),
		dist*float32(math.Sin(p)),
		dist*float32(math.Cos(p)*math.Cos(y)),
	)
}

// cubeSize maps a point size to a cube edge in world units.
func cubeSize(pointSize float64) float32 {
	return float32(math.Max(pointSize, 1) * 0.05)
}
