package grid

import (
	"fmt"

	"github.com/san-kum/voxdiff/internal/mtrand"
)

// Color is an RGB triple with components in [0, 1].
type Color [3]float64

// Sum returns r+g+b.
func (c Color) Sum() float64 { return c[0] + c[1] + c[2] }

// Scale multiplies every component by f.
func (c Color) Scale(f float64) Color { return Color{c[0] * f, c[1] * f, c[2] * f} }

// Clamp limits every component to [0, 1].
func Clamp(c Color) Color {
	for i, v := range c {
		switch {
		case v < 0:
			c[i] = 0
		case v > 1:
			c[i] = 1
		}
	}
	return c
}

// Vec3 is a cell position (x, y, z).
type Vec3 [3]float64

// Dims holds the grid extent along each axis.
type Dims struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	Z int `yaml:"z"`
}

// Cells returns X*Y*Z.
func (d Dims) Cells() int { return d.X * d.Y * d.Z }

func (d Dims) String() string { return fmt.Sprintf("%dx%dx%d", d.X, d.Y, d.Z) }

// Validate reports whether every axis leaves at least one interior layer.
func (d Dims) Validate() error {
	if d.X < 3 || d.Y < 3 || d.Z < 3 {
		return fmt.Errorf("%w: %s (each axis must be >= 3)", ErrDimensions, d)
	}
	return nil
}

// Source supplies the draws used to place seeds.
type Source interface {
	Intn(n int) int
	Float64() float64
}

// SeedCell records one placed seed.
type SeedCell struct {
	X, Y, Z int
	Color   Color
}

// State owns the color buffer and the fixed positions of a Z×Y×X grid.
// Cells are stored in z-major order: index = (z*Y + y)*X + x.
type State struct {
	dims      Dims
	positions []Vec3
	colors    []Color
}

// New allocates a grid with all-zero colors. Each cell's position is its
// integer coordinate.
func New(dims Dims) (*State, error) {
	if err := dims.Validate(); err != nil {
		return nil, err
	}
	s := &State{
		dims:      dims,
		positions: make([]Vec3, dims.Cells()),
		colors:    make([]Color, dims.Cells()),
	}
	for z := 0; z < dims.Z; z++ {
		for y := 0; y < dims.Y; y++ {
			for x := 0; x < dims.X; x++ {
				s.positions[s.Index(x, y, z)] = Vec3{float64(x), float64(y), float64(z)}
			}
		}
	}
	return s, nil
}

// Initialize builds a grid and places seedCount seeds drawn from an
// mtrand source keyed by randomSeed.
func Initialize(dims Dims, seedCount int, randomSeed int64) (*State, []SeedCell, error) {
	if seedCount < 0 {
		return nil, nil, fmt.Errorf("%w: %d", ErrSeedCount, seedCount)
	}
	s, err := New(dims)
	if err != nil {
		return nil, nil, err
	}
	seeds := s.Seed(seedCount, mtrand.New(randomSeed))
	return s, seeds, nil
}

// Seed places count seeds uniformly in the interior. Per seed the draws are
// x, y, z positions followed by r, b, g; the stored color is (r, g, b).
// A seed landing on an occupied cell replaces it.
func (s *State) Seed(count int, rng Source) []SeedCell {
	seeds := make([]SeedCell, 0, count)
	for i := 0; i < count; i++ {
		x := rng.Intn(s.dims.X-2) + 1
		y := rng.Intn(s.dims.Y-2) + 1
		z := rng.Intn(s.dims.Z-2) + 1

		r := rng.Float64()
		b := rng.Float64()
		g := rng.Float64()

		c := Color{r, g, b}
		s.colors[s.Index(x, y, z)] = c
		seeds = append(seeds, SeedCell{X: x, Y: y, Z: z, Color: c})
	}
	return seeds
}

func (s *State) Dims() Dims { return s.dims }
func (s *State) Len() int   { return len(s.colors) }

// Index maps a coordinate to its flat offset. Coordinates are not checked.
func (s *State) Index(x, y, z int) int {
	return (z*s.dims.Y+y)*s.dims.X + x
}

func (s *State) At(x, y, z int) Color { return s.colors[s.Index(x, y, z)] }

// IsBorder reports whether the cell lies on the outermost layer of any axis.
func (s *State) IsBorder(x, y, z int) bool {
	return x == 0 || y == 0 || z == 0 ||
		x == s.dims.X-1 || y == s.dims.Y-1 || z == s.dims.Z-1
}

// Colors borrows the live color buffer. Callers must not modify it.
func (s *State) Colors() []Color { return s.colors }

// Positions borrows the immutable position buffer.
func (s *State) Positions() []Vec3 { return s.positions }

// Snapshot is a renderer-facing view of the grid.
type Snapshot struct {
	Dims      Dims
	Positions []Vec3
	Colors    []Color
}

// Snapshot returns the positions (shared, immutable) and a copy of the colors.
func (s *State) Snapshot() Snapshot {
	colors := make([]Color, len(s.colors))
	copy(colors, s.colors)
	return Snapshot{Dims: s.dims, Positions: s.positions, Colors: colors}
}

// ApplyStep replaces the color buffer with next, clamping every component.
// It is the only way colors change after seeding.
func (s *State) ApplyStep(next []Color) error {
	if len(next) != len(s.colors) {
		return fmt.Errorf("%w: got %d cells, want %d", ErrBufferSize, len(next), len(s.colors))
	}
	for i, c := range next {
		s.colors[i] = Clamp(c)
	}
	return nil
}

// Clone returns an independent copy.
func (s *State) Clone() *State {
	c := &State{dims: s.dims, positions: s.positions, colors: make([]Color, len(s.colors))}
	copy(c.colors, s.colors)
	return c
}
