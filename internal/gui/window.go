package gui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/voxdiff/internal/diffusion"
	"github.com/san-kum/voxdiff/internal/engine"
	"github.com/san-kum/voxdiff/internal/grid"
	"github.com/san-kum/voxdiff/internal/metrics"
)

var (
	_ engine.Renderer = (*Window)(nil)
	_ engine.Observer = (*Window)(nil)
)

// Window draws every cell as a small cube in a raylib window. Right-drag
// orbits the camera and the wheel zooms. All calls must come from the
// goroutine that called Open.
type Window struct {
	Width, Height int32
	FPS           int32

	rule      diffusion.Rule
	title     string
	dims      grid.Dims
	positions []rl.Vector3
	colors    []grid.Color
	bg        rl.Color
	size      float32
	camera    rl.Camera3D

	yaw, pitch, dist float32

	handlers map[rune][]func()
	frames   int
	tick     int
	alive    int
	opened   bool
}

func NewWindow(rule diffusion.Rule, width, height int) *Window {
	return &Window{
		Width:    int32(width),
		Height:   int32(height),
		FPS:      60,
		rule:     rule,
		bg:       rl.NewColor(0, 0, 0, 255),
		size:     cubeSize(1),
		handlers: make(map[rune][]func()),
	}
}

func (w *Window) Open(title string, snap grid.Snapshot) error {
	w.title = title
	w.dims = snap.Dims
	w.positions = layout(snap)
	w.colors = snap.Colors

	rl.InitWindow(w.Width, w.Height, title)
	if !rl.IsWindowReady() {
		return fmt.Errorf("gui: could not create %dx%d window", w.Width, w.Height)
	}
	rl.SetTargetFPS(w.FPS)
	rl.SetExitKey(0)
	w.opened = true

	w.yaw, w.pitch = 0.6, 0.5
	w.dist = float32(2 * max(snap.Dims.X, snap.Dims.Y, snap.Dims.Z))
	w.camera = rl.NewCamera3D(
		orbit(w.yaw, w.pitch, w.dist),
		rl.NewVector3(0, 0, 0),
		rl.NewVector3(0, 1, 0),
		45.0,
		rl.CameraPerspective,
	)
	return nil
}

func (w *Window) SetBackground(c grid.Color) { w.bg = toRL(c) }
func (w *Window) SetPointSize(size float64)  { w.size = cubeSize(size) }

func (w *Window) OnKey(key rune, fn func()) {
	w.handlers[key] = append(w.handlers[key], fn)
}

func (w *Window) UpdateColors(colors []grid.Color) { w.colors = colors }

// OnTick keeps the HUD counters current.
func (w *Window) OnTick(g *grid.State, tick int, d diffusion.Delta) {
	w.tick = tick
	w.alive = metrics.CountAlive(w.rule, g)
}

// Poll dispatches typed characters, moves the camera and draws one frame.
// Closing the window yields engine.ErrInterrupted.
func (w *Window) Poll() error {
	if rl.WindowShouldClose() {
		return engine.ErrInterrupted
	}

	for ch := rl.GetCharPressed(); ch > 0; ch = rl.GetCharPressed() {
		for _, fn := range w.handlers[rune(ch)] {
			fn()
		}
	}

	w.updateCamera()
	w.draw()
	w.frames++
	return nil
}

func (w *Window) updateCamera() {
	if rl.IsMouseButtonDown(rl.MouseRightButton) {
		delta := rl.GetMouseDelta()
		w.yaw -= delta.X * 0.01
		w.pitch = float32(math.Max(-1.5, math.Min(1.5, float64(w.pitch+delta.Y*0.01))))
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		w.dist = float32(math.Max(2, float64(w.dist-wheel*2)))
	}

	w.camera.Position = orbit(w.yaw, w.pitch, w.dist)
}

func (w *Window) draw() {
	rl.BeginDrawing()
	rl.ClearBackground(w.bg)

	rl.BeginMode3D(w.camera)
	rl.DrawCubeWires(rl.NewVector3(0, 0, 0),
		float32(w.dims.X-1), float32(w.dims.Y-1), float32(w.dims.Z-1), ColBounds)
	for i, pos := range w.positions {
		if i >= len(w.colors) || !visible(w.colors[i]) {
			continue
		}
		rl.DrawCube(pos, w.size, w.size, w.size, toRL(w.colors[i]))
	}
	rl.EndMode3D()

	rl.DrawText(w.title, 20, 20, 20, ColText)
	rl.DrawText(fmt.Sprintf("tick %d  alive %d  frame %d", w.tick, w.alive, w.frames), 20, 46, 14, ColText)
	rl.DrawText(fmt.Sprintf("%d FPS  [RMB] ORBIT  [WHEEL] ZOOM", rl.GetFPS()), 20, w.Height-30, 14, ColTextDim)

	rl.EndDrawing()
}

func (w *Window) Close() error {
	if w.opened {
		rl.CloseWindow()
		w.opened = false
	}
	return nil
}
