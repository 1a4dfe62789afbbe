package gui

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/voxdiff/internal/grid"
)

func TestToRL(t *testing.T) {
	got := toRL(grid.Color{1, 0.5, 2})
	want := rl.NewColor(255, 128, 255, 255)
	if got != want {
		t.Errorf("toRL = %v, want %v", got, want)
	}
}

func TestVisible(t *testing.T) {
	if visible(grid.Color{0.01, 0, 0.02}) {
		t.Error("near-black cells should be hidden")
	}
	if !visible(grid.Color{0, 0.5, 0}) {
		t.Error("bright cells should be shown")
	}
}

func TestLayoutCentersGrid(t *testing.T) {
	g, err := grid.New(grid.Dims{X: 3, Y: 5, Z: 3})
	if err != nil {
		t.Fatal(err)
	}
	pos := layout(g.Snapshot())
	if len(pos) != g.Len() {
		t.Fatalf("expected %d positions, got %d", g.Len(), len(pos))
	}
	if pos[0] != rl.NewVector3(-1, -2, -1) {
		t.Errorf("first position = %v", pos[0])
	}
	if c := pos[g.Index(1, 2, 1)]; c != rl.NewVector3(0, 0, 0) {
		t.Errorf("center position = %v", c)
	}
}

func TestOrbit(t *testing.T) {
	p := orbit(0, 0, 10)
	if p.X != 0 || p.Y != 0 || p.Z != 10 {
		t.Errorf("orbit(0, 0, 10) = %v", p)
	}
	if cubeSize(10) != 0.5 || cubeSize(0) != 0.05 {
		t.Errorf("cube sizes = %v, %v", cubeSize(10), cubeSize(0))
	}
}
