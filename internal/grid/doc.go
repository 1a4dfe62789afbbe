// Package grid holds the voxel grid state for the diffusion automaton.
//
// A [State] owns a Z×Y×X array of RGB colors and the matching cell
// positions. Positions never change after [New]; colors change only through
// [State.ApplyStep], which clamps every component to [0, 1].
//
// # Example
//
//	g, seeds, _ := grid.Initialize(grid.Dims{X: 15, Y: 15, Z: 15}, 20, 1134)
//	snap := g.Snapshot()
//	renderer.UpdateColors(snap.Colors)
package grid
