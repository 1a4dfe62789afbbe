// Package diffusion implements the neighbor-diffusion update for the voxel
// grid.
//
// A cell is alive when its RGB sum exceeds [Rule.AliveThresh]. On every tick
// each interior cell looks at its 26 neighbors:
//
//   - alive with more than 3 alive neighbors: decays by (1 - XfrRate)
//   - dead with more than 1 alive neighbor: gains XfrRate × mean neighbor color
//   - otherwise unchanged
//
// Border cells never change. The whole grid is computed from the previous
// tick and committed at once, clamped to [0, 1].
package diffusion
