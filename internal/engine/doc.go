// Package engine runs the render/update loop of the voxel automaton.
//
// Each iteration pushes the current colors to a [Renderer], polls it for
// input, advances the frame counter and, on every StepInterval-th frame,
// applies one diffusion tick. The loop ends on a quit key, after MaxFrames
// iterations, or when its context is canceled.
//
// # Example
//
//	g, _, _ := grid.Initialize(dims, 20, 1134)
//	loop := engine.New(g, diffusion.DefaultRule(), renderer)
//	loop.AddMetric(metrics.NewAliveCount(rule))
//	res, err := loop.Run(ctx, engine.DefaultConfig())
//
// # Thread Safety
//
// A Loop and its grid belong to the goroutine calling Run. Only
// [Loop.RequestQuit] may be called from elsewhere.
package engine
