// Package viz renders the voxel grid in a terminal.
//
// [Terminal] implements the engine's Renderer on top of a Bubble Tea
// program running in its own goroutine. Frames are projected through a
// rotating [Camera] onto a braille [Canvas], so each character cell carries
// a 2x4 block of pixels.
//
// # Key Bindings
//
//	x/X y/Y z/Z - Rotate the camera
//	+/-         - Zoom
//	t           - Cycle color themes
//	?           - Toggle help
//	Q           - Quit (handled by the engine)
//	Ctrl+C      - Close the view
package viz
