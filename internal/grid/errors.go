package grid

import "errors"

var (
	// ErrDimensions indicates a grid without an interior cell.
	ErrDimensions = errors.New("grid: invalid dimensions")

	// ErrBufferSize indicates a color buffer that does not match the grid.
	ErrBufferSize = errors.New("grid: color buffer size mismatch")

	// ErrSeedCount indicates a negative number of seed cells.
	ErrSeedCount = errors.New("grid: negative seed count")
)
