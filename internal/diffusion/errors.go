package diffusion

import "errors"

var (
	// ErrRule indicates rule parameters outside their valid range.
	ErrRule = errors.New("diffusion: invalid rule")

	// ErrCommit indicates the computed buffer could not be applied.
	ErrCommit = errors.New("diffusion: commit failed")
)
