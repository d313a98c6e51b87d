package tetris

import "errors"

// ErrInvalidState is returned when a saved snapshot cannot be turned back into a grid.
var ErrInvalidState = errors.New("tetris: invalid saved state")
