package core

import "errors"

var (
	ErrInvalidCell      = errors.New("cell out of board bounds")
	ErrInvalidDimension = errors.New("board dimensions must be positive")
	ErrTooManyMines     = errors.New("mine count must be less than cell count")
	ErrGameOver         = errors.New("game is over")
)
