package domain

import "github.com/rotisserie/eris"

var (
	// ErrInvalidCoordinate is returned for NaN, infinite or out-of-range coordinates
	ErrInvalidCoordinate = eris.New("invalid coordinate")

	// ErrInvalidInput is returned for negative counts, invalid weights or unknown score kinds
	ErrInvalidInput = eris.New("invalid input")
)
