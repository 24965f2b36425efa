package clue

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig is wrapped by every configuration error, including the
	// tile-count error raised when PointsPerTile is too large for the data.
	ErrInvalidConfig = errors.New("clue: invalid configuration")

	// ErrTileOverflow is wrapped by OverflowError when a grid bin runs out of
	// capacity during construction.
	ErrTileOverflow = errors.New("clue: tile capacity exceeded")

	// ErrDimensionMismatch indicates coordinates or domains whose count does not
	// match the clusterer's dimensionality.
	ErrDimensionMismatch = errors.New("clue: dimension mismatch")

	// ErrInvalidPoints indicates malformed point input (ragged coordinate
	// arrays, negative or non-finite weights).
	ErrInvalidPoints = errors.New("clue: invalid points")

	// ErrNilKernel is returned by MakeClusters when no kernel is supplied.
	ErrNilKernel = errors.New("clue: kernel must not be nil")
)

// TileCountError reports that PointsPerTile is too large for the number of
// points, so the grid would have no tiles.
type TileCountError struct {
	Points        int
	PointsPerTile int
}

func (e *TileCountError) Error() string {
	return fmt.Sprintf("clue: PointsPerTile=%d is too high for %d points (zero tiles); lower it in the clusterer config",
		e.PointsPerTile, e.Points)
}

func (e *TileCountError) Unwrap() error { return ErrInvalidConfig }

// OverflowError reports how many point indices were dropped because their
// grid bin was full.
type OverflowError struct {
	Dropped int
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("clue: %d point(s) dropped by full tiles; raise TileCapacity or set it to 0 for exact sizing", e.Dropped)
}

func (e *OverflowError) Unwrap() error { return ErrTileOverflow }
