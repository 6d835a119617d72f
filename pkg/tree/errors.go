package tree

import "github.com/cockroachdb/errors"

var (
	// ErrInvalidRange is returned for ranges that are negative or whose start
	// lies beyond their end.
	ErrInvalidRange = errors.New("invalid range")

	// ErrEmptyInput is returned when a tree is built from no ranges.
	ErrEmptyInput = errors.New("no ranges to build from")
)
