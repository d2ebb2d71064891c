package types

import "errors"

var (
	// ErrUnknownWidth is returned when a width name is not recognised.
	ErrUnknownWidth = errors.New("unknown numeric width")
	// ErrMalformedRange is returned when a range literal cannot be parsed or
	// names a width its family never defaults to.
	ErrMalformedRange = errors.New("malformed numeric range")
)
