package series

import "errors"

var (
	// ErrInvalidInput indicates rate or index text that does not describe a usable parameter set.
	ErrInvalidInput = errors.New("series: invalid input")

	// ErrUnknownModel indicates a growth model name that is not recognized.
	ErrUnknownModel = errors.New("series: unknown growth model")
)
