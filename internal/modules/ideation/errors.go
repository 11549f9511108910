package ideation

import "errors"

var (
	// ErrInvalidRatingRange is returned when any rating falls outside [0, 10].
	ErrInvalidRatingRange = errors.New("rating outside allowed range [0,10]")

	// ErrUnknownSchema is returned when a schema value is not one of the ten
	// supported mechanic frames.
	ErrUnknownSchema = errors.New("unknown schema")
)
