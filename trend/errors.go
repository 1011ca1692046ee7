package trend

import "errors"

var (
	ErrUnderdetermined = errors.New("fewer observations than coefficients to fit")
	ErrNoObservations  = errors.New("no observations to fit")
	ErrResLenMismatch  = errors.New("predicted and actual have different lengths")
)
