package domain

import "errors"

// ErrInvalidInput marks inputs that cannot be assessed, such as a NaN
// coordinate. Callers should test for it with errors.Is.
var ErrInvalidInput = errors.New("invalid input")
