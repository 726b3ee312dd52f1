package factor

import "errors"

// Errors returned by the public API. Note that failing to find a
// factor is not an error: exhaustion is an ordinary Result status.
var (
	ErrNilInput   = errors.New("factor: modulus must not be nil")
	ErrBadBound   = errors.New("factor: smoothness bound must be positive")
	ErrBadBudget  = errors.New("factor: curve budget must be positive")
	ErrIncomplete = errors.New("factor: could not split a composite cofactor, retry with larger bounds")
)
