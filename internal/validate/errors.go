// errors.go defines sentinel errors for validation failures.
//
// Separated to centralise error definitions. These errors are used with
// errors.Is() for type-safe error checking. Each error represents a
// distinct validation failure category.
//
// Design: Sentinel errors (not error types) because validation failures
// don't carry additional context beyond the category. Detailed messages
// are provided by wrapping these with fmt.Errorf in the validation functions.

package validate

import "errors"

var (
	ErrInvalidID       = errors.New("invalid content identifier")
	ErrInvalidType     = errors.New("invalid content type")
	ErrIDTooLong       = errors.New("content identifier too long")
	ErrContentTooLarge = errors.New("content too large")
	ErrInvalidTag      = errors.New("invalid tag")
	ErrInvalidVersion  = errors.New("invalid version number")
)
