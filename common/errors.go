package common

import "errors"

// Error categories. Every package-level sentinel in this module wraps
// exactly one of these so callers can classify with errors.Is.
var (
	// ErrValidation marks malformed caller input: duplicate names, bad
	// permutations, out-of-range ids.
	ErrValidation = errors.New("validation error")
	// ErrResource marks files or images that could not be found or read.
	ErrResource = errors.New("resource error")
	// ErrConsistency marks documents that fail structural checks on load.
	ErrConsistency = errors.New("consistency error")
)
