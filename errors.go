package routex

import "errors"

var (
	// ErrNilHandler is returned by Add when handler is nil.
	ErrNilHandler = errors.New("routex: handler must not be nil")

	// ErrNulByte is returned by Add when pattern contains a zero byte.
	// Patterns are not required by the grammar to exclude it, but a zero
	// byte in registered patterns is rejected here to keep match-time
	// behavior fully defined: the compact automaton reserves a distinct
	// edge slot for the end-of-input sentinel precisely so a literal zero
	// byte in *input* does not collide with it.
	ErrNulByte = errors.New("routex: pattern must not contain a NUL byte")
)
