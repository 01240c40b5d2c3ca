// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as handlers
// to distinguish between different failure scenarios without inspecting
// error strings.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts a mutation on a resource
// owned by someone else. The authenticated identity is known, it simply is
// not entitled; handlers translate this separately from a missing or invalid
// token.
var ErrForbidden = errors.New("forbidden")
