// Package invariant provides a single panic-based assertion helper used
// throughout toymap to surface structural-invariant violations (bugs) as
// distinct from recoverable, data-shaped errors.
//
// Per the project's error-handling policy: a violated structural invariant
// (cut reference-count mismatch, non-topological iteration, an out-of-range
// variable index) indicates a bug in the mapper itself and must abort loudly
// rather than be laundered into an `error` return that a caller might ignore.
package invariant

import "fmt"

// Check panics with a formatted message if cond is false.
// Use it only for conditions that can never fail in correct code — never
// for validating external input, which must return an error instead.
func Check(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("invariant violated: "+format, args...))
	}
}
