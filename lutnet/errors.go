package lutnet

import "errors"

// Sentinel errors for the lutnet package. Callers should compare with
// errors.Is, never string matching.
var (
	// ErrWidthMismatch indicates a truth table or LUT was built with a
	// number of variables/inputs that disagrees with a declared width.
	ErrWidthMismatch = errors.New("lutnet: width mismatch")

	// ErrWidthTooLarge indicates a requested width exceeds the maximum
	// this package supports (20 variables per truth table; in practice cut
	// sizes never approach this).
	ErrWidthTooLarge = errors.New("lutnet: width exceeds maximum supported")

	// ErrDuplicateVar indicates a truth table was constructed with the
	// same variable identifier appearing twice in Vars.
	ErrDuplicateVar = errors.New("lutnet: duplicate variable identifier")

	// ErrUnknownInput indicates a LUT input referenced a leaf or internal
	// LUT index outside the network's bounds.
	ErrUnknownInput = errors.New("lutnet: input references unknown leaf or LUT")

	// ErrCycleDetected indicates TopoSort found a cycle among LUTs, which
	// must form a DAG.
	ErrCycleDetected = errors.New("lutnet: cycle detected among LUTs")

	// ErrNoVariety indicates a Library has no variety whose width covers
	// the requested width.
	ErrNoVariety = errors.New("lutnet: no library variety covers requested width")
)
