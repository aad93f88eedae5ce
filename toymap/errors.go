package toymap

import "errors"

// Sentinel errors for the toymap package. Callers should compare with
// errors.Is, never string matching.
var (
	// ErrUnknownFlag is returned when a pass's argument list contains a
	// flag the dispatcher does not recognize — rejected with an error, not
	// a panic, and not silently ignored.
	ErrUnknownFlag = errors.New("toymap: unknown flag")

	// ErrUnknownCommand is returned by Dispatch when given a Command value
	// outside the five known passes.
	ErrUnknownCommand = errors.New("toymap: unknown command")

	// ErrModuleNil is returned when a pass is given a nil *netlist.Module.
	ErrModuleNil = errors.New("toymap: module is nil")
)
