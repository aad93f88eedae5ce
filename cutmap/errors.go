package cutmap

import "errors"

// Sentinel errors for the cutmap package.
var (
	// ErrGraphNil is returned when Map is called with a nil graph.
	ErrGraphNil = errors.New("cutmap: graph is nil")

	// ErrLibraryNil is returned when Map is called with a nil library.
	ErrLibraryNil = errors.New("cutmap: library is nil")

	// ErrCutSizeRange indicates a requested max cut size is outside (0, 6].
	ErrCutSizeRange = errors.New("cutmap: max cut size must be in (0, 6]")

	// ErrNoCut indicates walk_mapping reached a node with no selected cut,
	// violating the reference-count invariant — a structural bug.
	ErrNoCut = errors.New("cutmap: node in mapping has no selected cut")

	// ErrRefCountUnderflow indicates derefCut decremented a node's
	// map_fanouts below zero — a structural bug in ref-counting.
	ErrRefCountUnderflow = errors.New("cutmap: map_fanouts underflow")
)
