package aig

import "errors"

// Sentinel errors for the aig package. Callers should compare with
// errors.Is, never string matching.
var (
	// ErrGraphNil is returned when a nil *Graph is passed where one is required.
	ErrGraphNil = errors.New("aig: graph is nil")

	// ErrNodeNotFound indicates an operation referenced a non-existent node ID.
	ErrNodeNotFound = errors.New("aig: node not found")

	// ErrNotAndNode indicates an operation required an AND node but found
	// a PI or constant.
	ErrNotAndNode = errors.New("aig: node is not an AND node")

	// ErrCycleDetected indicates TopoSort found a cycle in the zero-lag
	// projection of the graph, which must be acyclic per the data model.
	ErrCycleDetected = errors.New("aig: cycle detected in zero-lag projection")

	// ErrLagInitMismatch indicates an edge's lag and len(InitVals) disagree,
	// violating the core invariant ins[i].lag == len(ins[i].initvals).
	ErrLagInitMismatch = errors.New("aig: edge lag does not match len(initvals)")

	// ErrBadInitVal indicates an initial-value byte outside {0, 1, x}.
	ErrBadInitVal = errors.New("aig: initial value must be 0, 1, or x")
)
