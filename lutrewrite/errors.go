package lutrewrite

import "errors"

// Sentinel errors for the lutrewrite package.
var (
	// ErrNetworkNil is returned when a pass is called with a nil network.
	ErrNetworkNil = errors.New("lutrewrite: network is nil")

	// ErrBudgetExceeded indicates explore_varchoices could not find any
	// decomposition within the given LUT budget.
	ErrBudgetExceeded = errors.New("lutrewrite: no decomposition fits the LUT budget")

	// ErrDepthEnvelopeExceeded indicates a winning decomposition's depth
	// exceeds the root's depth envelope and was rejected.
	ErrDepthEnvelopeExceeded = errors.New("lutrewrite: decomposition exceeds depth envelope")

	// ErrCellNotFound indicates a LUT index outside the network's bounds
	// was referenced.
	ErrCellNotFound = errors.New("lutrewrite: LUT index out of range")
)
