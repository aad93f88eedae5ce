package netlist

import "errors"

// Sentinel errors for the netlist package. Callers should compare with
// errors.Is, never string matching.
var (
	// ErrModuleNil is returned when Import is called with a nil Module.
	ErrModuleNil = errors.New("netlist: module is nil")

	// ErrUnknownNet indicates a cell or output referenced a net name that
	// is neither a declared primary input nor the output of any cell.
	ErrUnknownNet = errors.New("netlist: unknown net")

	// ErrDuplicateDriver indicates two cells declare the same output net,
	// violating the single-driver assumption Import relies on.
	ErrDuplicateDriver = errors.New("netlist: net has more than one driver")

	// ErrCombinationalCycle indicates a net's driver chain depends on
	// itself through only NOT/DFF cells with no intervening AND gate to
	// anchor it to a real node — e.g. a toggle flip-flop (d = NOT(q)) with
	// no combinational logic in the loop. In this data model (PI,
	// PO-alias, AND only — no dedicated register node), such a loop has
	// no finite edge representation and is rejected rather than looped
	// on forever.
	ErrCombinationalCycle = errors.New("netlist: combinational cycle with no anchoring AND node")

	// ErrBadCell indicates a cell is structurally malformed (wrong input
	// count for its Kind, missing output, etc.) — not an unrecognized
	// kind, which is handled as ill-formed input rather than an
	// error.
	ErrBadCell = errors.New("netlist: malformed cell")

	// ErrNetworkNil is returned when an export function is given a nil
	// *lutnet.Network or *aig.Graph.
	ErrNetworkNil = errors.New("netlist: network is nil")
)
