// Package lutrewrite — depth.go implements the lutdepth analysis: per-LUT
// depth and depth-envelope annotations, and the `critical` marker consumed
// by the rewriter's depth check.
package lutrewrite

import (
	"log/slog"

	"github.com/lvlath-labs/toymap/lutnet"
)

// CellDepth holds the three attributes a LUT cell carries after a
// lutdepth analysis.
type CellDepth struct {
	Depth    int
	Envelope int
	Critical bool
}

// DepthReport is the result of a full lutdepth pass: per-LUT attributes,
// the attained maximum depth, and the target actually used (which may
// differ from a user-supplied target if it was below the attainable
// depth).
type DepthReport struct {
	Cells  []CellDepth
	MaxD   int
	Target int
}

// ComputeDepth runs the lutdepth analysis over net: topologically sorts
// the LUTs, computes depth(c) = 1 + max(depth(predecessor), 0), lets D =
// max depth,
// and — if targetOverride > 0 — uses it as module_target provided it is
// >= D (logging a warning and falling back to D otherwise). The envelope
// sweep then assigns
// envelope(c) = min over direct consumers s of envelope(s) - 1, seeded at
// module_target for cells with no consumer within the network (i.e. the
// ones driving an output).
func ComputeDepth(net *lutnet.Network, targetOverride int, logger *slog.Logger) (*DepthReport, error) {
	if net == nil {
		return nil, ErrNetworkNil
	}
	if logger == nil {
		logger = slog.Default()
	}

	leafDepth := make([]int, net.NumLeaves)
	lutDepth, _, err := net.Depth(leafDepth)
	if err != nil {
		return nil, err
	}

	maxD := 0
	for _, d := range lutDepth {
		if d > maxD {
			maxD = d
		}
	}

	target := maxD
	if targetOverride > 0 {
		if targetOverride < maxD {
			logger.Warn("lutrewrite: target depth below attainable depth, falling back to attained depth",
				"target", targetOverride, "attainable", maxD)
		} else {
			target = targetOverride
		}
	}

	hasConsumer := make([]bool, len(net.LUTs))
	for _, l := range net.LUTs {
		for _, in := range l.Inputs {
			if !in.Leaf {
				hasConsumer[in.Index] = true
			}
		}
	}

	const unset = 1 << 30
	envelope := make([]int, len(net.LUTs))
	for i := range envelope {
		if hasConsumer[i] {
			envelope[i] = unset
		} else {
			envelope[i] = target
		}
	}

	order, err := net.TopoSort()
	if err != nil {
		return nil, err
	}
	for i := len(order) - 1; i >= 0; i-- {
		idx := order[i]
		for _, in := range net.LUTs[idx].Inputs {
			if in.Leaf {
				continue
			}
			candidate := envelope[idx] - 1
			if candidate < envelope[in.Index] {
				envelope[in.Index] = candidate
			}
		}
	}

	cells := make([]CellDepth, len(net.LUTs))
	for i := range cells {
		cells[i] = CellDepth{
			Depth:    lutDepth[i],
			Envelope: envelope[i],
			Critical: lutDepth[i] == envelope[i],
		}
	}

	return &DepthReport{Cells: cells, MaxD: maxD, Target: target}, nil
}
