// Package toymap — run.go implements the five passes (ToyMap, LutDepth,
// LutNot, LutRewriteOnce, LutRewrite) against netlist.Module, wiring
// aig.Graph / cutmap.State / lutnet.Network the way a host framework's
// mapper entry point would.
package toymap

import (
	"context"
	"fmt"

	"github.com/lvlath-labs/toymap/aig"
	"github.com/lvlath-labs/toymap/cutmap"
	"github.com/lvlath-labs/toymap/lutnet"
	"github.com/lvlath-labs/toymap/lutrewrite"
	"github.com/lvlath-labs/toymap/netlist"
)

// Command identifies one of the five passes.
type Command int

const (
	ToyMap Command = iota
	LutDepth
	LutNot
	LutRewriteOnce
	LutRewrite
)

func (c Command) String() string {
	switch c {
	case ToyMap:
		return "toymap"
	case LutDepth:
		return "lutdepth"
	case LutNot:
		return "lutnot"
	case LutRewriteOnce:
		return "lutrewrite_once"
	case LutRewrite:
		return "lutrewrite"
	default:
		return "unknown"
	}
}

// RunToyMap implements the toymap pass: Import m into an aig.Graph,
// Compact it, run the priority-cut mapper, and export the mapping as LUT
// or Gate2 cells.
func RunToyMap(ctx context.Context, m *netlist.Module, opts ...Option) (*netlist.Module, *cutmap.Result, error) {
	if m == nil {
		return nil, nil, ErrModuleNil
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("toymap: %w", err)
	}

	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	var graphOpts []aig.GraphOption
	if cfg.Unique {
		graphOpts = append(graphOpts, aig.WithUniquing())
	}
	g, err := netlist.Import(m, graphOpts...)
	if err != nil {
		return nil, nil, err
	}
	if _, err := g.Compact(); err != nil {
		return nil, nil, err
	}
	if cfg.Balance {
		// There is no dedicated balancer (DESIGN.md): a second Compact
		// pass is the closest available approximation, since repeated
		// simplification can expose further constant-folding opportunities
		// a single pass left on the table.
		if _, err := g.Compact(); err != nil {
			return nil, nil, err
		}
	}
	if cfg.ScrambleLag {
		cfg.Logger.Debug("scramble_lag requested; accepted as a no-op", "pass", ToyMap.String())
	}

	lib := cfg.Library
	if lib == nil {
		lib = lutnet.AcademicLibrary(cfg.LutSize)
	}

	var mapOpts []cutmap.Option
	mapOpts = append(mapOpts, cutmap.WithMaxCutSize(cfg.LutSize), cutmap.WithLogger(cfg.Logger))
	if cfg.DepthCuts {
		mapOpts = append(mapOpts, cutmap.WithDepthCutsOnly())
	}
	if cfg.NoExactArea {
		mapOpts = append(mapOpts, cutmap.WithoutExactArea())
	}
	if cfg.TrivialCuts {
		mapOpts = append(mapOpts, cutmap.WithTrivialCuts())
	}
	if cfg.TargetDepth > 0 {
		mapOpts = append(mapOpts, cutmap.WithTargetDepth(cfg.TargetDepth))
	}

	st, result, err := cutmap.Map(ctx, g, lib, mapOpts...)
	if err != nil {
		return nil, nil, err
	}

	if cfg.DumpCuts {
		dumpCuts(cfg, st, g)
	}

	var out *netlist.Module
	if cfg.EmitGate2 {
		out, err = netlist.ExportGate2(g, st)
	} else {
		out, err = netlist.ExportLUTs(g, st)
	}
	if err != nil {
		return nil, nil, err
	}

	return out, result, nil
}

// dumpCuts logs the selected cut of every mapped AND node (toymap
// -dump_cuts).
func dumpCuts(cfg Options, st *cutmap.State, g *aig.Graph) {
	for n := 0; n < g.NumNodes(); n++ {
		id := aig.ID(n)
		if g.Node(id).Kind != aig.KindAnd || g.IsPO(id) {
			continue
		}
		s := st.Scratch[id]
		if s == nil || s.MapFanouts <= 0 {
			continue
		}
		cfg.Logger.Debug("selected cut", "node", id, "cut", s.SelectedCut())
	}
}

// RunLutDepth implements the lutdepth pass: compute per-cell depth and
// the depth envelope against an (optional) target, without rewriting.
// Unless -quiet, the attained maximum depth is reported through the logger.
func RunLutDepth(m *netlist.Module, targetOverride int, opts ...Option) (*lutrewrite.DepthReport, error) {
	if m == nil {
		return nil, ErrModuleNil
	}
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	net, _, err := netlist.ImportLUTNetwork(m)
	if err != nil {
		return nil, err
	}
	report, err := lutrewrite.ComputeDepth(net, targetOverride, cfg.Logger)
	if err != nil {
		return nil, err
	}
	if !cfg.Quiet {
		cfg.Logger.Info("lutdepth: maximum depth", "depth", report.MaxD, "target", report.Target)
	}

	return report, nil
}

// writeDepthAttrs returns a copy of m with the lutdepth annotations copied
// onto each cell (lutdepth -write_attrs). report.Cells is indexed like
// m.Cells: ImportLUTNetwork creates one network LUT per module cell in
// declaration order.
func writeDepthAttrs(m *netlist.Module, report *lutrewrite.DepthReport) *netlist.Module {
	out := *m
	out.Cells = append([]netlist.Cell(nil), m.Cells...)
	for i := range out.Cells {
		out.Cells[i].Depth = report.Cells[i].Depth
		out.Cells[i].DepthEnvelope = report.Cells[i].Envelope
		out.Cells[i].Critical = report.Cells[i].Critical
	}

	return &out
}

// RunLutNot implements the lutnot pass: absorb inverters into their driver
// or consumer LUTs' truth tables, returning the rewritten module
// and the number of inversions absorbed. Absorbed inverters are swept
// before export, so the output module carries no dead cells.
func RunLutNot(m *netlist.Module, opts ...Option) (*netlist.Module, int, error) {
	if m == nil {
		return nil, 0, ErrModuleNil
	}
	net, leaves, err := netlist.ImportLUTNetwork(m)
	if err != nil {
		return nil, 0, err
	}
	n := lutrewrite.LutNot(net)
	net.Clean()
	out, err := netlist.ExportLUTNetwork(net, leaves)
	if err != nil {
		return nil, 0, err
	}

	return out, n, nil
}

// RunLutRewriteOnce implements the lutrewrite_once pass: a single
// cut-pattern-enumeration-and-decomposition sweep, rather than running to
// fixpoint.
func RunLutRewriteOnce(m *netlist.Module, opts ...Option) (*netlist.Module, lutrewrite.Stats, error) {
	if m == nil {
		return nil, lutrewrite.Stats{}, ErrModuleNil
	}
	cfg := toLutrewriteOptions(opts...)
	net, leaves, err := netlist.ImportLUTNetwork(m)
	if err != nil {
		return nil, lutrewrite.Stats{}, err
	}
	depth, err := lutrewrite.ComputeDepth(net, cfg.TargetDepth, cfg.Logger)
	if err != nil {
		return nil, lutrewrite.Stats{}, err
	}
	stats, err := lutrewrite.RewriteOnce(net, depth, cfg)
	if err != nil {
		return nil, lutrewrite.Stats{}, err
	}
	net.Clean() // the host would run opt_clean here; sweep replaced cells before export
	out, err := netlist.ExportLUTNetwork(net, leaves)
	if err != nil {
		return nil, lutrewrite.Stats{}, err
	}

	return out, stats, nil
}

// RunLutRewrite implements the lutrewrite pass: rewrite to fixpoint,
// returning the number of sweeps it took.
func RunLutRewrite(m *netlist.Module, opts ...Option) (*netlist.Module, int, error) {
	if m == nil {
		return nil, 0, ErrModuleNil
	}
	cfg := toLutrewriteOptions(opts...)
	net, leaves, err := netlist.ImportLUTNetwork(m)
	if err != nil {
		return nil, 0, err
	}
	n, err := lutrewrite.LutRewrite(net, cfg)
	if err != nil {
		return nil, 0, err
	}
	out, err := netlist.ExportLUTNetwork(net, leaves)
	if err != nil {
		return nil, 0, err
	}

	return out, n, nil
}

func toLutrewriteOptions(opts ...Option) lutrewrite.Options {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	lr := lutrewrite.DefaultOptions()
	lr.Logger = cfg.Logger
	if cfg.LutSize > 0 {
		lr.LutSize = cfg.LutSize
	}
	if cfg.TargetDepth > 0 {
		lr.TargetDepth = cfg.TargetDepth
	}
	if cfg.MaxNLuts > 0 {
		lr.MaxNLuts = cfg.MaxNLuts
	}
	if cfg.MaxOuterFans > 0 {
		lr.MaxOuterFans = cfg.MaxOuterFans
	}
	if cfg.MaxNLeaves > 0 {
		lr.MaxNLeaves = cfg.MaxNLeaves
	}
	if cfg.WeightCutoff > 0 {
		lr.WeightCutoff = cfg.WeightCutoff
	}
	lr.SearchShared = cfg.SearchShared

	return lr
}

// Dispatch runs cmd against m using args (parsed per-command) and returns
// the resulting Module. It is the single entry point cmd/toymap
// calls after parsing the subcommand name off argv[1].
func Dispatch(ctx context.Context, cmd Command, m *netlist.Module, args []string) (*netlist.Module, error) {
	switch cmd {
	case ToyMap:
		opts, err := ParseToyMapFlags(args)
		if err != nil {
			return nil, err
		}
		out, _, err := RunToyMap(ctx, m, opts...)

		return out, err
	case LutDepth:
		opts, target, err := ParseLutDepthFlags(args)
		if err != nil {
			return nil, err
		}
		report, err := RunLutDepth(m, target, opts...)
		if err != nil {
			return nil, err
		}
		cfg := DefaultOptions()
		for _, opt := range opts {
			opt(&cfg)
		}
		if cfg.WriteAttrs {
			return writeDepthAttrs(m, report), nil
		}
		// Without -write_attrs, lutdepth only reports; the module passes
		// through unchanged.
		return m, nil
	case LutNot:
		opts, err := ParseLutRewriteFlags(args)
		if err != nil {
			return nil, err
		}
		out, _, err := RunLutNot(m, opts...)

		return out, err
	case LutRewriteOnce:
		opts, err := ParseLutRewriteFlags(args)
		if err != nil {
			return nil, err
		}
		out, _, err := RunLutRewriteOnce(m, opts...)

		return out, err
	case LutRewrite:
		opts, err := ParseLutRewriteFlags(args)
		if err != nil {
			return nil, err
		}
		out, _, err := RunLutRewrite(m, opts...)

		return out, err
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownCommand, cmd)
	}
}
