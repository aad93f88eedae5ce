// Package toymap — flags.go implements the small per-command flag layer
// on top of the standard flag.FlagSet.
package toymap

import (
	"flag"
	"fmt"
)

// ParseToyMapFlags parses the toymap pass's argument list (-ff, -lut,
// -depth_cuts, -emit_luts, -emit_gate2, -no_exact_area, -trivial_cuts,
// -target, -unique, -hash, -dump_cuts, -scramble_lag, -balance) into a
// slice of Options ready for RunToyMap.
func ParseToyMapFlags(args []string) ([]Option, error) {
	fs := flag.NewFlagSet("toymap", flag.ContinueOnError)
	lut := fs.Int("lut", 4, "LUT size K")
	depthCuts := fs.Bool("depth_cuts", false, "restrict cut enumeration to depth-only stages")
	emitGate2 := fs.Bool("emit_gate2", false, "export Gate2 cells instead of LUT cells (requires -lut<=2)")
	// -emit_luts names the default export; accepted so command lines like
	// "-trivial_cuts -emit_luts" parse, and so an explicit -emit_luts can
	// never be combined away silently by a later -emit_gate2.
	emitLuts := fs.Bool("emit_luts", false, "export LUT cells (the default)")
	noExactArea := fs.Bool("no_exact_area", false, "skip the exact-area evaluator stages")
	trivialCuts := fs.Bool("trivial_cuts", false, "map every AND node with its two direct fanins as its only cut")
	target := fs.Int("target", 0, "depth envelope target (0 = use attained stage-1 depth)")
	unique := fs.Bool("unique", false, "build the imported AIG with structural hashing enabled (AND cells reserved by import are not merged)")
	hash := fs.Bool("hash", false, "alias for -unique")
	dumpCuts := fs.Bool("dump_cuts", false, "log every mapped node's selected cut")
	scrambleLag := fs.Bool("scramble_lag", false, "lag-bookkeeping stress-test hook (accepted; no-op)")
	balance := fs.Bool("balance", false, "run an extra balancing pass before mapping")
	// -ff is accepted for script compatibility but has no effect: register
	// feedback is always supported by netlist.Import's edge model.
	fs.Bool("ff", true, "register-aware import (always on)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownFlag, err)
	}

	if *emitLuts && *emitGate2 {
		return nil, fmt.Errorf("%w: -emit_luts and -emit_gate2 are mutually exclusive", ErrUnknownFlag)
	}

	opts := []Option{WithLutSize(*lut)}
	if *depthCuts {
		opts = append(opts, WithDepthCuts())
	}
	if *emitGate2 {
		opts = append(opts, WithEmitGate2())
	}
	if *noExactArea {
		opts = append(opts, WithoutExactArea())
	}
	if *trivialCuts {
		opts = append(opts, WithTrivialCuts())
	}
	if *target > 0 {
		opts = append(opts, WithTargetDepth(*target))
	}
	if *unique || *hash {
		opts = append(opts, WithUniquing())
	}
	if *dumpCuts {
		opts = append(opts, WithDumpCuts())
	}
	if *scrambleLag {
		opts = append(opts, WithScrambleLag())
	}
	if *balance {
		opts = append(opts, WithBalance())
	}

	return opts, nil
}

// ParseLutDepthFlags parses the lutdepth pass's argument list (-quiet,
// -target, -write_attrs) into Options plus the target override.
func ParseLutDepthFlags(args []string) ([]Option, int, error) {
	fs := flag.NewFlagSet("lutdepth", flag.ContinueOnError)
	quiet := fs.Bool("quiet", false, "suppress the maximum-depth report")
	target := fs.Int("target", 0, "depth envelope target (0 = report attained depth)")
	writeAttrs := fs.Bool("write_attrs", false, "write depth/depth_envelope/critical attributes onto LUT cells")
	if err := fs.Parse(args); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrUnknownFlag, err)
	}

	var opts []Option
	if *quiet {
		opts = append(opts, WithQuiet())
	}
	if *writeAttrs {
		opts = append(opts, WithWriteAttrs())
	}

	return opts, *target, nil
}

// ParseLutRewriteFlags parses the lutnot/lutrewrite_once/lutrewrite
// passes' shared argument list (-lut, -luts, -outerfans, -leaves, -w,
// -shared, -target; -root is accepted but has no effect, see DESIGN.md).
func ParseLutRewriteFlags(args []string) ([]Option, error) {
	fs := flag.NewFlagSet("lutrewrite", flag.ContinueOnError)
	lut := fs.Int("lut", 4, "LUT size K")
	target := fs.Int("target", 0, "depth envelope target override")
	luts := fs.Int("luts", 0, "max LUTs per rewrite cut (0 = lutrewrite.Options default)")
	outerfans := fs.Int("outerfans", 0, "max external fanouts per rewrite cut (0 = lutrewrite.Options default)")
	leaves := fs.Int("leaves", 0, "max leaves per rewrite cut (0 = lutrewrite.Options default)")
	w := fs.Float64("w", 0, "weight cutoff (0 = lutrewrite.Options default)")
	shared := fs.Bool("shared", false, "enable shared-variable extraction during variable-choice search")
	fs.String("root", "", "restrict rewriting to a single root cell (accepted; not implemented)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownFlag, err)
	}

	opts := []Option{WithLutSize(*lut)}
	if *target > 0 {
		opts = append(opts, WithTargetDepth(*target))
	}
	if *luts > 0 {
		opts = append(opts, WithMaxNLuts(*luts))
	}
	if *outerfans > 0 {
		opts = append(opts, WithMaxOuterFans(*outerfans))
	}
	if *leaves > 0 {
		opts = append(opts, WithMaxNLeaves(*leaves))
	}
	if *w > 0 {
		opts = append(opts, WithWeightCutoff(*w))
	}
	if *shared {
		opts = append(opts, WithSearchShared())
	}

	return opts, nil
}
