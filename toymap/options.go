// Package toymap — options.go implements the functional-options surface
// for RunToyMap, in the same shape as cutmap.Options/lutrewrite.Options: a
// DefaultOptions() constructor plus With... mutators.
package toymap

import (
	"log/slog"

	"github.com/lvlath-labs/toymap/lutnet"
)

// Options configures a RunToyMap call — the union of the toymap flags:
// -ff, -lut, -depth_cuts, -emit_luts/-emit_gate2, -no_exact_area,
// -trivial_cuts, -target, -unique, -dump_cuts, -scramble_lag, -balance,
// -hash.
type Options struct {
	LutSize     int
	DepthCuts   bool
	EmitGate2   bool
	NoExactArea bool
	TrivialCuts bool
	TargetDepth int
	Unique      bool
	DumpCuts    bool
	ScrambleLag bool
	Balance     bool
	Library     *lutnet.Library
	Logger      *slog.Logger

	// Quiet and WriteAttrs configure the lutdepth pass (-quiet /
	// -write_attrs): suppress the maximum-depth report, and copy
	// the per-cell depth/envelope/critical annotations back onto the
	// module's cells.
	Quiet      bool
	WriteAttrs bool

	// The following configure the rewrite-family passes (lutnot,
	// lutrewrite_once, lutrewrite): -luts, -outerfans, -leaves, -w,
	// -shared. Zero values mean "use lutrewrite.DefaultOptions", since 0 is
	// never a sensible override for any of them.
	MaxNLuts     int
	MaxOuterFans int
	MaxNLeaves   int
	WeightCutoff float64
	SearchShared bool
}

// Option mutates an Options in place.
type Option func(*Options)

// DefaultOptions returns RunToyMap's default configuration: K=4, exact
// area enabled, no depth target override, LUT cells (not Gate2) emitted.
func DefaultOptions() Options {
	return Options{
		LutSize: 4,
		Logger:  slog.Default(),
	}
}

// WithLutSize sets the mapping K (the toymap -lut flag).
func WithLutSize(k int) Option { return func(o *Options) { o.LutSize = k } }

// WithDepthCuts restricts cut enumeration to the depth-only stages
// (toymap -depth_cuts).
func WithDepthCuts() Option { return func(o *Options) { o.DepthCuts = true } }

// WithEmitGate2 exports the mapping as Gate2 cells instead of LUT cells
// (toymap -emit_gate2); requires LutSize <= 2.
func WithEmitGate2() Option { return func(o *Options) { o.EmitGate2 = true } }

// WithoutExactArea disables the exact-area stages (toymap -no_exact_area).
func WithoutExactArea() Option { return func(o *Options) { o.NoExactArea = true } }

// WithTrivialCuts maps every AND node with its two direct fanins as its
// only cut, skipping cut enumeration (toymap -trivial_cuts).
func WithTrivialCuts() Option { return func(o *Options) { o.TrivialCuts = true } }

// WithTargetDepth overrides the depth envelope target (toymap -target).
func WithTargetDepth(t int) Option { return func(o *Options) { o.TargetDepth = t } }

// WithUniquing builds the imported graph with aig.WithUniquing (toymap
// -unique/-hash: the two flags name the same mechanism). netlist.Import
// creates its AND nodes through ReserveAnd, which the structural hash does
// not cover, so duplicate AND cells in the module are not merged.
func WithUniquing() Option { return func(o *Options) { o.Unique = true } }

// WithDumpCuts logs the selected cut of every mapped node at slog.LevelDebug
// after mapping completes (toymap -dump_cuts).
func WithDumpCuts() Option { return func(o *Options) { o.DumpCuts = true } }

// WithScrambleLag requests the mapper's lag-bookkeeping stress-test hook
// (toymap -scramble_lag). Carried as a logged no-op: there is no internal
// lag-accounting state to perturb, so the flag is accepted (to avoid
// ErrUnknownFlag on scripts that pass it) and only logged. See DESIGN.md.
func WithScrambleLag() Option { return func(o *Options) { o.ScrambleLag = true } }

// WithBalance requests an extra AIG balancing pass before mapping (toymap
// -balance). Implemented as an additional Graph.Compact() call: see
// DESIGN.md for why a dedicated balancer was not built.
func WithBalance() Option { return func(o *Options) { o.Balance = true } }

// WithQuiet suppresses lutdepth's maximum-depth report (lutdepth -quiet).
func WithQuiet() Option { return func(o *Options) { o.Quiet = true } }

// WithWriteAttrs copies lutdepth's per-cell depth/depth_envelope/critical
// annotations onto the returned module's cells (lutdepth -write_attrs).
func WithWriteAttrs() Option { return func(o *Options) { o.WriteAttrs = true } }

// WithMaxNLuts sets the rewrite pass's max LUTs per cut (lutrewrite -luts).
func WithMaxNLuts(n int) Option { return func(o *Options) { o.MaxNLuts = n } }

// WithMaxOuterFans sets the rewrite pass's max external fanouts per cut
// (lutrewrite -outerfans).
func WithMaxOuterFans(n int) Option { return func(o *Options) { o.MaxOuterFans = n } }

// WithMaxNLeaves sets the rewrite pass's max leaves per cut (lutrewrite
// -leaves).
func WithMaxNLeaves(n int) Option { return func(o *Options) { o.MaxNLeaves = n } }

// WithWeightCutoff sets the rewrite pass's weight-gate cutoff
// (lutrewrite -w).
func WithWeightCutoff(w float64) Option { return func(o *Options) { o.WeightCutoff = w } }

// WithSearchShared enables shared-variable extraction during the
// rewrite pass's variable-choice search (lutrewrite -shared).
func WithSearchShared() Option { return func(o *Options) { o.SearchShared = true } }

// WithLibrary overrides the LUT cost/delay library (default:
// lutnet.AcademicLibrary(LutSize)).
func WithLibrary(lib *lutnet.Library) Option { return func(o *Options) { o.Library = lib } }

// WithLogger overrides the pass's logger (default slog.Default()).
func WithLogger(l *slog.Logger) Option { return func(o *Options) { o.Logger = l } }
