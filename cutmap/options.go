// Package cutmap — options.go implements the functional-options
// configuration surface: a DefaultOptions() constructor plus validating
// option functions that panic on programmer error (never on data-shaped
// problems).
package cutmap

import (
	"log/slog"

	"github.com/lvlath-labs/toymap/internal/invariant"
)

// Options configures a Map call.
type Options struct {
	MaxCutSize               int
	NPriorityCuts            int
	PreviousCutConsideration bool
	ExactArea                bool
	TrivialCuts              bool
	DepthCutsOnly            bool
	TargetDepth              int // 0 means "use attained depth from stage 1"
	Logger                   *slog.Logger
}

// Option mutates an Options in place.
type Option func(*Options)

// DefaultOptions returns the mapper's default configuration: K=4,
// NPRIORITY_CUTS=8, exact-area enabled, no depth target override.
func DefaultOptions() Options {
	return Options{
		MaxCutSize:    4,
		NPriorityCuts: DefaultNPriorityCuts,
		ExactArea:     true,
		Logger:        slog.Default(),
	}
}

// WithMaxCutSize sets the mapping K. Panics if k is outside (0, 6]
// per MaxCutSize — a caller passing an invalid K is a programmer error, not
// a data problem.
func WithMaxCutSize(k int) Option {
	invariant.Check(k > 0 && k <= MaxCutSize, "cutmap: max cut size %d out of range", k)

	return func(o *Options) { o.MaxCutSize = k }
}

// WithNPriorityCuts sets the leaderboard depth (default 8).
func WithNPriorityCuts(n int) Option {
	invariant.Check(n > 0, "cutmap: n priority cuts must be positive, got %d", n)

	return func(o *Options) { o.NPriorityCuts = n }
}

// WithPreviousCutConsideration enables optional leaderboard seeding: the
// node's previously-selected cut is always
// included as a candidate, tagged with a sentinel hash so it sorts after
// equal-metric fresh candidates.
func WithPreviousCutConsideration() Option {
	return func(o *Options) { o.PreviousCutConsideration = true }
}

// WithoutExactArea disables stage 5 (the `-no_exact_area` toymap flag),
// stopping the pipeline after the repeated area-flow stage.
func WithoutExactArea() Option {
	return func(o *Options) { o.ExactArea = false }
}

// WithTrivialCuts selects each AND node's two direct fanins as its only
// cut, skipping enumeration entirely (the `-trivial_cuts` flag): the
// result is exactly one width-2 LUT per AND node.
func WithTrivialCuts() Option {
	return func(o *Options) { o.TrivialCuts = true }
}

// WithDepthCutsOnly stops the pipeline after the depth-only stages
// (1 and 2), skipping the area stages — the `-depth_cuts` flag.
func WithDepthCutsOnly() Option {
	return func(o *Options) { o.DepthCutsOnly = true }
}

// WithTargetDepth overrides the depth envelope target T used by
// spreadDepthLimit instead of the attained stage-1 PO depth. If target is
// below the attained depth, Map logs a warning and falls back to the
// attained depth.
func WithTargetDepth(target int) Option {
	invariant.Check(target >= 0, "cutmap: target depth must be non-negative, got %d", target)

	return func(o *Options) { o.TargetDepth = target }
}

// WithLogger overrides the default logger.
func WithLogger(l *slog.Logger) Option {
	invariant.Check(l != nil, "cutmap: logger must not be nil")

	return func(o *Options) { o.Logger = l }
}
