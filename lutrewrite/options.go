// Package lutrewrite — options.go: functional options for the rewrite
// pass, in the same Option func(*Options)/DefaultOptions shape used
// throughout this module (aig.GraphOption, cutmap.Option).
package lutrewrite

import "log/slog"

// Options configures one LutRewrite run. Defaults: max_nluts=20,
// max_nouterfans=1, max_nleaves=9, lut_min=3, lut_size=4 (K),
// w_cutoff=1.01.
type Options struct {
	MaxNLuts     int
	MaxOuterFans int
	MaxNLeaves   int
	LutMin       int
	LutSize      int
	WeightCutoff float64
	TargetDepth  int
	SearchShared bool
	Logger       *slog.Logger
}

// Option mutates an Options in place.
type Option func(*Options)

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		MaxNLuts:     20,
		MaxOuterFans: 1,
		MaxNLeaves:   9,
		LutMin:       3,
		LutSize:      4,
		WeightCutoff: 1.01,
		Logger:       slog.Default(),
	}
}

// NewOptions builds an Options from DefaultOptions with opts applied.
func NewOptions(opts ...Option) Options {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

func WithMaxNLuts(n int) Option { return func(o *Options) { o.MaxNLuts = n } }

func WithMaxOuterFans(n int) Option { return func(o *Options) { o.MaxOuterFans = n } }

func WithMaxNLeaves(n int) Option { return func(o *Options) { o.MaxNLeaves = n } }

func WithLutRange(min, size int) Option {
	return func(o *Options) { o.LutMin, o.LutSize = min, size }
}

func WithWeightCutoff(w float64) Option { return func(o *Options) { o.WeightCutoff = w } }

func WithTargetDepth(target int) Option { return func(o *Options) { o.TargetDepth = target } }

// WithSearchShared enables shared-variable extraction during
// variable-choice search (lutrewrite -shared).
func WithSearchShared(v bool) Option { return func(o *Options) { o.SearchShared = v } }

func WithLogger(l *slog.Logger) Option { return func(o *Options) { o.Logger = l } }
