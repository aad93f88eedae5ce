// SPDX-License-Identifier: MIT
// Package testutil generates random AIGs for property-based round-trip
// tests, with a seeded-RNG functional-option contract so generation is
// reproducible.
package testutil

import (
	"math/rand"
	"strconv"

	"github.com/lvlath-labs/toymap/aig"
)

// Option configures RandomAIG.
type Option func(*config)

type config struct {
	rng *rand.Rand
}

// WithSeed creates a new *rand.Rand with the given seed, for reproducible
// generation in tests.
func WithSeed(seed int64) Option {
	return func(c *config) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithRand supplies an explicit RNG. Panics on nil: a nil RNG is a
// programmer error, not a data problem.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("testutil: WithRand(nil)")
	}
	return func(c *config) { c.rng = r }
}

func defaultConfig() config {
	return config{rng: rand.New(rand.NewSource(1))}
}

// RandomAIG builds a random combinational AIG with nPIs primary inputs and
// nAnds AND gates, each gate's two inputs drawn uniformly (with independent
// random negation) from the constants and any node already constructed
// (PIs or earlier gates), guaranteeing acyclicity by construction. A single
// PO is attached to the final gate.
func RandomAIG(nPIs, nAnds int, opts ...Option) *aig.Graph {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	g := aig.NewGraph()
	pool := []aig.ID{aig.Const0}
	for i := 0; i < nPIs; i++ {
		pool = append(pool, g.AddPI(pinLabel(i)))
	}

	randEdge := func() aig.Edge {
		target := pool[cfg.rng.Intn(len(pool))]
		return aig.Edge{Target: target, Negated: cfg.rng.Intn(2) == 0}
	}

	var last aig.ID
	for i := 0; i < nAnds; i++ {
		id := g.AddAnd(randEdge(), randEdge(), andLabel(i))
		pool = append(pool, id)
		last = id
	}
	if nAnds == 0 {
		last = pool[len(pool)-1]
	}
	g.AddPO("y", aig.Edge{Target: last})

	return g
}

func pinLabel(i int) string {
	return "pi" + strconv.Itoa(i)
}

func andLabel(i int) string {
	return "g" + strconv.Itoa(i)
}
