// Package patterns implements a subgraph enumerator: given a root LUT in
// a lutnet.Network, it yields every local
// cut satisfying the caller's (max_nluts, max_nouterfans, max_nleaves)
// bound. lutrewrite is the contract's sole caller; this package knows
// nothing about rewriting, only about growing acyclic LUT subgraphs.
package patterns
