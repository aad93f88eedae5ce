// Package aig implements the graph layer of toymap: the And-Inverter Graph
// node store, edge attributes (negation and register lag), structural
// normalization, topological ordering, and fanout/frontier bookkeeping.
//
// An aig.Graph owns a slab of Node values addressed by ID (a plain integer
// index, not a pointer). Edge.Target references are non-owning: deletion only
// happens in Clean, after the reachable set from the current roots has been
// re-established, the same ownership discipline the dfs/bfs traversal
// packages this is grounded on apply to string-keyed vertices.
//
// Registers are modeled as an integer "lag" carried directly on each edge
// (together with the per-stage initial values), not as separate nodes: the
// zero-lag projection of the graph is a DAG, but nonzero lag may close
// cycles. CoverNode lazily unrolls these during cut enumeration; no
// time-shifted copies of nodes are ever materialized.
package aig
