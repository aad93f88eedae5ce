// Package lutnet implements the shared LUT / LUT-network / truth-table /
// library data model used by both the mapping layer (cutmap, which emits
// LUTs) and the rewrite layer (lutrewrite, which consumes and re-emits
// them).
//
// A Network is a DAG of fixed-width LUTs over a distinguished set of
// leaves. Truth tables are dense, word-packed ternary bit vectors (values +
// dontcares bitsets) rather than map-keyed, keeping the hot simulation
// loops free of per-row allocation.
package lutnet
