// Package lutrewrite implements the rewrite layer: lutdepth
// depth/envelope/critical analysis over an already-mapped lutnet.Network,
// bounded local cut enumeration via the lutrewrite/patterns stand-in for
// the host's lutcuts_pm, Ashenhurst/bound-set variable-choice search with
// optional shared-variable extraction, substitution under the depth
// envelope, and lutnot NOT-absorption.
//
// Every pass here operates on a lutnet.Network that represents a whole
// already-mapped module (every LUT, including the ones that drive module
// outputs) rather than an isolated cut: a "root" for rewriting purposes is
// simply a LUT index within that one network, and a "cut" is a connected
// sub-DAG of LUT indices rooted there.
package lutrewrite
