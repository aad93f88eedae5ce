// Package cutmap implements the mapping layer: priority-cut
// enumeration over an aig.Graph, a five-stage evaluator pipeline
// (depth -> depth-with-limit -> area-flow -> repeated area-flow -> exact
// area), mapping reference counts, and depth-limit propagation between
// stages.
//
// cutmap never writes into aig.Node itself: every per-node working field
// (the cut
// leaderboard, map_fanouts, depth, depth_limit, area/edge flow) lives in a
// disjoint side table, State.Scratch, indexed by aig.ID and owned entirely
// by this package.
package cutmap
