// Package toymap is the host-facing pass dispatcher: it glues the
// aig/cutmap/lutrewrite layers together against the neutral netlist.Module
// representation, the way a real synthesis framework's mapper entry point
// would glue a priority-cut mapper to its host's netlist. Each Command
// corresponds to one of the flag.FlagSet-parsed CLI passes cmd/toymap
// exposes.
package toymap
