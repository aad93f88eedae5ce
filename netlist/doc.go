// Package netlist is the neutral module representation the passes operate
// on: since no host synthesis framework is wired into this module,
// netlist.Module plays that role — primary inputs/outputs by name, a list
// of cells, and the net names wiring them together — and Import/Export
// bridge it to aig.Graph and lutnet.Network.
package netlist
