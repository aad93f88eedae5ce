// Package lutnet — network.go implements the LUT network: a DAG of LUTs
// over a distinguished set of leaves, with one or more outputs.
package lutnet

// Network is a DAG of LUTs rooted at its Outputs, over NumLeaves leaf
// inputs. LUT indices are stable for the lifetime of a Network; AddLUT
// appends.
type Network struct {
	NumLeaves int
	LUTs      []LUT
	Outputs   []Input
}

// NewNetwork allocates an empty network over the given number of leaves.
func NewNetwork(numLeaves int) *Network {
	return &Network{NumLeaves: numLeaves}
}

// AddLUT appends l and returns its index, usable as Input{Leaf: false,
// Index: idx} by later LUTs or as an Output.
func (n *Network) AddLUT(l LUT) int {
	idx := len(n.LUTs)
	n.LUTs = append(n.LUTs, l)

	return idx
}

// resolve reads the current boolean value of an Input given leaf values and
// already-computed LUT outputs.
func resolve(in Input, leaves []bool, luts []bool) bool {
	if in.Leaf {
		return leaves[in.Index]
	}

	return luts[in.Index]
}

// Simulate evaluates every LUT in topological order for the given leaf
// assignment and returns one boolean per Output, in Output order. Slab
// index order need not be topological: a rewrite that splices replacement
// LUTs onto the end of the slab leaves earlier consumers pointing at later
// indices until the next Clean.
func (n *Network) Simulate(leaves []bool) []bool {
	order, err := n.TopoSort()
	if err != nil {
		panic("lutnet: Simulate on a cyclic network")
	}

	return n.simulateOrder(order, leaves)
}

func (n *Network) simulateOrder(order []int, leaves []bool) []bool {
	lutVals := make([]bool, len(n.LUTs))
	for _, i := range order {
		l := n.LUTs[i]
		bits := make([]bool, l.Width)
		for k, in := range l.Inputs {
			bits[k] = resolve(in, leaves, lutVals)
		}
		lutVals[i] = l.Eval(bits)
	}

	outs := make([]bool, len(n.Outputs))
	for i, o := range n.Outputs {
		outs[i] = resolve(o, leaves, lutVals)
	}

	return outs
}

// TruthTable computes the single-output truth table of Outputs[0] over
// NumLeaves leaves, in leaf-index order (Vars[i] == VarID(i)), by brute-force
// simulation of all 2^NumLeaves assignments.
func (n *Network) TruthTable() (*TruthTable, error) {
	vars := make([]VarID, n.NumLeaves)
	for i := range vars {
		vars[i] = VarID(i)
	}
	t, err := NewTruthTable(vars)
	if err != nil {
		return nil, err
	}
	order, err := n.TopoSort()
	if err != nil {
		return nil, err
	}

	rows := t.Size()
	leaves := make([]bool, n.NumLeaves)
	for row := 0; row < rows; row++ {
		for i := 0; i < n.NumLeaves; i++ {
			bit := n.NumLeaves - 1 - i
			leaves[i] = (row>>uint(bit))&1 != 0
		}
		outs := n.simulateOrder(order, leaves)
		if outs[0] {
			t.Set(row, One)
		} else {
			t.Set(row, Zero)
		}
	}

	return t, nil
}

// TopoSort returns LUT indices ordered so every LUT appears after every
// internal LUT it reads from (three-color DFS).
func (n *Network) TopoSort() ([]int, error) {
	const (
		white = iota
		gray
		black
	)
	state := make([]int, len(n.LUTs))
	order := make([]int, 0, len(n.LUTs))

	var visit func(i int) error
	visit = func(i int) error {
		switch state[i] {
		case black:
			return nil
		case gray:
			return ErrCycleDetected
		}
		state[i] = gray
		for _, in := range n.LUTs[i].Inputs {
			if in.Leaf {
				continue
			}
			if err := visit(in.Index); err != nil {
				return err
			}
		}
		state[i] = black
		order = append(order, i)

		return nil
	}

	for i := range n.LUTs {
		if state[i] == white {
			if err := visit(i); err != nil {
				return nil, err
			}
		}
	}

	return order, nil
}

// Clean removes every LUT not reachable from Outputs, compacting the slab
// in topological order (a post-rewrite slab with appended replacement LUTs
// comes out of Clean index-ordered again). Returns the number of LUTs
// deleted. Callers holding LUT indices across a Clean must re-derive them.
func (n *Network) Clean() int {
	visited := make([]bool, len(n.LUTs))
	var order []int // postorder from outputs: topological over the kept set

	var visit func(i int)
	visit = func(i int) {
		if visited[i] {
			return
		}
		visited[i] = true
		for _, in := range n.LUTs[i].Inputs {
			if !in.Leaf {
				visit(in.Index)
			}
		}
		order = append(order, i)
	}
	for _, o := range n.Outputs {
		if !o.Leaf {
			visit(o.Index)
		}
	}

	deleted := len(n.LUTs) - len(order)
	remap := make([]int, len(n.LUTs))
	kept := make([]LUT, 0, len(order))
	for _, i := range order {
		remap[i] = len(kept)
		kept = append(kept, n.LUTs[i])
	}
	n.LUTs = kept
	for i := range n.LUTs {
		for j, in := range n.LUTs[i].Inputs {
			if !in.Leaf {
				n.LUTs[i].Inputs[j].Index = remap[in.Index]
			}
		}
	}
	for i, o := range n.Outputs {
		if !o.Leaf {
			n.Outputs[i].Index = remap[o.Index]
		}
	}

	return deleted
}

// Depth computes the logic depth of every LUT given leafDepth, the depth
// already accumulated at each leaf (0 if the leaves are primary inputs),
// as depth(c) = 1 + max(depth(predecessor), 0). Returns per-LUT
// depth and the output depth (depth of Outputs[0]).
func (n *Network) Depth(leafDepth []int) (lutDepth []int, outputDepth int, err error) {
	order, err := n.TopoSort()
	if err != nil {
		return nil, 0, err
	}
	lutDepth = make([]int, len(n.LUTs))
	depthOf := func(in Input) int {
		if in.Leaf {
			return leafDepth[in.Index]
		}
		return lutDepth[in.Index]
	}
	for _, i := range order {
		max := 0
		for _, in := range n.LUTs[i].Inputs {
			if d := depthOf(in); d > max {
				max = d
			}
		}
		lutDepth[i] = max + 1
	}
	if len(n.Outputs) > 0 {
		outputDepth = depthOf(n.Outputs[0])
	}

	return lutDepth, outputDepth, nil
}
