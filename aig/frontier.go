// Package aig — frontier.go implements frontier indexing: assigning each
// node a small integer fid such that, at any point during a
// reverse-topological sweep, only nodes whose fid is currently live need
// per-node scratch space. Implemented as a sweep-line interval-coloring
// pass over the reverse topological order.
//
// A node's scratch becomes live the first time any of its fanout consumers
// is visited (the consumer "touches" its fanin, allocating a slot for it if
// one is not already held) and is recycled the moment the node itself is
// visited — by which point, in reverse-topological order, every real
// consumer has necessarily already touched it.
package aig

// FrontierIndex computes a per-node fid and the peak live-set size
// (frontier_size) across one reverse-topological sweep.
func (g *Graph) FrontierIndex() (fid map[ID]int, frontierSize int, err error) {
	fwd, err := g.TopoSort()
	if err != nil {
		return nil, 0, err
	}

	n := len(fwd)
	order := make([]ID, n)
	for i, id := range fwd {
		order[n-1-i] = id
	}

	slot := make([]int, len(g.nodes))
	for i := range slot {
		slot[i] = -1
	}

	var freelist []int
	next := 0
	live, peak := 0, 0

	allocate := func(id ID) {
		var idx int
		if len(freelist) > 0 {
			idx = freelist[len(freelist)-1]
			freelist = freelist[:len(freelist)-1]
		} else {
			idx = next
			next++
		}
		slot[id] = idx
		live++
		if live > peak {
			peak = live
		}
	}

	for _, id := range order {
		if slot[id] == -1 {
			allocate(id) // untouched sink: allocated just-in-time at its own visit
		}

		nd := g.nodes[id]
		if nd.Kind == KindAnd {
			for _, e := range nd.Ins {
				if slot[e.Target] == -1 {
					allocate(e.Target)
				}
			}
		}

		// Every real consumer of id necessarily precedes it in this reverse
		// sweep, so id's slot is safe to recycle now.
		freelist = append(freelist, slot[id])
		live--
	}

	result := make(map[ID]int, len(g.nodes))
	for id := 0; id < len(g.nodes); id++ {
		result[ID(id)] = slot[id]
	}

	return result, peak, nil
}
