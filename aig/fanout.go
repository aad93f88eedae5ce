package aig

// Fanouts returns the number of edges across the whole graph whose target
// is id, plus 1 if id is itself a PO. This is a full O(nodes) scan;
// callers that need it repeatedly should compute it once via FanoutCounts.
func (g *Graph) Fanouts(id ID) int {
	counts := g.FanoutCounts()

	return counts[id]
}

// FanoutCounts computes Fanouts for every node in one O(V+E) pass.
func (g *Graph) FanoutCounts() []int {
	counts := make([]int, len(g.nodes))
	for _, n := range g.nodes {
		if n.Kind != KindAnd {
			continue
		}
		for _, e := range n.Ins {
			counts[e.Target]++
		}
	}
	for _, po := range g.poOrder {
		counts[po]++
	}

	return counts
}
