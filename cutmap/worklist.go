// Package cutmap — worklist.go implements the depth-limit propagation
// worklist used by spreadDepthLimit between evaluator stages. Rather
// than a second full reverse-topological pass, only nodes whose
// depth_limit actually changed get pushed, using a container/heap ordered
// by reverse-topological rank — the same Push/Pop/Fix shape as
// dijkstra.go's vertexHeap and prim_kruskal/prim.go's fringe heap, applied
// to sparse depth-limit updates instead of shortest-path distances.
package cutmap

import (
	"container/heap"

	"github.com/lvlath-labs/toymap/aig"
)

type rankedItem struct {
	id   aig.ID
	rank int // reverse-topological rank: higher rank == closer to the POs
}

type rankHeap []rankedItem

func (h rankHeap) Len() int           { return len(h) }
func (h rankHeap) Less(i, j int) bool { return h[i].rank > h[j].rank } // process sinks-first
func (h rankHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *rankHeap) Push(x any)        { *h = append(*h, x.(rankedItem)) }
func (h *rankHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]

	return item
}

// spreadDepthLimit propagates the depth envelope: depth_limit =
// T+1 on every PO, infinite elsewhere, then propagated backward so that for
// every cut-edge (p -> m), depth_limit(m) = min(depth_limit(m),
// depth_limit(p) - 1).
func (st *State) spreadDepthLimit(target int) error {
	rank := make(map[aig.ID]int, st.Graph.NumNodes())
	order, err := st.Graph.TopoSort()
	if err != nil {
		return err
	}
	for i, id := range order {
		rank[id] = i
	}

	for id := aig.ID(0); int(id) < st.Graph.NumNodes(); id++ {
		st.Scratch[id].DepthLimit = maxDepthLimit
	}

	wl := &rankHeap{}
	heap.Init(wl)
	inQueue := make(map[aig.ID]bool, st.Graph.NumNodes())
	push := func(id aig.ID) {
		if inQueue[id] {
			return
		}
		inQueue[id] = true
		heap.Push(wl, rankedItem{id: id, rank: rank[id]})
	}

	for _, po := range st.Graph.POs() {
		st.Scratch[po].DepthLimit = target + 1
		push(po)
	}

	for wl.Len() > 0 {
		item := heap.Pop(wl).(rankedItem)
		inQueue[item.id] = false
		s := st.Scratch[item.id]
		cut := s.SelectedCut()
		for _, cn := range cut {
			ms := st.Scratch[cn.Node]
			candidate := s.DepthLimit - 1
			if candidate < ms.DepthLimit {
				ms.DepthLimit = candidate
				push(cn.Node)
			}
		}
	}

	return nil
}
