// Package lutnet — library.go implements a library of available LUT
// varieties, each with a width, integer cost, and per-input delays, and a
// Lookup(w) returning the cheapest variety whose width covers w.
package lutnet

import "sort"

// Variety is one LUT shape a library makes available.
type Variety struct {
	Width  int
	Cost   int
	Delays []int // per-input delay, length == Width
}

// Library holds the varieties lookup(w) chooses among.
type Library struct {
	varieties []Variety
}

// NewLibrary builds a Library from an explicit variety list.
func NewLibrary(varieties ...Variety) *Library {
	vs := append([]Variety(nil), varieties...)
	sort.Slice(vs, func(i, j int) bool { return vs[i].Width < vs[j].Width })

	return &Library{varieties: vs}
}

// AcademicLibrary returns the "academic" library: a single variety
// of the requested width, cost 1, unit delays on every input.
func AcademicLibrary(width int) *Library {
	delays := make([]int, width)
	for i := range delays {
		delays[i] = 1
	}

	return NewLibrary(Variety{Width: width, Cost: 1, Delays: delays})
}

// CommercialLibrary returns a small built-in library with graduated
// cost/delay varieties up to maxWidth, standing in for a real cell
// library's area/timing tradeoffs (used by tests; the CLI has no flag for
// it). A width-w variety costs 1 + w/2 (so a 4-LUT costs 3 and a 6-LUT
// costs 4) and has a per-input delay of 1 + w/4.
func CommercialLibrary(maxWidth int) *Library {
	var vs []Variety
	for w := 1; w <= maxWidth; w++ {
		cost := 1 + w/2
		delays := make([]int, w)
		for i := range delays {
			delays[i] = 1 + w/4
		}
		vs = append(vs, Variety{Width: w, Cost: cost, Delays: delays})
	}

	return NewLibrary(vs...)
}

// Lookup returns the cheapest variety whose width >= w.
func (lib *Library) Lookup(w int) (Variety, error) {
	best := -1
	for i, v := range lib.varieties {
		if v.Width < w {
			continue
		}
		if best == -1 || v.Cost < lib.varieties[best].Cost {
			best = i
		}
	}
	if best == -1 {
		return Variety{}, ErrNoVariety
	}

	return lib.varieties[best], nil
}

// Cost is a convenience wrapper returning just Lookup(w).Cost, used
// throughout cutmap's area evaluators. If no variety satisfies w it
// returns 1<<30, a cost large enough that such a cut is never selected.
func (lib *Library) Cost(w int) int {
	v, err := lib.Lookup(w)
	if err != nil {
		return 1 << 30 // unsatisfiable: treat as prohibitively expensive, never selected
	}

	return v.Cost
}

// MaxWidth returns the widest variety this library supports.
func (lib *Library) MaxWidth() int {
	max := 0
	for _, v := range lib.varieties {
		if v.Width > max {
			max = v.Width
		}
	}

	return max
}
