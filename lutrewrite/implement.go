// Package lutrewrite — implement.go materializes the levelPlan chain
// ExploreVarChoices found into a concrete lutnet.Network: one LUT
// per selector variable at each level, feeding a final LUT built from the
// innermost base-case table.
package lutrewrite

import "github.com/lvlath-labs/toymap/lutnet"

// implementVarChoices builds a standalone network realizing plan, whose
// leaves are leafOf(v) for every original (non-synthetic) variable v
// reachable from plan. Each selector LUT's truth table is read directly off
// the bound-set fragment assignment computed during the search: selector
// LUT j's output bit at bound-set code bs is bit j of bsToFrag[bs].
func implementVarChoices(plan *levelPlan, numLeaves int, leafOf func(lutnet.VarID) lutnet.Input) (*lutnet.Network, error) {
	net := &lutnet.Network{NumLeaves: numLeaves}
	produced := map[lutnet.VarID]lutnet.Input{}

	var walk func(p *levelPlan) (lutnet.Input, error)
	walk = func(p *levelPlan) (lutnet.Input, error) {
		if p.Bn == 0 {
			return buildBaseLUT(net, p.Table, leafOf, produced)
		}

		bsToFrag := p.BSToFrag
		nsel := len(p.SelVars)
		bsVars := p.Vars[:p.Bn]
		bsInputs := make([]lutnet.Input, p.Bn)
		for i, v := range bsVars {
			in, err := resolveInput(v, leafOf, produced)
			if err != nil {
				return lutnet.Input{}, err
			}
			bsInputs[i] = in
		}

		for j := 0; j < nsel; j++ {
			tt, err := lutnet.NewTruthTable(varRangeForBS(p.Bn))
			if err != nil {
				return lutnet.Input{}, err
			}
			for bs := 0; bs < (1 << uint(p.Bn)); bs++ {
				code := bsToFrag[bs]
				bit := (code >> uint(j)) & 1
				if bit == 1 {
					tt.Set(bs, lutnet.One)
				} else {
					tt.Set(bs, lutnet.Zero)
				}
			}
			lut, err := lutnet.LUTFromTable(tt, bsInputs)
			if err != nil {
				return lutnet.Input{}, err
			}
			idx := net.AddLUT(*lut)
			produced[p.SelVars[j]] = lutnet.Input{Leaf: false, Index: idx}
		}

		return walk(p.Next)
	}

	out, err := walk(plan)
	if err != nil {
		return nil, err
	}
	net.Outputs = []lutnet.Input{out}

	return net, nil
}

func resolveInput(v lutnet.VarID, leafOf func(lutnet.VarID) lutnet.Input, produced map[lutnet.VarID]lutnet.Input) (lutnet.Input, error) {
	if in, ok := produced[v]; ok {
		return in, nil
	}

	return leafOf(v), nil
}

func buildBaseLUT(net *lutnet.Network, table *lutnet.TruthTable, leafOf func(lutnet.VarID) lutnet.Input, produced map[lutnet.VarID]lutnet.Input) (lutnet.Input, error) {
	inputs := make([]lutnet.Input, table.NumVars())
	for i, v := range table.Vars {
		in, err := resolveInput(v, leafOf, produced)
		if err != nil {
			return lutnet.Input{}, err
		}
		inputs[i] = in
	}
	lut, err := lutnet.LUTFromTable(table, inputs)
	if err != nil {
		return lutnet.Input{}, err
	}
	idx := net.AddLUT(*lut)

	return lutnet.Input{Leaf: false, Index: idx}, nil
}

func varRangeForBS(bn int) []lutnet.VarID {
	vars := make([]lutnet.VarID, bn)
	for i := range vars {
		vars[i] = lutnet.VarID(i)
	}

	return vars
}
