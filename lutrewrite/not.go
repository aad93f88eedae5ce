// Package lutrewrite — not.go implements the lutnot pass: absorbing
// single-fanout inverting LUTs into their driver (by flipping the
// driver's output bits) or into their consumer (by permuting the
// consumer's input mask).
package lutrewrite

import "github.com/lvlath-labs/toymap/lutnet"

// isInverter reports whether lut is a two-row (Width==1) LUT computing NOT
// of its single input.
func isInverter(lut lutnet.LUT) bool {
	if lut.Width != 1 {
		return false
	}

	return lut.Get(0) == lutnet.One && lut.Get(1) == lutnet.Zero
}

// LutNot rewrites net in place: every inverter whose driver LUT has no
// fanout besides the inverter is absorbed by flipping the driver's
// output. An inverter fed directly by a leaf, or whose driver fans out
// elsewhere, is instead absorbed into its consumer by permuting that
// consumer's input mask, provided it feeds exactly one LUT input and no
// network output; any other inverter is left in place. Returns the number
// of inverters absorbed.
func LutNot(net *lutnet.Network) int {
	fanout := globalFanoutOf(net)
	absorbed := 0

	for i := range net.LUTs {
		if !isInverter(net.LUTs[i]) {
			continue
		}
		driver := net.LUTs[i].Inputs[0]

		switch {
		case !driver.Leaf && fanout[driver.Index] == 1:
			net.LUTs[driver.Index].FlipOutput()
			rewire(net, i, driver)
			absorbed++
		default:
			if absorbedIntoConsumer(net, i) {
				absorbed++
			}
		}
	}

	return absorbed
}

func globalFanoutOf(net *lutnet.Network) []int {
	count := make([]int, len(net.LUTs))
	for _, l := range net.LUTs {
		for _, in := range l.Inputs {
			if !in.Leaf {
				count[in.Index]++
			}
		}
	}
	for _, o := range net.Outputs {
		if !o.Leaf {
			count[o.Index]++
		}
	}

	return count
}

// rewire replaces every reference to the inverter at index inv with
// replacement, then turns the inverter into a dead pass-through (it keeps
// occupying its slot since indices are stable, but nothing reaches it).
func rewire(net *lutnet.Network, inv int, replacement lutnet.Input) {
	target := lutnet.Input{Leaf: false, Index: inv}
	for i := range net.LUTs {
		if i == inv {
			continue
		}
		for j, in := range net.LUTs[i].Inputs {
			if in == target {
				net.LUTs[i].Inputs[j] = replacement
			}
		}
	}
	for i, o := range net.Outputs {
		if o == target {
			net.Outputs[i] = replacement
		}
	}
}

// absorbedIntoConsumer is the fallback: when the inverter's driver cannot
// absorb it (shared fanout, or a leaf driver), and
// the inverter itself has exactly one consumer, that consumer's truth
// table is permuted under the inverter's input mask bit instead, and the
// inverter is bypassed.
func absorbedIntoConsumer(net *lutnet.Network, inv int) bool {
	target := lutnet.Input{Leaf: false, Index: inv}
	var consumer, bit int
	found := 0
	for i := range net.LUTs {
		if i == inv {
			continue
		}
		for j, in := range net.LUTs[i].Inputs {
			if in == target {
				consumer, bit = i, len(net.LUTs[i].Inputs)-1-j
				found++
			}
		}
	}
	for _, o := range net.Outputs {
		if o == target {
			return false // an inverter feeding a primary output has no LUT consumer to absorb into
		}
	}
	if found != 1 {
		return false
	}

	net.LUTs[consumer].PermuteInputMask(uint(bit))
	driver := net.LUTs[inv].Inputs[0]
	for j, in := range net.LUTs[consumer].Inputs {
		if in == target {
			net.LUTs[consumer].Inputs[j] = driver
		}
	}

	return true
}
