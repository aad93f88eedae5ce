// Package lutnet — truthtable.go implements a truth table over n
// variables as a dense bit-vector pair (values, dontcares), MSB-to-LSB
// indexed by Vars.
package lutnet

// VarID identifies a truth-table variable: a leaf index in the enclosing
// cut/cone (never an internal LUT — truth tables are always over leaves).
type VarID int

// TriState is a ternary value: 0, 1, or don't-care. Mirrors aig.TriState
// but kept independent since lutnet must not import aig (it is shared by
// both the mapping and rewrite layers, neither of which owns the other).
type TriState uint8

const (
	Zero TriState = iota
	One
	X
)

// TruthTable holds vars (ordered, unique identifiers) plus values and
// dontcares (both length 2^|vars|, MSB-to-LSB indexed by vars).
type TruthTable struct {
	Vars      []VarID
	Values    Bits
	DontCares Bits
}

// NewTruthTable allocates a truth table over vars, all rows initialized to
// don't-care. Returns ErrDuplicateVar if vars contains a repeated entry.
func NewTruthTable(vars []VarID) (*TruthTable, error) {
	seen := make(map[VarID]bool, len(vars))
	for _, v := range vars {
		if seen[v] {
			return nil, ErrDuplicateVar
		}
		seen[v] = true
	}
	if len(vars) > 20 {
		return nil, ErrWidthTooLarge
	}
	n := 1 << uint(len(vars))
	dc := newBits(n)
	for i := range dc {
		dc[i] = ^uint64(0)
	}

	return &TruthTable{
		Vars:      append([]VarID(nil), vars...),
		Values:    newBits(n),
		DontCares: dc,
	}, nil
}

// NumVars returns |Vars|.
func (t *TruthTable) NumVars() int { return len(t.Vars) }

// Size returns 2^|Vars|, the number of rows.
func (t *TruthTable) Size() int { return 1 << uint(len(t.Vars)) }

// Get returns the ternary value at row, where row's bits are MSB-to-LSB
// indexed by Vars (bit for Vars[0] is the most significant).
func (t *TruthTable) Get(row int) TriState {
	if t.DontCares.get(row) {
		return X
	}
	if t.Values.get(row) {
		return One
	}

	return Zero
}

// Set assigns row's ternary value.
func (t *TruthTable) Set(row int, v TriState) {
	switch v {
	case X:
		t.DontCares.set(row, true)
		t.Values.set(row, false)
	case One:
		t.DontCares.set(row, false)
		t.Values.set(row, true)
	default:
		t.DontCares.set(row, false)
		t.Values.set(row, false)
	}
}

// Clone returns a deep, independent copy.
func (t *TruthTable) Clone() *TruthTable {
	return &TruthTable{
		Vars:      append([]VarID(nil), t.Vars...),
		Values:    t.Values.clone(),
		DontCares: t.DontCares.clone(),
	}
}

// Equal reports whether two tables over the same variable ordering agree on
// every row. Tables over differing Vars are never equal, even if logically
// equivalent under a permutation — callers that need permutation-invariant
// comparison must align Vars first.
func (t *TruthTable) Equal(o *TruthTable) bool {
	if len(t.Vars) != len(o.Vars) {
		return false
	}
	for i := range t.Vars {
		if t.Vars[i] != o.Vars[i] {
			return false
		}
	}

	return t.Values.equal(o.Values) && t.DontCares.equal(o.DontCares)
}

// SwapVars exchanges the positions of Vars[i] and Vars[j] (0-indexed,
// Vars[0] most significant) and permutes every row of Values/DontCares to
// match, in place. Used by the variable-choice search to bring the chosen
// bound-set variables to the high positions of the table; the same table
// is reused in place across search iterations, which is sound because the
// search metric depends on fragment shape, not absolute variable index.
func (t *TruthTable) SwapVars(i, j int) {
	if i == j {
		return
	}
	n := len(t.Vars)
	bitI := uint(n - 1 - i)
	bitJ := uint(n - 1 - j)

	newValues := newBits(t.Size())
	newDC := newBits(t.Size())
	for row := 0; row < t.Size(); row++ {
		swapped := swapBits(row, bitI, bitJ)
		newValues.set(swapped, t.Values.get(row))
		newDC.set(swapped, t.DontCares.get(row))
	}
	t.Values, t.DontCares = newValues, newDC
	t.Vars[i], t.Vars[j] = t.Vars[j], t.Vars[i]
}

func swapBits(v int, a, b uint) int {
	bitA := (v >> a) & 1
	bitB := (v >> b) & 1
	if bitA == bitB {
		return v
	}
	v ^= 1 << a
	v ^= 1 << b

	return v
}

// VarIndex returns the position of id within Vars, or -1.
func (t *TruthTable) VarIndex(id VarID) int {
	for i, v := range t.Vars {
		if v == id {
			return i
		}
	}

	return -1
}
