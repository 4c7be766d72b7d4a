package pbf

import (
	"fmt"
	"sort"
)

// Energy accumulates a pseudo-boolean function over NumVars() binary
// variables: a constant, monomials and submodular cliques kept whole (see
// AddClique). The zero value is not usable; call NewEnergy.
//
// Energy is not safe for concurrent mutation. Parallel producers build one
// Energy each and Merge them afterwards.
type Energy struct {
	numVars  int
	constant float64
	terms    map[termKey]float64
	cliques  []Clique
	scratch  [MaxDegree]int32
}

// NewEnergy returns an empty energy over n variables.
func NewEnergy(n int) *Energy {
	return &Energy{numVars: n, terms: make(map[termKey]float64)}
}

// NumVars returns the number of variables.
func (e *Energy) NumVars() int { return e.numVars }

// AddVars appends n variables and returns the index of the first one.
func (e *Energy) AddVars(n int) int {
	first := e.numVars
	e.numVars += n

	return first
}

// Constant returns the accumulated constant term, which is the energy at the
// all-zero assignment.
func (e *Energy) Constant() float64 { return e.constant }

// NumTerms returns the number of non-constant monomials stored.
func (e *Energy) NumTerms() int { return len(e.terms) }

// AddConstant adds c to the constant term.
func (e *Energy) AddConstant(c float64) { e.constant += c }

// AddUnaryTerm adds e0 when x_v=0 and e1 when x_v=1.
func (e *Energy) AddUnaryTerm(v int, e0, e1 float64) error {
	if err := e.AddTerm(e1-e0, v); err != nil {
		return err
	}
	e.constant += e0

	return nil
}

// AddTerm adds coef·Π_{v∈vars} x_v. vars may be unsorted and may repeat
// variables (x·x = x for booleans). An empty vars adds to the constant.
// Zero coefficients are dropped.
//
// Returns ErrVariableOutOfRange or ErrDegreeExceeded.
//
// Complexity: O(d²) for the insertion sort of d variables.
func (e *Energy) AddTerm(coef float64, vars ...int) error {
	key, err := e.key(vars)
	if err != nil {
		return err
	}
	if coef == 0 {
		return nil
	}
	if key.n == 0 {
		e.constant += coef
		return nil
	}
	e.terms[key] += coef

	return nil
}

// key sorts and deduplicates vars into a termKey.
func (e *Energy) key(vars []int) (termKey, error) {
	var k termKey
	buf := e.scratch[:0]
	for _, v := range vars {
		if v < 0 || v >= e.numVars {
			return k, fmt.Errorf("variable %d of %d: %w", v, e.numVars, ErrVariableOutOfRange)
		}
		// insertion into the sorted prefix, skipping duplicates
		pos := len(buf)
		dup := false
		for pos > 0 && buf[pos-1] >= int32(v) {
			if buf[pos-1] == int32(v) {
				dup = true
				break
			}
			pos--
		}
		if dup {
			continue
		}
		if len(buf) == MaxDegree {
			return k, fmt.Errorf("%d+ variables: %w", MaxDegree+1, ErrDegreeExceeded)
		}
		buf = append(buf, 0)
		copy(buf[pos+1:], buf[pos:])
		buf[pos] = int32(v)
	}
	k.n = uint8(len(buf))
	copy(k.vars[:], buf)

	return k, nil
}

// AddClique adds the energy table of a clique over vars: table[a] is the
// energy when variable vars[j] equals bit j of a. len(table) must be
// 2^len(vars).
//
// Steps:
//  1. Three or more distinct variables and a submodular table (within
//     CliqueTolerance): keep the table whole, shifted so that its all-zero
//     entry moves to the constant.
//  2. Otherwise expand the table into subset coefficients and register every
//     non-zero coefficient over its sorted variable subset.
//
// Complexity: O(k²·2^k).
func (e *Energy) AddClique(vars []int, table []float64) error {
	k := len(vars)
	if k > MaxDegree {
		return ErrDegreeExceeded
	}
	if len(table) != 1<<k {
		return fmt.Errorf("%d entries for %d variables: %w", len(table), k, ErrTableSize)
	}
	distinct, err := e.distinct(vars)
	if err != nil {
		return err
	}
	if distinct && k >= minKeptDegree && IsSubmodularTable(table, k, CliqueTolerance) {
		c := Clique{Vars: append([]int(nil), vars...), Table: make([]float64, len(table))}
		for a, v := range table {
			c.Table[a] = v - table[0]
		}
		e.constant += table[0]
		e.cliques = append(e.cliques, c)

		return nil
	}
	coeffs := make([]float64, len(table))
	Expand(table, k, coeffs)

	return e.AddCoefficients(vars, coeffs)
}

// distinct reports whether vars holds no repeated variable.
func (e *Energy) distinct(vars []int) (bool, error) {
	for i, v := range vars {
		if v < 0 || v >= e.numVars {
			return false, fmt.Errorf("variable %d of %d: %w", v, e.numVars, ErrVariableOutOfRange)
		}
		for _, w := range vars[:i] {
			if w == v {
				return false, nil
			}
		}
	}

	return true, nil
}

// NumCliques returns the number of cliques kept whole.
func (e *Energy) NumCliques() int { return len(e.cliques) }

// Cliques returns the cliques kept whole, in insertion order. The result
// shares storage with e and must not be modified.
func (e *Energy) Cliques() []Clique { return e.cliques }

// Monomials returns a copy of e without its kept cliques: the constant and
// the monomials only.
func (e *Energy) Monomials() *Energy {
	out := NewEnergy(e.numVars)
	out.constant = e.constant
	for k, c := range e.terms {
		out.terms[k] = c
	}

	return out
}

// Expanded returns a copy of e in which every kept clique is expanded into
// monomials. Both energies agree on every assignment.
//
// Complexity: O(T + Σ_c k_c·2^k_c).
func (e *Energy) Expanded() *Energy {
	out := e.Monomials()
	var coeffs []float64
	for _, c := range e.cliques {
		k := len(c.Vars)
		coeffs = append(coeffs[:0], make([]float64, 1<<k)...)
		Expand(c.Table, k, coeffs)
		// variables were validated when the clique was kept
		_ = out.AddCoefficients(c.Vars, coeffs)
	}

	return out
}

// AddCoefficients registers already expanded subset coefficients of a clique
// over vars (see Expand). coeffs[0] goes to the constant.
func (e *Energy) AddCoefficients(vars []int, coeffs []float64) error {
	var sub [MaxDegree]int
	e.constant += coeffs[0]
	for s := 1; s < 1<<len(vars); s++ {
		if coeffs[s] == 0 {
			continue
		}
		d := 0
		for j := range vars {
			if s&(1<<j) != 0 {
				sub[d] = vars[j]
				d++
			}
		}
		if err := e.AddTerm(coeffs[s], sub[:d]...); err != nil {
			return err
		}
	}

	return nil
}

// Merge adds every term, clique and the constant of o into e. NumVars grows
// to cover o.
func (e *Energy) Merge(o *Energy) {
	if o.numVars > e.numVars {
		e.numVars = o.numVars
	}
	e.constant += o.constant
	for k, c := range o.terms {
		e.terms[k] += c
	}
	e.cliques = append(e.cliques, o.cliques...)
}

// Terms returns the non-zero monomials ordered by degree, then by variables.
// Kept cliques are not included; see Cliques and Expanded.
// The result is deterministic for a given accumulated state.
func (e *Energy) Terms() []Term {
	keys := e.sortedKeys()
	out := make([]Term, 0, len(keys))
	for _, k := range keys {
		out = append(out, Term{Coef: e.terms[k], Vars: k.slice()})
	}

	return out
}

func (e *Energy) sortedKeys() []termKey {
	keys := make([]termKey, 0, len(e.terms))
	for k, c := range e.terms {
		if c != 0 {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].less(keys[j]) })

	return keys
}

// Evaluate returns the energy at the boolean assignment x (x[v] ∈ {0,1}).
// Terms are summed in Terms() order so that repeated calls agree bit for bit.
//
// Complexity: O(T·d + T log T + Σ_c k_c).
func (e *Energy) Evaluate(x []int) float64 {
	total := e.constant
	for _, k := range e.sortedKeys() {
		c := e.terms[k]
		on := true
		for i := 0; i < int(k.n); i++ {
			if x[k.vars[i]] == 0 {
				on = false
				break
			}
		}
		if on {
			total += c
		}
	}
	for _, c := range e.cliques {
		total += c.Value(x)
	}

	return total
}
