package pbf

import (
	"errors"
	"fmt"
	"strings"
)

// MaxDegree is the largest number of distinct variables a single term may
// reference.
const MaxDegree = 16

// Sentinel errors for pseudo-boolean energies.
var (
	// ErrDegreeExceeded indicates a term over more than MaxDegree variables.
	ErrDegreeExceeded = errors.New("pbf: term degree exceeds MaxDegree")

	// ErrVariableOutOfRange indicates a term variable outside [0, NumVars()).
	ErrVariableOutOfRange = errors.New("pbf: variable out of range")

	// ErrTableSize indicates an energy table whose length is not 2^k.
	ErrTableSize = errors.New("pbf: energy table length must be 2^k")

	// ErrUnknownReduction indicates an unrecognized reduction name.
	ErrUnknownReduction = errors.New("pbf: unknown reduction")
)

// Reduction selects how positive higher-order terms are made quadratic.
type Reduction int

const (
	// ReductionPairwise reduces every positive term independently (HOCR).
	ReductionPairwise Reduction = iota
	// ReductionChen eliminates positive terms grouped by their smallest variable.
	ReductionChen
)

// DefaultReduction is the reduction used when callers do not choose one.
const DefaultReduction = ReductionPairwise

// String returns the configuration name of r.
func (r Reduction) String() string {
	switch r {
	case ReductionPairwise:
		return "pairwise"
	case ReductionChen:
		return "chen"
	default:
		return fmt.Sprintf("Reduction(%d)", int(r))
	}
}

// ParseReduction maps a configuration name ("pairwise", "chen") to a
// Reduction. Matching is case-insensitive; the empty string selects
// DefaultReduction.
func ParseReduction(s string) (Reduction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DefaultReduction, nil
	case "pairwise":
		return ReductionPairwise, nil
	case "chen":
		return ReductionChen, nil
	default:
		return 0, fmt.Errorf("%q: %w", s, ErrUnknownReduction)
	}
}

// Term is one monomial coefficient. Vars is sorted ascending without
// duplicates.
type Term struct {
	Coef float64
	Vars []int
}

// termKey is the comparable form of a sorted variable tuple.
type termKey struct {
	n    uint8
	vars [MaxDegree]int32
}

func (k termKey) slice() []int {
	out := make([]int, k.n)
	for i := range out {
		out[i] = int(k.vars[i])
	}

	return out
}

// less orders keys by degree, then lexicographically.
func (k termKey) less(o termKey) bool {
	if k.n != o.n {
		return k.n < o.n
	}
	for i := 0; i < int(k.n); i++ {
		if k.vars[i] != o.vars[i] {
			return k.vars[i] < o.vars[i]
		}
	}

	return false
}

// PairTerm is a pairwise table over (x_I, x_J) with I < J.
// E01 is the value at x_I=0, x_J=1.
type PairTerm struct {
	I, J               int
	E00, E01, E10, E11 float64
}

// Submodular reports whether E00+E11 ≤ E01+E10+eps.
func (p PairTerm) Submodular(eps float64) bool {
	return p.E00+p.E11 <= p.E01+p.E10+eps
}

// Value returns the table entry at (xi, xj).
func (p PairTerm) Value(xi, xj int) float64 {
	switch {
	case xi == 0 && xj == 0:
		return p.E00
	case xi == 0:
		return p.E01
	case xj == 0:
		return p.E10
	default:
		return p.E11
	}
}
