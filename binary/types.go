// Package binary provides the binary (two-label) solvers used by the move
// makers. Solver is the capability interface; concrete variants are chosen
// once, at construction, through a tagged Config:
//
//	KindQPBO       - energies whose kept cliques and reduced monomials are
//	                 all submodular are minimized exactly by push-relabel
//	                 over the cliques themselves. Anything else is reduced
//	                 to a quadratic energy and solved by roof duality on a
//	                 max-flow network (partial, never worse than all-zero).
//	KindExhaustive - enumerate every assignment; exact, tiny problems only.
//
// Variables that a solver leaves undecided report label 0, the "keep" side of
// a move, so applying a solver's output never increases the energy relative
// to the all-zero assignment.
package binary

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/lvfusion/flow"
	"github.com/katalvlaran/lvfusion/pbf"
)

// Sentinel errors for binary solvers.
var (
	// ErrTooManyVariables indicates an exhaustive solve over more than
	// MaxExhaustiveVars variables.
	ErrTooManyVariables = errors.New("binary: too many variables for exhaustive search")

	// ErrUnknownKind indicates an unrecognized solver kind.
	ErrUnknownKind = errors.New("binary: unknown solver kind")
)

// MaxExhaustiveVars bounds KindExhaustive.
const MaxExhaustiveVars = 20

// Solver is a binary energy minimizer over nodes [0, n).
type Solver interface {
	// AddNodes appends n nodes and returns the index of the first one.
	AddNodes(n int) int
	// NumNodes returns the number of nodes.
	NumNodes() int
	// AddUnaryTerm adds e0 when node v is 0 and e1 when it is 1.
	AddUnaryTerm(v int, e0, e1 float64) error
	// AddTerm adds coef·Π x_v over vars (any order, duplicates allowed).
	AddTerm(coef float64, vars ...int) error
	// AddClique adds a full energy table over vars; bit j of the table index
	// is the value of vars[j].
	AddClique(vars []int, table []float64) error
	// Solve minimizes the accumulated energy.
	Solve(ctx context.Context) error
	// Label returns 0 or 1 for node v after Solve. Undecided nodes report 0.
	Label(v int) int
}

// Kind tags a Solver variant.
type Kind int

const (
	// KindQPBO reduces to quadratic form and solves by roof duality.
	KindQPBO Kind = iota
	// KindExhaustive enumerates every assignment.
	KindExhaustive
)

// String returns the configuration name of k.
func (k Kind) String() string {
	switch k {
	case KindQPBO:
		return "qpbo"
	case KindExhaustive:
		return "exhaustive"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind maps "qpbo" or "exhaustive" (case-insensitive, empty = qpbo).
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "qpbo":
		return KindQPBO, nil
	case "exhaustive":
		return KindExhaustive, nil
	default:
		return 0, fmt.Errorf("%q: %w", s, ErrUnknownKind)
	}
}

// Config selects and configures a Solver variant.
//   - Kind: the variant.
//   - Reduction: how higher-order terms become quadratic (QPBO only).
//   - Flow: max-flow algorithm and tolerance (QPBO only).
type Config struct {
	Kind      Kind
	Reduction pbf.Reduction
	Flow      flow.Options
}

// DefaultConfig returns QPBO with the default reduction and Dinic.
func DefaultConfig() Config {
	return Config{Kind: KindQPBO, Reduction: pbf.DefaultReduction, Flow: flow.DefaultOptions()}
}

// New returns a Solver of the configured kind with n nodes.
func New(n int, cfg Config) (Solver, error) {
	switch cfg.Kind {
	case KindQPBO:
		return NewQPBO(n, cfg.Reduction, cfg.Flow), nil
	case KindExhaustive:
		return NewExhaustive(n), nil
	default:
		return nil, fmt.Errorf("%v: %w", cfg.Kind, ErrUnknownKind)
	}
}
