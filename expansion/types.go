package expansion

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/katalvlaran/lvfusion/binary"
	"github.com/katalvlaran/lvfusion/flow"
	"github.com/katalvlaran/lvfusion/pbf"
)

// Sentinel errors for move-making inference.
var (
	// ErrInvalidLabeling indicates an explicit labeling of the wrong length or
	// with an entry outside its variable's label space.
	ErrInvalidLabeling = errors.New("expansion: invalid labeling")

	// ErrInvalidLabelOrder indicates an explicit label order that is not a
	// permutation of 0..maxState-1.
	ErrInvalidLabelOrder = errors.New("expansion: invalid label order")

	// ErrUnsupportedLabelCount indicates a variable with more labels than the
	// selected scheme supports.
	ErrUnsupportedLabelCount = errors.New("expansion: unsupported label count")

	// ErrUnknownInitialization indicates an unrecognized initialization name.
	ErrUnknownInitialization = errors.New("expansion: unknown initialization")

	// ErrUnknownLabelOrder indicates an unrecognized label order name.
	ErrUnknownLabelOrder = errors.New("expansion: unknown label order")
)

// DefaultMaxIterations is the step budget used by DefaultParameter.
const DefaultMaxIterations = 1000

// State is the position of a driver in its life cycle.
type State int

const (
	// StateInit: policies applied, no step taken yet.
	StateInit State = iota
	// StateIterating: at least one step taken, not terminated.
	StateIterating
	// StateConverged: a full label cycle changed nothing.
	StateConverged
	// StateBudgetExhausted: the iteration budget ran out or a visitor stopped the run.
	StateBudgetExhausted
)

// String returns a lower-case name of s.
func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateIterating:
		return "iterating"
	case StateConverged:
		return "converged"
	case StateBudgetExhausted:
		return "budget-exhausted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Terminal reports whether s ends a run.
func (s State) Terminal() bool { return s == StateConverged || s == StateBudgetExhausted }

// Status is the result code of Arg.
type Status int

const (
	// StatusSuccess: the labeling was returned.
	StatusSuccess Status = iota
	// StatusIncompleteRequestForMultipleSolutions: more than one solution was
	// requested; only the best labeling is available.
	StatusIncompleteRequestForMultipleSolutions
)

// Initialization selects the starting labeling.
type Initialization int

const (
	// InitZero puts every variable at label 0.
	InitZero Initialization = iota
	// InitRandom draws every label uniformly with RandomSeedForLabels.
	InitRandom
	// InitLocalOptimal picks, per variable, the label minimizing the sum of
	// its unary factors. Variables without unary factors start at 0.
	InitLocalOptimal
	// InitExplicit uses ExplicitLabeling.
	InitExplicit
)

// String returns the configuration name of i.
func (i Initialization) String() string {
	switch i {
	case InitZero:
		return "DEFAULT"
	case InitRandom:
		return "RANDOM"
	case InitLocalOptimal:
		return "LOCALOPT"
	case InitExplicit:
		return "EXPLICIT"
	default:
		return fmt.Sprintf("Initialization(%d)", int(i))
	}
}

// ParseInitialization maps DEFAULT|ZERO, RANDOM, LOCALOPT, EXPLICIT
// (case-insensitive, empty = DEFAULT).
func ParseInitialization(s string) (Initialization, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "DEFAULT", "ZERO":
		return InitZero, nil
	case "RANDOM":
		return InitRandom, nil
	case "LOCALOPT", "LOCAL-OPTIMAL":
		return InitLocalOptimal, nil
	case "EXPLICIT":
		return InitExplicit, nil
	default:
		return 0, fmt.Errorf("%q: %w", s, ErrUnknownInitialization)
	}
}

// LabelOrder selects the schedule of candidate labels.
type LabelOrder int

const (
	// OrderIdentity visits 0..maxState-1 in increasing order.
	OrderIdentity LabelOrder = iota
	// OrderRandom visits a permutation drawn with RandomSeedForOrder.
	OrderRandom
	// OrderExplicit uses ExplicitLabelOrder.
	OrderExplicit
)

// String returns the configuration name of o.
func (o LabelOrder) String() string {
	switch o {
	case OrderIdentity:
		return "DEFAULT"
	case OrderRandom:
		return "RANDOM"
	case OrderExplicit:
		return "EXPLICIT"
	default:
		return fmt.Sprintf("LabelOrder(%d)", int(o))
	}
}

// ParseLabelOrder maps DEFAULT|IDENTITY, RANDOM, EXPLICIT (case-insensitive,
// empty = DEFAULT).
func ParseLabelOrder(s string) (LabelOrder, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "DEFAULT", "IDENTITY":
		return OrderIdentity, nil
	case "RANDOM":
		return OrderRandom, nil
	case "EXPLICIT":
		return OrderExplicit, nil
	default:
		return 0, fmt.Errorf("%q: %w", s, ErrUnknownLabelOrder)
	}
}

// Parameter configures an Expansion.
//   - MaxIterations: step budget (default 1000); ≤ 0 ends a run before any step.
//   - Initialization, RandomSeedForLabels, ExplicitLabeling: starting labeling.
//   - LabelOrder, RandomSeedForOrder, ExplicitLabelOrder: candidate schedule.
//     Seeds are used as given, zero included.
//   - Reduction: higher-order to quadratic reduction of the binary solver.
//   - Solver, FlowAlgorithm: binary solver variant and its max-flow algorithm.
//   - Workers: > 1 reduces cliques in parallel chunks.
//   - Logger: if non-nil, every step is logged at debug level.
type Parameter struct {
	MaxIterations int

	Initialization      Initialization
	RandomSeedForLabels uint64
	ExplicitLabeling    []int

	LabelOrder         LabelOrder
	RandomSeedForOrder uint64
	ExplicitLabelOrder []int

	Reduction     pbf.Reduction
	Solver        binary.Kind
	FlowAlgorithm flow.Algorithm

	Workers int
	Logger  *log.Logger
}

// DefaultParameter returns zero initialization, identity order, 1000 steps,
// QPBO with the default reduction on Dinic, serial reduction and no logging.
func DefaultParameter() Parameter {
	return Parameter{
		MaxIterations:  DefaultMaxIterations,
		Initialization: InitZero,
		LabelOrder:     OrderIdentity,
		Reduction:      pbf.DefaultReduction,
		Solver:         binary.KindQPBO,
		FlowAlgorithm:  flow.Dinic,
		Workers:        1,
	}
}

// solverConfig derives the binary solver configuration of p.
func (p Parameter) solverConfig() binary.Config {
	opts := flow.DefaultOptions()
	opts.Algorithm = p.FlowAlgorithm

	return binary.Config{Kind: p.Solver, Reduction: p.Reduction, Flow: opts}
}
