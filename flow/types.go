package flow

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
)

// ErrNodeOutOfRange is returned when an arc or terminal references a node
// outside [0, NumNodes()).
var ErrNodeOutOfRange = errors.New("flow: node out of range")

// ErrSourceIsSink is returned when source and sink coincide.
var ErrSourceIsSink = errors.New("flow: source and sink must differ")

// ErrUnknownAlgorithm is returned by ParseAlgorithm for unrecognized names.
var ErrUnknownAlgorithm = errors.New("flow: unknown algorithm")

// EdgeError is returned when an arc has a negative capacity.
type EdgeError struct {
	From, To int
	Cap      float64
}

func (e EdgeError) Error() string {
	return fmt.Sprintf("flow: negative capacity on arc %d→%d: %g", e.From, e.To, e.Cap)
}

// Algorithm selects the augmenting strategy of MaxFlow.
type Algorithm int

const (
	// Dinic uses level graphs and blocking flows.
	Dinic Algorithm = iota
	// EdmondsKarp uses BFS shortest augmenting paths.
	EdmondsKarp
	// FordFulkerson uses DFS augmenting paths.
	FordFulkerson
)

// String returns the configuration name of a.
func (a Algorithm) String() string {
	switch a {
	case Dinic:
		return "dinic"
	case EdmondsKarp:
		return "edmonds-karp"
	case FordFulkerson:
		return "ford-fulkerson"
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

// ParseAlgorithm maps "dinic", "edmonds-karp" or "ford-fulkerson"
// (case-insensitive, empty = Dinic) to an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "dinic":
		return Dinic, nil
	case "edmonds-karp", "edmondskarp":
		return EdmondsKarp, nil
	case "ford-fulkerson", "fordfulkerson":
		return FordFulkerson, nil
	default:
		return 0, fmt.Errorf("%q: %w", s, ErrUnknownAlgorithm)
	}
}

// DefaultEpsilon is the residual capacity at or below which an arc counts as
// saturated.
const DefaultEpsilon = 1e-9

// Options configures MaxFlow.
//   - Algorithm: augmenting strategy (default Dinic).
//   - Epsilon: residual capacities ≤ Epsilon are treated as zero (default 1e-9).
//   - LevelRebuildInterval: Dinic only, rebuild the level graph every N augmentations (0 = never early).
//   - Logger: if non-nil, each augmentation is logged at debug level.
type Options struct {
	Algorithm            Algorithm
	Epsilon              float64
	LevelRebuildInterval int
	Logger               *log.Logger
}

// DefaultOptions returns Dinic with DefaultEpsilon and no logging.
func DefaultOptions() Options {
	return Options{Algorithm: Dinic, Epsilon: DefaultEpsilon}
}

// normalize fills zero-valued fields with their defaults.
func (o *Options) normalize() {
	if o.Epsilon <= 0 {
		o.Epsilon = DefaultEpsilon
	}
}
