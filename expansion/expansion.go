package expansion

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/katalvlaran/lvfusion/binary"
	"github.com/katalvlaran/lvfusion/model"
	"github.com/katalvlaran/lvfusion/pbf"
)

// Expansion is an alpha-expansion-fusion driver over one model.
//
// All mutable state lives in the value: distinct drivers share nothing and
// may run concurrently over the same model. A single driver is not safe for
// concurrent use.
type Expansion struct {
	model    model.EnergyModel
	param    Parameter
	maxState int
	reducer  *reducer

	labels      []int
	schedule    []int
	counter     int
	alpha       int
	streak      int
	iterations  int
	lastChanged int
	// nodes the binary solver left undecided in the last move
	lastUndecided int
	state         State
}

// orderCapped is implemented by models that carry their own order cap.
type orderCapped interface {
	MaxOrder() int
}

// New validates m against p, applies the initialization and label order
// policies and returns a driver in StateInit.
//
// Returns:
//   - model.ErrOrderExceeded when a factor is larger than the order cap.
//   - ErrInvalidLabeling / ErrInvalidLabelOrder for malformed explicit input.
//   - ErrUnknownInitialization / ErrUnknownLabelOrder for unknown policies.
//
// Complexity: O(n + F + maxState).
func New(m model.EnergyModel, p Parameter) (*Expansion, error) {
	maxOrder := model.DefaultMaxOrder
	if c, ok := m.(orderCapped); ok {
		maxOrder = c.MaxOrder()
	}
	if k := model.MaxArity(m); k > maxOrder {
		return nil, fmt.Errorf("factor of order %d, cap %d: %w", k, maxOrder, model.ErrOrderExceeded)
	}
	if _, err := binary.New(0, p.solverConfig()); err != nil {
		return nil, err
	}

	e := &Expansion{
		model:    m,
		param:    p,
		maxState: model.MaxState(m),
		reducer:  newReducer(m),
	}
	if err := e.applyPolicies(); err != nil {
		return nil, err
	}

	return e, nil
}

// applyPolicies builds the starting labeling and the schedule and rewinds the
// cursor to the INIT position.
func (e *Expansion) applyPolicies() error {
	labels, err := initialLabeling(e.model, e.param)
	if err != nil {
		return err
	}
	schedule, err := labelSchedule(e.maxState, e.param)
	if err != nil {
		return err
	}
	e.labels = labels
	e.schedule = schedule
	e.counter = 0
	e.alpha = 0
	if len(schedule) > 0 {
		e.alpha = schedule[0]
	}
	e.streak = 0
	e.iterations = 0
	e.lastChanged = 0
	e.lastUndecided = 0
	e.state = StateInit

	return nil
}

// Reset reapplies both policies and returns to StateInit. The model structure
// is assumed unchanged since New.
func (e *Expansion) Reset() error { return e.applyPolicies() }

// Name identifies the algorithm.
func (e *Expansion) Name() string { return "Alpha-Expansion-Fusion" }

// Infer runs steps until the driver converges, exhausts its budget, the
// visitor asks to stop or ctx is canceled. v may be nil.
//
// Steps:
//  1. v.Begin.
//  2. While not terminal: check ctx, perform the move, v.Visit, advance the
//     label cursor and re-evaluate termination. Stop ⇒ StateBudgetExhausted.
//  3. v.End.
//
// Both terminal states are normal results; the error is non-nil only for
// context cancellation or a failing binary solver.
func (e *Expansion) Infer(ctx context.Context, v Visitor) (State, error) {
	if v == nil {
		v = EmptyVisitor{}
	}
	v.Begin(e)
	defer v.End(e)

	if e.state == StateInit {
		e.state = StateIterating
		e.checkTermination()
	}
	for e.state == StateIterating {
		if err := ctx.Err(); err != nil {
			return e.state, err
		}
		if _, err := e.move(ctx); err != nil {
			return e.state, err
		}
		act := v.Visit(e)
		e.advance()
		if act == Stop {
			e.state = StateBudgetExhausted
		}
	}

	return e.state, nil
}

// Step performs one expansion step with the current alpha and advances the
// cursor. It may be called in any state, including after termination.
// Returns the number of variables whose label changed.
func (e *Expansion) Step(ctx context.Context) (int, error) {
	changed, err := e.move(ctx)
	if err != nil {
		return 0, err
	}
	e.advance()

	return changed, nil
}

// move expands alpha against the current labeling and applies the binary
// solution. Variables for which alpha is not a valid label stay fixed.
//
// Steps:
//  1. target[i] = alpha when alpha < NumLabels(i), else current label.
//  2. Reduce every factor into a fresh energy and solve it.
//  3. Switch variables labeled 1; count actual label changes.
//  4. Update the unchanged streak.
func (e *Expansion) move(ctx context.Context) (int, error) {
	target := make([]int, len(e.labels))
	for i, l := range e.labels {
		target[i] = l
		if e.alpha < e.model.NumLabels(i) {
			target[i] = e.alpha
		}
	}
	changed, err := e.apply(ctx, target)
	if err != nil {
		return 0, err
	}
	e.iterations++
	e.lastChanged = changed
	if changed > 0 {
		e.streak = 0
	} else {
		e.streak++
	}
	e.logStep(changed)

	return changed, nil
}

// apply solves the binary move "current → target" and writes the result.
func (e *Expansion) apply(ctx context.Context, target []int) (int, error) {
	energy, err := e.reducer.reduce(ctx, e.labels, target, e.param.Workers)
	if err != nil {
		return 0, err
	}
	sv, err := binary.New(energy.NumVars(), e.param.solverConfig())
	if err != nil {
		return 0, err
	}
	if err = load(sv, energy); err != nil {
		return 0, err
	}
	if err = sv.Solve(ctx); err != nil {
		return 0, err
	}
	e.lastUndecided = 0
	if p, ok := sv.(partialSolver); ok {
		e.lastUndecided = p.Unlabeled()
	}

	changed := 0
	for i := range e.labels {
		if sv.Label(i) == 1 && e.labels[i] != target[i] {
			e.labels[i] = target[i]
			changed++
		}
	}

	return changed, nil
}

// partialSolver is implemented by solvers that may leave nodes undecided.
type partialSolver interface {
	Unlabeled() int
}

// energyLoader is implemented by solvers that accept a whole energy at once.
type energyLoader interface {
	AddEnergy(e *pbf.Energy)
}

// load hands every term of energy to sv.
func load(sv binary.Solver, energy *pbf.Energy) error {
	if l, ok := sv.(energyLoader); ok {
		l.AddEnergy(energy)
		return nil
	}
	for _, t := range energy.Terms() {
		if err := sv.AddTerm(t.Coef, t.Vars...); err != nil {
			return err
		}
	}
	for _, c := range energy.Cliques() {
		if err := sv.AddClique(c.Vars, c.Table); err != nil {
			return err
		}
	}

	return nil
}

// advance moves the cursor to the next scheduled label and re-evaluates the
// terminal conditions.
func (e *Expansion) advance() {
	if e.maxState > 0 {
		e.counter = (e.counter + 1) % e.maxState
		e.alpha = e.schedule[e.counter]
	}
	e.checkTermination()
}

// checkTermination: a full unchanged cycle converges; otherwise a spent
// budget ends the run.
func (e *Expansion) checkTermination() {
	switch {
	case e.streak >= e.maxState:
		e.state = StateConverged
	case e.iterations >= e.param.MaxIterations:
		e.state = StateBudgetExhausted
	default:
		e.state = StateIterating
	}
}

// Fuse performs one fusion move of the current labeling with proposal: each
// variable either keeps its label or takes proposal[i]. The schedule cursor
// and the iteration counter are not touched.
//
// Returns ErrInvalidLabeling for a malformed proposal.
func (e *Expansion) Fuse(ctx context.Context, proposal []int) (int, error) {
	if err := model.ValidateLabeling(e.model, proposal); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidLabeling, err)
	}
	changed, err := e.apply(ctx, proposal)
	if err != nil {
		return 0, err
	}
	if changed > 0 && e.state == StateConverged {
		e.streak = 0
		e.state = StateIterating
	}

	return changed, nil
}

// SetStartingPoint replaces the labeling and returns to StateInit with the
// cursor unchanged.
func (e *Expansion) SetStartingPoint(labels []int) error {
	if err := model.ValidateLabeling(e.model, labels); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidLabeling, err)
	}
	copy(e.labels, labels)
	e.streak = 0
	e.state = StateInit

	return nil
}

// Arg returns a copy of the current labeling. Only one solution exists: for
// n > 1 the labeling is still returned, with
// StatusIncompleteRequestForMultipleSolutions.
func (e *Expansion) Arg(n int) ([]int, Status) {
	out := e.Labeling()
	if n > 1 {
		return out, StatusIncompleteRequestForMultipleSolutions
	}

	return out, StatusSuccess
}

// Labeling returns a copy of the current labeling.
func (e *Expansion) Labeling() []int { return append([]int(nil), e.labels...) }

// Alpha returns the candidate label of the next step.
func (e *Expansion) Alpha() int { return e.alpha }

// Schedule returns a copy of the label schedule.
func (e *Expansion) Schedule() []int { return append([]int(nil), e.schedule...) }

// State returns the life-cycle state.
func (e *Expansion) State() State { return e.state }

// Iterations returns the number of steps taken since the last reset.
func (e *Expansion) Iterations() int { return e.iterations }

// UnchangedStreak returns the number of consecutive steps without change.
func (e *Expansion) UnchangedStreak() int { return e.streak }

// LastChanged returns the change count of the most recent step.
func (e *Expansion) LastChanged() int { return e.lastChanged }

// LastUndecided returns how many nodes the binary solver of the last move
// left undecided; they kept their labels.
func (e *Expansion) LastUndecided() int { return e.lastUndecided }

// MaxState returns the largest label-space size of the model.
func (e *Expansion) MaxState() int { return e.maxState }

// Energy evaluates the model at the current labeling.
func (e *Expansion) Energy() float64 { return model.Evaluate(e.model, e.labels) }

func (e *Expansion) logStep(changed int) {
	lg := e.param.Logger
	if lg == nil || lg.GetLevel() > log.DebugLevel {
		return
	}
	lg.Debug("expansion step",
		"step", e.iterations,
		"alpha", e.alpha,
		"changed", changed,
		"undecided", e.lastUndecided,
		"streak", e.streak,
		"energy", e.Energy(),
	)
}
