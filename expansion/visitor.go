package expansion

import (
	"time"

	"github.com/charmbracelet/log"
)

// Action is a visitor's verdict after a step.
type Action int

const (
	// Continue lets the run proceed.
	Continue Action = iota
	// Stop ends the run as StateBudgetExhausted.
	Stop
)

// Visitor observes a run: Begin once before the first step, Visit after every
// step (before the label cursor advances), End once after the last step.
type Visitor interface {
	Begin(e *Expansion)
	Visit(e *Expansion) Action
	End(e *Expansion)
}

// EmptyVisitor observes nothing.
type EmptyVisitor struct{}

func (EmptyVisitor) Begin(*Expansion)        {}
func (EmptyVisitor) Visit(*Expansion) Action { return Continue }
func (EmptyVisitor) End(*Expansion)          {}

// VisitFunc adapts a function to Visitor; Begin and End do nothing.
type VisitFunc func(e *Expansion) Action

func (f VisitFunc) Begin(*Expansion)          {}
func (f VisitFunc) Visit(e *Expansion) Action { return f(e) }
func (f VisitFunc) End(*Expansion)            {}

// LogVisitor reports progress through a charmbracelet logger at info level.
// Every selects how often steps are logged (0 or 1 = every step).
type LogVisitor struct {
	Logger *log.Logger
	Every  int
}

// Begin implements Visitor.
func (v LogVisitor) Begin(e *Expansion) {
	v.Logger.Info("inference started",
		"algorithm", e.Name(),
		"labels", e.MaxState(),
		"energy", e.Energy(),
	)
}

// Visit implements Visitor.
func (v LogVisitor) Visit(e *Expansion) Action {
	if v.Every > 1 && e.Iterations()%v.Every != 0 {
		return Continue
	}
	v.Logger.Info("step",
		"step", e.Iterations(),
		"alpha", e.Alpha(),
		"changed", e.LastChanged(),
		"undecided", e.LastUndecided(),
		"energy", e.Energy(),
	)

	return Continue
}

// End implements Visitor.
func (v LogVisitor) End(e *Expansion) {
	v.Logger.Info("inference finished",
		"state", e.State(),
		"steps", e.Iterations(),
		"energy", e.Energy(),
	)
}

// TimingVisitor records the energy and elapsed time after every step and can
// stop a run once a time limit is reached (Limit = 0 disables the limit).
type TimingVisitor struct {
	Limit time.Duration

	Energies []float64
	Elapsed  []time.Duration

	start time.Time
}

// Begin implements Visitor.
func (v *TimingVisitor) Begin(e *Expansion) {
	v.start = time.Now()
	v.Energies = append(v.Energies[:0], e.Energy())
	v.Elapsed = append(v.Elapsed[:0], 0)
}

// Visit implements Visitor.
func (v *TimingVisitor) Visit(e *Expansion) Action {
	d := time.Since(v.start)
	v.Energies = append(v.Energies, e.Energy())
	v.Elapsed = append(v.Elapsed, d)
	if v.Limit > 0 && d >= v.Limit {
		return Stop
	}

	return Continue
}

// End implements Visitor.
func (v *TimingVisitor) End(*Expansion) {}

// Visitors fans a run out to several visitors in order. Visit returns Stop
// if any member does; every member still sees the step.
type Visitors []Visitor

// Begin implements Visitor.
func (vs Visitors) Begin(e *Expansion) {
	for _, v := range vs {
		v.Begin(e)
	}
}

// Visit implements Visitor.
func (vs Visitors) Visit(e *Expansion) Action {
	act := Continue
	for _, v := range vs {
		if v.Visit(e) == Stop {
			act = Stop
		}
	}

	return act
}

// End implements Visitor.
func (vs Visitors) End(e *Expansion) {
	for _, v := range vs {
		v.End(e)
	}
}
