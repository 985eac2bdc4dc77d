package workflow

import (
	"math/rand"
	"time"
)

// RandSource yields values in [0, 1). *rand.Rand satisfies it.
type RandSource interface {
	Float64() float64
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }

type Simulator struct {
	validator *Validator
	rnd       RandSource
	now       func() time.Time
	catalog   ActionCatalog
	observer  StepObserver
}

type SimulatorOption func(*Simulator)

func WithValidator(v *Validator) SimulatorOption {
	return func(s *Simulator) {
		if v != nil {
			s.validator = v
		}
	}
}

func WithRand(r RandSource) SimulatorOption {
	return func(s *Simulator) {
		if r != nil {
			s.rnd = r
		}
	}
}

func WithClock(now func() time.Time) SimulatorOption {
	return func(s *Simulator) {
		if now != nil {
			s.now = now
		}
	}
}

func WithCatalog(c ActionCatalog) SimulatorOption {
	return func(s *Simulator) {
		s.catalog = c
	}
}

func WithStepObserver(o StepObserver) SimulatorOption {
	return func(s *Simulator) {
		s.observer = o
	}
}

func NewSimulator(opts ...SimulatorOption) *Simulator {
	s := &Simulator{
		validator: defaultValidator,
		rnd:       globalRand{},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Simulate dry-runs s in topological order. A snapshot with any error-level
// issue yields an unsuccessful result with no steps.
func (sim *Simulator) Simulate(s Snapshot) SimulationResult {
	issues := sim.validator.Validate(s)
	if HasErrors(issues) {
		return SimulationResult{
			Success:       false,
			Steps:         []SimulationStep{},
			Errors:        issues,
			TotalDuration: 0,
		}
	}

	order := TopoSort(s)
	started := sim.now()
	steps := make([]SimulationStep, 0, len(order))
	total := 0.0

	for _, n := range order {
		d := sim.duration(n.Kind)
		total += d

		step := SimulationStep{
			NodeID:    n.ID,
			NodeName:  n.Label(),
			NodeType:  n.Kind,
			Status:    StatusCompleted,
			Message:   StepMessage(n, sim.catalog),
			Timestamp: started.Add(seconds(total)),
			Duration:  d,
		}
		steps = append(steps, step)
		sim.observe(step)
	}

	return SimulationResult{
		Success:       true,
		Steps:         steps,
		Errors:        issues,
		TotalDuration: total,
	}
}

// duration returns the synthetic run time of a node kind in seconds.
func (sim *Simulator) duration(kind NodeKind) float64 {
	switch kind {
	case KindStart, KindEnd:
		return 0.5
	case KindTask:
		return 2 + sim.rnd.Float64()*3
	case KindApproval:
		return 3 + sim.rnd.Float64()*5
	case KindAutomated:
		return 1 + sim.rnd.Float64()*2
	default:
		return 1
	}
}

func (sim *Simulator) observe(step SimulationStep) {
	if sim.observer == nil {
		return
	}
	sim.observer.ObserveStep(step)
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
