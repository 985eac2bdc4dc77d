package workflow

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
)

type StepObserver interface {
	ObserveStep(step SimulationStep)
}

// StepLogger writes one debug record per simulated step:
//
//	msg="simulated step" component=simulator node_id=... node_type=... node_name=...
//	  status=completed duration_s=3.5 at=<step timestamp> message="Task ... assigned to ..."
//
// Nothing is built unless the logger has debug enabled.
type StepLogger struct {
	logger *slog.Logger
}

func NewStepLogger(logger *slog.Logger) *StepLogger {
	if logger == nil {
		return &StepLogger{}
	}
	return &StepLogger{logger: logger.With("component", "simulator")}
}

func (l *StepLogger) ObserveStep(step SimulationStep) {
	if l == nil || l.logger == nil || !l.logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	l.logger.LogAttrs(context.Background(), slog.LevelDebug, "simulated step",
		slog.String("node_id", step.NodeID),
		slog.String("node_type", string(step.NodeType)),
		slog.String("node_name", step.NodeName),
		slog.String("status", string(step.Status)),
		slog.Float64("duration_s", step.Duration),
		slog.Time("at", step.Timestamp),
		slog.String("message", step.Message),
	)
}

// AsyncStepObserver hands steps to next on a background goroutine. When the
// buffer is full the step is dropped and counted.
type AsyncStepObserver struct {
	next    StepObserver
	events  chan SimulationStep
	once    sync.Once
	mu      sync.RWMutex
	closed  bool
	wg      sync.WaitGroup
	dropped atomic.Uint64
}

func NewAsyncStepObserver(next StepObserver, buffer int) *AsyncStepObserver {
	if buffer <= 0 {
		buffer = 1
	}

	o := &AsyncStepObserver{
		next:   next,
		events: make(chan SimulationStep, buffer),
	}

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		for step := range o.events {
			if o.next == nil {
				continue
			}
			o.next.ObserveStep(step)
		}
	}()

	return o
}

func (o *AsyncStepObserver) ObserveStep(step SimulationStep) {
	if o == nil {
		return
	}
	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.closed {
		o.dropped.Add(1)
		return
	}
	select {
	case o.events <- step:
	default:
		o.dropped.Add(1)
	}
}

func (o *AsyncStepObserver) Dropped() uint64 {
	if o == nil {
		return 0
	}
	return o.dropped.Load()
}

// Close drains pending steps and stops the worker. Safe to call twice.
func (o *AsyncStepObserver) Close() {
	if o == nil {
		return
	}
	o.once.Do(func() {
		o.mu.Lock()
		o.closed = true
		close(o.events)
		o.mu.Unlock()
		o.wg.Wait()
	})
}
