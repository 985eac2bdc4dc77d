package workflow

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type countingObserver struct {
	mu    sync.Mutex
	nodes []string
}

func (c *countingObserver) ObserveStep(step SimulationStep) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nodes = append(c.nodes, step.NodeID)
}

func (c *countingObserver) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.nodes)
}

func TestAsyncStepObserver_DeliversStepsOnClose(t *testing.T) {
	spy := &countingObserver{}
	async := NewAsyncStepObserver(spy, 8)

	async.ObserveStep(SimulationStep{NodeID: "start"})
	async.ObserveStep(SimulationStep{NodeID: "approval"})
	async.Close()

	if got := spy.Count(); got != 2 {
		t.Fatalf("expected 2 delivered steps, got %d", got)
	}
}

func TestAsyncStepObserver_DropsWhenBufferIsFull(t *testing.T) {
	spy := &countingObserver{}
	async := NewAsyncStepObserver(spy, 1)

	for i := 0; i < 1000; i++ {
		async.ObserveStep(SimulationStep{NodeID: "n"})
	}
	async.Close()

	if async.Dropped() == 0 {
		t.Fatalf("expected dropped steps > 0")
	}
	if got := uint64(spy.Count()) + async.Dropped(); got != 1000 {
		t.Fatalf("expected delivered+dropped == 1000, got %d", got)
	}
}

func TestAsyncStepObserver_ObserveAfterCloseIsDropped(t *testing.T) {
	async := NewAsyncStepObserver(&countingObserver{}, 4)
	async.Close()
	async.Close()

	async.ObserveStep(SimulationStep{NodeID: "late"})
	if async.Dropped() != 1 {
		t.Fatalf("expected 1 dropped step, got %d", async.Dropped())
	}
}

func TestAsyncStepObserver_CloseDuringConcurrentObserveDoesNotPanic(t *testing.T) {
	async := NewAsyncStepObserver(&countingObserver{}, 32)

	const workers = 8
	const perWorker = 200
	var wg sync.WaitGroup
	var panics atomic.Int32

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if recover() != nil {
					panics.Add(1)
				}
			}()
			for j := 0; j < perWorker; j++ {
				async.ObserveStep(SimulationStep{NodeID: "n"})
			}
		}()
	}

	time.Sleep(1 * time.Millisecond)
	async.Close()
	wg.Wait()

	if panics.Load() != 0 {
		t.Fatalf("expected no panics, got %d", panics.Load())
	}
}

func TestStepLogger_WritesDebugRecord(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	NewStepLogger(logger).ObserveStep(SimulationStep{
		NodeID:    "t1",
		NodeName:  "Collect Documents",
		NodeType:  KindTask,
		Status:    StatusCompleted,
		Message:   "Task assigned",
		Timestamp: epoch,
		Duration:  2.5,
	})

	out := buf.String()
	for _, want := range []string{
		"simulated step", "component=simulator", "node_id=t1", "node_type=task",
		`node_name="Collect Documents"`, "duration_s=2.5", "at=2024-01-02T03:04:05.000Z", `message="Task assigned"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in log output, got %q", want, out)
		}
	}
}

func TestStepLogger_SilentAboveDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	NewStepLogger(logger).ObserveStep(SimulationStep{NodeID: "t1"})
	if buf.Len() != 0 {
		t.Fatalf("expected no output at info level, got %q", buf.String())
	}
}

func TestStepLogger_NilLoggerIsNoop(t *testing.T) {
	var l *StepLogger
	l.ObserveStep(SimulationStep{})
	NewStepLogger(nil).ObserveStep(SimulationStep{})
}
