package app

import (
	"fmt"
	"log/slog"

	"github.com/awmpietro/hr-workflow-sandbox/internal/cache"
	"github.com/awmpietro/hr-workflow-sandbox/internal/catalog"
	"github.com/awmpietro/hr-workflow-sandbox/internal/config"
	"github.com/awmpietro/hr-workflow-sandbox/internal/workflow"
	"github.com/awmpietro/hr-workflow-sandbox/internal/workflow/rules"
)

// Build assembles a Service from runtime settings. The returned close
// function flushes the step observer and must be called on shutdown.
func Build(rt config.Runtime, logger *slog.Logger) (*Service, func(), error) {
	actions := catalog.Default()

	var vopts []workflow.ValidatorOption
	if rt.RejectDanglingEdges {
		vopts = append(vopts, workflow.WithDanglingEdgeCheck())
	}
	if rt.RejectUnknownActions {
		vopts = append(vopts, workflow.WithActionCheck(actions))
	}
	if rt.RulesFile != "" {
		rs, err := rules.LoadFile(rt.RulesFile)
		if err != nil {
			return nil, nil, fmt.Errorf("load workflow rules: %w", err)
		}
		vopts = append(vopts, workflow.WithRules(rs...))
		logger.Info("loaded workflow rules", "file", rt.RulesFile, "count", len(rs))
	}
	validator := workflow.NewValidator(vopts...)

	observer := workflow.NewAsyncStepObserver(workflow.NewStepLogger(logger), rt.ObsBuffer)
	simulator := workflow.NewSimulator(
		workflow.WithValidator(validator),
		workflow.WithCatalog(actions),
		workflow.WithStepObserver(observer),
	)

	svc := NewService(
		validator,
		simulator,
		actions,
		cache.NewInMemory[[]workflow.ValidationIssue](rt.CacheMaxItems),
		WithLatency(Latency{
			Validate:    rt.ValidateLatency,
			Simulate:    rt.SimulateLatency,
			Automations: rt.AutomationsLatency,
		}),
		WithLogger(logger),
	)

	closeFn := func() {
		observer.Close()
		if dropped := observer.Dropped(); dropped > 0 {
			logger.Warn("simulation steps dropped by observer", "dropped", dropped)
		}
	}
	return svc, closeFn, nil
}
