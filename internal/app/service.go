package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/awmpietro/hr-workflow-sandbox/internal/catalog"
	"github.com/awmpietro/hr-workflow-sandbox/internal/document"
	"github.com/awmpietro/hr-workflow-sandbox/internal/logging"
	"github.com/awmpietro/hr-workflow-sandbox/internal/workflow"
	"github.com/awmpietro/hr-workflow-sandbox/internal/xjson"
)

type Validator interface {
	Validate(s workflow.Snapshot) []workflow.ValidationIssue
}

type Simulator interface {
	Simulate(s workflow.Snapshot) workflow.SimulationResult
}

type Catalog interface {
	List() []catalog.Action
}

type Cache interface {
	GetOrCompute(content []byte, fn func() ([]workflow.ValidationIssue, error)) ([]workflow.ValidationIssue, error)
}

// Latency is the artificial delay applied before each backend call.
type Latency struct {
	Validate    time.Duration
	Simulate    time.Duration
	Automations time.Duration
}

type Service struct {
	validator Validator
	simulator Simulator
	catalog   Catalog
	cache     Cache
	latency   Latency
	now       func() time.Time
	logger    *slog.Logger
}

type Option func(*Service)

func WithLatency(l Latency) Option {
	return func(s *Service) { s.latency = l }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService wires the workflow components. cache may be nil, in which case
// every validation is computed.
func NewService(v Validator, sim Simulator, cat Catalog, cache Cache, opts ...Option) *Service {
	s := &Service{
		validator: v,
		simulator: sim,
		catalog:   cat,
		cache:     cache,
		now:       time.Now,
		logger:    logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "service")
	return s
}

// Validate returns the issues of s. Results are memoized by snapshot content.
func (s *Service) Validate(ctx context.Context, snap workflow.Snapshot) ([]workflow.ValidationIssue, error) {
	if err := wait(ctx, s.latency.Validate); err != nil {
		return nil, err
	}

	compute := func() ([]workflow.ValidationIssue, error) {
		return s.validator.Validate(snap), nil
	}

	var (
		issues []workflow.ValidationIssue
		err    error
	)
	key, mErr := xjson.Marshal(snap)
	if s.cache == nil || mErr != nil {
		issues, err = compute()
	} else {
		issues, err = s.cache.GetOrCompute(key, compute)
	}
	if err != nil {
		return nil, err
	}

	s.logger.DebugContext(ctx, "validated workflow",
		"nodes", len(snap.Nodes),
		"edges", len(snap.Edges),
		"issues", len(issues),
	)
	return cloneIssues(issues), nil
}

func (s *Service) Simulate(ctx context.Context, snap workflow.Snapshot) (workflow.SimulationResult, error) {
	if err := wait(ctx, s.latency.Simulate); err != nil {
		return workflow.SimulationResult{}, err
	}

	res := s.simulator.Simulate(snap)
	s.logger.DebugContext(ctx, "simulated workflow",
		"success", res.Success,
		"steps", len(res.Steps),
		"total_duration_s", res.TotalDuration,
	)
	return res, nil
}

func (s *Service) Automations(ctx context.Context) ([]catalog.Action, error) {
	if err := wait(ctx, s.latency.Automations); err != nil {
		return nil, err
	}
	return s.catalog.List(), nil
}

func (s *Service) Templates(ctx context.Context) []*document.Workflow {
	return document.Templates(s.now())
}

// NewNode returns a node of the given kind with default attributes and a
// fresh "{kind}-{uuid}" id.
func (s *Service) NewNode(ctx context.Context, kind string, pos workflow.Position) (workflow.Node, error) {
	k, err := workflow.ParseNodeKind(kind)
	if err != nil {
		return workflow.Node{}, err
	}
	data, err := workflow.NewNodeData(k, workflow.DefaultLabel(k))
	if err != nil {
		return workflow.Node{}, err
	}
	return workflow.Node{
		ID:       fmt.Sprintf("%s-%s", k, uuid.NewString()),
		Kind:     k,
		Position: pos,
		Data:     data,
	}, nil
}

func (s *Service) Import(ctx context.Context, raw []byte) (*document.Workflow, error) {
	w, err := document.Import(raw)
	if err != nil {
		s.rejected(ctx, "workflow import rejected", err)
		return nil, err
	}
	return w, nil
}

func (s *Service) ImportDOT(ctx context.Context, text string) (*document.Workflow, error) {
	w, err := document.ImportDOT(text, s.now())
	if err != nil {
		s.rejected(ctx, "workflow DOT import rejected", err)
		return nil, err
	}
	return w, nil
}

func (s *Service) Export(ctx context.Context, w *document.Workflow) ([]byte, error) {
	return document.Export(s.stamp(w))
}

func (s *Service) ExportDOT(ctx context.Context, w *document.Workflow) (string, error) {
	return document.ExportDOT(s.stamp(w))
}

// rejected logs a refused import along with the decoder or schema cause.
func (s *Service) rejected(ctx context.Context, msg string, err error) {
	attrs := []any{"error", err}
	var pe *document.ParseError
	if errors.As(err, &pe) && pe.Cause() != nil {
		attrs = append(attrs, "cause", pe.Cause().Error())
	}
	s.logger.InfoContext(ctx, msg, attrs...)
}

// stamp gives an unsaved document its id and timestamps. The input is not modified.
func (s *Service) stamp(w *document.Workflow) *document.Workflow {
	if w == nil {
		return document.New("", "", workflow.Snapshot{}, s.now())
	}
	out := *w
	ts := s.now().UTC().Format(time.RFC3339)
	if out.ID == "" {
		out.ID = document.NewID()
	}
	if out.CreatedAt == "" {
		out.CreatedAt = ts
	}
	out.UpdatedAt = ts
	return &out
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func cloneIssues(in []workflow.ValidationIssue) []workflow.ValidationIssue {
	out := make([]workflow.ValidationIssue, len(in))
	copy(out, in)
	return out
}
