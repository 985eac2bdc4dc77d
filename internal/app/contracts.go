package app

import (
	"context"

	"github.com/awmpietro/hr-workflow-sandbox/internal/catalog"
	"github.com/awmpietro/hr-workflow-sandbox/internal/document"
	"github.com/awmpietro/hr-workflow-sandbox/internal/workflow"
)

// WorkflowService is the surface the transports depend on.
type WorkflowService interface {
	Validate(ctx context.Context, s workflow.Snapshot) ([]workflow.ValidationIssue, error)
	Simulate(ctx context.Context, s workflow.Snapshot) (workflow.SimulationResult, error)
	Automations(ctx context.Context) ([]catalog.Action, error)
	Templates(ctx context.Context) []*document.Workflow
	NewNode(ctx context.Context, kind string, pos workflow.Position) (workflow.Node, error)
	Import(ctx context.Context, raw []byte) (*document.Workflow, error)
	ImportDOT(ctx context.Context, text string) (*document.Workflow, error)
	Export(ctx context.Context, w *document.Workflow) ([]byte, error)
	ExportDOT(ctx context.Context, w *document.Workflow) (string, error)
}

var _ WorkflowService = (*Service)(nil)
