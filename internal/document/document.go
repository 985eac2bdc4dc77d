// Package document converts workflows to and from their exchange formats.
package document

import (
	"bytes"
	"time"

	"github.com/google/uuid"

	"github.com/awmpietro/hr-workflow-sandbox/internal/workflow"
	"github.com/awmpietro/hr-workflow-sandbox/internal/xjson"
)

// Workflow is the persisted form of an editor canvas.
type Workflow struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Nodes       []workflow.Node `json:"nodes"`
	Edges       []workflow.Edge `json:"edges"`
	CreatedAt   string          `json:"createdAt"`
	UpdatedAt   string          `json:"updatedAt"`
}

// New wraps a snapshot in a fresh document stamped with now.
func New(name, description string, s workflow.Snapshot, now time.Time) *Workflow {
	ts := now.UTC().Format(time.RFC3339)
	return &Workflow{
		ID:          NewID(),
		Name:        name,
		Description: description,
		Nodes:       nonNilNodes(s.Nodes),
		Edges:       nonNilEdges(s.Edges),
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
}

func NewID() string {
	return "workflow-" + uuid.NewString()
}

func (w *Workflow) Snapshot() workflow.Snapshot {
	return workflow.Snapshot{Nodes: w.Nodes, Edges: w.Edges}
}

// Export renders w as indented JSON.
func Export(w *Workflow) ([]byte, error) {
	out := *w
	out.Nodes = nonNilNodes(out.Nodes)
	out.Edges = nonNilEdges(out.Edges)
	return xjson.MarshalIndent(out, "", "  ")
}

// Import parses raw as a workflow document. Any failure yields a single
// error wrapping ErrInvalidWorkflow and no partial result.
func Import(raw []byte) (*Workflow, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, invalid("empty document", nil)
	}

	var tree any
	if err := xjson.Unmarshal(raw, &tree); err != nil {
		return nil, invalid("malformed JSON", err)
	}
	if err := checkShape(tree); err != nil {
		return nil, invalid("id, nodes and edges are required", err)
	}

	var w Workflow
	if err := xjson.Unmarshal(raw, &w); err != nil {
		return nil, invalid("cannot decode workflow", err)
	}

	nodes, err := workflow.NormalizeNodes(w.Nodes)
	if err != nil {
		return nil, invalid("cannot decode workflow", err)
	}
	w.Nodes = nodes
	w.Edges = nonNilEdges(w.Edges)

	return &w, nil
}

func nonNilNodes(n []workflow.Node) []workflow.Node {
	if n == nil {
		return []workflow.Node{}
	}
	return n
}

func nonNilEdges(e []workflow.Edge) []workflow.Edge {
	if e == nil {
		return []workflow.Edge{}
	}
	return e
}
