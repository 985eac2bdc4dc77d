package workflow

import (
	"fmt"

	"dario.cat/mergo"
)

// NewNodeData returns the full default attribute set for a freshly placed node.
func NewNodeData(kind NodeKind, label string) (NodeData, error) {
	switch kind {
	case KindStart:
		return StartData{Label: label, Title: label, Metadata: map[string]string{}}, nil
	case KindTask:
		return TaskData{Label: label, Title: label, CustomFields: map[string]string{}}, nil
	case KindApproval:
		return ApprovalData{Label: label, Title: label, ApproverRole: RoleManager}, nil
	case KindAutomated:
		return AutomatedData{Label: label, Title: label, ActionParams: map[string]string{}}, nil
	case KindEnd:
		return EndData{Label: label, EndMessage: "Workflow completed", ShowSummary: true}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

// WithDefaults fills attributes left empty by an imported document from the
// kind defaults. Provided values always win. ShowSummary is left as decoded.
func WithDefaults(data NodeData) (NodeData, error) {
	if data == nil {
		return nil, nil
	}
	label := data.DisplayLabel()
	if label == "" {
		label = DefaultLabel(data.Kind())
	}
	defaults, err := NewNodeData(data.Kind(), label)
	if err != nil {
		return nil, err
	}

	switch d := data.(type) {
	case StartData:
		err = mergo.Merge(&d, defaults.(StartData))
		return d, err
	case TaskData:
		err = mergo.Merge(&d, defaults.(TaskData))
		return d, err
	case ApprovalData:
		err = mergo.Merge(&d, defaults.(ApprovalData))
		return d, err
	case AutomatedData:
		err = mergo.Merge(&d, defaults.(AutomatedData))
		return d, err
	case EndData:
		def := defaults.(EndData)
		def.ShowSummary = false
		err = mergo.Merge(&d, def)
		return d, err
	}
	return nil, fmt.Errorf("%w: %T", ErrUnknownKind, data)
}

// NormalizeNodes applies WithDefaults to every node, returning a new slice.
func NormalizeNodes(nodes []Node) ([]Node, error) {
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		if n.Data == nil {
			label := DefaultLabel(n.Kind)
			data, err := NewNodeData(n.Kind, label)
			if err != nil {
				return nil, fmt.Errorf("node %q: %w", n.ID, err)
			}
			n.Data = data
		} else {
			data, err := WithDefaults(n.Data)
			if err != nil {
				return nil, fmt.Errorf("node %q: %w", n.ID, err)
			}
			n.Data = data
		}
		out[i] = n
	}
	return out, nil
}
