package workflow

import (
	"fmt"

	"github.com/awmpietro/hr-workflow-sandbox/internal/catalog"
	"github.com/awmpietro/hr-workflow-sandbox/internal/workflow/rules"
)

const (
	msgMissingStart    = "Workflow must have a Start node"
	msgMultipleStart   = "Workflow can only have one Start node"
	msgMissingEnd      = "Workflow must have an End node"
	msgStartIncoming   = "Start node cannot have incoming connections"
	msgEndOutgoing     = "End node cannot have outgoing connections"
	msgCycle           = "Workflow contains a cycle"
	msgNoOutgoing      = "%s has no outgoing connections"
	msgNoIncoming      = "%s has no incoming connections"
	msgNotConnected    = "%s is not fully connected"
	msgDanglingEdge    = "Edge %s references unknown node %s"
	msgUnknownAction   = "%s uses unknown action %s"
	msgRuleUnevaluable = "Rule %q could not be evaluated: %v"
)

// ActionLookup resolves automation action ids. *catalog.Static satisfies it.
type ActionLookup interface {
	Lookup(id string) (catalog.Action, error)
}

type Validator struct {
	checkDangling bool
	actions       ActionLookup
	rules         []*rules.Rule
}

type ValidatorOption func(*Validator)

// WithDanglingEdgeCheck reports edges pointing at unknown node ids as errors.
func WithDanglingEdgeCheck() ValidatorOption {
	return func(v *Validator) {
		v.checkDangling = true
	}
}

// WithActionCheck reports automated nodes whose action id is set but absent
// from actions as errors. Nodes without an action id are left alone.
func WithActionCheck(actions ActionLookup) ValidatorOption {
	return func(v *Validator) {
		v.actions = actions
	}
}

// WithRules adds advisory rules; an unsatisfied rule yields a warning.
func WithRules(rs ...*rules.Rule) ValidatorOption {
	return func(v *Validator) {
		v.rules = append(v.rules, rs...)
	}
}

func NewValidator(opts ...ValidatorOption) *Validator {
	v := &Validator{}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

var defaultValidator = NewValidator()

// Validate checks s with the default rule set.
func Validate(s Snapshot) []ValidationIssue {
	return defaultValidator.Validate(s)
}

// Validate never fails: every structural problem is reported as an issue.
func (v *Validator) Validate(s Snapshot) []ValidationIssue {
	issues := make([]ValidationIssue, 0)
	adj := newAdjacency(s)

	var starts, ends []Node
	for _, n := range s.Nodes {
		switch n.Kind {
		case KindStart:
			starts = append(starts, n)
		case KindEnd:
			ends = append(ends, n)
		}
	}

	switch {
	case len(starts) == 0:
		issues = append(issues, errorIssue("", msgMissingStart))
	case len(starts) > 1:
		issues = append(issues, errorIssue("", msgMultipleStart))
	}

	if len(ends) == 0 {
		issues = append(issues, errorIssue("", msgMissingEnd))
	}

	if len(starts) == 1 && adj.incoming(starts[0].ID) > 0 {
		issues = append(issues, errorIssue(starts[0].ID, msgStartIncoming))
	}

	for _, end := range ends {
		if adj.outgoing(end.ID) > 0 {
			issues = append(issues, errorIssue(end.ID, msgEndOutgoing))
		}
	}

	for _, n := range s.Nodes {
		switch n.Kind {
		case KindStart:
			if adj.outgoing(n.ID) == 0 && len(s.Nodes) > 1 {
				issues = append(issues, warningIssue(n.ID, fmt.Sprintf(msgNoOutgoing, n.Label())))
			}
		case KindEnd:
			if adj.incoming(n.ID) == 0 {
				issues = append(issues, warningIssue(n.ID, fmt.Sprintf(msgNoIncoming, n.Label())))
			}
		default:
			if adj.incoming(n.ID) == 0 || adj.outgoing(n.ID) == 0 {
				issues = append(issues, warningIssue(n.ID, fmt.Sprintf(msgNotConnected, n.Label())))
			}
		}
	}

	if adj.hasCycle(s.Nodes) {
		issues = append(issues, errorIssue("", msgCycle))
	}

	if v.checkDangling {
		for _, d := range danglingEdges(s) {
			issues = append(issues, errorIssue(d.missing, fmt.Sprintf(msgDanglingEdge, d.edge.ID, d.missing)))
		}
	}

	if v.actions != nil {
		for _, n := range s.Nodes {
			d, ok := n.Data.(AutomatedData)
			if !ok || n.Kind != KindAutomated || d.ActionID == "" {
				continue
			}
			if _, err := v.actions.Lookup(d.ActionID); err != nil {
				issues = append(issues, errorIssue(n.ID, fmt.Sprintf(msgUnknownAction, n.Label(), d.ActionID)))
			}
		}
	}

	if len(v.rules) > 0 {
		facts := Facts(s)
		for _, r := range v.rules {
			ok, err := r.Check(facts)
			if err != nil {
				issues = append(issues, warningIssue("", fmt.Sprintf(msgRuleUnevaluable, r.Name, err)))
				continue
			}
			if !ok {
				issues = append(issues, warningIssue("", r.Describe()))
			}
		}
	}

	return issues
}

func errorIssue(nodeID, msg string) ValidationIssue {
	return ValidationIssue{NodeID: nodeID, Severity: SeverityError, Message: msg}
}

func warningIssue(nodeID, msg string) ValidationIssue {
	return ValidationIssue{NodeID: nodeID, Severity: SeverityWarning, Message: msg}
}
