package workflow

import "fmt"

// ActionCatalog resolves automation action ids to display labels.
type ActionCatalog interface {
	ActionLabel(id string) (string, bool)
}

// StepMessage describes the simulated outcome of running n.
func StepMessage(n Node, catalog ActionCatalog) string {
	label := n.Label()

	switch n.Kind {
	case KindStart:
		return fmt.Sprintf("Workflow initiated: %s", label)
	case KindTask:
		assignee := "unassigned"
		if d, ok := n.Data.(TaskData); ok && d.Assignee != "" {
			assignee = d.Assignee
		}
		return fmt.Sprintf("Task %q assigned to %s", label, assignee)
	case KindApproval:
		approver := "approver"
		if d, ok := n.Data.(ApprovalData); ok && d.ApproverRole != "" {
			approver = string(d.ApproverRole)
		}
		return fmt.Sprintf("Approval obtained from %s", approver)
	case KindAutomated:
		action := "automated action"
		if d, ok := n.Data.(AutomatedData); ok && catalog != nil {
			if name, found := catalog.ActionLabel(d.ActionID); found && name != "" {
				action = name
			}
		}
		return fmt.Sprintf("Executed: %s", action)
	case KindEnd:
		return fmt.Sprintf("Workflow completed: %s", label)
	default:
		return fmt.Sprintf("Step completed: %s", label)
	}
}
