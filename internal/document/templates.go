package document

import (
	"time"

	"github.com/awmpietro/hr-workflow-sandbox/internal/workflow"
)

// Templates returns the starter workflows offered in the editor, stamped with now.
func Templates(now time.Time) []*Workflow {
	ts := now.UTC().Format(time.RFC3339)
	return []*Workflow{
		{
			ID:          "template-onboarding",
			Name:        "Employee Onboarding",
			Description: "Standard onboarding workflow for new employees",
			Nodes: []workflow.Node{
				{ID: "start-1", Kind: workflow.KindStart, Position: workflow.Position{X: 100, Y: 200}, Data: workflow.StartData{
					Label:    "Start Onboarding",
					Title:    "New Employee Onboarding",
					Metadata: map[string]string{"department": "HR"},
				}},
				{ID: "task-1", Kind: workflow.KindTask, Position: workflow.Position{X: 300, Y: 200}, Data: workflow.TaskData{
					Label:        "Collect Documents",
					Title:        "Collect Documents",
					Description:  "Gather required documentation",
					Assignee:     "HR Admin",
					CustomFields: map[string]string{},
				}},
				{ID: "approval-1", Kind: workflow.KindApproval, Position: workflow.Position{X: 500, Y: 200}, Data: workflow.ApprovalData{
					Label:        "Manager Approval",
					Title:        "Manager Approval",
					ApproverRole: workflow.RoleManager,
				}},
				{ID: "automated-1", Kind: workflow.KindAutomated, Position: workflow.Position{X: 700, Y: 200}, Data: workflow.AutomatedData{
					Label:        "Provision Access",
					Title:        "Provision Access",
					ActionID:     "provision_access",
					ActionParams: map[string]string{"system": "All", "role": "Employee"},
				}},
				{ID: "end-1", Kind: workflow.KindEnd, Position: workflow.Position{X: 900, Y: 200}, Data: workflow.EndData{
					Label:       "Onboarding Complete",
					EndMessage:  "Welcome to the team!",
					ShowSummary: true,
				}},
			},
			Edges: []workflow.Edge{
				{ID: "e1", Source: "start-1", Target: "task-1"},
				{ID: "e2", Source: "task-1", Target: "approval-1"},
				{ID: "e3", Source: "approval-1", Target: "automated-1"},
				{ID: "e4", Source: "automated-1", Target: "end-1"},
			},
			CreatedAt: ts,
			UpdatedAt: ts,
		},
		{
			ID:          "template-leave",
			Name:        "Leave Request",
			Description: "Standard leave approval workflow",
			Nodes: []workflow.Node{
				{ID: "start-1", Kind: workflow.KindStart, Position: workflow.Position{X: 100, Y: 200}, Data: workflow.StartData{
					Label:    "Leave Request",
					Title:    "Leave Request",
					Metadata: map[string]string{},
				}},
				{ID: "approval-1", Kind: workflow.KindApproval, Position: workflow.Position{X: 350, Y: 200}, Data: workflow.ApprovalData{
					Label:                "Manager Approval",
					Title:                "Manager Approval",
					ApproverRole:         workflow.RoleManager,
					AutoApproveThreshold: 2,
				}},
				{ID: "automated-1", Kind: workflow.KindAutomated, Position: workflow.Position{X: 600, Y: 200}, Data: workflow.AutomatedData{
					Label:        "Update HRIS",
					Title:        "Update HRIS",
					ActionID:     "update_hris",
					ActionParams: map[string]string{"field": "leave_balance"},
				}},
				{ID: "end-1", Kind: workflow.KindEnd, Position: workflow.Position{X: 850, Y: 200}, Data: workflow.EndData{
					Label:       "Leave Approved",
					EndMessage:  "Your leave has been approved",
					ShowSummary: true,
				}},
			},
			Edges: []workflow.Edge{
				{ID: "e1", Source: "start-1", Target: "approval-1"},
				{ID: "e2", Source: "approval-1", Target: "automated-1"},
				{ID: "e3", Source: "automated-1", Target: "end-1"},
			},
			CreatedAt: ts,
			UpdatedAt: ts,
		},
	}
}
