package workflow

import "time"

type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NodeData is the kind-specific attribute set of a node. The variants are
// StartData, TaskData, ApprovalData, AutomatedData and EndData.
type NodeData interface {
	Kind() NodeKind
	DisplayLabel() string
	nodeData()
}

type StartData struct {
	Label    string            `json:"label"`
	Title    string            `json:"title"`
	Metadata map[string]string `json:"metadata"`
}

type TaskData struct {
	Label        string            `json:"label"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	Assignee     string            `json:"assignee"`
	DueDate      string            `json:"dueDate"`
	CustomFields map[string]string `json:"customFields"`
}

type ApproverRole string

const (
	RoleManager  ApproverRole = "Manager"
	RoleHRBP     ApproverRole = "HRBP"
	RoleDirector ApproverRole = "Director"
	RoleVP       ApproverRole = "VP"
	RoleCustom   ApproverRole = "Custom"
)

type ApprovalData struct {
	Label                string       `json:"label"`
	Title                string       `json:"title"`
	ApproverRole         ApproverRole `json:"approverRole"`
	CustomApprover       string       `json:"customApprover,omitempty"`
	AutoApproveThreshold int          `json:"autoApproveThreshold"`
}

type AutomatedData struct {
	Label        string            `json:"label"`
	Title        string            `json:"title"`
	ActionID     string            `json:"actionId"`
	ActionParams map[string]string `json:"actionParams"`
}

type EndData struct {
	Label       string `json:"label"`
	EndMessage  string `json:"endMessage"`
	ShowSummary bool   `json:"showSummary"`
}

func (StartData) Kind() NodeKind     { return KindStart }
func (TaskData) Kind() NodeKind      { return KindTask }
func (ApprovalData) Kind() NodeKind  { return KindApproval }
func (AutomatedData) Kind() NodeKind { return KindAutomated }
func (EndData) Kind() NodeKind       { return KindEnd }

func (d StartData) DisplayLabel() string     { return d.Label }
func (d TaskData) DisplayLabel() string      { return d.Label }
func (d ApprovalData) DisplayLabel() string  { return d.Label }
func (d AutomatedData) DisplayLabel() string { return d.Label }
func (d EndData) DisplayLabel() string       { return d.Label }

func (StartData) nodeData()     {}
func (TaskData) nodeData()      {}
func (ApprovalData) nodeData()  {}
func (AutomatedData) nodeData() {}
func (EndData) nodeData()       {}

type Node struct {
	ID       string
	Kind     NodeKind
	Position Position
	Data     NodeData
}

func (n Node) Label() string {
	if n.Data == nil {
		return ""
	}
	return n.Data.DisplayLabel()
}

type Edge struct {
	ID           string `json:"id"`
	Source       string `json:"source"`
	Target       string `json:"target"`
	SourceHandle string `json:"sourceHandle,omitempty"`
	TargetHandle string `json:"targetHandle,omitempty"`
}

// Snapshot is the immutable graph handed over by the editor.
type Snapshot struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

type ValidationIssue struct {
	NodeID   string   `json:"nodeId,omitempty"`
	Severity Severity `json:"type"`
	Message  string   `json:"message"`
}

// HasErrors reports whether any issue blocks execution.
func HasErrors(issues []ValidationIssue) bool {
	for _, is := range issues {
		if is.Severity == SeverityError {
			return true
		}
	}
	return false
}

type StepStatus string

const (
	StatusCompleted StepStatus = "completed"
	StatusPending   StepStatus = "pending"
	StatusFailed    StepStatus = "failed"
	StatusSkipped   StepStatus = "skipped"
)

type SimulationStep struct {
	NodeID    string     `json:"nodeId"`
	NodeName  string     `json:"nodeName"`
	NodeType  NodeKind   `json:"nodeType"`
	Status    StepStatus `json:"status"`
	Message   string     `json:"message"`
	Timestamp time.Time  `json:"timestamp"`
	Duration  float64    `json:"duration"`
}

type SimulationResult struct {
	Success       bool              `json:"success"`
	Steps         []SimulationStep  `json:"steps"`
	Errors        []ValidationIssue `json:"errors"`
	TotalDuration float64           `json:"totalDuration"`
}
