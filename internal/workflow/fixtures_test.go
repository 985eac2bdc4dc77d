package workflow

import "time"

func startNode(id, label string) Node {
	return Node{ID: id, Kind: KindStart, Data: StartData{Label: label}}
}

func taskNode(id, label, assignee string) Node {
	return Node{ID: id, Kind: KindTask, Data: TaskData{Label: label, Assignee: assignee}}
}

func approvalNode(id, label string, role ApproverRole) Node {
	return Node{ID: id, Kind: KindApproval, Data: ApprovalData{Label: label, ApproverRole: role}}
}

func automatedNode(id, label, actionID string) Node {
	return Node{ID: id, Kind: KindAutomated, Data: AutomatedData{Label: label, ActionID: actionID}}
}

func endNode(id, label string) Node {
	return Node{ID: id, Kind: KindEnd, Data: EndData{Label: label}}
}

func edge(from, to string) Edge {
	return Edge{ID: from + "->" + to, Source: from, Target: to}
}

func ids(nodes []Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.ID)
	}
	return out
}

func chain() Snapshot {
	return Snapshot{
		Nodes: []Node{
			startNode("s", "Start Onboarding"),
			taskNode("t", "Collect Documents", "HR Admin"),
			approvalNode("a", "Manager Approval", RoleManager),
			automatedNode("x", "Provision Access", "provision_access"),
			endNode("e", "Onboarding Complete"),
		},
		Edges: []Edge{edge("s", "t"), edge("t", "a"), edge("a", "x"), edge("x", "e")},
	}
}

type fixedRand float64

func (f fixedRand) Float64() float64 { return float64(f) }

type stubCatalog map[string]string

func (c stubCatalog) ActionLabel(id string) (string, bool) {
	l, ok := c[id]
	return l, ok
}

var epoch = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

func fixedClock() time.Time { return epoch }
