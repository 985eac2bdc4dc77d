package workflow

// adjacency is the directed view of a snapshot restricted to edges whose
// endpoints are both present in the node list.
type adjacency struct {
	succ     map[string][]string
	inDegree map[string]int
	outDeg   map[string]int
}

func newAdjacency(s Snapshot) *adjacency {
	a := &adjacency{
		succ:     make(map[string][]string, len(s.Nodes)),
		inDegree: make(map[string]int, len(s.Nodes)),
		outDeg:   make(map[string]int, len(s.Nodes)),
	}
	present := nodeSet(s.Nodes)
	for _, n := range s.Nodes {
		a.succ[n.ID] = nil
		a.inDegree[n.ID] = 0
		a.outDeg[n.ID] = 0
	}
	for _, e := range s.Edges {
		if !present[e.Source] || !present[e.Target] {
			continue
		}
		a.succ[e.Source] = append(a.succ[e.Source], e.Target)
		a.inDegree[e.Target]++
		a.outDeg[e.Source]++
	}
	return a
}

func (a *adjacency) incoming(id string) int { return a.inDegree[id] }
func (a *adjacency) outgoing(id string) int { return a.outDeg[id] }

func nodeSet(nodes []Node) map[string]bool {
	set := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		set[n.ID] = true
	}
	return set
}

type danglingEdge struct {
	edge    Edge
	missing string
}

// danglingEdges lists edges with an endpoint absent from the node list, one
// entry per missing endpoint.
func danglingEdges(s Snapshot) []danglingEdge {
	present := nodeSet(s.Nodes)
	var out []danglingEdge
	for _, e := range s.Edges {
		if !present[e.Source] {
			out = append(out, danglingEdge{edge: e, missing: e.Source})
		}
		if !present[e.Target] {
			out = append(out, danglingEdge{edge: e, missing: e.Target})
		}
	}
	return out
}

func countKind(nodes []Node, kind NodeKind) int {
	n := 0
	for _, node := range nodes {
		if node.Kind == kind {
			n++
		}
	}
	return n
}

// Facts summarizes a snapshot for advisory rule evaluation.
func Facts(s Snapshot) map[string]any {
	return map[string]any{
		"nodes":           len(s.Nodes),
		"edges":           len(s.Edges),
		"start_nodes":     countKind(s.Nodes, KindStart),
		"task_nodes":      countKind(s.Nodes, KindTask),
		"approval_nodes":  countKind(s.Nodes, KindApproval),
		"automated_nodes": countKind(s.Nodes, KindAutomated),
		"end_nodes":       countKind(s.Nodes, KindEnd),
	}
}
