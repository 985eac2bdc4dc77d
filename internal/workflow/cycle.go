package workflow

// HasCycle reports whether the directed graph contains at least one cycle.
// Edges referencing unknown nodes are ignored. The walk stops at the first
// back-edge found.
func HasCycle(s Snapshot) bool {
	return newAdjacency(s).hasCycle(s.Nodes)
}

func (a *adjacency) hasCycle(nodes []Node) bool {
	visited := make(map[string]bool, len(nodes))
	onPath := make(map[string]bool)

	var visit func(id string) bool
	visit = func(id string) bool {
		visited[id] = true
		onPath[id] = true

		for _, next := range a.succ[id] {
			if onPath[next] {
				return true
			}
			if !visited[next] && visit(next) {
				return true
			}
		}

		delete(onPath, id)
		return false
	}

	for _, n := range nodes {
		if !visited[n.ID] && visit(n.ID) {
			return true
		}
	}
	return false
}
