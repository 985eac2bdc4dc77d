package workflow

// TopoSort orders nodes with Kahn's algorithm. Zero in-degree nodes are
// seeded in snapshot order and drained first-in-first-out. Nodes on a cycle,
// or reachable only through one, never reach zero in-degree and are left out;
// callers that must tell a truncated order from a complete one run HasCycle.
func TopoSort(s Snapshot) []Node {
	adj := newAdjacency(s)

	byID := make(map[string]Node, len(s.Nodes))
	inDegree := make(map[string]int, len(s.Nodes))
	queue := make([]string, 0, len(s.Nodes))
	for _, n := range s.Nodes {
		if _, dup := byID[n.ID]; dup {
			continue
		}
		byID[n.ID] = n
		inDegree[n.ID] = adj.incoming(n.ID)
		if inDegree[n.ID] == 0 {
			queue = append(queue, n.ID)
		}
	}

	order := make([]Node, 0, len(byID))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, byID[id])

		for _, next := range adj.succ[id] {
			inDegree[next]--
			if inDegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	return order
}
