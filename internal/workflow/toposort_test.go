package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCycle(t *testing.T) {
	tests := []struct {
		name string
		s    Snapshot
		want bool
	}{
		{name: "empty", s: Snapshot{}, want: false},
		{name: "chain", s: chain(), want: false},
		{
			name: "two node loop",
			s: Snapshot{
				Nodes: []Node{taskNode("A", "A", ""), taskNode("B", "B", "")},
				Edges: []Edge{edge("A", "B"), edge("B", "A")},
			},
			want: true,
		},
		{
			name: "self loop",
			s: Snapshot{
				Nodes: []Node{taskNode("A", "A", "")},
				Edges: []Edge{edge("A", "A")},
			},
			want: true,
		},
		{
			name: "diamond",
			s: Snapshot{
				Nodes: []Node{startNode("s", "s"), taskNode("a", "a", ""), taskNode("b", "b", ""), endNode("e", "e")},
				Edges: []Edge{edge("s", "a"), edge("s", "b"), edge("a", "e"), edge("b", "e")},
			},
			want: false,
		},
		{
			name: "cycle away from first node",
			s: Snapshot{
				Nodes: []Node{startNode("s", "s"), taskNode("a", "a", ""), taskNode("b", "b", ""), taskNode("c", "c", "")},
				Edges: []Edge{edge("s", "a"), edge("a", "b"), edge("b", "c"), edge("c", "a")},
			},
			want: true,
		},
		{
			name: "dangling edges do not close a loop",
			s: Snapshot{
				Nodes: []Node{taskNode("A", "A", "")},
				Edges: []Edge{edge("A", "ghost"), edge("ghost", "A")},
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasCycle(tt.s))
		})
	}
}

func TestTopoSort_Chain(t *testing.T) {
	assert.Equal(t, []string{"s", "t", "a", "x", "e"}, ids(TopoSort(chain())))
}

func TestTopoSort_SeedsInSnapshotOrderAndDrainsFIFO(t *testing.T) {
	s := Snapshot{
		Nodes: []Node{
			endNode("e", "e"),
			taskNode("b", "b", ""),
			startNode("s", "s"),
			taskNode("a", "a", ""),
		},
		Edges: []Edge{edge("s", "a"), edge("s", "b"), edge("a", "e"), edge("b", "e")},
	}

	assert.Equal(t, []string{"s", "a", "b", "e"}, ids(TopoSort(s)))
}

func TestTopoSort_DisconnectedNodesAreSeeded(t *testing.T) {
	s := Snapshot{
		Nodes: []Node{startNode("S", "S"), taskNode("T", "T", ""), endNode("E", "E")},
		Edges: []Edge{edge("S", "T")},
	}

	// E has no incoming edge, so it is eligible right after S.
	assert.Equal(t, []string{"S", "E", "T"}, ids(TopoSort(s)))
}

func TestTopoSort_CycleIsOmitted(t *testing.T) {
	s := Snapshot{
		Nodes: []Node{taskNode("A", "A", ""), taskNode("B", "B", "")},
		Edges: []Edge{edge("A", "B"), edge("B", "A")},
	}

	assert.Empty(t, TopoSort(s))
}

func TestTopoSort_NodesBehindCycleAreOmitted(t *testing.T) {
	s := Snapshot{
		Nodes: []Node{
			startNode("s", "s"),
			taskNode("a", "a", ""),
			taskNode("b", "b", ""),
			endNode("e", "e"),
		},
		Edges: []Edge{edge("s", "a"), edge("a", "b"), edge("b", "a"), edge("b", "e")},
	}

	assert.True(t, HasCycle(s))
	assert.Equal(t, []string{"s"}, ids(TopoSort(s)))
}

func TestTopoSort_IgnoresDanglingEdges(t *testing.T) {
	s := chain()
	s.Edges = append(s.Edges, edge("ghost", "s"))

	assert.Equal(t, []string{"s", "t", "a", "x", "e"}, ids(TopoSort(s)))
}
