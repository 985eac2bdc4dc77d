package document

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/awalterschulze/gographviz"

	"github.com/awmpietro/hr-workflow-sandbox/internal/workflow"
)

const dotGraphName = "workflow"

var shapes = map[workflow.NodeKind]string{
	workflow.KindStart:     "oval",
	workflow.KindTask:      "box",
	workflow.KindApproval:  "diamond",
	workflow.KindAutomated: "component",
	workflow.KindEnd:       "doublecircle",
}

// ExportDOT renders w as a Graphviz digraph. The node kind travels in the
// comment attribute and the canvas position in pos. Graphviz output is
// sorted, so node and edge order is not preserved.
func ExportDOT(w *Workflow) (string, error) {
	name := graphName(w)
	g := gographviz.NewEscape()
	if err := g.SetName(name); err != nil {
		return "", err
	}
	if err := g.SetDir(true); err != nil {
		return "", err
	}
	if err := g.AddAttr(name, "rankdir", "LR"); err != nil {
		return "", err
	}

	for _, n := range w.Nodes {
		attrs := map[string]string{
			"comment": string(n.Kind),
			"pos":     formatPos(n.Position),
		}
		if label := n.Label(); label != "" {
			attrs["label"] = label
		}
		if shape, ok := shapes[n.Kind]; ok {
			attrs["shape"] = shape
		}
		if err := g.AddNode(name, n.ID, attrs); err != nil {
			return "", fmt.Errorf("add node %q: %w", n.ID, err)
		}
	}
	for _, e := range w.Edges {
		attrs := map[string]string{}
		if e.ID != "" {
			attrs["id"] = e.ID
		}
		if err := g.AddEdge(e.Source, e.Target, true, attrs); err != nil {
			return "", fmt.Errorf("add edge %q: %w", e.ID, err)
		}
	}
	return g.String(), nil
}

// ImportDOT reads a digraph produced by ExportDOT (or written by hand in the
// same convention). Kind-specific attributes start from their defaults.
func ImportDOT(text string, now time.Time) (*Workflow, error) {
	ast, err := gographviz.ParseString(text)
	if err != nil {
		return nil, invalid("malformed DOT", err)
	}
	g := gographviz.NewGraph()
	if err := gographviz.Analyse(ast, g); err != nil {
		return nil, invalid("malformed DOT", err)
	}

	nodes := make([]workflow.Node, 0, len(g.Nodes.Nodes))
	for _, gn := range g.Nodes.Nodes {
		id := unquote(gn.Name)
		kind, err := workflow.ParseNodeKind(attr(gn.Attrs, "comment"))
		if err != nil {
			return nil, invalid(fmt.Sprintf("node %q has no valid kind", id), err)
		}
		label := attr(gn.Attrs, "label")
		if label == "" {
			label = workflow.DefaultLabel(kind)
		}
		data, err := workflow.NewNodeData(kind, label)
		if err != nil {
			return nil, invalid(fmt.Sprintf("node %q", id), err)
		}
		pos, err := parsePos(attr(gn.Attrs, "pos"))
		if err != nil {
			return nil, invalid(fmt.Sprintf("node %q has invalid pos", id), err)
		}
		nodes = append(nodes, workflow.Node{ID: id, Kind: kind, Position: pos, Data: data})
	}

	edges := make([]workflow.Edge, 0, len(g.Edges.Edges))
	for i, ge := range g.Edges.Edges {
		id := attr(ge.Attrs, "id")
		if id == "" {
			id = "e" + strconv.Itoa(i+1)
		}
		edges = append(edges, workflow.Edge{ID: id, Source: unquote(ge.Src), Target: unquote(ge.Dst)})
	}

	ts := now.UTC().Format(time.RFC3339)
	return &Workflow{
		ID:        NewID(),
		Name:      unquote(g.Name),
		Nodes:     nodes,
		Edges:     edges,
		CreatedAt: ts,
		UpdatedAt: ts,
	}, nil
}

func graphName(w *Workflow) string {
	if strings.TrimSpace(w.Name) == "" {
		return dotGraphName
	}
	return w.Name
}

func attr(attrs gographviz.Attrs, key string) string {
	val, ok := attrs[gographviz.Attr(key)]
	if !ok {
		return ""
	}
	return unquote(strings.TrimSpace(val))
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
		s = strings.ReplaceAll(s, `\"`, `"`)
	}
	return s
}

func formatPos(p workflow.Position) string {
	return strconv.FormatFloat(p.X, 'f', -1, 64) + "," + strconv.FormatFloat(p.Y, 'f', -1, 64)
}

func parsePos(s string) (workflow.Position, error) {
	if s == "" {
		return workflow.Position{}, nil
	}
	s = strings.TrimSuffix(s, "!")
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return workflow.Position{}, fmt.Errorf("expected \"x,y\", got %q", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return workflow.Position{}, err
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return workflow.Position{}, err
	}
	return workflow.Position{X: x, Y: y}, nil
}
