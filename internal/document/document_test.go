package document

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awmpietro/hr-workflow-sandbox/internal/workflow"
)

var now = time.Date(2025, 3, 4, 9, 30, 0, 0, time.UTC)

func onboarding(t *testing.T) *Workflow {
	t.Helper()
	for _, tpl := range Templates(now) {
		if tpl.ID == "template-onboarding" {
			return tpl
		}
	}
	t.Fatal("onboarding template not found")
	return nil
}

func TestTemplates_AreValid(t *testing.T) {
	tpls := Templates(now)
	require.Len(t, tpls, 2)

	for _, tpl := range tpls {
		assert.Empty(t, workflow.Validate(tpl.Snapshot()), tpl.ID)
		assert.Equal(t, "2025-03-04T09:30:00Z", tpl.CreatedAt)
	}
}

func TestNew(t *testing.T) {
	w := New("Offboarding", "exit flow", workflow.Snapshot{}, now)

	assert.True(t, strings.HasPrefix(w.ID, "workflow-"))
	assert.NotEqual(t, w.ID, New("x", "", workflow.Snapshot{}, now).ID)
	assert.NotNil(t, w.Nodes)
	assert.NotNil(t, w.Edges)
	assert.Equal(t, w.CreatedAt, w.UpdatedAt)
}

func TestExportImport_RoundTrip(t *testing.T) {
	for _, tpl := range Templates(now) {
		raw, err := Export(tpl)
		require.NoError(t, err)

		got, err := Import(raw)
		require.NoError(t, err)
		assert.Equal(t, tpl, got)
	}
}

func TestExport_IsIndented(t *testing.T) {
	raw, err := Export(onboarding(t))
	require.NoError(t, err)

	assert.Contains(t, string(raw), "\n  \"id\": \"template-onboarding\"")
}

func TestImport_FillsMissingNodeAttributes(t *testing.T) {
	raw := `{
		"id": "wf-1",
		"nodes": [
			{"id": "s", "type": "start", "position": {"x": 0, "y": 0}},
			{"id": "e", "type": "end", "data": {"label": "Bye"}}
		],
		"edges": [{"id": "e1", "source": "s", "target": "e"}]
	}`

	w, err := Import([]byte(raw))
	require.NoError(t, err)
	require.Len(t, w.Nodes, 2)

	assert.Equal(t, "Start", w.Nodes[0].Label())
	end := w.Nodes[1].Data.(workflow.EndData)
	assert.Equal(t, "Bye", end.Label)
	assert.Equal(t, "Workflow completed", end.EndMessage)
	assert.False(t, end.ShowSummary)
}

func TestImport_Rejects(t *testing.T) {
	tests := map[string]string{
		"empty":         "   ",
		"not json":      "workflow please",
		"array":         `[]`,
		"missing id":    `{"nodes": [], "edges": []}`,
		"blank id":      `{"id": "", "nodes": [], "edges": []}`,
		"missing nodes": `{"id": "w", "edges": []}`,
		"null edges":    `{"id": "w", "nodes": [], "edges": null}`,
		"unknown kind":  `{"id": "w", "nodes": [{"id": "d", "type": "decision"}], "edges": []}`,
		"bad data":      `{"id": "w", "nodes": [{"id": "t", "type": "task", "data": {"assignee": 7}}], "edges": []}`,
	}

	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			w, err := Import([]byte(raw))
			assert.Nil(t, w)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidWorkflow)

			var pe *ParseError
			assert.True(t, errors.As(err, &pe))
		})
	}
}

func TestImport_AcceptsLooseItems(t *testing.T) {
	tests := map[string]string{
		"edge without source": `{"id": "w", "nodes": [], "edges": [{"id": "e1", "target": "x"}]}`,
		"node without id":     `{"id": "w", "nodes": [{"type": "task", "data": {"label": "T"}}], "edges": []}`,
		"null name":           `{"id": "w", "name": null, "description": null, "nodes": [], "edges": []}`,
	}

	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			w, err := Import([]byte(raw))
			require.NoError(t, err)
			assert.Equal(t, "w", w.ID)
		})
	}
}

func TestParseError(t *testing.T) {
	cause := errors.New("boom")
	err := &ParseError{Msg: "malformed JSON", Err: cause}

	assert.Equal(t, "invalid workflow: malformed JSON", err.Error())
	assert.Equal(t, cause, err.Cause())
	assert.Equal(t, "invalid workflow", (&ParseError{}).Error())
}

func TestDOT_RoundTrip(t *testing.T) {
	src := onboarding(t)

	dot, err := ExportDOT(src)
	require.NoError(t, err)
	assert.Contains(t, dot, "digraph")
	assert.Contains(t, dot, "rankdir")

	got, err := ImportDOT(dot, now)
	require.NoError(t, err)

	assert.Equal(t, src.Name, got.Name)
	assert.True(t, strings.HasPrefix(got.ID, "workflow-"))
	require.Len(t, got.Nodes, len(src.Nodes))
	require.Len(t, got.Edges, len(src.Edges))

	byID := map[string]workflow.Node{}
	for _, n := range got.Nodes {
		byID[n.ID] = n
	}
	for _, want := range src.Nodes {
		n, ok := byID[want.ID]
		require.True(t, ok, want.ID)
		assert.Equal(t, want.Kind, n.Kind)
		assert.Equal(t, want.Label(), n.Label())
		assert.Equal(t, want.Position, n.Position)
	}

	assert.ElementsMatch(t, src.Edges, got.Edges)
	assert.Empty(t, workflow.Validate(got.Snapshot()))
}

func TestDOT_KindAttributesRevertToDefaults(t *testing.T) {
	dot, err := ExportDOT(onboarding(t))
	require.NoError(t, err)

	got, err := ImportDOT(dot, now)
	require.NoError(t, err)

	for _, n := range got.Nodes {
		if n.ID == "end-1" {
			assert.Equal(t, "Workflow completed", n.Data.(workflow.EndData).EndMessage)
		}
	}
}

func TestImportDOT_HandWritten(t *testing.T) {
	dot := `digraph hiring {
		s [comment=start, label="Open Role"];
		i [comment=task];
		e [comment=end, label=Hired];
		s -> i;
		i -> e;
	}`

	got, err := ImportDOT(dot, now)
	require.NoError(t, err)

	assert.Equal(t, "hiring", got.Name)
	require.Len(t, got.Nodes, 3)
	labels := map[string]string{}
	for _, n := range got.Nodes {
		labels[n.ID] = n.Label()
	}
	assert.Equal(t, map[string]string{"s": "Open Role", "i": "New Task", "e": "Hired"}, labels)

	var edgeIDs []string
	for _, e := range got.Edges {
		edgeIDs = append(edgeIDs, e.ID)
	}
	assert.ElementsMatch(t, []string{"e1", "e2"}, edgeIDs)
}

func TestImportDOT_Rejects(t *testing.T) {
	tests := map[string]string{
		"malformed":    `digraph {`,
		"missing kind": `digraph g { a [label=A]; }`,
		"unknown kind": `digraph g { a [comment=decision]; }`,
		"bad pos":      `digraph g { a [comment=start, pos="left"]; }`,
	}

	for name, dot := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ImportDOT(dot, now)
			assert.ErrorIs(t, err, ErrInvalidWorkflow)
		})
	}
}
