package workflowdto

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awmpietro/hr-workflow-sandbox/internal/document"
	"github.com/awmpietro/hr-workflow-sandbox/internal/workflow"
)

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusFor(&document.ParseError{Msg: "x"}))
	assert.Equal(t, http.StatusBadRequest, StatusFor(fmt.Errorf("node: %w", workflow.ErrUnknownKind)))
	assert.Equal(t, http.StatusGatewayTimeout, StatusFor(context.DeadlineExceeded))
	assert.Equal(t, http.StatusRequestTimeout, StatusFor(context.Canceled))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(errors.New("boom")))
}

func TestNewValidateResponse(t *testing.T) {
	r := NewValidateResponse(nil)
	assert.True(t, r.Valid)
	assert.NotNil(t, r.Errors)

	r = NewValidateResponse([]workflow.ValidationIssue{{Severity: workflow.SeverityWarning, Message: "w"}})
	assert.True(t, r.Valid)

	r = NewValidateResponse([]workflow.ValidationIssue{{Severity: workflow.SeverityError, Message: "e"}})
	assert.False(t, r.Valid)
}

func TestFormat(t *testing.T) {
	f, ok := Format("")
	assert.True(t, ok)
	assert.Equal(t, FormatJSON, f)

	f, ok = Format("dot")
	assert.True(t, ok)
	assert.Equal(t, FormatDOT, f)

	_, ok = Format("yaml")
	assert.False(t, ok)
}

func TestDecodeSnapshot(t *testing.T) {
	s, err := DecodeSnapshot([]byte(`{"nodes":[{"id":"s","type":"start","data":{"label":"Go"}}],"edges":[]}`))
	require.NoError(t, err)
	require.Len(t, s.Nodes, 1)
	assert.Equal(t, "Go", s.Nodes[0].Label())

	_, err = DecodeSnapshot([]byte(`{"nodes":[{"id":"x","type":"decision"}]}`))
	assert.ErrorIs(t, err, workflow.ErrUnknownKind)
}
