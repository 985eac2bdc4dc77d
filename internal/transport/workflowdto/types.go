// Package workflowdto holds the request and response bodies shared by the
// HTTP and Lambda transports.
package workflowdto

import (
	"context"
	"errors"
	"net/http"

	"github.com/awmpietro/hr-workflow-sandbox/internal/document"
	"github.com/awmpietro/hr-workflow-sandbox/internal/workflow"
	"github.com/awmpietro/hr-workflow-sandbox/internal/xjson"
)

const (
	FormatJSON = "json"
	FormatDOT  = "dot"

	ContentTypeJSON = "application/json"
	ContentTypeDOT  = "text/vnd.graphviz"
)

type ValidateResponse struct {
	Valid  bool                       `json:"valid"`
	Errors []workflow.ValidationIssue `json:"errors"`
}

func NewValidateResponse(issues []workflow.ValidationIssue) ValidateResponse {
	if issues == nil {
		issues = []workflow.ValidationIssue{}
	}
	return ValidateResponse{Valid: !workflow.HasErrors(issues), Errors: issues}
}

type NewNodeRequest struct {
	Type     string            `json:"type"`
	Position workflow.Position `json:"position"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func DecodeSnapshot(body []byte) (workflow.Snapshot, error) {
	var s workflow.Snapshot
	if err := xjson.Unmarshal(body, &s); err != nil {
		return workflow.Snapshot{}, err
	}
	return s, nil
}

func DecodeNewNode(body []byte) (NewNodeRequest, error) {
	var in NewNodeRequest
	if err := xjson.Unmarshal(body, &in); err != nil {
		return NewNodeRequest{}, err
	}
	return in, nil
}

func DecodeWorkflow(body []byte) (*document.Workflow, error) {
	var w document.Workflow
	if err := xjson.Unmarshal(body, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// Format normalizes the ?format= query value; empty means JSON.
func Format(raw string) (string, bool) {
	switch raw {
	case "", FormatJSON:
		return FormatJSON, true
	case FormatDOT:
		return FormatDOT, true
	}
	return "", false
}

// StatusFor maps a service error to an HTTP status code.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, document.ErrInvalidWorkflow), errors.Is(err, workflow.ErrUnknownKind):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}

func ErrorBody(msg string, err error) ErrorResponse {
	out := ErrorResponse{Error: msg}
	if err != nil {
		out.Details = err.Error()
	}
	return out
}
