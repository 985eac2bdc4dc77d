package lambdatransport

import (
	"context"
	"encoding/base64"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"

	"github.com/awmpietro/hr-workflow-sandbox/internal/app"
	"github.com/awmpietro/hr-workflow-sandbox/internal/transport/workflowdto"
	"github.com/awmpietro/hr-workflow-sandbox/internal/xjson"
)

type route func(ctx context.Context, req events.APIGatewayV2HTTPRequest, body []byte) events.APIGatewayV2HTTPResponse

type Handler struct {
	svc    app.WorkflowService
	logger *slog.Logger
	routes map[string]route
}

func NewHandler(svc app.WorkflowService, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{svc: svc, logger: logger.With("component", "lambda")}
	h.routes = map[string]route{
		"GET /health":            h.health,
		"GET /automations":       h.automations,
		"GET /templates":         h.templates,
		"POST /validate":         h.validate,
		"POST /simulate":         h.simulate,
		"POST /nodes":            h.newNode,
		"POST /workflows/import": h.importWorkflow,
		"POST /workflows/export": h.exportWorkflow,
	}
	return h
}

// Handle dispatches an API Gateway HTTP API event on method and path.
func (h *Handler) Handle(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	method := strings.ToUpper(req.RequestContext.HTTP.Method)
	path := req.RawPath
	if path == "" {
		path = req.RequestContext.HTTP.Path
	}
	path = "/" + strings.Trim(path, "/")

	rt, ok := h.routes[method+" "+path]
	if !ok {
		if h.knownPath(path) {
			return jsonResp(http.StatusMethodNotAllowed, workflowdto.ErrorBody("method not allowed", nil)), nil
		}
		return jsonResp(http.StatusNotFound, workflowdto.ErrorBody("not found", nil)), nil
	}

	body, err := readBody(req)
	if err != nil {
		return jsonResp(http.StatusBadRequest, workflowdto.ErrorBody("invalid body", err)), nil
	}
	return rt(ctx, req, body), nil
}

func (h *Handler) knownPath(path string) bool {
	for key := range h.routes {
		if strings.HasSuffix(key, " "+path) {
			return true
		}
	}
	return false
}

func (h *Handler) health(context.Context, events.APIGatewayV2HTTPRequest, []byte) events.APIGatewayV2HTTPResponse {
	return jsonResp(http.StatusOK, map[string]any{"ok": true, "service": "hr-workflow-sandbox"})
}

func (h *Handler) automations(ctx context.Context, _ events.APIGatewayV2HTTPRequest, _ []byte) events.APIGatewayV2HTTPResponse {
	actions, err := h.svc.Automations(ctx)
	if err != nil {
		return h.fail("automations failed", err)
	}
	return jsonResp(http.StatusOK, actions)
}

func (h *Handler) templates(ctx context.Context, _ events.APIGatewayV2HTTPRequest, _ []byte) events.APIGatewayV2HTTPResponse {
	return jsonResp(http.StatusOK, h.svc.Templates(ctx))
}

func (h *Handler) validate(ctx context.Context, _ events.APIGatewayV2HTTPRequest, body []byte) events.APIGatewayV2HTTPResponse {
	snap, err := workflowdto.DecodeSnapshot(body)
	if err != nil {
		return jsonResp(http.StatusBadRequest, workflowdto.ErrorBody("invalid json", err))
	}
	issues, err := h.svc.Validate(ctx, snap)
	if err != nil {
		return h.fail("validate failed", err)
	}
	return jsonResp(http.StatusOK, workflowdto.NewValidateResponse(issues))
}

func (h *Handler) simulate(ctx context.Context, _ events.APIGatewayV2HTTPRequest, body []byte) events.APIGatewayV2HTTPResponse {
	snap, err := workflowdto.DecodeSnapshot(body)
	if err != nil {
		return jsonResp(http.StatusBadRequest, workflowdto.ErrorBody("invalid json", err))
	}
	res, err := h.svc.Simulate(ctx, snap)
	if err != nil {
		return h.fail("simulate failed", err)
	}
	return jsonResp(http.StatusOK, res)
}

func (h *Handler) newNode(ctx context.Context, _ events.APIGatewayV2HTTPRequest, body []byte) events.APIGatewayV2HTTPResponse {
	in, err := workflowdto.DecodeNewNode(body)
	if err != nil {
		return jsonResp(http.StatusBadRequest, workflowdto.ErrorBody("invalid json", err))
	}
	node, err := h.svc.NewNode(ctx, in.Type, in.Position)
	if err != nil {
		return h.fail("create node failed", err)
	}
	return jsonResp(http.StatusCreated, node)
}

func (h *Handler) importWorkflow(ctx context.Context, req events.APIGatewayV2HTTPRequest, body []byte) events.APIGatewayV2HTTPResponse {
	format, ok := workflowdto.Format(req.QueryStringParameters["format"])
	if !ok {
		return jsonResp(http.StatusBadRequest, workflowdto.ErrorBody("unsupported format", nil))
	}

	var (
		doc any
		err error
	)
	if format == workflowdto.FormatDOT {
		doc, err = h.svc.ImportDOT(ctx, string(body))
	} else {
		doc, err = h.svc.Import(ctx, body)
	}
	if err != nil {
		return h.fail("import failed", err)
	}
	return jsonResp(http.StatusOK, doc)
}

func (h *Handler) exportWorkflow(ctx context.Context, req events.APIGatewayV2HTTPRequest, body []byte) events.APIGatewayV2HTTPResponse {
	format, ok := workflowdto.Format(req.QueryStringParameters["format"])
	if !ok {
		return jsonResp(http.StatusBadRequest, workflowdto.ErrorBody("unsupported format", nil))
	}
	doc, err := workflowdto.DecodeWorkflow(body)
	if err != nil {
		return jsonResp(http.StatusBadRequest, workflowdto.ErrorBody("invalid json", err))
	}

	if format == workflowdto.FormatDOT {
		out, err := h.svc.ExportDOT(ctx, doc)
		if err != nil {
			return h.fail("export failed", err)
		}
		return rawResp(http.StatusOK, workflowdto.ContentTypeDOT, out)
	}

	out, err := h.svc.Export(ctx, doc)
	if err != nil {
		return h.fail("export failed", err)
	}
	return rawResp(http.StatusOK, workflowdto.ContentTypeJSON, string(out))
}

func (h *Handler) fail(msg string, err error) events.APIGatewayV2HTTPResponse {
	status := workflowdto.StatusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(msg, "error", err)
	}
	return jsonResp(status, workflowdto.ErrorBody(msg, err))
}

func readBody(req events.APIGatewayV2HTTPRequest) ([]byte, error) {
	if req.IsBase64Encoded {
		return base64.StdEncoding.DecodeString(req.Body)
	}
	return []byte(req.Body), nil
}

func jsonResp(status int, body any) events.APIGatewayV2HTTPResponse {
	b, err := xjson.Marshal(body)
	if err != nil {
		return rawResp(http.StatusInternalServerError, workflowdto.ContentTypeJSON, `{"error":"failed to encode response"}`)
	}
	return rawResp(status, workflowdto.ContentTypeJSON, string(b))
}

func rawResp(status int, contentType, body string) events.APIGatewayV2HTTPResponse {
	return events.APIGatewayV2HTTPResponse{
		StatusCode: status,
		Headers:    map[string]string{"content-type": contentType},
		Body:       body,
	}
}
