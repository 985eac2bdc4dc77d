package httptransport

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/awmpietro/hr-workflow-sandbox/internal/app"
	"github.com/awmpietro/hr-workflow-sandbox/internal/transport/workflowdto"
	"github.com/awmpietro/hr-workflow-sandbox/internal/xjson"
)

const maxBodyBytes = 4 << 20

type Handler struct {
	svc    app.WorkflowService
	logger *slog.Logger
}

func NewHandler(svc app.WorkflowService, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{svc: svc, logger: logger.With("component", "http")}
}

// Routes mounts every endpoint on a chi router.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(h.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.Health)
	r.Get("/automations", h.Automations)
	r.Get("/templates", h.Templates)
	r.Post("/validate", h.Validate)
	r.Post("/simulate", h.Simulate)
	r.Post("/nodes", h.NewNode)
	r.Post("/workflows/import", h.Import)
	r.Post("/workflows/export", h.Export)
	return r
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "service": "hr-workflow-sandbox"})
}

func (h *Handler) Automations(w http.ResponseWriter, r *http.Request) {
	actions, err := h.svc.Automations(r.Context())
	if err != nil {
		h.fail(w, "automations failed", err)
		return
	}
	writeJSON(w, http.StatusOK, actions)
}

func (h *Handler) Templates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Templates(r.Context()))
}

func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	snap, err := workflowdto.DecodeSnapshot(body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, workflowdto.ErrorBody("invalid json", err))
		return
	}

	issues, err := h.svc.Validate(r.Context(), snap)
	if err != nil {
		h.fail(w, "validate failed", err)
		return
	}
	writeJSON(w, http.StatusOK, workflowdto.NewValidateResponse(issues))
}

func (h *Handler) Simulate(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	snap, err := workflowdto.DecodeSnapshot(body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, workflowdto.ErrorBody("invalid json", err))
		return
	}

	res, err := h.svc.Simulate(r.Context(), snap)
	if err != nil {
		h.fail(w, "simulate failed", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) NewNode(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	in, err := workflowdto.DecodeNewNode(body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, workflowdto.ErrorBody("invalid json", err))
		return
	}

	node, err := h.svc.NewNode(r.Context(), in.Type, in.Position)
	if err != nil {
		h.fail(w, "create node failed", err)
		return
	}
	writeJSON(w, http.StatusCreated, node)
}

// Import accepts a JSON document, or DOT text with ?format=dot.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	format, ok := workflowdto.Format(r.URL.Query().Get("format"))
	if !ok {
		writeJSON(w, http.StatusBadRequest, workflowdto.ErrorBody("unsupported format", nil))
		return
	}
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	var (
		doc any
		err error
	)
	if format == workflowdto.FormatDOT {
		doc, err = h.svc.ImportDOT(r.Context(), string(body))
	} else {
		doc, err = h.svc.Import(r.Context(), body)
	}
	if err != nil {
		h.fail(w, "import failed", err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// Export renders the posted document as JSON, or as DOT with ?format=dot.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	format, ok := workflowdto.Format(r.URL.Query().Get("format"))
	if !ok {
		writeJSON(w, http.StatusBadRequest, workflowdto.ErrorBody("unsupported format", nil))
		return
	}
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	doc, err := workflowdto.DecodeWorkflow(body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, workflowdto.ErrorBody("invalid json", err))
		return
	}

	if format == workflowdto.FormatDOT {
		out, err := h.svc.ExportDOT(r.Context(), doc)
		if err != nil {
			h.fail(w, "export failed", err)
			return
		}
		writeRaw(w, http.StatusOK, workflowdto.ContentTypeDOT, []byte(out))
		return
	}

	out, err := h.svc.Export(r.Context(), doc)
	if err != nil {
		h.fail(w, "export failed", err)
		return
	}
	writeRaw(w, http.StatusOK, workflowdto.ContentTypeJSON, out)
}

func (h *Handler) fail(w http.ResponseWriter, msg string, err error) {
	status := workflowdto.StatusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(msg, "error", err)
	}
	writeJSON(w, status, workflowdto.ErrorBody(msg, err))
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		h.logger.Info("request processed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, workflowdto.ErrorBody("invalid body", err))
		return nil, false
	}
	return body, true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	b, err := xjson.Marshal(body)
	if err != nil {
		writeRaw(w, http.StatusInternalServerError, workflowdto.ContentTypeJSON, []byte(`{"error":"failed to encode response"}`))
		return
	}
	writeRaw(w, status, workflowdto.ContentTypeJSON, b)
}

func writeRaw(w http.ResponseWriter, status int, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
