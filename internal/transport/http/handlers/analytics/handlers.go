package analyticshandler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"perfhub/internal/domain/analytics"
	"perfhub/internal/domain/audit"
	"perfhub/internal/domain/auth"
	"perfhub/internal/platform/metrics"
	"perfhub/internal/transport/http/api"
	"perfhub/internal/transport/http/middleware"
	"perfhub/internal/transport/http/shared"
)

// TeamDirectory resolves which teams a manager runs before scope resolution.
type TeamDirectory interface {
	ManagedTeamIDs(ctx context.Context, userID string) ([]string, error)
}

type Handler struct {
	Service *analytics.Service
	Teams   TeamDirectory
	Audit   *audit.Service
	Metrics *metrics.Collector
	OrgName string
}

func NewHandler(service *analytics.Service, teams TeamDirectory, auditSvc *audit.Service, collector *metrics.Collector, orgName string) *Handler {
	return &Handler{Service: service, Teams: teams, Audit: auditSvc, Metrics: collector, OrgName: orgName}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/analytics", func(r chi.Router) {
		r.Get("/dashboard", h.handleDashboard)
		r.Get("/export", h.handleExport)
		r.Get("/report.pdf", h.handleSummaryReport)
	})
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	caller, ok := h.caller(r)
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}
	req, ok := h.scopeRequest(w, r, requestID)
	if !ok {
		return
	}

	dashboard, err := h.Service.Dashboard(r.Context(), caller, req)
	if err != nil {
		h.failAnalytics(w, err, requestID)
		return
	}

	// Averages are rounded here, at the serialization boundary only.
	dashboard.Teams = analytics.RoundMetrics(dashboard.Teams)
	dashboard.Trends = analytics.RoundTrends(dashboard.Trends)
	api.Success(w, dashboard, requestID)
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	caller, ok := h.caller(r)
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}
	req, ok := h.scopeRequest(w, r, requestID)
	if !ok {
		return
	}

	format := r.URL.Query().Get("format")
	payload, contentType, err := h.Service.ExportMetrics(r.Context(), caller, req, format)
	if err != nil {
		h.failAnalytics(w, err, requestID)
		return
	}

	h.recordExport(r, caller, "analytics.export", map[string]any{"format": format, "scope": req.Kind})

	w.Header().Set("Content-Type", contentType)
	if format == analytics.FormatCSV {
		w.Header().Set("Content-Disposition", `attachment; filename="team-metrics.csv"`)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

func (h *Handler) handleSummaryReport(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	caller, ok := h.caller(r)
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}
	req, ok := h.scopeRequest(w, r, requestID)
	if !ok {
		return
	}

	title := h.OrgName + " Performance Summary"
	payload, err := h.Service.SummaryReport(r.Context(), caller, req, title)
	if err != nil {
		h.failAnalytics(w, err, requestID)
		return
	}

	h.recordExport(r, caller, "analytics.report_pdf", map[string]any{"scope": req.Kind})

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="performance-summary.pdf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

func (h *Handler) caller(r *http.Request) (analytics.Caller, bool) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		return analytics.Caller{}, false
	}

	caller := analytics.Caller{
		UserID:       user.UserID,
		Role:         user.Role,
		TeamID:       user.TeamID,
		DepartmentID: user.DepartmentID,
	}
	if auth.ManagedTeamsOnly(user.Role) && h.Teams != nil {
		ids, err := h.Teams.ManagedTeamIDs(r.Context(), user.UserID)
		if err != nil {
			slog.Warn("managed team lookup failed", "err", err, "userId", user.UserID)
		} else {
			caller.ManagedTeamIDs = ids
		}
	}
	return caller, true
}

func (h *Handler) scopeRequest(w http.ResponseWriter, r *http.Request, requestID string) (analytics.ScopeRequest, bool) {
	query := r.URL.Query()
	req := analytics.ScopeRequest{
		Kind: query.Get("scope"),
		ID:   query.Get("id"),
	}

	from, err := shared.ParseDate(query.Get("from"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "validation_error", "from must be a valid date", requestID)
		return analytics.ScopeRequest{}, false
	}
	to, err := shared.ParseDate(query.Get("to"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "validation_error", "to must be a valid date", requestID)
		return analytics.ScopeRequest{}, false
	}
	req.From = from
	req.To = to
	return req, true
}

func (h *Handler) failAnalytics(w http.ResponseWriter, err error, requestID string) {
	var dataErr *analytics.DataSourceError
	switch {
	case errors.Is(err, analytics.ErrInvalidScope):
		api.Fail(w, http.StatusBadRequest, "validation_error", err.Error(), requestID)
	case errors.Is(err, analytics.ErrUnsupportedFormat):
		api.Fail(w, http.StatusBadRequest, "unsupported_format", err.Error(), requestID)
	case errors.Is(err, analytics.ErrScopeForbidden), errors.Is(err, analytics.ErrExportForbidden):
		api.Fail(w, http.StatusForbidden, "forbidden", err.Error(), requestID)
	case errors.As(err, &dataErr):
		slog.Error("analytics fetch failed", "err", dataErr.Err)
		api.Fail(w, http.StatusBadGateway, "data_source_error", "failed to load analytics data", requestID)
	default:
		slog.Error("analytics request failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", requestID)
	}
}

func (h *Handler) recordExport(r *http.Request, caller analytics.Caller, action string, details map[string]any) {
	if h.Metrics != nil {
		h.Metrics.RecordExport()
	}
	if h.Audit == nil {
		return
	}
	requestID := middleware.GetRequestID(r.Context())
	if err := h.Audit.Record(r.Context(), caller.UserID, action, r.URL.Query().Get("scope"), requestID, r.RemoteAddr, details); err != nil {
		slog.Warn("audit record failed", "err", err, "action", action)
	}
}
