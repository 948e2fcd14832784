package orghandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"perfhub/internal/domain/auth"
	"perfhub/internal/domain/org"
	"perfhub/internal/transport/http/api"
	"perfhub/internal/transport/http/middleware"
)

// Handler serves the read-only org directory used to pick dashboard scopes.
type Handler struct {
	Store *org.Store
}

func NewHandler(store *org.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/org", func(r chi.Router) {
		r.Use(middleware.RequireRoles(auth.RoleAdmin, auth.RoleHR, auth.RoleManager))
		r.Get("/departments", h.handleDepartments)
		r.Get("/teams", h.handleTeams)
	})
}

func (h *Handler) handleDepartments(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	departments, err := h.Store.ListDepartments(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "org_list_failed", "failed to list departments", requestID)
		return
	}
	api.Success(w, departments, requestID)
}

func (h *Handler) handleTeams(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	teams, err := h.Store.ListTeams(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "org_list_failed", "failed to list teams", requestID)
		return
	}
	api.Success(w, teams, requestID)
}
