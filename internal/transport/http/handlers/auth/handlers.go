package authhandler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"perfhub/internal/domain/auth"
	"perfhub/internal/domain/org"
	"perfhub/internal/transport/http/api"
	"perfhub/internal/transport/http/middleware"
)

type Handler struct {
	Users     *org.Store
	JWTSecret string
	TokenTTL  time.Duration
}

func NewHandler(users *org.Store, secret string, ttl time.Duration) *Handler {
	return &Handler{Users: users, JWTSecret: secret, TokenTTL: ttl}
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request body", requestID)
		return
	}
	payload.Email = strings.TrimSpace(strings.ToLower(payload.Email))
	if payload.Email == "" || payload.Password == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "email and password are required", requestID)
		return
	}

	user, err := h.Users.FindUserByEmail(r.Context(), payload.Email)
	if err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password", requestID)
		return
	}
	if err := auth.CheckPassword(user.PasswordHash, payload.Password); err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password", requestID)
		return
	}

	token, err := auth.GenerateToken(h.JWTSecret, auth.Claims{
		UserID:       user.ID,
		Role:         user.Role,
		TeamID:       user.TeamID,
		DepartmentID: user.DepartmentID,
	}, h.TokenTTL)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "token_error", "failed to issue token", requestID)
		return
	}

	api.Success(w, map[string]any{
		"token": token,
		"user": map[string]any{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
			"role":  user.Role,
		},
	}, requestID)
}
