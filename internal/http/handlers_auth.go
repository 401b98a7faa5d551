package httpx

import (
	"net/http"

	"github.com/evenbetter/dtwin-cms/internal/domain/model"
	"github.com/evenbetter/dtwin-cms/internal/service"
)

// AuthHandlers provides HTTP handlers for login, the one-time admin
// bootstrap, and account management.
type AuthHandlers struct {
	Svc *service.AuthService
}

// Login handles credential checks and token issuance.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	res, err := h.Svc.Login(r.Context(), &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"token":   res.Token,
		"role":    res.Role,
		"message": "login successful",
	})
}

// SignupAdmin creates the first admin account. Closed with 403 once an
// admin exists.
func (h *AuthHandlers) SignupAdmin(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	res, err := h.Svc.SignupAdmin(r.Context(), &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, map[string]any{
		"token":   res.Token,
		"message": "admin account created",
	})
}

// CheckAdminExists reports whether the bootstrap window is still open.
func (h *AuthHandlers) CheckAdminExists(w http.ResponseWriter, r *http.Request) {
	exists, err := h.Svc.AdminExists(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"exists": exists})
}

// AddUser creates an account with a chosen role. Admin-gated in the router.
func (h *AuthHandlers) AddUser(w http.ResponseWriter, r *http.Request) {
	var req model.CreateUserRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	user, err := h.Svc.AddUser(r.Context(), &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, user)
}

// Users lists every dashboard account. Admin-gated in the router.
func (h *AuthHandlers) Users(w http.ResponseWriter, r *http.Request) {
	users, err := h.Svc.ListUsers(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"users": users})
}

// ResetPassword replaces the password for an existing account.
func (h *AuthHandlers) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req model.ResetPasswordRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	if err := h.Svc.ResetPassword(r.Context(), &req); err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"message": "password updated"})
}
