package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/growcoach/jobboard/internal/auth"
	"github.com/growcoach/jobboard/pkg/models"
)

type AuthHandler struct {
	authenticator *auth.Authenticator
	issuer        *auth.Issuer
	registry      *auth.Registry
}

// NewAuthHandler creates a new AuthHandler with required dependencies.
func NewAuthHandler(authenticator *auth.Authenticator, issuer *auth.Issuer, registry *auth.Registry) *AuthHandler {
	return &AuthHandler{authenticator: authenticator, issuer: issuer, registry: registry}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, "Email and password are required", http.StatusBadRequest)
		return
	}

	session, err := h.authenticator.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		var notApproved *auth.NotApprovedError
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			writeError(w, "Invalid credentials", http.StatusUnauthorized)
		case errors.As(err, &notApproved):
			// status is intentionally disclosed here: the caller already
			// proved password knowledge
			writeJSON(w, map[string]any{
				"success":        false,
				"error":          "Your candidate account is not yet approved",
				"account_status": notApproved.Status,
			}, http.StatusForbidden)
		default:
			logger.Error("login failed", "err", err)
			writeError(w, "Database error", http.StatusInternalServerError)
		}
		return
	}

	token, err := h.issuer.Issue(session.UserID, session.UserType)
	if err != nil {
		logger.Error("sign token", "err", err)
		writeError(w, "Error signing token", http.StatusInternalServerError)
		return
	}

	resp := map[string]any{
		"success":   true,
		"message":   "Login successful",
		"token":     token,
		"user_id":   session.UserID,
		"user_type": session.UserType,
		"email":     session.Email,
	}
	switch session.UserType {
	case models.UserTypeCandidate:
		resp["first_name"] = session.FirstName
		resp["last_name"] = session.LastName
	case models.UserTypeCompany:
		resp["company_name"] = session.Name
	}

	writeJSON(w, resp, http.StatusOK)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims := requestClaims(r)
	if claims == nil {
		writeError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	if err := h.registry.Revoke(r.Context(), claims); err != nil {
		if errors.Is(err, auth.ErrMalformedToken) {
			writeError(w, "Invalid token structure", http.StatusBadRequest)
			return
		}

		// the token was NOT revoked; report the logout as failed
		logger.Error("revoke token", "err", err)
		writeError(w, "Failed to process logout", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{"success": true, "message": "Logout successful"}, http.StatusOK)
}

func (h *AuthHandler) CheckAuth(w http.ResponseWriter, r *http.Request) {
	if _, ok := requestUserID(r); !ok {
		writeJSON(w, map[string]any{"authenticated": false}, http.StatusOK)
		return
	}

	userType, _ := r.Context().Value(CtxUserType).(string)
	if userType == "" {
		userType = "unknown"
	}

	writeJSON(w, map[string]any{"authenticated": true, "user_type": userType}, http.StatusOK)
}
