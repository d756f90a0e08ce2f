package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/nimaarv/chatspark/internal/middleware"
	"github.com/nimaarv/chatspark/internal/services/user_services"
)

type AuthHandler struct {
	verification *user_services.VerificationService
	auth         *user_services.AuthService
	registry     *ManagerRegistry
}

func NewAuthHandler(verification *user_services.VerificationService, auth *user_services.AuthService, registry *ManagerRegistry) *AuthHandler {
	return &AuthHandler{
		verification: verification,
		auth:         auth,
		registry:     registry,
	}
}

// RequestOTP sends a verification code to the submitted phone number,
// creating the account on first contact.
func (h *AuthHandler) RequestOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Phone       string `json:"phone"`
		CountryCode string `json:"countryCode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Phone == "" {
		writeError(w, "Phone number is required", http.StatusBadRequest)
		return
	}

	if err := h.verification.RequestCode(r.Context(), req.Phone, req.CountryCode); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "code sent"})
}

// VerifyOTP checks the submitted code and, on success, establishes the
// session cookie.
func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Phone string `json:"phone"`
		Code  string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Phone == "" || req.Code == "" {
		writeError(w, "Phone number and code are required", http.StatusBadRequest)
		return
	}

	account, err := h.verification.VerifyCode(r.Context(), req.Phone, req.Code)
	if err != nil {
		writeError(w, err.Error(), http.StatusUnauthorized)
		return
	}

	token, err := h.auth.IssueToken(account)
	if err != nil {
		writeError(w, "Could not establish session", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(24 * time.Hour),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, account)
}

// Logout clears the session cookie and releases the user's conversation
// manager, cancelling any pending simulated reply.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if userID, ok := middleware.UserID(r.Context()); ok {
		h.registry.Release(userID)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}
