package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"picsync/backend/internal/auth"

	"golang.org/x/crypto/bcrypt"
)

type tokenRequest struct {
	APIKey   string `json:"apiKey" validate:"required"`
	ClientID string `json:"clientId" validate:"omitempty,max=64,alphanumunicode"`
}

// IssueToken exchanges the shared API key for a bearer token.
func (h *Handler) IssueToken(w http.ResponseWriter, r *http.Request) {
	logger := h.loggerForRequest(r)
	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("action", "action", "auth_token", "status", "invalid_json")
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		logger.Warn("action", "action", "auth_token", "status", "invalid_payload")
		writeError(w, http.StatusBadRequest, "apiKey required")
		return
	}
	if h.cfg.APIKeyHash == "" || h.cfg.JWTSecret == "" {
		logger.Warn("action", "action", "auth_token", "status", "disabled")
		writeError(w, http.StatusUnauthorized, "token exchange disabled")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(h.cfg.APIKeyHash), []byte(req.APIKey)); err != nil {
		logger.Warn("action", "action", "auth_token", "status", "invalid_credentials")
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	clientID := strings.TrimSpace(req.ClientID)
	if clientID == "" {
		clientID = "default"
	}
	token, err := auth.SignAccessToken(h.cfg.JWTSecret, clientID, h.now())
	if err != nil {
		logger.Error("action", "action", "auth_token", "status", "token_error", "error", err)
		writeError(w, http.StatusInternalServerError, "token error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"accessToken": token})
}
