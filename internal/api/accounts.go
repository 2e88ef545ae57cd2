package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/padraigk/florin/internal/auth"
)

type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

// Register creates a new account and returns a bearer token.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req, ok := h.decodeCredentials(w, r)
	if !ok {
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.writeError(w, r, "failed to hash password", err)
		return
	}

	user, err := h.db.CreateUser(r.Context(), req.Email, hash)
	if err != nil {
		h.writeError(w, r, "failed to create user", err)
		return
	}

	token, err := h.auth.IssueToken(user.ID)
	if err != nil {
		h.writeError(w, r, "failed to issue token", err)
		return
	}
	h.writeJSON(w, TokenResponse{Token: token})
}

// Login checks credentials and returns a bearer token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req, ok := h.decodeCredentials(w, r)
	if !ok {
		return
	}

	user, err := h.db.GetUserByEmail(r.Context(), req.Email)
	if err != nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := h.auth.IssueToken(user.ID)
	if err != nil {
		h.writeError(w, r, "failed to issue token", err)
		return
	}
	h.writeJSON(w, TokenResponse{Token: token})
}

func (h *Handler) decodeCredentials(w http.ResponseWriter, r *http.Request) (CredentialsRequest, bool) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return req, false
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		http.Error(w, "Email and password are required", http.StatusBadRequest)
		return req, false
	}
	return req, true
}
