// Package api exposes the assistant and its supporting stores over a JSON
// HTTP API.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/padraigk/florin/internal/assistant"
	"github.com/padraigk/florin/internal/auth"
	"github.com/padraigk/florin/internal/db"
)

type Handler struct {
	db        *db.Database
	assistant *assistant.Service
	auth      *auth.Manager
	logger    *zap.Logger
}

func NewHandler(database *db.Database, svc *assistant.Service, authMgr *auth.Manager, logger *zap.Logger) *Handler {
	return &Handler{
		db:        database,
		assistant: svc,
		auth:      authMgr,
		logger:    logger,
	}
}

// Routes registers all endpoints on the mux.
func (h *Handler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/api/register", h.Register)
	mux.HandleFunc("/api/login", h.Login)

	mux.HandleFunc("/api/chat", h.RequireAuth(h.Chat))
	mux.HandleFunc("/api/conversations", h.RequireAuth(h.Conversations))
	mux.HandleFunc("/api/conversations/update", h.RequireAuth(h.RenameConversation))
	mux.HandleFunc("/api/conversations/delete", h.RequireAuth(h.DeleteConversation))
	mux.HandleFunc("/api/messages", h.RequireAuth(h.Messages))
	mux.HandleFunc("/api/metrics", h.RequireAuth(h.Metrics))

	mux.HandleFunc("/api/invoices", h.RequireAuth(h.Invoices))
	mux.HandleFunc("/api/expenses", h.RequireAuth(h.Expenses))
	mux.HandleFunc("/api/leads", h.RequireAuth(h.Leads))
	mux.HandleFunc("/api/products", h.RequireAuth(h.Products))
	mux.HandleFunc("/api/orders", h.RequireAuth(h.Orders))
}

type ChatRequest struct {
	ConversationID string `json:"conversation_id,omitempty"`
	Content        string `json:"content"`
}

type CreateConversationRequest struct {
	Title string `json:"title"`
}

type UpdateConversationRequest struct {
	Title string `json:"title"`
}

// Chat submits a user message to the assistant. When conversation_id is
// omitted a new thread is created.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	thread, err := h.assistant.Chat(r.Context(), ownerID(r), req.ConversationID, req.Content)
	if err != nil {
		h.writeError(w, r, "chat failed", err)
		return
	}

	h.writeJSON(w, thread)
}

// Conversations lists the caller's threads (GET) or creates one (POST).
func (h *Handler) Conversations(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		threads, err := h.db.ListThreads(r.Context(), ownerID(r))
		if err != nil {
			h.writeError(w, r, "failed to list conversations", err)
			return
		}
		h.writeJSON(w, threads)

	case http.MethodPost:
		var req CreateConversationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		thread, err := h.db.CreateThread(r.Context(), ownerID(r), req.Title, nil)
		if err != nil {
			h.writeError(w, r, "failed to create conversation", err)
			return
		}
		h.writeJSON(w, thread)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) RenameConversation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	threadID := r.URL.Query().Get("conversation_id")
	if threadID == "" {
		http.Error(w, "Invalid conversation ID", http.StatusBadRequest)
		return
	}

	var req UpdateConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	// Ownership check before the rename touches the row.
	if _, err := h.db.GetThread(r.Context(), ownerID(r), threadID); err != nil {
		h.writeError(w, r, "failed to rename conversation", err)
		return
	}
	if err := h.db.RenameThread(r.Context(), threadID, req.Title); err != nil {
		h.writeError(w, r, "failed to rename conversation", err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) DeleteConversation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	threadID := r.URL.Query().Get("conversation_id")
	if threadID == "" {
		http.Error(w, "Invalid conversation ID", http.StatusBadRequest)
		return
	}

	if err := h.db.DeleteThread(r.Context(), ownerID(r), threadID); err != nil {
		h.writeError(w, r, "failed to delete conversation", err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// Messages returns the ordered message list of one thread.
func (h *Handler) Messages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	threadID := r.URL.Query().Get("conversation_id")
	if threadID == "" {
		http.Error(w, "Invalid conversation ID", http.StatusBadRequest)
		return
	}

	thread, err := h.db.GetThread(r.Context(), ownerID(r), threadID)
	if err != nil {
		h.writeError(w, r, "failed to get messages", err)
		return
	}
	h.writeJSON(w, thread.Messages)
}

// Metrics returns the current business metrics summary.
func (h *Handler) Metrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	summary, err := h.assistant.Summary(r.Context(), ownerID(r))
	if err != nil {
		h.writeError(w, r, "failed to compute metrics", err)
		return
	}
	h.writeJSON(w, summary)
}

func (h *Handler) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	switch {
	case errors.Is(err, db.ErrNotFound):
		http.Error(w, "Not found", http.StatusNotFound)
	case errors.Is(err, db.ErrNotAuthenticated):
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
	case errors.Is(err, assistant.ErrEmptyMessage):
		http.Error(w, "Message must not be empty", http.StatusBadRequest)
	case errors.Is(err, db.ErrEmailTaken):
		http.Error(w, "Email already registered", http.StatusBadRequest)
	default:
		h.logger.Error(msg,
			zap.Error(err),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
