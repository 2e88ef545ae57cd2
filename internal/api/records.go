package api

import (
	"encoding/json"
	"net/http"

	"github.com/padraigk/florin/internal/models"
)

// Business record endpoints. Each collection supports GET (list) and POST
// (create); the richer record management screens live outside this service.

func (h *Handler) Invoices(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		invoices, err := h.db.ListInvoices(r.Context(), ownerID(r))
		if err != nil {
			h.writeError(w, r, "failed to list invoices", err)
			return
		}
		h.writeJSON(w, invoices)
	case http.MethodPost:
		var inv models.Invoice
		if err := json.NewDecoder(r.Body).Decode(&inv); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		inv.OwnerID = ownerID(r)
		if err := h.db.CreateInvoice(r.Context(), &inv); err != nil {
			h.writeError(w, r, "failed to create invoice", err)
			return
		}
		h.writeJSON(w, inv)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) Expenses(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		expenses, err := h.db.ListExpenses(r.Context(), ownerID(r))
		if err != nil {
			h.writeError(w, r, "failed to list expenses", err)
			return
		}
		h.writeJSON(w, expenses)
	case http.MethodPost:
		var exp models.Expense
		if err := json.NewDecoder(r.Body).Decode(&exp); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		exp.OwnerID = ownerID(r)
		if err := h.db.CreateExpense(r.Context(), &exp); err != nil {
			h.writeError(w, r, "failed to create expense", err)
			return
		}
		h.writeJSON(w, exp)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) Leads(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		leads, err := h.db.ListLeads(r.Context(), ownerID(r))
		if err != nil {
			h.writeError(w, r, "failed to list leads", err)
			return
		}
		h.writeJSON(w, leads)
	case http.MethodPost:
		var lead models.Lead
		if err := json.NewDecoder(r.Body).Decode(&lead); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		lead.OwnerID = ownerID(r)
		if err := h.db.CreateLead(r.Context(), &lead); err != nil {
			h.writeError(w, r, "failed to create lead", err)
			return
		}
		h.writeJSON(w, lead)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) Products(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		products, err := h.db.ListProducts(r.Context(), ownerID(r))
		if err != nil {
			h.writeError(w, r, "failed to list products", err)
			return
		}
		h.writeJSON(w, products)
	case http.MethodPost:
		var p models.Product
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		p.OwnerID = ownerID(r)
		if err := h.db.CreateProduct(r.Context(), &p); err != nil {
			h.writeError(w, r, "failed to create product", err)
			return
		}
		h.writeJSON(w, p)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) Orders(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		orders, err := h.db.ListOrders(r.Context(), ownerID(r))
		if err != nil {
			h.writeError(w, r, "failed to list orders", err)
			return
		}
		h.writeJSON(w, orders)
	case http.MethodPost:
		var o models.Order
		if err := json.NewDecoder(r.Body).Decode(&o); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		o.OwnerID = ownerID(r)
		if err := h.db.CreateOrder(r.Context(), &o); err != nil {
			h.writeError(w, r, "failed to create order", err)
			return
		}
		h.writeJSON(w, o)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
