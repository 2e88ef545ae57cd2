package models

import "time"

// Invoice statuses. Only "paid" invoices count towards revenue; "sent" and
// "overdue" are outstanding.
const (
	InvoiceStatusDraft   = "draft"
	InvoiceStatusSent    = "sent"
	InvoiceStatusPaid    = "paid"
	InvoiceStatusOverdue = "overdue"
)

type Invoice struct {
	ID       int64     `json:"id"`
	OwnerID  int64     `json:"owner_id"`
	Client   string    `json:"client"`
	Amount   float64   `json:"amount"`
	Status   string    `json:"status"`
	IssuedAt time.Time `json:"issued_at"`
}

type Expense struct {
	ID       int64     `json:"id"`
	OwnerID  int64     `json:"owner_id"`
	Category string    `json:"category"`
	Amount   float64   `json:"amount"`
	Date     time.Time `json:"date"`
}

// Lead statuses considered "active" by the metrics aggregator.
const (
	LeadStatusNew         = "new"
	LeadStatusQualified   = "qualified"
	LeadStatusProposal    = "proposal"
	LeadStatusNegotiation = "negotiation"
	LeadStatusWon         = "won"
	LeadStatusLost        = "lost"
)

type Lead struct {
	ID      int64   `json:"id"`
	OwnerID int64   `json:"owner_id"`
	Name    string  `json:"name"`
	Company string  `json:"company"`
	Status  string  `json:"status"`
	Value   float64 `json:"value"`
}

type Product struct {
	ID      int64   `json:"id"`
	OwnerID int64   `json:"owner_id"`
	Name    string  `json:"name"`
	SKU     string  `json:"sku"`
	Price   float64 `json:"price"`
	Stock   int     `json:"stock"`
}

type OrderItem struct {
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

type Order struct {
	ID        int64       `json:"id"`
	OwnerID   int64       `json:"owner_id"`
	Customer  string      `json:"customer"`
	Items     []OrderItem `json:"items"`
	Total     float64     `json:"total"`
	OrderDate time.Time   `json:"order_date"`
}

// Snapshot is a read-only view of one owner's business records, taken at a
// single point in time and handed to the metrics aggregator.
type Snapshot struct {
	Invoices []Invoice
	Expenses []Expense
	Leads    []Lead
	Products []Product
	Orders   []Order
}

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
