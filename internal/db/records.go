package db

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/padraigk/florin/internal/models"
)

// Business record persistence. Each collection gets create + list only; the
// assistant reads them as a snapshot, full record management lives elsewhere.

func (db *Database) CreateInvoice(ctx context.Context, inv *models.Invoice) error {
	res, err := db.db.ExecContext(ctx, `
        INSERT INTO invoices (owner_id, client, amount, status, issued_at)
        VALUES (?, ?, ?, ?, ?)`,
		inv.OwnerID, inv.Client, inv.Amount, inv.Status, inv.IssuedAt)
	if err != nil {
		return errors.Wrap(err, "insert invoice")
	}
	inv.ID, err = res.LastInsertId()
	return errors.Wrap(err, "last insert id")
}

func (db *Database) ListInvoices(ctx context.Context, ownerID int64) ([]models.Invoice, error) {
	rows, err := db.db.QueryContext(ctx, `
        SELECT id, owner_id, client, amount, status, issued_at
        FROM invoices WHERE owner_id = ? ORDER BY id`, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "query invoices")
	}
	defer rows.Close()

	invoices := make([]models.Invoice, 0)
	for rows.Next() {
		var inv models.Invoice
		if err := rows.Scan(&inv.ID, &inv.OwnerID, &inv.Client, &inv.Amount, &inv.Status, &inv.IssuedAt); err != nil {
			return nil, errors.Wrap(err, "scan invoice")
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

func (db *Database) CreateExpense(ctx context.Context, exp *models.Expense) error {
	res, err := db.db.ExecContext(ctx, `
        INSERT INTO expenses (owner_id, category, amount, date)
        VALUES (?, ?, ?, ?)`,
		exp.OwnerID, exp.Category, exp.Amount, exp.Date)
	if err != nil {
		return errors.Wrap(err, "insert expense")
	}
	exp.ID, err = res.LastInsertId()
	return errors.Wrap(err, "last insert id")
}

func (db *Database) ListExpenses(ctx context.Context, ownerID int64) ([]models.Expense, error) {
	rows, err := db.db.QueryContext(ctx, `
        SELECT id, owner_id, category, amount, date
        FROM expenses WHERE owner_id = ? ORDER BY id`, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "query expenses")
	}
	defer rows.Close()

	expenses := make([]models.Expense, 0)
	for rows.Next() {
		var exp models.Expense
		if err := rows.Scan(&exp.ID, &exp.OwnerID, &exp.Category, &exp.Amount, &exp.Date); err != nil {
			return nil, errors.Wrap(err, "scan expense")
		}
		expenses = append(expenses, exp)
	}
	return expenses, rows.Err()
}

func (db *Database) CreateLead(ctx context.Context, lead *models.Lead) error {
	res, err := db.db.ExecContext(ctx, `
        INSERT INTO leads (owner_id, name, company, status, value)
        VALUES (?, ?, ?, ?, ?)`,
		lead.OwnerID, lead.Name, lead.Company, lead.Status, lead.Value)
	if err != nil {
		return errors.Wrap(err, "insert lead")
	}
	lead.ID, err = res.LastInsertId()
	return errors.Wrap(err, "last insert id")
}

func (db *Database) ListLeads(ctx context.Context, ownerID int64) ([]models.Lead, error) {
	rows, err := db.db.QueryContext(ctx, `
        SELECT id, owner_id, name, company, status, value
        FROM leads WHERE owner_id = ? ORDER BY id`, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "query leads")
	}
	defer rows.Close()

	leads := make([]models.Lead, 0)
	for rows.Next() {
		var lead models.Lead
		if err := rows.Scan(&lead.ID, &lead.OwnerID, &lead.Name, &lead.Company, &lead.Status, &lead.Value); err != nil {
			return nil, errors.Wrap(err, "scan lead")
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

func (db *Database) CreateProduct(ctx context.Context, p *models.Product) error {
	res, err := db.db.ExecContext(ctx, `
        INSERT INTO products (owner_id, name, sku, price, stock)
        VALUES (?, ?, ?, ?, ?)`,
		p.OwnerID, p.Name, p.SKU, p.Price, p.Stock)
	if err != nil {
		return errors.Wrap(err, "insert product")
	}
	p.ID, err = res.LastInsertId()
	return errors.Wrap(err, "last insert id")
}

func (db *Database) ListProducts(ctx context.Context, ownerID int64) ([]models.Product, error) {
	rows, err := db.db.QueryContext(ctx, `
        SELECT id, owner_id, name, sku, price, stock
        FROM products WHERE owner_id = ? ORDER BY id`, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "query products")
	}
	defer rows.Close()

	products := make([]models.Product, 0)
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Name, &p.SKU, &p.Price, &p.Stock); err != nil {
			return nil, errors.Wrap(err, "scan product")
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (db *Database) CreateOrder(ctx context.Context, o *models.Order) error {
	if o.Items == nil {
		o.Items = []models.OrderItem{}
	}
	raw, err := json.Marshal(o.Items)
	if err != nil {
		return errors.Wrap(err, "marshal order items")
	}
	res, err := db.db.ExecContext(ctx, `
        INSERT INTO orders (owner_id, customer, items, total, order_date)
        VALUES (?, ?, ?, ?, ?)`,
		o.OwnerID, o.Customer, string(raw), o.Total, o.OrderDate)
	if err != nil {
		return errors.Wrap(err, "insert order")
	}
	o.ID, err = res.LastInsertId()
	return errors.Wrap(err, "last insert id")
}

func (db *Database) ListOrders(ctx context.Context, ownerID int64) ([]models.Order, error) {
	rows, err := db.db.QueryContext(ctx, `
        SELECT id, owner_id, customer, items, total, order_date
        FROM orders WHERE owner_id = ? ORDER BY id`, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "query orders")
	}
	defer rows.Close()

	orders := make([]models.Order, 0)
	for rows.Next() {
		var o models.Order
		var raw string
		if err := rows.Scan(&o.ID, &o.OwnerID, &o.Customer, &raw, &o.Total, &o.OrderDate); err != nil {
			return nil, errors.Wrap(err, "scan order")
		}
		if err := json.Unmarshal([]byte(raw), &o.Items); err != nil {
			return nil, errors.Wrap(err, "unmarshal order items")
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// Snapshot loads all of the owner's business records in one read-only view
// for the metrics aggregator.
func (db *Database) Snapshot(ctx context.Context, ownerID int64) (*models.Snapshot, error) {
	if ownerID <= 0 {
		return nil, ErrNotAuthenticated
	}

	snap := &models.Snapshot{}
	var err error
	if snap.Invoices, err = db.ListInvoices(ctx, ownerID); err != nil {
		return nil, err
	}
	if snap.Expenses, err = db.ListExpenses(ctx, ownerID); err != nil {
		return nil, err
	}
	if snap.Leads, err = db.ListLeads(ctx, ownerID); err != nil {
		return nil, err
	}
	if snap.Products, err = db.ListProducts(ctx, ownerID); err != nil {
		return nil, err
	}
	if snap.Orders, err = db.ListOrders(ctx, ownerID); err != nil {
		return nil, err
	}
	return snap, nil
}
