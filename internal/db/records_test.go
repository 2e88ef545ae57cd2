package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padraigk/florin/internal/models"
)

func TestSnapshot(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()
	owner := newTestUser(t, database, "snapshot@test.test")
	other := newTestUser(t, database, "other@test.test")

	now := time.Now().UTC()
	require.NoError(t, database.CreateInvoice(ctx, &models.Invoice{
		OwnerID: owner, Client: "Acme", Amount: 120.5, Status: models.InvoiceStatusPaid, IssuedAt: now,
	}))
	require.NoError(t, database.CreateExpense(ctx, &models.Expense{
		OwnerID: owner, Category: "hosting", Amount: 30, Date: now,
	}))
	require.NoError(t, database.CreateLead(ctx, &models.Lead{
		OwnerID: owner, Name: "Jo", Company: "Globex", Status: models.LeadStatusNew, Value: 5000,
	}))
	require.NoError(t, database.CreateProduct(ctx, &models.Product{
		OwnerID: owner, Name: "Widget", SKU: "W-1", Price: 9.99, Stock: 4,
	}))
	require.NoError(t, database.CreateOrder(ctx, &models.Order{
		OwnerID: owner, Customer: "Acme", Total: 19.98, OrderDate: now,
		Items: []models.OrderItem{{ProductName: "Widget", Quantity: 2, Price: 9.99}},
	}))

	// Records of another owner never leak into the snapshot.
	require.NoError(t, database.CreateInvoice(ctx, &models.Invoice{
		OwnerID: other, Client: "Private", Amount: 9999, Status: models.InvoiceStatusPaid, IssuedAt: now,
	}))

	snap, err := database.Snapshot(ctx, owner)
	require.NoError(t, err)

	require.Len(t, snap.Invoices, 1)
	assert.Equal(t, "Acme", snap.Invoices[0].Client)
	require.Len(t, snap.Expenses, 1)
	require.Len(t, snap.Leads, 1)
	require.Len(t, snap.Products, 1)
	require.Len(t, snap.Orders, 1)
	require.Len(t, snap.Orders[0].Items, 1)
	assert.Equal(t, "Widget", snap.Orders[0].Items[0].ProductName)
	assert.Equal(t, 2, snap.Orders[0].Items[0].Quantity)

	_, err = database.Snapshot(ctx, 0)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()

	_, err := database.CreateUser(ctx, "dup@test.test", "hash")
	require.NoError(t, err)
	_, err = database.CreateUser(ctx, "dup@test.test", "hash")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestGetUserByEmail(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()

	created, err := database.CreateUser(ctx, "find@test.test", "hash")
	require.NoError(t, err)

	found, err := database.GetUserByEmail(ctx, "find@test.test")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = database.GetUserByEmail(ctx, "missing@test.test")
	assert.ErrorIs(t, err, ErrNotFound)
}
