package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/padraigk/florin/internal/models"
)

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func daysAgo(n int) time.Time {
	return testNow.Add(-time.Duration(n) * 24 * time.Hour)
}

func TestAggregate_EmptySnapshot(t *testing.T) {
	s := Aggregate(&models.Snapshot{}, testNow)

	assert.Zero(t, s.TotalRevenue)
	assert.Zero(t, s.OutstandingCount)
	assert.Zero(t, s.InventoryItemCount)
	assert.Zero(t, s.ActiveLeadCount)
	assert.Empty(t, s.LowStockNames)
	assert.Zero(t, s.RecentExpenseTotal)
	assert.Empty(t, s.TopProductNames)
	assert.Equal(t, TrendStable, s.SalesTrend)
}

func TestAggregate_Deterministic(t *testing.T) {
	snap := &models.Snapshot{
		Invoices: []models.Invoice{
			{Amount: 100, Status: models.InvoiceStatusPaid},
			{Amount: 50, Status: models.InvoiceStatusSent},
		},
		Products: []models.Product{{Name: "Widget", Stock: 3}},
		Orders: []models.Order{
			{OrderDate: daysAgo(5), Items: []models.OrderItem{{ProductName: "Widget", Quantity: 2}}},
		},
	}

	first := Aggregate(snap, testNow)
	second := Aggregate(snap, testNow)
	assert.Equal(t, first, second)
}

func TestAggregate_Revenue(t *testing.T) {
	snap := &models.Snapshot{
		Invoices: []models.Invoice{
			{Amount: 100.50, Status: models.InvoiceStatusPaid},
			{Amount: 200, Status: models.InvoiceStatusPaid},
			{Amount: 75, Status: models.InvoiceStatusSent},
			{Amount: 40, Status: models.InvoiceStatusOverdue},
			{Amount: 999, Status: models.InvoiceStatusDraft},
		},
	}

	s := Aggregate(snap, testNow)
	assert.InDelta(t, 300.50, s.TotalRevenue, 1e-9)
	assert.Equal(t, 2, s.OutstandingCount)
}

func TestAggregate_TopProducts(t *testing.T) {
	snap := &models.Snapshot{
		Orders: []models.Order{
			{Items: []models.OrderItem{{ProductName: "A", Quantity: 5}}},
			{Items: []models.OrderItem{{ProductName: "B", Quantity: 5}}},
			{Items: []models.OrderItem{{ProductName: "A", Quantity: 1}}},
		},
	}

	s := Aggregate(snap, testNow)
	assert.Equal(t, []string{"A", "B"}, s.TopProductNames)
}

func TestAggregate_TopProducts_TieKeepsFirstSeen(t *testing.T) {
	snap := &models.Snapshot{
		Orders: []models.Order{
			{Items: []models.OrderItem{
				{ProductName: "B", Quantity: 3},
				{ProductName: "A", Quantity: 3},
				{ProductName: "C", Quantity: 3},
				{ProductName: "D", Quantity: 3},
			}},
		},
	}

	s := Aggregate(snap, testNow)
	assert.Equal(t, []string{"B", "A", "C"}, s.TopProductNames)
}

func TestAggregate_LowStock(t *testing.T) {
	snap := &models.Snapshot{
		Products: []models.Product{
			{Name: "Scarce", Stock: 9},
			{Name: "Boundary", Stock: 10},
			{Name: "Plenty", Stock: 100},
		},
	}

	s := Aggregate(snap, testNow)
	assert.Equal(t, []string{"Scarce"}, s.LowStockNames)
	assert.Equal(t, 3, s.InventoryItemCount)
}

func TestAggregate_RecentExpenses(t *testing.T) {
	snap := &models.Snapshot{
		Expenses: []models.Expense{
			{Amount: 10, Date: daysAgo(1)},
			{Amount: 20, Date: daysAgo(29)},
			{Amount: 500, Date: daysAgo(31)},
			// Future-dated expenses still land inside the window.
			{Amount: 5, Date: testNow.Add(24 * time.Hour)},
		},
	}

	s := Aggregate(snap, testNow)
	assert.InDelta(t, 35, s.RecentExpenseTotal, 1e-9)
}

func TestAggregate_ActiveLeads(t *testing.T) {
	snap := &models.Snapshot{
		Leads: []models.Lead{
			{Status: models.LeadStatusNew},
			{Status: models.LeadStatusQualified},
			{Status: models.LeadStatusProposal},
			{Status: models.LeadStatusNegotiation},
			{Status: models.LeadStatusWon},
			{Status: models.LeadStatusLost},
		},
	}

	s := Aggregate(snap, testNow)
	assert.Equal(t, 4, s.ActiveLeadCount)
}

func TestAggregate_SalesTrend(t *testing.T) {
	tests := []struct {
		name     string
		recent   int
		previous int
		want     Trend
	}{
		{"more recent orders", 3, 1, TrendIncreasing},
		{"fewer recent orders", 1, 3, TrendDecreasing},
		{"equal counts", 2, 2, TrendStable},
		{"no orders", 0, 0, TrendStable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var orders []models.Order
			for i := 0; i < tt.recent; i++ {
				orders = append(orders, models.Order{OrderDate: daysAgo(10)})
			}
			for i := 0; i < tt.previous; i++ {
				orders = append(orders, models.Order{OrderDate: daysAgo(45)})
			}

			s := Aggregate(&models.Snapshot{Orders: orders}, testNow)
			assert.Equal(t, tt.want, s.SalesTrend)
		})
	}
}

func TestAggregate_SalesTrendWindowBoundaries(t *testing.T) {
	snap := &models.Snapshot{
		Orders: []models.Order{
			{OrderDate: daysAgo(30)}, // first instant of the previous window's end / recent start
			{OrderDate: daysAgo(60)}, // first instant of the previous window
			{OrderDate: daysAgo(61)}, // outside both windows
			{OrderDate: testNow},     // now itself is excluded from the recent window
		},
	}

	s := Aggregate(snap, testNow)
	// daysAgo(30) falls in [now-30d, now); daysAgo(60) in [now-60d, now-30d).
	assert.Equal(t, TrendStable, s.SalesTrend)
}
