// Package metrics reduces a snapshot of business records into the summary
// injected into every assistant prompt.
package metrics

import (
	"sort"
	"time"

	"github.com/padraigk/florin/internal/models"
)

const (
	// LowStockThreshold flags products with fewer units on hand.
	LowStockThreshold = 10

	// TrendWindow is the span of the "recent" window for expenses and the
	// sales trend comparison.
	TrendWindow = 30 * 24 * time.Hour

	// TopProductLimit caps how many best sellers the summary names.
	TopProductLimit = 3
)

// Trend describes the direction of order volume between the two most recent
// 30-day windows.
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

// Summary is derived fresh on every assistant request and never persisted.
type Summary struct {
	TotalRevenue       float64  `json:"total_revenue"`
	OutstandingCount   int      `json:"outstanding_count"`
	InventoryItemCount int      `json:"inventory_item_count"`
	ActiveLeadCount    int      `json:"active_lead_count"`
	LowStockNames      []string `json:"low_stock_names"`
	RecentExpenseTotal float64  `json:"recent_expense_total"`
	TopProductNames    []string `json:"top_product_names"`
	SalesTrend         Trend    `json:"sales_trend"`
}

// Aggregate reduces the snapshot into a Summary. It is a pure function of
// its inputs: no I/O, no clock access (now is passed in), deterministic for
// a fixed snapshot. Empty collections yield zero values, never an error.
func Aggregate(snap *models.Snapshot, now time.Time) Summary {
	var s Summary

	for _, inv := range snap.Invoices {
		switch inv.Status {
		case models.InvoiceStatusPaid:
			s.TotalRevenue += inv.Amount
		case models.InvoiceStatusSent, models.InvoiceStatusOverdue:
			s.OutstandingCount++
		}
	}

	windowStart := now.Add(-TrendWindow)
	for _, exp := range snap.Expenses {
		// Future-dated expenses count as long as they fall in the window.
		if !exp.Date.Before(windowStart) {
			s.RecentExpenseTotal += exp.Amount
		}
	}

	s.InventoryItemCount = len(snap.Products)
	s.LowStockNames = []string{}
	for _, p := range snap.Products {
		if p.Stock < LowStockThreshold {
			s.LowStockNames = append(s.LowStockNames, p.Name)
		}
	}

	for _, lead := range snap.Leads {
		switch lead.Status {
		case models.LeadStatusNew, models.LeadStatusQualified,
			models.LeadStatusProposal, models.LeadStatusNegotiation:
			s.ActiveLeadCount++
		}
	}

	s.TopProductNames = topProducts(snap.Orders)
	s.SalesTrend = salesTrend(snap.Orders, now)
	return s
}

// topProducts ranks product names by total units sold across all order
// items, descending. Ties keep the product encountered first in scan order.
func topProducts(orders []models.Order) []string {
	totals := map[string]int{}
	names := []string{}
	for _, o := range orders {
		for _, item := range o.Items {
			if _, seen := totals[item.ProductName]; !seen {
				names = append(names, item.ProductName)
			}
			totals[item.ProductName] += item.Quantity
		}
	}

	sort.SliceStable(names, func(i, j int) bool {
		return totals[names[i]] > totals[names[j]]
	})

	if len(names) > TopProductLimit {
		names = names[:TopProductLimit]
	}
	return names
}

// salesTrend compares order counts in [now-30d, now) against the preceding
// 30-day window.
func salesTrend(orders []models.Order, now time.Time) Trend {
	recentStart := now.Add(-TrendWindow)
	previousStart := now.Add(-2 * TrendWindow)

	var recent, previous int
	for _, o := range orders {
		d := o.OrderDate
		switch {
		case !d.Before(recentStart) && d.Before(now):
			recent++
		case !d.Before(previousStart) && d.Before(recentStart):
			previous++
		}
	}

	switch {
	case recent > previous:
		return TrendIncreasing
	case recent < previous:
		return TrendDecreasing
	default:
		return TrendStable
	}
}
