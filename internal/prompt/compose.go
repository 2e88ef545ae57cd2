// Package prompt renders the assistant prompt template and derives thread
// titles from user messages.
package prompt

import (
	"fmt"
	"strings"

	"github.com/padraigk/florin/internal/metrics"
	"github.com/padraigk/florin/internal/models"
)

// HistoryLimit is how many trailing conversation messages the prompt
// carries, oldest first.
const HistoryLimit = 5

const preamble = `You are an AI business advisor with direct access to the user's live business data. Use the metrics below to give grounded, specific advice.`

const instructions = `Guidelines:
- Reference the real numbers above when they support your answer.
- Be actionable: suggest concrete next steps.
- Be concise.`

// Compose renders the metrics summary, the new user message and the trailing
// conversation history into a single prompt string. Pure string templating;
// the structure is fixed so tests can assert on it.
func Compose(summary metrics.Summary, userMessage string, history []models.Message) string {
	var b strings.Builder

	b.WriteString(preamble)
	b.WriteString("\n\nCurrent business metrics:\n")
	fmt.Fprintf(&b, "- Total revenue (paid invoices): $%.2f\n", summary.TotalRevenue)
	fmt.Fprintf(&b, "- Outstanding invoices: %d\n", summary.OutstandingCount)
	fmt.Fprintf(&b, "- Inventory items: %d\n", summary.InventoryItemCount)
	fmt.Fprintf(&b, "- Active leads: %d\n", summary.ActiveLeadCount)
	fmt.Fprintf(&b, "- Low stock items: %s\n", joinOr(summary.LowStockNames, "None"))
	fmt.Fprintf(&b, "- Expenses (last 30 days): $%.2f\n", summary.RecentExpenseTotal)
	fmt.Fprintf(&b, "- Top selling products: %s\n", joinOr(summary.TopProductNames, "No sales data"))
	fmt.Fprintf(&b, "- Sales trend: %s\n", summary.SalesTrend)

	b.WriteString("\n")
	b.WriteString(instructions)

	b.WriteString("\n\nUser question:\n")
	b.WriteString(userMessage)

	if len(history) > 0 {
		if len(history) > HistoryLimit {
			history = history[len(history)-HistoryLimit:]
		}
		b.WriteString("\n\nRecent conversation:\n")
		for _, msg := range history {
			fmt.Fprintf(&b, "%s: %s\n", roleLabel(msg.Role), msg.Content)
		}
	}

	return b.String()
}

func joinOr(names []string, empty string) string {
	if len(names) == 0 {
		return empty
	}
	return strings.Join(names, ", ")
}

func roleLabel(r models.Role) string {
	if r == models.RoleAssistant {
		return "Assistant"
	}
	return "User"
}
