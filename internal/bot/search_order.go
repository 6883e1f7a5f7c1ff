package bot

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"ordertrack/internal/domain"
)

// NewSearchOrderCommand registers /searchorder: looks an order up by ID
// and shows its details including the full history.
func NewSearchOrderCommand(orders OrderLifecycle) *Command {
	return &Command{
		Name:        "searchorder",
		Description: "Searches for an order by its ID and displays its details.",
		Execute: func(ctx context.Context, ic Interaction) (Reply, error) {
			order, err := orders.FindOrder(ctx, ic.Option("order_id"))
			if err != nil {
				return Reply{}, err
			}

			createdAt := order.CreatedAt
			embed := Embed{
				Title:       fmt.Sprintf("Order Details: %s", order.OrderName),
				Description: fmt.Sprintf("Details for order ID `%s`.", order.OrderID),
				Color:       "#8E44AD",
				FooterText:  embedFooter,
				Timestamp:   &createdAt,
			}
			embed.AddField("Order ID", fmt.Sprintf("`%s`", order.OrderID), false)
			embed.AddField("Order Name", order.OrderName, true)
			embed.AddField("Order Author", order.OrderAuthor, true)
			embed.AddField("Current State", order.State, true)
			embed.AddField("Created At", formatTime(order.CreatedAt), false)
			if order.DeliveredAt != nil {
				embed.AddField("Delivered At", formatTime(*order.DeliveredAt), false)
			}
			if len(order.Updates) > 0 {
				embed.AddField("Order History", formatHistory(order.Updates), false)
			}

			return Reply{Embeds: []Embed{embed}, Ephemeral: true}, nil
		},
	}
}

// formatHistory sorts a copy of the updates by timestamp for display;
// the stored order is never touched.
func formatHistory(updates []domain.Update) string {
	sorted := make([]domain.Update, len(updates))
	copy(sorted, updates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	lines := make([]string, len(sorted))
	for i, u := range sorted {
		lines[i] = fmt.Sprintf("- `%s`: %s", formatTime(u.Timestamp), u.Description)
	}
	return strings.Join(lines, "\n")
}
