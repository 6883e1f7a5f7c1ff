package bot

import (
	"context"
	"fmt"
	"time"

	"ordertrack/internal/browser"
	"ordertrack/internal/domain"
)

// NewListOrdersCommand registers /orders: opens a paginated browser over
// all current orders. The first page comes back as the reply; navigation
// re-renders flow through the connector's MessageUpdater until the
// session times out or is closed.
func NewListOrdersCommand(orders OrderLifecycle, sessions *browser.Manager, updater MessageUpdater) *Command {
	return &Command{
		Name:        "orders",
		Description: "Displays all current orders, with pagination.",
		Execute: func(ctx context.Context, ic Interaction) (Reply, error) {
			all, err := orders.ListOrders(ctx)
			if err != nil {
				return Reply{}, err
			}
			if len(all) == 0 {
				return Reply{Content: "There are no orders currently in the system."}, nil
			}

			session, first := sessions.Open(ic.UserID, all, func(sessionID string, page browser.Page) {
				updater.UpdateMessage(sessionID, pageReply(sessionID, page))
			})

			return pageReply(session.ID, first), nil
		},
	}
}

func pageReply(sessionID string, page browser.Page) Reply {
	now := time.Now()
	embed := Embed{
		Title:       fmt.Sprintf("Current Orders (Page %d/%d)", page.Index+1, page.TotalPages),
		Description: fmt.Sprintf("Displaying %d of %d orders.", len(page.Orders), page.TotalOrders),
		Color:       "#0099FF",
		FooterText:  "Use the buttons to navigate.",
		Timestamp:   &now,
	}

	for _, order := range page.Orders {
		embed.AddField(fmt.Sprintf("Order ID: %s", order.OrderID), orderSummary(order), false)
	}
	if len(page.Orders) == 0 {
		embed.AddField("No orders on this page.", "...", false)
	}

	return Reply{
		Embeds:    []Embed{embed},
		SessionID: sessionID,
		Buttons: []Button{
			{CustomID: CustomIDPrevPage, Label: "Previous", Disabled: !page.PrevEnabled},
			{CustomID: CustomIDNextPage, Label: "Next", Disabled: !page.NextEnabled},
		},
	}
}

func orderSummary(order domain.Order) string {
	summary := fmt.Sprintf("**Name:** %s\n**Author:** %s\n**State:** %s\n**Created:** %s",
		order.OrderName, order.OrderAuthor, order.State, formatTime(order.CreatedAt))
	if order.DeliveredAt != nil {
		summary += fmt.Sprintf("\n**Delivered:** %s", formatTime(*order.DeliveredAt))
	}
	return summary
}
