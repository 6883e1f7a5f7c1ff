package bot

import (
	"context"
	"fmt"
)

// NewUpdateOrderCommand registers /updateorder: changes the state of an
// existing order and reports the transition.
func NewUpdateOrderCommand(orders OrderLifecycle) *Command {
	return &Command{
		Name:        "updateorder",
		Description: "Changes the state of an existing order.",
		Execute: func(ctx context.Context, ic Interaction) (Reply, error) {
			orderID := ic.Option("order_id")
			newState := ic.Option("new_state")

			order, oldState, err := orders.UpdateOrderState(ctx, orderID, newState)
			if err != nil {
				return Reply{}, err
			}

			now := order.Updates[len(order.Updates)-1].Timestamp
			embed := Embed{
				Title:       "Order State Updated!",
				Description: fmt.Sprintf("Order `%s` state changed from `%s` to `%s`.", order.OrderID, oldState, order.State),
				Color:       "#3498DB",
				FooterText:  embedFooter,
				Timestamp:   &now,
			}
			embed.AddField("Order ID", fmt.Sprintf("`%s`", order.OrderID), false)
			embed.AddField("Order Name", order.OrderName, true)
			embed.AddField("Order Author", order.OrderAuthor, true)
			embed.AddField("New State", order.State, true)
			embed.AddField("Created At", formatTime(order.CreatedAt), false)
			if order.DeliveredAt != nil {
				embed.AddField("Delivered At", formatTime(*order.DeliveredAt), false)
			}

			return Reply{Embeds: []Embed{embed}, Ephemeral: true}, nil
		},
	}
}
