package bot

import (
	"context"
	"fmt"
)

// NewCreateOrderCommand registers /createorder: places a new order with
// an auto-generated ID. Restricted to the developer account.
func NewCreateOrderCommand(orders OrderLifecycle) *Command {
	return &Command{
		Name:        "createorder",
		Description: "Creates a new order with an auto-generated ID and saves it to the database.",
		DevOnly:     true,
		Execute: func(ctx context.Context, ic Interaction) (Reply, error) {
			order, err := orders.CreateOrder(ctx, ic.Option("order_name"), ic.Option("state"), ic.UserTag)
			if err != nil {
				return Reply{}, err
			}

			createdAt := order.CreatedAt
			embed := Embed{
				Title:       "New Order Created!",
				Description: fmt.Sprintf("Order `%s` has been successfully created.", order.OrderName),
				Color:       "#4CAF50",
				FooterText:  embedFooter,
				Timestamp:   &createdAt,
			}
			embed.AddField("Order ID", fmt.Sprintf("`%s`", order.OrderID), false)
			embed.AddField("Order Name", order.OrderName, true)
			embed.AddField("Order Author", order.OrderAuthor, true)
			embed.AddField("Current State", order.State, true)
			embed.AddField("Created At", formatTime(order.CreatedAt), false)

			return Reply{Embeds: []Embed{embed}, Ephemeral: true}, nil
		},
	}
}
