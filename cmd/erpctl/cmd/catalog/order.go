package catalog

import (
	"github.com/spf13/cobra"

	"github.com/liyang960414/erp/internal/view"
	"github.com/liyang960414/erp/pkg/sdk"
)

// OrderCmd is the parent command for sale order queries
var OrderCmd = &cobra.Command{
	Use:     "order",
	Aliases: []string{"orders"},
	Short:   "Query sale orders",
}

var orderQuery sdk.SaleOrderQuery

var orderListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sale orders",
	RunE: func(cmd *cobra.Command, args []string) error {
		erpClient, err := sdkClient(cmd.Context())
		if err != nil {
			return err
		}
		page, err := erpClient.ListSaleOrders(cmd.Context(), orderQuery)
		if err != nil {
			return err
		}
		if err := view.SaleOrders(cmd.OutOrStdout(), page.Content); err != nil {
			return err
		}
		view.Footer(cmd.OutOrStdout(), page)
		return nil
	},
}

var orderGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a sale order with its lines",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		erpClient, err := sdkClient(cmd.Context())
		if err != nil {
			return err
		}
		order, err := erpClient.GetSaleOrder(cmd.Context(), id)
		if err != nil {
			return err
		}
		return view.SaleOrder(cmd.OutOrStdout(), order)
	},
}

func init() {
	OrderCmd.AddCommand(orderListCmd)
	OrderCmd.AddCommand(orderGetCmd)

	flags := orderListCmd.Flags()
	flags.StringVar(&orderQuery.BillNo, "bill-no", "", "Only orders whose bill number matches")
	flags.StringVar(&orderQuery.CustomerCode, "customer", "", "Only orders for this customer code")
	flags.StringVar(&orderQuery.StartDate, "from", "", "Order date from (YYYY-MM-DD)")
	flags.StringVar(&orderQuery.EndDate, "to", "", "Order date to (YYYY-MM-DD)")
	flags.IntVar(&orderQuery.Page, "page", 0, "Zero-based page number")
	flags.IntVar(&orderQuery.Size, "size", view.DefaultPageSize, "Page size")
}
