package catalog

import (
	"github.com/spf13/cobra"

	"github.com/liyang960414/erp/internal/view"
)

// SupplierCmd is the parent command for supplier queries
var SupplierCmd = &cobra.Command{
	Use:     "supplier",
	Aliases: []string{"suppliers"},
	Short:   "Query suppliers",
}

var supplierListCmd = &cobra.Command{
	Use:   "list",
	Short: "List suppliers",
	RunE: func(cmd *cobra.Command, args []string) error {
		erpClient, err := sdkClient(cmd.Context())
		if err != nil {
			return err
		}
		suppliers, err := erpClient.ListSuppliers(cmd.Context())
		if err != nil {
			return err
		}
		return view.Suppliers(cmd.OutOrStdout(), suppliers)
	},
}

func init() {
	SupplierCmd.AddCommand(supplierListCmd)
}
