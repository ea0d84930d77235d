package catalog

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/liyang960414/erp/internal/view"
)

// BOMCmd is the parent command for bills of materials
var BOMCmd = &cobra.Command{
	Use:     "bom",
	Aliases: []string{"boms"},
	Short:   "Browse bills of materials",
	Long: `Commands for browsing bills of materials. BOMs are created by importing a
workbook with 'erpctl imports upload boms <file>'.`,
}

var bomListCmd = &cobra.Command{
	Use:   "list",
	Short: "List bills of materials",
	RunE: func(cmd *cobra.Command, args []string) error {
		erpClient, err := sdkClient(cmd.Context())
		if err != nil {
			return err
		}
		boms, err := erpClient.ListBOMs(cmd.Context())
		if err != nil {
			return err
		}
		return view.BOMs(cmd.OutOrStdout(), boms)
	},
}

var bomGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a bill of materials with its child lines",
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
		bom, err := erpClient.GetBOM(cmd.Context(), id)
		if err != nil {
			return err
		}
		return view.BOM(cmd.OutOrStdout(), bom)
	},
}

var bomDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a bill of materials",
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
		if err := erpClient.DeleteBOM(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted BOM %d\n", id)
		return nil
	},
}

func init() {
	BOMCmd.AddCommand(bomListCmd)
	BOMCmd.AddCommand(bomGetCmd)
	BOMCmd.AddCommand(bomDeleteCmd)
}
