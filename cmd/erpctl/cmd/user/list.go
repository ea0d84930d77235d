package user

import (
	"github.com/spf13/cobra"

	"github.com/liyang960414/erp/internal/view"
	"github.com/liyang960414/erp/pkg/sdk"
)

var listQuery sdk.PageQuery

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	RunE: func(cmd *cobra.Command, args []string) error {
		erpClient, err := sdkClient(cmd.Context())
		if err != nil {
			return err
		}
		page, err := erpClient.ListUsers(cmd.Context(), listQuery)
		if err != nil {
			return err
		}
		if err := view.Users(cmd.OutOrStdout(), page.Content); err != nil {
			return err
		}
		view.Footer(cmd.OutOrStdout(), page)
		return nil
	},
}

func init() {
	listCmd.Flags().IntVar(&listQuery.Page, "page", 0, "Zero-based page number")
	listCmd.Flags().IntVar(&listQuery.Size, "size", view.DefaultPageSize, "Page size")
	listCmd.Flags().StringVar(&listQuery.SortBy, "sort", "", "Sort field (e.g. username)")
	listCmd.Flags().StringVar(&listQuery.SortDir, "dir", "", "Sort direction: asc or desc")
}
