package role

import (
	"github.com/spf13/cobra"

	"github.com/liyang960414/erp/internal/view"
	"github.com/liyang960414/erp/pkg/sdk"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List roles with their permissions",
	RunE: func(cmd *cobra.Command, args []string) error {
		erpClient, err := sdkClient(cmd.Context())
		if err != nil {
			return err
		}
		roles, err := erpClient.ListRoles(cmd.Context())
		if err != nil {
			return err
		}
		return view.Roles(cmd.OutOrStdout(), roles)
	},
}

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a role",
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
		r, err := erpClient.GetRole(cmd.Context(), id)
		if err != nil {
			return err
		}
		return view.Roles(cmd.OutOrStdout(), []sdk.Role{*r})
	},
}

var permissionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List permissions",
	RunE: func(cmd *cobra.Command, args []string) error {
		erpClient, err := sdkClient(cmd.Context())
		if err != nil {
			return err
		}
		perms, err := erpClient.ListPermissions(cmd.Context())
		if err != nil {
			return err
		}
		return view.Permissions(cmd.OutOrStdout(), perms)
	},
}
