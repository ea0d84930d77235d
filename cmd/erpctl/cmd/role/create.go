package role

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/liyang960414/erp/pkg/sdk"
)

var createInput sdk.CreateRoleInput

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a role",
	RunE: func(cmd *cobra.Command, args []string) error {
		input := createInput
		input.Name = strings.ToUpper(strings.TrimSpace(input.Name))
		if input.Name == "" {
			return errors.New("--name is required")
		}
		erpClient, err := sdkClient(cmd.Context())
		if err != nil {
			return err
		}
		r, err := erpClient.CreateRole(cmd.Context(), input)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created role %s (id %d)\n", r.Name, r.ID)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a role",
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
		if err := erpClient.DeleteRole(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted role %d\n", id)
		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&createInput.Name, "name", "", "Role name (stored upper-case)")
	createCmd.Flags().StringVar(&createInput.Description, "description", "", "Description")
	createCmd.Flags().StringSliceVar(&createInput.PermissionNames, "permission", nil, "Permission name (repeatable)")
}
