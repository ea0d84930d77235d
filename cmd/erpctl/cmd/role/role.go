package role

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/liyang960414/erp/internal/config"
	"github.com/liyang960414/erp/pkg/sdk"
)

// RoleCmd is the parent command for role operations
var RoleCmd = &cobra.Command{
	Use:   "role",
	Short: "Manage roles",
	Long:  `Commands for listing, creating and deleting roles. Requires the ADMIN role.`,
}

// PermissionCmd is the parent command for permission operations
var PermissionCmd = &cobra.Command{
	Use:   "permission",
	Short: "Inspect permissions",
}

func init() {
	RoleCmd.AddCommand(listCmd)
	RoleCmd.AddCommand(getCmd)
	RoleCmd.AddCommand(createCmd)
	RoleCmd.AddCommand(deleteCmd)
	PermissionCmd.AddCommand(permissionListCmd)
}

func sdkClient(ctx context.Context) (*sdk.Client, error) {
	cfg := config.MustFromContext(ctx)
	return cfg.ClientProvider.SDKClient(ctx)
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}
