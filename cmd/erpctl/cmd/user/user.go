package user

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/liyang960414/erp/internal/config"
	"github.com/liyang960414/erp/pkg/sdk"
)

// UserCmd is the parent command for user administration
var UserCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users",
	Long:  `Commands for listing and administering user accounts. Most require the ADMIN role.`,
}

func init() {
	UserCmd.AddCommand(listCmd)
	UserCmd.AddCommand(getCmd)
	UserCmd.AddCommand(createCmd)
	UserCmd.AddCommand(deleteCmd)
	UserCmd.AddCommand(enableCmd)
	UserCmd.AddCommand(disableCmd)
	UserCmd.AddCommand(setPasswordCmd)
}

func sdkClient(ctx context.Context) (*sdk.Client, error) {
	cfg := config.MustFromContext(ctx)
	return cfg.ClientProvider.SDKClient(ctx)
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid user id %q", arg)
	}
	return id, nil
}
