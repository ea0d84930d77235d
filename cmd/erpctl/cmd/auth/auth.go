package auth

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/liyang960414/erp/cmd/erpctl/internal/prompt"
	"github.com/liyang960414/erp/internal/client"
	"github.com/liyang960414/erp/internal/config"
)

// AuthCmd is the parent command for auth operations
var AuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage authentication",
	Long:  `Commands for signing in and out, inspecting the session and managing your password.`,
}

func init() {
	AuthCmd.AddCommand(loginCmd)
	AuthCmd.AddCommand(logoutCmd)
	AuthCmd.AddCommand(statusCmd)
	AuthCmd.AddCommand(exportCmd)
	AuthCmd.AddCommand(registerCmd)
	AuthCmd.AddCommand(passwdCmd)
}

func app(ctx context.Context) (*client.App, error) {
	cfg := config.MustFromContext(ctx)
	return cfg.ClientProvider.App(ctx)
}

func prompter(ctx context.Context) prompt.Prompter {
	return prompt.Prompter{NonInteractive: config.MustFromContext(ctx).NonInteractive}
}
