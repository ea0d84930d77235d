package auth

import (
	"github.com/spf13/cobra"

	"github.com/liyang960414/erp/internal/config"
	"github.com/liyang960414/erp/internal/i18n"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and close all tabs",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := app(ctx)
		if err != nil {
			return err
		}
		if err := config.MustFromContext(ctx).ClientProvider.Logout(ctx); err != nil {
			return err
		}
		a.Notifier.Success(a.Locale.T(i18n.KeyLogoutSuccess))
		return nil
	},
}
