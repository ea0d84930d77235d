package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/liyang960414/erp/internal/view"
	"github.com/liyang960414/erp/pkg/sdk"
)

var errNotLoggedIn = errors.New("not logged in\n\nPlease run 'erpctl auth login' first")

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display authentication status",
	Long: `Shows the signed-in user, their roles and permissions, and when the token expires.
The profile is refreshed from the backend; a rejected token ends the session.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := app(ctx)
		if err != nil {
			return err
		}
		if !a.Session.IsAuthenticated() {
			return errNotLoggedIn
		}

		a.Session.FetchProfile(ctx)
		if !a.Session.IsAuthenticated() {
			return errNotLoggedIn
		}

		out := cmd.OutOrStdout()
		if claims, err := sdk.ParseTokenClaims(a.Session.Token()); err == nil && !claims.ExpiresAt.IsZero() {
			state := "valid"
			if claims.IsExpired() {
				state = "expired"
			}
			fmt.Fprintf(out, "Token %s, expires %s\n\n", state, claims.ExpiresAt.Local().Format(time.RFC1123))
		}
		return view.Profile(out, a.Session.User())
	},
}
