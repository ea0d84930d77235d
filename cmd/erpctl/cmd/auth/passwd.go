package auth

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/liyang960414/erp/cmd/erpctl/internal/prompt"
)

var passwdStdin bool

var passwdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Change your password",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := app(ctx)
		if err != nil {
			return err
		}
		if !a.Session.IsAuthenticated() {
			return errNotLoggedIn
		}
		a.Session.InitUser(ctx)
		u := a.Session.User()
		if u == nil {
			return errNotLoggedIn
		}

		var password string
		if passwdStdin {
			if password, err = prompt.ReadLine(cmd.InOrStdin()); err != nil {
				return fmt.Errorf("read password from stdin: %w", err)
			}
		} else {
			p := prompter(ctx)
			if password, err = p.Secret("", "New password"); err != nil {
				return err
			}
			confirm, err := p.Secret("", "Confirm new password")
			if err != nil {
				return err
			}
			if confirm != password {
				return errors.New("passwords do not match")
			}
		}

		if err := a.API.ChangePassword(ctx, u.ID, password); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Password changed")
		return nil
	},
}

func init() {
	passwdCmd.Flags().BoolVar(&passwdStdin, "password-stdin", false, "Read the new password from stdin")
}
