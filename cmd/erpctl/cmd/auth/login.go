package auth

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/liyang960414/erp/cmd/erpctl/internal/prompt"
	"github.com/liyang960414/erp/internal/router"
	"github.com/liyang960414/erp/internal/view"
	"github.com/liyang960414/erp/pkg/sdk"
)

var (
	loginUsername      string
	loginPassword      string
	loginPasswordStdin bool
	loginRedirect      string
)

var errLoginFailed = errors.New("login failed")

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the ERP backend",
	Long: `Signs in with a username and password and stores the session for later commands.

Missing values are prompted for unless --non-interactive is set. Use
--password-stdin to pipe the password in from a secret manager.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := app(ctx)
		if err != nil {
			return err
		}

		p := prompter(ctx)
		username, err := p.Text(loginUsername, "Username")
		if err != nil {
			return err
		}
		password := loginPassword
		if loginPasswordStdin {
			if password, err = prompt.ReadLine(cmd.InOrStdin()); err != nil {
				return fmt.Errorf("read password from stdin: %w", err)
			}
		}
		if password, err = p.Secret(password, "Password"); err != nil {
			return err
		}

		if !a.Session.Login(ctx, sdk.LoginRequest{Username: username, Password: password}) {
			return errLoginFailed
		}

		target := loginRedirect
		if target == "" {
			target = router.HomePath
		}
		loc, err := a.Router.Push(ctx, target)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		u := a.Session.User()
		fmt.Fprintf(out, "Authenticated as: %s (%s)\n", u.Username, u.Email)
		fmt.Fprintln(out, view.TabStrip(a.Tabs.Tabs(), loc.Path))
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Username")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Password (prefer --password-stdin)")
	loginCmd.Flags().BoolVar(&loginPasswordStdin, "password-stdin", false, "Read the password from stdin")
	loginCmd.Flags().StringVar(&loginRedirect, "redirect", "", "Page to open after signing in (default /home)")
}
