package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/liyang960414/erp/pkg/sdk"
)

var (
	registerUsername string
	registerEmail    string
	registerFullName string
	registerPassword string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := app(ctx)
		if err != nil {
			return err
		}

		p := prompter(ctx)
		req := sdk.RegisterRequest{FullName: registerFullName}
		if req.Username, err = p.Text(registerUsername, "Username"); err != nil {
			return err
		}
		if req.Email, err = p.Text(registerEmail, "Email"); err != nil {
			return err
		}
		if req.Password, err = p.Secret(registerPassword, "Password"); err != nil {
			return err
		}

		user, err := a.API.Register(ctx, req)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Registered %s (id %d). Sign in with: erpctl auth login -u %s\n", user.Username, user.ID, user.Username)
		return nil
	},
}

func init() {
	registerCmd.Flags().StringVarP(&registerUsername, "username", "u", "", "Username")
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "Email address")
	registerCmd.Flags().StringVar(&registerFullName, "full-name", "", "Full name")
	registerCmd.Flags().StringVarP(&registerPassword, "password", "p", "", "Password")
}
