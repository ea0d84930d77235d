package user

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/liyang960414/erp/cmd/erpctl/internal/prompt"
	"github.com/liyang960414/erp/internal/config"
	"github.com/liyang960414/erp/pkg/sdk"
)

var (
	createInput    sdk.CreateUserInput
	createDisabled bool
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		erpClient, err := sdkClient(ctx)
		if err != nil {
			return err
		}

		input := createInput
		p := prompt.Prompter{NonInteractive: config.MustFromContext(ctx).NonInteractive}
		if input.Username, err = p.Text(input.Username, "Username"); err != nil {
			return err
		}
		if input.Email, err = p.Text(input.Email, "Email"); err != nil {
			return err
		}
		if input.Password, err = p.Secret(input.Password, "Password"); err != nil {
			return err
		}
		if createDisabled {
			enabled := false
			input.Enabled = &enabled
		}

		u, err := erpClient.CreateUser(ctx, input)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created user %s (id %d)\n", u.Username, u.ID)
		return nil
	},
}

func init() {
	createCmd.Flags().StringVarP(&createInput.Username, "username", "u", "", "Username")
	createCmd.Flags().StringVar(&createInput.Email, "email", "", "Email address")
	createCmd.Flags().StringVar(&createInput.FullName, "full-name", "", "Full name")
	createCmd.Flags().StringVarP(&createInput.Password, "password", "p", "", "Initial password")
	createCmd.Flags().StringSliceVar(&createInput.RoleNames, "role", nil, "Role name (repeatable)")
	createCmd.Flags().BoolVar(&createDisabled, "disabled", false, "Create the account disabled")
}
