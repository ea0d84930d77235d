package user

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/liyang960414/erp/cmd/erpctl/internal/prompt"
	"github.com/liyang960414/erp/internal/config"
	"github.com/liyang960414/erp/pkg/sdk"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a user",
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
		if err := erpClient.DeleteUser(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted user %d\n", id)
		return nil
	},
}

var enableCmd = &cobra.Command{
	Use:   "enable <id>",
	Short: "Enable a user account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setEnabled(cmd, args[0], true)
	},
}

var disableCmd = &cobra.Command{
	Use:   "disable <id>",
	Short: "Disable a user account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setEnabled(cmd, args[0], false)
	},
}

func setEnabled(cmd *cobra.Command, arg string, enabled bool) error {
	id, err := parseID(arg)
	if err != nil {
		return err
	}
	erpClient, err := sdkClient(cmd.Context())
	if err != nil {
		return err
	}
	u, err := erpClient.UpdateUser(cmd.Context(), id, sdk.UpdateUserInput{Enabled: &enabled})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "User %s enabled: %t\n", u.Username, u.Enabled)
	return nil
}

var setPasswordStdin bool

var setPasswordCmd = &cobra.Command{
	Use:   "set-password <id>",
	Short: "Set a user's password",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		var password string
		if setPasswordStdin {
			if password, err = prompt.ReadLine(cmd.InOrStdin()); err != nil {
				return fmt.Errorf("read password from stdin: %w", err)
			}
		} else {
			p := prompt.Prompter{NonInteractive: config.MustFromContext(ctx).NonInteractive}
			if password, err = p.Secret("", "New password"); err != nil {
				return err
			}
		}

		erpClient, err := sdkClient(ctx)
		if err != nil {
			return err
		}
		if err := erpClient.ChangePassword(ctx, id, password); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Password changed for user %d\n", id)
		return nil
	},
}

func init() {
	setPasswordCmd.Flags().BoolVar(&setPasswordStdin, "password-stdin", false, "Read the password from stdin")
}
