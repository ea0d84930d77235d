package nav

import (
	"github.com/spf13/cobra"
)

// OpenCmd navigates to a page and renders it.
var OpenCmd = &cobra.Command{
	Use:   "open <path>",
	Short: "Open a page",
	Long: `Navigates to a page, records it as an open tab and renders it.

Pages that need a signed-in user send you to /login, and pages restricted to
other roles send you back to /home with a warning.

Pages:
  /home                 Dashboard
  /products             Materials
  /orders               Sale orders
  /users/list           Users (ADMIN)
  /system/settings      Client settings (ADMIN)
  /system/permissions   Permissions (ADMIN)
  /system/roles         Roles (ADMIN)
  /system/audit-logs    Audit logs (ADMIN)
  /system/import-tasks  Import tasks (ADMIN)`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app(cmd.Context())
		if err != nil {
			return err
		}
		return render(cmd.Context(), cmd.OutOrStdout(), a, args[0])
	},
}
