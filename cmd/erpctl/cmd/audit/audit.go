package audit

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/liyang960414/erp/internal/config"
	"github.com/liyang960414/erp/internal/view"
	"github.com/liyang960414/erp/pkg/sdk"
)

// AuditCmd is the parent command for audit log queries
var AuditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Query the audit log",
	Long:  `Commands for reading the audit log. Requires the ADMIN role.`,
}

var (
	listQuery  sdk.AuditLogQuery
	listFilter string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List audit log entries",
	Long: `Lists audit log entries, newest first. The --username, --action, --module,
--status, --since and --until flags are sent to the backend. --filter is a bexpr
expression applied to the fetched page over the fields id, username, action,
module, resourceType, resourceId, method, uri, ip, status and description.

Example:
  erpctl audit list --module user --filter 'status == "FAILURE" and method == "DELETE"'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if _, err := view.FilterAuditLogs(listFilter, nil); err != nil {
			return err
		}
		erpClient, err := config.MustFromContext(ctx).ClientProvider.SDKClient(ctx)
		if err != nil {
			return err
		}

		page, err := erpClient.ListAuditLogs(ctx, listQuery)
		if err != nil {
			return err
		}
		logs, err := view.FilterAuditLogs(listFilter, page.Content)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if err := view.AuditLogs(out, logs); err != nil {
			return err
		}
		if len(logs) != len(page.Content) {
			fmt.Fprintf(out, "\n%d of %d entries on this page match the filter\n", len(logs), len(page.Content))
		}
		view.Footer(out, page)
		return nil
	},
}

func init() {
	AuditCmd.AddCommand(listCmd)

	flags := listCmd.Flags()
	flags.StringVar(&listQuery.Username, "username", "", "Only entries by this user")
	flags.StringVar(&listQuery.Action, "action", "", "Only entries with this action")
	flags.StringVar(&listQuery.Module, "module", "", "Only entries in this module")
	flags.StringVar(&listQuery.Status, "status", "", "Only entries with this status (SUCCESS, FAILURE)")
	flags.StringVar(&listQuery.StartTime, "since", "", "Start time, e.g. 2025-01-01T00:00:00")
	flags.StringVar(&listQuery.EndTime, "until", "", "End time, e.g. 2025-01-31T23:59:59")
	flags.IntVar(&listQuery.Page, "page", 0, "Zero-based page number")
	flags.IntVar(&listQuery.Size, "size", view.DefaultPageSize, "Page size")
	flags.StringVar(&listFilter, "filter", "", `bexpr filter expression (e.g. status == "FAILURE")`)
}
