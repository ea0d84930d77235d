package imports

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/liyang960414/erp/internal/config"
	"github.com/liyang960414/erp/internal/view"
	"github.com/liyang960414/erp/pkg/sdk"
)

// ImportsCmd is the parent command for workbook imports
var ImportsCmd = &cobra.Command{
	Use:     "imports",
	Aliases: []string{"import"},
	Short:   "Upload workbooks and inspect import tasks",
}

func init() {
	ImportsCmd.AddCommand(uploadCmd)
	ImportsCmd.AddCommand(listCmd)
	ImportsCmd.AddCommand(getCmd)
	ImportsCmd.AddCommand(failuresCmd)
	ImportsCmd.AddCommand(retryCmd)
}

func sdkClient(ctx context.Context) (*sdk.Client, error) {
	cfg := config.MustFromContext(ctx)
	return cfg.ClientProvider.SDKClient(ctx)
}

func parseTaskID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id %q", arg)
	}
	return id, nil
}

func parseKind(arg string) (sdk.ImportKind, error) {
	kinds := sdk.ImportKinds()
	names := make([]string, 0, len(kinds))
	for _, k := range kinds {
		if string(k) == arg {
			return k, nil
		}
		names = append(names, string(k))
	}
	return "", fmt.Errorf("unknown import kind %q\n\nSupported kinds: %s", arg, strings.Join(names, ", "))
}

var uploadCmd = &cobra.Command{
	Use:   "upload <kind> <file>",
	Short: "Import a workbook",
	Long: `Uploads an Excel workbook to the import endpoint for <kind> and prints the
per-sheet results. Large kinds (purchase-orders, sub-req-orders) may take up to
30 minutes.

Kinds: materials, boms, units, suppliers, sale-orders, sale-outstocks,
purchase-orders, sub-req-orders`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := parseKind(args[0])
		if err != nil {
			return err
		}
		f, err := os.Open(args[1])
		if err != nil {
			return fmt.Errorf("open workbook: %w", err)
		}
		defer f.Close()

		erpClient, err := sdkClient(cmd.Context())
		if err != nil {
			return err
		}
		result, err := erpClient.Import(cmd.Context(), kind, filepath.Base(args[1]), f)
		if err != nil {
			return err
		}
		return view.ImportResult(cmd.OutOrStdout(), result)
	},
}

var listQuery sdk.ImportTaskQuery

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List import tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		erpClient, err := sdkClient(cmd.Context())
		if err != nil {
			return err
		}
		page, err := erpClient.ListImportTasks(cmd.Context(), listQuery)
		if err != nil {
			return err
		}
		if err := view.ImportTasks(cmd.OutOrStdout(), page.Content); err != nil {
			return err
		}
		view.Footer(cmd.OutOrStdout(), page)
		return nil
	},
}

var getCmd = &cobra.Command{
	Use:   "get <task-id>",
	Short: "Show an import task and its files",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseTaskID(args[0])
		if err != nil {
			return err
		}
		erpClient, err := sdkClient(cmd.Context())
		if err != nil {
			return err
		}
		detail, err := erpClient.GetImportTask(cmd.Context(), id)
		if err != nil {
			return err
		}
		return view.ImportTaskDetail(cmd.OutOrStdout(), detail)
	},
}

var (
	failuresStatus string
	failuresQuery  sdk.PageQuery
)

var failuresCmd = &cobra.Command{
	Use:   "failures <task-id>",
	Short: "List the failed rows of an import task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseTaskID(args[0])
		if err != nil {
			return err
		}
		erpClient, err := sdkClient(cmd.Context())
		if err != nil {
			return err
		}
		page, err := erpClient.ListImportFailures(cmd.Context(), id, failuresStatus, failuresQuery)
		if err != nil {
			return err
		}
		if err := view.ImportFailures(cmd.OutOrStdout(), page.Content); err != nil {
			return err
		}
		view.Footer(cmd.OutOrStdout(), page)
		return nil
	},
}

var retryFailureIDs []int64

var retryCmd = &cobra.Command{
	Use:   "retry <task-id> <file>",
	Short: "Resubmit a corrected workbook for failed rows",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseTaskID(args[0])
		if err != nil {
			return err
		}
		f, err := os.Open(args[1])
		if err != nil {
			return fmt.Errorf("open workbook: %w", err)
		}
		defer f.Close()

		erpClient, err := sdkClient(cmd.Context())
		if err != nil {
			return err
		}
		detail, err := erpClient.RetryImportTask(cmd.Context(), id, filepath.Base(args[1]), f, retryFailureIDs)
		if err != nil {
			return err
		}
		return view.ImportTaskDetail(cmd.OutOrStdout(), detail)
	},
}

func init() {
	listCmd.Flags().StringVar(&listQuery.ImportType, "type", "", "Only tasks of this import type")
	listCmd.Flags().StringVar(&listQuery.Status, "status", "", "Only tasks with this status")
	listCmd.Flags().StringVar(&listQuery.CreatedBy, "created-by", "", "Only tasks created by this user")
	listCmd.Flags().IntVar(&listQuery.Page, "page", 0, "Zero-based page number")
	listCmd.Flags().IntVar(&listQuery.Size, "size", view.DefaultPageSize, "Page size")

	failuresCmd.Flags().StringVar(&failuresStatus, "status", "", "Only failures with this status (e.g. PENDING)")
	failuresCmd.Flags().IntVar(&failuresQuery.Page, "page", 0, "Zero-based page number")
	failuresCmd.Flags().IntVar(&failuresQuery.Size, "size", view.DefaultPageSize, "Page size")

	retryCmd.Flags().Int64SliceVar(&retryFailureIDs, "failure-id", nil, "Failure to retry (repeatable; default all)")
}
