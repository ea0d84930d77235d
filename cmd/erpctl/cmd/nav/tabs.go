package nav

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/liyang960414/erp/internal/view"
)

// TabsCmd is the parent command for tab operations
var TabsCmd = &cobra.Command{
	Use:   "tabs",
	Short: "Manage open tabs",
	Long: `Pages opened with 'erpctl open' are remembered as tabs until you sign out.
The home tab is always first and cannot be closed.`,
	RunE: listTabs,
}

var tabsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List open tabs",
	RunE:  listTabs,
}

var tabsCloseCmd = &cobra.Command{
	Use:   "close <path>",
	Short: "Close a tab",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app(cmd.Context())
		if err != nil {
			return err
		}
		a.Tabs.RemoveTab(cmd.Context(), args[0])
		return listTabs(cmd, nil)
	},
}

var tabsCloseOthersCmd = &cobra.Command{
	Use:   "close-others <path>",
	Short: "Close every tab except home and the given one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app(cmd.Context())
		if err != nil {
			return err
		}
		a.Tabs.CloseOtherTabs(cmd.Context(), args[0])
		return listTabs(cmd, nil)
	},
}

var tabsCloseAllCmd = &cobra.Command{
	Use:   "close-all",
	Short: "Close every tab except home",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app(cmd.Context())
		if err != nil {
			return err
		}
		a.Tabs.CloseAllTabs(cmd.Context())
		return listTabs(cmd, nil)
	},
}

var tabsSwitchCmd = &cobra.Command{
	Use:   "switch <path>",
	Short: "Switch to an open tab and render it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app(cmd.Context())
		if err != nil {
			return err
		}
		for _, tab := range a.Tabs.Tabs() {
			if tab.Path == args[0] {
				return render(cmd.Context(), cmd.OutOrStdout(), a, tab.Path)
			}
		}
		return fmt.Errorf("no open tab for %s", args[0])
	},
}

func listTabs(cmd *cobra.Command, _ []string) error {
	a, err := app(cmd.Context())
	if err != nil {
		return err
	}
	return view.TabTable(cmd.OutOrStdout(), a.Tabs.Tabs(), a.Tabs.Active())
}

func init() {
	TabsCmd.AddCommand(tabsListCmd)
	TabsCmd.AddCommand(tabsCloseCmd)
	TabsCmd.AddCommand(tabsCloseOthersCmd)
	TabsCmd.AddCommand(tabsCloseAllCmd)
	TabsCmd.AddCommand(tabsSwitchCmd)
}
