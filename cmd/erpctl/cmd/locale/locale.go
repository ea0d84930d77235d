package locale

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/liyang960414/erp/internal/client"
	"github.com/liyang960414/erp/internal/config"
	"github.com/liyang960414/erp/internal/i18n"
	"github.com/liyang960414/erp/internal/view"
)

// LocaleCmd is the parent command for display language operations
var LocaleCmd = &cobra.Command{
	Use:   "locale",
	Short: "Show or change the display language",
	Long: `The selected language is stored with the session and used for page titles,
tab names and messages. --locale or ERP_LOCALE override it for one invocation.`,
	RunE: runGet,
}

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the current language",
	RunE:  runGet,
}

var setCmd = &cobra.Command{
	Use:   "set <locale>",
	Short: "Change the display language",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := app(ctx)
		if err != nil {
			return err
		}
		l, err := i18n.ParseLocale(args[0])
		if err != nil {
			return err
		}
		if err := a.Locale.SetLocale(ctx, l); err != nil {
			return err
		}

		// Tab titles are stored localized; relabel the open ones.
		a.Tabs.Retitle(ctx, func(path string) (string, bool) {
			route, ok := a.Router.Resolve(path)
			if !ok {
				return "", false
			}
			return a.Router.Title(route), true
		})

		a.Notifier.Success(a.Locale.T(i18n.KeyLocaleChanged, l.Label()))
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List supported languages",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app(cmd.Context())
		if err != nil {
			return err
		}
		current := a.Locale.Locale()
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CURRENT\tLOCALE\tLANGUAGE")
		for _, l := range i18n.Locales() {
			marker := ""
			if l == current {
				marker = view.ActiveMarker
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", marker, l, l.Label())
		}
		return w.Flush()
	},
}

func runGet(cmd *cobra.Command, _ []string) error {
	a, err := app(cmd.Context())
	if err != nil {
		return err
	}
	l := a.Locale.Locale()
	fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", l, l.Label())
	return nil
}

func app(ctx context.Context) (*client.App, error) {
	cfg := config.MustFromContext(ctx)
	return cfg.ClientProvider.App(ctx)
}

func init() {
	LocaleCmd.AddCommand(getCmd)
	LocaleCmd.AddCommand(setCmd)
	LocaleCmd.AddCommand(listCmd)
}
