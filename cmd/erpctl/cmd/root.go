package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/liyang960414/erp/cmd/erpctl/cmd/audit"
	"github.com/liyang960414/erp/cmd/erpctl/cmd/auth"
	"github.com/liyang960414/erp/cmd/erpctl/cmd/catalog"
	"github.com/liyang960414/erp/cmd/erpctl/cmd/imports"
	"github.com/liyang960414/erp/cmd/erpctl/cmd/locale"
	"github.com/liyang960414/erp/cmd/erpctl/cmd/nav"
	"github.com/liyang960414/erp/cmd/erpctl/cmd/role"
	"github.com/liyang960414/erp/cmd/erpctl/cmd/user"
	"github.com/liyang960414/erp/internal/client"
	"github.com/liyang960414/erp/internal/config"
	"github.com/liyang960414/erp/internal/notify"
	"github.com/liyang960414/erp/pkg/sdk"
)

var (
	configFile     string
	apiBaseURL     string
	serverURL      string
	production     bool
	storeURL       string
	stateDir       string
	profile        string
	timeout        time.Duration
	logLevel       string
	localeFlag     string
	nonInteractive bool
)

var rootCmd = &cobra.Command{
	Use:   "erpctl",
	Short: "erpctl - ERP console client",
	Long: `erpctl is the command-line client for the ERP backend. It keeps a login
session and a set of open tabs between invocations, and renders the ERP pages
(materials, BOMs, units, suppliers, orders, users, roles, audit logs, import
tasks) in the terminal.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.Load(config.LoadOptions{ConfigFile: configFile})
		if err != nil {
			return err
		}
		applyFlags(cmd, &settings)
		settings.Sanitize()

		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: settings.SlogLevel()}))
		slog.SetDefault(logger)

		provider := client.NewProvider(client.Options{
			BaseURL:  settings.BaseURL(),
			StoreURL: settings.StoreURL,
			StateDir: settings.StateDir,
			Profile:  settings.Profile,
			Timeout:  settings.Timeout,
			Locale:   settings.Locale,
			Token:    settings.Token,
			Notifier: notify.NewTerminal(cmd.ErrOrStderr()),
			Logger:   logger,
		})

		cmd.SetContext(config.InjectConfig(cmd.Context(), &config.GlobalConfig{
			Settings:       settings,
			ClientProvider: provider,
		}))
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if cfg, ok := config.FromContext(cmd.Context()); ok {
			return cfg.ClientProvider.Close()
		}
		return nil
	},
}

// applyFlags overlays flags given on the command line onto the loaded settings.
func applyFlags(cmd *cobra.Command, s *config.Settings) {
	flags := cmd.Flags()
	if flags.Changed("api-url") {
		s.APIBaseURL = apiBaseURL
	}
	if flags.Changed("server") {
		s.Server = serverURL
	}
	if flags.Changed("production") {
		s.Production = production
	}
	if flags.Changed("store") {
		s.StoreURL = storeURL
	}
	if flags.Changed("state-dir") {
		s.StateDir = stateDir
	}
	if flags.Changed("profile") {
		s.Profile = profile
	}
	if flags.Changed("timeout") {
		s.Timeout = timeout
	}
	if flags.Changed("log-level") {
		s.LogLevel = logLevel
	}
	if flags.Changed("locale") {
		s.Locale = localeFlag
	}
	if flags.Changed("non-interactive") {
		s.NonInteractive = nonInteractive
	}
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		report(err)
		os.Exit(1)
	}
}

// report prints err unless the request pipeline already told the user.
func report(err error) {
	var apiErr *sdk.APIError
	if errors.As(err, &apiErr) {
		return
	}
	pterm.Error.WithWriter(os.Stderr).Println(fmt.Sprint(err))
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "Config file (default ~/.erpctl/config.yaml)")
	flags.StringVar(&apiBaseURL, "api-url", "", "API base URL, overrides --server and --production (also ERP_API_BASE_URL)")
	flags.StringVar(&serverURL, "server", "", "Server origin the API is served from in production mode (also ERP_SERVER)")
	flags.BoolVar(&production, "production", false, "Use the production API path on --server (also ERP_PRODUCTION)")
	flags.StringVar(&storeURL, "store", "", "Session storage: file://<dir>, memory:// or redis://host:port/db (also ERP_STORE_URL)")
	flags.StringVar(&stateDir, "state-dir", "", "Directory for the session file (default ~/.erpctl)")
	flags.StringVar(&profile, "profile", "", "Session profile name (also ERP_PROFILE)")
	flags.DurationVar(&timeout, "timeout", 0, "Request timeout (also ERP_TIMEOUT)")
	flags.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (also ERP_LOG_LEVEL)")
	flags.StringVar(&localeFlag, "locale", "", "Display language for this invocation: zh-CN, en, vi, id (also ERP_LOCALE)")
	flags.BoolVar(&nonInteractive, "non-interactive", false, "Disable interactive prompts (also ERP_NON_INTERACTIVE=true)")

	rootCmd.AddCommand(auth.AuthCmd)
	rootCmd.AddCommand(nav.OpenCmd)
	rootCmd.AddCommand(nav.TabsCmd)
	rootCmd.AddCommand(user.UserCmd)
	rootCmd.AddCommand(role.RoleCmd)
	rootCmd.AddCommand(role.PermissionCmd)
	rootCmd.AddCommand(audit.AuditCmd)
	rootCmd.AddCommand(imports.ImportsCmd)
	rootCmd.AddCommand(catalog.MaterialCmd)
	rootCmd.AddCommand(catalog.OrderCmd)
	rootCmd.AddCommand(catalog.BOMCmd)
	rootCmd.AddCommand(catalog.UnitCmd)
	rootCmd.AddCommand(catalog.SupplierCmd)
	rootCmd.AddCommand(locale.LocaleCmd)
}
