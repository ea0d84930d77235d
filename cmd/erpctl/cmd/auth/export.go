package auth

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/liyang960414/erp/pkg/sdk"
)

// TokenEnvVar is read by erpctl in place of the stored session.
const TokenEnvVar = "ERP_TOKEN"

var shellFormat string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the session token as an environment variable",
	Long: `Prints shell commands that set ERP_TOKEN to the current session token.
Commands run with ERP_TOKEN set use that token without reading or writing the
stored session, which suits CI jobs and scripts.

Supported shells:
  - posix (bash, zsh, sh) - default
  - fish
  - powershell

Usage:
  # POSIX shells (bash/zsh/sh)
  eval $(erpctl auth export)

  # Fish shell
  eval (erpctl auth export --shell fish)

  # PowerShell
  erpctl auth export --shell powershell | Invoke-Expression`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app(cmd.Context())
		if err != nil {
			return err
		}
		token := a.Session.Token()
		if token == "" {
			return errNotLoggedIn
		}
		if claims, err := sdk.ParseTokenClaims(token); err == nil && claims.IsExpired() {
			return fmt.Errorf("session token has expired\n\nPlease run 'erpctl auth login' to sign in again")
		}

		format := strings.ToLower(shellFormat)
		if format == "" {
			format = detectShell()
		}
		return printExport(cmd.OutOrStdout(), format, token)
	},
}

func init() {
	exportCmd.Flags().StringVar(&shellFormat, "shell", "", "Shell format: posix, fish, powershell (auto-detected if not specified)")
}

// detectShell attempts to detect the current shell from the SHELL environment variable
func detectShell() string {
	shell := os.Getenv("SHELL")
	if shell == "" {
		return "posix"
	}
	switch filepath.Base(shell) {
	case "fish":
		return "fish"
	case "pwsh", "powershell":
		return "powershell"
	default:
		return "posix"
	}
}

func printExport(w io.Writer, format, token string) error {
	switch format {
	case "posix", "bash", "zsh", "sh":
		hint("eval $(erpctl auth export)")
		fmt.Fprintf(w, "export %s=%q\n", TokenEnvVar, token)
	case "fish":
		hint("eval (erpctl auth export --shell fish)")
		fmt.Fprintf(w, "set -x %s %q\n", TokenEnvVar, token)
	case "powershell", "pwsh", "ps1":
		hint("erpctl auth export --shell powershell | Invoke-Expression")
		fmt.Fprintf(w, "$env:%s=%q\n", TokenEnvVar, token)
	default:
		return fmt.Errorf("unsupported shell format: %s\n\nSupported formats: posix, fish, powershell", format)
	}
	return nil
}

// hint prints usage to stderr, only when stdout is a terminal and not being eval'd.
func hint(usage string) {
	if !isTerminal(os.Stdout) {
		return
	}
	fmt.Fprintln(os.Stderr, "# Run this command to configure your shell:")
	fmt.Fprintf(os.Stderr, "#   %s\n\n", usage)
}

// isTerminal checks if the given file is a terminal (TTY)
func isTerminal(f *os.File) bool {
	fileInfo, err := f.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
