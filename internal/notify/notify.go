// Package notify shows the client's user-facing messages in the terminal.
package notify

import (
	"io"
	"os"

	"github.com/pterm/pterm"

	"github.com/liyang960414/erp/pkg/sdk"
)

// Terminal prints notifications with pterm prefixes.
// Messages go to stderr so command output on stdout stays pipeable.
type Terminal struct {
	success pterm.PrefixPrinter
	warning pterm.PrefixPrinter
	failure pterm.PrefixPrinter
}

var _ sdk.Notifier = (*Terminal)(nil)

// NewTerminal returns a Terminal writing to w, or stderr when w is nil.
func NewTerminal(w io.Writer) *Terminal {
	if w == nil {
		w = os.Stderr
	}
	return &Terminal{
		success: *pterm.Success.WithWriter(w),
		warning: *pterm.Warning.WithWriter(w),
		failure: *pterm.Error.WithWriter(w),
	}
}

func (t *Terminal) Success(msg string) { t.success.Println(msg) }
func (t *Terminal) Warning(msg string) { t.warning.Println(msg) }
func (t *Terminal) Error(msg string)   { t.failure.Println(msg) }
