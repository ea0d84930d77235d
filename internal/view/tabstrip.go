package view

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/liyang960414/erp/internal/tabs"
)

// ActiveMarker prefixes the active tab in the tab strip.
const ActiveMarker = "●"

var (
	tabStyle = lipgloss.NewStyle().Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Bold(true).
			Underline(true).
			Foreground(lipgloss.Color("12"))

	separatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	headingStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)
)

// TabStrip renders the open tabs on one line with the active tab highlighted.
func TabStrip(list []tabs.Tab, active string) string {
	if len(list) == 0 {
		return ""
	}
	cells := make([]string, 0, len(list))
	for _, tab := range list {
		if tab.Path == active {
			cells = append(cells, activeTabStyle.Render(ActiveMarker+" "+tab.Title))
			continue
		}
		cells = append(cells, tabStyle.Render(tab.Title))
	}
	return strings.Join(cells, separatorStyle.Render("│"))
}

// Heading renders a page title.
func Heading(w io.Writer, title string) {
	fmt.Fprintln(w, headingStyle.Render(title))
}

// TabTable lists the open tabs, one per row.
func TabTable(w io.Writer, list []tabs.Tab, active string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ACTIVE\tPATH\tTITLE\tCLOSABLE")
	for _, tab := range list {
		marker := ""
		if tab.Path == active {
			marker = ActiveMarker
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%t\n", marker, tab.Path, tab.Title, tab.Closable)
	}
	return tw.Flush()
}
