package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/jaspreet-dot-casa/rapid-toolbox/pkg/bridge"
	"github.com/jaspreet-dot-casa/rapid-toolbox/pkg/tui"
)

// Table cell styles; everything else uses the tui output styles.
var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// renderTable draws rows under headers with a rounded border.
func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tui.MutedStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...).
		String()
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// printApps writes apps as a table, or as JSON when asJSON is set.
func printApps(w io.Writer, apps []bridge.AppView, asJSON bool) error {
	if asJSON {
		if apps == nil {
			apps = []bridge.AppView{}
		}
		return printJSON(w, apps)
	}
	if len(apps) == 0 {
		_, err := fmt.Fprintln(w, tui.MutedStyle.Render("No apps"))
		return err
	}

	rows := make([][]string, 0, len(apps))
	for _, a := range apps {
		rows = append(rows, []string{a.Name, a.AppPath, a.LaunchArgs, a.WorkingDir, a.Desc})
	}
	_, err := fmt.Fprintln(w, renderTable([]string{"NAME", "PATH", "ARGS", "WORKING DIR", "DESCRIPTION"}, rows))
	return err
}

// printNames writes one name per line, or a JSON array.
func printNames(w io.Writer, names []string, asJSON bool) error {
	if asJSON {
		if names == nil {
			names = []string{}
		}
		return printJSON(w, names)
	}
	for _, n := range names {
		if _, err := fmt.Fprintln(w, n); err != nil {
			return err
		}
	}
	return nil
}

// success prints a confirmation line.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, tui.Successf(format, args...))
}

// warn prints a warning line.
func warn(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, tui.Warnf(format, args...))
}
