package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jaspreet-dot-casa/rapid-toolbox/pkg/doctor"
	"github.com/jaspreet-dot-casa/rapid-toolbox/pkg/tui"
)

// errIssuesFound makes doctor exit non-zero without repeating the report.
var errIssuesFound = errors.New("doctor found issues")

func newDoctorCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the environment and every registered app",
		Long: `Check that apps can be launched on this machine: the shell used for
launching, the catalog file and the executable and working directory of
every registered app. Exits non-zero when something is missing or broken.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, _, err := opts.loadSettings(true)
			if err != nil {
				return err
			}

			checker := doctor.NewChecker(s.CatalogPath)
			groups := checker.CheckAll()
			printReport(cmd.OutOrStdout(), groups, checker.GetSummary(groups))

			if checker.HasIssues(groups) {
				cmd.SilenceErrors = true
				return errIssuesFound
			}
			return nil
		},
	}
}

func statusIcon(s doctor.CheckStatus) string {
	switch s {
	case doctor.StatusOK:
		return tui.SuccessStyle.Render("✓")
	case doctor.StatusWarning:
		return tui.WarningStyle.Render("!")
	default:
		return tui.ErrorStyle.Render("✗")
	}
}

// printReport writes the grouped check results and a summary line.
func printReport(w io.Writer, groups []doctor.CheckGroup, summary doctor.Summary) {
	for _, g := range groups {
		fmt.Fprintln(w, tui.TitleStyle.Render(g.Name))
		if len(g.Checks) == 0 {
			fmt.Fprintln(w, "  "+tui.MutedStyle.Render("nothing to check"))
		}
		for _, c := range g.Checks {
			line := fmt.Sprintf("  %s %s", statusIcon(c.Status), c.Name)
			if c.Message != "" {
				line += tui.MutedStyle.Render("  " + c.Message)
			}
			fmt.Fprintln(w, line)
			if c.FixCommand != nil && c.Status != doctor.StatusOK {
				fmt.Fprintf(w, "      %s: %s\n", c.FixCommand.Description, c.FixCommand.Command)
			}
		}
		fmt.Fprintln(w)
	}

	parts := []string{fmt.Sprintf("%d ok", summary.OK)}
	if summary.Warnings > 0 {
		parts = append(parts, fmt.Sprintf("%d warning(s)", summary.Warnings))
	}
	if summary.Missing > 0 {
		parts = append(parts, fmt.Sprintf("%d missing", summary.Missing))
	}
	if summary.Errors > 0 {
		parts = append(parts, fmt.Sprintf("%d error(s)", summary.Errors))
	}
	fmt.Fprintf(w, "%d checks: %s\n", summary.Total, strings.Join(parts, ", "))
}
