package doctor

import (
	"os"
	"runtime"

	"github.com/jaspreet-dot-casa/rapid-toolbox/pkg/catalog"
)

// Checker runs the environment, catalog and per-app checks.
type Checker struct {
	executor    CommandExecutor
	platform    string
	catalogPath string
	baseDir     string
}

// NewChecker creates a new Checker with the real executor. Relative app
// paths are resolved against the working directory.
func NewChecker(catalogPath string) *Checker {
	baseDir, err := os.Getwd()
	if err != nil {
		baseDir = "."
	}
	return &Checker{
		executor:    &RealExecutor{},
		platform:    runtime.GOOS,
		catalogPath: catalogPath,
		baseDir:     baseDir,
	}
}

// NewCheckerWithExecutor creates a new Checker with a custom executor (for testing).
func NewCheckerWithExecutor(exec CommandExecutor, catalogPath, platform, baseDir string) *Checker {
	return &Checker{
		executor:    exec,
		platform:    platform,
		catalogPath: catalogPath,
		baseDir:     baseDir,
	}
}

// CheckAll runs all checks and returns groups with results. The apps group
// is empty when the catalog could not be loaded.
func (c *Checker) CheckAll() []CheckGroup {
	groups := GetGroups()

	catalogCheck, cat := CheckCatalogFile(c.catalogPath)
	for i := range groups {
		switch groups[i].ID {
		case GroupEnvironment:
			groups[i].Checks = []Check{
				CheckShell(c.executor, c.platform),
				CheckIcons(c.platform),
			}
		case GroupCatalog:
			groups[i].Checks = []Check{catalogCheck}
		case GroupApps:
			groups[i].Checks = c.checkApps(cat)
		}
	}

	return groups
}

func (c *Checker) checkApps(cat *catalog.Catalog) []Check {
	if cat == nil {
		return nil
	}
	names := cat.AppNames()
	checks := make([]Check, 0, len(names))
	for _, name := range names {
		app, _ := cat.App(name)
		checks = append(checks, CheckApp(c.executor, name, app, c.baseDir))
	}
	return checks
}

// Summary represents an overall health summary.
type Summary struct {
	Total    int
	OK       int
	Missing  int
	Warnings int
	Errors   int
}

// GetSummary returns a summary of check results.
func (c *Checker) GetSummary(groups []CheckGroup) Summary {
	var summary Summary

	for _, group := range groups {
		for _, check := range group.Checks {
			summary.Total++
			switch check.Status {
			case StatusOK:
				summary.OK++
			case StatusMissing:
				summary.Missing++
			case StatusWarning:
				summary.Warnings++
			case StatusError:
				summary.Errors++
			}
		}
	}

	return summary
}

// HasIssues returns true if any checks have issues.
func (c *Checker) HasIssues(groups []CheckGroup) bool {
	summary := c.GetSummary(groups)
	return summary.Missing > 0 || summary.Errors > 0
}
