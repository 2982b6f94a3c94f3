// Package doctor checks that the toolbox can run on this machine and that
// every catalog entry still points at something launchable.
package doctor

// CheckStatus represents the status of a check.
type CheckStatus int

const (
	// StatusOK indicates the check passed.
	StatusOK CheckStatus = iota
	// StatusMissing indicates a required file, directory or tool is absent.
	StatusMissing
	// StatusError indicates an error occurred during the check.
	StatusError
	// StatusWarning indicates an issue that does not block launching.
	StatusWarning
)

// String returns the string representation of the status.
func (s CheckStatus) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusMissing:
		return "missing"
	case StatusError:
		return "error"
	case StatusWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// Check represents a single check result.
type Check struct {
	ID          string      // Unique identifier, e.g. "shell", "app:notepad"
	Name        string      // Display name
	Description string      // What is being checked
	Status      CheckStatus // Current status
	Message     string      // Status message (path, counts, error)
	FixCommand  *FixCommand // How to fix (nil if there is nothing to run)
}

// FixCommand suggests a toolbox command that resolves a failed check.
type FixCommand struct {
	Description string // Human-readable description of what the fix does
	Command     string // Command line to run
}

// CheckGroup represents a group of related checks.
type CheckGroup struct {
	ID          string  // Unique identifier, e.g. "environment", "apps"
	Name        string  // Display name
	Description string  // What this group is for
	Checks      []Check // Individual checks in this group
}

// GroupID constants for check groups.
const (
	GroupEnvironment = "environment"
	GroupCatalog     = "catalog"
	GroupApps        = "apps"
)

// CheckID constants for individual checks.
const (
	IDShell       = "shell"
	IDIcons       = "icons"
	IDCatalogFile = "catalog-file"
	IDAppPrefix   = "app:"
)
