// Package settings holds build metadata and the per-run settings shared
// between the dbview command and its packages.
package settings

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "dbview"

// VersionInformation is populated at build time via ldflags.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo describes the running binary.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// Run holds the settings of a single invocation.
type Run struct {
	// NoColor disables ANSI styling of tables and JSON.
	NoColor bool
	// Width is the terminal width tables are fitted to.
	Width int
	// FullContent wraps cells instead of truncating them.
	FullContent bool
	// Statement is set when a statement was read from stdin.
	Statement string
	// IsQuiet suppresses the rows-affected message of statements.
	IsQuiet bool
}

// NewCliParams returns the defaults for a command line run.
func NewCliParams() *Run {
	return &Run{
		Width: 120,
	}
}

// FromStdin reports whether the run executes a piped statement rather than
// listing tables.
func (r *Run) FromStdin() bool {
	return r != nil && r.Statement != ""
}
