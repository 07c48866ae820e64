package cmd

import (
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// Swappable for tests.
var (
	stdinIsPiped  = func() bool { stat, err := os.Stdin.Stat(); return err == nil && (stat.Mode()&os.ModeCharDevice) == 0 }
	stdoutIsTTY   = func() bool { return term.IsTerminal(int(os.Stdout.Fd())) }
	termGetSize   = term.GetSize
	lookupEnv     = os.LookupEnv
	terminalFiles = func() []*os.File { return []*os.File{os.Stdout, os.Stderr} }
)

// detectTerminalWidth returns the width of stdout or stderr, then $COLUMNS,
// else fallback.
func detectTerminalWidth(fallback int) int {
	for _, f := range terminalFiles() {
		if w, _, err := termGetSize(int(f.Fd())); err == nil && w > 0 {
			return w
		}
	}
	if col, ok := lookupEnv("COLUMNS"); ok {
		if w, err := strconv.Atoi(strings.TrimSpace(col)); err == nil && w > 0 {
			return w
		}
	}
	return fallback
}

// colorEnabled decides whether output gets ANSI styling. FORCE_COLOR wins
// over everything else; NO_COLOR and --no-color turn styling off.
func colorEnabled(noColorFlag bool) bool {
	if v, ok := lookupEnv("FORCE_COLOR"); ok && v != "" && v != "0" {
		return true
	}
	if noColorFlag {
		return false
	}
	if v, ok := lookupEnv("NO_COLOR"); ok && v != "" {
		return false
	}
	return stdoutIsTTY()
}

// readStatement returns the trimmed statement piped on stdin, or "" when
// stdin is a terminal or empty.
func readStatement(in io.Reader) (string, error) {
	if !stdinIsPiped() {
		return "", nil
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", err
	}
	stmt := strings.TrimSpace(string(data))
	stmt = strings.TrimSpace(strings.TrimSuffix(stmt, ";"))
	return stmt, nil
}
