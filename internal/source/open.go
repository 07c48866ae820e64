package source

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xo/dburl"
)

var (
	// ErrNoDatabase is returned when no database URL was given.
	ErrNoDatabase = errors.New("no database specified")
	// ErrUnsupportedDriver is returned for URLs naming an engine other than
	// PostgreSQL, MySQL/MariaDB or SQLite.
	ErrUnsupportedDriver = errors.New("unsupported database")
)

var sqliteExtensions = map[string]bool{
	".db":      true,
	".sqlite":  true,
	".sqlite3": true,
}

// Open connects to the database named by rawURL and verifies the connection.
// Besides URLs such as postgres://, mysql:// and sqlite:, a path to an
// existing file or one ending in .db/.sqlite/.sqlite3 opens SQLite.
func Open(ctx context.Context, rawURL string) (*DB, error) {
	u, err := ParseURL(rawURL)
	if err != nil {
		return nil, err
	}
	d, err := dialectFor(u)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(d.GoDriver, u.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", d.Name, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect to %s: %w", d.Name, err)
	}
	return New(db, d), nil
}

// ParseURL parses a database URL, accepting bare SQLite file paths.
func ParseURL(rawURL string) (*dburl.URL, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, ErrNoDatabase
	}
	if isSQLitePath(rawURL) {
		rawURL = "sqlite:" + rawURL
	}
	u, err := dburl.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	return u, nil
}

func dialectFor(u *dburl.URL) (Dialect, error) {
	for _, name := range []string{u.Driver, u.UnaliasedDriver} {
		if d, ok := dialectsByDriver[name]; ok {
			return d, nil
		}
	}
	return Dialect{}, fmt.Errorf("%w: %s", ErrUnsupportedDriver, u.Driver)
}

func isSQLitePath(raw string) bool {
	if st, err := os.Stat(raw); err == nil && !st.IsDir() {
		return true
	}
	if strings.Contains(raw, ":") {
		return false
	}
	return sqliteExtensions[strings.ToLower(filepath.Ext(raw))]
}

// Redact masks the password of a database URL so it can be logged.
func Redact(rawURL string) string {
	u, err := dburl.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return u.URL.Redacted()
}
