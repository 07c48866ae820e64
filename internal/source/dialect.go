package source

import (
	"fmt"
	"strings"

	// database/sql drivers for the supported engines
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/oakwood-commons/dbview/internal/limiter"
)

// Dialect captures the per-engine SQL differences the data source needs.
type Dialect struct {
	// Name is the engine name used in messages and logs.
	Name string
	// GoDriver is the database/sql driver name registered for the engine.
	GoDriver string

	listTables string
	quoteChar  string
	// noLimit is the LIMIT value meaning "all rows" when only OFFSET is wanted.
	noLimit string
}

var (
	// Postgres talks to PostgreSQL through pgx.
	Postgres = Dialect{
		Name:     "postgres",
		GoDriver: "pgx",
		listTables: `SELECT table_name FROM information_schema.tables ` +
			`WHERE table_schema = current_schema() AND table_type = 'BASE TABLE' ORDER BY table_name`,
		quoteChar: `"`,
	}

	// MySQL covers MySQL and MariaDB.
	MySQL = Dialect{
		Name:     "mysql",
		GoDriver: "mysql",
		listTables: `SELECT table_name FROM information_schema.tables ` +
			`WHERE table_schema = DATABASE() AND table_type = 'BASE TABLE' ORDER BY table_name`,
		quoteChar: "`",
		noLimit:   "18446744073709551615",
	}

	// SQLite uses the pure Go modernc driver.
	SQLite = Dialect{
		Name:       "sqlite",
		GoDriver:   "sqlite",
		listTables: `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`,
		quoteChar:  `"`,
		noLimit:    "-1",
	}
)

// dialectsByDriver maps dburl driver names (and their aliases) to dialects.
var dialectsByDriver = map[string]Dialect{
	"postgres":      Postgres,
	"postgresql":    Postgres,
	"pgx":           Postgres,
	"mysql":         MySQL,
	"mariadb":       MySQL,
	"sqlite3":       SQLite,
	"sqlite":        SQLite,
	"moderncsqlite": SQLite,
}

// Quote returns name as a quoted identifier.
func (d Dialect) Quote(name string) string {
	return d.quoteChar + strings.ReplaceAll(name, d.quoteChar, d.quoteChar+d.quoteChar) + d.quoteChar
}

// selectAll builds the statement that reads a window of a table.
func (d Dialect) selectAll(table string, w limiter.Window) string {
	var b strings.Builder
	b.WriteString("SELECT * FROM ")
	b.WriteString(d.Quote(table))
	switch {
	case w.Limit > 0:
		fmt.Fprintf(&b, " LIMIT %d", w.Limit)
	case w.Offset > 0 && d.noLimit != "":
		b.WriteString(" LIMIT " + d.noLimit)
	}
	if w.Offset > 0 {
		fmt.Fprintf(&b, " OFFSET %d", w.Offset)
	}
	return b.String()
}

func (d Dialect) count(table string) string {
	return "SELECT COUNT(*) FROM " + d.Quote(table)
}
