// Package source reads tables and statement results from PostgreSQL,
// MySQL/MariaDB and SQLite through database/sql.
package source

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"github.com/oakwood-commons/dbview/internal/limiter"
	"github.com/oakwood-commons/dbview/internal/render"
)

// Result is a fully materialised result set.
type Result struct {
	Columns []string
	Rows    []render.Row
	// RowsAffected is set for statements that return no rows.
	RowsAffected int64
}

// DB is a connected data source.
type DB struct {
	db      *sql.DB
	dialect Dialect
}

// New wraps an already opened database handle.
func New(db *sql.DB, d Dialect) *DB {
	return &DB{db: db, dialect: d}
}

// Dialect returns the engine the source talks to.
func (s *DB) Dialect() Dialect {
	return s.dialect
}

// Close releases the underlying connection pool.
func (s *DB) Close() error {
	return s.db.Close()
}

// ListTables returns the user tables of the current schema or database,
// sorted by name.
func (s *DB) ListTables(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, s.dialect.listTables)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("list tables: %w", err)
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	sort.Strings(tables)
	return tables, nil
}

// Count returns the number of rows in table.
func (s *DB) Count(ctx context.Context, table string) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, s.dialect.count(table)).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

// Fetch reads the window w of table. A tail window must be resolved against
// the row count first, see limiter.Window.Resolve.
func (s *DB) Fetch(ctx context.Context, table string, w limiter.Window) (*Result, error) {
	rows, err := s.db.QueryContext(ctx, s.dialect.selectAll(table, w))
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", table, err)
	}
	defer rows.Close()

	res, err := scanRows(rows)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", table, err)
	}
	return res, nil
}

// rowReturning matches statements expected to produce a result set.
var rowReturning = regexp.MustCompile(`(?is)^\s*(select|with|show|values|explain|pragma|describe|desc|table)\b|\breturning\b`)

// Query runs a single statement. Statements that return rows are
// materialised; others report the number of affected rows.
func (s *DB) Query(ctx context.Context, stmt string) (*Result, error) {
	if !rowReturning.MatchString(stmt) {
		res, err := s.db.ExecContext(ctx, stmt)
		if err != nil {
			return nil, err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			affected = 0
		}
		return &Result{RowsAffected: affected}, nil
	}

	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRows(rows)
}

func scanRows(rows *sql.Rows) (*Result, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, err
	}
	dbTypes := make([]string, len(columns))
	for i, ct := range types {
		if i < len(dbTypes) && ct != nil {
			dbTypes[i] = ct.DatabaseTypeName()
		}
	}

	keys := uniqueColumns(columns)
	res := &Result{Columns: keys}
	for rows.Next() {
		values := make([]any, len(columns))
		dest := make([]any, len(columns))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		for i := range values {
			values[i] = normalize(values[i], dbTypes[i])
		}
		res.Rows = append(res.Rows, render.NewRow(keys, values))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// uniqueColumns suffixes repeated column names ("id", "id_2") so joins that
// select the same name twice keep every value.
func uniqueColumns(columns []string) []string {
	seen := make(map[string]int, len(columns))
	out := make([]string, len(columns))
	for i, c := range columns {
		seen[c]++
		name := c
		for n := seen[c]; n > 1; n++ {
			name = c + "_" + strconv.Itoa(n)
			if seen[name] == 0 {
				seen[name] = 1
				break
			}
		}
		out[i] = name
	}
	return out
}
