package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-logr/logr"

	"github.com/oakwood-commons/dbview/internal/filter"
	"github.com/oakwood-commons/dbview/internal/jsonout"
	"github.com/oakwood-commons/dbview/internal/limiter"
	"github.com/oakwood-commons/dbview/internal/render"
	"github.com/oakwood-commons/dbview/internal/source"
	"github.com/oakwood-commons/dbview/pkg/logger"
	"github.com/oakwood-commons/dbview/pkg/settings"
)

// viewer prints tables or statement results from an open source.
type viewer struct {
	src     *source.DB
	out     io.Writer
	errOut  io.Writer
	run     *settings.Run
	cfg     appConfig
	filter  *filter.Filter
	window  limiter.Window
	maxRows int
	tables  []string
	json    string
	timeout time.Duration
	log     *logr.Logger
}

func (v *viewer) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if v.timeout > 0 {
		return context.WithTimeout(ctx, v.timeout)
	}
	return context.WithCancel(ctx)
}

func (v *viewer) renderOptions(title string, total int) render.Options {
	return render.Options{
		MaxRows:     v.maxRows,
		Title:       title,
		TotalRows:   total,
		FullContent: v.run.FullContent,
		Width:       v.run.Width,
		Color:       !v.run.NoColor,
	}
}

// listing prints every selected table, separated by blank lines, or one JSON
// object keyed by table name.
func (v *viewer) listing(ctx context.Context) error {
	tables, err := v.selectTables(ctx)
	if err != nil {
		return err
	}

	var docs []jsonout.Table
	for i, name := range tables {
		rows, total, err := v.fetchTable(ctx, name)
		if err != nil {
			return err
		}
		if v.json != "" {
			docs = append(docs, jsonout.Table{Name: name, Rows: limiter.Apply(limiter.Window{Limit: v.maxRows}, rows)})
			continue
		}
		if i > 0 {
			if _, err := fmt.Fprintln(v.out); err != nil {
				return err
			}
		}
		if err := render.Render(v.out, rows, v.renderOptions(name, total)); err != nil {
			return err
		}
	}

	if v.json != "" {
		return jsonout.Write(v.out, jsonout.Listing(docs), v.json == "color")
	}
	if len(tables) == 0 {
		return render.Render(v.out, nil, v.renderOptions("", 0))
	}
	return nil
}

// selectTables returns the tables named with --table, in that order, or all
// tables not excluded by the config.
func (v *viewer) selectTables(ctx context.Context) ([]string, error) {
	tctx, cancel := v.withTimeout(ctx)
	defer cancel()
	all, err := v.src.ListTables(tctx)
	if err != nil {
		return nil, dbError{err}
	}

	if len(v.tables) > 0 {
		known := make(map[string]bool, len(all))
		for _, name := range all {
			known[name] = true
		}
		for _, name := range v.tables {
			if !known[name] {
				return nil, usageError{fmt.Errorf("table %q not found", name)}
			}
		}
		return v.tables, nil
	}

	out := make([]string, 0, len(all))
	for _, name := range all {
		if !v.cfg.excluded(name) {
			out = append(out, name)
		}
	}
	return out, nil
}

// fetchTable reads the rows of one table and the number of rows the window
// covers. Without a filter only the rows that will be shown are fetched.
func (v *viewer) fetchTable(ctx context.Context, name string) ([]render.Row, int, error) {
	start := time.Now()
	tctx, cancel := v.withTimeout(ctx)
	defer cancel()

	count, err := v.src.Count(tctx, name)
	if err != nil {
		return nil, 0, dbError{err}
	}
	window := v.window.Resolve(count)
	w := window
	if v.filter == nil {
		w = window.Cap(v.maxRows)
	}
	res, err := v.src.Fetch(tctx, name, w)
	if err != nil {
		return nil, 0, dbError{err}
	}

	rows := res.Rows
	total := windowTotal(count, window)
	if v.filter != nil {
		if rows, err = v.filter.Apply(rows); err != nil {
			return nil, 0, fmt.Errorf("table %s: %w", name, err)
		}
		total = len(rows)
	}
	v.log.V(1).Info("fetched table", logger.TableKey, name, logger.RowsKey, len(rows), logger.DurationKey, time.Since(start).String())
	return rows, total, nil
}

// windowTotal is the number of rows of a count-row table that w selects.
func windowTotal(count int, w limiter.Window) int {
	total := max(count-w.Offset, 0)
	if w.Limit > 0 {
		total = min(total, w.Limit)
	}
	return total
}

// statement runs a piped statement and prints its result untitled.
func (v *viewer) statement(ctx context.Context, stmt string) error {
	start := time.Now()
	qctx, cancel := v.withTimeout(ctx)
	defer cancel()

	res, err := v.src.Query(qctx, stmt)
	if err != nil {
		return dbError{err}
	}
	v.log.V(1).Info("ran statement", logger.RowsKey, len(res.Rows), logger.DurationKey, time.Since(start).String())

	if len(res.Columns) == 0 {
		if run, ok := settings.FromContext(ctx); ok && run.IsQuiet {
			return nil
		}
		_, err := fmt.Fprintf(v.errOut, "%d %s affected\n", res.RowsAffected, plural(res.RowsAffected, "row"))
		return err
	}

	rows := limiter.Apply(v.window, res.Rows)
	if rows, err = v.filter.Apply(rows); err != nil {
		return err
	}
	if v.json != "" {
		return jsonout.Write(v.out, jsonout.Rows(limiter.Apply(limiter.Window{Limit: v.maxRows}, rows)), v.json == "color")
	}
	return render.Render(v.out, rows, v.renderOptions("", 0))
}

func plural(n int64, noun string) string {
	if n == 1 {
		return noun
	}
	return noun + "s"
}
