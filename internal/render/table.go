package render

import (
	"fmt"
	"io"
	"strings"
)

// EmptyText is drawn in place of a table that has no rows.
const EmptyText = "(empty)"

// Options controls a single render.
type Options struct {
	// MaxRows caps the rows drawn. Zero or negative means no cap.
	MaxRows int
	// Title is shown inside the top border when set.
	Title string
	// TotalRows is the true row count of the source. It only matters when it
	// exceeds the rows supplied, to report how many were left out.
	TotalRows int
	// FullContent wraps cell text instead of truncating it and separates rows
	// with a thin rule.
	FullContent bool
	// Width is the terminal width in columns. Zero means FallbackWidth.
	Width int
	// Color enables ANSI styling: dim borders and NULLs, bold header and title.
	Color bool
}

type cell struct {
	text string
	null bool
}

// Render writes the table for rows to w, one write per line. Lines written
// before a failing write stay written.
func Render(w io.Writer, rows []Row, opts Options) error {
	for _, line := range Lines(rows, opts) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// Lines returns the rendered table without trailing newlines. Every line has
// the same display width, never more than opts.Width unless opts.Width is
// below the 7-cell minimum table, which is drawn regardless.
func Lines(rows []Row, opts Options) []string {
	termWidth := opts.Width
	if termWidth <= 0 {
		termWidth = FallbackWidth
	}
	termWidth = max(termWidth, minTableWidth)
	p := palette{color: opts.Color}
	title := flatten(opts.Title, false)

	columns := Columns(rows)
	if len(rows) == 0 || len(columns) == 0 {
		return emptyLines(title, termWidth, p)
	}

	shown := rows
	if opts.MaxRows > 0 && len(shown) > opts.MaxRows {
		shown = shown[:opts.MaxRows]
	}

	headers := make([]string, len(columns))
	headerWidths := make([]int, len(columns))
	natural := make([]int, len(columns))
	numeric := make([]bool, len(columns))
	for j, col := range columns {
		headers[j] = flatten(col, false)
		headerWidths[j] = DisplayWidth(headers[j])
		natural[j] = headerWidths[j]
		numeric[j] = true
	}

	cells := make([][]cell, len(shown))
	for i, row := range shown {
		cells[i] = make([]cell, len(columns))
		for j, col := range columns {
			v, _ := row.Get(col)
			text, null := cellText(v, opts.FullContent)
			cells[i][j] = cell{text: text, null: null}
			natural[j] = max(natural[j], DisplayWidth(text))
			if !IsNumeric(v) {
				numeric[j] = false
			}
		}
	}

	layout := computeLayout(headerWidths, natural, DisplayWidth(title), termWidth)
	layout.HiddenRows = max(len(rows), opts.TotalRows) - len(shown)

	t := table{layout: layout, numeric: numeric, palette: p, full: opts.FullContent}
	return t.draw(title, headers, cells)
}

func emptyLines(title string, termWidth int, p palette) []string {
	if title == "" {
		return []string{EmptyText}
	}
	content := max(DisplayWidth(EmptyText), DisplayWidth(title)+titleDecoration)
	content = min(content, termWidth-outerOverhead)
	t := table{
		layout:  Layout{Widths: []int{content}, ContentWidth: content},
		palette: p,
	}
	return []string{
		t.top(title, box.horizontal),
		t.span(EmptyText),
		t.spanBottom(),
	}
}

type table struct {
	layout  Layout
	numeric []bool
	palette palette
	full    bool
}

func (t table) draw(title string, headers []string, cells [][]cell) []string {
	widths := t.layout.Widths
	lines := make([]string, 0, len(cells)+6)

	lines = append(lines, t.top(title, box.topTee))

	headerCells := make([]string, len(widths))
	for j, w := range widths {
		headerCells[j] = t.palette.bold(fit(headers[j], w, t.numeric[j]))
	}
	lines = append(lines, t.join(headerCells))
	lines = append(lines, t.rule(box.leftTee, box.horizontal, box.cross, box.rightTee))

	for i, row := range cells {
		if t.full && i > 0 {
			lines = append(lines, t.rule(box.leftTee, box.thin, box.cross, box.rightTee))
		}
		lines = append(lines, t.dataLines(row)...)
	}

	if t.layout.NeedsTrailer() {
		lines = append(lines, t.rule(box.leftTee, box.horizontal, box.bottomTee, box.rightTee))
		lines = append(lines, t.span(t.layout.Trailer()))
		lines = append(lines, t.spanBottom())
		return lines
	}
	return append(lines, t.rule(box.bottomLeft, box.horizontal, box.bottomTee, box.bottomRight))
}

// dataLines renders one row. Without wrapping that is always a single line;
// in full-content mode the tallest cell decides the height.
func (t table) dataLines(row []cell) []string {
	widths := t.layout.Widths
	if !t.full {
		parts := make([]string, len(widths))
		for j, w := range widths {
			parts[j] = t.cell(row[j], row[j].text, w, j)
		}
		return []string{t.join(parts)}
	}

	wrapped := make([][]string, len(widths))
	height := 1
	for j, w := range widths {
		wrapped[j] = Wrap(row[j].text, w)
		height = max(height, len(wrapped[j]))
	}
	lines := make([]string, height)
	for k := range lines {
		parts := make([]string, len(widths))
		for j, w := range widths {
			text := ""
			if k < len(wrapped[j]) {
				text = wrapped[j][k]
			}
			parts[j] = t.cell(row[j], text, w, j)
		}
		lines[k] = t.join(parts)
	}
	return lines
}

func (t table) cell(c cell, text string, width, col int) string {
	s := fit(text, width, t.numeric[col])
	if c.null {
		return t.palette.dim(s)
	}
	return s
}

func (t table) join(parts []string) string {
	bar := t.palette.dim(box.vertical)
	return bar + " " + strings.Join(parts, " "+bar+" ") + " " + bar
}

func (t table) rule(left, fill, join, right string) string {
	return t.palette.dim(rule(t.layout.Widths, left, fill, join, right))
}

// span draws text across the full content width, ignoring columns.
func (t table) span(text string) string {
	bar := t.palette.dim(box.vertical)
	return bar + " " + fit(text, t.layout.ContentWidth, false) + " " + bar
}

func (t table) spanBottom() string {
	return t.palette.dim(rule([]int{t.layout.ContentWidth}, box.bottomLeft, box.horizontal, "", box.bottomRight))
}

// top draws the upper border with the title set into it: "╭─ users ──┬──╮".
func (t table) top(title, join string) string {
	plain := rule(t.layout.Widths, box.topLeft, box.horizontal, join, box.topRight)
	if title == "" {
		return t.palette.dim(plain)
	}
	title = Truncate(title, t.layout.ContentWidth-titleDecoration)
	tw := DisplayWidth(title)
	if tw == 0 {
		return t.palette.dim(plain)
	}
	// Border glyphs are one column and one rune each, so columns index runes.
	rest := []rune(plain)[tw+4:]
	return t.palette.dim(box.topLeft+box.horizontal) + " " + t.palette.bold(title) + " " + t.palette.dim(string(rest))
}
