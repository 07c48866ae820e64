// Package limiter selects which window of rows is fetched and shown.
package limiter

import (
	"fmt"
)

// Window holds the record-limiting parameters.
type Window struct {
	Limit  int // Show only this many rows (0 = unlimited)
	Offset int // Skip the first N rows (0 = no skip)
	Tail   int // Show only the last N rows (0 = disabled); mutually exclusive with Limit
}

// Validate checks for conflicting flag combinations and returns an error if invalid.
// Rules:
// - Limit and Tail are mutually exclusive
// - If Tail is set, Offset is ignored
// - All numeric values must be non-negative
func (w Window) Validate() error {
	if w.Limit < 0 {
		return fmt.Errorf("--limit must be non-negative, got %d", w.Limit)
	}
	if w.Offset < 0 {
		return fmt.Errorf("--offset must be non-negative, got %d", w.Offset)
	}
	if w.Tail < 0 {
		return fmt.Errorf("--tail must be non-negative, got %d", w.Tail)
	}
	if w.Limit > 0 && w.Tail > 0 {
		return fmt.Errorf("--limit and --tail are mutually exclusive")
	}
	return nil
}

// IsActive returns true if any limiting is configured.
func (w Window) IsActive() bool {
	return w.Limit > 0 || w.Offset > 0 || w.Tail > 0
}

// Cap returns a copy whose Limit is at most n. A zero n leaves it unchanged.
// Resolve tail windows before capping them.
func (w Window) Cap(n int) Window {
	if n <= 0 {
		return w
	}
	if w.Limit == 0 || w.Limit > n {
		w.Limit = n
	}
	return w
}

// Resolve turns a tail request into a plain offset/limit pair for a source
// holding total rows, so it can be pushed down into a query.
func (w Window) Resolve(total int) Window {
	if w.Tail <= 0 {
		return w
	}
	start := max(total-w.Tail, 0)
	return Window{Offset: start, Limit: total - start}
}

// Bounds returns the [start, end) indices the window selects out of length rows.
func (w Window) Bounds(length int) (int, int) {
	if w.Tail > 0 {
		return max(length-w.Tail, 0), length
	}
	start := min(w.Offset, length)
	end := length
	if w.Limit > 0 {
		end = min(start+w.Limit, length)
	}
	return start, end
}

// Apply returns the rows selected by the window.
func Apply[T any](w Window, rows []T) []T {
	if !w.IsActive() {
		return rows
	}
	start, end := w.Bounds(len(rows))
	return rows[start:end]
}
