package render

import (
	"fmt"
	"math"
	"strings"
)

const (
	// FallbackWidth is used when the caller does not know the terminal width.
	FallbackWidth = 120

	// minColumnWidth is the floor a visible column may be compressed to.
	minColumnWidth = 3

	// outerOverhead covers "│ " and " │" around the content.
	outerOverhead = 4
	// separatorWidth is the " │ " between two columns.
	separatorWidth = 3
	// titleDecoration is the border kept around the title: "─ " before, " ─" after,
	// minus the two corner cells already outside the content.
	titleDecoration = 2

	minTableWidth = outerOverhead + minColumnWidth
)

// Layout is the per-render column geometry.
type Layout struct {
	// Widths holds the final display width of each visible column.
	Widths []int
	// HiddenColumns counts the columns dropped from the right.
	HiddenColumns int
	// HiddenRows counts the rows not drawn because of the row cap.
	HiddenRows int
	// ContentWidth is the width between "│ " and " │".
	ContentWidth int
}

// Visible returns the number of columns drawn.
func (l Layout) Visible() int {
	return len(l.Widths)
}

// NeedsTrailer reports whether an overflow notice is drawn under the rows.
func (l Layout) NeedsTrailer() bool {
	return l.HiddenRows > 0 || l.HiddenColumns > 0
}

// Trailer returns the overflow notice, e.g. "... 7 more rows, 2 more columns".
func (l Layout) Trailer() string {
	var parts []string
	if l.HiddenRows > 0 {
		parts = append(parts, plural(l.HiddenRows, "row"))
	}
	if l.HiddenColumns > 0 {
		parts = append(parts, plural(l.HiddenColumns, "column"))
	}
	if len(parts) == 0 {
		return ""
	}
	return "... " + strings.Join(parts, ", ")
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 more %s", noun)
	}
	return fmt.Sprintf("%d more %ss", n, noun)
}

func borderOverhead(columns int) int {
	return outerOverhead + separatorWidth*(columns-1)
}

// computeLayout decides how many trailing columns to hide and how wide each
// remaining column is so that the table fits termWidth. naturalWidths already
// include the header width of each column.
func computeLayout(headerWidths, naturalWidths []int, titleWidth, termWidth int) Layout {
	if termWidth < minTableWidth {
		termWidth = minTableWidth
	}
	total := len(naturalWidths)
	if total == 0 {
		return Layout{}
	}

	visible := total
	available := termWidth - borderOverhead(visible)
	for visible > 1 && minColumnWidth*visible > available {
		visible--
		available = termWidth - borderOverhead(visible)
	}

	widths := make([]int, visible)
	for i := range widths {
		widths[i] = max(naturalWidths[i], 1)
	}
	if sum(widths) > available {
		widths = compress(widths, headerWidths[:visible], available)
	}

	content := sum(widths) + separatorWidth*(visible-1)
	if titleWidth > 0 {
		want := min(titleWidth+titleDecoration, termWidth-outerOverhead)
		if want > content {
			widths[visible-1] += want - content
			content = want
		}
	}

	return Layout{
		Widths:        widths,
		HiddenColumns: total - visible,
		ContentWidth:  content,
	}
}

// compress fits natural widths into available. Each column gets a share
// proportional to the square root of its natural width, never below
// max(3, header width), then the widest column gives up one cell at a time.
func compress(natural, headerWidths []int, available int) []int {
	n := len(natural)
	widths := make([]int, n)
	headerFloors := make([]int, n)
	hardFloors := make([]int, n)

	var rootSum float64
	for _, w := range natural {
		rootSum += math.Sqrt(float64(w))
	}
	for i, w := range natural {
		hw := 0
		if i < len(headerWidths) {
			hw = headerWidths[i]
		}
		hardFloors[i] = minColumnWidth
		headerFloors[i] = max(minColumnWidth, hw)
		share := int(float64(available) * math.Sqrt(float64(w)) / rootSum)
		widths[i] = max(share, headerFloors[i])
	}

	shrinkWidest(widths, headerFloors, available)
	// Headers alone may not fit the terminal; then they are truncated like
	// any other cell.
	shrinkWidest(widths, hardFloors, available)
	return widths
}

// shrinkWidest takes one cell at a time from the widest column still above
// its floor until the total fits. The lowest index wins ties.
func shrinkWidest(widths, floors []int, available int) {
	for sum(widths) > available {
		idx := -1
		for i, w := range widths {
			if w <= floors[i] {
				continue
			}
			if idx < 0 || w > widths[idx] {
				idx = i
			}
		}
		if idx < 0 {
			return
		}
		widths[idx]--
	}
}

func sum(ws []int) int {
	total := 0
	for _, w := range ws {
		total += w
	}
	return total
}
