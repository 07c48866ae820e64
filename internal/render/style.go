package render

import (
	"strings"

	"charm.land/lipgloss/v2"
)

type borderChars struct {
	topLeft, topRight, bottomLeft, bottomRight string
	horizontal, thin, vertical                 string
	topTee, bottomTee, leftTee, rightTee       string
	cross                                      string
}

var box = borderChars{
	topLeft: "╭", topRight: "╮", bottomLeft: "╰", bottomRight: "╯",
	horizontal: "─", thin: "╌", vertical: "│",
	topTee: "┬", bottomTee: "┴", leftTee: "├", rightTee: "┤",
	cross: "┼",
}

var (
	dimStyle  = lipgloss.NewStyle().Faint(true)
	boldStyle = lipgloss.NewStyle().Bold(true)
)

// palette applies ANSI styling, or nothing at all when color is off.
type palette struct {
	color bool
}

func (p palette) dim(s string) string {
	if !p.color || s == "" {
		return s
	}
	return dimStyle.Render(s)
}

func (p palette) bold(s string) string {
	if !p.color || s == "" {
		return s
	}
	return boldStyle.Render(s)
}

// rule draws a horizontal border across the given column widths, e.g.
// "├────┼───────┤".
func rule(widths []int, left, fill, join, right string) string {
	var b strings.Builder
	b.WriteString(left)
	for i, w := range widths {
		if i > 0 {
			b.WriteString(join)
		}
		b.WriteString(strings.Repeat(fill, w+2))
	}
	b.WriteString(right)
	return b.String()
}
