package render

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

const ellipsis = "…"

// widthCond measures display width independently of the locale, so box
// glyphs and the ellipsis always count as one column.
var widthCond = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	c.StrictEmojiNeutral = true
	return c
}()

var wrapTokens = regexp.MustCompile(`\s+|\S+`)

// DisplayWidth returns the number of terminal columns s occupies.
func DisplayWidth(s string) int {
	return widthCond.StringWidth(s)
}

// Truncate shortens s so its display width is at most maxWidth, marking the
// cut with an ellipsis. Text that already fits is returned unchanged.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if DisplayWidth(s) <= maxWidth {
		return s
	}
	runes := []rune(s)
	lo, hi := 0, len(runes)
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if DisplayWidth(string(runes[:mid]))+1 <= maxWidth {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return string(runes[:lo]) + ellipsis
}

// Wrap flows s into lines no wider than maxWidth. Newlines are treated as
// spaces; runs of whitespace inside a line are kept as written. A word wider
// than maxWidth is split at the last rune that fits; a glyph wider than
// maxWidth on its own becomes an ellipsis.
func Wrap(s string, maxWidth int) []string {
	s = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ").Replace(s)
	if maxWidth <= 0 {
		return []string{""}
	}

	var (
		lines  []string
		line   strings.Builder
		lineW  int
		isLine bool
	)
	flush := func() {
		lines = append(lines, strings.TrimRightFunc(line.String(), unicode.IsSpace))
		line.Reset()
		lineW = 0
		isLine = false
	}

	for _, tok := range wrapTokens.FindAllString(s, -1) {
		tw := DisplayWidth(tok)
		if lineW+tw <= maxWidth {
			line.WriteString(tok)
			lineW += tw
			isLine = true
			continue
		}
		if strings.TrimSpace(tok) == "" {
			// whitespace that overflows ends the line and is dropped
			if isLine {
				flush()
			}
			continue
		}
		if isLine {
			flush()
		}
		for tw > maxWidth {
			head, n := cutPrefix(tok, maxWidth)
			lines = append(lines, head)
			tok = tok[n:]
			tw = DisplayWidth(tok)
		}
		if tok != "" {
			line.WriteString(tok)
			lineW = tw
			isLine = true
		}
	}
	if isLine || len(lines) == 0 {
		flush()
	}
	return lines
}

// cutPrefix returns the longest prefix of s no wider than maxWidth and the
// number of bytes it consumed. A leading glyph wider than maxWidth is
// consumed and stands as an ellipsis.
func cutPrefix(s string, maxWidth int) (string, int) {
	w := 0
	for i, r := range s {
		rw := widthCond.RuneWidth(r)
		if w+rw > maxWidth {
			if i == 0 {
				_, size := utf8.DecodeRuneInString(s)
				return ellipsis, size
			}
			return s[:i], i
		}
		w += rw
	}
	return s, len(s)
}

func padRight(s string, width int) string {
	w := DisplayWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

func padLeft(s string, width int) string {
	w := DisplayWidth(s)
	if w >= width {
		return s
	}
	return strings.Repeat(" ", width-w) + s
}

// fit truncates and pads s to exactly width display columns.
func fit(s string, width int, right bool) string {
	s = Truncate(s, width)
	if right {
		return padLeft(s, width)
	}
	return padRight(s, width)
}
