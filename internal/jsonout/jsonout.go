// Package jsonout writes result sets as indented JSON, keeping column and
// table order, optionally colorized for the terminal.
package jsonout

import (
	"encoding/json"
	"io"
	"math"
	"math/big"
	"time"

	"charm.land/lipgloss/v2"
	jsoniter "github.com/json-iterator/go"

	"github.com/oakwood-commons/dbview/internal/render"
)

// Table is one named result set of a listing.
type Table struct {
	Name string
	Rows []render.Row
}

// Document is what gets written: either a listing of tables, encoded as an
// object keyed by table name, or the rows of a single statement, encoded as
// an array.
type Document struct {
	tables  []Table
	listing bool
}

// Listing builds a document for several tables.
func Listing(tables []Table) Document {
	return Document{tables: tables, listing: true}
}

// Rows builds a document for a single result set.
func Rows(rows []render.Row) Document {
	return Document{tables: []Table{{Rows: rows}}}
}

var api = jsoniter.Config{
	IndentionStep:          2,
	EscapeHTML:             false,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
}.Froze()

// compact encodes nested values on a single line.
var compact = jsoniter.Config{EscapeHTML: false, SortMapKeys: true}.Froze()

var (
	keyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	stringStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	numberStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	boolStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	nullStyle   = lipgloss.NewStyle().Faint(true)
)

// Write encodes doc to w followed by a newline.
func Write(w io.Writer, doc Document, color bool) error {
	e := &encoder{stream: jsoniter.NewStream(api, w, 4096), color: color}
	if doc.listing {
		e.listing(doc.tables)
	} else {
		var rows []render.Row
		if len(doc.tables) > 0 {
			rows = doc.tables[0].Rows
		}
		e.rows(rows)
	}
	e.stream.WriteRaw("\n")
	if e.stream.Error != nil {
		return e.stream.Error
	}
	return e.stream.Flush()
}

type encoder struct {
	stream *jsoniter.Stream
	color  bool
}

func (e *encoder) listing(tables []Table) {
	if len(tables) == 0 {
		e.stream.WriteEmptyObject()
		return
	}
	e.stream.WriteObjectStart()
	for i, t := range tables {
		if i > 0 {
			e.stream.WriteMore()
		}
		e.field(t.Name)
		e.rows(t.Rows)
	}
	e.stream.WriteObjectEnd()
}

func (e *encoder) rows(rows []render.Row) {
	if len(rows) == 0 {
		e.stream.WriteEmptyArray()
		return
	}
	e.stream.WriteArrayStart()
	for i, r := range rows {
		if i > 0 {
			e.stream.WriteMore()
		}
		e.row(r)
	}
	e.stream.WriteArrayEnd()
}

func (e *encoder) row(r render.Row) {
	if len(r.Keys) == 0 {
		e.stream.WriteEmptyObject()
		return
	}
	e.stream.WriteObjectStart()
	for i, k := range r.Keys {
		if i > 0 {
			e.stream.WriteMore()
		}
		e.field(k)
		v, _ := r.Get(k)
		e.value(v)
	}
	e.stream.WriteObjectEnd()
}

func (e *encoder) field(name string) {
	e.styled(keyStyle, quote(name))
	e.stream.WriteRaw(": ")
}

func (e *encoder) value(v any) {
	switch x := v.(type) {
	case nil:
		e.styled(nullStyle, "null")
	case bool:
		if x {
			e.styled(boolStyle, "true")
		} else {
			e.styled(boolStyle, "false")
		}
	case string:
		e.styled(stringStyle, quote(x))
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		text, _ := render.FormatValue(x)
		e.styled(numberStyle, text)
	case float32:
		e.float(float64(x))
	case float64:
		e.float(x)
	case *big.Int:
		if x == nil {
			e.styled(nullStyle, "null")
			return
		}
		e.styled(numberStyle, x.String())
	case json.Number:
		e.styled(numberStyle, x.String())
	case time.Time:
		e.styled(stringStyle, quote(x.Format(time.RFC3339Nano)))
	case map[string]any, []any:
		raw, err := compact.Marshal(x)
		if err != nil {
			e.stream.Error = err
			return
		}
		e.stream.WriteRaw(string(raw))
	default:
		text, null := render.FormatValue(v)
		if null {
			e.styled(nullStyle, "null")
			return
		}
		e.styled(stringStyle, quote(text))
	}
}

// float writes finite numbers as JSON numbers and NaN/Infinity as strings.
func (e *encoder) float(f float64) {
	text, _ := render.FormatValue(f)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		e.styled(stringStyle, quote(text))
		return
	}
	e.styled(numberStyle, text)
}

func (e *encoder) styled(s lipgloss.Style, text string) {
	if e.color {
		text = s.Render(text)
	}
	e.stream.WriteRaw(text)
}

func quote(s string) string {
	out, err := compact.MarshalToString(s)
	if err != nil {
		return `""`
	}
	return out
}
