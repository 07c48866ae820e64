package render

import (
	"database/sql/driver"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	jsoniter "github.com/json-iterator/go"
)

// NullText is the placeholder shown for NULL and missing values.
const NullText = "NULL"

var compositeJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// FormatValue returns the display text for a single cell value and whether the
// value is NULL. Strings are returned verbatim; arbitrary-precision integers
// carry an "n" suffix so they are distinguishable from plain numbers.
func FormatValue(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return NullText, true
	case string:
		return t, false
	case bool:
		return strconv.FormatBool(t), false
	case int:
		return strconv.Itoa(t), false
	case int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(t), false
	case float32:
		return formatFloat(float64(t), 32), false
	case float64:
		return formatFloat(t, 64), false
	case *big.Int:
		if t == nil {
			return NullText, true
		}
		return t.String() + "n", false
	case *big.Float:
		if t == nil {
			return NullText, true
		}
		return t.Text('f', -1), false
	case json.Number:
		return t.String(), false
	case time.Time:
		return t.Format(time.RFC3339Nano), false
	case []byte:
		if t == nil {
			return NullText, true
		}
		if utf8.Valid(t) {
			return string(t), false
		}
		return `\x` + hex.EncodeToString(t), false
	case driver.Valuer:
		dv, err := t.Value()
		if err != nil {
			return fmt.Sprintf("%v", t), false
		}
		return FormatValue(dv)
	}
	return inspect(v)
}

// inspect renders values outside the closed set of scalar kinds. Composites
// print as compact JSON literals, everything else through fmt.
func inspect(v any) (string, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() { //nolint:exhaustive // only pointers and composites need special handling
	case reflect.Ptr:
		if rv.IsNil() {
			return NullText, true
		}
		return FormatValue(rv.Elem().Interface())
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		if b, err := compositeJSON.Marshal(v); err == nil {
			return string(b), false
		}
	}
	return fmt.Sprintf("%v", v), false
}

func formatFloat(f float64, bits int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	abs := math.Abs(f)
	if abs != 0 && (abs >= 1e21 || abs < 1e-6) {
		return strconv.FormatFloat(f, 'g', -1, bits)
	}
	return strconv.FormatFloat(f, 'f', -1, bits)
}

// IsNumeric reports whether v counts towards a right-aligned column: NULL and
// every integer, float and arbitrary-precision kind.
func IsNumeric(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64,
		float32, float64, *big.Int, *big.Float, json.Number:
		return true
	case driver.Valuer:
		dv, err := t.Value()
		return err == nil && IsNumeric(dv)
	}
	return false
}

var controlReplacer = strings.NewReplacer("\r\n", "\n", "\r", "\n", "\t", " ")

// cellText formats v for a single table cell. In the default mode newlines
// are escaped as `\n`; in full-content mode they become spaces so Wrap can
// flow the text.
func cellText(v any, full bool) (string, bool) {
	text, null := FormatValue(v)
	return flatten(text, full), null
}

func flatten(text string, full bool) string {
	text = controlReplacer.Replace(text)
	if full {
		return strings.ReplaceAll(text, "\n", " ")
	}
	return strings.ReplaceAll(text, "\n", `\n`)
}
