// Package filter selects rows with a CEL predicate such as
// `row.age > 30 && row.name.startsWith("a")`.
package filter

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	celext "github.com/google/cel-go/ext"

	"github.com/oakwood-commons/dbview/internal/render"
)

// ErrNotBoolean is returned when a predicate yields something other than a bool.
var ErrNotBoolean = errors.New("filter expression must evaluate to a boolean")

// Filter is a compiled row predicate. A nil *Filter matches every row.
type Filter struct {
	expr string
	prg  cel.Program
}

func newEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("row", cel.MapType(cel.StringType, cel.DynType)),
		celext.Strings(),
		celext.Encoders(),
		celext.Lists(),
		celext.Math(),
	)
}

// Compile parses and type-checks expr.
func Compile(expr string) (*Filter, error) {
	env, err := newEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compilation error: %w", issues.Err())
	}
	if out := ast.OutputType(); !out.IsExactType(types.BoolType) && !out.IsExactType(types.DynType) {
		return nil, fmt.Errorf("%w, got %s", ErrNotBoolean, out)
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}
	return &Filter{expr: expr, prg: prg}, nil
}

// String returns the source expression.
func (f *Filter) String() string {
	if f == nil {
		return ""
	}
	return f.expr
}

// Match reports whether row satisfies the predicate.
func (f *Filter) Match(row render.Row) (bool, error) {
	if f == nil {
		return true, nil
	}
	out, _, err := f.prg.Eval(map[string]any{"row": activation(row)})
	if err != nil {
		return false, fmt.Errorf("eval error: %w", err)
	}
	b, ok := out.(types.Bool)
	if !ok {
		return false, fmt.Errorf("%w, got %s", ErrNotBoolean, out.Type())
	}
	return bool(b), nil
}

// Apply returns the rows that match, preserving order.
func (f *Filter) Apply(rows []render.Row) ([]render.Row, error) {
	if f == nil {
		return rows, nil
	}
	out := make([]render.Row, 0, len(rows))
	for i, row := range rows {
		ok, err := f.Match(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		if ok {
			out = append(out, row)
		}
	}
	return out, nil
}

func activation(row render.Row) map[string]any {
	m := make(map[string]any, len(row.Keys))
	for _, k := range row.Keys {
		v, _ := row.Get(k)
		m[k] = celValue(v)
	}
	return m
}

// celValue maps a cell value onto a type the CEL runtime adapts natively.
func celValue(v any) any {
	switch x := v.(type) {
	case nil:
		return types.NullValue
	case string, bool, int64, float64, []byte, time.Time, time.Duration:
		return x
	case int:
		return int64(x)
	case int32:
		return int64(x)
	case int16:
		return int64(x)
	case int8:
		return int64(x)
	case uint64:
		return x
	case uint32:
		return uint64(x)
	case uint16:
		return uint64(x)
	case uint8:
		return uint64(x)
	case float32:
		return float64(x)
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return n
		}
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	case *big.Int:
		if x == nil {
			return types.NullValue
		}
		return x.String()
	}
	text, null := render.FormatValue(v)
	if null {
		return types.NullValue
	}
	return text
}
