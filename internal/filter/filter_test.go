package filter

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/dbview/internal/render"
)

func userRows() []render.Row {
	keys := []string{"id", "name", "age", "email", "joined"}
	joined := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	return []render.Row{
		render.NewRow(keys, []any{int64(1), "alice", int64(34), "alice@example.com", joined}),
		render.NewRow(keys, []any{int64(2), "bob", int64(27), nil, joined.AddDate(0, 6, 0)}),
		render.NewRow(keys, []any{int64(3), "anna", int64(41), "anna@example.com", joined.AddDate(1, 0, 0)}),
	}
}

func names(t *testing.T, rows []render.Row) []string {
	t.Helper()
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		v, ok := r.Get("name")
		require.True(t, ok)
		out = append(out, v.(string))
	}
	return out
}

func TestApply(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want []string
	}{
		{"numeric comparison", "row.age > 30", []string{"alice", "anna"}},
		{"string function", `row.name.startsWith("a")`, []string{"alice", "anna"}},
		{"conjunction", `row.age > 30 && row.name != "alice"`, []string{"anna"}},
		{"null check", "row.email == null", []string{"bob"}},
		{"not null", "row.email != null", []string{"alice", "anna"}},
		{"timestamp", `row.joined >= timestamp("2024-06-01T00:00:00Z")`, []string{"bob", "anna"}},
		{"membership", "row.id in [1, 3]", []string{"alice", "anna"}},
		{"has key", "'email' in row", []string{"alice", "bob", "anna"}},
		{"nothing", "false", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Compile(tt.expr)
			require.NoError(t, err)
			got, err := f.Apply(userRows())
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(t, got))
		})
	}
}

func TestCompileErrors(t *testing.T) {
	_, err := Compile("row.age >")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compilation error")

	_, err = Compile("unknown.field == 1")
	require.Error(t, err)

	_, err = Compile(`"text"`)
	assert.ErrorIs(t, err, ErrNotBoolean)
}

func TestMatchNotBoolean(t *testing.T) {
	f, err := Compile("row.name")
	require.NoError(t, err)

	_, err = f.Match(userRows()[0])
	assert.ErrorIs(t, err, ErrNotBoolean)

	_, err = f.Apply(userRows())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 1")
}

func TestMatchMissingColumn(t *testing.T) {
	f, err := Compile("row.missing == 1")
	require.NoError(t, err)

	_, err = f.Match(userRows()[0])
	require.Error(t, err)
	assert.Contains(t, err.Error(), "eval error")
}

func TestNilFilterMatchesAll(t *testing.T) {
	var f *Filter
	ok, err := f.Match(userRows()[0])
	require.NoError(t, err)
	assert.True(t, ok)

	rows, err := f.Apply(userRows())
	require.NoError(t, err)
	assert.Len(t, rows, 3)
	assert.Equal(t, "", f.String())
}

func TestBigIntCompareAsString(t *testing.T) {
	n, _ := new(big.Int).SetString("18446744073709551615", 10)
	row := render.NewRow([]string{"big"}, []any{n})

	f, err := Compile(`row.big == "18446744073709551615"`)
	require.NoError(t, err)
	ok, err := f.Match(row)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCelValue(t *testing.T) {
	assert.Equal(t, int64(5), celValue(5))
	assert.Equal(t, uint64(5), celValue(uint8(5)))
	assert.Equal(t, float64(1.5), celValue(float32(1.5)))
	assert.Equal(t, "x", celValue("x"))
	assert.Equal(t, `{"a":1}`, celValue(map[string]int{"a": 1}))
}
