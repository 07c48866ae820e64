// Package render draws row sets as box-drawn, width-constrained terminal tables.
//
// Rendering is a pure function of the rows and Options: terminal width and
// color capability are inputs, never probed here.
package render

// Row is a single record keyed by column name. Keys carries the column order;
// Values may lack a key, in which case the cell renders as NULL.
type Row struct {
	Keys   []string
	Values map[string]any
}

// NewRow builds a Row from parallel key and value slices. Extra values are
// dropped; missing values are treated as NULL.
func NewRow(keys []string, values []any) Row {
	r := Row{
		Keys:   keys,
		Values: make(map[string]any, len(keys)),
	}
	for i, k := range keys {
		if i < len(values) {
			r.Values[k] = values[i]
		}
	}
	return r
}

// Get returns the value stored for key and whether it was present.
func (r Row) Get(key string) (any, bool) {
	if r.Values == nil {
		return nil, false
	}
	v, ok := r.Values[key]
	return v, ok
}

// Columns returns the column order of a batch, taken from its first row.
func Columns(rows []Row) []string {
	if len(rows) == 0 {
		return nil
	}
	return rows[0].Keys
}
