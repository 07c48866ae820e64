package source

import (
	"math"
	"math/big"
	"strconv"
	"strings"
	"unicode/utf8"
)

// normalize converts a scanned driver value into one the renderer and the
// JSON writer understand. MySQL returns most columns as text bytes; those are
// parsed by their declared type so numbers stay numbers.
func normalize(v any, dbType string) any {
	switch x := v.(type) {
	case []byte:
		return fromBytes(x, strings.ToUpper(dbType))
	case uint64:
		if x > math.MaxInt64 {
			return new(big.Int).SetUint64(x)
		}
		return int64(x)
	default:
		return v
	}
}

func fromBytes(b []byte, dbType string) any {
	s := string(b)
	switch {
	case isIntegerType(dbType):
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
		if n, ok := new(big.Int).SetString(s, 10); ok {
			return n
		}
	case dbType == "FLOAT" || dbType == "DOUBLE" || dbType == "REAL":
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	case isBinaryType(dbType):
		return cloneBytes(b)
	}
	if utf8.Valid(b) {
		return s
	}
	return cloneBytes(b)
}

func isIntegerType(t string) bool {
	t = strings.TrimPrefix(t, "UNSIGNED ")
	switch t {
	case "TINYINT", "SMALLINT", "MEDIUMINT", "INT", "INTEGER", "BIGINT", "YEAR":
		return true
	}
	return false
}

func isBinaryType(t string) bool {
	switch t {
	case "BINARY", "VARBINARY", "BLOB", "TINYBLOB", "MEDIUMBLOB", "LONGBLOB", "BYTEA":
		return true
	}
	return false
}

// cloneBytes copies b since drivers may reuse the scan buffer.
func cloneBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
