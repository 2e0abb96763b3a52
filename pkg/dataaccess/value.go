package dataaccess

import (
	"fmt"
	"strconv"
	"time"
)

// Kind discriminates the cell value variants.
type Kind int

const (
	KindNull Kind = iota
	KindInt
	KindFloat
	KindText
	KindBytes
	KindTime
)

// Value is a single result cell. The MySQL driver hands back loosely typed
// values per column; normalizing them into this sum type keeps rendering
// deterministic across the execute and describe paths.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
	b    []byte
	t    time.Time
}

func NullValue() Value            { return Value{kind: KindNull} }
func IntValue(i int64) Value      { return Value{kind: KindInt, i: i} }
func FloatValue(f float64) Value  { return Value{kind: KindFloat, f: f} }
func TextValue(s string) Value    { return Value{kind: KindText, s: s} }
func BytesValue(b []byte) Value   { return Value{kind: KindBytes, b: b} }
func TimeValue(t time.Time) Value { return Value{kind: KindTime, t: t} }

// FromDriver normalizes a value scanned from database/sql.
func FromDriver(v interface{}) Value {
	switch tv := v.(type) {
	case nil:
		return NullValue()
	case int64:
		return IntValue(tv)
	case float64:
		return FloatValue(tv)
	case string:
		return TextValue(tv)
	case []byte:
		return BytesValue(tv)
	case time.Time:
		return TimeValue(tv)
	case bool:
		if tv {
			return IntValue(1)
		}
		return IntValue(0)
	default:
		return TextValue(fmt.Sprintf("%v", tv))
	}
}

// Kind returns the populated variant.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the cell is SQL NULL.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Int returns the cell as an int64. The driver's text protocol delivers
// numeric cells as []byte for unprepared statements, so text and byte
// variants are parsed. Zero for NULL and unparseable cells.
func (v Value) Int() int64 {
	switch v.kind {
	case KindInt:
		return v.i
	case KindFloat:
		return int64(v.f)
	case KindText:
		n, _ := strconv.ParseInt(v.s, 10, 64)
		return n
	case KindBytes:
		n, _ := strconv.ParseInt(string(v.b), 10, 64)
		return n
	default:
		return 0
	}
}

// String renders the cell the way the MySQL text protocol would.
// NULL renders as "NULL". No quoting or escaping is applied.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "NULL"
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindText:
		return v.s
	case KindBytes:
		return string(v.b)
	case KindTime:
		return v.t.Format("2006-01-02 15:04:05")
	default:
		return ""
	}
}
