package employeedb

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
)

// ValueKind tags which field of a Value is set.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindInteger
	KindReal
	KindText
)

// Value is a single cell of a query result. The result schema is only known
// once the query has run, so every cell carries its own type.
type Value struct {
	Kind    ValueKind
	Integer int64
	Real    float64
	Text    string
}

func NullValue() Value {
	return Value{Kind: KindNull}
}

func IntegerValue(v int64) Value {
	return Value{Kind: KindInteger, Integer: v}
}

func RealValue(v float64) Value {
	return Value{Kind: KindReal, Real: v}
}

func TextValue(v string) Value {
	return Value{Kind: KindText, Text: v}
}

// Scan implements sql.Scanner. BLOBs are surfaced as text of their raw bytes
// and booleans as 0/1. The driver hands DATE/DATETIME/TIMESTAMP columns over
// as time.Time; they are turned back into the text SQLite stores.
func (v *Value) Scan(src any) error {
	switch s := src.(type) {
	case nil:
		*v = NullValue()
	case int64:
		*v = IntegerValue(s)
	case float64:
		*v = RealValue(s)
	case bool:
		if s {
			*v = IntegerValue(1)
		} else {
			*v = IntegerValue(0)
		}
	case []byte:
		*v = TextValue(string(s))
	case string:
		*v = TextValue(s)
	case time.Time:
		*v = TextValue(formatTime(s))
	default:
		*v = TextValue(fmt.Sprintf("%v", src))
	}

	return nil
}

// formatTime renders t in the shortest of the SQLite timestamp layouts that
// keeps every component: date only at midnight UTC, fractional seconds when
// present, and the offset when it is not zero.
func formatTime(t time.Time) string {
	_, offset := t.Zone()
	if offset == 0 && t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format(sqliteDateLayout)
	}

	layout := "2006-01-02 15:04:05"
	if t.Nanosecond() != 0 {
		layout += ".999999999"
	}
	if offset != 0 {
		layout += "-07:00"
	}
	return t.Format(layout)
}

func (v Value) String() string {
	switch v.Kind {
	case KindInteger:
		return strconv.FormatInt(v.Integer, 10)
	case KindReal:
		return strconv.FormatFloat(v.Real, 'f', -1, 64)
	case KindText:
		return v.Text
	default:
		return "NULL"
	}
}

// MarshalJSON encodes the value as a bare JSON null, number or string.
// Non-finite reals have no JSON number form and are encoded as strings.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindInteger:
		return []byte(strconv.FormatInt(v.Integer, 10)), nil
	case KindReal:
		if math.IsInf(v.Real, 0) || math.IsNaN(v.Real) {
			return json.Marshal(strconv.FormatFloat(v.Real, 'f', -1, 64))
		}
		return json.Marshal(v.Real)
	case KindText:
		return json.Marshal(v.Text)
	default:
		return []byte("null"), nil
	}
}

var _ sql.Scanner = &Value{}
