package employeedb

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"modernc.org/sqlite"
)

const sqliteDateLayout = "2006-01-02"

// SQLiteTimestampFormats are the timestamp layouts SQLite's date functions
// understand. When parsing a string from a date or datetime column, the
// formats are tried in order.
//
// Reference: https://github.com/mattn/go-sqlite3/blob/348128fdcf102af8b9f51fb26ae41c4d7438f1ca/sqlite3.go#L224C1-L240C2
var SQLiteTimestampFormats = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	sqliteDateLayout,
}

// MySQL-style helpers people tend to type into the query box.
// NULL arguments give NULL, as in MySQL.
func init() {
	datePart := func(part func(time.Time) int) func(*sqlite.FunctionContext, []driver.Value) (driver.Value, error) {
		return func(ctx *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
			d, ok, err := parseSqliteDate(args[0])
			if err != nil || !ok {
				return nil, err
			}
			return int64(part(d)), nil
		}
	}

	sqlite.MustRegisterFunction("YEAR", &sqlite.FunctionImpl{
		NArgs:         1,
		Deterministic: true,
		Scalar:        datePart(time.Time.Year),
	})

	sqlite.MustRegisterFunction("MONTH", &sqlite.FunctionImpl{
		NArgs:         1,
		Deterministic: true,
		Scalar: datePart(func(t time.Time) int {
			return int(t.Month())
		}),
	})

	sqlite.MustRegisterFunction("DAY", &sqlite.FunctionImpl{
		NArgs:         1,
		Deterministic: true,
		Scalar:        datePart(time.Time.Day),
	})

	sqlite.MustRegisterFunction("IF", &sqlite.FunctionImpl{
		NArgs:         3,
		Deterministic: true,
		Scalar: func(ctx *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
			cond, err := truthy(args[0])
			if err != nil {
				return nil, err
			}
			if cond {
				return args[1], nil
			}
			return args[2], nil
		},
	})

	sqlite.MustRegisterFunction("LEFT", &sqlite.FunctionImpl{
		NArgs:         2,
		Deterministic: true,
		Scalar: func(ctx *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
			str, n, ok, err := substringArgs(args)
			if err != nil || !ok {
				return nil, err
			}
			return leftRunes(str, n)
		},
	})

	sqlite.MustRegisterFunction("RIGHT", &sqlite.FunctionImpl{
		NArgs:         2,
		Deterministic: true,
		Scalar: func(ctx *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
			str, n, ok, err := substringArgs(args)
			if err != nil || !ok {
				return nil, err
			}
			return rightRunes(str, n)
		},
	})
}

// parseSqliteDate reads a date argument. ok is false for NULL and for text
// that matches none of SQLiteTimestampFormats.
func parseSqliteDate(arg driver.Value) (time.Time, bool, error) {
	var s string
	switch d := arg.(type) {
	case nil:
		return time.Time{}, false, nil
	case time.Time:
		return d, true, nil
	case string:
		s = d
	case []byte:
		s = string(d)
	default:
		return time.Time{}, false, fmt.Errorf("invalid date type: %T", arg)
	}

	s = strings.TrimSuffix(strings.TrimSpace(s), "Z")
	for _, format := range SQLiteTimestampFormats {
		if parsed, err := time.ParseInLocation(format, s, time.UTC); err == nil {
			return parsed, true, nil
		}
	}

	return time.Time{}, false, nil
}

// substringArgs converts the (str, n) arguments of LEFT and RIGHT.
// Non-text values are used in their text form, so LEFT(Id, 1) works.
func substringArgs(args []driver.Value) (str string, n int64, ok bool, err error) {
	if args[0] == nil || args[1] == nil {
		return "", 0, false, nil
	}

	n, isInt := args[1].(int64)
	if !isInt {
		return "", 0, false, fmt.Errorf("invalid argument type: %T", args[1])
	}

	var v Value
	if err := v.Scan(args[0]); err != nil {
		return "", 0, false, err
	}

	return v.String(), n, true, nil
}

func truthy(v driver.Value) (bool, error) {
	switch c := v.(type) {
	case nil:
		return false, nil
	case bool:
		return c, nil
	case int64:
		return c != 0, nil
	case float64:
		return c != 0, nil
	default:
		return false, fmt.Errorf("invalid argument type: %T", v)
	}
}

func leftRunes(s string, n int64) (string, error) {
	if n < 0 {
		return "", fmt.Errorf("negative length: %d", n)
	}
	r := []rune(s)
	if int(n) >= len(r) {
		return s, nil
	}
	return string(r[:n]), nil
}

func rightRunes(s string, n int64) (string, error) {
	if n < 0 {
		return "", fmt.Errorf("negative length: %d", n)
	}
	r := []rune(s)
	if int(n) >= len(r) {
		return s, nil
	}
	return string(r[len(r)-int(n):]), nil
}
