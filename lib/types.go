package employeedb

import (
	"bytes"
	"encoding/json"
)

// NoResultsMessage is the acknowledgment text for statements without a row set.
const NoResultsMessage = "Query executed (no results to fetch)"

// Employee is a row of the Employees table.
type Employee struct {
	Id         int64  `json:"Id"`
	Name       string `json:"Name"`
	Department string `json:"Department"`
	Email      string `json:"Email"`
}

// Acknowledgment is returned in place of rows when a statement
// produced no row set, e.g. INSERT, UPDATE or DDL.
type Acknowledgment struct {
	Message string `json:"message"`
}

// Row maps column names to values, keeping the column order
// reported by the store.
type Row struct {
	columns []string
	values  map[string]Value
}

// NewRow builds a row from parallel column and value slices.
// A repeated column name keeps its first position and its last value.
func NewRow(columns []string, values []Value) Row {
	row := Row{
		columns: make([]string, 0, len(columns)),
		values:  make(map[string]Value, len(columns)),
	}

	for i, col := range columns {
		if _, ok := row.values[col]; !ok {
			row.columns = append(row.columns, col)
		}
		row.values[col] = values[i]
	}

	return row
}

// Columns returns the column names in result order.
func (r Row) Columns() []string {
	return r.columns
}

// Get returns the value of the named column.
func (r Row) Get(column string) (Value, bool) {
	v, ok := r.values[column]
	return v, ok
}

// MarshalJSON encodes the row as a JSON object with keys in column order.
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, col := range r.columns {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(col)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		value, err := r.values[col].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// QueryResult is the outcome of an ad-hoc query: either the fetched rows or
// an acknowledgment when there was nothing to fetch.
type QueryResult struct {
	// Rows holds one entry per returned row; nil when Acknowledgment is set.
	Rows []Row
	// Acknowledgment is set when the statement produced no row set.
	Acknowledgment *Acknowledgment
}

func newRowsResult(rows []Row) *QueryResult {
	if rows == nil {
		rows = []Row{}
	}
	return &QueryResult{Rows: rows}
}

func newAcknowledgedResult() *QueryResult {
	return &QueryResult{Acknowledgment: &Acknowledgment{Message: NoResultsMessage}}
}

// HasRows reports whether the result carries a row set (possibly empty).
func (r *QueryResult) HasRows() bool {
	return r.Acknowledgment == nil
}

// MarshalJSON encodes the rows as a JSON array, or the acknowledgment as an object.
func (r *QueryResult) MarshalJSON() ([]byte, error) {
	if r.Acknowledgment != nil {
		return json.Marshal(r.Acknowledgment)
	}

	rows := r.Rows
	if rows == nil {
		rows = []Row{}
	}
	return json.Marshal(rows)
}
