package employeedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// errNoRowSet marks a statement that completed without producing columns.
var errNoRowSet = errors.New("statement produced no row set")

// UnsafeRunQuery executes query verbatim against the store.
//
// The text is neither parsed nor restricted: any statement the store accepts,
// including DDL and DML, is run. Do not expose it to untrusted callers.
//
// The statement runs on its own connection in autocommit mode, so statements
// that SQLite refuses inside a transaction (VACUUM, PRAGMA journal_mode)
// work. A transaction the text leaves open is committed before the
// connection is closed.
//
// Statements without a row set yield an acknowledgment result. Errors while
// fetching rows are also folded into the acknowledgment and only logged, so a
// SELECT that fails mid-iteration is reported as executed. Failures to open,
// execute or commit return a QueryError.
func (s *Store) UnsafeRunQuery(ctx context.Context, query string) (*QueryResult, error) {
	if query == "" {
		return nil, ErrMissingQuery
	}

	ctx, span := tracer.Start(ctx, "Store.UnsafeRunQuery")
	defer span.End()

	span.AddEvent("sqlite.open")
	db, err := s.open()
	if err != nil {
		return nil, NewQueryError(err)
	}
	defer closeDB(ctx, db)

	conn, err := db.Conn(ctx)
	if err != nil {
		return nil, NewQueryError(err)
	}
	defer func() { _ = conn.Close() }()

	span.AddEvent("sqlite.query")
	rows, err := conn.QueryContext(ctx, query)
	if err != nil {
		return nil, NewQueryError(err)
	}

	span.AddEvent("construct_result")
	result, err := fetchRows(rows)
	switch {
	case errors.Is(err, errNoRowSet):
		result = newAcknowledgedResult()
	case err != nil:
		slog.WarnContext(ctx, "fetch failed, reporting query as executed", slog.Any("error", err))
		span.RecordError(err)
		result = newAcknowledgedResult()
	}

	span.AddEvent("sqlite.commit")
	if err := commitOpenTx(ctx, conn); err != nil {
		return nil, NewQueryError(err)
	}

	return result, nil
}

// commitOpenTx commits a transaction the query text began and left open.
// In autocommit mode there is nothing to commit and SQLite says so.
func commitOpenTx(ctx context.Context, conn *sql.Conn) error {
	_, err := conn.ExecContext(ctx, "COMMIT")
	if err != nil && strings.Contains(err.Error(), "no transaction is active") {
		return nil
	}
	return err
}

// fetchRows drains and closes rows.
func fetchRows(rows *sql.Rows) (*QueryResult, error) {
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("get columns: %w", err)
	}
	if len(cols) == 0 {
		return nil, errNoRowSet
	}

	var result []Row
	for rows.Next() {
		cells := make([]Value, len(cols))
		dest := make([]any, len(cols))
		for i := range cells {
			dest[i] = &cells[i]
		}

		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}

		result = append(result, NewRow(cols, cells))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate: %w", err)
	}

	return newRowsResult(result), nil
}
