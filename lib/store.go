// Package employeedb provides the SQLite store behind the employee API:
// schema setup and seeding, the employee listing, and an unsanitized
// passthrough for ad-hoc queries.
package employeedb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"golang.org/x/sync/singleflight"
	_ "modernc.org/sqlite"
)

var (
	tracer = otel.Tracer("employeedb")
	sf     = &singleflight.Group{}
)

// Store is a handle to the SQLite file holding the Employees table.
//
// It keeps no open connection: every operation opens its own
// and closes it before returning.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// open opens a new database handle. You should close it after using it.
func (s *Store) open() (*sql.DB, error) {
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	return db, nil
}

func closeDB(ctx context.Context, db *sql.DB) {
	if err := db.Close(); err != nil {
		slog.WarnContext(ctx, "close database", slog.Any("error", err))
	}
}

// Initialize creates the Employees table if needed and inserts the seed rows,
// skipping those whose email already exists. It is safe to call repeatedly;
// concurrent calls for the same file share one run.
func (s *Store) Initialize(ctx context.Context) error {
	_, err, _ := sf.Do(s.path, func() (any, error) {
		return nil, s.initialize(ctx)
	})
	return err
}

func (s *Store) initialize(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "Store.Initialize")
	defer span.End()

	span.AddEvent("sqlite.open")
	db, err := s.open()
	if err != nil {
		return NewInitError(err)
	}
	defer closeDB(ctx, db)

	span.AddEvent("schema.create")
	if _, err := db.ExecContext(ctx, createTableSQL); err != nil {
		return NewInitError(fmt.Errorf("create table: %w", err))
	}

	span.AddEvent("seed.insert")
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return NewInitError(fmt.Errorf("begin: %w", err))
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, seedSQL)
	if err != nil {
		return NewInitError(fmt.Errorf("prepare seed: %w", err))
	}
	defer func() { _ = stmt.Close() }()

	inserted := int64(0)
	for _, e := range SeedEmployees {
		res, err := stmt.ExecContext(ctx, e.Name, e.Department, e.Email)
		if err != nil {
			return NewInitError(fmt.Errorf("seed %s: %w", e.Email, err))
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += n
		}
	}

	if err := tx.Commit(); err != nil {
		return NewInitError(fmt.Errorf("commit: %w", err))
	}

	slog.InfoContext(ctx, "store initialized",
		slog.String("path", s.path),
		slog.Int64("seeded", inserted))

	return nil
}
