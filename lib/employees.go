package employeedb

import (
	"context"
	"fmt"
	"log/slog"
)

const listEmployeesSQL = "SELECT Id, Name, Department, Email FROM Employees"

// ListEmployees returns every employee in the store's natural order.
func (s *Store) ListEmployees(ctx context.Context) ([]Employee, error) {
	ctx, span := tracer.Start(ctx, "Store.ListEmployees")
	defer span.End()

	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer closeDB(ctx, db)

	rows, err := db.QueryContext(ctx, listEmployeesSQL)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.WarnContext(ctx, "close result", slog.Any("error", err))
		}
	}()

	employees := []Employee{}
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.Id, &e.Name, &e.Department, &e.Email); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate employees: %w", err)
	}

	return employees, nil
}
