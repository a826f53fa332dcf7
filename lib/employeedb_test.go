package employeedb_test

import (
	"context"
	"encoding/json"
	"path/filepath"
	"sync"
	"testing"

	employeedb "github.com/database-playground/employee-api/lib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t testing.TB) *employeedb.Store {
	t.Helper()

	store := employeedb.NewStore(filepath.Join(t.TempDir(), "employees.db"))
	require.NoError(t, store.Initialize(context.TODO()))

	return store
}

func TestInitialize(t *testing.T) {
	t.Parallel()

	t.Run("Idempotent", func(t *testing.T) {
		t.Parallel()

		store := newStore(t)
		for i := 0; i < 3; i++ {
			require.NoError(t, store.Initialize(context.TODO()))
		}

		employees, err := store.ListEmployees(context.TODO())
		require.NoError(t, err)
		assert.Len(t, employees, len(employeedb.SeedEmployees))
	})

	t.Run("Concurrent", func(t *testing.T) {
		t.Parallel()

		store := employeedb.NewStore(filepath.Join(t.TempDir(), "employees.db"))

		var wg sync.WaitGroup
		errs := make([]error, 8)
		for i := range errs {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs[i] = store.Initialize(context.TODO())
			}(i)
		}
		wg.Wait()

		for _, err := range errs {
			require.NoError(t, err)
		}

		employees, err := store.ListEmployees(context.TODO())
		require.NoError(t, err)
		assert.Len(t, employees, len(employeedb.SeedEmployees))
	})

	t.Run("Keeps existing rows", func(t *testing.T) {
		t.Parallel()

		store := newStore(t)
		_, err := store.UnsafeRunQuery(context.TODO(),
			"INSERT INTO Employees (Name, Department, Email) VALUES ('X', 'Y', 'x@y.com')")
		require.NoError(t, err)

		require.NoError(t, store.Initialize(context.TODO()))

		employees, err := store.ListEmployees(context.TODO())
		require.NoError(t, err)
		assert.Len(t, employees, len(employeedb.SeedEmployees)+1)
	})

	t.Run("Invalid path", func(t *testing.T) {
		t.Parallel()

		store := employeedb.NewStore(filepath.Join(t.TempDir(), "missing", "dir", "employees.db"))
		err := store.Initialize(context.TODO())
		require.ErrorAs(t, err, &employeedb.InitError{})
	})
}

func TestListEmployees(t *testing.T) {
	t.Parallel()

	store := newStore(t)

	employees, err := store.ListEmployees(context.TODO())
	require.NoError(t, err)
	require.Len(t, employees, len(employeedb.SeedEmployees))

	ids := map[int64]struct{}{}
	emails := map[string]struct{}{}
	for _, e := range employees {
		ids[e.Id] = struct{}{}
		emails[e.Email] = struct{}{}
		assert.NotEmpty(t, e.Name)
		assert.NotEmpty(t, e.Department)
	}
	assert.Len(t, ids, len(employees))
	assert.Len(t, emails, len(employees))

	assert.Equal(t, "Tharun Iyer", employees[0].Name)
	assert.Equal(t, "Finance", employees[0].Department)
	assert.Equal(t, "tharun.iyer@example.com", employees[0].Email)
}

func TestUnsafeRunQuery(t *testing.T) {
	t.Parallel()

	t.Run("Select", func(t *testing.T) {
		t.Parallel()

		store := newStore(t)
		result, err := store.UnsafeRunQuery(context.TODO(), "SELECT * FROM Employees")
		require.NoError(t, err)

		require.True(t, result.HasRows())
		require.Len(t, result.Rows, len(employeedb.SeedEmployees))
		for _, row := range result.Rows {
			assert.Equal(t, []string{"Id", "Name", "Department", "Email"}, row.Columns())
		}

		name, ok := result.Rows[0].Get("Name")
		require.True(t, ok)
		assert.Equal(t, employeedb.TextValue("Tharun Iyer"), name)
	})

	t.Run("Empty row set", func(t *testing.T) {
		t.Parallel()

		store := newStore(t)
		result, err := store.UnsafeRunQuery(context.TODO(), "SELECT * FROM Employees WHERE Id < 0")
		require.NoError(t, err)

		assert.True(t, result.HasRows())
		assert.Empty(t, result.Rows)

		body, err := json.Marshal(result)
		require.NoError(t, err)
		assert.JSONEq(t, `[]`, string(body))
	})

	t.Run("Typed values", func(t *testing.T) {
		t.Parallel()

		store := newStore(t)
		result, err := store.UnsafeRunQuery(context.TODO(),
			"SELECT 42 AS i, 1.5 AS r, 'text' AS t, NULL AS n")
		require.NoError(t, err)

		body, err := json.Marshal(result)
		require.NoError(t, err)
		assert.Equal(t, `[{"i":42,"r":1.5,"t":"text","n":null}]`, string(body))
	})

	t.Run("Insert", func(t *testing.T) {
		t.Parallel()

		store := newStore(t)
		result, err := store.UnsafeRunQuery(context.TODO(),
			"INSERT INTO Employees (Name, Department, Email) VALUES ('X', 'Y', 'x@y.com')")
		require.NoError(t, err)

		assert.False(t, result.HasRows())
		require.NotNil(t, result.Acknowledgment)
		assert.Equal(t, employeedb.NoResultsMessage, result.Acknowledgment.Message)

		employees, err := store.ListEmployees(context.TODO())
		require.NoError(t, err)
		assert.Len(t, employees, len(employeedb.SeedEmployees)+1)
	})

	t.Run("DDL", func(t *testing.T) {
		t.Parallel()

		store := newStore(t)
		result, err := store.UnsafeRunQuery(context.TODO(), "CREATE TABLE Projects (Id INTEGER, Title TEXT)")
		require.NoError(t, err)
		assert.False(t, result.HasRows())

		result, err = store.UnsafeRunQuery(context.TODO(), "SELECT * FROM Projects")
		require.NoError(t, err)
		assert.True(t, result.HasRows())
		assert.Empty(t, result.Rows)
	})

	t.Run("Statements outside a transaction", func(t *testing.T) {
		t.Parallel()

		store := newStore(t)

		result, err := store.UnsafeRunQuery(context.TODO(), "VACUUM")
		require.NoError(t, err)
		assert.False(t, result.HasRows())

		result, err = store.UnsafeRunQuery(context.TODO(), "PRAGMA journal_mode=WAL")
		require.NoError(t, err)
		body, err := json.Marshal(result)
		require.NoError(t, err)
		assert.Equal(t, `[{"journal_mode":"wal"}]`, string(body))
	})

	t.Run("Transaction control statements", func(t *testing.T) {
		t.Parallel()

		store := newStore(t)
		_, err := store.UnsafeRunQuery(context.TODO(), "BEGIN")
		require.NoError(t, err)

		_, err = store.UnsafeRunQuery(context.TODO(),
			"INSERT INTO Employees (Name, Department, Email) VALUES ('X', 'Y', 'x@y.com')")
		require.NoError(t, err)

		employees, err := store.ListEmployees(context.TODO())
		require.NoError(t, err)
		assert.Len(t, employees, len(employeedb.SeedEmployees)+1)
	})

	t.Run("Date columns keep stored text", func(t *testing.T) {
		t.Parallel()

		store := newStore(t)
		_, err := store.UnsafeRunQuery(context.TODO(), "CREATE TABLE Holidays (Day DATE, At DATETIME)")
		require.NoError(t, err)
		_, err = store.UnsafeRunQuery(context.TODO(),
			"INSERT INTO Holidays VALUES ('2024-01-05', '2024-01-05 10:20:30.25')")
		require.NoError(t, err)

		result, err := store.UnsafeRunQuery(context.TODO(), "SELECT Day, At FROM Holidays")
		require.NoError(t, err)

		body, err := json.Marshal(result)
		require.NoError(t, err)
		assert.Equal(t, `[{"Day":"2024-01-05","At":"2024-01-05 10:20:30.25"}]`, string(body))
	})

	t.Run("Fetch failure after the first row", func(t *testing.T) {
		t.Parallel()

		store := newStore(t)
		result, err := store.UnsafeRunQuery(context.TODO(),
			"SELECT LEFT(Name, CASE WHEN Id = 3 THEN -1 ELSE 1 END) AS v FROM Employees")
		require.NoError(t, err)

		assert.False(t, result.HasRows())
		require.NotNil(t, result.Acknowledgment)
		assert.Equal(t, employeedb.NoResultsMessage, result.Acknowledgment.Message)
	})

	t.Run("Fetch failure on the first row", func(t *testing.T) {
		t.Parallel()

		store := newStore(t)
		_, err := store.UnsafeRunQuery(context.TODO(),
			"SELECT LEFT(Name, CASE WHEN Id = 1 THEN -1 ELSE 1 END) AS v FROM Employees")
		require.ErrorAs(t, err, &employeedb.QueryError{})
	})

	t.Run("Syntax error", func(t *testing.T) {
		t.Parallel()

		store := newStore(t)
		result, err := store.UnsafeRunQuery(context.TODO(), "SELEKT * FROM Employees")
		assert.Nil(t, result)

		var queryError employeedb.QueryError
		require.ErrorAs(t, err, &queryError)
		assert.NotEmpty(t, queryError.Parent.Error())
	})

	t.Run("Unique violation", func(t *testing.T) {
		t.Parallel()

		store := newStore(t)
		_, err := store.UnsafeRunQuery(context.TODO(),
			"INSERT INTO Employees (Name, Department, Email) VALUES ('X', 'Y', 'deepa.rao@example.com')")
		require.ErrorAs(t, err, &employeedb.QueryError{})

		employees, err := store.ListEmployees(context.TODO())
		require.NoError(t, err)
		assert.Len(t, employees, len(employeedb.SeedEmployees))
	})

	t.Run("Missing query", func(t *testing.T) {
		t.Parallel()

		store := employeedb.NewStore(filepath.Join(t.TempDir(), "never-created.db"))
		_, err := store.UnsafeRunQuery(context.TODO(), "")
		require.ErrorIs(t, err, employeedb.ErrMissingQuery)
		assert.NoFileExists(t, store.Path())
	})

	t.Run("Canceled", func(t *testing.T) {
		t.Parallel()

		store := newStore(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := store.UnsafeRunQuery(ctx, "SELECT * FROM Employees")
		require.ErrorAs(t, err, &employeedb.QueryError{})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestMySQLFunctions(t *testing.T) {
	t.Parallel()

	store := newStore(t)
	for _, stmt := range []string{
		"CREATE TABLE datetest (date DATE)",
		"INSERT INTO datetest (date) VALUES ('2021-01-01')",
		"INSERT INTO datetest (date) VALUES ('2021-02-03 04:05:06')",
	} {
		_, err := store.UnsafeRunQuery(context.TODO(), stmt)
		require.NoError(t, err)
	}

	cases := []struct {
		name  string
		query string
		want  string
	}{
		{"YEAR", "SELECT YEAR(date) AS v FROM datetest", `[{"v":2021},{"v":2021}]`},
		{"MONTH", "SELECT MONTH(date) AS v FROM datetest", `[{"v":1},{"v":2}]`},
		{"DAY", "SELECT DAY(date) AS v FROM datetest", `[{"v":1},{"v":3}]`},
		{"YEAR NULL", "SELECT YEAR(NULL) AS v", `[{"v":null}]`},
		{"YEAR not a date", "SELECT YEAR('soon') AS v", `[{"v":null}]`},
		{"IF true", "SELECT IF(1 = 1, 'yes', 'no') AS v", `[{"v":"yes"}]`},
		{"IF false", "SELECT IF(1 = 2, 'yes', 'no') AS v", `[{"v":"no"}]`},
		{"LEFT", "SELECT LEFT('hello', 3) AS v", `[{"v":"hel"}]`},
		{"LEFT over length", "SELECT LEFT('hello', 10) AS v", `[{"v":"hello"}]`},
		{"LEFT integer", "SELECT LEFT(1234, 2) AS v", `[{"v":"12"}]`},
		{"LEFT NULL", "SELECT LEFT(NULL, 2) AS v", `[{"v":null}]`},
		{"RIGHT", "SELECT RIGHT('hello', 2) AS v", `[{"v":"lo"}]`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			result, err := store.UnsafeRunQuery(context.TODO(), tc.query)
			require.NoError(t, err)

			body, err := json.Marshal(result)
			require.NoError(t, err)
			assert.Equal(t, tc.want, string(body))
		})
	}

	t.Run("LEFT negative length", func(t *testing.T) {
		t.Parallel()

		_, err := store.UnsafeRunQuery(context.TODO(), "SELECT LEFT('hello', -1) AS v")
		require.ErrorAs(t, err, &employeedb.QueryError{})
	})
}

func BenchmarkUnsafeRunQuery(b *testing.B) {
	b.ReportAllocs()

	store := newStore(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = store.UnsafeRunQuery(context.TODO(), "SELECT * FROM Employees")
	}
}
