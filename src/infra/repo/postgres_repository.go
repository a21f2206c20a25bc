package repo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"employeeapi/src/core/domain"
	"employeeapi/src/core/ports"
	"employeeapi/src/infra/metrics"
)

// Database is the subset of pgxpool.Pool used by the repository.
type Database interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

const employeeColumns = `id, name, email, department, salary, date_of_joining, date_of_birth, created_at, updated_at`

// fieldColumns maps the mutable fields to their columns.
var fieldColumns = map[string]string{
	domain.FieldName:          "name",
	domain.FieldEmail:         "email",
	domain.FieldDepartment:    "department",
	domain.FieldSalary:        "salary",
	domain.FieldDateOfJoining: "date_of_joining",
	domain.FieldDateOfBirth:   "date_of_birth",
}

// PostgresRepository implements EmployeeRepository using pgx.
type PostgresRepository struct {
	db      Database
	log     *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

var _ ports.EmployeeRepository = (*PostgresRepository)(nil)

// NewPostgresRepository constructs a repository backed by Postgres.
// m may be nil.
func NewPostgresRepository(db Database, log *slog.Logger, m *metrics.Metrics) *PostgresRepository {
	return &PostgresRepository{
		db:      db,
		log:     log,
		metrics: m,
		now:     time.Now,
	}
}

func (r *PostgresRepository) Health(ctx context.Context) error {
	return r.db.Ping(ctx)
}

// emailConstraint is the unique constraint on employees.email.
const emailConstraint = "employees_email_key"

// isDuplicateEmail reports a unique violation on the email column. Other
// unique violations, such as an id collision, are not conflicts the caller caused.
func isDuplicateEmail(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == emailConstraint
	}
	return false
}

func scanEmployee(row pgx.Row) (*domain.Employee, error) {
	var e domain.Employee
	err := row.Scan(
		&e.ID, &e.Name, &e.Email, &e.Department, &e.Salary,
		&e.DateOfJoining, &e.DateOfBirth, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]domain.Employee, error) {
	defer r.metrics.ObserveQuery("list_employees", time.Now())

	q := `SELECT ` + employeeColumns + ` FROM employees ORDER BY created_at, id`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		r.metrics.QueryFailed("list_employees")
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	employees := make([]domain.Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			r.metrics.QueryFailed("list_employees")
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, *e)
	}
	if err := rows.Err(); err != nil {
		r.metrics.QueryFailed("list_employees")
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	defer r.metrics.ObserveQuery("get_employee", time.Now())

	q := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`
	e, err := scanEmployee(r.db.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("employee")
		}
		r.metrics.QueryFailed("get_employee")
		return nil, fmt.Errorf("failed to get employee by id: %w", err)
	}
	return e, nil
}

func (r *PostgresRepository) Create(ctx context.Context, e domain.Employee) (*domain.Employee, error) {
	defer r.metrics.ObserveQuery("create_employee", time.Now())

	q := `
		INSERT INTO employees (id, name, email, department, salary, date_of_joining, date_of_birth)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + employeeColumns

	id := NewID(r.now())
	created, err := scanEmployee(r.db.QueryRow(ctx, q,
		id, e.Name, e.Email, e.Department, e.Salary, e.DateOfJoining, e.DateOfBirth,
	))
	if err != nil {
		if isDuplicateEmail(err) {
			return nil, domain.NewConflictError("email already exists")
		}
		r.metrics.QueryFailed("create_employee")
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}
	return created, nil
}

// Update sets only the fields present on the patch. The statement is built
// from the static column map, never from caller-supplied names. updated_at
// only moves when a written value differs from the stored one.
func (r *PostgresRepository) Update(ctx context.Context, id string, patch domain.EmployeePatch) (*domain.Employee, error) {
	defer r.metrics.ObserveQuery("update_employee", time.Now())

	fields := patch.Fields()
	if len(fields) == 0 {
		return r.GetByID(ctx, id)
	}

	sets := make([]string, 0, len(fields)+1)
	changed := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields)+1)
	args = append(args, id)
	for _, f := range fields {
		args = append(args, patch.Value(f))
		sets = append(sets, fmt.Sprintf("%s = $%d", fieldColumns[f], len(args)))
		changed = append(changed, fmt.Sprintf("%s IS DISTINCT FROM $%d", fieldColumns[f], len(args)))
	}
	sets = append(sets, "updated_at = CASE WHEN "+strings.Join(changed, " OR ")+" THEN now() ELSE updated_at END")

	q := `UPDATE employees SET ` + strings.Join(sets, ", ") + ` WHERE id = $1 RETURNING ` + employeeColumns
	r.log.DebugContext(ctx, "updating employee row", "id", id, "fields", fields)

	updated, err := scanEmployee(r.db.QueryRow(ctx, q, args...))
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, domain.NewNotFoundError("employee")
		case isDuplicateEmail(err):
			return nil, domain.NewConflictError("email already exists")
		}
		r.metrics.QueryFailed("update_employee")
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}
	return updated, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	defer r.metrics.ObserveQuery("delete_employee", time.Now())

	tag, err := r.db.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		r.metrics.QueryFailed("delete_employee")
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("employee")
	}
	return nil
}
