package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"employeeapi/src/core/domain"
	"employeeapi/src/core/ports"
)

// CreateEmployeeInput carries the caller-supplied fields of a new employee.
// Salary is a pointer so that an omitted salary can be told apart from zero.
type CreateEmployeeInput struct {
	Name          string
	Email         string
	Department    string
	Salary        *float64
	DateOfJoining *time.Time
	DateOfBirth   *time.Time
}

// EmployeeService implements the employee CRUD operations on top of the record store.
type EmployeeService struct {
	repo      ports.EmployeeRepository
	log       *slog.Logger
	validator *employeeValidator
	now       func() time.Time
}

// NewEmployeeService creates a new EmployeeService.
func NewEmployeeService(repo ports.EmployeeRepository, log *slog.Logger) *EmployeeService {
	return &EmployeeService{
		repo:      repo,
		log:       log,
		validator: newEmployeeValidator(),
		now:       time.Now,
	}
}

// List returns every employee in store order.
func (s *EmployeeService) List(ctx context.Context) ([]domain.Employee, error) {
	employees, err := s.repo.List(ctx)
	if err != nil {
		return nil, storeError("list employees", "", err)
	}
	return employees, nil
}

// Get returns a single employee. A malformed identifier cannot match any
// record and is reported as not found.
func (s *EmployeeService) Get(ctx context.Context, id string) (*domain.Employee, error) {
	if !domain.ValidID(id) {
		return nil, domain.NewNotFoundError("employee")
	}
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError("get employee", id, err)
	}
	return e, nil
}

// Create validates the input, fills the date defaults and stores the employee.
func (s *EmployeeService) Create(ctx context.Context, in CreateEmployeeInput) (*domain.Employee, error) {
	if in.Salary == nil {
		return nil, domain.NewValidationError(domain.FieldSalary, "is required")
	}

	e := domain.Employee{
		Name:       strings.TrimSpace(in.Name),
		Email:      strings.TrimSpace(in.Email),
		Department: strings.TrimSpace(in.Department),
		Salary:     *in.Salary,
	}
	if in.DateOfJoining != nil {
		e.DateOfJoining = *in.DateOfJoining
	}
	if in.DateOfBirth != nil {
		e.DateOfBirth = *in.DateOfBirth
	}
	domain.ApplyDateDefaults(&e, s.now().UTC())

	if err := s.validator.Validate(e); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, e)
	if err != nil {
		return nil, storeError("create employee", "", err)
	}

	s.log.InfoContext(ctx, "employee created", "id", created.ID)
	return created, nil
}

// Update applies a partial update to an existing employee.
//
// The identifier syntax is checked before any store access. The patch type
// only carries allow-listed fields, so unknown keys never reach this point.
// Applying the same patch twice leaves the record in the same state.
func (s *EmployeeService) Update(ctx context.Context, id string, patch domain.EmployeePatch) (*domain.Employee, error) {
	if !domain.ValidID(id) {
		return nil, domain.NewInvalidIDError(id)
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError("get employee", id, err)
	}

	if len(patch.Nulls) > 0 {
		return nil, domain.NewValidationError(patch.Nulls[0], "is required")
	}

	patch = trimPatch(patch)
	if patch.IsEmpty() {
		s.log.DebugContext(ctx, "empty employee update", "id", id)
		return existing, nil
	}

	if err := s.validator.Validate(patch.ApplyTo(*existing)); err != nil {
		return nil, err
	}

	s.log.DebugContext(ctx, "updating employee", "id", id, "fields", patch.Fields())

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewUpdateFailedError(id)
		}
		return nil, storeError("update employee", id, err)
	}
	return updated, nil
}

// Delete removes an employee.
func (s *EmployeeService) Delete(ctx context.Context, id string) error {
	if !domain.ValidID(id) {
		return domain.NewNotFoundError("employee")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return storeError("delete employee", id, err)
	}
	s.log.InfoContext(ctx, "employee deleted", "id", id)
	return nil
}

// storeError passes classified errors through and wraps anything else with
// the operation name. The caller at the transport boundary logs it.
func storeError(op, id string, err error) error {
	if domain.KindOf(err) != domain.KindInternal {
		return err
	}
	if id != "" {
		return fmt.Errorf("%s %s: %w", op, id, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func trimPatch(p domain.EmployeePatch) domain.EmployeePatch {
	trim := func(v *string) *string {
		if v == nil {
			return nil
		}
		t := strings.TrimSpace(*v)
		return &t
	}
	p.Name = trim(p.Name)
	p.Email = trim(p.Email)
	p.Department = trim(p.Department)
	return p
}
