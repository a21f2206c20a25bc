package repo

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"employeeapi/src/core/domain"
	"employeeapi/src/core/ports"
	"employeeapi/src/infra/metrics"
)

// MemoryRepository implements EmployeeRepository in process memory.
// It keeps insertion order and enforces email uniqueness under its lock.
type MemoryRepository struct {
	mu        sync.RWMutex
	employees map[string]domain.Employee
	order     []string
	log       *slog.Logger
	metrics   *metrics.Metrics
	now       func() time.Time
}

var _ ports.EmployeeRepository = (*MemoryRepository)(nil)

// NewMemoryRepository creates an empty in-memory store. m may be nil.
func NewMemoryRepository(log *slog.Logger, m *metrics.Metrics) *MemoryRepository {
	return &MemoryRepository{
		employees: make(map[string]domain.Employee),
		log:       log,
		metrics:   m,
		now:       time.Now,
	}
}

func (r *MemoryRepository) Health(ctx context.Context) error {
	return ctx.Err()
}

func (r *MemoryRepository) List(ctx context.Context) ([]domain.Employee, error) {
	defer r.metrics.ObserveQuery("list_employees", time.Now())
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Employee, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.employees[id])
	}
	return out, nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	defer r.metrics.ObserveQuery("get_employee", time.Now())
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.employees[id]
	if !ok {
		return nil, domain.NewNotFoundError("employee")
	}
	return &e, nil
}

func (r *MemoryRepository) Create(ctx context.Context, e domain.Employee) (*domain.Employee, error) {
	defer r.metrics.ObserveQuery("create_employee", time.Now())
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.emailTaken(e.Email, "") {
		return nil, domain.NewConflictError("email already exists")
	}

	now := r.now().UTC()
	e.ID = NewID(now)
	for {
		if _, exists := r.employees[e.ID]; !exists {
			break
		}
		e.ID = NewID(now)
	}
	e.CreatedAt = now
	e.UpdatedAt = now

	r.employees[e.ID] = e
	r.order = append(r.order, e.ID)
	r.log.Debug("employee stored in memory", "id", e.ID, "count", len(r.order))
	return &e, nil
}

func (r *MemoryRepository) Update(ctx context.Context, id string, patch domain.EmployeePatch) (*domain.Employee, error) {
	defer r.metrics.ObserveQuery("update_employee", time.Now())
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.employees[id]
	if !ok {
		return nil, domain.NewNotFoundError("employee")
	}
	if patch.Email != nil && r.emailTaken(*patch.Email, id) {
		return nil, domain.NewConflictError("email already exists")
	}

	next := patch.ApplyTo(e)
	if next.SameValues(e) {
		return &e, nil
	}
	next.UpdatedAt = r.now().UTC()
	r.employees[id] = next
	return &next, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	defer r.metrics.ObserveQuery("delete_employee", time.Now())
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.employees[id]; !ok {
		return domain.NewNotFoundError("employee")
	}
	delete(r.employees, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// emailTaken reports whether another record than except uses email.
// Callers hold the lock.
func (r *MemoryRepository) emailTaken(email, except string) bool {
	for id, e := range r.employees {
		if id != except && e.Email == email {
			return true
		}
	}
	return false
}
