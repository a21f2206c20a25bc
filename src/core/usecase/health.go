package usecase

import (
	"context"
	"log/slog"
	"sort"

	"employeeapi/src/core/ports"
	"employeeapi/src/infra/logger"
)

// HealthService handles health check logic.
// It checks every registered dependency, typically the record store.
type HealthService struct {
	log    *slog.Logger
	checks map[string]ports.HealthChecker
}

// NewHealthService creates a new HealthService.
func NewHealthService(log *slog.Logger, checks map[string]ports.HealthChecker) *HealthService {
	return &HealthService{
		log:    log,
		checks: checks,
	}
}

// HealthStatus represents the health of the application.
type HealthStatus struct {
	Status     string                     `json:"status"`
	Components map[string]ComponentHealth `json:"components,omitempty"`
}

// ComponentHealth represents the health of a single component.
type ComponentHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Healthy reports whether every component is healthy.
func (h *HealthStatus) Healthy() bool {
	return h.Status == "ok"
}

// Check performs a health check of all application components.
// Failure details are logged; the returned status only says "unhealthy".
func (s *HealthService) Check(ctx context.Context) *HealthStatus {
	status := &HealthStatus{
		Status:     "ok",
		Components: make(map[string]ComponentHealth, len(s.checks)),
	}

	names := make([]string, 0, len(s.checks))
	for name := range s.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := s.checks[name].Health(ctx); err != nil {
			s.log.WarnContext(ctx, "health check failed", "component", name, logger.Err(err))
			status.Status = "degraded"
			status.Components[name] = ComponentHealth{
				Status:  "unhealthy",
				Message: "unreachable",
			}
			continue
		}
		status.Components[name] = ComponentHealth{Status: "healthy"}
	}

	return status
}
