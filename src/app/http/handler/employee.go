package handler

import (
	"errors"
	"io"
	"log/slog"

	"github.com/gin-gonic/gin"

	"employeeapi/src/app/http/dto"
	"employeeapi/src/app/http/response"
	"employeeapi/src/app/middleware"
	"employeeapi/src/core/domain"
	"employeeapi/src/core/usecase"
	"employeeapi/src/infra/logger"
)

// EmployeeHandler handles the /employees endpoints.
type EmployeeHandler struct {
	employeeService *usecase.EmployeeService
	log             *slog.Logger
}

// NewEmployeeHandler creates a new EmployeeHandler.
func NewEmployeeHandler(employeeService *usecase.EmployeeService, log *slog.Logger) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService, log: log}
}

// List returns every employee.
// GET /employees
func (h *EmployeeHandler) List(c *gin.Context) {
	employees, err := h.employeeService.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, dto.EmployeeList(employees))
}

// Get returns one employee.
// GET /employees/:id
func (h *EmployeeHandler) Get(c *gin.Context) {
	e, err := h.employeeService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, dto.EmployeeResponse{}.FromDomain(e))
}

// Create stores a new employee.
// POST /employees
func (h *EmployeeHandler) Create(c *gin.Context) {
	var req dto.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err, middleware.GetRequestID(c))
		return
	}

	e, err := h.employeeService.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Created(c, dto.EmployeeResponse{}.FromDomain(e))
}

// Update applies a partial update. An empty body is an empty update.
// PUT /employees/:id
func (h *EmployeeHandler) Update(c *gin.Context) {
	var req dto.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BindError(c, err, middleware.GetRequestID(c))
		return
	}

	e, err := h.employeeService.Update(c.Request.Context(), c.Param("id"), req.ToPatch())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, dto.UpdateEmployeeResponse{
		Message:         response.MsgEmployeeUpdated,
		UpdatedEmployee: dto.EmployeeResponse{}.FromDomain(e),
	})
}

// Delete removes an employee.
// DELETE /employees/:id
func (h *EmployeeHandler) Delete(c *gin.Context) {
	if err := h.employeeService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, dto.MessageResponse{Message: response.MsgEmployeeDeleted})
}

// fail attaches err for the access log and writes the mapped response.
// Internal errors are logged here with the request id.
func (h *EmployeeHandler) fail(c *gin.Context, err error) {
	requestID := middleware.GetRequestID(c)
	_ = c.Error(err)
	if domain.KindOf(err) == domain.KindInternal {
		logger.WithRequestID(h.log, requestID).ErrorContext(c.Request.Context(), "request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			logger.Err(err),
		)
	}
	response.FromDomainError(c, err, requestID)
}
