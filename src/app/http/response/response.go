// Package response defines consistent HTTP response structures.
// Successful responses carry the resource itself; every failure uses the Error envelope.
package response

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"

	"employeeapi/src/app/http/dto"
	"employeeapi/src/core/domain"
)

// Error represents an error response.
type Error struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	// Code is a machine-readable error code (e.g., "NOT_FOUND", "VALIDATION_ERROR")
	Code string `json:"code"`

	// Message is a human-readable error description
	Message string `json:"message"`

	// Field is the field that caused the error (for validation errors)
	Field string `json:"field,omitempty"`

	// RequestID is the request ID for debugging
	RequestID string `json:"request_id,omitempty"`
}

// Messages returned to clients.
const (
	MsgInvalidID       = "Invalid Employee ID format"
	MsgInternal        = "An unexpected error occurred"
	MsgUpdateFailed    = "Update failed"
	MsgInvalidPayload  = "invalid payload"
	MsgEmployeeUpdated = "Employee updated successfully"
	MsgEmployeeDeleted = "Employee deleted successfully"
)

// OK sends a 200 response with data.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Created sends a 201 response with the created resource.
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

func abort(c *gin.Context, status int, detail ErrorDetail) {
	c.AbortWithStatusJSON(status, Error{Error: detail})
}

// BadRequest sends a 400 response.
func BadRequest(c *gin.Context, message string, requestID string) {
	abort(c, http.StatusBadRequest, ErrorDetail{
		Code:      "BAD_REQUEST",
		Message:   message,
		RequestID: requestID,
	})
}

// ValidationError sends a 400 response for validation failures.
func ValidationError(c *gin.Context, field, message, requestID string) {
	abort(c, http.StatusBadRequest, ErrorDetail{
		Code:      "VALIDATION_ERROR",
		Message:   message,
		Field:     field,
		RequestID: requestID,
	})
}

// NotFound sends a 404 response.
func NotFound(c *gin.Context, message, requestID string) {
	abort(c, http.StatusNotFound, ErrorDetail{
		Code:      "NOT_FOUND",
		Message:   message,
		RequestID: requestID,
	})
}

// Conflict sends a 409 response.
func Conflict(c *gin.Context, message, requestID string) {
	abort(c, http.StatusConflict, ErrorDetail{
		Code:      "CONFLICT",
		Message:   message,
		RequestID: requestID,
	})
}

// InternalError sends a 500 response.
func InternalError(c *gin.Context, requestID string) {
	abort(c, http.StatusInternalServerError, ErrorDetail{
		Code:      "INTERNAL_ERROR",
		Message:   MsgInternal,
		RequestID: requestID,
	})
}

// UpdateFailed sends a 500 response for an update the store did not apply.
func UpdateFailed(c *gin.Context, requestID string) {
	abort(c, http.StatusInternalServerError, ErrorDetail{
		Code:      "UPDATE_FAILED",
		Message:   MsgUpdateFailed,
		RequestID: requestID,
	})
}

// FromDomainError converts a domain error to an appropriate HTTP response.
// This centralizes error handling and ensures consistent error responses.
// Internal errors never expose their message; callers log them.
func FromDomainError(c *gin.Context, err error, requestID string) {
	var domainErr *domain.DomainError
	hasDetail := errors.As(err, &domainErr)

	switch domain.KindOf(err) {
	case domain.KindValidation:
		switch {
		case domain.IsInvalidID(err):
			BadRequest(c, MsgInvalidID, requestID)
		case hasDetail:
			ValidationError(c, domainErr.Field, domainErr.Message, requestID)
		default:
			BadRequest(c, err.Error(), requestID)
		}
	case domain.KindNotFound:
		resource := "resource"
		if hasDetail && domainErr.Message != "" {
			resource = domainErr.Message
		}
		NotFound(c, capitalize(resource)+" not found", requestID)
	case domain.KindConflict:
		message := err.Error()
		if hasDetail && domainErr.Message != "" {
			message = domainErr.Message
		}
		Conflict(c, message, requestID)
	default:
		if domain.IsUpdateFailed(err) {
			UpdateFailed(c, requestID)
			return
		}
		InternalError(c, requestID)
	}
}

// BindError converts a request decoding error to a 400 response, naming the
// offending field when the JSON decoder reports one.
func BindError(c *gin.Context, err error, requestID string) {
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr) && typeErr.Field == "":
		BadRequest(c, "request body must be a JSON object", requestID)
	case errors.As(err, &typeErr):
		ValidationError(c, typeErr.Field, "must be "+jsonKind(typeErr.Type), requestID)
	case errors.Is(err, dto.ErrInvalidDate):
		ValidationError(c, "", dto.ErrInvalidDate.Error(), requestID)
	case errors.Is(err, io.EOF):
		BadRequest(c, "request body is required", requestID)
	default:
		BadRequest(c, MsgInvalidPayload, requestID)
	}
}

// jsonKind names the JSON value expected for t.
func jsonKind(t reflect.Type) string {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return "a valid value"
	}
	switch t.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.Slice, reflect.Array:
		return "an array"
	default:
		return "an object"
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
