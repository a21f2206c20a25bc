package usecase

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"employeeapi/src/core/domain"
)

// employeeRules mirrors the constrained employee fields. The json tag names
// the field in validation errors.
type employeeRules struct {
	Name       string  `json:"name" validate:"required"`
	Email      string  `json:"email" validate:"required"`
	Department string  `json:"department" validate:"required"`
	Salary     float64 `json:"salary"`
}

type employeeValidator struct {
	v *validator.Validate
}

func newEmployeeValidator() *employeeValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &employeeValidator{v: v}
}

// Validate checks the invariants of a complete employee record and returns
// a domain validation error naming the first offending field.
func (ev *employeeValidator) Validate(e domain.Employee) error {
	err := ev.v.Struct(employeeRules{
		Name:       e.Name,
		Email:      e.Email,
		Department: e.Department,
		Salary:     e.Salary,
	})
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return domain.NewValidationError(fe.Field(), messageFor(fe))
	}
	return domain.NewValidationError("", err.Error())
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	default:
		return "failed " + fe.Tag() + " validation"
	}
}
