package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"

	"employeeapi/src/core/domain"
	"employeeapi/src/core/usecase"
)

// ErrInvalidDate is returned when a date field is neither an RFC 3339
// timestamp nor a YYYY-MM-DD calendar date.
var ErrInvalidDate = errors.New("dates must be RFC 3339 timestamps or YYYY-MM-DD")

const calendarDate = "2006-01-02"

// Date accepts RFC 3339 timestamps and plain calendar dates.
type Date struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return ErrInvalidDate
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		d.Time = t.UTC()
		return nil
	}
	t, err := time.Parse(calendarDate, s)
	if err != nil {
		return ErrInvalidDate
	}
	d.Time = t
	return nil
}

func (d *Date) timePtr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

// CreateEmployeeRequest is the payload for POST /employees.
// Required fields are checked by the service so that errors name the JSON field.
// An "id" key is not part of the payload and is ignored.
type CreateEmployeeRequest struct {
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Department    string   `json:"department"`
	Salary        *float64 `json:"salary"`
	DateOfJoining *Date    `json:"dateOfJoining"`
	DateOfBirth   *Date    `json:"dateOfBirth"`
}

// ToInput converts the request into the service input.
func (r *CreateEmployeeRequest) ToInput() usecase.CreateEmployeeInput {
	return usecase.CreateEmployeeInput{
		Name:          r.Name,
		Email:         r.Email,
		Department:    r.Department,
		Salary:        r.Salary,
		DateOfJoining: r.DateOfJoining.timePtr(),
		DateOfBirth:   r.DateOfBirth.timePtr(),
	}
}

// Optional remembers whether a JSON key was present and whether it was null.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// UnmarshalJSON implements json.Unmarshaler. It is only called for keys
// present in the payload.
func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if bytes.Equal(b, []byte("null")) {
		o.Null = true
		return nil
	}
	return json.Unmarshal(b, &o.Value)
}

func (o Optional[T]) ptr() *T {
	if !o.Set || o.Null {
		return nil
	}
	v := o.Value
	return &v
}

// UpdateEmployeeRequest is the payload for PUT /employees/:id. Only the
// allow-listed fields are declared; any other key is dropped when decoding.
// A null date leaves the date untouched. A null required field is recorded
// so that the update can be rejected.
type UpdateEmployeeRequest struct {
	Name          Optional[string]  `json:"name"`
	Email         Optional[string]  `json:"email"`
	Department    Optional[string]  `json:"department"`
	Salary        Optional[float64] `json:"salary"`
	DateOfJoining *Date             `json:"dateOfJoining"`
	DateOfBirth   *Date             `json:"dateOfBirth"`
}

// ToPatch converts the request into a domain patch.
func (r *UpdateEmployeeRequest) ToPatch() domain.EmployeePatch {
	var nulls []string
	for _, f := range []struct {
		name string
		null bool
	}{
		{domain.FieldName, r.Name.Null},
		{domain.FieldEmail, r.Email.Null},
		{domain.FieldDepartment, r.Department.Null},
		{domain.FieldSalary, r.Salary.Null},
	} {
		if f.null {
			nulls = append(nulls, f.name)
		}
	}

	return domain.EmployeePatch{
		Name:          r.Name.ptr(),
		Email:         r.Email.ptr(),
		Department:    r.Department.ptr(),
		Salary:        r.Salary.ptr(),
		DateOfJoining: r.DateOfJoining.timePtr(),
		DateOfBirth:   r.DateOfBirth.timePtr(),
		Nulls:         nulls,
	}
}

// EmployeeResponse is the JSON representation of an employee.
type EmployeeResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Department    string    `json:"department"`
	Salary        float64   `json:"salary"`
	DateOfJoining time.Time `json:"dateOfJoining"`
	DateOfBirth   time.Time `json:"dateOfBirth"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// FromDomain builds the response for e.
func (EmployeeResponse) FromDomain(e *domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:            e.ID,
		Name:          e.Name,
		Email:         e.Email,
		Department:    e.Department,
		Salary:        e.Salary,
		DateOfJoining: e.DateOfJoining,
		DateOfBirth:   e.DateOfBirth,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

// EmployeeList converts a slice of employees, never returning nil.
func EmployeeList(employees []domain.Employee) []EmployeeResponse {
	out := make([]EmployeeResponse, 0, len(employees))
	for i := range employees {
		out = append(out, EmployeeResponse{}.FromDomain(&employees[i]))
	}
	return out
}

// UpdateEmployeeResponse is returned by PUT /employees/:id.
type UpdateEmployeeResponse struct {
	Message         string           `json:"message"`
	UpdatedEmployee EmployeeResponse `json:"updatedEmployee"`
}

// MessageResponse carries a confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}
