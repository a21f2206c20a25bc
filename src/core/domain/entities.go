package domain

import (
	"regexp"
	"time"
)

// Employee field names as they appear on the wire. The update allow-list is
// expressed in terms of these names.
const (
	FieldID            = "id"
	FieldName          = "name"
	FieldEmail         = "email"
	FieldDepartment    = "department"
	FieldSalary        = "salary"
	FieldDateOfJoining = "dateOfJoining"
	FieldDateOfBirth   = "dateOfBirth"
)

// MutableFields is the allow-list of fields an update may change, in the
// order they are applied. Every field except the identifier is mutable.
var MutableFields = []string{
	FieldName,
	FieldEmail,
	FieldDepartment,
	FieldSalary,
	FieldDateOfJoining,
	FieldDateOfBirth,
}

// IDLength is the number of hex characters in an employee identifier.
const IDLength = 24

var idPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// ValidID reports whether id has the store-native identifier syntax.
func ValidID(id string) bool {
	return idPattern.MatchString(id)
}

// Employee is the single record managed by the API.
type Employee struct {
	ID            string
	Name          string
	Email         string
	Department    string
	Salary        float64
	DateOfJoining time.Time
	DateOfBirth   time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SameValues reports whether e and o hold the same field values, ignoring
// the store-managed timestamps.
func (e Employee) SameValues(o Employee) bool {
	return e.ID == o.ID &&
		e.Name == o.Name &&
		e.Email == o.Email &&
		e.Department == o.Department &&
		e.Salary == o.Salary &&
		e.DateOfJoining.Equal(o.DateOfJoining) &&
		e.DateOfBirth.Equal(o.DateOfBirth)
}

// EmployeePatch is a partial update restricted to the mutable fields.
// A nil pointer leaves the corresponding field untouched.
type EmployeePatch struct {
	Name          *string
	Email         *string
	Department    *string
	Salary        *float64
	DateOfJoining *time.Time
	DateOfBirth   *time.Time

	// Nulls lists the required fields the caller explicitly set to null.
	// Such a patch can never be applied.
	Nulls []string
}

// Fields returns the names of the fields set on the patch, in allow-list order.
func (p EmployeePatch) Fields() []string {
	set := map[string]bool{
		FieldName:          p.Name != nil,
		FieldEmail:         p.Email != nil,
		FieldDepartment:    p.Department != nil,
		FieldSalary:        p.Salary != nil,
		FieldDateOfJoining: p.DateOfJoining != nil,
		FieldDateOfBirth:   p.DateOfBirth != nil,
	}
	var fields []string
	for _, f := range MutableFields {
		if set[f] {
			fields = append(fields, f)
		}
	}
	return fields
}

// IsEmpty reports whether the patch changes nothing.
func (p EmployeePatch) IsEmpty() bool {
	return len(p.Fields()) == 0
}

// Value returns the new value for a mutable field, or nil if it is not set.
func (p EmployeePatch) Value(field string) any {
	switch field {
	case FieldName:
		if p.Name != nil {
			return *p.Name
		}
	case FieldEmail:
		if p.Email != nil {
			return *p.Email
		}
	case FieldDepartment:
		if p.Department != nil {
			return *p.Department
		}
	case FieldSalary:
		if p.Salary != nil {
			return *p.Salary
		}
	case FieldDateOfJoining:
		if p.DateOfJoining != nil {
			return *p.DateOfJoining
		}
	case FieldDateOfBirth:
		if p.DateOfBirth != nil {
			return *p.DateOfBirth
		}
	}
	return nil
}

// ApplyTo returns a copy of e with the patch applied. ID and timestamps are
// never changed.
func (p EmployeePatch) ApplyTo(e Employee) Employee {
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.Email != nil {
		e.Email = *p.Email
	}
	if p.Department != nil {
		e.Department = *p.Department
	}
	if p.Salary != nil {
		e.Salary = *p.Salary
	}
	if p.DateOfJoining != nil {
		e.DateOfJoining = *p.DateOfJoining
	}
	if p.DateOfBirth != nil {
		e.DateOfBirth = *p.DateOfBirth
	}
	return e
}
