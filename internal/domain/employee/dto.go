package employee

import (
	"github.com/paydesk/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	EmployeeCode string          `json:"employee_id"`
	Department   string          `json:"department"`
	Position     string          `json:"position"`
	BaseSalary   decimal.Decimal `json:"base_salary"`
	HireDate     string          `json:"hire_date"`
	Category     *string         `json:"category,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "must be a valid email address"})
	}
	if validator.IsEmpty(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if validator.IsEmpty(r.Department) {
		errs = append(errs, validator.ValidationError{Field: "department", Message: "is required"})
	}
	if validator.IsEmpty(r.Position) {
		errs = append(errs, validator.ValidationError{Field: "position", Message: "is required"})
	}
	if r.BaseSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "must be non-negative"})
	}
	if _, ok := validator.IsValidDate(r.HireDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "hire_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if r.Category != nil && !validator.IsInSlice(*r.Category, Categories) {
		errs = append(errs, validator.ValidationError{Field: "category", Message: "must be one of active, inactive, on-leave, terminated"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID         string           `json:"-"`
	Name       *string          `json:"name,omitempty"`
	Email      *string          `json:"email,omitempty"`
	Department *string          `json:"department,omitempty"`
	Position   *string          `json:"position,omitempty"`
	BaseSalary *decimal.Decimal `json:"base_salary,omitempty"`
	HireDate   *string          `json:"hire_date,omitempty"`
	IsActive   *bool            `json:"is_active,omitempty"`
	Category   *string          `json:"category,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "cannot be empty"})
	}
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "must be a valid email address"})
	}
	if r.Department != nil && validator.IsEmpty(*r.Department) {
		errs = append(errs, validator.ValidationError{Field: "department", Message: "cannot be empty"})
	}
	if r.Position != nil && validator.IsEmpty(*r.Position) {
		errs = append(errs, validator.ValidationError{Field: "position", Message: "cannot be empty"})
	}
	if r.BaseSalary != nil && r.BaseSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "must be non-negative"})
	}
	if r.HireDate != nil {
		if _, ok := validator.IsValidDate(*r.HireDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "hire_date", Message: "must be a valid date (YYYY-MM-DD)"})
		}
	}
	if r.Category != nil && !validator.IsInSlice(*r.Category, Categories) {
		errs = append(errs, validator.ValidationError{Field: "category", Message: "must be one of active, inactive, on-leave, terminated"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	EmployeeCode   string          `json:"employee_id"`
	Department     string          `json:"department"`
	Position       string          `json:"position"`
	BaseSalary     decimal.Decimal `json:"base_salary"`
	HireDate       string          `json:"hire_date"`
	IsActive       bool            `json:"is_active"`
	Category       string          `json:"category"`
	CreatedBy      *string         `json:"created_by,omitempty"`
	CreatedByGuest bool            `json:"created_by_guest"`
	CreatedAt      string          `json:"created_at"`
}

type EmployeeFilter struct {
	Search     string
	Department string
	IsActive   *bool
	Page       int
	Limit      int
}

type PaginationMeta struct {
	CurrentPage  int   `json:"current_page"`
	TotalPages   int   `json:"total_pages"`
	TotalRecords int64 `json:"total_records"`
	HasNext      bool  `json:"has_next"`
	HasPrev      bool  `json:"has_prev"`
}

type ListEmployeesResponse struct {
	Employees  []EmployeeResponse `json:"employees"`
	Pagination PaginationMeta     `json:"pagination"`
}
