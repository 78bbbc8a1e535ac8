package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID             string
	Name           string
	Email          string
	EmployeeCode   string
	Department     string
	Position       string
	BaseSalary     decimal.Decimal
	HireDate       time.Time
	IsActive       bool
	Category       Category
	CreatedBy      *string
	CreatedByGuest bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Category string

const (
	CategoryActive     Category = "active"
	CategoryInactive   Category = "inactive"
	CategoryOnLeave    Category = "on-leave"
	CategoryTerminated Category = "terminated"
)

var Categories = []string{
	string(CategoryActive),
	string(CategoryInactive),
	string(CategoryOnLeave),
	string(CategoryTerminated),
}
