package employee

import (
	"context"
	"time"

	"github.com/paydesk/payroll-backend-go/internal/domain/auth"
	"github.com/paydesk/payroll-backend-go/internal/domain/employee"
	"github.com/paydesk/payroll-backend-go/internal/pkg/database"
)

type EmployeeServiceImpl struct {
	db           *database.DB
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeService(db *database.DB, employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{
		db:           db,
		employeeRepo: employeeRepo,
	}
}

func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	hireDate, _ := time.Parse("2006-01-02", req.HireDate)

	category := employee.CategoryActive
	if req.Category != nil {
		category = employee.Category(*req.Category)
	}

	principal, _ := auth.PrincipalFromContext(ctx)

	emp := employee.Employee{
		Name:           req.Name,
		Email:          req.Email,
		EmployeeCode:   req.EmployeeCode,
		Department:     req.Department,
		Position:       req.Position,
		BaseSalary:     req.BaseSalary,
		HireDate:       hireDate,
		IsActive:       category == employee.CategoryActive,
		Category:       category,
		CreatedBy:      principal.AuditRef(),
		CreatedByGuest: principal.Guest,
	}

	created, err := s.employeeRepo.Create(ctx, emp)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return mapToResponse(created), nil
}

func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return mapToResponse(emp), nil
}

func (s *EmployeeServiceImpl) List(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeesResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 10
	}

	employees, totalCount, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeesResponse{}, err
	}

	result := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		result = append(result, mapToResponse(emp))
	}

	totalPages := int((totalCount + int64(filter.Limit) - 1) / int64(filter.Limit))

	return employee.ListEmployeesResponse{
		Employees: result,
		Pagination: employee.PaginationMeta{
			CurrentPage:  filter.Page,
			TotalPages:   totalPages,
			TotalRecords: totalCount,
			HasNext:      filter.Page < totalPages,
			HasPrev:      filter.Page > 1,
		},
	}, nil
}

func (s *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.ID); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if err := s.employeeRepo.Update(ctx, req); err != nil {
		return employee.EmployeeResponse{}, err
	}

	return s.Get(ctx, req.ID)
}

// Delete removes the employee unconditionally. Payroll records keep their
// employee_id and survive the deletion; their joined display fields go
// null.
func (s *EmployeeServiceImpl) Delete(ctx context.Context, id string) error {
	if _, err := s.employeeRepo.GetByID(ctx, id); err != nil {
		return err
	}

	return s.employeeRepo.Delete(ctx, id)
}

func (s *EmployeeServiceImpl) ExportAll(ctx context.Context) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		result = append(result, mapToResponse(emp))
	}

	return result, nil
}

func mapToResponse(emp employee.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		ID:             emp.ID,
		Name:           emp.Name,
		Email:          emp.Email,
		EmployeeCode:   emp.EmployeeCode,
		Department:     emp.Department,
		Position:       emp.Position,
		BaseSalary:     emp.BaseSalary,
		HireDate:       emp.HireDate.Format("2006-01-02"),
		IsActive:       emp.IsActive,
		Category:       string(emp.Category),
		CreatedBy:      emp.CreatedBy,
		CreatedByGuest: emp.CreatedByGuest,
		CreatedAt:      emp.CreatedAt.Format(time.RFC3339),
	}
}
