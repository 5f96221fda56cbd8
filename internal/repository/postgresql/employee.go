package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/workstead/hr-backend-go/internal/domain/employee"
	"github.com/workstead/hr-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeSelectColumns = `
	e.id, e.user_id, e.department_id, e.employee_code, e.position,
	e.hire_date, e.manager_id, e.created_at, e.updated_at,
	u.name, u.email, d.name, mu.name
`

const employeeSelectJoins = `
	FROM employees e
	JOIN users u ON u.id = e.user_id
	JOIN departments d ON d.id = e.department_id
	LEFT JOIN employees m ON m.id = e.manager_id
	LEFT JOIN users mu ON mu.id = m.user_id
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.UserID, &emp.DepartmentID, &emp.EmployeeCode, &emp.Position,
		&emp.HireDate, &emp.ManagerID, &emp.CreatedAt, &emp.UpdatedAt,
		&emp.Name, &emp.Email, &emp.DepartmentName, &emp.ManagerName,
	)
	return emp, err
}

// Create implements employee.EmployeeRepository.
func (e *employeeRepository) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		INSERT INTO employees (user_id, department_id, employee_code, position, hire_date, manager_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		emp.UserID, emp.DepartmentID, emp.EmployeeCode,
		emp.Position, emp.HireDate, emp.ManagerID,
	).Scan(&emp.ID, &emp.CreatedAt, &emp.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return emp, nil
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	emp, err := scanEmployee(q.QueryRow(ctx,
		`SELECT `+employeeSelectColumns+employeeSelectJoins+` WHERE e.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return emp, nil
}

// GetByUserID implements employee.EmployeeRepository.
func (e *employeeRepository) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	emp, err := scanEmployee(q.QueryRow(ctx,
		`SELECT `+employeeSelectColumns+employeeSelectJoins+` WHERE e.user_id = $1`, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by user id: %w", err)
	}

	return emp, nil
}

// GetByCode implements employee.EmployeeRepository.
func (e *employeeRepository) GetByCode(ctx context.Context, code string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	emp, err := scanEmployee(q.QueryRow(ctx,
		`SELECT `+employeeSelectColumns+employeeSelectJoins+` WHERE e.employee_code = $1`, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by code: %w", err)
	}

	return emp, nil
}

// List implements employee.EmployeeRepository.
func (e *employeeRepository) List(ctx context.Context, filter employee.ListFilter) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, e.db)

	where := ` WHERE 1=1`
	args := []any{}
	argPos := 1

	if filter.DepartmentID != "" {
		where += fmt.Sprintf(" AND e.department_id = $%d", argPos)
		args = append(args, filter.DepartmentID)
		argPos++
	}
	if filter.Search != "" {
		where += fmt.Sprintf(" AND (u.name ILIKE $%d OR e.employee_code ILIKE $%d)", argPos, argPos)
		args = append(args, "%"+filter.Search+"%")
		argPos++
	}

	var total int64
	countQuery := `SELECT COUNT(*)` + employeeSelectJoins + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	query := `SELECT ` + employeeSelectColumns + employeeSelectJoins + where +
		fmt.Sprintf(" ORDER BY e.employee_code LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}

	return employees, total, rows.Err()
}

// ListByManager implements employee.EmployeeRepository.
func (e *employeeRepository) ListByManager(ctx context.Context, managerID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	rows, err := q.Query(ctx,
		`SELECT `+employeeSelectColumns+employeeSelectJoins+` WHERE e.manager_id = $1 ORDER BY e.employee_code`,
		managerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees by manager: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}

	return employees, rows.Err()
}

// Update implements employee.EmployeeRepository.
func (e *employeeRepository) Update(ctx context.Context, req employee.UpdateEmployeeRequest) error {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE employees
		SET department_id = COALESCE($2, department_id),
			position = COALESCE($3, position),
			manager_id = COALESCE($4, manager_id),
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, req.ID, req.DepartmentID, req.Position, req.ManagerID)
	if err != nil {
		return fmt.Errorf("failed to update employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// Delete implements employee.EmployeeRepository.
func (e *employeeRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, e.db)

	tag, err := q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// Count implements employee.EmployeeRepository.
func (e *employeeRepository) Count(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, e.db)

	var count int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count employees: %w", err)
	}

	return count, nil
}
