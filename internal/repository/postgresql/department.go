package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/workstead/hr-backend-go/internal/domain/department"
	"github.com/workstead/hr-backend-go/internal/pkg/database"
)

type departmentRepository struct {
	db *database.DB
}

func NewDepartmentRepository(db *database.DB) department.DepartmentRepository {
	return &departmentRepository{db: db}
}

// Create implements department.DepartmentRepository.
func (d *departmentRepository) Create(ctx context.Context, dept department.Department) (department.Department, error) {
	q := GetQuerier(ctx, d.db)

	query := `
		INSERT INTO departments (name, description)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, dept.Name, dept.Description).
		Scan(&dept.ID, &dept.CreatedAt, &dept.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return department.Department{}, department.ErrDepartmentNameExists
		}
		return department.Department{}, fmt.Errorf("failed to create department: %w", err)
	}

	return dept, nil
}

// GetByID implements department.DepartmentRepository.
func (d *departmentRepository) GetByID(ctx context.Context, id string) (department.Department, error) {
	q := GetQuerier(ctx, d.db)

	query := `
		SELECT d.id, d.name, d.description, d.created_at, d.updated_at,
			   COUNT(e.id)
		FROM departments d
		LEFT JOIN employees e ON e.department_id = d.id
		WHERE d.id = $1
		GROUP BY d.id
	`

	var dept department.Department
	err := q.QueryRow(ctx, query, id).Scan(
		&dept.ID, &dept.Name, &dept.Description,
		&dept.CreatedAt, &dept.UpdatedAt, &dept.EmployeeCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return department.Department{}, department.ErrDepartmentNotFound
		}
		return department.Department{}, fmt.Errorf("failed to get department: %w", err)
	}

	return dept, nil
}

// GetByName implements department.DepartmentRepository.
func (d *departmentRepository) GetByName(ctx context.Context, name string) (department.Department, error) {
	q := GetQuerier(ctx, d.db)

	var dept department.Department
	err := q.QueryRow(ctx, `
		SELECT id, name, description, created_at, updated_at
		FROM departments
		WHERE LOWER(name) = LOWER($1)
	`, name).Scan(&dept.ID, &dept.Name, &dept.Description, &dept.CreatedAt, &dept.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return department.Department{}, department.ErrDepartmentNotFound
		}
		return department.Department{}, fmt.Errorf("failed to get department by name: %w", err)
	}

	return dept, nil
}

// List implements department.DepartmentRepository.
func (d *departmentRepository) List(ctx context.Context) ([]department.Department, error) {
	q := GetQuerier(ctx, d.db)

	query := `
		SELECT d.id, d.name, d.description, d.created_at, d.updated_at,
			   COUNT(e.id)
		FROM departments d
		LEFT JOIN employees e ON e.department_id = d.id
		GROUP BY d.id
		ORDER BY d.name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	defer rows.Close()

	var departments []department.Department
	for rows.Next() {
		var dept department.Department
		if err := rows.Scan(
			&dept.ID, &dept.Name, &dept.Description,
			&dept.CreatedAt, &dept.UpdatedAt, &dept.EmployeeCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		departments = append(departments, dept)
	}

	return departments, rows.Err()
}

// Update implements department.DepartmentRepository.
func (d *departmentRepository) Update(ctx context.Context, dept department.Department) error {
	q := GetQuerier(ctx, d.db)

	query := `
		UPDATE departments
		SET name = $2, description = $3, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, dept.ID, dept.Name, dept.Description)
	if err != nil {
		if isUniqueViolation(err) {
			return department.ErrDepartmentNameExists
		}
		return fmt.Errorf("failed to update department: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return department.ErrDepartmentNotFound
	}

	return nil
}

// Delete implements department.DepartmentRepository.
func (d *departmentRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, d.db)

	tag, err := q.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete department: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return department.ErrDepartmentNotFound
	}

	return nil
}

// CountEmployees implements department.DepartmentRepository.
func (d *departmentRepository) CountEmployees(ctx context.Context, id string) (int64, error) {
	q := GetQuerier(ctx, d.db)

	var count int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE department_id = $1`, id).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count department employees: %w", err)
	}

	return count, nil
}

// Count implements department.DepartmentRepository.
func (d *departmentRepository) Count(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, d.db)

	var count int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM departments`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count departments: %w", err)
	}

	return count, nil
}
