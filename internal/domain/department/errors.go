package department

import "errors"

var (
	ErrDepartmentNotFound   = errors.New("Department not found")
	ErrDepartmentNameExists = errors.New("Department name already exists")
	ErrDepartmentNotEmpty   = errors.New("Department still has employees assigned")
)
