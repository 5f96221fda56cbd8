package employee

import "errors"

var (
	ErrEmployeeNotFound   = errors.New("Employee not found")
	ErrEmployeeCodeExists = errors.New("Employee code already exists")
	ErrUserAlreadyLinked  = errors.New("User already has an employee profile")
	ErrSelfManager        = errors.New("Employee cannot be their own manager")
	ErrManagerNotFound    = errors.New("Manager not found")
)
