package employee

import "errors"

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrEmployeeNotInStore = errors.New("employee does not belong to this store")
)
