package user

import "errors"

var (
	ErrInvalidToken           = errors.New("invalid or missing access token")
	ErrOwnerAccessRequired    = errors.New("owner access required")
	ErrEmployeeAccessRequired = errors.New("employee access required")
	ErrStoreAccessDenied      = errors.New("no access to this store")
)
