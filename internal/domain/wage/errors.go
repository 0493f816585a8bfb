package wage

import "errors"

var ErrProfileNotFound = errors.New("wage profile not found")
