package attendance

import "errors"

// Attendance domain errors
var (
	// Punch errors
	ErrInvalidQRToken   = errors.New("qr token is invalid or expired")
	ErrAlreadyCheckedIn = errors.New("you have already checked in; check out first")
	ErrNotCheckedIn     = errors.New("you have not checked in yet")

	// General errors
	ErrEventNotFound = errors.New("attendance event not found")
)
