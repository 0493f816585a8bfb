package qrtoken

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrTokenMismatch is returned when a presented token does not match the
// store's currently issued token, or the issued token has expired.
var ErrTokenMismatch = errors.New("qr token does not match or has expired")

// Token is the opaque credential a store displays as a QR code. Employees
// scan it and send it back with their punch; the phone UI polls the issue
// endpoint to pick up rotations.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// Service issues one short-lived token per store and validates presented
// tokens against it. The token value is opaque; nothing is encoded in it.
type Service interface {
	IssueOrGet(storeID string, refresh bool) Token
	Validate(storeID string, presented string) error
}

type tokenService struct {
	ttl    time.Duration
	now    func() time.Time
	mu     sync.RWMutex
	tokens map[string]Token
}

func NewService(ttl time.Duration) Service {
	return &tokenService{
		ttl:    ttl,
		now:    time.Now,
		tokens: make(map[string]Token),
	}
}

// NewServiceWithClock is used by tests to control expiry.
func NewServiceWithClock(ttl time.Duration, now func() time.Time) Service {
	return &tokenService{
		ttl:    ttl,
		now:    now,
		tokens: make(map[string]Token),
	}
}

// IssueOrGet returns the store's live token, minting a new one when none
// exists, the current one has expired, or the caller forces a refresh.
func (s *tokenService) IssueOrGet(storeID string, refresh bool) Token {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.tokens[storeID]
	if ok && !refresh && s.now().Before(current.ExpiresAt) {
		return current
	}

	issued := Token{
		Value:     uuid.NewString(),
		ExpiresAt: s.now().Add(s.ttl),
	}
	s.tokens[storeID] = issued
	return issued
}

func (s *tokenService) Validate(storeID string, presented string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	current, ok := s.tokens[storeID]
	if !ok || current.Value != presented {
		return ErrTokenMismatch
	}
	if !s.now().Before(current.ExpiresAt) {
		return ErrTokenMismatch
	}
	return nil
}
