package qrtoken

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueOrGet_StableUntilExpiry(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := NewServiceWithClock(5*time.Minute, func() time.Time { return now })

	first := svc.IssueOrGet("store-1", false)
	require.NotEmpty(t, first.Value)
	assert.Equal(t, now.Add(5*time.Minute), first.ExpiresAt)

	// Same token while it is still live.
	second := svc.IssueOrGet("store-1", false)
	assert.Equal(t, first.Value, second.Value)

	// New token once the old one expires.
	now = now.Add(6 * time.Minute)
	third := svc.IssueOrGet("store-1", false)
	assert.NotEqual(t, first.Value, third.Value)
}

func TestIssueOrGet_RefreshRotates(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := NewServiceWithClock(5*time.Minute, func() time.Time { return now })

	first := svc.IssueOrGet("store-1", false)
	rotated := svc.IssueOrGet("store-1", true)
	assert.NotEqual(t, first.Value, rotated.Value)

	// The old token no longer validates.
	assert.ErrorIs(t, svc.Validate("store-1", first.Value), ErrTokenMismatch)
	assert.NoError(t, svc.Validate("store-1", rotated.Value))
}

func TestIssueOrGet_PerStoreIsolation(t *testing.T) {
	svc := NewService(5 * time.Minute)

	a := svc.IssueOrGet("store-a", false)
	b := svc.IssueOrGet("store-b", false)
	assert.NotEqual(t, a.Value, b.Value)

	assert.NoError(t, svc.Validate("store-a", a.Value))
	assert.ErrorIs(t, svc.Validate("store-a", b.Value), ErrTokenMismatch)
}

func TestValidate_Expired(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := NewServiceWithClock(5*time.Minute, func() time.Time { return now })

	token := svc.IssueOrGet("store-1", false)
	assert.NoError(t, svc.Validate("store-1", token.Value))

	now = now.Add(5 * time.Minute)
	assert.ErrorIs(t, svc.Validate("store-1", token.Value), ErrTokenMismatch)
}

func TestValidate_UnknownStore(t *testing.T) {
	svc := NewService(5 * time.Minute)
	assert.ErrorIs(t, svc.Validate("nope", "anything"), ErrTokenMismatch)
}
