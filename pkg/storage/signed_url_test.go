package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedSignerIssueAndVerify(t *testing.T) {
	signer := NewFeedSigner("secret", time.Hour)
	token, expiresAt, err := signer.Issue("user-1", "calendar")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := signer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "calendar", claims.Scope)
	assert.True(t, claims.ExpiresAt.Equal(expiresAt))
}

func TestFeedSignerExpired(t *testing.T) {
	signer := NewFeedSigner("secret", time.Minute)
	issued := time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC)
	signer.now = func() time.Time { return issued }

	token, _, err := signer.Issue("user-1", "calendar")
	require.NoError(t, err)

	signer.now = func() time.Time { return issued.Add(2 * time.Minute) }
	claims, err := signer.Verify(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestFeedSignerRejectsTampering(t *testing.T) {
	signer := NewFeedSigner("secret", time.Hour)
	token, _, err := signer.Issue("user-1", "calendar")
	require.NoError(t, err)

	other := NewFeedSigner("other", time.Hour)
	_, err = other.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	forged, _, err := other.Issue("user-2", "calendar")
	require.NoError(t, err)
	_, err = signer.Verify(forged)
	assert.ErrorIs(t, err, ErrInvalidToken)

	for _, bad := range []string{"", "abc", "abc.", ".sig"} {
		_, err = signer.Verify(bad)
		assert.ErrorIs(t, err, ErrInvalidToken, bad)
	}
}

func TestFeedSignerValidation(t *testing.T) {
	_, _, err := NewFeedSigner("secret", 0).Issue("", "calendar")
	assert.Error(t, err)
	_, _, err = NewFeedSigner("", 0).Issue("user-1", "calendar")
	assert.Error(t, err)
	_, _, err = NewFeedSigner("secret", 0).Issue("user|1", "calendar")
	assert.Error(t, err)
}
