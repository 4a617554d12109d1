package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aina-app/aina-api/internal/models"
)

func TestNotificationRepositoryCreateIfAbsent(t *testing.T) {
	db, mock := newRepoMock(t)
	repo := NewNotificationRepository(db)

	key := "noel-2025-12-25"
	query := regexp.QuoteMeta("ON CONFLICT (user_id, type, event_key) DO NOTHING")
	mock.ExpectExec(query).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(query).WillReturnResult(sqlmock.NewResult(0, 0))

	n := &models.Notification{UserID: "user-1", Type: models.NotificationTypeEventReminder, Title: "Noël", Message: "Dans 7 jours", EventKey: &key}
	created, err := repo.CreateIfAbsent(context.Background(), n)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEmpty(t, n.ID)

	created, err = repo.CreateIfAbsent(context.Background(), &models.Notification{UserID: "user-1", Type: models.NotificationTypeEventReminder, EventKey: &key})
	require.NoError(t, err)
	assert.False(t, created)
}
