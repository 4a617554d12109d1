package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHiddenEventRepositoryListKeys(t *testing.T) {
	db, mock := newRepoMock(t)
	repo := NewHiddenEventRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT event_key FROM hidden_events WHERE user_id = $1")).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"event_key"}).AddRow("noel-2025-12-25").AddRow("black-friday-2025-11-28"))

	keys, err := repo.ListKeys(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"noel-2025-12-25", "black-friday-2025-11-28"}, keys)
}

func TestHiddenEventRepositoryList(t *testing.T) {
	db, mock := newRepoMock(t)
	repo := NewHiddenEventRepository(db)

	created := time.Date(2025, time.May, 2, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, event_key, created_at FROM hidden_events WHERE user_id = $1 ORDER BY created_at DESC")).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "event_key", "created_at"}).AddRow("h-1", "user-1", "halloween-2025-10-31", created))

	items, err := repo.List(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "halloween-2025-10-31", items[0].EventKey)
	assert.Equal(t, created, items[0].CreatedAt)
}

func TestHiddenEventRepositoryInsertIsIdempotent(t *testing.T) {
	db, mock := newRepoMock(t)
	repo := NewHiddenEventRepository(db)

	query := regexp.QuoteMeta("ON CONFLICT (user_id, event_key) DO NOTHING")
	mock.ExpectExec(query).WithArgs(sqlmock.AnyArg(), "user-1", "noel-2025-12-25", sqlmock.AnyArg()).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(query).WithArgs(sqlmock.AnyArg(), "user-1", "noel-2025-12-25", sqlmock.AnyArg()).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Insert(context.Background(), "user-1", "noel-2025-12-25"))
	require.NoError(t, repo.Insert(context.Background(), "user-1", "noel-2025-12-25"))
}

func TestHiddenEventRepositoryDelete(t *testing.T) {
	db, mock := newRepoMock(t)
	repo := NewHiddenEventRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM hidden_events WHERE user_id = $1 AND event_key = $2")).
		WithArgs("user-1", "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), "user-1", "missing"), sql.ErrNoRows)
}
