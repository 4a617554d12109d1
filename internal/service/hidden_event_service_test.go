package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aina-app/aina-api/internal/dto"
	"github.com/aina-app/aina-api/internal/models"
	"github.com/aina-app/aina-api/pkg/cache"
	appErrors "github.com/aina-app/aina-api/pkg/errors"
)

type hiddenRepoStub struct {
	keys      map[string][]string
	listCalls int
	insertErr error
}

func newHiddenRepoStub() *hiddenRepoStub {
	return &hiddenRepoStub{keys: make(map[string][]string)}
}

func (s *hiddenRepoStub) List(ctx context.Context, userID string) ([]models.HiddenEvent, error) {
	out := make([]models.HiddenEvent, 0, len(s.keys[userID]))
	for _, key := range s.keys[userID] {
		out = append(out, models.HiddenEvent{UserID: userID, EventKey: key, CreatedAt: time.Now()})
	}
	return out, nil
}

func (s *hiddenRepoStub) ListKeys(ctx context.Context, userID string) ([]string, error) {
	s.listCalls++
	return append([]string(nil), s.keys[userID]...), nil
}

func (s *hiddenRepoStub) Insert(ctx context.Context, userID, key string) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	for _, existing := range s.keys[userID] {
		if existing == key {
			return nil
		}
	}
	s.keys[userID] = append(s.keys[userID], key)
	return nil
}

func (s *hiddenRepoStub) Delete(ctx context.Context, userID, key string) error {
	keys := s.keys[userID]
	for i, existing := range keys {
		if existing == key {
			s.keys[userID] = append(keys[:i], keys[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

func newHiddenService(repo *hiddenRepoStub, cacheRepo *memoryCacheRepo) *HiddenEventService {
	var cacheSvc *CacheService
	if cacheRepo != nil {
		cacheSvc = NewCacheService(cacheRepo, nil, time.Minute, nil, true)
	}
	return NewHiddenEventService(repo, cacheSvc, time.Minute, time.UTC, nil, nil)
}

func TestHiddenEventServiceHideDerivesKey(t *testing.T) {
	repo := newHiddenRepoStub()
	svc := newHiddenService(repo, nil)

	resp, err := svc.Hide(context.Background(), "user-1", dto.HideEventRequest{Title: "Fête des Pères", Date: "2025-06-15"})
	require.NoError(t, err)
	assert.Equal(t, "f-te-des-p-res-2025-06-15", resp.Key)

	set, _, err := svc.Keys(context.Background(), "user-1")
	require.NoError(t, err)
	assert.True(t, set.Has("f-te-des-p-res-2025-06-15"))
}

func TestHiddenEventServiceHideIsIdempotent(t *testing.T) {
	repo := newHiddenRepoStub()
	svc := newHiddenService(repo, nil)
	req := dto.HideEventRequest{Title: "Halloween", Date: "2025-10-31"}

	_, err := svc.Hide(context.Background(), "user-1", req)
	require.NoError(t, err)
	_, err = svc.Hide(context.Background(), "user-1", req)
	require.NoError(t, err)

	assert.Len(t, repo.keys["user-1"], 1)
}

func TestHiddenEventServiceHideValidation(t *testing.T) {
	svc := newHiddenService(newHiddenRepoStub(), nil)

	cases := []dto.HideEventRequest{
		{Title: "Halloween", Date: "31/10/2025"},
		{Title: "", Date: "2025-10-31"},
		{Title: "Mon rendez-vous", Date: "2025-10-31", Source: "manual"},
		{Title: "Halloween", Date: "2025-10-31", Source: "other"},
	}
	for _, req := range cases {
		_, err := svc.Hide(context.Background(), "user-1", req)
		assert.True(t, errors.Is(err, appErrors.ErrValidation), "request %+v", req)
	}
}

func TestHiddenEventServiceHideStoreFailure(t *testing.T) {
	repo := newHiddenRepoStub()
	repo.insertErr = errors.New("db down")
	svc := newHiddenService(repo, nil)

	_, err := svc.Hide(context.Background(), "user-1", dto.HideEventRequest{Title: "Halloween", Date: "2025-10-31"})
	assert.True(t, errors.Is(err, appErrors.ErrInternal))
}

func TestHiddenEventServiceKeysUsesCache(t *testing.T) {
	repo := newHiddenRepoStub()
	repo.keys["user-1"] = []string{"halloween-2025-10-31"}
	cacheRepo := newMemoryCacheRepo()
	svc := newHiddenService(repo, cacheRepo)

	_, hit, err := svc.Keys(context.Background(), "user-1")
	require.NoError(t, err)
	assert.False(t, hit)

	set, hit, err := svc.Keys(context.Background(), "user-1")
	require.NoError(t, err)
	assert.True(t, hit)
	assert.True(t, set.Has("halloween-2025-10-31"))
	assert.Equal(t, 1, repo.listCalls)
}

func TestHiddenEventServiceMutationsInvalidateCache(t *testing.T) {
	repo := newHiddenRepoStub()
	cacheRepo := newMemoryCacheRepo()
	svc := newHiddenService(repo, cacheRepo)

	_, _, err := svc.Keys(context.Background(), "user-1")
	require.NoError(t, err)

	_, err = svc.Hide(context.Background(), "user-1", dto.HideEventRequest{Title: "Halloween", Date: "2025-10-31"})
	require.NoError(t, err)
	assert.Contains(t, cacheRepo.deletes, cache.Key("user-1", hiddenKeysResource))

	set, hit, err := svc.Keys(context.Background(), "user-1")
	require.NoError(t, err)
	assert.False(t, hit)
	assert.True(t, set.Has("halloween-2025-10-31"))

	require.NoError(t, svc.Restore(context.Background(), "user-1", "halloween-2025-10-31"))
	set, _, err = svc.Keys(context.Background(), "user-1")
	require.NoError(t, err)
	assert.False(t, set.Has("halloween-2025-10-31"))
}

func TestHiddenEventServiceRestoreUnknownKey(t *testing.T) {
	svc := newHiddenService(newHiddenRepoStub(), nil)

	err := svc.Restore(context.Background(), "user-1", "nope-2025-01-01")
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))

	err = svc.Restore(context.Background(), "user-1", " ")
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}

func TestHiddenEventServiceList(t *testing.T) {
	repo := newHiddenRepoStub()
	repo.keys["user-1"] = []string{"a-2025-01-01", "b-2025-02-02"}
	svc := newHiddenService(repo, nil)

	items, err := svc.List(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "a-2025-01-01", items[0].Key)
	assert.NotNil(t, items[0].CreatedAt)
}
