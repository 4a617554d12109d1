package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/aina-app/aina-api/internal/autoevents"
	"github.com/aina-app/aina-api/internal/models"
	appErrors "github.com/aina-app/aina-api/pkg/errors"
)

func strPtr(v string) *string { return &v }

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

type eventRepoStub struct {
	mu      sync.Mutex
	events  map[string]*models.ManualEvent
	listErr error
	nextID  int
}

func newEventRepoStub(events ...models.ManualEvent) *eventRepoStub {
	stub := &eventRepoStub{events: make(map[string]*models.ManualEvent)}
	for i := range events {
		ev := events[i]
		stub.events[ev.ID] = &ev
	}
	return stub
}

func (s *eventRepoStub) ListByUser(ctx context.Context, userID string, from, to *time.Time) ([]models.ManualEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]models.ManualEvent, 0)
	for _, ev := range s.events {
		if ev.UserID != userID {
			continue
		}
		if from != nil && ev.EventDate.Before(*from) {
			continue
		}
		if to != nil && ev.EventDate.After(*to) {
			continue
		}
		out = append(out, *ev)
	}
	return out, nil
}

func (s *eventRepoStub) GetByID(ctx context.Context, id, userID string) (*models.ManualEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev, ok := s.events[id]
	if !ok || ev.UserID != userID {
		return nil, sql.ErrNoRows
	}
	copied := *ev
	return &copied, nil
}

func (s *eventRepoStub) Create(ctx context.Context, event *models.ManualEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	event.ID = fmt.Sprintf("event-%d", s.nextID)
	copied := *event
	s.events[event.ID] = &copied
	return nil
}

func (s *eventRepoStub) Update(ctx context.Context, event *models.ManualEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.events[event.ID]
	if !ok || current.UserID != event.UserID {
		return sql.ErrNoRows
	}
	copied := *event
	s.events[event.ID] = &copied
	return nil
}

func (s *eventRepoStub) Delete(ctx context.Context, id, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev, ok := s.events[id]
	if !ok || ev.UserID != userID {
		return sql.ErrNoRows
	}
	delete(s.events, id)
	return nil
}

type hiddenKeysStub struct {
	keys []string
	hit  bool
	err  error
}

func (s hiddenKeysStub) Keys(ctx context.Context, userID string) (autoevents.HiddenSet, bool, error) {
	if s.err != nil {
		return nil, false, s.err
	}
	return autoevents.NewHiddenSet(s.keys...), s.hit, nil
}

type localFinderStub struct {
	events []models.LocalEvent
	calls  int
}

func (s *localFinderStub) ForUser(ctx context.Context, userID string, from, to time.Time, limit int) []models.LocalEvent {
	s.calls++
	return s.events
}

type memoryCacheRepo struct {
	mu      sync.Mutex
	values  map[string]interface{}
	gets    int
	deletes []string
}

func newMemoryCacheRepo() *memoryCacheRepo {
	return &memoryCacheRepo{values: make(map[string]interface{})}
}

func (m *memoryCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	value, ok := m.values[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	if target, ok := dest.(*[]string); ok {
		if keys, ok := value.([]string); ok {
			*target = append([]string(nil), keys...)
			return nil
		}
	}
	return errors.New("unsupported cache value")
}

func (m *memoryCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *memoryCacheRepo) Delete(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.values, key)
		m.deletes = append(m.deletes, key)
	}
	return nil
}
