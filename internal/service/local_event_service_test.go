package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aina-app/aina-api/internal/models"
	"github.com/aina-app/aina-api/pkg/openagenda"
)

type localSourceStub struct {
	enabled bool
	events  []models.LocalEvent
	err     error
	panics  bool
	queries []openagenda.Query
}

func (s *localSourceStub) Enabled() bool { return s.enabled }

func (s *localSourceStub) Search(ctx context.Context, q openagenda.Query) ([]models.LocalEvent, error) {
	s.queries = append(s.queries, q)
	if s.panics {
		panic("decoder exploded")
	}
	return s.events, s.err
}

type businessStub struct {
	business *models.Business
	err      error
}

func (s businessStub) FindByUserID(ctx context.Context, userID string) (*models.Business, error) {
	return s.business, s.err
}

func TestLocalEventServiceSearchesAroundCity(t *testing.T) {
	source := &localSourceStub{enabled: true, events: []models.LocalEvent{{ID: "1", Title: "Marché nocturne"}}}
	svc := NewLocalEventService(source, nil, nil, nil)
	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	events := svc.Search(context.Background(), "12 rue des Lilas, 69003 Lyon, France", from, from.AddDate(0, 1, 0), 10)
	require.Len(t, events, 1)
	require.Len(t, source.queries, 1)
	assert.Equal(t, "Lyon", source.queries[0].Location)
	assert.Equal(t, 10, source.queries[0].Limit)
}

func TestLocalEventServiceNeverFails(t *testing.T) {
	from := time.Now()
	to := from.AddDate(0, 0, 30)

	failing := &localSourceStub{enabled: true, err: errors.New("timeout")}
	assert.Empty(t, NewLocalEventService(failing, nil, nil, nil).Search(context.Background(), "Paris", from, to, 5))

	panicking := &localSourceStub{enabled: true, panics: true}
	events := NewLocalEventService(panicking, nil, nil, nil).Search(context.Background(), "Paris", from, to, 5)
	assert.NotNil(t, events)
	assert.Empty(t, events)

	disabled := &localSourceStub{enabled: false}
	assert.Empty(t, NewLocalEventService(disabled, nil, nil, nil).Search(context.Background(), "Paris", from, to, 5))
	assert.Empty(t, disabled.queries)

	var nilSvc *LocalEventService
	assert.Empty(t, nilSvc.ForUser(context.Background(), "user-1", from, to, 5))
}

func TestLocalEventServiceSkipsEmptyAddress(t *testing.T) {
	source := &localSourceStub{enabled: true}
	metrics := NewMetricsService()
	svc := NewLocalEventService(source, nil, metrics, nil)

	events := svc.Search(context.Background(), "   ", time.Now(), time.Now(), 5)
	assert.Empty(t, events)
	assert.Empty(t, source.queries)
}

func TestLocalEventServiceForUser(t *testing.T) {
	source := &localSourceStub{enabled: true, events: []models.LocalEvent{{ID: "9", Title: "Brocante"}}}
	address := "Place du Capitole, 31000 Toulouse"
	svc := NewLocalEventService(source, businessStub{business: &models.Business{UserID: "user-1", Address: &address}}, nil, nil)

	events := svc.ForUser(context.Background(), "user-1", time.Now(), time.Now().AddDate(0, 0, 7), 20)
	require.Len(t, events, 1)
	assert.Equal(t, "Toulouse", source.queries[0].Location)

	missing := NewLocalEventService(source, businessStub{err: errors.New("no rows")}, nil, nil)
	assert.Empty(t, missing.ForUser(context.Background(), "user-2", time.Now(), time.Now(), 20))
}
