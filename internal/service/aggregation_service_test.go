package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aina-app/aina-api/internal/dto"
	"github.com/aina-app/aina-api/internal/models"
	appErrors "github.com/aina-app/aina-api/pkg/errors"
)

var aggregationNow = time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

func newAggregationService(events *eventRepoStub, local *localFinderStub, hidden hiddenKeysStub) *AggregationService {
	if local == nil {
		local = &localFinderStub{}
	}
	svc := NewAggregationService(events, local, hidden, nil, nil, AggregationConfig{Location: time.UTC, DaysAhead: 30, DashboardLimit: 10})
	svc.now = fixedClock(aggregationNow)
	return svc
}

func titles(items []models.CalendarItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Title)
	}
	return out
}

func TestAggregationUpcomingSuggestedWindow(t *testing.T) {
	svc := newAggregationService(newEventRepoStub(), nil, hiddenKeysStub{})

	resp, err := svc.Upcoming(context.Background(), "user-1", dto.UpcomingQuery{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Fête des Pères", "Été", "Fête de la Musique", "Soldes d'été"}, titles(resp.Events))
	assert.Equal(t, "2025-06-10", resp.Range.StartDate)
	assert.Equal(t, "2025-07-10", resp.Range.EndDate)
	require.NotNil(t, resp.Events[0].DaysUntil)
	assert.Equal(t, 5, *resp.Events[0].DaysUntil)
}

func TestAggregationHiddenSuggestionKeepsManualTwin(t *testing.T) {
	events := newEventRepoStub(models.ManualEvent{
		ID:        "event-1",
		UserID:    "user-1",
		Title:     "Fête des Pères",
		EventDate: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		EventType: "promotion",
	})
	svc := newAggregationService(events, nil, hiddenKeysStub{keys: []string{"f-te-des-p-res-2025-06-15"}})

	resp, err := svc.Upcoming(context.Background(), "user-1", dto.UpcomingQuery{})
	require.NoError(t, err)

	var manual, auto int
	for _, item := range resp.Events {
		if item.Title != "Fête des Pères" {
			continue
		}
		if item.IsManual() {
			manual++
		} else {
			auto++
		}
	}
	assert.Equal(t, 1, manual)
	assert.Zero(t, auto)
	require.NotNil(t, resp.Events[0].DaysUntil)
	assert.Equal(t, 5, *resp.Events[0].DaysUntil)
}

func TestAggregationUpcomingLimitAndValidation(t *testing.T) {
	svc := newAggregationService(newEventRepoStub(), nil, hiddenKeysStub{})

	resp, err := svc.Upcoming(context.Background(), "user-1", dto.UpcomingQuery{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"Fête des Pères", "Été"}, titles(resp.Events))

	_, err = svc.Upcoming(context.Background(), "user-1", dto.UpcomingQuery{Days: 400})
	assert.True(t, errors.Is(err, appErrors.ErrValidation))

	_, err = svc.Upcoming(context.Background(), "", dto.UpcomingQuery{})
	assert.True(t, errors.Is(err, appErrors.ErrUnauthorized))
}

func TestAggregationManualStoreFailurePropagates(t *testing.T) {
	events := newEventRepoStub()
	events.listErr = errors.New("db down")
	svc := newAggregationService(events, nil, hiddenKeysStub{})

	_, err := svc.Upcoming(context.Background(), "user-1", dto.UpcomingQuery{})
	assert.True(t, errors.Is(err, appErrors.ErrInternal))
}

func TestAggregationHiddenFailureShowsEverything(t *testing.T) {
	svc := newAggregationService(newEventRepoStub(), nil, hiddenKeysStub{err: errors.New("cache and db down")})

	resp, err := svc.Upcoming(context.Background(), "user-1", dto.UpcomingQuery{})
	require.NoError(t, err)
	assert.Len(t, resp.Events, 4)
}

func TestAggregationCalendarDefaultsToCurrentMonth(t *testing.T) {
	local := &localFinderStub{events: []models.LocalEvent{
		{ID: "oa-1", Title: "Fête de la Musique", EventDate: time.Date(2025, 6, 21, 18, 0, 0, 0, time.UTC)},
		{ID: "oa-2", Title: "Marché de nuit", EventDate: time.Date(2025, 6, 28, 19, 0, 0, 0, time.UTC)},
	}}
	svc := newAggregationService(newEventRepoStub(), local, hiddenKeysStub{hit: true})

	resp, err := svc.Calendar(context.Background(), "user-1", dto.DateRangeQuery{})
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", resp.Range.StartDate)
	assert.Equal(t, "2025-06-30", resp.Range.EndDate)
	assert.Equal(t, []string{"Lundi de Pentecôte", "Fête des Pères", "Été", "Fête de la Musique", "Soldes d'été", "Marché de nuit"}, titles(resp.Events))
	assert.Equal(t, 2, resp.LocalCount)
	assert.True(t, resp.CacheHit)
	assert.Equal(t, 1, local.calls)
}

func TestAggregationCalendarRangeValidation(t *testing.T) {
	svc := newAggregationService(newEventRepoStub(), nil, hiddenKeysStub{})
	start := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	before := start.AddDate(0, 0, -1)
	_, err := svc.Calendar(context.Background(), "user-1", dto.DateRangeQuery{StartDate: &start, EndDate: &before})
	assert.True(t, errors.Is(err, appErrors.ErrValidation))

	far := start.AddDate(4, 0, 0)
	_, err = svc.Calendar(context.Background(), "user-1", dto.DateRangeQuery{StartDate: &start, EndDate: &far})
	assert.True(t, errors.Is(err, appErrors.ErrValidation))

	resp, err := svc.Calendar(context.Background(), "user-1", dto.DateRangeQuery{StartDate: &start})
	require.NoError(t, err)
	assert.Equal(t, "2025-07-09", resp.Range.EndDate)
}

func TestAggregationYear(t *testing.T) {
	svc := newAggregationService(newEventRepoStub(), nil, hiddenKeysStub{})

	resp, err := svc.Year(2025)
	require.NoError(t, err)
	assert.Equal(t, 2025, resp.Year)
	assert.Len(t, resp.Events, 32)

	_, err = svc.Year(1500)
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
	_, err = svc.Year(10000)
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}

func TestAggregationToday(t *testing.T) {
	paris := time.FixedZone("CEST", 2*3600)
	svc := NewAggregationService(newEventRepoStub(), &localFinderStub{}, hiddenKeysStub{}, nil, nil, AggregationConfig{Location: paris})
	svc.now = fixedClock(time.Date(2025, 6, 30, 23, 30, 0, 0, time.UTC))

	assert.Equal(t, time.Date(2025, 7, 1, 0, 0, 0, 0, paris), svc.Today())
}
