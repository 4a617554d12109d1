package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aina-app/aina-api/internal/autoevents"
	"github.com/aina-app/aina-api/internal/dto"
	"github.com/aina-app/aina-api/internal/models"
	appErrors "github.com/aina-app/aina-api/pkg/errors"
)

// Calendar views.
const (
	ViewUpcoming = "upcoming"
	ViewCalendar = "calendar"
)

const (
	minYear          = 1583
	maxYear          = 9999
	maxCalendarRange = 3 * 366
)

type manualEventLister interface {
	ListByUser(ctx context.Context, userID string, from, to *time.Time) ([]models.ManualEvent, error)
}

type localEventFinder interface {
	ForUser(ctx context.Context, userID string, from, to time.Time, limit int) []models.LocalEvent
}

type hiddenKeyReader interface {
	Keys(ctx context.Context, userID string) (autoevents.HiddenSet, bool, error)
}

// AggregationConfig tunes the calendar views.
type AggregationConfig struct {
	Location       *time.Location
	DaysAhead      int
	DashboardLimit int
	LocalLimit     int
}

// AggregationService builds the merged calendar of a user from automatic,
// manual and local events.
type AggregationService struct {
	events  manualEventLister
	local   localEventFinder
	hidden  hiddenKeyReader
	metrics *MetricsService
	logger  *zap.Logger
	cfg     AggregationConfig
	now     func() time.Time
}

// NewAggregationService constructs the service.
func NewAggregationService(events manualEventLister, local localEventFinder, hidden hiddenKeyReader, metrics *MetricsService, logger *zap.Logger, cfg AggregationConfig) *AggregationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.DaysAhead <= 0 {
		cfg.DaysAhead = autoevents.DefaultDaysAhead
	}
	if cfg.DashboardLimit <= 0 {
		cfg.DashboardLimit = 8
	}
	if cfg.LocalLimit <= 0 {
		cfg.LocalLimit = 20
	}
	return &AggregationService{events: events, local: local, hidden: hidden, metrics: metrics, logger: logger, cfg: cfg, now: time.Now}
}

// Today returns local midnight in the configured location.
func (s *AggregationService) Today() time.Time {
	return autoevents.StartOfDay(s.now().In(s.cfg.Location))
}

// Upcoming returns the dashboard list: automatic events of the rolling
// window, suggested ones only unless q.All, merged and truncated.
func (s *AggregationService) Upcoming(ctx context.Context, userID string, q dto.UpcomingQuery) (*dto.CalendarResponse, error) {
	start := time.Now()
	defer func() { s.metrics.ObserveAggregation(ViewUpcoming, time.Since(start)) }()

	days := q.Days
	if days <= 0 {
		days = s.cfg.DaysAhead
	}
	if days > 366 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "days must be at most 366")
	}
	limit := q.Limit
	if limit <= 0 {
		limit = s.cfg.DashboardLimit
	}

	today := s.Today()
	end := endOfDay(today.AddDate(0, 0, days))

	upcoming := autoevents.Upcoming(today, days)
	auto := make([]models.CalendarItem, 0, len(upcoming))
	for _, ev := range upcoming {
		if !q.All && !ev.SuggestPost {
			continue
		}
		auto = append(auto, autoevents.FromUpcoming(ev))
	}

	return s.aggregate(ctx, userID, today, end, auto, limit)
}

// Calendar returns every event between the requested dates, both
// inclusive. The current month is used when no bound is given.
func (s *AggregationService) Calendar(ctx context.Context, userID string, q dto.DateRangeQuery) (*dto.CalendarResponse, error) {
	start := time.Now()
	defer func() { s.metrics.ObserveAggregation(ViewCalendar, time.Since(start)) }()

	from, to, err := s.resolveRange(q)
	if err != nil {
		return nil, err
	}
	return s.Range(ctx, userID, from, to)
}

// Range merges the automatic events generated for [from, to] with the
// user's events. Bounds are read as dates in the configured location.
func (s *AggregationService) Range(ctx context.Context, userID string, from, to time.Time) (*dto.CalendarResponse, error) {
	from = autoevents.StartOfDay(from.In(s.cfg.Location))
	to = endOfDay(autoevents.StartOfDay(to.In(s.cfg.Location)))

	generated := autoevents.GenerateRange(from, to)
	auto := make([]models.CalendarItem, 0, len(generated))
	for _, ev := range generated {
		auto = append(auto, autoevents.FromAuto(ev))
	}
	return s.aggregate(ctx, userID, from, to, auto, 0)
}

// Year returns the raw automatic events of year.
func (s *AggregationService) Year(year int) (*dto.YearEventsResponse, error) {
	if year < minYear || year > maxYear {
		return nil, appErrors.Clone(appErrors.ErrValidation, "year must be between 1583 and 9999")
	}
	return &dto.YearEventsResponse{Year: year, Events: autoevents.GenerateYear(year, s.cfg.Location)}, nil
}

func (s *AggregationService) aggregate(ctx context.Context, userID string, from, to time.Time, auto []models.CalendarItem, limit int) (*dto.CalendarResponse, error) {
	if userID == "" {
		return nil, appErrors.ErrUnauthorized
	}

	var (
		manual   []models.ManualEvent
		local    []models.LocalEvent
		hidden   autoevents.HiddenSet
		cacheHit bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		events, err := s.events.ListByUser(gctx, userID, &from, &to)
		if err != nil {
			return appErrors.Internal(err, "failed to load events")
		}
		manual = events
		return nil
	})
	g.Go(func() error {
		local = s.local.ForUser(gctx, userID, from, to, s.cfg.LocalLimit)
		return nil
	})
	g.Go(func() error {
		keys, hit, err := s.hidden.Keys(gctx, userID)
		if err != nil {
			s.logger.Warn("hidden events unavailable, showing all suggestions", zap.String("user_id", userID), zap.Error(err))
			return nil
		}
		hidden, cacheHit = keys, hit
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	today := s.Today()
	manualItems := make([]models.CalendarItem, 0, len(manual))
	for _, ev := range manual {
		manualItems = append(manualItems, withDaysUntil(autoevents.FromManual(ev, s.cfg.Location), today))
	}
	localItems := make([]models.CalendarItem, 0, len(local))
	for _, ev := range local {
		localItems = append(localItems, withDaysUntil(autoevents.FromLocal(ev, s.cfg.Location), today))
	}

	items := autoevents.Merge(autoevents.MergeInput{
		Auto:   auto,
		Local:  localItems,
		Manual: manualItems,
		Hidden: hidden,
		Limit:  limit,
	})

	return &dto.CalendarResponse{
		Range: dto.CalendarRange{
			StartDate: autoevents.ISODate(from),
			EndDate:   autoevents.ISODate(to),
		},
		Events:     items,
		LocalCount: len(localItems),
		CacheHit:   cacheHit,
	}, nil
}

func (s *AggregationService) resolveRange(q dto.DateRangeQuery) (time.Time, time.Time, error) {
	today := s.Today()
	var from, to time.Time
	switch {
	case q.StartDate == nil && q.EndDate == nil:
		from = time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, s.cfg.Location)
		to = from.AddDate(0, 1, -1)
	case q.StartDate == nil:
		to = q.EndDate.In(s.cfg.Location)
		from = time.Date(to.Year(), to.Month(), 1, 0, 0, 0, 0, s.cfg.Location)
	case q.EndDate == nil:
		from = q.StartDate.In(s.cfg.Location)
		to = from.AddDate(0, 1, -1)
	default:
		from = q.StartDate.In(s.cfg.Location)
		to = q.EndDate.In(s.cfg.Location)
	}

	if to.Before(from) {
		return time.Time{}, time.Time{}, appErrors.Clone(appErrors.ErrValidation, "start_date cannot be after end_date")
	}
	if autoevents.DaysBetween(from, to) > maxCalendarRange {
		return time.Time{}, time.Time{}, appErrors.Clone(appErrors.ErrValidation, "date range is limited to three years")
	}
	return from, to, nil
}

func withDaysUntil(item models.CalendarItem, today time.Time) models.CalendarItem {
	days := autoevents.DaysBetween(today, item.Date)
	item.DaysUntil = &days
	return item
}

func endOfDay(day time.Time) time.Time {
	return day.AddDate(0, 0, 1).Add(-time.Nanosecond)
}
