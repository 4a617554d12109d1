package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/aina-app/aina-api/internal/models"
	"github.com/aina-app/aina-api/pkg/openagenda"
)

type localEventSource interface {
	Enabled() bool
	Search(ctx context.Context, q openagenda.Query) ([]models.LocalEvent, error)
}

type businessReader interface {
	FindByUserID(ctx context.Context, userID string) (*models.Business, error)
}

// LocalEventService looks up public events near a business. Lookups are
// best-effort: every failure yields an empty list.
type LocalEventService struct {
	source     localEventSource
	businesses businessReader
	metrics    *MetricsService
	logger     *zap.Logger
}

// NewLocalEventService constructs the service.
func NewLocalEventService(source localEventSource, businesses businessReader, metrics *MetricsService, logger *zap.Logger) *LocalEventService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocalEventService{source: source, businesses: businesses, metrics: metrics, logger: logger}
}

// Search returns the events around a free-text address between from and
// to. An address without city or postal code is not sent upstream.
func (s *LocalEventService) Search(ctx context.Context, address string, from, to time.Time, limit int) (events []models.LocalEvent) {
	events = []models.LocalEvent{}
	if s == nil || s.source == nil || !s.source.Enabled() {
		return events
	}
	parsed, ok := openagenda.ParseAddress(address)
	location := parsed.SearchLocation()
	if !ok || location == "" {
		s.metrics.RecordLocalEventFetch(LocalFetchSkipped)
		return events
	}

	defer func() {
		if r := recover(); r != nil {
			s.metrics.RecordLocalEventFetch(LocalFetchError)
			s.logger.Error("local events lookup panicked", zap.String("location", location), zap.Error(fmt.Errorf("%v", r)))
			events = []models.LocalEvent{}
		}
	}()

	found, err := s.source.Search(ctx, openagenda.Query{Location: location, From: from, To: to, Limit: limit})
	if err != nil {
		s.metrics.RecordLocalEventFetch(LocalFetchError)
		s.logger.Warn("local events lookup failed", zap.String("location", location), zap.Error(err))
		return events
	}
	s.metrics.RecordLocalEventFetch(LocalFetchOK)
	if found != nil {
		events = found
	}
	return events
}

// ForUser resolves the user's business address and searches around it.
func (s *LocalEventService) ForUser(ctx context.Context, userID string, from, to time.Time, limit int) []models.LocalEvent {
	if s == nil || s.businesses == nil || s.source == nil || !s.source.Enabled() {
		return []models.LocalEvent{}
	}
	business, err := s.businesses.FindByUserID(ctx, userID)
	if err != nil {
		s.logger.Debug("no business address for local events", zap.String("user_id", userID), zap.Error(err))
		return []models.LocalEvent{}
	}
	return s.Search(ctx, business.AddressOrEmpty(), from, to, limit)
}
