package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/aina-app/aina-api/internal/autoevents"
	"github.com/aina-app/aina-api/internal/dto"
	"github.com/aina-app/aina-api/internal/models"
	"github.com/aina-app/aina-api/pkg/cache"
	appErrors "github.com/aina-app/aina-api/pkg/errors"
)

const hiddenKeysResource = "hidden_keys"

type hiddenEventRepository interface {
	List(ctx context.Context, userID string) ([]models.HiddenEvent, error)
	ListKeys(ctx context.Context, userID string) ([]string, error)
	Insert(ctx context.Context, userID, key string) error
	Delete(ctx context.Context, userID, key string) error
}

// HiddenEventService records the suggestions a user dismissed and serves
// the resulting key set, cached per user.
type HiddenEventService struct {
	repo      hiddenEventRepository
	cache     *CacheService
	ttl       time.Duration
	loc       *time.Location
	validator *validator.Validate
	logger    *zap.Logger
}

// NewHiddenEventService constructs the service. cache may be nil.
func NewHiddenEventService(repo hiddenEventRepository, cacheSvc *CacheService, ttl time.Duration, loc *time.Location, validate *validator.Validate, logger *zap.Logger) *HiddenEventService {
	if loc == nil {
		loc = time.UTC
	}
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HiddenEventService{repo: repo, cache: cacheSvc, ttl: ttl, loc: loc, validator: validate, logger: logger}
}

// Keys returns the user's hidden key set and whether it came from cache.
func (s *HiddenEventService) Keys(ctx context.Context, userID string) (autoevents.HiddenSet, bool, error) {
	cacheKey := cache.Key(userID, hiddenKeysResource)
	var cached []string
	if hit, _ := s.cache.Get(ctx, cacheKey, &cached); hit {
		return autoevents.NewHiddenSet(cached...), true, nil
	}

	keys, err := s.repo.ListKeys(ctx, userID)
	if err != nil {
		return nil, false, appErrors.Internal(err, "failed to load hidden events")
	}
	_ = s.cache.Set(ctx, cacheKey, keys, s.ttl)
	return autoevents.NewHiddenSet(keys...), false, nil
}

// Hide persists the key of a suggested event. Manual events cannot be
// hidden; they are deleted instead.
func (s *HiddenEventService) Hide(ctx context.Context, userID string, req dto.HideEventRequest) (*dto.HiddenEventResponse, error) {
	if userID == "" {
		return nil, appErrors.ErrUnauthorized
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid hide payload")
	}
	if models.EventSource(req.Source) == models.EventSourceManual {
		return nil, appErrors.Clone(appErrors.ErrValidation, "manual events cannot be hidden, delete them instead")
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "title is required")
	}
	date, err := time.ParseInLocation("2006-01-02", req.Date, s.loc)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "date must be YYYY-MM-DD")
	}

	key := autoevents.HiddenKey(req.Title, date)
	if err := s.repo.Insert(ctx, userID, key); err != nil {
		return nil, appErrors.Internal(err, "failed to hide event")
	}
	s.invalidate(ctx, userID)
	s.logger.Info("event hidden", zap.String("user_id", userID), zap.String("key", key))
	return &dto.HiddenEventResponse{Key: key}, nil
}

// List returns the dismissed suggestions, newest first.
func (s *HiddenEventService) List(ctx context.Context, userID string) ([]dto.HiddenEventResponse, error) {
	items, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list hidden events")
	}
	out := make([]dto.HiddenEventResponse, 0, len(items))
	for i := range items {
		out = append(out, dto.HiddenEventResponse{Key: items[i].EventKey, CreatedAt: &items[i].CreatedAt})
	}
	return out, nil
}

// Restore makes a dismissed suggestion visible again.
func (s *HiddenEventService) Restore(ctx context.Context, userID, key string) error {
	if strings.TrimSpace(key) == "" {
		return appErrors.Clone(appErrors.ErrValidation, "key is required")
	}
	if err := s.repo.Delete(ctx, userID, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "hidden event not found")
		}
		return appErrors.Internal(err, "failed to restore event")
	}
	s.invalidate(ctx, userID)
	return nil
}

func (s *HiddenEventService) invalidate(ctx context.Context, userID string) {
	_ = s.cache.Invalidate(ctx, cache.Key(userID, hiddenKeysResource))
}
