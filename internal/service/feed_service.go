package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/aina-app/aina-api/internal/dto"
	appErrors "github.com/aina-app/aina-api/pkg/errors"
	"github.com/aina-app/aina-api/pkg/storage"
)

// FeedScopeCalendar grants read access to the merged calendar.
const FeedScopeCalendar = "calendar"

type calendarExporter interface {
	Export(ctx context.Context, userID string, req dto.ExportRequest) (*dto.ExportResult, error)
}

// FeedService issues and serves signed iCalendar subscription URLs, so
// calendar apps can poll without a bearer token.
type FeedService struct {
	signer   *storage.FeedSigner
	exporter calendarExporter
	logger   *zap.Logger
}

// NewFeedService constructs the service.
func NewFeedService(signer *storage.FeedSigner, exporter calendarExporter, logger *zap.Logger) *FeedService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeedService{signer: signer, exporter: exporter, logger: logger}
}

// Issue returns a subscription URL rooted at baseURL for userID.
func (s *FeedService) Issue(userID, baseURL string) (*dto.FeedResponse, error) {
	if userID == "" {
		return nil, appErrors.ErrUnauthorized
	}
	token, expiresAt, err := s.signer.Issue(userID, FeedScopeCalendar)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to issue feed token")
	}
	return &dto.FeedResponse{
		URL:       strings.TrimRight(baseURL, "/") + "/feeds/" + token + ".ics",
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// Render verifies token and renders the owner's upcoming calendar.
func (s *FeedService) Render(ctx context.Context, token string) (*dto.ExportResult, error) {
	claims, err := s.signer.Verify(strings.TrimSuffix(token, ".ics"))
	if err != nil {
		msg := "invalid feed token"
		if errors.Is(err, storage.ErrExpiredToken) {
			msg = "feed token expired"
		}
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, msg)
	}
	if claims.Scope != FeedScopeCalendar {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "feed token scope not allowed")
	}

	result, err := s.exporter.Export(ctx, claims.UserID, dto.ExportRequest{Format: dto.ExportFormatICS})
	if err != nil {
		s.logger.Warn("feed render failed", zap.String("user_id", claims.UserID), zap.Error(err))
		return nil, err
	}
	result.Filename = ""
	return result, nil
}
