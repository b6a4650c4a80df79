package service

import (
	"context"
	"log/slog"

	"github.com/sayuryunur/storefront/internal/api/middleware"
	"github.com/sayuryunur/storefront/internal/cache"
	"github.com/sayuryunur/storefront/internal/errors"
)

// DefaultPage is shown when no navigation tab was remembered.
const DefaultPage = "home"

type SessionService interface {
	Page(ctx context.Context, shopperID string) string
	SetPage(ctx context.Context, shopperID, page string) error
}

type sessionService struct {
	cache cache.Cache
}

func NewSessionService(c cache.Cache) SessionService {
	return &sessionService{cache: c}
}

func (s *sessionService) Page(ctx context.Context, shopperID string) string {

	var page string

	found, err := s.cache.Get(ctx, cache.Key(cache.PageKeyPrefix, shopperID), &page)
	if err != nil {
		middleware.LoggerFromContext(ctx).Warn("Current page unreadable", slog.Any("error", err))
		return DefaultPage
	}

	if !found || page == "" {
		return DefaultPage
	}

	return page
}

func (s *sessionService) SetPage(ctx context.Context, shopperID, page string) error {

	if err := s.cache.Set(ctx, cache.Key(cache.PageKeyPrefix, shopperID), page, 0); err != nil {
		return errors.PersistenceFailed("Failed to remember page").WithError(err)
	}

	return nil
}
