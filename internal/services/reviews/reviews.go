// Package reviews содержит бизнес-логику отзывов: сохранение и выдачу списка с кешированием.
package reviews

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/institute-api/internal/lib/sl"
	"github.com/magabrotheeeer/institute-api/internal/metrics"
	"github.com/magabrotheeeer/institute-api/internal/models"
)

// Ключи кеша: полный список отзывов и счетчик его версии.
const (
	listCacheKey   = "reviews:all"
	listVersionKey = "reviews:ver"
)

// Repository определяет методы хранилища отзывов.
type Repository interface {
	CreateReview(ctx context.Context, in models.NewReview) (models.Review, error)
	GetAllReviews(ctx context.Context) ([]models.Review, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Version(ctx context.Context, versionKey string) (int64, error)
	Bump(ctx context.Context, versionKey string) error
	SetIfVersion(ctx context.Context, versionKey string, version int64, key string, value any, expiration time.Duration) (bool, error)
	Invalidate(ctx context.Context, key string) error
}

// Service реализует работу с отзывами. Кеш необязателен.
type Service struct {
	repo  Repository
	cache Cache
	ttl   time.Duration
	log   *slog.Logger
}

// NewService создает Service. Если cache равен nil, список всегда читается из хранилища.
func NewService(repo Repository, cache Cache, ttl time.Duration, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		ttl:   ttl,
		log:   log,
	}
}

// Create сохраняет отзыв, увеличивает версию списка и сбрасывает кеш.
func (s *Service) Create(ctx context.Context, in models.NewReview) (models.Review, error) {
	const op = "services.reviews.Create"

	review, err := s.repo.CreateReview(ctx, in)
	if err != nil {
		return models.Review{}, fmt.Errorf("%s: %w", op, err)
	}
	metrics.ReviewsCreated.Inc()
	s.log.Info("review created", slog.String("id", review.ID), slog.Int("rating", review.Rating))

	if s.cache != nil {
		if err := s.cache.Bump(ctx, listVersionKey); err != nil {
			s.log.Warn("failed to bump reviews cache version", sl.Err(err))
		}
		if err := s.cache.Invalidate(ctx, listCacheKey); err != nil {
			s.log.Warn("failed to invalidate reviews cache", sl.Err(err))
		}
	}
	return review, nil
}

// List возвращает все отзывы от новых к старым.
// Прочитанный список кладется в кеш, только если за время чтения не было Create.
func (s *Service) List(ctx context.Context) ([]models.Review, error) {
	const op = "services.reviews.List"

	cacheable := false
	var version int64
	if s.cache != nil {
		var cached []models.Review
		found, err := s.cache.Get(ctx, listCacheKey, &cached)
		if err != nil {
			s.log.Warn("failed to read reviews cache", sl.Err(err))
		}
		if found && cached != nil {
			return cached, nil
		}
		version, err = s.cache.Version(ctx, listVersionKey)
		if err != nil {
			s.log.Warn("failed to read reviews cache version", sl.Err(err))
		} else {
			cacheable = true
		}
	}

	result, err := s.repo.GetAllReviews(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if result == nil {
		result = []models.Review{}
	}

	if cacheable {
		stored, err := s.cache.SetIfVersion(ctx, listVersionKey, version, listCacheKey, result, s.ttl)
		if err != nil {
			s.log.Warn("failed to cache reviews", sl.Err(err))
		} else if !stored {
			s.log.Debug("reviews changed while listing, cache not filled")
		}
	}
	return result, nil
}
