package reviews

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/institute-api/internal/cache"
	"github.com/magabrotheeeer/institute-api/internal/config"
	"github.com/magabrotheeeer/institute-api/internal/models"
	"github.com/magabrotheeeer/institute-api/internal/storage/memory"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateReview(ctx context.Context, in models.NewReview) (models.Review, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(models.Review), args.Error(1)
}

func (m *RepoMock) GetAllReviews(ctx context.Context) ([]models.Review, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Review), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(ctx context.Context, key string, result any) (bool, error) {
	args := m.Called(ctx, key, result)
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Version(ctx context.Context, versionKey string) (int64, error) {
	args := m.Called(ctx, versionKey)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CacheMock) Bump(ctx context.Context, versionKey string) error {
	return m.Called(ctx, versionKey).Error(0)
}

func (m *CacheMock) SetIfVersion(ctx context.Context, versionKey string, version int64, key string, value any, expiration time.Duration) (bool, error) {
	args := m.Called(ctx, versionKey, version, key, value, expiration)
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Invalidate(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

var input = models.NewReview{Name: "Ann", Position: "Developer", Rating: 5, Text: "Excellent mentors here"}

func TestService_Create(t *testing.T) {
	stored := models.Review{ID: "r1", Name: "Ann", Position: "Developer", Rating: 5, Text: input.Text}

	tests := []struct {
		name       string
		setupMocks func(r *RepoMock, c *CacheMock)
		wantErr    bool
	}{
		{
			name: "success bumps version and invalidates cache",
			setupMocks: func(r *RepoMock, c *CacheMock) {
				r.On("CreateReview", mock.Anything, input).Return(stored, nil).Once()
				c.On("Bump", mock.Anything, listVersionKey).Return(nil).Once()
				c.On("Invalidate", mock.Anything, listCacheKey).Return(nil).Once()
			},
		},
		{
			name: "cache error is not fatal",
			setupMocks: func(r *RepoMock, c *CacheMock) {
				r.On("CreateReview", mock.Anything, input).Return(stored, nil).Once()
				c.On("Bump", mock.Anything, listVersionKey).Return(errors.New("redis down")).Once()
				c.On("Invalidate", mock.Anything, listCacheKey).Return(errors.New("redis down")).Once()
			},
		},
		{
			name: "repository error",
			setupMocks: func(r *RepoMock, _ *CacheMock) {
				r.On("CreateReview", mock.Anything, input).Return(models.Review{}, errors.New("db down")).Once()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			cache := new(CacheMock)
			tt.setupMocks(repo, cache)
			svc := NewService(repo, cache, time.Minute, newNoopLogger())

			got, err := svc.Create(context.Background(), input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "services.reviews.Create")
			} else {
				require.NoError(t, err)
				assert.Equal(t, stored, got)
			}

			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}

func TestService_List_CacheHit(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	cached := []models.Review{{ID: "cached"}}

	cache.On("Get", mock.Anything, listCacheKey, mock.Anything).
		Run(func(args mock.Arguments) {
			out := args.Get(2).(*[]models.Review)
			*out = cached
		}).
		Return(true, nil).Once()

	svc := NewService(repo, cache, time.Minute, newNoopLogger())
	got, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cached, got)

	repo.AssertNotCalled(t, "GetAllReviews", mock.Anything)
	cache.AssertExpectations(t)
}

func TestService_List_CacheMissFillsCache(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	fromRepo := []models.Review{{ID: "b"}, {ID: "a"}}

	cache.On("Get", mock.Anything, listCacheKey, mock.Anything).Return(false, nil).Once()
	cache.On("Version", mock.Anything, listVersionKey).Return(int64(7), nil).Once()
	repo.On("GetAllReviews", mock.Anything).Return(fromRepo, nil).Once()
	cache.On("SetIfVersion", mock.Anything, listVersionKey, int64(7), listCacheKey, fromRepo, 2*time.Minute).
		Return(true, nil).Once()

	svc := NewService(repo, cache, 2*time.Minute, newNoopLogger())
	got, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fromRepo, got)

	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestService_List_CacheReadErrorFallsBack(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)

	cache.On("Get", mock.Anything, listCacheKey, mock.Anything).Return(false, errors.New("redis down")).Once()
	cache.On("Version", mock.Anything, listVersionKey).Return(int64(0), errors.New("redis down")).Once()
	repo.On("GetAllReviews", mock.Anything).Return([]models.Review{{ID: "x"}}, nil).Once()

	svc := NewService(repo, cache, time.Minute, newNoopLogger())
	got, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 1)

	cache.AssertNotCalled(t, "SetIfVersion", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// createDuringList создает отзыв сразу после чтения списка из хранилища,
// до того как List успеет положить результат в кеш.
type createDuringList struct {
	Repository
	svc  *Service
	once sync.Once
}

func (r *createDuringList) GetAllReviews(ctx context.Context) ([]models.Review, error) {
	list, err := r.Repository.GetAllReviews(ctx)
	r.once.Do(func() {
		_, _ = r.svc.Create(ctx, input)
	})
	return list, err
}

func TestService_List_ConcurrentCreateIsNotHiddenByCache(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	redisCache, err := cache.InitServer(context.Background(), config.RedisConnection{
		AddressRedis: mr.Addr(),
		DialTimeout:  time.Second,
		TimeoutRedis: time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = redisCache.Close() })

	repo := &createDuringList{Repository: memory.New()}
	svc := NewService(repo, redisCache, 5*time.Minute, newNoopLogger())
	repo.svc = svc

	first, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, first)

	stored, err := repo.Repository.GetAllReviews(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 1)

	listed, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestService_List_WithoutCache(t *testing.T) {
	repo := new(RepoMock)
	repo.On("GetAllReviews", mock.Anything).Return(nil, nil).Once()

	svc := NewService(repo, nil, time.Minute, newNoopLogger())
	got, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestService_List_RepositoryError(t *testing.T) {
	repo := new(RepoMock)
	repo.On("GetAllReviews", mock.Anything).Return(nil, errors.New("db down")).Once()

	svc := NewService(repo, nil, time.Minute, newNoopLogger())
	got, err := svc.List(context.Background())
	assert.Nil(t, got)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "services.reviews.List")
}
