package usecase_movie

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/kinopick/core/internal/model"
	service_recommender "github.com/kinopick/core/internal/service/recommender"
)

var (
	ErrFailedToLoadMovies    = errors.New("failed to load movies")
	ErrFailedToLoadFavorites = errors.New("failed to load favorites")
)

const TrendingCacheKey = "trending_movies"

// RecommendedCacheKey is the per-user cache key for recommendation results.
func RecommendedCacheKey(userID uuid.UUID) string {
	return fmt.Sprintf("recommended_movies_user_%s", userID)
}

type Repository interface {
	Upsert(ctx context.Context, m model.Movie) (model.Movie, error)
	Load(ctx context.Context) ([]model.Movie, error)
	LoadByTMDBID(ctx context.Context, tmdbID int) (model.Movie, error)
	Search(ctx context.Context, title string, genre *int) ([]model.Movie, error)
}

type FavoriteRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Favorite, error)
}

type TrendingProvider interface {
	Trending(ctx context.Context) ([]model.Movie, error)
}

type ResultCache interface {
	Get(key string) (string, error)
	Set(key string, value string, ttl time.Duration) error
}

type Usecase struct {
	repository    Repository
	favorites     FavoriteRepository
	provider      TrendingProvider
	cache         ResultCache
	cacheTTL      time.Duration
	fallbackLimit int

	logger *slog.Logger
}

type UsecaseOption func(*Usecase)

func WithLogger(logger *slog.Logger) UsecaseOption {
	return func(u *Usecase) {
		u.logger = logger
	}
}

func WithFallbackLimit(limit int) UsecaseOption {
	return func(u *Usecase) {
		u.fallbackLimit = limit
	}
}

func New(
	repository Repository,
	favorites FavoriteRepository,
	provider TrendingProvider,
	cache ResultCache,
	cacheTTL time.Duration,
	opts ...UsecaseOption,
) *Usecase {
	u := &Usecase{
		repository:    repository,
		favorites:     favorites,
		provider:      provider,
		cache:         cache,
		cacheTTL:      cacheTTL,
		fallbackLimit: service_recommender.DefaultFallbackLimit,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Trending returns the cached trending list, refreshing it from the provider
// on a miss. A dead provider degrades to an empty list; the endpoint stays up.
// Empty results are never cached, so the next request retries the provider.
func (u *Usecase) Trending(ctx context.Context) ([]model.Movie, error) {
	if movies, ok := u.cached(TrendingCacheKey); ok {
		return movies, nil
	}

	movies := u.syncTrending(ctx)
	u.store(TrendingCacheKey, movies)

	return movies, nil
}

// syncTrending pulls the provider feed and upserts each record into the
// catalog. One failed upsert is skipped, the batch continues.
func (u *Usecase) syncTrending(ctx context.Context) []model.Movie {
	fetched, err := u.provider.Trending(ctx)
	if err != nil {
		u.logger.Error("failed to fetch trending movies", slog.String("error", err.Error()))
		return []model.Movie{}
	}

	if len(fetched) == 0 {
		u.logger.Warn("provider returned no trending movies")
		return []model.Movie{}
	}

	saved := make([]model.Movie, 0, len(fetched))
	for _, m := range fetched {
		stored, err := u.repository.Upsert(ctx, m)
		if err != nil {
			u.logger.Error("failed to upsert movie",
				slog.Int("tmdb_id", m.TMDBID),
				slog.String("error", err.Error()),
			)
			continue
		}
		saved = append(saved, stored)
	}

	return saved
}

// Recommended ranks the catalog by genre overlap with the user's favorites.
// Results are cached per user.
func (u *Usecase) Recommended(ctx context.Context, userID uuid.UUID) ([]model.Movie, error) {
	cacheKey := RecommendedCacheKey(userID)
	if movies, ok := u.cached(cacheKey); ok {
		return movies, nil
	}

	favorites, err := u.favorites.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToLoadFavorites, err)
	}

	catalog, err := u.repository.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToLoadMovies, err)
	}

	favGenres := service_recommender.GenreSetOf(favorites)
	recommended := service_recommender.Rank(favGenres, catalog, u.fallbackLimit)

	u.store(cacheKey, recommended)

	return recommended, nil
}

// Search filters the catalog. No caching: results go stale with every sync.
func (u *Usecase) Search(ctx context.Context, title string, genre *int) ([]model.Movie, error) {
	movies, err := u.repository.Search(ctx, title, genre)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToLoadMovies, err)
	}
	return movies, nil
}

func (u *Usecase) cached(key string) ([]model.Movie, bool) {
	raw, err := u.cache.Get(key)
	if err != nil {
		u.logger.Warn("cache read failed", slog.String("key", key), slog.String("error", err.Error()))
		return nil, false
	}
	if raw == "" {
		return nil, false
	}

	var movies []model.Movie
	if err := json.Unmarshal([]byte(raw), &movies); err != nil {
		u.logger.Warn("cache entry corrupted", slog.String("key", key), slog.String("error", err.Error()))
		return nil, false
	}
	// An empty stored list counts as a miss so recomputing can fill it in.
	if len(movies) == 0 {
		return nil, false
	}

	return movies, true
}

// store caches a non-empty result. Empty lists are not written: a stale empty
// entry would otherwise outlive a provider outage for the whole TTL.
func (u *Usecase) store(key string, movies []model.Movie) {
	if len(movies) == 0 {
		return
	}

	raw, err := json.Marshal(movies)
	if err != nil {
		u.logger.Warn("cache encode failed", slog.String("key", key), slog.String("error", err.Error()))
		return
	}
	if err := u.cache.Set(key, string(raw), u.cacheTTL); err != nil {
		u.logger.Warn("cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
}
