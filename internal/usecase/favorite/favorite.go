package usecase_favorite

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	infra_postgres_favorite "github.com/kinopick/core/internal/infra/postgres/favorite"
	infra_postgres_movie "github.com/kinopick/core/internal/infra/postgres/movie"
	"github.com/kinopick/core/internal/model"
	usecase_movie "github.com/kinopick/core/internal/usecase/movie"
)

var (
	ErrMovieNotFound    = errors.New("movie not found")
	ErrFavoriteNotFound = errors.New("favorite not found")
	ErrFailedToStore    = errors.New("failed to store favorite")
	ErrFailedToLoad     = errors.New("failed to load favorites")
)

type Repository interface {
	Add(ctx context.Context, userID, movieID uuid.UUID) (model.Favorite, error)
	DeleteByUserAndMovie(ctx context.Context, userID, movieID uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Favorite, error)
}

type MovieRepository interface {
	LoadByTMDBID(ctx context.Context, tmdbID int) (model.Movie, error)
}

type ResultCache interface {
	Del(key string) error
}

type Usecase struct {
	repository Repository
	movies     MovieRepository
	cache      ResultCache

	logger *slog.Logger
}

type UsecaseOption func(*Usecase)

func WithLogger(logger *slog.Logger) UsecaseOption {
	return func(u *Usecase) {
		u.logger = logger
	}
}

func New(
	repository Repository,
	movies MovieRepository,
	cache ResultCache,
	opts ...UsecaseOption,
) *Usecase {
	u := &Usecase{
		repository: repository,
		movies:     movies,
		cache:      cache,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Add favorites the movie with the given TMDb id for the user. Adding a
// movie that is already a favorite returns the existing row.
func (u *Usecase) Add(ctx context.Context, userID uuid.UUID, tmdbID int) (model.Favorite, error) {
	movie, err := u.movies.LoadByTMDBID(ctx, tmdbID)
	if err != nil {
		if errors.Is(err, infra_postgres_movie.ErrMovieNotFound) {
			return model.Favorite{}, ErrMovieNotFound
		}
		return model.Favorite{}, fmt.Errorf("%w: %w", ErrFailedToStore, err)
	}

	favorite, err := u.repository.Add(ctx, userID, movie.ID)
	if err != nil {
		return model.Favorite{}, fmt.Errorf("%w: %w", ErrFailedToStore, err)
	}
	favorite.Movie = &movie

	u.invalidateRecommendations(userID)

	return favorite, nil
}

// Remove deletes the favorite identified by the movie's TMDb id.
func (u *Usecase) Remove(ctx context.Context, userID uuid.UUID, tmdbID int) error {
	movie, err := u.movies.LoadByTMDBID(ctx, tmdbID)
	if err != nil {
		if errors.Is(err, infra_postgres_movie.ErrMovieNotFound) {
			return ErrFavoriteNotFound
		}
		return fmt.Errorf("%w: %w", ErrFailedToLoad, err)
	}

	if err := u.repository.DeleteByUserAndMovie(ctx, userID, movie.ID); err != nil {
		if errors.Is(err, infra_postgres_favorite.ErrFavoriteNotFound) {
			return ErrFavoriteNotFound
		}
		return fmt.Errorf("%w: %w", ErrFailedToLoad, err)
	}

	u.invalidateRecommendations(userID)

	return nil
}

func (u *Usecase) List(ctx context.Context, userID uuid.UUID) ([]model.Favorite, error) {
	favorites, err := u.repository.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToLoad, err)
	}
	return favorites, nil
}

// A changed favorites set changes the genre preferences, so the cached
// recommendation list for this user is stale.
func (u *Usecase) invalidateRecommendations(userID uuid.UUID) {
	key := usecase_movie.RecommendedCacheKey(userID)
	if err := u.cache.Del(key); err != nil {
		u.logger.Warn("failed to invalidate recommendation cache",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
}
