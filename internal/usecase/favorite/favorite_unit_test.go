//go:build !integration
// +build !integration

package usecase_favorite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	infra_postgres_favorite "github.com/kinopick/core/internal/infra/postgres/favorite"
	infra_postgres_movie "github.com/kinopick/core/internal/infra/postgres/movie"
	"github.com/kinopick/core/internal/model"
	usecase_movie "github.com/kinopick/core/internal/usecase/movie"
	"github.com/stretchr/testify/assert"

	"github.com/kinopick/core/internal/usecase/favorite/mocks"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
)

type UsecaseFavoriteUnitSuite struct {
	suite.Suite

	repository *mocks.Repository
	movies     *mocks.MovieRepository
	cache      *mocks.ResultCache
	usecase    *Usecase
	ctx        context.Context
}

func (s *UsecaseFavoriteUnitSuite) BeforeEach(t provider.T) {
	s.repository = mocks.NewRepository(t)
	s.movies = mocks.NewMovieRepository(t)
	s.cache = mocks.NewResultCache(t)
	s.usecase = New(s.repository, s.movies, s.cache)
	s.ctx = context.Background()
}

func validMovie() model.Movie {
	return model.Movie{
		ID:     uuid.New(),
		TMDBID: 603,
		Title:  "The Matrix",
		Genres: []int{28, 878},
	}
}

func (s *UsecaseFavoriteUnitSuite) TestAdd(t provider.T) {
	t.Run("Should add favorite and invalidate recommendations", func(t provider.T) {
		userID := uuid.New()
		movie := validMovie()
		stored := model.Favorite{
			ID:        uuid.New(),
			UserID:    userID,
			MovieID:   movie.ID,
			CreatedAt: time.Now().UTC(),
		}

		s.movies.On("LoadByTMDBID", s.ctx, movie.TMDBID).Return(movie, nil).Once()
		s.repository.On("Add", s.ctx, userID, movie.ID).Return(stored, nil).Once()
		s.cache.On("Del", usecase_movie.RecommendedCacheKey(userID)).Return(nil).Once()

		favorite, err := s.usecase.Add(s.ctx, userID, movie.TMDBID)

		assert.NoError(t, err)
		assert.Equal(t, stored.ID, favorite.ID)
		assert.NotNil(t, favorite.Movie)
		assert.Equal(t, movie.TMDBID, favorite.Movie.TMDBID)
	})

	t.Run("Should return existing favorite when added twice", func(t provider.T) {
		userID := uuid.New()
		movie := validMovie()
		existing := model.Favorite{ID: uuid.New(), UserID: userID, MovieID: movie.ID}

		s.movies.On("LoadByTMDBID", s.ctx, movie.TMDBID).Return(movie, nil).Twice()
		s.repository.On("Add", s.ctx, userID, movie.ID).Return(existing, nil).Twice()
		s.cache.On("Del", usecase_movie.RecommendedCacheKey(userID)).Return(nil).Twice()

		first, err := s.usecase.Add(s.ctx, userID, movie.TMDBID)
		assert.NoError(t, err)

		second, err := s.usecase.Add(s.ctx, userID, movie.TMDBID)
		assert.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
	})

	t.Run("Should return ErrMovieNotFound for unknown movie", func(t provider.T) {
		userID := uuid.New()

		s.movies.On("LoadByTMDBID", s.ctx, 404404).
			Return(model.Movie{}, infra_postgres_movie.ErrMovieNotFound).Once()

		_, err := s.usecase.Add(s.ctx, userID, 404404)

		assert.ErrorIs(t, err, ErrMovieNotFound)
	})

	t.Run("Should still add when cache invalidation fails", func(t provider.T) {
		userID := uuid.New()
		movie := validMovie()
		stored := model.Favorite{ID: uuid.New(), UserID: userID, MovieID: movie.ID}

		s.movies.On("LoadByTMDBID", s.ctx, movie.TMDBID).Return(movie, nil).Once()
		s.repository.On("Add", s.ctx, userID, movie.ID).Return(stored, nil).Once()
		s.cache.On("Del", usecase_movie.RecommendedCacheKey(userID)).Return(errors.New("redis down")).Once()

		favorite, err := s.usecase.Add(s.ctx, userID, movie.TMDBID)

		assert.NoError(t, err)
		assert.Equal(t, stored.ID, favorite.ID)
	})
}

func (s *UsecaseFavoriteUnitSuite) TestRemove(t provider.T) {
	t.Run("Should remove favorite", func(t provider.T) {
		userID := uuid.New()
		movie := validMovie()

		s.movies.On("LoadByTMDBID", s.ctx, movie.TMDBID).Return(movie, nil).Once()
		s.repository.On("DeleteByUserAndMovie", s.ctx, userID, movie.ID).Return(nil).Once()
		s.cache.On("Del", usecase_movie.RecommendedCacheKey(userID)).Return(nil).Once()

		err := s.usecase.Remove(s.ctx, userID, movie.TMDBID)

		assert.NoError(t, err)
	})

	t.Run("Should return ErrFavoriteNotFound when pair is absent", func(t provider.T) {
		userID := uuid.New()
		movie := validMovie()

		s.movies.On("LoadByTMDBID", s.ctx, movie.TMDBID).Return(movie, nil).Once()
		s.repository.On("DeleteByUserAndMovie", s.ctx, userID, movie.ID).
			Return(infra_postgres_favorite.ErrFavoriteNotFound).Once()

		err := s.usecase.Remove(s.ctx, userID, movie.TMDBID)

		assert.ErrorIs(t, err, ErrFavoriteNotFound)
	})

	t.Run("Should return ErrFavoriteNotFound for unknown movie", func(t provider.T) {
		userID := uuid.New()

		s.movies.On("LoadByTMDBID", s.ctx, 404404).
			Return(model.Movie{}, infra_postgres_movie.ErrMovieNotFound).Once()

		err := s.usecase.Remove(s.ctx, userID, 404404)

		assert.ErrorIs(t, err, ErrFavoriteNotFound)
	})
}

func (s *UsecaseFavoriteUnitSuite) TestList(t provider.T) {
	t.Run("Should list favorites with movies", func(t provider.T) {
		userID := uuid.New()
		movie := validMovie()
		favorites := []model.Favorite{
			{ID: uuid.New(), UserID: userID, MovieID: movie.ID, Movie: &movie},
		}

		s.repository.On("ListByUser", s.ctx, userID).Return(favorites, nil).Once()

		got, err := s.usecase.List(s.ctx, userID)

		assert.NoError(t, err)
		assert.Len(t, got, 1)
		assert.NotNil(t, got[0].Movie)
	})

	t.Run("Should return error when repository fails", func(t provider.T) {
		userID := uuid.New()

		s.repository.On("ListByUser", s.ctx, userID).Return(nil, errors.New("db down")).Once()

		got, err := s.usecase.List(s.ctx, userID)

		assert.ErrorIs(t, err, ErrFailedToLoad)
		assert.Nil(t, got)
	})
}

func TestUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(UsecaseFavoriteUnitSuite))
}
