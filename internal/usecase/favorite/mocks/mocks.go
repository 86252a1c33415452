package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/kinopick/core/internal/model"
	"github.com/stretchr/testify/mock"
)

type Repository struct {
	mock.Mock
}

func NewRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *Repository {
	m := &Repository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *Repository) Add(ctx context.Context, userID, movieID uuid.UUID) (model.Favorite, error) {
	args := m.Called(ctx, userID, movieID)
	return args.Get(0).(model.Favorite), args.Error(1)
}

func (m *Repository) DeleteByUserAndMovie(ctx context.Context, userID, movieID uuid.UUID) error {
	args := m.Called(ctx, userID, movieID)
	return args.Error(0)
}

func (m *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Favorite, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Favorite), args.Error(1)
}

type MovieRepository struct {
	mock.Mock
}

func NewMovieRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MovieRepository {
	m := &MovieRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MovieRepository) LoadByTMDBID(ctx context.Context, tmdbID int) (model.Movie, error) {
	args := m.Called(ctx, tmdbID)
	return args.Get(0).(model.Movie), args.Error(1)
}

type ResultCache struct {
	mock.Mock
}

func NewResultCache(t interface {
	mock.TestingT
	Cleanup(func())
}) *ResultCache {
	m := &ResultCache{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *ResultCache) Del(key string) error {
	args := m.Called(key)
	return args.Error(0)
}
