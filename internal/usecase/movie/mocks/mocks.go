package mocks

import (
	"context"
	"time"

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

func (m *Repository) Upsert(ctx context.Context, movie model.Movie) (model.Movie, error) {
	args := m.Called(ctx, movie)
	return args.Get(0).(model.Movie), args.Error(1)
}

func (m *Repository) Load(ctx context.Context) ([]model.Movie, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Movie), args.Error(1)
}

func (m *Repository) LoadByTMDBID(ctx context.Context, tmdbID int) (model.Movie, error) {
	args := m.Called(ctx, tmdbID)
	return args.Get(0).(model.Movie), args.Error(1)
}

func (m *Repository) Search(ctx context.Context, title string, genre *int) ([]model.Movie, error) {
	args := m.Called(ctx, title, genre)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Movie), args.Error(1)
}

type FavoriteRepository struct {
	mock.Mock
}

func NewFavoriteRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *FavoriteRepository {
	m := &FavoriteRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *FavoriteRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Favorite, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Favorite), args.Error(1)
}

type TrendingProvider struct {
	mock.Mock
}

func NewTrendingProvider(t interface {
	mock.TestingT
	Cleanup(func())
}) *TrendingProvider {
	m := &TrendingProvider{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *TrendingProvider) Trending(ctx context.Context) ([]model.Movie, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Movie), args.Error(1)
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

func (m *ResultCache) Get(key string) (string, error) {
	args := m.Called(key)
	return args.String(0), args.Error(1)
}

func (m *ResultCache) Set(key string, value string, ttl time.Duration) error {
	args := m.Called(key, value, ttl)
	return args.Error(0)
}
