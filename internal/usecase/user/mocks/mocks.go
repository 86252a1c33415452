package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/kinopick/core/internal/model"
	service_token "github.com/kinopick/core/internal/service/token"
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

func (m *Repository) Create(ctx context.Context, u model.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *Repository) LoadByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *Repository) LoadByUsername(ctx context.Context, username string) (model.User, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *Repository) LoadByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *Repository) UpdateProfile(ctx context.Context, u model.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *Repository) UpdatePassword(ctx context.Context, id uuid.UUID, hash []byte) error {
	args := m.Called(ctx, id, hash)
	return args.Error(0)
}

type Tokens struct {
	mock.Mock
}

func NewTokens(t interface {
	mock.TestingT
	Cleanup(func())
}) *Tokens {
	m := &Tokens{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *Tokens) IssuePair(userID uuid.UUID) (service_token.Pair, error) {
	args := m.Called(userID)
	return args.Get(0).(service_token.Pair), args.Error(1)
}

func (m *Tokens) Refresh(refreshToken string) (service_token.Pair, error) {
	args := m.Called(refreshToken)
	return args.Get(0).(service_token.Pair), args.Error(1)
}
