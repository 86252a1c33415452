//go:build !integration
// +build !integration

package service_token

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kinopick/core/internal/config"
	"github.com/stretchr/testify/assert"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
)

type ServiceTokenUnitSuite struct {
	suite.Suite

	service *Service
}

func (s *ServiceTokenUnitSuite) BeforeEach(t provider.T) {
	s.service = New(config.Auth{
		JWTSecret:  "unit-test-secret",
		AccessTTL:  30 * time.Minute,
		RefreshTTL: 24 * time.Hour,
	})
}

func (s *ServiceTokenUnitSuite) TestIssueAndVerify(t provider.T) {
	t.Run("Should verify issued access token", func(t provider.T) {
		userID := uuid.New()

		pair, err := s.service.IssuePair(userID)
		assert.NoError(t, err)
		assert.NotEmpty(t, pair.Access)
		assert.NotEmpty(t, pair.Refresh)

		got, err := s.service.VerifyAccess(pair.Access)
		assert.NoError(t, err)
		assert.Equal(t, userID, got)
	})

	t.Run("Should reject refresh token on access verification", func(t provider.T) {
		pair, err := s.service.IssuePair(uuid.New())
		assert.NoError(t, err)

		_, err = s.service.VerifyAccess(pair.Refresh)
		assert.ErrorIs(t, err, ErrWrongType)
	})

	t.Run("Should reject garbage token", func(t provider.T) {
		_, err := s.service.VerifyAccess("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Should reject token signed with another secret", func(t provider.T) {
		other := New(config.Auth{
			JWTSecret:  "another-secret",
			AccessTTL:  30 * time.Minute,
			RefreshTTL: 24 * time.Hour,
		})

		pair, err := other.IssuePair(uuid.New())
		assert.NoError(t, err)

		_, err = s.service.VerifyAccess(pair.Access)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func (s *ServiceTokenUnitSuite) TestExpiry(t provider.T) {
	t.Run("Should reject expired access token", func(t provider.T) {
		issuedAt := time.Now()
		s.service.now = func() time.Time { return issuedAt }

		pair, err := s.service.IssuePair(uuid.New())
		assert.NoError(t, err)

		s.service.now = func() time.Time { return issuedAt.Add(31 * time.Minute) }

		_, err = s.service.VerifyAccess(pair.Access)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func (s *ServiceTokenUnitSuite) TestRefresh(t provider.T) {
	t.Run("Should exchange refresh token for a new pair", func(t provider.T) {
		userID := uuid.New()

		pair, err := s.service.IssuePair(userID)
		assert.NoError(t, err)

		fresh, err := s.service.Refresh(pair.Refresh)
		assert.NoError(t, err)

		got, err := s.service.VerifyAccess(fresh.Access)
		assert.NoError(t, err)
		assert.Equal(t, userID, got)
	})

	t.Run("Should reject access token on refresh", func(t provider.T) {
		pair, err := s.service.IssuePair(uuid.New())
		assert.NoError(t, err)

		_, err = s.service.Refresh(pair.Access)
		assert.ErrorIs(t, err, ErrWrongType)
	})
}

func TestUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(ServiceTokenUnitSuite))
}
