//go:build !integration
// +build !integration

package infra_memcache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
)

type InfraMemcacheUnitSuite struct {
	suite.Suite
}

func (s *InfraMemcacheUnitSuite) TestCache(t provider.T) {
	t.Run("Should return stored value before expiry", func(t provider.T) {
		cache := New()

		assert.NoError(t, cache.Set("trending_movies", `["a"]`, time.Hour))

		got, err := cache.Get("trending_movies")
		assert.NoError(t, err)
		assert.Equal(t, `["a"]`, got)
	})

	t.Run("Should miss on unknown key", func(t provider.T) {
		got, err := New().Get("absent")
		assert.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("Should expire entries after TTL", func(t provider.T) {
		current := time.Now()
		cache := New(WithClock(func() time.Time { return current }))

		assert.NoError(t, cache.Set("trending_movies", `["a"]`, time.Hour))

		current = current.Add(time.Hour + time.Second)

		got, err := cache.Get("trending_movies")
		assert.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("Should serve entries right up to the TTL boundary", func(t provider.T) {
		current := time.Now()
		cache := New(WithClock(func() time.Time { return current }))

		assert.NoError(t, cache.Set("trending_movies", `["a"]`, time.Hour))

		current = current.Add(time.Hour)

		got, err := cache.Get("trending_movies")
		assert.NoError(t, err)
		assert.Equal(t, `["a"]`, got)
	})

	t.Run("Should overwrite existing key", func(t provider.T) {
		cache := New()

		assert.NoError(t, cache.Set("k", "old", time.Hour))
		assert.NoError(t, cache.Set("k", "new", time.Hour))

		got, err := cache.Get("k")
		assert.NoError(t, err)
		assert.Equal(t, "new", got)
	})

	t.Run("Should delete key", func(t provider.T) {
		cache := New()

		assert.NoError(t, cache.Set("recommended_movies_user_1", `["a"]`, time.Hour))
		assert.NoError(t, cache.Del("recommended_movies_user_1"))

		got, err := cache.Get("recommended_movies_user_1")
		assert.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("Should tolerate deleting absent key", func(t provider.T) {
		assert.NoError(t, New().Del("absent"))
	})
}

func TestUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(InfraMemcacheUnitSuite))
}
