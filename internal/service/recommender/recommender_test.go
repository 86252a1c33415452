//go:build !integration
// +build !integration

package service_recommender

import (
	"testing"

	"github.com/google/uuid"
	"github.com/kinopick/core/internal/model"
	"github.com/stretchr/testify/assert"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
)

type ServiceRecommenderUnitSuite struct {
	suite.Suite
}

func movieWithGenres(title string, genres ...int) model.Movie {
	return model.Movie{
		ID:     uuid.New(),
		Title:  title,
		Genres: genres,
	}
}

func titles(movies []model.Movie) []string {
	out := make([]string, len(movies))
	for i, m := range movies {
		out[i] = m.Title
	}
	return out
}

func (s *ServiceRecommenderUnitSuite) TestRank(t provider.T) {
	t.Run("Should rank by genre overlap and drop non-matching", func(t provider.T) {
		catalog := []model.Movie{
			movieWithGenres("A", 28, 12),
			movieWithGenres("B", 12),
			movieWithGenres("C", 28),
		}

		got := Rank(map[int]struct{}{28: {}}, catalog, 0)

		assert.Equal(t, []string{"A", "C"}, titles(got))
	})

	t.Run("Should order higher overlap first", func(t provider.T) {
		catalog := []model.Movie{
			movieWithGenres("one", 28),
			movieWithGenres("two", 28, 12),
			movieWithGenres("three", 12),
		}

		got := Rank(map[int]struct{}{28: {}, 12: {}}, catalog, 0)

		assert.Equal(t, []string{"two", "one", "three"}, titles(got))
	})

	t.Run("Should keep catalog order on ties", func(t provider.T) {
		catalog := []model.Movie{
			movieWithGenres("first", 28),
			movieWithGenres("second", 28),
			movieWithGenres("third", 28),
		}

		got := Rank(map[int]struct{}{28: {}}, catalog, 0)

		assert.Equal(t, []string{"first", "second", "third"}, titles(got))
	})

	t.Run("Should not double count duplicated genre tags", func(t provider.T) {
		catalog := []model.Movie{
			movieWithGenres("dup", 28, 28, 28),
			movieWithGenres("pair", 28, 12),
		}

		got := Rank(map[int]struct{}{28: {}, 12: {}}, catalog, 0)

		assert.Equal(t, []string{"pair", "dup"}, titles(got))
	})

	t.Run("Should return full catalog on empty preference set", func(t provider.T) {
		catalog := []model.Movie{
			movieWithGenres("A", 28),
			movieWithGenres("B", 12),
		}

		got := Rank(map[int]struct{}{}, catalog, 0)

		assert.Equal(t, catalog, got)
	})

	t.Run("Should fall back when nothing overlaps", func(t provider.T) {
		catalog := []model.Movie{
			movieWithGenres("A", 12),
			movieWithGenres("B", 16),
			movieWithGenres("C", 35),
		}

		got := Rank(map[int]struct{}{99: {}}, catalog, 2)

		assert.Equal(t, []string{"A", "B"}, titles(got))
	})

	t.Run("Should fall back to whole catalog shorter than limit", func(t provider.T) {
		catalog := []model.Movie{movieWithGenres("only", 12)}

		got := Rank(map[int]struct{}{99: {}}, catalog, 20)

		assert.Equal(t, catalog, got)
	})
}

func (s *ServiceRecommenderUnitSuite) TestGenreSetOf(t provider.T) {
	t.Run("Should collect distinct genres across favorites", func(t provider.T) {
		action := movieWithGenres("action", 28, 12)
		drama := movieWithGenres("drama", 18, 12)

		favorites := []model.Favorite{
			{ID: uuid.New(), Movie: &action},
			{ID: uuid.New(), Movie: &drama},
			{ID: uuid.New(), Movie: nil},
		}

		got := GenreSetOf(favorites)

		assert.Equal(t, map[int]struct{}{28: {}, 12: {}, 18: {}}, got)
	})

	t.Run("Should return empty set for no favorites", func(t provider.T) {
		assert.Empty(t, GenreSetOf(nil))
	})
}

func TestUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(ServiceRecommenderUnitSuite))
}
