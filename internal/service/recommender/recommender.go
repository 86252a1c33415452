package service_recommender

import (
	"sort"

	"github.com/kinopick/core/internal/model"
)

const DefaultFallbackLimit = 20

// Rank orders the catalog by how many genre tags each movie shares with the
// user's favorite genres. Movies with no overlap are dropped; ties keep
// catalog order.
//
// An empty preference set returns the catalog unfiltered. A non-empty set
// that matches nothing falls back to the first fallbackLimit catalog
// entries, so the user never gets an empty page.
func Rank(favGenres map[int]struct{}, catalog []model.Movie, fallbackLimit int) []model.Movie {
	if fallbackLimit <= 0 {
		fallbackLimit = DefaultFallbackLimit
	}

	if len(favGenres) == 0 {
		return catalog
	}

	type scored struct {
		movie model.Movie
		score int
	}

	ranked := make([]scored, 0, len(catalog))
	for _, m := range catalog {
		if score := overlap(favGenres, m.GenreSet()); score > 0 {
			ranked = append(ranked, scored{movie: m, score: score})
		}
	}

	if len(ranked) == 0 {
		if len(catalog) > fallbackLimit {
			return catalog[:fallbackLimit]
		}
		return catalog
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	movies := make([]model.Movie, len(ranked))
	for i, r := range ranked {
		movies[i] = r.movie
	}
	return movies
}

// GenreSetOf collects the distinct genre tags across a user's favorite
// movies.
func GenreSetOf(favorites []model.Favorite) map[int]struct{} {
	set := make(map[int]struct{})
	for _, f := range favorites {
		if f.Movie == nil {
			continue
		}
		for g := range f.Movie.GenreSet() {
			set[g] = struct{}{}
		}
	}
	return set
}

func overlap(favGenres, genres map[int]struct{}) int {
	count := 0
	for g := range genres {
		if _, ok := favGenres[g]; ok {
			count++
		}
	}
	return count
}
