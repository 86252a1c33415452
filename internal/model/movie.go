package model

import (
	"time"

	"github.com/google/uuid"
)

const EmptyTitle string = ""

// Movie is a catalog record mirrored from TMDb. TMDBID is the provider's
// stable identifier and is unique across the catalog; ID is ours.
type Movie struct {
	ID          uuid.UUID
	TMDBID      int
	Title       string
	Description string
	Genres      []int
	ReleaseDate *time.Time
	PosterPath  string
	CreatedAt   time.Time
}

// GenreSet collapses the genre tags into a set.
func (m Movie) GenreSet() map[int]struct{} {
	set := make(map[int]struct{}, len(m.Genres))
	for _, g := range m.Genres {
		set[g] = struct{}{}
	}
	return set
}

// GenreNames resolves the numeric tags via the fixed TMDb lookup table.
func (m Movie) GenreNames() []string {
	names := make([]string, len(m.Genres))
	for i, g := range m.Genres {
		names[i] = GenreName(g)
	}
	return names
}
