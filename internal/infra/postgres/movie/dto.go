package infra_postgres_movie

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/kinopick/core/internal/model"
	"github.com/lib/pq"
)

type MovieDB struct {
	ID          uuid.UUID     `db:"id"`
	TMDBID      int           `db:"tmdb_id"`
	Title       string        `db:"title"`
	Description string        `db:"description"`
	Genres      pq.Int64Array `db:"genres"`
	ReleaseDate sql.NullTime  `db:"release_date"`
	PosterPath  string        `db:"poster_path"`
	CreatedAt   time.Time     `db:"created_at"`
}

func (m *MovieDB) ToDomain() model.Movie {
	genres := make([]int, len(m.Genres))
	for i, g := range m.Genres {
		genres[i] = int(g)
	}

	var releaseDate *time.Time
	if m.ReleaseDate.Valid {
		t := m.ReleaseDate.Time
		releaseDate = &t
	}

	return model.Movie{
		ID:          m.ID,
		TMDBID:      m.TMDBID,
		Title:       m.Title,
		Description: m.Description,
		Genres:      genres,
		ReleaseDate: releaseDate,
		PosterPath:  m.PosterPath,
		CreatedAt:   m.CreatedAt,
	}
}

func FromDomain(m model.Movie) MovieDB {
	genres := make(pq.Int64Array, len(m.Genres))
	for i, g := range m.Genres {
		genres[i] = int64(g)
	}

	var releaseDate sql.NullTime
	if m.ReleaseDate != nil {
		releaseDate = sql.NullTime{Time: *m.ReleaseDate, Valid: true}
	}

	return MovieDB{
		ID:          m.ID,
		TMDBID:      m.TMDBID,
		Title:       m.Title,
		Description: m.Description,
		Genres:      genres,
		ReleaseDate: releaseDate,
		PosterPath:  m.PosterPath,
		CreatedAt:   m.CreatedAt,
	}
}
