package infra_postgres_movie

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/kinopick/core/internal/model"
)

var ErrMovieNotFound = errors.New("movie not found")

type Repository struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// Upsert stores a movie keyed by its TMDb id. An existing record keeps its
// local id and created_at; everything else is overwritten with the fresh
// provider data. The stored row is returned either way.
func (r *Repository) Upsert(ctx context.Context, m model.Movie) (model.Movie, error) {
	movieDB := FromDomain(m)

	query := `
		INSERT INTO movies (id, tmdb_id, title, description, genres, release_date, poster_path, created_at)
		VALUES (:id, :tmdb_id, :title, :description, :genres, :release_date, :poster_path, :created_at)
		ON CONFLICT (tmdb_id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			genres = EXCLUDED.genres,
			release_date = EXCLUDED.release_date,
			poster_path = EXCLUDED.poster_path
		RETURNING id, tmdb_id, title, description, genres, release_date, poster_path, created_at
	`

	rows, err := r.db.NamedQueryContext(ctx, query, movieDB)
	if err != nil {
		return model.Movie{}, fmt.Errorf("failed to upsert movie: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return model.Movie{}, fmt.Errorf("failed to upsert movie: no row returned")
	}

	var stored MovieDB
	if err := rows.StructScan(&stored); err != nil {
		return model.Movie{}, fmt.Errorf("failed to scan upserted movie: %w", err)
	}

	return stored.ToDomain(), nil
}

func (r *Repository) Load(ctx context.Context) ([]model.Movie, error) {
	query := `
		SELECT id, tmdb_id, title, description, genres, release_date, poster_path, created_at
		FROM movies
		ORDER BY created_at, tmdb_id
	`

	var moviesDB []MovieDB
	err := r.db.SelectContext(ctx, &moviesDB, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query movies: %w", err)
	}

	return toDomainList(moviesDB), nil
}

func (r *Repository) LoadByTMDBID(ctx context.Context, tmdbID int) (model.Movie, error) {
	query := `
		SELECT id, tmdb_id, title, description, genres, release_date, poster_path, created_at
		FROM movies
		WHERE tmdb_id = $1
	`

	var movieDB MovieDB
	err := r.db.GetContext(ctx, &movieDB, query, tmdbID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Movie{}, ErrMovieNotFound
		}
		return model.Movie{}, fmt.Errorf("failed to load movie by tmdb id: %w", err)
	}

	return movieDB.ToDomain(), nil
}

// Search filters by case-insensitive title substring and/or exact genre tag.
// Both filters AND together; with neither it returns the full catalog.
func (r *Repository) Search(ctx context.Context, title string, genre *int) ([]model.Movie, error) {
	conditions := make([]string, 0, 2)
	args := make([]any, 0, 2)

	if title != "" {
		args = append(args, "%"+title+"%")
		conditions = append(conditions, fmt.Sprintf("title ILIKE $%d", len(args)))
	}
	if genre != nil {
		args = append(args, int64(*genre))
		conditions = append(conditions, fmt.Sprintf("genres @> ARRAY[$%d]::bigint[]", len(args)))
	}

	query := `
		SELECT id, tmdb_id, title, description, genres, release_date, poster_path, created_at
		FROM movies
	`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at, tmdb_id"

	var moviesDB []MovieDB
	err := r.db.SelectContext(ctx, &moviesDB, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search movies: %w", err)
	}

	return toDomainList(moviesDB), nil
}

func toDomainList(moviesDB []MovieDB) []model.Movie {
	movies := make([]model.Movie, len(moviesDB))
	for i, movieDB := range moviesDB {
		movies[i] = movieDB.ToDomain()
	}
	return movies
}
