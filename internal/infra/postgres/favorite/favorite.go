package infra_postgres_favorite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	infra_postgres_movie "github.com/kinopick/core/internal/infra/postgres/movie"
	"github.com/kinopick/core/internal/model"
)

var ErrFavoriteNotFound = errors.New("favorite not found")

type Repository struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

type favoriteDB struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	MovieID   uuid.UUID `db:"movie_id"`
	CreatedAt time.Time `db:"created_at"`
}

func (f *favoriteDB) toDomain() model.Favorite {
	return model.Favorite{
		ID:        f.ID,
		UserID:    f.UserID,
		MovieID:   f.MovieID,
		CreatedAt: f.CreatedAt,
	}
}

// Add inserts the (user, movie) pair if absent and returns the row either
// way. ON CONFLICT DO NOTHING keeps concurrent duplicate adds from racing a
// check-then-insert; the losing request falls through to the select.
func (r *Repository) Add(ctx context.Context, userID, movieID uuid.UUID) (model.Favorite, error) {
	insert := `
		INSERT INTO user_favorites (id, user_id, movie_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, movie_id) DO NOTHING
		RETURNING id, user_id, movie_id, created_at
	`

	var fav favoriteDB
	err := r.db.GetContext(ctx, &fav, insert, uuid.New(), userID, movieID, time.Now().UTC())
	if err == nil {
		return fav.toDomain(), nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return model.Favorite{}, fmt.Errorf("failed to add favorite: %w", err)
	}

	// Conflict: the pair already exists, return it.
	query := `
		SELECT id, user_id, movie_id, created_at
		FROM user_favorites
		WHERE user_id = $1 AND movie_id = $2
	`
	err = r.db.GetContext(ctx, &fav, query, userID, movieID)
	if err != nil {
		return model.Favorite{}, fmt.Errorf("failed to load existing favorite: %w", err)
	}

	return fav.toDomain(), nil
}

func (r *Repository) DeleteByUserAndMovie(ctx context.Context, userID, movieID uuid.UUID) error {
	query := `DELETE FROM user_favorites WHERE user_id = $1 AND movie_id = $2`

	result, err := r.db.ExecContext(ctx, query, userID, movieID)
	if err != nil {
		return fmt.Errorf("failed to delete favorite: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrFavoriteNotFound
	}

	return nil
}

type favoriteRowDB struct {
	favoriteDB
	Movie infra_postgres_movie.MovieDB `db:"movie"`
}

// ListByUser loads the user's favorites expanded with their movies.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Favorite, error) {
	query := `
		SELECT f.id, f.user_id, f.movie_id, f.created_at,
			m.id AS "movie.id", m.tmdb_id AS "movie.tmdb_id", m.title AS "movie.title",
			m.description AS "movie.description", m.genres AS "movie.genres",
			m.release_date AS "movie.release_date", m.poster_path AS "movie.poster_path",
			m.created_at AS "movie.created_at"
		FROM user_favorites f
		JOIN movies m ON m.id = f.movie_id
		WHERE f.user_id = $1
		ORDER BY f.created_at
	`

	var rowsDB []favoriteRowDB
	err := r.db.SelectContext(ctx, &rowsDB, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query favorites: %w", err)
	}

	favorites := make([]model.Favorite, len(rowsDB))
	for i, row := range rowsDB {
		fav := row.favoriteDB.toDomain()
		movie := row.Movie.ToDomain()
		fav.Movie = &movie
		favorites[i] = fav
	}

	return favorites, nil
}
