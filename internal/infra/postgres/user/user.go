package infra_postgres_user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/kinopick/core/internal/model"
	"github.com/lib/pq"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
)

const uniqueViolation = "23505"

type Repository struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

type userDB struct {
	ID           uuid.UUID    `db:"id"`
	Username     string       `db:"username"`
	Email        string       `db:"email"`
	FirstName    string       `db:"first_name"`
	LastName     string       `db:"last_name"`
	PasswordHash []byte       `db:"password_hash"`
	CreatedAt    sql.NullTime `db:"created_at"`
}

func (u *userDB) toDomain() model.User {
	user := model.User{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		PasswordHash: u.PasswordHash,
	}
	if u.CreatedAt.Valid {
		user.CreatedAt = u.CreatedAt.Time
	}
	return user
}

func fromDomain(u model.User) userDB {
	return userDB{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		PasswordHash: u.PasswordHash,
		CreatedAt:    sql.NullTime{Time: u.CreatedAt, Valid: true},
	}
}

func (r *Repository) Create(ctx context.Context, u model.User) error {
	query := `
		INSERT INTO users (id, username, email, first_name, last_name, password_hash, created_at)
		VALUES (:id, :username, :email, :first_name, :last_name, :password_hash, :created_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, fromDomain(u))
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return ErrUserExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *Repository) LoadByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	return r.loadBy(ctx, "id = $1", id)
}

func (r *Repository) LoadByUsername(ctx context.Context, username string) (model.User, error) {
	return r.loadBy(ctx, "LOWER(username) = LOWER($1)", username)
}

func (r *Repository) LoadByEmail(ctx context.Context, email string) (model.User, error) {
	return r.loadBy(ctx, "LOWER(email) = LOWER($1)", email)
}

func (r *Repository) loadBy(ctx context.Context, condition string, arg any) (model.User, error) {
	query := `
		SELECT id, username, email, first_name, last_name, password_hash, created_at
		FROM users
		WHERE ` + condition

	var u userDB
	err := r.db.GetContext(ctx, &u, query, arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, fmt.Errorf("failed to load user: %w", err)
	}

	return u.toDomain(), nil
}

// UpdateProfile changes the mutable profile fields. Username and email stay
// as they are.
func (r *Repository) UpdateProfile(ctx context.Context, u model.User) error {
	query := `
		UPDATE users
		SET first_name = :first_name, last_name = :last_name
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, fromDomain(u))
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *Repository) UpdatePassword(ctx context.Context, id uuid.UUID, hash []byte) error {
	query := `UPDATE users SET password_hash = $2 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, hash)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}
