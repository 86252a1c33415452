package usecase_user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	infra_postgres_user "github.com/kinopick/core/internal/infra/postgres/user"
	"github.com/kinopick/core/internal/model"
	service_token "github.com/kinopick/core/internal/service/token"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("no user found with given credentials")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrWrongOldPassword   = errors.New("old password is incorrect")
	ErrInternal           = errors.New("internal error")
)

const minPasswordLength = 8

type Repository interface {
	Create(ctx context.Context, u model.User) error
	LoadByID(ctx context.Context, id uuid.UUID) (model.User, error)
	LoadByUsername(ctx context.Context, username string) (model.User, error)
	LoadByEmail(ctx context.Context, email string) (model.User, error)
	UpdateProfile(ctx context.Context, u model.User) error
	UpdatePassword(ctx context.Context, id uuid.UUID, hash []byte) error
}

type Tokens interface {
	IssuePair(userID uuid.UUID) (service_token.Pair, error)
	Refresh(refreshToken string) (service_token.Pair, error)
}

type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

type Usecase struct {
	repository Repository
	tokens     Tokens

	logger *slog.Logger
}

type UsecaseOption func(*Usecase)

func WithLogger(logger *slog.Logger) UsecaseOption {
	return func(u *Usecase) {
		u.logger = logger
	}
}

func New(repository Repository, tokens Tokens, opts ...UsecaseOption) *Usecase {
	u := &Usecase{
		repository: repository,
		tokens:     tokens,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Register creates a user with a bcrypt-hashed password. A missing username
// defaults to the email local part.
func (u *Usecase) Register(ctx context.Context, in RegisterInput) (model.User, error) {
	if len(in.Password) < minPasswordLength {
		return model.User{}, ErrWeakPassword
	}

	username := in.Username
	if username == "" {
		username = strings.SplitN(in.Email, "@", 2)[0]
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	user := model.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: hash,
	}

	if err := u.repository.Create(ctx, user); err != nil {
		if errors.Is(err, infra_postgres_user.ErrUserExists) {
			return model.User{}, ErrUserExists
		}
		return model.User{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	return user, nil
}

// Login accepts a username or an email in the same field, the way the
// original token endpoint does.
func (u *Usecase) Login(ctx context.Context, usernameOrEmail, password string) (model.User, service_token.Pair, error) {
	user, err := u.repository.LoadByUsername(ctx, usernameOrEmail)
	if errors.Is(err, infra_postgres_user.ErrUserNotFound) {
		user, err = u.repository.LoadByEmail(ctx, usernameOrEmail)
	}
	if err != nil {
		if errors.Is(err, infra_postgres_user.ErrUserNotFound) {
			return model.User{}, service_token.Pair{}, ErrInvalidCredentials
		}
		return model.User{}, service_token.Pair{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil {
		return model.User{}, service_token.Pair{}, ErrInvalidCredentials
	}

	pair, err := u.tokens.IssuePair(user.ID)
	if err != nil {
		return model.User{}, service_token.Pair{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	return user, pair, nil
}

func (u *Usecase) Refresh(refreshToken string) (service_token.Pair, error) {
	return u.tokens.Refresh(refreshToken)
}

func (u *Usecase) Profile(ctx context.Context, userID uuid.UUID) (model.User, error) {
	user, err := u.repository.LoadByID(ctx, userID)
	if err != nil {
		if errors.Is(err, infra_postgres_user.ErrUserNotFound) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}
	return user, nil
}

// UpdateProfile changes first/last name only. Username and email changes are
// rejected at the delivery layer.
func (u *Usecase) UpdateProfile(ctx context.Context, userID uuid.UUID, firstName, lastName *string) (model.User, error) {
	user, err := u.Profile(ctx, userID)
	if err != nil {
		return model.User{}, err
	}

	if firstName != nil {
		user.FirstName = *firstName
	}
	if lastName != nil {
		user.LastName = *lastName
	}

	if err := u.repository.UpdateProfile(ctx, user); err != nil {
		return model.User{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	return user, nil
}

func (u *Usecase) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	user, err := u.Profile(ctx, userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(oldPassword)) != nil {
		return ErrWrongOldPassword
	}

	if len(newPassword) < minPasswordLength {
		return ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}

	if err := u.repository.UpdatePassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}

	return nil
}
