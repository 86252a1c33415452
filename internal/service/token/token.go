package service_token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/kinopick/core/internal/config"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrWrongType    = errors.New("wrong token type")
)

const (
	typeAccess  = "access"
	typeRefresh = "refresh"
)

// Pair is an issued access/refresh token pair.
type Pair struct {
	Access  string
	Refresh string
}

// Service signs and verifies HS256 JWTs. Access tokens authenticate API
// requests, refresh tokens only mint new pairs.
type Service struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func New(cfg config.Auth) *Service {
	return &Service{
		secret:     []byte(cfg.JWTSecret),
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		now:        time.Now,
	}
}

func (s *Service) IssuePair(userID uuid.UUID) (Pair, error) {
	access, err := s.sign(userID, typeAccess, s.accessTTL)
	if err != nil {
		return Pair{}, err
	}

	refresh, err := s.sign(userID, typeRefresh, s.refreshTTL)
	if err != nil {
		return Pair{}, err
	}

	return Pair{Access: access, Refresh: refresh}, nil
}

// VerifyAccess returns the user id carried by a valid access token.
func (s *Service) VerifyAccess(token string) (uuid.UUID, error) {
	return s.verify(token, typeAccess)
}

// Refresh exchanges a valid refresh token for a fresh pair.
func (s *Service) Refresh(refreshToken string) (Pair, error) {
	userID, err := s.verify(refreshToken, typeRefresh)
	if err != nil {
		return Pair{}, err
	}
	return s.IssuePair(userID)
}

func (s *Service) sign(userID uuid.UUID, tokenType string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"typ":     tokenType,
		"iat":     now.Unix(),
		"exp":     now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

func (s *Service) verify(tokenString, wantType string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, ErrInvalidToken
	}

	typ, _ := claims["typ"].(string)
	if typ != wantType {
		return uuid.Nil, ErrWrongType
	}

	rawID, _ := claims["user_id"].(string)
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}

	return userID, nil
}
