package http_auth_middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	http_common "github.com/kinopick/core/internal/delivery/http/common"
)

const userIDKey = "user_id"

// TokenVerifier checks an access token and yields the authenticated user id.
type TokenVerifier interface {
	VerifyAccess(token string) (uuid.UUID, error)
}

type Middleware struct {
	verifier TokenVerifier
	logger   *slog.Logger
}

func New(verifier TokenVerifier) *Middleware {
	return &Middleware{
		verifier: verifier,
		logger:   slog.Default(),
	}
}

// AuthRequired rejects requests without a valid "Authorization: Bearer"
// access token and stores the user id in the gin context.
func (m *Middleware) AuthRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if header == "" {
			ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
				Error: "Token missing",
			})
			ctx.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
				Error: "Invalid authorization header format",
			})
			ctx.Abort()
			return
		}

		userID, err := m.verifier.VerifyAccess(parts[1])
		if err != nil {
			m.logger.Warn("invalid access token", slog.String("error", err.Error()))
			ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
				Error: "Invalid token",
			})
			ctx.Abort()
			return
		}

		ctx.Set(userIDKey, userID)
		ctx.Next()
	}
}

// UserID reads the authenticated user id set by AuthRequired.
func UserID(ctx *gin.Context) (uuid.UUID, bool) {
	v, ok := ctx.Get(userIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
