//go:build !integration
// +build !integration

package http_auth_middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
)

type MiddlewareAuthUnitSuite struct {
	suite.Suite
}

type verifierStub struct {
	userID uuid.UUID
	err    error
}

func (v *verifierStub) VerifyAccess(token string) (uuid.UUID, error) {
	return v.userID, v.err
}

func routerWith(verifier TokenVerifier) (*gin.Engine, *uuid.UUID) {
	gin.SetMode(gin.TestMode)

	var captured uuid.UUID
	router := gin.New()
	router.GET("/protected", New(verifier).AuthRequired(), func(ctx *gin.Context) {
		id, ok := UserID(ctx)
		if !ok {
			ctx.Status(http.StatusInternalServerError)
			return
		}
		captured = id
		ctx.Status(http.StatusOK)
	})
	return router, &captured
}

func perform(router *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func (s *MiddlewareAuthUnitSuite) TestAuthRequired(t provider.T) {
	t.Run("Should pass valid token and set user id", func(t provider.T) {
		userID := uuid.New()
		router, captured := routerWith(&verifierStub{userID: userID})

		recorder := perform(router, "Bearer valid-token")

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, userID, *captured)
	})

	t.Run("Should reject missing header", func(t provider.T) {
		router, _ := routerWith(&verifierStub{userID: uuid.New()})

		recorder := perform(router, "")

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.JSONEq(t, `{"error": "Token missing"}`, recorder.Body.String())
	})

	t.Run("Should reject malformed header", func(t provider.T) {
		router, _ := routerWith(&verifierStub{userID: uuid.New()})

		recorder := perform(router, "Basic dXNlcjpwYXNz")

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.JSONEq(t, `{"error": "Invalid authorization header format"}`, recorder.Body.String())
	})

	t.Run("Should reject invalid token", func(t provider.T) {
		router, _ := routerWith(&verifierStub{err: errors.New("expired")})

		recorder := perform(router, "Bearer expired-token")

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.JSONEq(t, `{"error": "Invalid token"}`, recorder.Body.String())
	})
}

func TestUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(MiddlewareAuthUnitSuite))
}
