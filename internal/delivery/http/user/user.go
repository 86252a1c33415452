package http_user

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	http_common "github.com/kinopick/core/internal/delivery/http/common"
	http_auth_middleware "github.com/kinopick/core/internal/delivery/http/middleware/auth"
	"github.com/kinopick/core/internal/model"
	service_token "github.com/kinopick/core/internal/service/token"
	usecase_user "github.com/kinopick/core/internal/usecase/user"
)

// RegisterRequestDTO mirrors the registration payload. Username is optional
// and defaults to the email local part.
type RegisterRequestDTO struct {
	Username  string `json:"username" example:"neo"`
	Email     string `json:"email" binding:"required,email" example:"neo@matrix.io"`
	Password  string `json:"password" binding:"required" example:"followthewhiterabbit"`
	Password2 string `json:"password2" binding:"required" example:"followthewhiterabbit"`
	FirstName string `json:"first_name" example:"Thomas"`
	LastName  string `json:"last_name" example:"Anderson"`
}

type TokenRequestDTO struct {
	Username string `json:"username" binding:"required" example:"neo"`
	Password string `json:"password" binding:"required" example:"followthewhiterabbit"`
}

type RefreshRequestDTO struct {
	Refresh string `json:"refresh" binding:"required"`
}

type UpdateProfileRequestDTO struct {
	Username  *string `json:"username"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

type ChangePasswordRequestDTO struct {
	OldPassword     string `json:"old_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

type UserResponseDTO struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username" example:"neo"`
	Email     string    `json:"email" example:"neo@matrix.io"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
}

type TokenResponseDTO struct {
	Access  string          `json:"access"`
	Refresh string          `json:"refresh"`
	User    UserResponseDTO `json:"user"`
}

func ConvertFromUser(u model.User) UserResponseDTO {
	return UserResponseDTO{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

type Usecase interface {
	Register(ctx context.Context, in usecase_user.RegisterInput) (model.User, error)
	Login(ctx context.Context, usernameOrEmail, password string) (model.User, service_token.Pair, error)
	Refresh(refreshToken string) (service_token.Pair, error)
	Profile(ctx context.Context, userID uuid.UUID) (model.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, firstName, lastName *string) (model.User, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error
}

type Controller struct {
	uc         Usecase
	middleware *http_auth_middleware.Middleware

	logger *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(uc Usecase,
	middleware *http_auth_middleware.Middleware,
	opts ...ControllerOption) *Controller {
	c := &Controller{
		uc:         uc,
		middleware: middleware,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	auth.POST("/register/", c.register)
	auth.POST("/token/", c.token)
	auth.POST("/token/refresh/", c.refresh)

	users := router.Group("/users", c.middleware.AuthRequired())
	users.GET("/me/", c.me)
	users.PATCH("/me/", c.updateMe)

	router.PUT("/me/change-password/", c.middleware.AuthRequired(), c.changePassword)
}

// @Summary Register
// @Description Creates a user account; password and password2 must match
// @Tags Auth operations
// @Accept json
// @Produce json
// @Param request body RegisterRequestDTO true "Registration payload"
// @Success 201 {object} UserResponseDTO "Created user"
// @Failure 400 {object} http_common.ErrorResponse "Validation failure"
// @Router /auth/register/ [post]
func (c *Controller) register(ctx *gin.Context) {
	var req RegisterRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn("invalid request body", slog.String("error", err.Error()))
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Error: "Invalid request body",
			Code:  http.StatusBadRequest,
		})
		return
	}

	if req.Password != req.Password2 {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Error: "Passwords don't match",
		})
		return
	}

	user, err := c.uc.Register(ctx.Request.Context(), usecase_user.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase_user.ErrWeakPassword):
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
				Error: err.Error(),
			})
		case errors.Is(err, usecase_user.ErrUserExists):
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
				Error: "User with this username or email already exists",
			})
		default:
			c.logger.Error("failed to register user", slog.String("error", err.Error()))
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Error: "Failed to register",
				Code:  http.StatusInternalServerError,
			})
		}
		return
	}

	ctx.JSON(http.StatusCreated, ConvertFromUser(user))
}

// @Summary Obtain token pair
// @Description Logs in with username or email and returns access/refresh tokens
// @Tags Auth operations
// @Accept json
// @Produce json
// @Param request body TokenRequestDTO true "Credentials"
// @Success 200 {object} TokenResponseDTO "Token pair with user"
// @Failure 400 {object} http_common.ErrorResponse "Bad credentials"
// @Router /auth/token/ [post]
func (c *Controller) token(ctx *gin.Context) {
	var req TokenRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Error: "Invalid request body",
			Code:  http.StatusBadRequest,
		})
		return
	}

	user, pair, err := c.uc.Login(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, usecase_user.ErrInvalidCredentials) {
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
				Error: "No user found with given credentials",
			})
			return
		}

		c.logger.Error("failed to log in", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Error: "Failed to log in",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	ctx.JSON(http.StatusOK, TokenResponseDTO{
		Access:  pair.Access,
		Refresh: pair.Refresh,
		User:    ConvertFromUser(user),
	})
}

// @Summary Refresh token pair
// @Description Exchanges a valid refresh token for a fresh pair
// @Tags Auth operations
// @Accept json
// @Produce json
// @Param request body RefreshRequestDTO true "Refresh token"
// @Success 200 {object} TokenResponseDTO "New token pair"
// @Failure 401 {object} http_common.ErrorResponse "Invalid refresh token"
// @Router /auth/token/refresh/ [post]
func (c *Controller) refresh(ctx *gin.Context) {
	var req RefreshRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Error: "Invalid request body",
			Code:  http.StatusBadRequest,
		})
		return
	}

	pair, err := c.uc.Refresh(req.Refresh)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
			Error: "Invalid token",
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"access":  pair.Access,
		"refresh": pair.Refresh,
	})
}

// @Summary Current user profile
// @Tags Users operations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserResponseDTO "Profile"
// @Failure 401 {object} http_common.ErrorResponse "Not authenticated"
// @Router /users/me/ [get]
func (c *Controller) me(ctx *gin.Context) {
	userID, ok := http_auth_middleware.UserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{Error: "Token missing"})
		return
	}

	user, err := c.uc.Profile(ctx.Request.Context(), userID)
	if err != nil {
		c.logger.Error("failed to load profile",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()),
		)
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Error: "Failed to load profile",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	ctx.JSON(http.StatusOK, ConvertFromUser(user))
}

// @Summary Update current user profile
// @Description Updates first/last name; username changes are rejected
// @Tags Users operations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequestDTO true "Fields to update"
// @Success 200 {object} UserResponseDTO "Updated profile"
// @Failure 400 {object} http_common.ErrorResponse "Username change attempted"
// @Failure 401 {object} http_common.ErrorResponse "Not authenticated"
// @Router /users/me/ [patch]
func (c *Controller) updateMe(ctx *gin.Context) {
	userID, ok := http_auth_middleware.UserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{Error: "Token missing"})
		return
	}

	var req UpdateProfileRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Error: "Invalid request body",
			Code:  http.StatusBadRequest,
		})
		return
	}

	if req.Username != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Error: "You cannot change username.",
		})
		return
	}

	user, err := c.uc.UpdateProfile(ctx.Request.Context(), userID, req.FirstName, req.LastName)
	if err != nil {
		c.logger.Error("failed to update profile",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()),
		)
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Error: "Failed to update profile",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	ctx.JSON(http.StatusOK, ConvertFromUser(user))
}

// @Summary Change password
// @Description Verifies the old password and sets a new one
// @Tags Users operations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ChangePasswordRequestDTO true "Password change payload"
// @Success 200 {object} http_common.DetailResponse "Password changed"
// @Failure 400 {object} http_common.ErrorResponse "Mismatch or wrong old password"
// @Failure 401 {object} http_common.ErrorResponse "Not authenticated"
// @Router /me/change-password/ [put]
func (c *Controller) changePassword(ctx *gin.Context) {
	userID, ok := http_auth_middleware.UserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{Error: "Token missing"})
		return
	}

	var req ChangePasswordRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Error: "Invalid request body",
			Code:  http.StatusBadRequest,
		})
		return
	}

	if req.NewPassword != req.ConfirmPassword {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Error: "Passwords don't match",
		})
		return
	}

	err := c.uc.ChangePassword(ctx.Request.Context(), userID, req.OldPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, usecase_user.ErrWrongOldPassword):
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
				Error: "Old password is incorrect.",
			})
		case errors.Is(err, usecase_user.ErrWeakPassword):
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
				Error: err.Error(),
			})
		default:
			c.logger.Error("failed to change password",
				slog.String("user_id", userID.String()),
				slog.String("error", err.Error()),
			)
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Error: "Failed to change password",
				Code:  http.StatusInternalServerError,
			})
		}
		return
	}

	ctx.JSON(http.StatusOK, http_common.DetailResponse{Detail: "Password changed successfully."})
}
