package http_favorite

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	http_common "github.com/kinopick/core/internal/delivery/http/common"
	http_auth_middleware "github.com/kinopick/core/internal/delivery/http/middleware/auth"
	http_movie "github.com/kinopick/core/internal/delivery/http/movie"
	"github.com/kinopick/core/internal/model"
	usecase_favorite "github.com/kinopick/core/internal/usecase/favorite"
)

// AddFavoriteRequestDTO carries the TMDb id of the movie to favorite.
type AddFavoriteRequestDTO struct {
	MovieID int `json:"movie_id" binding:"required" example:"603"`
}

// FavoriteResponseDTO represents a favorite expanded with its movie.
type FavoriteResponseDTO struct {
	ID        uuid.UUID                    `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	CreatedAt time.Time                    `json:"created_at"`
	Movie     *http_movie.MovieResponseDTO `json:"movie"`
}

func ConvertFromFavorite(f model.Favorite) FavoriteResponseDTO {
	dto := FavoriteResponseDTO{
		ID:        f.ID,
		CreatedAt: f.CreatedAt,
	}
	if f.Movie != nil {
		movie := http_movie.ConvertFromMovie(*f.Movie)
		dto.Movie = &movie
	}
	return dto
}

func ConvertFromFavoriteList(favorites []model.Favorite) []FavoriteResponseDTO {
	dtos := make([]FavoriteResponseDTO, len(favorites))
	for i, f := range favorites {
		dtos[i] = ConvertFromFavorite(f)
	}
	return dtos
}

type Usecase interface {
	Add(ctx context.Context, userID uuid.UUID, tmdbID int) (model.Favorite, error)
	Remove(ctx context.Context, userID uuid.UUID, tmdbID int) error
	List(ctx context.Context, userID uuid.UUID) ([]model.Favorite, error)
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
	favorites := router.Group("/users/favorites", c.middleware.AuthRequired())
	favorites.GET("/", c.list)
	favorites.POST("/", c.add)

	// Remove lives under /movies, mirroring the original URL layout.
	router.DELETE("/movies/favorites/remove/:movie_id/", c.middleware.AuthRequired(), c.remove)
}

// @Summary List favorites
// @Description Returns the authenticated user's favorites, each with its movie
// @Tags Favorites operations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} FavoriteResponseDTO "Favorites"
// @Failure 401 {object} http_common.ErrorResponse "Not authenticated"
// @Failure 500 {object} http_common.ErrorResponse "Internal server error"
// @Router /users/favorites/ [get]
func (c *Controller) list(ctx *gin.Context) {
	userID, ok := http_auth_middleware.UserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{Error: "Token missing"})
		return
	}

	favorites, err := c.uc.List(ctx.Request.Context(), userID)
	if err != nil {
		c.logger.Error("failed to list favorites",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()),
		)
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Error: "Failed to load favorites",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	ctx.JSON(http.StatusOK, ConvertFromFavoriteList(favorites))
}

// @Summary Add favorite
// @Description Favorites a movie by its TMDb id; adding twice returns the existing row
// @Tags Favorites operations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AddFavoriteRequestDTO true "Movie to favorite"
// @Success 201 {object} FavoriteResponseDTO "Created or existing favorite"
// @Failure 400 {object} http_common.ErrorResponse "Invalid request body"
// @Failure 404 {object} http_common.ErrorResponse "Movie not in catalog"
// @Failure 500 {object} http_common.ErrorResponse "Internal server error"
// @Router /users/favorites/ [post]
func (c *Controller) add(ctx *gin.Context) {
	userID, ok := http_auth_middleware.UserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{Error: "Token missing"})
		return
	}

	var req AddFavoriteRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn("invalid request body", slog.String("error", err.Error()))
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Error: "Invalid request body",
			Code:  http.StatusBadRequest,
		})
		return
	}

	favorite, err := c.uc.Add(ctx.Request.Context(), userID, req.MovieID)
	if err != nil {
		if errors.Is(err, usecase_favorite.ErrMovieNotFound) {
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Error: "Movie not found",
				Code:  http.StatusNotFound,
			})
			return
		}

		c.logger.Error("failed to add favorite",
			slog.String("user_id", userID.String()),
			slog.Int("tmdb_id", req.MovieID),
			slog.String("error", err.Error()),
		)
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Error: "Failed to add favorite",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	ctx.JSON(http.StatusCreated, ConvertFromFavorite(favorite))
}

// @Summary Remove favorite
// @Description Removes the favorite identified by the movie's TMDb id
// @Tags Favorites operations
// @Produce json
// @Security BearerAuth
// @Param movie_id path int true "TMDb movie id" example(603)
// @Success 204 "Favorite removed"
// @Failure 404 {object} http_common.DetailResponse "Movie not in favorites"
// @Failure 500 {object} http_common.ErrorResponse "Internal server error"
// @Router /movies/favorites/remove/{movie_id}/ [delete]
func (c *Controller) remove(ctx *gin.Context) {
	userID, ok := http_auth_middleware.UserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{Error: "Token missing"})
		return
	}

	tmdbID, err := strconv.Atoi(ctx.Param("movie_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Error: "Movie id must be a number",
			Code:  http.StatusBadRequest,
		})
		return
	}

	if err := c.uc.Remove(ctx.Request.Context(), userID, tmdbID); err != nil {
		if errors.Is(err, usecase_favorite.ErrFavoriteNotFound) {
			ctx.JSON(http.StatusNotFound, http_common.DetailResponse{
				Detail: "Movie not found in favorites.",
			})
			return
		}

		c.logger.Error("failed to remove favorite",
			slog.String("user_id", userID.String()),
			slog.Int("tmdb_id", tmdbID),
			slog.String("error", err.Error()),
		)
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Error: "Failed to remove favorite",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	ctx.Status(http.StatusNoContent)
}
