package http_movie

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	http_common "github.com/kinopick/core/internal/delivery/http/common"
	http_auth_middleware "github.com/kinopick/core/internal/delivery/http/middleware/auth"
	"github.com/kinopick/core/internal/model"
)

// MovieResponseDTO represents a catalog movie in API responses.
type MovieResponseDTO struct {
	ID          uuid.UUID `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	TMDBID      int       `json:"tmdb_id" example:"603"`
	Title       string    `json:"title" example:"The Matrix"`
	Description string    `json:"description" example:"A computer hacker learns the truth about his reality..."`
	PosterPath  string    `json:"poster_path" example:"/f89U3ADr1oiB1s9GkdPOEpXUk5H.jpg"`
	ReleaseDate *string   `json:"release_date" example:"1999-03-30"`
	Genres      []int     `json:"genres" example:"28,878"`
	GenreNames  []string  `json:"genre_names" example:"Action,Sci-Fi"`
}

func ConvertFromMovie(m model.Movie) MovieResponseDTO {
	var releaseDate *string
	if m.ReleaseDate != nil {
		s := m.ReleaseDate.Format("2006-01-02")
		releaseDate = &s
	}

	return MovieResponseDTO{
		ID:          m.ID,
		TMDBID:      m.TMDBID,
		Title:       m.Title,
		Description: m.Description,
		PosterPath:  m.PosterPath,
		ReleaseDate: releaseDate,
		Genres:      m.Genres,
		GenreNames:  m.GenreNames(),
	}
}

func ConvertFromMovieList(movies []model.Movie) []MovieResponseDTO {
	dtos := make([]MovieResponseDTO, len(movies))
	for i, m := range movies {
		dtos[i] = ConvertFromMovie(m)
	}
	return dtos
}

type Usecase interface {
	Trending(ctx context.Context) ([]model.Movie, error)
	Recommended(ctx context.Context, userID uuid.UUID) ([]model.Movie, error)
	Search(ctx context.Context, title string, genre *int) ([]model.Movie, error)
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
	movies := router.Group("/movies")
	movies.GET("/trending/", c.trending)
	movies.GET("/search/", c.search)
	movies.GET("/recommended/", c.middleware.AuthRequired(), c.recommended)
}

// @Summary Trending movies
// @Description Returns the current trending movies, refreshed from TMDb on cache miss
// @Tags Movies operations
// @Produce json
// @Param page query int false "Page number"
// @Success 200 {object} http_common.PageResponse "Paginated trending movies"
// @Failure 500 {object} http_common.ErrorResponse "Internal server error"
// @Router /movies/trending/ [get]
func (c *Controller) trending(ctx *gin.Context) {
	movies, err := c.uc.Trending(ctx.Request.Context())
	if err != nil {
		c.logger.Error("failed to load trending movies", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Error: "Failed to load trending movies",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	page := http_common.PageFromQuery(ctx)
	ctx.JSON(http.StatusOK, http_common.Paginate(ConvertFromMovieList(movies), page, http_common.DefaultPageSize))
}

// @Summary Recommended movies
// @Description Ranks the catalog by genre overlap with the user's favorites
// @Tags Movies operations
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Success 200 {object} http_common.PageResponse "Paginated recommendations"
// @Failure 401 {object} http_common.ErrorResponse "Not authenticated"
// @Failure 500 {object} http_common.ErrorResponse "Internal server error"
// @Router /movies/recommended/ [get]
func (c *Controller) recommended(ctx *gin.Context) {
	userID, ok := http_auth_middleware.UserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
			Error: "Token missing",
		})
		return
	}

	movies, err := c.uc.Recommended(ctx.Request.Context(), userID)
	if err != nil {
		c.logger.Error("failed to load recommendations",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()),
		)
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Error: "Failed to load recommendations",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	page := http_common.PageFromQuery(ctx)
	ctx.JSON(http.StatusOK, http_common.Paginate(ConvertFromMovieList(movies), page, http_common.DefaultPageSize))
}

// @Summary Search movies
// @Description Filters the catalog by title substring and/or genre tag
// @Tags Movies operations
// @Produce json
// @Param q query string false "Title substring, case-insensitive"
// @Param genre query int false "TMDb genre id"
// @Param page query int false "Page number"
// @Success 200 {object} http_common.PageResponse "Paginated search results"
// @Failure 400 {object} http_common.ErrorResponse "Genre is not a number"
// @Failure 500 {object} http_common.ErrorResponse "Internal server error"
// @Router /movies/search/ [get]
func (c *Controller) search(ctx *gin.Context) {
	title := strings.TrimSpace(ctx.Query("q"))

	var genre *int
	if raw := ctx.Query("genre"); raw != "" {
		g, err := strconv.Atoi(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
				Error: "Genre must be a number",
			})
			return
		}
		genre = &g
	}

	movies, err := c.uc.Search(ctx.Request.Context(), title, genre)
	if err != nil {
		c.logger.Error("failed to search movies", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Error: "Failed to search movies",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	page := http_common.PageFromQuery(ctx)
	ctx.JSON(http.StatusOK, http_common.Paginate(ConvertFromMovieList(movies), page, http_common.DefaultPageSize))
}
