package infra_tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/kinopick/core/internal/config"
	"github.com/kinopick/core/internal/model"
)

var ErrUpstreamUnavailable = errors.New("tmdb unavailable")

// TrendingMovie is a single record from the provider's trending feed.
type TrendingMovie struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Overview    string `json:"overview"`
	PosterPath  string `json:"poster_path"`
	ReleaseDate string `json:"release_date"`
	GenreIDs    []int  `json:"genre_ids"`
}

type trendingResponse struct {
	Results []TrendingMovie `json:"results"`
}

// ToDomain maps a provider record onto a catalog movie. The local id is
// minted here; the movie repository keeps the existing one on upsert.
func (t TrendingMovie) ToDomain() model.Movie {
	return model.Movie{
		ID:          uuid.New(),
		TMDBID:      t.ID,
		Title:       t.Title,
		Description: t.Overview,
		Genres:      t.GenreIDs,
		ReleaseDate: ParseReleaseDate(t.ReleaseDate),
		PosterPath:  t.PosterPath,
		CreatedAt:   time.Now().UTC(),
	}
}

type Client struct {
	baseURL    string
	apiKey     string
	language   string
	maxRetries int
	retryDelay time.Duration
	httpClient *http.Client
	logger     *slog.Logger
}

type ClientOption func(*Client)

func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

func New(cfg config.TMDb, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		language:   cfg.Language,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Trending fetches the provider's "trending this week" feed. Network errors
// and 5xx responses are retried with a fixed delay; when every attempt fails
// the caller gets ErrUpstreamUnavailable and should degrade, not crash.
func (c *Client) Trending(ctx context.Context) ([]model.Movie, error) {
	endpoint := fmt.Sprintf("%s/trending/movie/week?api_key=%s&language=%s",
		c.baseURL,
		url.QueryEscape(c.apiKey),
		url.QueryEscape(c.language),
	)

	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		records, retryable, err := c.fetch(ctx, endpoint)
		if err == nil {
			movies := make([]model.Movie, len(records))
			for i, rec := range records {
				movies[i] = rec.ToDomain()
			}
			return movies, nil
		}
		lastErr = err

		if !retryable {
			return nil, err
		}

		c.logger.Warn("tmdb fetch failed",
			slog.Int("attempt", attempt),
			slog.String("error", err.Error()),
		)

		if attempt == c.maxRetries {
			break
		}

		select {
		case <-time.After(c.retryDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return nil, fmt.Errorf("%w: %w", ErrUpstreamUnavailable, lastErr)
}

func (c *Client) fetch(ctx context.Context, endpoint string) (records []TrendingMovie, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("failed to fetch trending movies: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, true, fmt.Errorf("tmdb returned status %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("tmdb returned status %d", resp.StatusCode)
	}

	var data trendingResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, false, fmt.Errorf("failed to decode trending response: %w", err)
	}

	if len(data.Results) == 0 {
		c.logger.Warn("tmdb returned empty trending feed")
	}

	return data.Results, false, nil
}

// ParseReleaseDate converts the provider's YYYY-MM-DD string; empty or
// malformed dates come back as nil.
func ParseReleaseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}
