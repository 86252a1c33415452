package app

import (
	"os"
	"time"

	"github.com/kinopick/core/internal/config"
	http_favorite "github.com/kinopick/core/internal/delivery/http/favorite"
	http_init "github.com/kinopick/core/internal/delivery/http/init"
	http_auth_middleware "github.com/kinopick/core/internal/delivery/http/middleware/auth"
	http_movie "github.com/kinopick/core/internal/delivery/http/movie"
	http_swagger "github.com/kinopick/core/internal/delivery/http/swagger"
	http_user "github.com/kinopick/core/internal/delivery/http/user"
	infra_memcache "github.com/kinopick/core/internal/infra/memcache"
	infra_postgres_favorite "github.com/kinopick/core/internal/infra/postgres/favorite"
	infra_pg_init "github.com/kinopick/core/internal/infra/postgres/init"
	infra_postgres_movie "github.com/kinopick/core/internal/infra/postgres/movie"
	infra_postgres_user "github.com/kinopick/core/internal/infra/postgres/user"
	infra_redis_init "github.com/kinopick/core/internal/infra/redis/init"
	infra_result_cache "github.com/kinopick/core/internal/infra/redis/resultcache"
	infra_tmdb "github.com/kinopick/core/internal/infra/tmdb"
	service_recommender "github.com/kinopick/core/internal/service/recommender"
	service_token "github.com/kinopick/core/internal/service/token"
	usecase_favorite "github.com/kinopick/core/internal/usecase/favorite"
	usecase_movie "github.com/kinopick/core/internal/usecase/movie"
	usecase_user "github.com/kinopick/core/internal/usecase/user"
)

// ResultCache is what the usecases need from a cache driver. Both the redis
// and the in-memory drivers satisfy it.
type ResultCache interface {
	Get(key string) (string, error)
	Set(key string, value string, ttl time.Duration) error
	Del(key string) error
}

func Go(cfg *config.Config) {

	pgConn := infra_pg_init.MustEstablishConn(cfg.Postgres)

	movieRepository := infra_postgres_movie.New(pgConn)
	favoriteRepository := infra_postgres_favorite.New(pgConn)
	userRepository := infra_postgres_user.New(pgConn)

	var resultCache ResultCache
	if os.Getenv("REDIS_HOST") == "" {
		resultCache = infra_memcache.New()
	} else {
		redisConn := infra_redis_init.MustEstablishConn(cfg.Redis)
		resultCache = infra_result_cache.New(redisConn, "result_cache")
	}
	tmdbClient := infra_tmdb.New(cfg.TMDb)
	tokenService := service_token.New(cfg.Auth)

	movieUC := usecase_movie.New(
		movieRepository,
		favoriteRepository,
		tmdbClient,
		resultCache,
		cfg.Cache.ResultTTL,
		usecase_movie.WithFallbackLimit(service_recommender.DefaultFallbackLimit),
	)
	favoriteUC := usecase_favorite.New(favoriteRepository, movieRepository, resultCache)
	userUC := usecase_user.New(userRepository, tokenService)

	authMiddleware := http_auth_middleware.New(tokenService)

	controllerPool := http_init.NewControllerPool()
	controllerPool.Add(http_swagger.New())
	controllerPool.Add(http_movie.New(movieUC, authMiddleware))
	controllerPool.Add(http_favorite.New(favoriteUC, authMiddleware))
	controllerPool.Add(http_user.New(userUC, authMiddleware))

	controllerPool.Register()
	controllerPool.RunAll(cfg.HTTP.Port)
}
