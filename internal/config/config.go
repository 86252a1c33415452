package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type HTTPServer struct {
	Host string
	Port string
}

type RedisCache struct {
	Host     string
	Port     string
	Password string
}

type Postgres struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type TMDb struct {
	BaseURL    string
	APIKey     string
	Language   string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

type Auth struct {
	JWTSecret  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type Cache struct {
	ResultTTL time.Duration
}

type Config struct {
	HTTP     HTTPServer
	Redis    RedisCache
	Postgres Postgres
	TMDb     TMDb
	Auth     Auth
	Cache    Cache
}

const logtag = "[config]"

func Load() *Config {
	configPath := flag.String("config", "", "path env file")
	flag.Parse()

	if *configPath != "" {
		if err := godotenv.Load(*configPath); err != nil {
			log.Fatalf("%s err loading env from file : %v", logtag, err)
		}
		log.Printf("%s using env from : %s", logtag, *configPath)
	} else {
		log.Printf("%s using env from .env", logtag)
		_ = godotenv.Load()
	}

	cfg := &Config{
		HTTP:     *newHTTP(),
		Redis:    *newRedis(),
		Postgres: *newPostgres(),
		TMDb:     *newTMDb(),
		Auth:     *newAuth(),
		Cache:    *newCache(),
	}

	return cfg
}

func newHTTP() *HTTPServer {
	return &HTTPServer{
		Port: getenv("HTTP_PORT", "8080"),
		Host: getenv("HTTP_HOST", "localhost"),
	}
}

func newRedis() *RedisCache {
	return &RedisCache{
		Port:     getenv("REDIS_PORT", "6379"),
		Host:     getenv("REDIS_HOST", "redis"),
		Password: getenv("REDIS_PASSWORD", "shared"),
	}
}

func newPostgres() *Postgres {
	return &Postgres{
		Host:     getenv("DB_HOST", "localhost"),
		Port:     getenv("DB_PORT", "5432"),
		User:     getenv("DB_USER", "admin"),
		Password: getenv("DB_PASSWORD", "shared"),
		DBName:   getenv("DB_NAME", "kinopick"),
		SSLMode:  getenv("DB_SSLMODE", "disable"),
	}
}

func newTMDb() *TMDb {
	return &TMDb{
		BaseURL:    getenv("TMDB_BASE_URL", "https://api.themoviedb.org/3"),
		APIKey:     getenv("TMDB_API_KEY", ""),
		Language:   getenv("TMDB_LANGUAGE", "en-US"),
		Timeout:    getenvDuration("TMDB_TIMEOUT", 10*time.Second),
		MaxRetries: getenvInt("TMDB_MAX_RETRIES", 3),
		RetryDelay: getenvDuration("TMDB_RETRY_DELAY", 2*time.Second),
	}
}

func newAuth() *Auth {
	return &Auth{
		JWTSecret:  getenv("JWT_SECRET", "shared"),
		AccessTTL:  getenvDuration("JWT_ACCESS_TTL", 30*time.Minute),
		RefreshTTL: getenvDuration("JWT_REFRESH_TTL", 24*time.Hour),
	}
}

func newCache() *Cache {
	return &Cache{
		ResultTTL: getenvDuration("CACHE_RESULT_TTL", time.Hour),
	}
}

func getenv(key, defaultValue string) string {
	val := os.Getenv(key)
	if val == "" {
		fmt.Printf("%s %s undefined. Using default value %s\n", logtag, key, defaultValue)
		return defaultValue
	}
	return val
}

func getenvInt(key string, defaultValue int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		log.Fatalf("%s %s must be an integer : %v", logtag, key, err)
	}
	return n
}

func getenvDuration(key string, defaultValue time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		log.Fatalf("%s %s must be a duration : %v", logtag, key, err)
	}
	return d
}
