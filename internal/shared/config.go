package shared

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendMemory = "memory"
	BackendHTTP   = "http"
	BackendMySQL  = "mysql"
)

type Config struct {
	AppEnv          string
	HTTPAddr        string
	MetricsAddr     string
	ContactsBackend string
	ContactsBaseURL string
	ContactsAPIKey  string
	ContactsRPS     int
	MySQLDSN        string
	RedisAddr       string
	RedisDB         int
	RedisPass       string
	CacheTTL        time.Duration
	SeedFile        string
	DumpWorkers     int
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration

	// Load runs before the logger exists, so it reports instead of logging.
	DotEnv   bool
	Warnings []string
}

// Load reads the process environment, after merging an optional .env file
// (variables already set win over the file).
func Load() Config {
	dotEnv := godotenv.Load() == nil

	var warnings []string
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			warnings = append(warnings, fmt.Sprintf("%s=%q is not an integer, using default %d", k, v, def))
		}
		return def
	}
	c := Config{
		AppEnv:          env("APP_ENV", "prod"),
		HTTPAddr:        env("HTTP_ADDR", ":8080"),
		MetricsAddr:     env("METRICS_ADDR", ""),
		ContactsBackend: env("CONTACTS_BACKEND", ""),
		ContactsBaseURL: env("CONTACTS_BASE_URL", ""),
		ContactsAPIKey:  env("CONTACTS_API_KEY", ""),
		ContactsRPS:     atoi("CONTACTS_RPS", 10),
		MySQLDSN:        env("MYSQL_DSN", "root:root@tcp(localhost:3306)/hotel?parseTime=true&charset=utf8mb4&loc=UTC"),
		RedisAddr:       env("REDIS_ADDR", ""),
		RedisPass:       env("REDIS_PASSWORD", ""),
		RedisDB:         atoi("REDIS_DB", 0),
		CacheTTL:        time.Duration(atoi("CACHE_TTL_SECONDS", 60)) * time.Second,
		SeedFile:        env("SEED_FILE", ""),
		DumpWorkers:     atoi("DUMP_WORKERS", 8),
		RequestTimeout:  time.Duration(atoi("REQUEST_TIMEOUT_SECONDS", 15)) * time.Second,
		ShutdownTimeout: time.Duration(atoi("SHUTDOWN_TIMEOUT_SECONDS", 15)) * time.Second,
		DotEnv:          dotEnv,
	}
	if c.ContactsBackend == "" {
		// a configured remote service implies the http backend
		c.ContactsBackend = BackendMemory
		if c.ContactsBaseURL != "" {
			c.ContactsBackend = BackendHTTP
		}
	}
	if c.ContactsBackend == BackendHTTP && c.ContactsAPIKey == "" {
		warnings = append(warnings, "CONTACTS_API_KEY is empty")
	}
	c.Warnings = warnings
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
