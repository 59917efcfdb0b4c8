package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config captures all runtime configuration derived from environment variables.
type Config struct {
	Port              string `env:"PORT" env-default:"8080"`
	SPARQLHost        string `env:"SPARQL_HOST" env-default:"http://localhost:7200"`
	SPARQLRepository  string `env:"SPARQL_REPOSITORY" env-default:"movies"`
	SPARQLTimeoutSecs int    `env:"SPARQL_TIMEOUT_SECS" env-default:"10"`

	WikidataEndpoint    string  `env:"WIKIDATA_ENDPOINT" env-default:"https://query.wikidata.org/sparql"`
	WikidataUserAgent   string  `env:"WIKIDATA_USER_AGENT" env-default:"filmgraph/1.0 (https://github.com/Clark-Hu/filmgraph)"`
	WikidataTimeoutSecs int     `env:"WIKIDATA_TIMEOUT_SECS" env-default:"5"`
	WikidataRatePerSec  float64 `env:"WIKIDATA_RATE_PER_SEC" env-default:"5"`

	ReadTimeoutSecs  int `env:"SERVER_READ_TIMEOUT" env-default:"15"`
	WriteTimeoutSecs int `env:"SERVER_WRITE_TIMEOUT" env-default:"60"`
	IdleTimeoutSecs  int `env:"SERVER_IDLE_TIMEOUT" env-default:"60"`

	DBURL             string `env:"DB_URL"`
	DBMaxConns        int    `env:"DB_MAX_CONNS" env-default:"10"`
	DBMinConns        int    `env:"DB_MIN_CONNS" env-default:"1"`
	DBMaxIdleSecs     int    `env:"DB_MAX_CONN_IDLE_SECS" env-default:"300"`
	DBMaxLifeSecs     int    `env:"DB_MAX_CONN_LIFETIME_SECS" env-default:"3600"`
	DBConnTimeoutSecs int    `env:"DB_CONN_TIMEOUT_SECS" env-default:"10"`
	DBStatementCache  int    `env:"DB_STATEMENT_CACHE_CAPACITY" env-default:"256"`

	LogLevel string `env:"LOG_LEVEL" env-default:"info"`
	LogFile  string `env:"LOG_FILE"`
}

// Load reads configuration from environment variables, applying defaults and validation.
func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}

	if err := checkHTTPURL("SPARQL_HOST", cfg.SPARQLHost); err != nil {
		return Config{}, err
	}
	if strings.TrimSpace(cfg.SPARQLRepository) == "" || strings.Contains(cfg.SPARQLRepository, "/") {
		return Config{}, fmt.Errorf("SPARQL_REPOSITORY must be a single path segment")
	}
	if err := checkHTTPURL("WIKIDATA_ENDPOINT", cfg.WikidataEndpoint); err != nil {
		return Config{}, err
	}
	if cfg.SPARQLTimeoutSecs <= 0 {
		return Config{}, fmt.Errorf("SPARQL_TIMEOUT_SECS must be positive")
	}
	if cfg.WikidataTimeoutSecs <= 0 {
		return Config{}, fmt.Errorf("WIKIDATA_TIMEOUT_SECS must be positive")
	}
	if cfg.WikidataRatePerSec < 0 {
		return Config{}, fmt.Errorf("WIKIDATA_RATE_PER_SEC must be non-negative")
	}
	if cfg.DBMaxConns <= 0 {
		return Config{}, fmt.Errorf("DB_MAX_CONNS must be positive")
	}
	if cfg.DBMinConns < 0 {
		return Config{}, fmt.Errorf("DB_MIN_CONNS must be non-negative")
	}
	if cfg.DBMinConns > cfg.DBMaxConns {
		return Config{}, fmt.Errorf("DB_MIN_CONNS cannot exceed DB_MAX_CONNS")
	}
	if cfg.DBStatementCache < 0 {
		return Config{}, fmt.Errorf("DB_STATEMENT_CACHE_CAPACITY must be non-negative")
	}
	switch strings.ToLower(cfg.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return Config{}, fmt.Errorf("LOG_LEVEL %q is not one of debug, info, warn, error", cfg.LogLevel)
	}

	return cfg, nil
}

// LocalEndpoint is the SPARQL endpoint of the catalog repository.
func (c Config) LocalEndpoint() string {
	return strings.TrimRight(c.SPARQLHost, "/") + "/repositories/" + c.SPARQLRepository
}

// RatingsEnabled reports whether community ratings have a database.
func (c Config) RatingsEnabled() bool {
	return c.DBURL != ""
}

func checkHTTPURL(name, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%s must be an http(s) URL, got %q", name, raw)
	}
	return nil
}
