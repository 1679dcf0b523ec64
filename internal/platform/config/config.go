// Package config builds the service configuration from environment
// variables. A .env file in the working directory is loaded first when
// present; variables already set in the environment win.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

const devSigningKey = "dev-secret-key-change-in-production"

// Config is the full service configuration.
type Config struct {
	Server    Server
	Database  Database
	Redis     Redis
	Auth      Auth
	Licensing Licensing
	Log       Log
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	Regulated       bool
}

// Database selects the store. An empty URL with Store=postgres is an error.
type Database struct {
	Store        string
	Driver       string
	URL          string
	MaxOpenConns int
	TxTimeout    time.Duration
}

// Redis configures the optional fee table cache. An empty URL disables it.
type Redis struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	FeeCacheTTL  time.Duration
}

// Auth configures operator token validation.
type Auth struct {
	JWTSigningKey string
	Issuer        string
	Audience      string
	TokenTTL      time.Duration
}

// Licensing carries the tunable business parameters.
type Licensing struct {
	InternationalValidity time.Duration
	EligibleClassID       int64
}

// Log configures the slog handler.
type Log struct {
	Level  slog.Level
	Format string
}

// FromEnv loads .env (if any) and builds a Config so main stays lean.
func FromEnv() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return Parse(os.Getenv)
}

// Parse builds a Config from a lookup function. Tests pass a map lookup.
func Parse(getenv func(string) string) (Config, error) {
	p := parser{getenv: getenv}
	cfg := Config{
		Server: Server{
			Addr:            p.str("LICENSING_ADDR", ":8080"),
			ReadTimeout:     p.duration("LICENSING_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    p.duration("LICENSING_WRITE_TIMEOUT", 15*time.Second),
			ShutdownTimeout: p.duration("LICENSING_SHUTDOWN_TIMEOUT", 20*time.Second),
			Regulated:       p.boolean("REGULATED_MODE", false),
		},
		Database: Database{
			Store:        strings.ToLower(p.str("LICENSING_STORE", StoreMemory)),
			Driver:       p.str("DATABASE_DRIVER", "postgres"),
			URL:          p.str("DATABASE_URL", ""),
			MaxOpenConns: p.integer("DATABASE_MAX_OPEN_CONNS", 20),
			TxTimeout:    p.duration("DATABASE_TX_TIMEOUT", 5*time.Second),
		},
		Redis: Redis{
			URL:          p.str("REDIS_URL", ""),
			PoolSize:     p.integer("REDIS_POOL_SIZE", 10),
			MinIdleConns: p.integer("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  p.duration("REDIS_DIAL_TIMEOUT", 2*time.Second),
			ReadTimeout:  p.duration("REDIS_READ_TIMEOUT", time.Second),
			WriteTimeout: p.duration("REDIS_WRITE_TIMEOUT", time.Second),
			FeeCacheTTL:  p.duration("FEE_CACHE_TTL", 10*time.Minute),
		},
		Auth: Auth{
			JWTSigningKey: p.str("JWT_SIGNING_KEY", devSigningKey),
			Issuer:        p.str("JWT_ISSUER", "licensing"),
			Audience:      p.str("JWT_AUDIENCE", "licensing-operators"),
			TokenTTL:      p.duration("JWT_TOKEN_TTL", 8*time.Hour),
		},
		Licensing: Licensing{
			InternationalValidity: p.duration("INTERNATIONAL_VALIDITY", 365*24*time.Hour),
			EligibleClassID:       int64(p.integer("INTERNATIONAL_ELIGIBLE_CLASS", 3)),
		},
		Log: Log{
			Level:  p.level("LOG_LEVEL", slog.LevelInfo),
			Format: strings.ToLower(p.str("LOG_FORMAT", "json")),
		},
	}
	if p.err != nil {
		return Config{}, p.err
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	var errs []error
	switch c.Database.Store {
	case StoreMemory:
	case StorePostgres:
		if c.Database.URL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required when LICENSING_STORE=postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("LICENSING_STORE must be %q or %q, got %q", StoreMemory, StorePostgres, c.Database.Store))
	}
	if c.Server.Regulated && c.Auth.JWTSigningKey == devSigningKey {
		errs = append(errs, errors.New("JWT_SIGNING_KEY must be set in regulated mode"))
	}
	if c.Licensing.InternationalValidity <= 0 {
		errs = append(errs, errors.New("INTERNATIONAL_VALIDITY must be positive"))
	}
	if c.Licensing.EligibleClassID <= 0 {
		errs = append(errs, errors.New("INTERNATIONAL_ELIGIBLE_CLASS must be positive"))
	}
	return errors.Join(errs...)
}

// parser records the first malformed value and keeps returning defaults.
type parser struct {
	getenv func(string) string
	err    error
}

func (p *parser) str(key, def string) string {
	if v := strings.TrimSpace(p.getenv(key)); v != "" {
		return v
	}
	return def
}

func (p *parser) fail(key, raw string, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("invalid %s=%q: %w", key, raw, err)
	}
}

func (p *parser) duration(key string, def time.Duration) time.Duration {
	raw := p.str(key, "")
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		p.fail(key, raw, err)
		return def
	}
	return d
}

func (p *parser) integer(key string, def int) int {
	raw := p.str(key, "")
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		p.fail(key, raw, err)
		return def
	}
	return n
}

func (p *parser) boolean(key string, def bool) bool {
	raw := p.str(key, "")
	if raw == "" {
		return def
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		p.fail(key, raw, err)
		return def
	}
	return b
}

func (p *parser) level(key string, def slog.Level) slog.Level {
	raw := p.str(key, "")
	if raw == "" {
		return def
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(raw)); err != nil {
		p.fail(key, raw, err)
		return def
	}
	return l
}
