package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// DefaultPath is read when no path is given and CONFIG_PATH is unset
const DefaultPath = "configs/development.yaml"

type Config struct {
	Server Server `yaml:"server"`

	Session Session `yaml:"session"`

	Auth Auth `yaml:"auth"`

	Catalog Catalog `yaml:"catalog"`

	Database Database `yaml:"database"`
}

type Server struct {
	Address string `yaml:"address"`
	// CSRFKey enables CSRF protection on page forms when set (32 bytes)
	CSRFKey string `yaml:"csrf_key"`
	// SecureCookies marks session and CSRF cookies Secure (HTTPS only)
	SecureCookies bool `yaml:"secure_cookies"`
}

type Session struct {
	Name     string `yaml:"name"`
	HashKey  string `yaml:"hash_key"`
	BlockKey string `yaml:"block_key"`
	MaxAge   int    `yaml:"max_age"` // In Seconds
}

type Auth struct {
	JWT         JWT       `yaml:"jwt"`
	EmailDomain string    `yaml:"email_domain"`
	Customers   []Account `yaml:"customers"`
}

type JWT struct {
	Secret    string `yaml:"secret"`
	ExpiresIn int    `yaml:"expires_in"` // In Hours
}

type Account struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type Catalog struct {
	// Source is "fixture" or "postgres"
	Source string `yaml:"source"`
}

type Database struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	User       string `yaml:"user"`
	Password   string `yaml:"password"`
	DBName     string `yaml:"dbname"`
	SSLMode    string `yaml:"sslmode"`
	Migrations string `yaml:"migrations"`
}

// Default returns a configuration that runs the demo with no file at all
func Default() *Config {
	return &Config{
		Server: Server{
			Address: ":8080",
		},
		Session: Session{
			Name:   "dormdash-session",
			MaxAge: 86400 * 7,
		},
		Auth: Auth{
			JWT: JWT{
				Secret:    "dormdash-dev-secret",
				ExpiresIn: 24,
			},
			EmailDomain: "umbc.edu",
			Customers: []Account{
				{Username: "login", Password: "login"},
			},
		},
		Catalog: Catalog{
			Source: "fixture",
		},
		Database: Database{
			Host:       "localhost",
			Port:       5432,
			User:       "postgres",
			Password:   "postgres",
			DBName:     "dormdash",
			SSLMode:    "disable",
			Migrations: "file://migrations",
		},
	}
}

// Load reads the configuration. An explicit path must exist; the default
// path is optional. A .env file in the working directory is loaded first and
// environment variables override file values.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	required := true
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = DefaultPath
		required = false
	}

	cfg := Default()

	f, err := os.Open(path)
	switch {
	case err == nil:
		defer f.Close()
		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !required:
	default:
		return nil, err
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Server.Address, "DORMDASH_ADDRESS")
	setString(&c.Server.CSRFKey, "DORMDASH_CSRF_KEY")
	setString(&c.Session.HashKey, "DORMDASH_SESSION_HASH_KEY")
	setString(&c.Session.BlockKey, "DORMDASH_SESSION_BLOCK_KEY")
	setString(&c.Auth.JWT.Secret, "DORMDASH_JWT_SECRET")
	setString(&c.Catalog.Source, "DORMDASH_CATALOG_SOURCE")
	setString(&c.Database.Host, "DB_HOST")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.DBName, "DB_NAME")
	setString(&c.Database.SSLMode, "DB_SSLMODE")

	if v, ok := os.LookupEnv("DB_PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid DB_PORT %q: %w", v, err)
		}
		c.Database.Port = port
	}
	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

// Validate checks values the server cannot start without
func (c *Config) Validate() error {
	switch c.Catalog.Source {
	case "fixture", "postgres":
	default:
		return fmt.Errorf("catalog.source must be fixture or postgres, got %q", c.Catalog.Source)
	}
	if c.Auth.JWT.ExpiresIn <= 0 {
		return fmt.Errorf("auth.jwt.expires_in must be positive")
	}
	if c.Auth.JWT.Secret == "" {
		return fmt.Errorf("auth.jwt.secret is required")
	}
	switch len(c.Session.BlockKey) {
	case 0, 16, 24, 32:
	default:
		return fmt.Errorf("session.block_key must be 16, 24 or 32 bytes")
	}
	if c.Server.CSRFKey != "" && len(c.Server.CSRFKey) != 32 {
		return fmt.Errorf("server.csrf_key must be 32 bytes")
	}
	return nil
}
