package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the application configuration, read from a YAML file with
// environment variable overrides.
type Config struct {
	Env        string `yaml:"env" env:"SHOPNEST_ENV" env-default:"local"`
	DB         `yaml:"db"`
	HTTPServer `yaml:"http_server"`
	Auth       Auth `yaml:"auth"`
	Seed       Seed `yaml:"seed"`
}

type DB struct {
	// DSN is a sqlite path, or ":memory:" for an ephemeral database.
	DSN string `yaml:"dsn" env:"SHOPNEST_DB_DSN" env-default:"file:shopnest.db?cache=shared"`
}

type HTTPServer struct {
	Address      string        `yaml:"address" env:"SHOPNEST_HTTP_ADDRESS" env-default:":8080"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" env-default:"60s"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env-default:"10s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env-default:"10s"`
}

// Auth carries the token signing settings. The signing key has no default
// on purpose: every deployment must provide its own.
type Auth struct {
	SigningKey      string `yaml:"signing_key" env:"SHOPNEST_SIGNING_KEY" env-required:"true"`
	TokenExpiration int    `yaml:"token_expiration" env:"SHOPNEST_TOKEN_EXPIRATION" env-default:"24"`
	Issuer          string `yaml:"issuer" env-default:"shopnest"`
	Audience        string `yaml:"audience" env-default:"shopnest"`
	ContextKey      string `yaml:"context_key" env-default:"auth_subject"`
	AuthScheme      string `yaml:"auth_scheme" env-default:"Bearer"`
}

// Seed controls the bootstrap admin account created on first boot.
type Seed struct {
	AdminEmail    string `yaml:"admin_email" env:"SHOPNEST_ADMIN_EMAIL" env-default:"admin@shopnest.com"`
	AdminPassword string `yaml:"admin_password" env:"SHOPNEST_ADMIN_PASSWORD" env-default:"admin1234"`
}

// GetSigningKey implements auth.Config.
func (a Auth) GetSigningKey() string { return a.SigningKey }

// GetTokenExpiration implements auth.Config. The value is in hours.
func (a Auth) GetTokenExpiration() int { return a.TokenExpiration }

// GetIssuer implements auth.Config.
func (a Auth) GetIssuer() string { return a.Issuer }

// GetAudience implements auth.Config.
func (a Auth) GetAudience() []string { return []string{a.Audience} }

// GetContextKey implements auth.Config.
func (a Auth) GetContextKey() string { return a.ContextKey }

// GetAuthScheme implements auth.Config.
func (a Auth) GetAuthScheme() string { return a.AuthScheme }

// MustLoad reads the configuration or panics. Meant for main only.
func MustLoad(configPath string) *Config {
	if _, err := os.Stat(configPath); err != nil {
		panic(fmt.Sprintf("config file not found: %s", configPath))
	}

	config, err := Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	return config
}

// Load reads the configuration from the given YAML file and the environment.
func Load(path string) (*Config, error) {
	var config Config

	if err := cleanenv.ReadConfig(path, &config); err != nil {
		return nil, err
	}

	return &config, nil
}
