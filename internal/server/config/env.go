package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// EnvConfig mirrors the environment variables understood by the server.
// Unset variables leave the corresponding Config field untouched.
type EnvConfig struct {
	Port                  string         `env:"PORT"`
	Address               string         `env:"ADDRESS"`
	DatabaseDSN           string         `env:"DATABASE_URL"`
	SecretKey             string         `env:"JWT_SECRET"`
	TokenValidityDuration *time.Duration `env:"TOKEN_TTL"`
	BcryptCost            *int           `env:"BCRYPT_COST"`
	AuthRateLimit         *string        `env:"AUTH_RATE_LIMIT"`
	RunMigrations         *bool          `env:"RUN_MIGRATIONS"`
	S3RootUser            string         `env:"S3_ROOT_USER"`
	S3RootPassword        string         `env:"S3_ROOT_PASSWORD"`
	S3Bucket              string         `env:"S3_BUCKET"`
	S3Region              string         `env:"S3_REGION"`
	S3BaseEndpoint        string         `env:"S3_BASE_ENDPOINT"`
}

// dotenvFile is loaded (without overriding the real environment) when present.
var dotenvFile = ".env"

// parseEnv overlays environment variables onto config. A missing .env file
// is ignored; a malformed one or an unparsable variable panics, like the
// JSON and flag stages.
func parseEnv(config *Config) {
	if err := godotenv.Load(dotenvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	var e EnvConfig
	if err := env.Parse(&e); err != nil {
		panic(err)
	}

	if e.Address != "" {
		config.EndpointAddrHTTP = e.Address
	} else if e.Port != "" {
		config.EndpointAddrHTTP = ":" + strings.TrimPrefix(e.Port, ":")
	}
	if e.DatabaseDSN != "" {
		config.DatabaseDSN = e.DatabaseDSN
	}
	if e.SecretKey != "" {
		config.SecretKey = e.SecretKey
	}
	if e.TokenValidityDuration != nil {
		config.TokenValidityDuration = *e.TokenValidityDuration
	}
	if e.BcryptCost != nil {
		config.BcryptCost = *e.BcryptCost
	}
	if e.AuthRateLimit != nil {
		config.AuthRateLimit = *e.AuthRateLimit
	}
	if e.RunMigrations != nil {
		config.RunMigrations = *e.RunMigrations
	}
	if e.S3RootUser != "" {
		config.S3RootUser = e.S3RootUser
	}
	if e.S3RootPassword != "" {
		config.S3RootPassword = e.S3RootPassword
	}
	if e.S3Bucket != "" {
		config.S3Bucket = e.S3Bucket
	}
	if e.S3Region != "" {
		config.S3Region = e.S3Region
	}
	if e.S3BaseEndpoint != "" {
		config.S3BaseEndpoint = e.S3BaseEndpoint
	}
}
