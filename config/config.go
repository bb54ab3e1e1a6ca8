package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
)

// Backend names.
const (
	StoreFirebase = "firebase"
	StorePostgres = "postgres"
	StoreMemory   = "memory"

	IdentityFirebase = "firebase"
	IdentityLocal    = "local"

	SessionFile   = "file"
	SessionSQLite = "sqlite"
	SessionRedis  = "redis"
	SessionMemory = "memory"
)

// Config is shared by the API server and the device CLI. Values come from
// Default, then an optional TOML file, then the environment.
type Config struct {
	HTTPAddr       string        `toml:"http_addr" envconfig:"HTTP_ADDR"`
	RequestTimeout time.Duration `toml:"request_timeout" envconfig:"REQUEST_TIMEOUT"`

	StoreBackend    string `toml:"store_backend" envconfig:"STORE_BACKEND"`
	IdentityBackend string `toml:"identity_backend" envconfig:"IDENTITY_BACKEND"`

	FirebaseAPIKey      string `toml:"firebase_api_key" envconfig:"FIREBASE_API_KEY"`
	FirebaseProjectID   string `toml:"firebase_project_id" envconfig:"FIREBASE_PROJECT_ID"`
	FirebaseDatabaseURL string `toml:"firebase_database_url" envconfig:"FIREBASE_DATABASE_URL"`
	CredentialsFile     string `toml:"credentials_file" envconfig:"GOOGLE_APPLICATION_CREDENTIALS"`

	DatabaseURL string `toml:"database_url" envconfig:"DATABASE_URL"`

	SessionBackend string `toml:"session_backend" envconfig:"SESSION_BACKEND"`
	SessionPath    string `toml:"session_path" envconfig:"SESSION_PATH"`
	RedisAddr      string `toml:"redis_addr" envconfig:"REDIS_ADDR"`
	RedisPassword  string `toml:"redis_password" envconfig:"REDIS_PASSWORD"`
	RedisDB        int    `toml:"redis_db" envconfig:"REDIS_DB"`

	JWTSecret      string        `toml:"jwt_secret" envconfig:"JWT_SECRET"`
	AccessTokenTTL time.Duration `toml:"access_token_ttl" envconfig:"ACCESS_TOKEN_TTL"`

	ResolveParallel bool `toml:"resolve_parallel" envconfig:"RESOLVE_PARALLEL"`

	CloudinaryCloudName    string `toml:"cloudinary_cloud_name" envconfig:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryUploadPreset string `toml:"cloudinary_upload_preset" envconfig:"CLOUDINARY_UPLOAD_PRESET"`
	CloudinaryFolder       string `toml:"cloudinary_folder" envconfig:"CLOUDINARY_FOLDER"`
	CloudinaryBaseURL      string `toml:"cloudinary_base_url" envconfig:"CLOUDINARY_BASE_URL"`
}

// Default returns settings for local development: in-memory record store,
// local identity provider and a session file under the user config dir.
func Default() Config {
	return Config{
		HTTPAddr:               ":8080",
		RequestTimeout:         10 * time.Second,
		StoreBackend:           StoreMemory,
		IdentityBackend:        IdentityLocal,
		SessionBackend:         SessionFile,
		SessionPath:            filepath.Join(configDir(), "session.json"),
		RedisAddr:              "localhost:6379",
		AccessTokenTTL:         24 * time.Hour,
		CloudinaryUploadPreset: "ChoonPaan",
		CloudinaryFolder:       "Drivers Profile/",
	}
}

// DefaultPath is the config file read when none is given explicitly.
func DefaultPath() string {
	return filepath.Join(configDir(), "config.toml")
}

func configDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".choonpaan"
	}
	return filepath.Join(dir, "choonpaan")
}

// Load builds the configuration. An empty path reads DefaultPath if it
// exists; an explicit path must exist. Environment variables override the
// file, and unset variables leave file values in place.
func Load(path string) (Config, error) {
	cfg := Default()

	file := path
	if file == "" {
		if _, err := os.Stat(DefaultPath()); err == nil {
			file = DefaultPath()
		}
	}
	if file != "" {
		if _, err := toml.DecodeFile(file, &cfg); err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", file, err)
		}
	}

	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("reading environment: %w", err)
	}
	return cfg, nil
}

// Validate rejects backend selections that are unknown or missing the
// settings they need.
func (c Config) Validate() error {
	var errs []error
	switch c.StoreBackend {
	case StoreFirebase:
		if c.FirebaseDatabaseURL == "" {
			errs = append(errs, errors.New("FIREBASE_DATABASE_URL is required for the firebase store"))
		}
	case StorePostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres store"))
		}
	case StoreMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend))
	}

	switch c.IdentityBackend {
	case IdentityFirebase:
		if c.FirebaseAPIKey == "" {
			errs = append(errs, errors.New("FIREBASE_API_KEY is required for the firebase identity provider"))
		}
	case IdentityLocal:
	default:
		errs = append(errs, fmt.Errorf("unknown IDENTITY_BACKEND %q", c.IdentityBackend))
	}

	switch c.SessionBackend {
	case SessionFile, SessionSQLite:
		if c.SessionPath == "" {
			errs = append(errs, fmt.Errorf("SESSION_PATH is required for the %s session store", c.SessionBackend))
		}
	case SessionRedis:
		if c.RedisAddr == "" {
			errs = append(errs, errors.New("REDIS_ADDR is required for the redis session store"))
		}
	case SessionMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown SESSION_BACKEND %q", c.SessionBackend))
	}

	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("REQUEST_TIMEOUT must be positive"))
	}
	return errors.Join(errs...)
}

// ValidateServer adds the checks only the API server needs.
func (c Config) ValidateServer() error {
	err := c.Validate()
	if c.JWTSecret == "" {
		err = errors.Join(err, errors.New("JWT_SECRET is required"))
	}
	if c.AccessTokenTTL <= 0 {
		err = errors.Join(err, errors.New("ACCESS_TOKEN_TTL must be positive"))
	}
	return err
}

// UploadsEnabled reports whether profile image upload is configured.
func (c Config) UploadsEnabled() bool {
	return c.CloudinaryCloudName != "" && c.CloudinaryUploadPreset != ""
}
