package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/velidenizayhan/blog/pkg/blog"
	repomemory "github.com/velidenizayhan/blog/pkg/blog/repo/memory"
	repopg "github.com/velidenizayhan/blog/pkg/blog/repo/postgres"
	fsstorage "github.com/velidenizayhan/blog/pkg/blog/storage/fs"
	memorystorage "github.com/velidenizayhan/blog/pkg/blog/storage/memory"
	s3storage "github.com/velidenizayhan/blog/pkg/blog/storage/s3"
)

// ServerConfig represents server configuration for the blog service.
type ServerConfig struct {
	Port        string `env:"PORT" env-default:"8080"`
	Environment string `env:"ENVIRONMENT" env-default:"development"`

	// Database configuration. Empty or "memory" selects the in-memory
	// repository, a postgres URL selects the postgres repository.
	DatabaseURL string `env:"DATABASE_URL" env-default:""`

	// Admin configuration
	AdminPassword    string `env:"ADMIN_PASSWORD" env-default:"112233"`
	AdminTokenSecret string `env:"ADMIN_TOKEN_SECRET" env-default:"blog-admin-secret"`

	Storage StorageConfig

	EnableEventLogging bool `env:"ENABLE_EVENT_LOGGING" env-default:"true"`
}

// StorageConfig selects and configures the blob storage backend.
type StorageConfig struct {
	Backend string `env:"STORAGE_BACKEND" env-default:"memory"` // "memory", "fs", "s3"

	FSBaseDir   string `env:"FS_BASE_DIR" env-default:"./data/storage"`
	FSURLPrefix string `env:"FS_URL_PREFIX" env-default:""`

	S3 S3Config
}

// S3Config mirrors the settings accepted by the S3 storage backend.
type S3Config struct {
	Region                 string `env:"S3_REGION" env-default:"us-east-1"`
	Bucket                 string `env:"S3_BUCKET" env-default:""`
	AccessKeyID            string `env:"S3_ACCESS_KEY_ID" env-default:""`
	SecretAccessKey        string `env:"S3_SECRET_ACCESS_KEY" env-default:""`
	Endpoint               string `env:"S3_ENDPOINT" env-default:""`
	UseSSL                 bool   `env:"S3_USE_SSL" env-default:"true"`
	UsePathStyle           bool   `env:"S3_USE_PATH_STYLE" env-default:"false"`
	PresignDuration        int    `env:"S3_PRESIGN_DURATION" env-default:"3600"`
	CreateBucketIfNotExist bool   `env:"S3_CREATE_BUCKET" env-default:"false"`
}

// Load reads the server configuration from the environment.
func Load() (*ServerConfig, error) {
	var cfg ServerConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the server configuration.
func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}

	if c.AdminPassword == "" {
		return errors.New("admin password is required")
	}

	if c.AdminTokenSecret == "" {
		return errors.New("admin token secret is required")
	}

	switch c.Storage.Backend {
	case "memory", "fs":
	case "s3":
		if c.Storage.S3.Bucket == "" {
			return errors.New("S3_BUCKET is required when using the s3 backend")
		}
	default:
		return fmt.Errorf("unsupported storage backend: %s", c.Storage.Backend)
	}

	return nil
}

// UsesPostgres reports whether the configuration selects the postgres repository.
func (c *ServerConfig) UsesPostgres() bool {
	return c.DatabaseURL != "" && c.DatabaseURL != "memory"
}

// BuildService creates a Service instance from the server configuration.
func (c *ServerConfig) BuildService() (blog.Service, error) {
	var options []blog.Option

	repo, err := c.buildRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to build repository: %w", err)
	}
	options = append(options, blog.WithRepository(repo))

	store, err := c.buildStorageBackend()
	if err != nil {
		return nil, fmt.Errorf("failed to build storage backend %s: %w", c.Storage.Backend, err)
	}
	options = append(options, blog.WithBlobStore(c.Storage.Backend, store))

	if c.EnableEventLogging {
		options = append(options, blog.WithEventSink(blog.NewLogEventSink(slog.Default())))
	}

	return blog.New(options...)
}

// buildRepository creates a Repository based on the configuration.
func (c *ServerConfig) buildRepository() (blog.Repository, error) {
	if !c.UsesPostgres() {
		return repomemory.New(), nil
	}

	pool, err := pgxpool.New(context.Background(), c.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}
	return repopg.NewWithPool(pool), nil
}

// PingPostgres verifies connectivity to the configured postgres database.
func (c *ServerConfig) PingPostgres() error {
	if !c.UsesPostgres() {
		return errors.New("postgres is not configured")
	}
	pool, err := pgxpool.New(context.Background(), c.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to create pgx pool: %w", err)
	}
	defer pool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// buildStorageBackend creates a BlobStore based on the configuration.
func (c *ServerConfig) buildStorageBackend() (blog.BlobStore, error) {
	switch c.Storage.Backend {
	case "memory":
		return memorystorage.New(), nil

	case "fs":
		return fsstorage.New(fsstorage.Config{
			BaseDir:   c.Storage.FSBaseDir,
			URLPrefix: c.Storage.FSURLPrefix,
		})

	case "s3":
		return s3storage.New(s3storage.Config{
			Region:                 c.Storage.S3.Region,
			Bucket:                 c.Storage.S3.Bucket,
			AccessKeyID:            c.Storage.S3.AccessKeyID,
			SecretAccessKey:        c.Storage.S3.SecretAccessKey,
			Endpoint:               c.Storage.S3.Endpoint,
			UseSSL:                 c.Storage.S3.UseSSL,
			UsePathStyle:           c.Storage.S3.UsePathStyle,
			PresignDuration:        c.Storage.S3.PresignDuration,
			CreateBucketIfNotExist: c.Storage.S3.CreateBucketIfNotExist,
		})

	default:
		return nil, fmt.Errorf("unsupported storage backend type: %s", c.Storage.Backend)
	}
}
