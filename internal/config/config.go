// Package config reads process configuration from a .env file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type R2Config struct {
	AccountID string
	Bucket    string
	AccessKey string
	SecretKey string
}

// Endpoint is the S3-compatible URL of the account.
func (r R2Config) Endpoint() string {
	return fmt.Sprintf("https://%s.r2.cloudflarestorage.com", r.AccountID)
}

type Config struct {
	Port          string
	DBURL         string
	RedisAddr     string
	RedisPassword string
	RabbitMQURL   string
	R2            R2Config
	GoogleAPIKey  string
	SessionTTL    time.Duration
	Workers       int
	CORSOrigins   []string
	CookieSecure  bool
}

// Load reads .env (if present) and then the environment. Environment values
// win over .env values.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("SESSION_TTL", "168h")
	v.SetDefault("WORKERS", 3)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("COOKIE_SECURE", false)
	v.AutomaticEnv()

	ttl, err := time.ParseDuration(v.GetString("SESSION_TTL"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}

	cfg := &Config{
		Port:          v.GetString("PORT"),
		DBURL:         v.GetString("DB_URL"),
		RedisAddr:     v.GetString("REDIS_ADDR"),
		RedisPassword: v.GetString("REDIS_PASSWORD"),
		RabbitMQURL:   v.GetString("RABBITMQ_URL"),
		R2: R2Config{
			AccountID: v.GetString("R2_ACCOUNT_ID"),
			Bucket:    v.GetString("R2_BUCKET"),
			AccessKey: v.GetString("R2_ACCESS_KEY"),
			SecretKey: v.GetString("R2_SECRET_KEY"),
		},
		GoogleAPIKey: v.GetString("GOOGLE_API_KEY"),
		SessionTTL:   ttl,
		Workers:      v.GetInt("WORKERS"),
		CORSOrigins:  splitList(v.GetString("CORS_ORIGINS")),
		CookieSecure: v.GetBool("COOKIE_SECURE"),
	}
	if cfg.Workers < 1 {
		return nil, errors.New("WORKERS must be at least 1")
	}
	return cfg, nil
}

// ValidateServer checks the keys the HTTP server needs.
func (c *Config) ValidateServer() error {
	return requireKeys(map[string]string{
		"DB_URL":     c.DBURL,
		"REDIS_ADDR": c.RedisAddr,
	})
}

// ValidateWorker checks the keys the screening worker needs.
func (c *Config) ValidateWorker() error {
	return requireKeys(map[string]string{
		"DB_URL":         c.DBURL,
		"RABBITMQ_URL":   c.RabbitMQURL,
		"R2_ACCOUNT_ID":  c.R2.AccountID,
		"R2_BUCKET":      c.R2.Bucket,
		"R2_ACCESS_KEY":  c.R2.AccessKey,
		"R2_SECRET_KEY":  c.R2.SecretKey,
		"GOOGLE_API_KEY": c.GoogleAPIKey,
	})
}

// StorageEnabled reports whether resume uploads can be stored.
func (c *Config) StorageEnabled() bool {
	return c.R2.AccountID != "" && c.R2.Bucket != "" && c.R2.AccessKey != "" && c.R2.SecretKey != ""
}

func requireKeys(values map[string]string) error {
	var missing []string
	for key, val := range values {
		if strings.TrimSpace(val) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return fmt.Errorf("empty %s in environment", strings.Join(missing, ", "))
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
