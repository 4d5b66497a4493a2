package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultDriver         = "postgres"
	defaultPort           = 8080
	defaultZoneCount      = 8
	defaultMinSeededZones = 2
	maxZoneCount          = 26
)

// R2Config - необязательное хранилище логотипов. Пустая структура значит "выключено".
type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	PublicBaseURL   string
}

func (c R2Config) Enabled() bool {
	return c != R2Config{}
}

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	DatabaseDriver    string
	DatabaseURL       string
	JWTSecretKey      string
	AdminPasswordHash string
	ServerPort        int
	ZoneCount         int
	MinSeededZones    int
	CORSOrigins       []string
	R2                R2Config
}

// Load загружает конфигурацию из переменных окружения.
// .env подхватывается, если он есть.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromLookup(os.LookupEnv)
}

// FromLookup собирает конфиг из произвольного источника переменных.
func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	get := func(key string) string {
		v, _ := lookup(key)
		return strings.TrimSpace(v)
	}

	cfg := &Config{
		DatabaseDriver:    get("DATABASE_DRIVER"),
		DatabaseURL:       get("DATABASE_URL"),
		JWTSecretKey:      get("JWT_SECRET_KEY"),
		AdminPasswordHash: get("ADMIN_PASSWORD_HASH"),
		R2: R2Config{
			AccountID:       get("R2_ACCOUNT_ID"),
			AccessKeyID:     get("R2_ACCESS_KEY_ID"),
			SecretAccessKey: get("R2_SECRET_ACCESS_KEY"),
			BucketName:      get("R2_BUCKET_NAME"),
			PublicBaseURL:   get("R2_PUBLIC_BASE_URL"),
		},
	}

	if cfg.DatabaseDriver == "" {
		cfg.DatabaseDriver = defaultDriver
	}
	if cfg.DatabaseDriver != "postgres" && cfg.DatabaseDriver != "sqlite" {
		return nil, fmt.Errorf("DATABASE_DRIVER must be postgres or sqlite, got %q", cfg.DatabaseDriver)
	}
	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL environment variable is not set")
	}
	if cfg.JWTSecretKey == "" {
		return nil, errors.New("JWT_SECRET_KEY environment variable is not set")
	}
	if cfg.AdminPasswordHash == "" {
		return nil, errors.New("ADMIN_PASSWORD_HASH environment variable is not set")
	}

	var err error
	if cfg.ServerPort, err = intVar(get("SERVER_PORT"), defaultPort, "SERVER_PORT"); err != nil {
		return nil, err
	}
	if cfg.ServerPort <= 0 || cfg.ServerPort > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", cfg.ServerPort)
	}

	if cfg.ZoneCount, err = intVar(get("ZONE_COUNT"), defaultZoneCount, "ZONE_COUNT"); err != nil {
		return nil, err
	}
	if cfg.ZoneCount < 1 || cfg.ZoneCount > maxZoneCount {
		return nil, fmt.Errorf("ZONE_COUNT must be between 1 and %d, got %d", maxZoneCount, cfg.ZoneCount)
	}

	if cfg.MinSeededZones, err = intVar(get("MIN_SEEDED_ZONES"), defaultMinSeededZones, "MIN_SEEDED_ZONES"); err != nil {
		return nil, err
	}
	if cfg.MinSeededZones < 1 {
		return nil, fmt.Errorf("MIN_SEEDED_ZONES must be positive, got %d", cfg.MinSeededZones)
	}

	cfg.CORSOrigins = splitList(get("CORS_ALLOWED_ORIGINS"))
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"*"}
	}

	if cfg.R2.Enabled() {
		r2 := cfg.R2
		if r2.AccountID == "" || r2.AccessKeyID == "" || r2.SecretAccessKey == "" || r2.BucketName == "" || r2.PublicBaseURL == "" {
			return nil, errors.New("R2 storage is partially configured: set all R2_* variables or none")
		}
	}

	return cfg, nil
}

func intVar(raw string, def int, name string) (int, error) {
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", name, err)
	}
	return v, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
