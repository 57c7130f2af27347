// Package config предоставляет структуры и функции для загрузки конфигурации сервиса.
// Значения читаются из YAML-файла (CONFIG_PATH, необязателен) и переопределяются переменными окружения.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env                     string `yaml:"env" env:"ENV" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING"`
	MigrationsPath          string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"./migrations"`
	CatalogPath             string `yaml:"catalog_path" env:"CATALOG_PATH" env-default:"./config/courses.yaml"`
	AMQPURL                 string `yaml:"amqp_url" env:"AMQP_URL"`
	GoogleSheets            `yaml:"google_sheets"`
	RedisConnection         `yaml:"redis_connection"`
	HTTPServer              `yaml:"http_server"`
	JWTToken                `yaml:"jwttoken"`
	Admin                   `yaml:"admin"`
}

// GoogleSheets настройки доступа к таблице лидов через сервисный аккаунт
type GoogleSheets struct {
	ServiceAccountEmail string        `yaml:"service_account_email" env:"GOOGLE_SERVICE_ACCOUNT_EMAIL" env-required:"true"`
	PrivateKey          string        `yaml:"private_key" env:"GOOGLE_PRIVATE_KEY" env-required:"true"`
	SheetID             string        `yaml:"sheet_id" env:"GOOGLE_SHEET_ID" env-required:"true"`
	AppendTimeout       time.Duration `yaml:"append_timeout" env:"GOOGLE_SHEETS_APPEND_TIMEOUT" env-default:"15s"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env:"HTTP_ADDRESS" env-default:":5000"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env:"HTTP_TIMEOUT" env-default:"30s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis.
// Пустой адрес отключает кеширование.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"REDIS_ADDRESS"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user" env:"REDIS_USER"`
	DB           int           `yaml:"db" env:"REDIS_DB"`
	MaxRetries   int           `yaml:"max_retries" env:"REDIS_MAX_RETRIES" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env:"REDIS_DIAL_TIMEOUT" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env:"REDIS_TIMEOUT" env-default:"3s"`
	ReviewsTTL   time.Duration `yaml:"reviews_ttl" env:"REDIS_REVIEWS_TTL" env-default:"5m"`
}

// JWTToken структура для работы с jwt-токеном администратора
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY"`
	TokenTTL     time.Duration `yaml:"token_ttl" env:"JWT_TOKEN_TTL" env-default:"12h"`
}

// Admin учётные данные администратора, создаваемого при старте
type Admin struct {
	Username string `yaml:"username" env:"ADMIN_USERNAME"`
	Password string `yaml:"password" env:"ADMIN_PASSWORD"`
}

// Load читает конфигурацию из файла CONFIG_PATH (если задан) и окружения.
func Load() (*Config, error) {
	const op = "config.Load"

	var cfg Config
	configPath := os.Getenv("CONFIG_PATH")
	if configPath != "" {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: file %s does not exist", op, configPath)
		}
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// ключ из переменной окружения приходит с экранированными переводами строк
	cfg.PrivateKey = strings.ReplaceAll(cfg.PrivateKey, `\n`, "\n")

	if cfg.Admin.Username != "" && cfg.JWTSecretKey == "" {
		return nil, fmt.Errorf("%s: %w", op, errors.New("jwt_secret_key is required when admin is configured"))
	}
	if cfg.Admin.Username != "" && cfg.Admin.Password == "" {
		return nil, fmt.Errorf("%s: %w", op, errors.New("admin password is required when admin username is set"))
	}
	return &cfg, nil
}

// MustLoad загружает конфиг и завершает процесс при ошибке.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

// String печатает конфигурацию без секретов.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"Storage: %s\n"+
			"CatalogPath: %s\n"+
			"GoogleSheets:\n"+
			"  ServiceAccountEmail: %s\n"+
			"  SheetID: %s\n"+
			"  AppendTimeout: %s\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  DB: %d\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n",
		c.Env,
		storageKind(c.StorageConnectionString),
		c.CatalogPath,
		c.ServiceAccountEmail,
		c.SheetID,
		c.AppendTimeout,
		c.AddressRedis,
		c.DB,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
	)
}

func storageKind(conn string) string {
	if conn == "" {
		return "memory"
	}
	return "postgres"
}
