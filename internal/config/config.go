// Package config предоставялет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env                     string `yaml:"env" env:"ENV" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING"`
	MigrationsPath          string `yaml:"migrations_path" env-default:"./migrations"`
	HTTPServer              `yaml:"http_server"`
	RedisConnection         `yaml:"redis_connection"`
	Session                 Session      `yaml:"session"`
	Auth                    Auth         `yaml:"auth"`
	LemonSqueezy            LemonSqueezy `yaml:"lemonsqueezy"`
	RateLimit               RateLimit    `yaml:"rate_limit"`
	Events                  Events       `yaml:"events"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP    string        `yaml:"addresshttp" env-default:":8080"`
	TimeoutHTTP    time.Duration `yaml:"timeouthttp" env-default:"10s"`
	IdleTimeout    time.Duration `yaml:"idle_timeout" env-default:"60s"`
	AllowedOrigins []string      `yaml:"allowed_origins" env-default:"*"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env-default:"localhost:6379"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env-default:"3s"`
}

// Session настройки серверной сессии и cookie
type Session struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"SESSION_JWT_SECRET"`
	TTL          time.Duration `yaml:"ttl" env-default:"1440h"`
	CookieName   string        `yaml:"cookie_name" env-default:"session_token"`
}

// Провайдеры авторизации.
const (
	AuthProviderUsersService = "usersservice"
	AuthProviderGoogle       = "google"
)

// Auth настройки провайдера авторизации.
// Provider: "usersservice" для внешнего сервиса сессий, "google" для прямого OAuth2 с Google.
type Auth struct {
	Provider           string        `yaml:"provider" env-default:"usersservice"`
	UsersServiceURL    string        `yaml:"users_service_url" env:"USERS_SERVICE_API_URL"`
	UsersServiceAPIKey string        `yaml:"users_service_api_key" env:"USERS_SERVICE_API_KEY"`
	GoogleClientID     string        `yaml:"google_client_id" env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string        `yaml:"google_client_secret" env:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string        `yaml:"google_redirect_url"`
	Timeout            time.Duration `yaml:"timeout" env-default:"10s"`
}

// LemonSqueezy настройки платёжного провайдера
type LemonSqueezy struct {
	APIURL        string        `yaml:"api_url" env-default:"https://api.lemonsqueezy.com/v1"`
	APIKey        string        `yaml:"api_key" env:"LEMONSQUEEZY_API_KEY"`
	StoreID       string        `yaml:"store_id" env:"LEMONSQUEEZY_STORE_ID"`
	VariantID     string        `yaml:"variant_id" env:"LEMONSQUEEZY_PRODUCT_ID"`
	WebhookSecret string        `yaml:"webhook_secret" env:"LEMONSQUEEZY_WEBHOOK_SECRET"`
	Timeout       time.Duration `yaml:"timeout" env-default:"10s"`
}

// RateLimit ограничение частоты запросов к открытым эндпоинтам
type RateLimit struct {
	RPS   float64 `yaml:"rps" env-default:"5"`
	Burst int     `yaml:"burst" env-default:"10"`
}

// Events настройки публикации событий в RabbitMQ
type Events struct {
	Enabled  bool   `yaml:"enabled"`
	AMQPURL  string `yaml:"amqp_url" env:"AMQP_URL"`
	Exchange string `yaml:"exchange" env-default:"accounts"`
}

// MustLoad функция для загрузки конфига, возвращает конфиг, сгенерированный из CONFIG_PATH
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

// Load читает конфиг из файла и переменных окружения и проверяет обязательные поля.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate проверяет согласованность настроек.
func (c *Config) Validate() error {
	if c.StorageConnectionString == "" {
		return fmt.Errorf("storage_connection_string is required")
	}
	if c.Session.JWTSecretKey == "" {
		return fmt.Errorf("session.jwt_secret_key is required")
	}
	switch c.Auth.Provider {
	case AuthProviderUsersService:
		if c.Auth.UsersServiceURL == "" {
			return fmt.Errorf("auth.users_service_url is required for provider usersservice")
		}
	case AuthProviderGoogle:
		if c.Auth.GoogleClientID == "" || c.Auth.GoogleRedirectURL == "" {
			return fmt.Errorf("auth.google_client_id and auth.google_redirect_url are required for provider google")
		}
	default:
		return fmt.Errorf("unknown auth.provider %q", c.Auth.Provider)
	}
	if c.Events.Enabled && c.Events.AMQPURL == "" {
		return fmt.Errorf("events.amqp_url is required when events are enabled")
	}
	return nil
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  DB: %d\n"+
			"Session:\n"+
			"  TTL: %s\n"+
			"  CookieName: %s\n"+
			"Auth:\n"+
			"  Provider: %s\n"+
			"LemonSqueezy:\n"+
			"  APIURL: %s\n"+
			"  StoreID: %s\n"+
			"Events:\n"+
			"  Enabled: %t\n",
		c.Env,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.AddressRedis,
		c.DB,
		c.Session.TTL,
		c.Session.CookieName,
		c.Auth.Provider,
		c.LemonSqueezy.APIURL,
		c.LemonSqueezy.StoreID,
		c.Events.Enabled,
	)
}
