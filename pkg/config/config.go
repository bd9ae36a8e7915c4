package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix namespaces every environment variable consumed by the service.
	EnvPrefix = "MAMMAPIZZA"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App      AppConfig
	Backend  BackendConfig
	Redis    RedisConfig
	Cart     CartConfig
	Admin    AdminConfig
	WhatsApp WhatsAppConfig
	CORS     CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Backend.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"MAMMAPIZZA_APP_ENV" required:"true"`
	Port         string `envconfig:"MAMMAPIZZA_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"MAMMAPIZZA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MAMMAPIZZA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// BackendConfig points at the external catalog API that owns all
// reference data (products, sizes, flavors, prices, users).
type BackendConfig struct {
	BaseURL string        `envconfig:"MAMMAPIZZA_BACKEND_BASE_URL" required:"true"`
	Timeout time.Duration `envconfig:"MAMMAPIZZA_BACKEND_TIMEOUT" default:"10s"`
}

func (b BackendConfig) validate() error {
	parsed, err := url.Parse(b.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid backend base url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("backend base url must be absolute, got %q", b.BaseURL)
	}
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"MAMMAPIZZA_REDIS_URL"`
	Address      string        `envconfig:"MAMMAPIZZA_REDIS_ADDR"`
	Password     string        `envconfig:"MAMMAPIZZA_REDIS_PASSWORD"`
	DB           int           `envconfig:"MAMMAPIZZA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"MAMMAPIZZA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MAMMAPIZZA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MAMMAPIZZA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MAMMAPIZZA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"MAMMAPIZZA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// CartConfig bounds the session-scoped cart. The browser original kept the
// cart in per-tab session storage; server side the nearest contract is a
// TTL-bounded Redis entry keyed by an opaque cookie token.
type CartConfig struct {
	TTL        time.Duration `envconfig:"MAMMAPIZZA_CART_TTL" default:"12h"`
	CookieName string        `envconfig:"MAMMAPIZZA_CART_COOKIE" default:"mp_session"`
}

type AdminConfig struct {
	SessionTTL time.Duration `envconfig:"MAMMAPIZZA_ADMIN_SESSION_TTL" default:"8h"`
	CookieName string        `envconfig:"MAMMAPIZZA_ADMIN_COOKIE" default:"mp_admin"`
}

type WhatsAppConfig struct {
	// Number is the full international phone number orders are handed to,
	// digits only (e.g. 51987654321).
	Number string `envconfig:"MAMMAPIZZA_WHATSAPP_NUMBER" required:"true"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"MAMMAPIZZA_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}
