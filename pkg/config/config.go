package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Drivers de persistencia soportados por STORE_DRIVER.
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App   AppConfig
	DB    DBConfig
	Redis RedisConfig
	HTTP  HTTPConfig
	Log   LogConfig
	Docs  DocsConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo (ej. DATABASE_URL de Supabase).
type DBConfig struct {
	Driver      string // postgres | memory
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// RedisConfig conexión opcional a Redis (eventos de cambio y bloqueo por ítem de stock).
// Addr vacío = modo local (bus en memoria y mutex por proceso).
type RedisConfig struct {
	Addr       string
	Password   string
	DB         int
	Channel    string
	LockTTLSec int
}

// Enabled indica si hay Redis configurado.
func (c RedisConfig) Enabled() bool { return c.Addr != "" }

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LogConfig nivel del logger (trace, debug, info, warn, error).
type LogConfig struct {
	Level string
}

// DocsConfig ubicación del swagger.json servido en /docs.
type DocsConfig struct {
	Path string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DATABASE_URL, STORE_DRIVER, REDIS_ADDR, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "phonestock-api"),
		},
		DB: DBConfig{
			Driver:      strings.ToLower(getString(v, "STORE_DRIVER", StoreDriverPostgres)),
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "phonestock"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			MaxConns:    getInt(v, "DB_MAX_CONNS", 10),
		},
		Redis: RedisConfig{
			Addr:       getString(v, "REDIS_ADDR", ""),
			Password:   getString(v, "REDIS_PASSWORD", ""),
			DB:         getInt(v, "REDIS_DB", 0),
			Channel:    getString(v, "REDIS_CHANNEL", "phonestock:changes"),
			LockTTLSec: getInt(v, "LOCK_TTL_SECONDS", 10),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Log: LogConfig{
			Level: getString(v, "LOG_LEVEL", "info"),
		},
		Docs: DocsConfig{
			Path: getString(v, "DOCS_PATH", "./docs/swagger.json"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DB.Driver {
	case StoreDriverPostgres, StoreDriverMemory:
	default:
		return fmt.Errorf("config: STORE_DRIVER desconocido %q", c.DB.Driver)
	}
	if c.HTTP.Port <= 0 {
		return fmt.Errorf("config: HTTP_PORT inválido %d", c.HTTP.Port)
	}
	if c.Redis.LockTTLSec <= 0 {
		c.Redis.LockTTLSec = 10
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
