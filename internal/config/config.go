package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	App struct {
		Env string
	} `mapstructure:"app"`

	HTTP struct {
		Addr        string
		CORSOrigins []string `mapstructure:"cors_origins"`
	} `mapstructure:"http"`

	Postgres struct {
		DSN      string
		User     string
		Password string
		Host     string
		Port     int
		Name     string
		MaxConns int32 `mapstructure:"max_conns"`
	} `mapstructure:"postgres"`

	Storage struct {
		Driver string
	} `mapstructure:"storage"`

	Migrations struct {
		Auto bool
	} `mapstructure:"migrations"`

	Metrics struct {
		Enabled bool
	} `mapstructure:"metrics"`
}

// Load читает .env, затем YAML-файл (если задан), затем переменные окружения.
// Переменные APP_* перекрывают ключи файла (APP_HTTP_ADDR -> http.addr),
// POSTGRES_* совпадают с переменными старого сервиса.
func Load(path string) (Config, error) {
	if err := gotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range map[string]string{
		"postgres.user":     "POSTGRES_USER",
		"postgres.password": "POSTGRES_PASSWORD",
		"postgres.host":     "POSTGRES_HOST",
		"postgres.port":     "POSTGRES_PORT",
		"postgres.name":     "POSTGRES_NAME",
	} {
		if err := v.BindEnv(key, "APP_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return Config{}, err
		}
	}

	var c Config
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return c, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	if c.Postgres.DSN == "" {
		c.Postgres.DSN = c.buildDSN()
	}
	return c, c.validate()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "prod")
	v.SetDefault("http.addr", ":8000")
	v.SetDefault("http.cors_origins", []string{"*"})
	v.SetDefault("postgres.dsn", "")
	v.SetDefault("postgres.user", "")
	v.SetDefault("postgres.password", "")
	v.SetDefault("postgres.host", "")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.name", "")
	v.SetDefault("postgres.max_conns", 10)
	v.SetDefault("storage.driver", DriverPostgres)
	v.SetDefault("migrations.auto", true)
	v.SetDefault("metrics.enabled", true)
}

// buildDSN собирает строку подключения из POSTGRES_* (пусто, если нет хоста).
func (c Config) buildDSN() string {
	p := c.Postgres
	if p.Host == "" {
		return ""
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     net.JoinHostPort(p.Host, strconv.Itoa(p.Port)),
		Path:     "/" + p.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

func (c Config) validate() error {
	switch c.Storage.Driver {
	case DriverMemory:
		return nil
	case DriverPostgres:
		if c.Postgres.DSN == "" {
			return errors.New("config: postgres DSN is empty (set postgres.dsn or POSTGRES_HOST)")
		}
		return nil
	default:
		return fmt.Errorf("config: unknown storage driver %q", c.Storage.Driver)
	}
}
