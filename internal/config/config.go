package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	AppName  string
	HTTPAddr string
	GinMode  string
	LogLevel string
	LogJSON  bool

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSchema   string
	DBDSN      string

	WMSURL                string
	WMSToken              string
	WMSLocale             string
	WMSInsecureSkipVerify bool
	WMSTimeout            time.Duration

	SyncInterval   time.Duration
	SyncTokens     []string
	SyncAuthStrict bool

	RequireCreatedOrderID bool

	CORSAllowedOrigins []string
	ShutdownTimeout    time.Duration
}

func Default() Config {
	return Config{
		AppName:         "Lavka integration stub",
		HTTPAddr:        ":8000",
		GinMode:         "release",
		LogLevel:        "info",
		LogJSON:         true,
		DBDriver:        DriverPostgres,
		DBHost:          "localhost",
		DBPort:          "5432",
		DBUser:          "taxi",
		DBPassword:      "test",
		DBName:          "stub",
		DBSchema:        "public",
		WMSLocale:       "saudi_arabica",
		WMSTimeout:      30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Load reads .env (if present) and overlays the process environment on the
// defaults. Variables already set in the environment win over .env entries.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	c, err := fromEnv(Default())
	if err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func fromEnv(c Config) (Config, error) {
	str := func(key string, dst *string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}
	var errs []error
	boolean := func(key string, dst *bool) {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
			return
		}
		*dst = b
	}
	duration := func(key string, dst *time.Duration) {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
			return
		}
		*dst = d
	}
	list := func(key string, dst *[]string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = splitList(v)
		}
	}

	str("APP_NAME", &c.AppName)
	str("HTTP_ADDR", &c.HTTPAddr)
	str("GIN_MODE", &c.GinMode)
	str("LOG_LEVEL", &c.LogLevel)
	boolean("LOG_JSON", &c.LogJSON)

	str("DB_DRIVER", &c.DBDriver)
	str("DB_HOST", &c.DBHost)
	str("DB_PORT", &c.DBPort)
	str("DB_USER", &c.DBUser)
	str("DB_PASSWORD", &c.DBPassword)
	str("DB_NAME", &c.DBName)
	str("DB_SCHEMA", &c.DBSchema)
	str("DB_DSN", &c.DBDSN)

	str("WMS_URL", &c.WMSURL)
	str("WMS_TOKEN", &c.WMSToken)
	str("WMS_LOCALE", &c.WMSLocale)
	boolean("WMS_INSECURE_SKIP_VERIFY", &c.WMSInsecureSkipVerify)
	duration("WMS_TIMEOUT", &c.WMSTimeout)

	duration("SYNC_INTERVAL", &c.SyncInterval)
	list("SYNC_TOKENS", &c.SyncTokens)
	boolean("SYNC_AUTH_STRICT", &c.SyncAuthStrict)

	boolean("REQUIRE_CREATED_ORDER_ID", &c.RequireCreatedOrderID)

	list("CORS_ALLOWED_ORIGINS", &c.CORSAllowedOrigins)
	duration("SHUTDOWN_TIMEOUT", &c.ShutdownTimeout)

	if len(c.SyncTokens) == 0 && c.WMSToken != "" {
		c.SyncTokens = []string{c.WMSToken}
	}
	c.WMSURL = strings.TrimRight(c.WMSURL, "/")

	return c, errors.Join(errs...)
}

func (c Config) Validate() error {
	switch c.DBDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("DB_DRIVER: unsupported driver %q", c.DBDriver)
	}
	if c.DBDriver == DriverSQLite && c.DBDSN == "" {
		return errors.New("DB_DSN is required for the sqlite driver")
	}
	if c.SyncInterval < 0 {
		return errors.New("SYNC_INTERVAL must not be negative")
	}
	return nil
}

// DSN returns the connection string for the configured driver.
func (c Config) DSN() string {
	if c.DBDSN != "" {
		return c.DBDSN
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.DBUser, c.DBPassword),
		Host:   c.DBHost + ":" + c.DBPort,
		Path:   "/" + c.DBName,
	}
	q := url.Values{}
	q.Set("sslmode", "disable")
	if c.DBSchema != "" {
		q.Set("search_path", c.DBSchema)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// SyncEnabled reports whether the catalog sync has an upstream to talk to.
func (c Config) SyncEnabled() bool {
	return c.WMSURL != ""
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
