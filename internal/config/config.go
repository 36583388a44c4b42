package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"smartlenderup-backend/internal/domain/country"
)

type Config struct {
	AppPort string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr string
	RedisDB   int

	IdempTTLSecs int
	CacheTTLSecs int

	LogLevel       string
	DefaultCountry string
	AutoMigrate    bool
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func Load() *Config {
	return &Config{
		AppPort:   getenv("APP_PORT", "8080"),
		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "smartlenderup"),
		MySQLUser: getenv("MYSQL_USER", "smartlenderup"),
		MySQLPass: getenv("MYSQL_PASS", "smartlenderup"),

		RedisAddr: getenv("REDIS_ADDR", "redis:6379"),
		RedisDB:   getenvInt("REDIS_DB", 0),

		IdempTTLSecs: getenvInt("IDEMPOTENCY_TTL_SECONDS", 300),
		CacheTTLSecs: getenvInt("CACHE_TTL_SECONDS", 600),

		LogLevel:       getenv("LOG_LEVEL", "info"),
		DefaultCountry: strings.ToUpper(getenv("DEFAULT_COUNTRY", "KE")),
		AutoMigrate:    getenv("AUTO_MIGRATE", "false") == "true",
	}
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if _, ok := country.Lookup(c.DefaultCountry); !ok {
		return fmt.Errorf("unsupported DEFAULT_COUNTRY %q", c.DefaultCountry)
	}
	if c.IdempTTLSecs <= 0 || c.CacheTTLSecs <= 0 {
		return errors.New("IDEMPOTENCY_TTL_SECONDS and CACHE_TTL_SECONDS must be positive")
	}
	return nil
}

func (c *Config) IdempotencyTTL() time.Duration { return time.Duration(c.IdempTTLSecs) * time.Second }

func (c *Config) CacheTTL() time.Duration { return time.Duration(c.CacheTTLSecs) * time.Second }

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC&charset=utf8mb4",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
