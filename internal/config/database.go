package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Database struct {
	URL      string `yaml:"url"`
	Username string `yaml:"user"`
	Password string `yaml:"password"`
	Host     string `yaml:"host"`
	Port     uint16 `yaml:"port"`
	DBName   string `yaml:"db_name"`
	SSLMode  string `yaml:"sslmode"`
}

func (c *Database) applyEnv() error {
	lookupString("DATABASE_URL", &c.URL)
	lookupString("POSTGRES_USER", &c.Username)
	if err := lookupSecret("POSTGRES_PASSWORD", &c.Password); err != nil {
		return fmt.Errorf("unable to load password: %w", err)
	}
	lookupString("POSTGRES_HOST", &c.Host)
	if portStr, ok := os.LookupEnv("POSTGRES_PORT"); ok {
		port, err := strconv.ParseUint(portStr, 10, 16)
		if err != nil {
			return fmt.Errorf("unable to convert port to int: %w", err)
		}
		c.Port = uint16(port)
	}
	lookupString("POSTGRES_DB", &c.DBName)
	lookupString("POSTGRES_SSLMODE", &c.SSLMode)
	return nil
}

// Configured reports whether either a URL or the discrete connection
// settings are present.
func (c Database) Configured() bool {
	return c.URL != "" || (c.Host != "" && c.Username != "" && c.DBName != "")
}

// ConnString prefers the explicit URL over one built from parts.
func (c Database) ConnString() string {
	if c.URL != "" {
		return c.URL
	}
	u := url.URL{
		Scheme:   "postgresql",
		User:     url.UserPassword(c.Username, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": {c.SSLMode}}.Encode(),
	}
	return u.String()
}

func (c Database) PoolConfig() (*pgxpool.Config, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("no DATABASE_URL set and POSTGRES_* settings are incomplete")
	}
	return pgxpool.ParseConfig(c.ConnString())
}
