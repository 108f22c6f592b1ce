package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/vancomm/minesweeper-daily/internal/daily"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

type Config struct {
	Addr           string    `yaml:"addr"`
	BasePath       string    `yaml:"base_path"`
	Development    bool      `yaml:"development"`
	AllowedOrigins []string  `yaml:"allowed_origins"`
	Daily          Daily     `yaml:"daily"`
	Session        Session   `yaml:"session"`
	Database       Database  `yaml:"database"`
	JWT            JWTConfig `yaml:"jwt"`
	WebSocket      WSConfig  `yaml:"websocket"`
	Log            Log       `yaml:"log"`
}

type Daily struct {
	Salt string `yaml:"salt"`
}

type Session struct {
	Store         string   `yaml:"store"`
	Capacity      int      `yaml:"capacity"`
	TTL           Duration `yaml:"ttl"`
	PurgeInterval Duration `yaml:"purge_interval"`
}

type Log struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

func Default() *Config {
	return &Config{
		Addr: "127.0.0.1:3030",
		Daily: Daily{
			Salt: daily.DefaultSalt,
		},
		Session: Session{
			Store:         StoreMemory,
			Capacity:      10000,
			TTL:           Duration{24 * time.Hour},
			PurgeInterval: Duration{10 * time.Minute},
		},
		Database: Database{
			Port:    5432,
			SSLMode: "disable",
		},
		JWT: JWTConfig{
			TokenLifetime: Duration{24 * time.Hour},
		},
		WebSocket: WSConfig{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		Log: Log{
			Level:      "info",
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// Load reads the YAML file at path, if any, on top of [Default] and then
// applies environment overrides.
func Load(path string) (*Config, error) {
	c := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("unable to read config: %w", err)
		}
		if err := c.decode(b); err != nil {
			return nil, fmt.Errorf("unable to parse config %s: %w", path, err)
		}
	}

	if err := c.applyEnv(); err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Config) decode(b []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c *Config) applyEnv() (err error) {
	lookupString("APP_ADDR", &c.Addr)
	lookupString("APP_BASE_PATH", &c.BasePath)
	lookupBool("DEVELOPMENT", &c.Development)
	lookupList("ALLOWED_ORIGINS", &c.AllowedOrigins)

	lookupString("DAILY_SEED_SALT", &c.Daily.Salt)

	lookupString("SESSION_STORE", &c.Session.Store)
	if err = lookupInt("SESSION_CAPACITY", &c.Session.Capacity); err != nil {
		return
	}
	if err = lookupDuration("SESSION_TTL", &c.Session.TTL); err != nil {
		return
	}
	if err = lookupDuration("SESSION_PURGE_INTERVAL", &c.Session.PurgeInterval); err != nil {
		return
	}

	if err = c.Database.applyEnv(); err != nil {
		return
	}
	c.JWT.applyEnv()

	lookupString("LOG_LEVEL", &c.Log.Level)
	lookupString("LOG_FILE", &c.Log.File)

	return nil
}

func (c *Config) Validate() error {
	switch c.Session.Store {
	case StoreMemory:
		if c.Session.Capacity <= 0 {
			return fmt.Errorf("session capacity must be positive, got %d", c.Session.Capacity)
		}
	case StorePostgres:
		if !c.Database.Configured() {
			return fmt.Errorf("session store %q needs DATABASE_URL or POSTGRES_* settings", c.Session.Store)
		}
	default:
		return fmt.Errorf("unknown session store %q", c.Session.Store)
	}
	if c.Session.TTL.Duration <= 0 {
		return fmt.Errorf("session ttl must be positive, got %s", c.Session.TTL)
	}
	if c.Daily.Salt == "" {
		return fmt.Errorf("daily salt must not be empty")
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// Fields lists the settings safe to log. Secrets are left out.
func (c Config) Fields() logrus.Fields {
	return logrus.Fields{
		"addr":             c.Addr,
		"base_path":        c.BasePath,
		"development":      c.Development,
		"allowed_origins":  c.AllowedOrigins,
		"default_salt":     c.Daily.Salt == daily.DefaultSalt,
		"session_store":    c.Session.Store,
		"session_capacity": c.Session.Capacity,
		"session_ttl":      c.Session.TTL.String(),
		"pg_host":          c.Database.Host,
		"pg_port":          c.Database.Port,
		"pg_db_name":       c.Database.DBName,
		"jwt_public_key":   c.JWT.PublicKeyFile != "" || c.JWT.PublicKey != "",
		"jwt_private_key":  c.JWT.PrivateKeyFile != "" || c.JWT.PrivateKey != "",
		"log_level":        c.Log.Level,
		"log_file":         c.Log.File,
	}
}
