package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	HTTPAddr    string `envconfig:"HTTP_ADDR" default:":3000"`
	ServiceName string `envconfig:"SERVICE_NAME" default:"reservation-calendar"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	// Session cookies copied from a logged-in browser.
	NIDAut string `envconfig:"NID_AUT" required:"true"`
	NIDSes string `envconfig:"NID_SES" required:"true"`

	Storage

	RedisAddr    string   `envconfig:"REDIS_ADDR"`
	KafkaBrokers []string `envconfig:"KAFKA_BROKERS"`
	KafkaTopic   string   `envconfig:"KAFKA_TOPIC" default:"reservation.synced"`

	UpstreamEndpoint string        `envconfig:"UPSTREAM_ENDPOINT" default:"https://m.booking.naver.com/graphql"`
	UpstreamTimeout  time.Duration `envconfig:"UPSTREAM_TIMEOUT" default:"15s"`
	FetchPageSize    int           `envconfig:"FETCH_PAGE_SIZE" default:"10"`
	FetchSchedule    string        `envconfig:"FETCH_SCHEDULE"`
}

// Storage selects the relational store. It is shared by the service and the
// migrator.
type Storage struct {
	StorageDriver string `envconfig:"STORAGE_DRIVER" default:"sqlite"`
	SQLitePath    string `envconfig:"SQLITE_PATH" default:"./data.sqlite"`
	PostgresDSN   string `envconfig:"POSTGRES_DSN"`
}

// Target is the sqlite file path or the postgres DSN, by driver.
func (s Storage) Target() string {
	if s.StorageDriver == DriverPostgres {
		return s.PostgresDSN
	}
	return s.SQLitePath
}

func (s Storage) validate() error {
	switch s.StorageDriver {
	case DriverSQLite:
		if s.SQLitePath == "" {
			return fmt.Errorf("%w: SQLITE_PATH is empty", ErrInvalid)
		}
	case DriverPostgres:
		if s.PostgresDSN == "" {
			return fmt.Errorf("%w: POSTGRES_DSN is required for the postgres driver", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown STORAGE_DRIVER %q", ErrInvalid, s.StorageDriver)
	}
	return nil
}

// LoadStorage reads only the storage variables; credentials are not needed.
func LoadStorage() (Storage, error) {
	var s Storage
	if err := envconfig.Process("", &s); err != nil {
		return Storage{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := s.validate(); err != nil {
		return Storage{}, err
	}
	return s, nil
}

func Load() (Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	c.KafkaBrokers = splitCSV(strings.Join(c.KafkaBrokers, ","))
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) validate() error {
	if c.NIDAut == "" {
		return fmt.Errorf("%w: NID_AUT is empty", ErrInvalid)
	}
	if c.NIDSes == "" {
		return fmt.Errorf("%w: NID_SES is empty", ErrInvalid)
	}
	if err := c.Storage.validate(); err != nil {
		return err
	}
	if c.FetchPageSize <= 0 {
		return fmt.Errorf("%w: FETCH_PAGE_SIZE must be positive", ErrInvalid)
	}
	if c.UpstreamTimeout <= 0 {
		return fmt.Errorf("%w: UPSTREAM_TIMEOUT must be positive", ErrInvalid)
	}
	return nil
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
