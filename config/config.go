package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata" // schedule timezones resolve without a system zoneinfo

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	ConnString string `env:"POSTGRES_CONN_STR,required,notEmpty"`
	Port       int    `env:"PORT"      envDefault:"3000"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	JWTSecret  string `env:"JWT_SECRET"`

	// Names of the primary divisions, in the order they are filled.
	Divisions             []string `env:"LEAGUE_DIVISIONS"        envSeparator:"," envDefault:"Division 1,Division 2,Division 3,Division 4"`
	QualifiersPerDivision int      `env:"QUALIFIERS_PER_DIVISION" envDefault:"4"`
	GroupSize             int      `env:"GROUP_SIZE"              envDefault:"4"`
	DivisionSize          int      `env:"DIVISION_SIZE"           envDefault:"8"`
	ScheduleTimezone      string   `env:"SCHEDULE_TIMEZONE"       envDefault:"UTC"`
}

// Load reads an optional .env file followed by the environment.
func Load() (*Config, error) {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}
	return Parse()
}

// Parse reads the configuration from the environment only.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	divisions := make([]string, 0, len(cfg.Divisions))
	for _, d := range cfg.Divisions {
		if d = strings.TrimSpace(d); d != "" {
			divisions = append(divisions, d)
		}
	}
	cfg.Divisions = divisions

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be between 1 and 65535, got: %d", c.Port))
	}
	if len(c.Divisions) == 0 {
		errs = append(errs, errors.New("LEAGUE_DIVISIONS must name at least one division"))
	}
	if c.QualifiersPerDivision <= 0 {
		errs = append(errs, fmt.Errorf("QUALIFIERS_PER_DIVISION must be positive, got: %d", c.QualifiersPerDivision))
	}
	if c.GroupSize <= 0 {
		errs = append(errs, fmt.Errorf("GROUP_SIZE must be positive, got: %d", c.GroupSize))
	}
	if c.DivisionSize <= 0 {
		errs = append(errs, fmt.Errorf("DIVISION_SIZE must be positive, got: %d", c.DivisionSize))
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}
	if _, err := time.LoadLocation(c.ScheduleTimezone); err != nil {
		errs = append(errs, fmt.Errorf("SCHEDULE_TIMEZONE: %w", err))
	}
	return errors.Join(errs...)
}

// Location is the timezone schedule dates and times are entered in.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.ScheduleTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Logger builds the process logger. Entries are JSON so they can be shipped
// as is.
func (c *Config) Logger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}
