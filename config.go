package risk

import (
	"fmt"
	"os"
	"strconv"

	"github.com/etnz/risk/date"
	"gopkg.in/yaml.v3"
)

// Environment variables overriding the configuration file.
const (
	EnvConfidence  = "RSK_CONFIDENCE"
	EnvTradingDays = "RSK_TRADING_DAYS"
	EnvWorkers     = "RSK_WORKERS"
	EnvStrict      = "RSK_STRICT"
	EnvSQLitePath  = "RSK_SQLITE_PATH"
)

// Config holds the configuration of a report run.
type Config struct {
	Confidence         float64 `yaml:"confidence"`
	TradingDaysPerYear int     `yaml:"trading_days_per_year"`
	// Workers is the number of tickers processed concurrently.
	Workers int `yaml:"workers"`
	// Strict makes the first malformed record abort the run. It is enforced by callers.
	Strict bool `yaml:"strict"`

	// Observation window. Period is a lookback ending on each ticker's latest date, and cannot
	// be combined with From. Empty values mean no restriction.
	Period string `yaml:"period"`
	From   string `yaml:"from"`
	To     string `yaml:"to"`

	Recorder struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"recorder"`
}

// DefaultConfig returns the configuration used when nothing is specified.
func DefaultConfig() Config {
	return Config{
		Confidence:         DefaultConfidence,
		TradingDaysPerYear: TradingDaysPerYear,
		Workers:            1,
	}
}

// LoadConfig reads the configuration from a YAML file, then applies environment variable overrides.
//
// A missing file, or an empty path, is not an error: defaults are used instead.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if len(data) > 0 {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %q: %w", path, err)
			}
		}
	}

	// Environment variable overrides
	if v := os.Getenv(EnvConfidence); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return cfg, fmt.Errorf("invalid %s %q: %w", EnvConfidence, v, err)
		}
		cfg.Confidence = f
	}
	if v := os.Getenv(EnvTradingDays); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid %s %q: %w", EnvTradingDays, v, err)
		}
		cfg.TradingDaysPerYear = n
	}
	if v := os.Getenv(EnvWorkers); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid %s %q: %w", EnvWorkers, v, err)
		}
		cfg.Workers = n
	}
	if v := os.Getenv(EnvStrict); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid %s %q: %w", EnvStrict, v, err)
		}
		cfg.Strict = b
	}
	if v := os.Getenv(EnvSQLitePath); v != "" {
		cfg.Recorder.SQLitePath = v
	}
	return cfg, nil
}

// Options returns the estimation options.
func (c Config) Options() Options {
	return Options{Confidence: c.Confidence, TradingDaysPerYear: c.TradingDaysPerYear}
}

// Validate checks that the configuration can be used for a run.
func (c Config) Validate() error {
	if err := c.Options().Validate(); err != nil {
		return err
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers %d must be at least 1", c.Workers)
	}
	if c.Period != "" && c.From != "" {
		return fmt.Errorf("period and from cannot be used together")
	}
	if c.Period != "" {
		if _, err := date.ParsePeriod(c.Period); err != nil {
			return err
		}
	}
	var from, to date.Date
	var err error
	if c.From != "" {
		if from, err = date.Parse(c.From); err != nil {
			return fmt.Errorf("invalid from: %w", err)
		}
	}
	if c.To != "" {
		if to, err = date.Parse(c.To); err != nil {
			return fmt.Errorf("invalid to: %w", err)
		}
	}
	if c.From != "" && c.To != "" && from.After(to) {
		return fmt.Errorf("from %s is after to %s", from, to)
	}
	return nil
}

// windowed returns true if the configuration restricts the observations.
func (c Config) windowed() bool { return c.Period != "" || c.From != "" || c.To != "" }

// window returns the observation window for a series covering 'span'. c must be valid.
func (c Config) window(span date.Range) date.Range {
	end := span.To
	if c.To != "" {
		end = date.MustParse(c.To)
	}
	if c.Period != "" {
		p, _ := date.ParsePeriod(c.Period)
		return date.Lookback(end, p)
	}
	r := date.Range{To: end}
	if c.From != "" {
		r.From = date.MustParse(c.From)
	}
	return r
}
