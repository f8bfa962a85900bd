package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gofactorial/internal/errors"

	"github.com/go-playground/validator/v10"
)

// Config represents the complete application configuration
type Config struct {
	Analysis AnalysisConfig
	Output   OutputConfig
	Runtime  RuntimeConfig
}

// AnalysisConfig holds the statistical settings of a run
type AnalysisConfig struct {
	Confidence float64 `validate:"gt=0,lt=1"`
	// Factors, when non-zero, must match the k derived from the grid
	Factors int `validate:"gte=0,lte=26"`
}

// OutputConfig holds report and export settings
type OutputConfig struct {
	Format        string `validate:"oneof=text latex json html none"`
	Brief         bool
	ResidualsPath string
	QQNormPath    string
}

// RuntimeConfig holds process-level settings
type RuntimeConfig struct {
	Workers       int    `validate:"gte=1,lte=256"`
	SignCacheSize int    `validate:"gte=1"`
	LogLevel      string `validate:"oneof=ERROR WARN INFO DEBUG TRACE"`
}

var validate = validator.New()

// Default returns the configuration used when no environment is set
func Default() *Config {
	return &Config{
		Analysis: AnalysisConfig{Confidence: 0.9},
		Output:   OutputConfig{Format: "text"},
		Runtime: RuntimeConfig{
			Workers:       4,
			SignCacheSize: 8,
			LogLevel:      "INFO",
		},
	}
}

// Load reads configuration from environment variables and validates it. A
// variable that is set but cannot be parsed is an error, not a default.
func Load() (*Config, error) {
	d := Default()
	env := &envReader{}
	config := &Config{
		Analysis: AnalysisConfig{
			Confidence: env.getFloat("FACTORIAL_CONFIDENCE", d.Analysis.Confidence),
			Factors:    env.getInt("FACTORIAL_K", d.Analysis.Factors),
		},
		Output: OutputConfig{
			Format:        strings.ToLower(env.getString("FACTORIAL_OUTPUT", d.Output.Format)),
			Brief:         env.getBool("FACTORIAL_BRIEF", d.Output.Brief),
			ResidualsPath: env.getString("FACTORIAL_RESIDUALS", ""),
			QQNormPath:    env.getString("FACTORIAL_QQNORM", ""),
		},
		Runtime: RuntimeConfig{
			Workers:       env.getInt("FACTORIAL_WORKERS", d.Runtime.Workers),
			SignCacheSize: env.getInt("FACTORIAL_SIGN_CACHE_SIZE", d.Runtime.SignCacheSize),
			LogLevel:      strings.ToUpper(env.getString("LOG_LEVEL", d.Runtime.LogLevel)),
		},
	}

	if len(env.errs) > 0 {
		return nil, errors.ConfigInvalid("invalid environment: " + strings.Join(env.errs, "; "))
	}
	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

// Validate checks every field against its constraints
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return &errors.AppError{
			Code:    errors.CodeConfigInvalid,
			Message: "invalid configuration",
			Cause:   err,
		}
	}
	if c.Output.ResidualsPath != "" && c.Output.QQNormPath != "" &&
		filepath.Clean(c.Output.ResidualsPath) == filepath.Clean(c.Output.QQNormPath) {
		return errors.ConfigInvalid(fmt.Sprintf("residual and Q-Q exports both write %s", c.Output.ResidualsPath))
	}
	return nil
}

// envReader reads typed environment variables and records every value that
// fails to parse
type envReader struct {
	errs []string
}

func (e *envReader) lookup(key string) (string, bool) {
	value := os.Getenv(key)
	return value, value != ""
}

func (e *envReader) fail(key, value, kind string) {
	e.errs = append(e.errs, fmt.Sprintf("%s=%q is not %s", key, value, kind))
}

func (e *envReader) getString(key, defaultValue string) string {
	if value, ok := e.lookup(key); ok {
		return value
	}
	return defaultValue
}

func (e *envReader) getInt(key string, defaultValue int) int {
	value, ok := e.lookup(key)
	if !ok {
		return defaultValue
	}
	intValue, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		e.fail(key, value, "an integer")
		return defaultValue
	}
	return intValue
}

func (e *envReader) getFloat(key string, defaultValue float64) float64 {
	value, ok := e.lookup(key)
	if !ok {
		return defaultValue
	}
	floatValue, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		e.fail(key, value, "a number")
		return defaultValue
	}
	return floatValue
}

func (e *envReader) getBool(key string, defaultValue bool) bool {
	value, ok := e.lookup(key)
	if !ok {
		return defaultValue
	}
	boolValue, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		e.fail(key, value, "a boolean")
		return defaultValue
	}
	return boolValue
}
