// Package config layers defaults, an optional config file, environment
// variables and command-line flags into one Config.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Keys shared by viper, the config file and flag bindings.
const (
	KeyRate          = "rate"
	KeyDividendYield = "dividend_yield"
	KeyAPIKey        = "massive_api_key"
	KeyDataDir       = "data_dir"
	KeyReportDir     = "report_dir"
	KeyVerbosity     = "verbosity"
)

const envPrefix = "IVCALC"

var (
	ErrMissingRate          = errors.New("risk-free rate not supplied (use --rate, IVCALC_RATE or the config file)")
	ErrMissingDividendYield = errors.New("dividend yield not supplied (use --div, IVCALC_DIVIDEND_YIELD or the config file)")
)

// Config is the resolved configuration of one invocation.
type Config struct {
	Rate          float64 `mapstructure:"rate"`
	DividendYield float64 `mapstructure:"dividend_yield"`
	APIKey        string  `mapstructure:"massive_api_key"`
	DataDir       string  `mapstructure:"data_dir"`
	ReportDir     string  `mapstructure:"report_dir"`
	Verbosity     int     `mapstructure:"verbosity"`

	// RateSet and DividendYieldSet tell an explicit 0 from "not given".
	RateSet          bool `mapstructure:"-"`
	DividendYieldSet bool `mapstructure:"-"`
}

// New returns a viper instance with defaults and environment bindings.
// Rate and dividend yield deliberately have no default.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyVerbosity, 1)
	v.SetDefault(KeyDataDir, "")
	v.SetDefault(KeyReportDir, "")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	for _, key := range []string{KeyRate, KeyDividendYield, KeyDataDir, KeyReportDir, KeyVerbosity} {
		// explicit bindings make env-only keys visible to Unmarshal
		_ = v.BindEnv(key)
	}

	// the API key is also picked up under the names the data vendors document
	_ = v.BindEnv(KeyAPIKey, envPrefix+"_MASSIVE_API_KEY", "MASSIVE_API_KEY", "POLYGON_API_KEY")
	return v
}

// Load reads the config file at path, if any, and decodes everything into
// a Config. With an empty path it looks for ivcalc.{yaml,json,toml} in the
// working directory and in the user config dir, and a missing file is fine.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("ivcalc")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "ivcalc"))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.RateSet = v.IsSet(KeyRate)
	cfg.DividendYieldSet = v.IsSet(KeyDividendYield)
	return &cfg, nil
}

// RequireRates fails unless both the rate and the dividend yield were
// supplied by the caller through some layer.
func (c *Config) RequireRates() error {
	if !c.RateSet {
		return ErrMissingRate
	}
	if !c.DividendYieldSet {
		return ErrMissingDividendYield
	}
	return nil
}
