package config

import (
	"fmt"
	"strings"

	"github.com/angelmondragon/shoppingcart/pkg/numfmt"
	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "CART"

	EnvAppEnv       = "CART_APP_ENV"
	EnvLogLevel     = "CART_LOG_LEVEL"
	EnvLogWarnStack = "CART_LOG_WARN_STACK"

	EnvFormatDecimals          = "CART_FORMAT_DECIMALS"
	EnvFormatDecimalPoint      = "CART_FORMAT_DECIMAL_POINT"
	EnvFormatThousandSeparator = "CART_FORMAT_THOUSAND_SEPARATOR"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	maxDecimals = 10
)

type Config struct {
	App    AppConfig
	Format FormatConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Format.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"CART_APP_ENV" default:"dev"`
	LogLevel     string `envconfig:"CART_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CART_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// FormatConfig holds the default display format for monetary values.
type FormatConfig struct {
	Decimals          int    `envconfig:"CART_FORMAT_DECIMALS" default:"2"`
	DecimalPoint      string `envconfig:"CART_FORMAT_DECIMAL_POINT" default:"."`
	ThousandSeparator string `envconfig:"CART_FORMAT_THOUSAND_SEPARATOR" default:","`
}

// NumberFormat converts the configured values into a numfmt.Format.
func (f FormatConfig) NumberFormat() numfmt.Format {
	return numfmt.Format{
		Decimals:          f.Decimals,
		DecimalPoint:      f.DecimalPoint,
		ThousandSeparator: f.ThousandSeparator,
	}
}

func (f FormatConfig) validate() error {
	if f.Decimals < 0 || f.Decimals > maxDecimals {
		return fmt.Errorf("%s must be between 0 and %d, got %d", EnvFormatDecimals, maxDecimals, f.Decimals)
	}
	if f.ThousandSeparator != "" && f.DecimalPoint == f.ThousandSeparator {
		return fmt.Errorf("%s and %s must differ", EnvFormatDecimalPoint, EnvFormatThousandSeparator)
	}
	return nil
}
