package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"go.uber.org/zap/zapcore"
	"golang.org/x/text/currency"
)

type Config struct {
	HTTPAddr    string
	Currency    currency.Unit
	ShippingFee decimal.Decimal
	LogLevel    zapcore.Level
}

// Load reads the configuration from the environment, falling back to defaults for unset variables.
func Load() (Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (Config, error) {
	env := func(k, def string) string {
		if v := getenv(k); v != "" {
			return v
		}
		return def
	}

	var cfg Config
	cfg.HTTPAddr = env("CHECKOUT_HTTP_ADDR", ":8080")

	rawCurrency := env("CHECKOUT_CURRENCY", "EGP")
	unit, err := currency.ParseISO(rawCurrency)
	if err != nil {
		return Config{}, fmt.Errorf("currency[%s] is not valid: %w", rawCurrency, err)
	}
	cfg.Currency = unit

	rawFee := env("CHECKOUT_SHIPPING_FEE", "30")
	fee, err := decimal.NewFromString(rawFee)
	if err != nil {
		return Config{}, fmt.Errorf("shipping fee[%s] is not valid: %w", rawFee, err)
	}
	if fee.IsNegative() {
		return Config{}, fmt.Errorf("shipping fee[%s] is negative", rawFee)
	}
	cfg.ShippingFee = fee

	rawLevel := env("CHECKOUT_LOG_LEVEL", "info")
	level, err := zapcore.ParseLevel(rawLevel)
	if err != nil {
		return Config{}, fmt.Errorf("log level[%s] is not valid: %w", rawLevel, err)
	}
	cfg.LogLevel = level

	return cfg, nil
}
