package app

import (
	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/psingh05395/swadhyatra/internal/domain/cart"
)

// Config holds the complete application configuration, loadable from
// environment variables (SWAD_ prefix), flags, or YAML config files.
type Config struct {
	// MenuFile overrides the embedded menu. Plain or gzipped JSON.
	MenuFile string `default:"" usage:"Path to a menu JSON file (.json or .json.gz); empty uses the embedded menu" flag:"menu-file"`
	Pricing  PricingConfig
}

// PricingConfig controls the storefront pricing constants. The values are
// decimal strings so no precision is lost on the way in.
type PricingConfig struct {
	TaxRate     string `default:"0.18" usage:"Tax rate applied to the cart subtotal" flag:"tax-rate"`
	DeliveryFee string `default:"50" usage:"Flat delivery fee in currency units" flag:"delivery-fee"`
}

// LoadConfig loads configuration from environment variables, flags, and YAML
// config files.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "SWAD",
		Files:     []string{"config.yaml", "/etc/swadhyatra/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	return &cfg, nil
}

// CartPricing parses the pricing configuration into the cart's constants.
func (c *Config) CartPricing() (cart.Pricing, error) {
	taxRate, err := decimal.NewFromString(c.Pricing.TaxRate)
	if err != nil {
		return cart.Pricing{}, errors.Wrap(err, "parse tax rate")
	}
	deliveryFee, err := decimal.NewFromString(c.Pricing.DeliveryFee)
	if err != nil {
		return cart.Pricing{}, errors.Wrap(err, "parse delivery fee")
	}
	if taxRate.IsNegative() || deliveryFee.IsNegative() {
		return cart.Pricing{}, errors.New("pricing values must be non-negative")
	}
	return cart.Pricing{TaxRate: taxRate, DeliveryFee: deliveryFee}, nil
}
