package payfast

import (
	"fmt"
	"strings"

	"github.com/kobusvdwalt/subscribeza/internal/pkg/env"
)

// Mode selects which PayFast environment the service talks to.
type Mode string

const (
	ModeLive    Mode = "live"
	ModeSandbox Mode = "sandbox"
)

const (
	liveHost    = "www.payfast.co.za"
	sandboxHost = "sandbox.payfast.co.za"
)

// Config carries the per-mode credential set and business amounts. Resolved
// fresh per request so credential rotation needs no restart.
type Config struct {
	Mode        Mode
	MerchantID  string
	MerchantKey string
	Passphrase  string

	// RecurringAmount is the expected monthly charge; the first period is
	// free, so "0.00" is also an accepted gross amount.
	RecurringAmount string
}

// Host returns the PayFast hostname for the active mode.
func (c Config) Host() string {
	if c.Mode == ModeSandbox {
		return sandboxHost
	}
	return liveHost
}

// ProcessURL is the checkout redirect target.
func (c Config) ProcessURL() string {
	return fmt.Sprintf("https://%s/eng/process", c.Host())
}

// ValidateURL is the server-side ITN confirmation endpoint.
func (c Config) ValidateURL() string {
	return fmt.Sprintf("https://%s/eng/query/validate", c.Host())
}

// LoadConfig resolves the active mode and its credential set from the
// environment. Exactly two modes exist; anything else is a configuration
// error and the caller must not process the payload.
func LoadConfig() (Config, error) {
	mode := Mode(strings.ToLower(strings.TrimSpace(env.GetEnv("PAYFAST_MODE", ""))))

	var cfg Config
	switch mode {
	case ModeLive:
		cfg = Config{
			Mode:        ModeLive,
			MerchantID:  env.GetEnv("PAYFAST_LIVE_MERCHANT_ID", ""),
			MerchantKey: env.GetEnv("PAYFAST_LIVE_MERCHANT_KEY", ""),
			Passphrase:  env.GetEnv("PAYFAST_LIVE_PASSPHRASE", ""),
		}
	case ModeSandbox:
		cfg = Config{
			Mode:        ModeSandbox,
			MerchantID:  env.GetEnv("PAYFAST_SANDBOX_MERCHANT_ID", ""),
			MerchantKey: env.GetEnv("PAYFAST_SANDBOX_MERCHANT_KEY", ""),
			Passphrase:  env.GetEnv("PAYFAST_SANDBOX_PASSPHRASE", ""),
		}
	default:
		return Config{}, fmt.Errorf("payfast: PAYFAST_MODE must be %q or %q, got %q", ModeLive, ModeSandbox, mode)
	}

	if cfg.MerchantID == "" || cfg.MerchantKey == "" {
		return Config{}, fmt.Errorf("payfast: merchant credentials for mode %q are not configured", mode)
	}

	cfg.RecurringAmount = env.GetEnv("PAYFAST_RECURRING_AMOUNT", "99.00")
	return cfg, nil
}
