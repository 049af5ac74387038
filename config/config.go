package config

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/gebv/bcpay/provider/paybc"
)

type Config struct {
	PayBC             PayBC    `mapstructure:"paybc"`
	PGConn            string   `mapstructure:"pg_conn"`
	Nats              Nats     `mapstructure:"nats"`
	Timezone          string   `mapstructure:"timezone"`
	Holidays          []string `mapstructure:"holidays"`
	ValidRedirectURLs []string `mapstructure:"valid_redirect_urls"`
	JWTSecret         string   `mapstructure:"jwt_secret"`
	HTTPAddr          string   `mapstructure:"http_addr"`
	DebugAddr         string   `mapstructure:"debug_addr"`
	LogLevel          string   `mapstructure:"log_level"`
}

type PayBC struct {
	BaseURL       string        `mapstructure:"base_url"`
	ClientID      string        `mapstructure:"client_id"`
	ClientSecret  string        `mapstructure:"client_secret"`
	InvoicePrefix string        `mapstructure:"invoice_prefix"`
	ReceiptPrefix string        `mapstructure:"receipt_prefix"`
	Timeout       time.Duration `mapstructure:"timeout"`
}

type Nats struct {
	URL            string `mapstructure:"url"`
	PaymentSubject string `mapstructure:"payment_subject"`
	UpdateSubject  string `mapstructure:"update_subject"`
}

// PayBCConfig returns the configuration of the PayBC provider.
func (c *Config) PayBCConfig() paybc.Config {
	return paybc.Config{
		BaseURL:      c.PayBC.BaseURL,
		ClientID:     c.PayBC.ClientID,
		ClientSecret: c.PayBC.ClientSecret,
		Timeout:      c.PayBC.Timeout,
	}
}

// env ключ конфигурации -> переменная окружения.
var env = map[string]string{
	"paybc.base_url":       "PAYBC_BASE_URL",
	"paybc.client_id":      "PAYBC_CLIENT_ID",
	"paybc.client_secret":  "PAYBC_CLIENT_SECRET",
	"paybc.invoice_prefix": "CFS_INVOICE_PREFIX",
	"paybc.receipt_prefix": "CFS_RECEIPT_PREFIX",
	"paybc.timeout":        "PAYBC_TIMEOUT",
	"pg_conn":              "PG_CONN",
	"nats.url":             "NATS_URL",
	"nats.payment_subject": "NATS_PAYMENT_SUBJECT",
	"nats.update_subject":  "NATS_INVOICE_UPDATE_SUBJECT",
	"timezone":             "LEGISLATIVE_TIMEZONE",
	"holidays":             "HOLIDAYS_LIST",
	"valid_redirect_urls":  "VALID_REDIRECT_URLS",
	"jwt_secret":           "JWT_SECRET",
	"http_addr":            "PORT",
	"debug_addr":           "DEBUG_ADDR",
	"log_level":            "LOG_LEVEL",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("paybc.invoice_prefix", "REG")
	v.SetDefault("paybc.receipt_prefix", "RCPT")
	v.SetDefault("paybc.timeout", 30*time.Second)
	v.SetDefault("nats.url", "")
	v.SetDefault("nats.payment_subject", "entity.{product}.payment")
	v.SetDefault("nats.update_subject", "bcpay.invoice.update")
	v.SetDefault("timezone", "America/Vancouver")
	v.SetDefault("http_addr", "8081")
	v.SetDefault("debug_addr", ":9090")
	v.SetDefault("log_level", "INFO")
}

// Load reads the configuration from the environment and,
// if path is not empty, from the YAML file. Environment wins.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	for key, name := range env {
		if err := v.BindEnv(key, name); err != nil {
			return nil, errors.Wrapf(err, "Failed bind env %q", name)
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "Failed read config %q", path)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "Failed unmarshal config")
	}
	// списки в окружении задаются через запятую
	cfg.Holidays = trimList(cfg.Holidays)
	cfg.ValidRedirectURLs = trimList(cfg.ValidRedirectURLs)
	if !strings.Contains(cfg.HTTPAddr, ":") {
		cfg.HTTPAddr = ":" + cfg.HTTPAddr
	}
	return cfg, nil
}

// Validate checks the settings required to talk to PayBC.
func (c *Config) Validate() error {
	if c.PayBC.BaseURL == "" {
		return errors.New("PAYBC_BASE_URL is required")
	}
	if c.PayBC.ClientID == "" || c.PayBC.ClientSecret == "" {
		return errors.New("PAYBC_CLIENT_ID and PAYBC_CLIENT_SECRET are required")
	}
	if c.PayBC.Timeout <= 0 {
		return errors.New("PAYBC_TIMEOUT must be positive")
	}
	return nil
}

func trimList(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
