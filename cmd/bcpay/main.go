package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gebv/bcpay/config"
	"github.com/gebv/bcpay/provider"
	"github.com/gebv/bcpay/provider/paybc"
	"github.com/gebv/bcpay/services/payment"
	"github.com/gebv/bcpay/util"
)

var VERSION = "dev"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type globalFlags struct {
	configPath string
	verbose    bool
}

func rootCmd() *cobra.Command {
	g := &globalFlags{}
	cmd := &cobra.Command{
		Use:           "bcpay",
		Short:         "bcpay - client of the PayBC payment system",
		Version:       VERSION,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := "WARN"
			if g.verbose {
				level = "DEBUG"
			}
			return defaultLogger(level)
		},
	}
	cmd.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "path to YAML config, environment variables override it")
	cmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(accountCmd(g))
	cmd.AddCommand(invoiceCmd(g))
	cmd.AddCommand(migrateCmd(g))
	cmd.AddCommand(tokenCmd(g))
	cmd.AddCommand(codesCmd(g))
	cmd.AddCommand(reportCmd(g))
	return cmd
}

// loadConfig конфиг без проверки настроек PayBC.
func loadConfig(g *globalFlags) (*config.Config, error) {
	return config.Load(g.configPath)
}

// newService сервис без хранилища и NATS, только обращения к PayBC.
func newService(g *globalFlags) (*payment.Service, *config.Config, error) {
	cfg, err := loadConfig(g)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	calendar, err := util.NewCalendar(cfg.Timezone, cfg.Holidays)
	if err != nil {
		return nil, nil, err
	}
	factory := provider.NewFactory(paybc.NewProvider(cfg.PayBCConfig()))
	return payment.NewService(factory, nil, nil, payment.Config{
		InvoicePrefix:     cfg.PayBC.InvoicePrefix,
		SubjectFormat:     cfg.Nats.PaymentSubject,
		ValidRedirectURLs: cfg.ValidRedirectURLs,
		Calendar:          calendar,
	}), cfg, nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func defaultLogger(levelSet string) error {
	level := zapcore.InfoLevel
	if err := level.Set(levelSet); err != nil {
		return err
	}
	config := zap.NewDevelopmentConfig()
	config.Level.SetLevel(level)
	l, err := config.Build()
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(l)
	return nil
}
