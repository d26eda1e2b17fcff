package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/canonical/omapiclient/cmd/omapi/subcommands"
	"github.com/canonical/omapiclient/internal/config"
	"github.com/canonical/omapiclient/internal/logger"
)

var rootCMD = &cobra.Command{
	Use:           "omapi",
	Short:         "query and update ISC DHCP host reservations over OMAPI",
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		ctx, log, err := logger.New(context.Background(), options.LogLevel)
		if err != nil {
			return err
		}
		subcommands.Ctx = ctx

		if _, err := config.Load(ctx, options.ConfigFile); err != nil {
			return err
		}
		applyFlagOverrides()

		log.Debug().Str("host", config.Config.Host).Int("port", config.Config.Port).Msg("omapi: configuration loaded")
		return nil
	},
}

var options struct {
	ConfigFile  string
	Host        string
	Port        int
	User        string
	Key         string
	LogLevel    string
	Insecure    bool
	MetricsAddr string
}

// applyFlagOverrides layers explicitly-set command-line flags on top of
// the configuration file, the way the reference daemon's root command
// layers flags on top of config.Config before dispatching to a
// subcommand.
func applyFlagOverrides() {
	if options.Host != "" {
		config.Config.Host = options.Host
	}
	if options.Port != 0 {
		config.Config.Port = options.Port
	}
	if options.User != "" {
		config.Config.User = options.User
	}
	if options.Key != "" {
		config.Config.Key = options.Key
	}
	if options.Insecure {
		config.Config.Insecure = true
	}
	if options.MetricsAddr != "" {
		config.Config.MetricsAddr = options.MetricsAddr
	}
}

func init() {
	rootCMD.PersistentFlags().StringVar(&options.ConfigFile, "config", "", "path to config file")
	rootCMD.PersistentFlags().StringVar(&options.Host, "host", "", "OMAPI server host")
	rootCMD.PersistentFlags().IntVar(&options.Port, "port", 0, "OMAPI server port")
	rootCMD.PersistentFlags().StringVar(&options.User, "user", "", "HMAC-MD5 key name")
	rootCMD.PersistentFlags().StringVar(&options.Key, "key", "", "base64-encoded HMAC-MD5 key")
	rootCMD.PersistentFlags().StringVar(&options.LogLevel, "log-level", zerolog.InfoLevel.String(), "log level (debug|info|warn|error)")
	rootCMD.PersistentFlags().BoolVar(&options.Insecure, "insecure", false, "accept responses signed by a non-default authenticator")
	rootCMD.PersistentFlags().StringVar(&options.MetricsAddr, "metrics-addr", "", "host:port to serve Prometheus metrics on, empty to disable")
}

func main() {
	rootCMD.AddCommand(subcommands.LookupIPCMD)
	rootCMD.AddCommand(subcommands.LookupMACCMD)
	rootCMD.AddCommand(subcommands.AddHostCMD)
	rootCMD.AddCommand(subcommands.UpdateHostCMD)
	rootCMD.AddCommand(subcommands.DelHostCMD)

	if err := rootCMD.Execute(); err != nil {
		os.Exit(1)
	}
}
