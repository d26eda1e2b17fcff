// Package subcommands implements the omapi CLI's host operations, each
// a thin cobra.Command that dials a Client from the loaded
// configuration and calls into package omapi.
package subcommands

import (
	"context"
	"net"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/canonical/omapiclient/internal/config"
	"github.com/canonical/omapiclient/internal/metrics"
	"github.com/canonical/omapiclient/pkg/omapi"
)

// Ctx is the context established by the root command's
// PersistentPreRunE, carrying the configured logger. Subcommands read
// it instead of threading a context through cobra, matching the
// reference daemon's reliance on the package-level zerolog/log logger.
var Ctx = context.Background()

// dial builds a Client from the loaded configuration, starting a
// Prometheus endpoint first when MetricsAddr is set.
func dial(ctx context.Context) (*omapi.Client, error) {
	cfg := config.Config

	l := log.Ctx(ctx)
	var recorder omapi.MetricsRecorder
	if cfg.MetricsAddr != "" {
		registry := metrics.NewOmapiRegistry("omapi_client")
		if err := startMetrics(ctx, cfg.MetricsAddr, registry); err != nil {
			return nil, err
		}
		recorder = registry
	}

	return omapi.Dial(ctx, omapi.ClientConfig{
		Host:     cfg.Host,
		Port:     cfg.Port,
		User:     cfg.User,
		Key:      cfg.Key,
		Insecure: cfg.Insecure,
		Logger:   l,
		Metrics:  recorder,
	})
}

func startMetrics(ctx context.Context, addr string, registry *metrics.OmapiRegistry) error {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return err
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return err
	}
	tlsConf, err := config.GetMetricsTLSConfig(ctx)
	if err != nil {
		return err
	}
	srvr, err := metrics.NewPrometheus(host, port, tlsConf, registry.Registry)
	if err != nil {
		return err
	}
	srvr.Start(ctx)
	return nil
}
