package config

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"os"

	"github.com/rs/zerolog/log"
)

var ErrBadTLSConfig = errors.New("invalid metrics tls configuration")

// GetMetricsTLSConfig builds a server tls.Config for the metrics
// endpoint from Config's cert/key/cacert fields, or returns a nil
// config (plain HTTP) when no cert is configured.
func GetMetricsTLSConfig(ctx context.Context) (*tls.Config, error) {
	if Config.MetricsTLSCert == "" && Config.MetricsTLSKey == "" {
		return nil, nil
	}

	cer, err := tls.LoadX509KeyPair(Config.MetricsTLSCert, Config.MetricsTLSKey)
	if err != nil {
		log.Ctx(ctx).Err(err).Msgf("failed to load cert %v - %v", Config.MetricsTLSCert, Config.MetricsTLSKey)
		return nil, ErrBadTLSConfig
	}

	cfg := &tls.Config{Certificates: []tls.Certificate{cer}}

	if Config.MetricsTLSCACert != "" {
		caCert, err := os.ReadFile(Config.MetricsTLSCACert)
		if err != nil {
			log.Ctx(ctx).Err(err).Msgf("failed to load CA cert %v", Config.MetricsTLSCACert)
			return nil, ErrBadTLSConfig
		}
		cfg.RootCAs = x509.NewCertPool()
		cfg.RootCAs.AppendCertsFromPEM(caCert)
	}

	return cfg, nil
}
