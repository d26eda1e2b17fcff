// Package config loads and validates the settings the omapi CLI and
// library callers need to dial a server: host, port, credentials, and
// the optional metrics endpoint.
package config

import (
	"context"
)

type ctxFilename struct{}

// ClientConfig is the on-disk/env/flag configuration for an OMAPI
// connection.
type ClientConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`

	// User and Key, when both set, select the HMAC-MD5 authenticator.
	// Key is Base64-encoded, matching the wire form omapiauth expects.
	User string `yaml:"user,omitempty"`
	Key  string `yaml:"key,omitempty"`

	// Insecure opts into accepting responses signed by a non-default
	// authenticator. Off by default.
	Insecure bool `yaml:"insecure,omitempty"`

	LogLevel string `yaml:"log_level,omitempty"`

	MetricsAddr      string `yaml:"metrics_addr,omitempty"`
	MetricsTLSCert   string `yaml:"metrics_tls_cert,omitempty"`
	MetricsTLSKey    string `yaml:"metrics_tls_key,omitempty"`
	MetricsTLSCACert string `yaml:"metrics_tls_ca_cert,omitempty"`
}

// Config is the global configuration populated by Load.
var Config *ClientConfig = defaults()

// Load reads filename (or the OMAPI_CLIENT_CONFIG env override, or the
// built-in default path, in that precedence) into Config, validates
// it, and returns a context the file path is recorded against.
func Load(ctx context.Context, filename string) (context.Context, error) {
	if err := load(ctx, filename); err != nil {
		return ctx, err
	}
	return context.WithValue(ctx, ctxFilename{}, filename), nil
}

// Reload re-reads the file Load last used.
func Reload(ctx context.Context) error {
	fname, _ := ctx.Value(ctxFilename{}).(string)
	return load(ctx, fname)
}
