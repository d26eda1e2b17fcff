package config

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"

	valid "github.com/asaskevich/govalidator"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

const (
	configFileEnvVarname = "OMAPI_CLIENT_CONFIG"
	configFileDftFile    = "/etc/omapi/client.yaml"
)

func isValid(c *ClientConfig) error {
	if c.Host == "" || !(valid.IsDNSName(c.Host) || valid.IsIPv4(c.Host)) {
		return fmt.Errorf("invalid host value: %v", c.Host)
	}
	if !valid.InRange(c.Port, 1, 65535) {
		return fmt.Errorf("invalid port value: %v", c.Port)
	}
	if c.Key != "" {
		if _, err := base64.StdEncoding.DecodeString(c.Key); err != nil {
			return fmt.Errorf("invalid key value: not base64: %w", err)
		}
	}
	return nil
}

func defaults() *ClientConfig {
	return &ClientConfig{
		Port:     7911,
		LogLevel: "info",
	}
}

func getConfigFile(filename string) string {
	if len(filename) > 0 {
		return filename
	}
	if f, ok := os.LookupEnv(configFileEnvVarname); ok {
		return f
	}
	return configFileDftFile
}

func load(ctx context.Context, filename string) (err error) {
	defer func() {
		log.Ctx(ctx).Err(err).Msgf("configuration file: %s", filename)
	}()

	filename = getConfigFile(filename)
	if _, statErr := os.Stat(filename); os.IsNotExist(statErr) {
		log.Ctx(ctx).Warn().Msg("configuration file does not exist, using defaults")
		return nil
	}

	newCfg := defaults()

	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	if err = yaml.Unmarshal(data, newCfg); err != nil {
		return err
	}
	if err = isValid(newCfg); err != nil {
		return err
	}

	*Config = *newCfg
	return nil
}
