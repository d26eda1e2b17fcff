// Package logger builds the root zerolog.Logger shared by the client
// and the CLI, and installs it into a context.Context so package omapi
// and its callers can retrieve it with zerolog.Ctx.
package logger

import (
	"context"
	"os"

	"github.com/rs/zerolog"
)

// New builds a logger writing to stdout at level, and returns a
// context carrying it via logger.WithContext.
func New(ctx context.Context, level string) (context.Context, zerolog.Logger, error) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	logLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		return ctx, zerolog.Nop(), err
	}

	log := zerolog.New(os.Stdout).With().Timestamp().Logger().Level(logLevel)
	ctx = log.WithContext(ctx)
	return ctx, log, nil
}
