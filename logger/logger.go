// Package logger constructs the zerolog root logger.
package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns the root logger. Outside production it writes human-readable
// console output; in production, JSON lines.
func New(environment string) zerolog.Logger {
	if environment == "production" {
		return zerolog.New(os.Stdout).With().Timestamp().Logger()
	}
	writer := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}
	return zerolog.New(writer).With().Timestamp().Logger().Level(zerolog.DebugLevel)
}
