// Package logging provides structured logging for swapi using zerolog.
//
// Console output is used when stderr is a terminal, JSON otherwise:
//
//	log := logging.Default()
//	log.Info().Str("collection", "films").Msg("document created")
//
// Request handlers take their logger from the request context, which carries
// the request id:
//
//	logging.FromContext(r.Context()).Error().Err(err).Msg("store failure")
package logging

import (
	"io"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	mu            sync.RWMutex
	defaultLogger = NewLoggerFromConfig(DefaultConfig())

	// Nop discards everything
	Nop = zerolog.Nop()
)

// Default returns the default global logger.
func Default() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := defaultLogger
	return &l
}

// SetDefault sets the default global logger.
func SetDefault(logger zerolog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	defaultLogger = logger
	log.Logger = logger
}

// SetLevel changes the level of the default logger in place
func SetLevel(level string) {
	mu.Lock()
	defer mu.Unlock()
	defaultLogger = defaultLogger.Level(ParseLevel(level))
	log.Logger = defaultLogger
}

// New creates a JSON logger writing to w
func New(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}
