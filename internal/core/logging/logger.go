package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Component derives a logger from the global logger tagged with a component
// name, matching the key services use when given an explicit logger.
func Component(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}
