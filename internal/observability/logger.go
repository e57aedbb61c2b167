package observability

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/strict-types/strict-encoding-sub000/internal/logging"
)

// InitLogger installs cfg as the global logger tagged with the
// application name.
func InitLogger(app string, cfg logging.Config) zerolog.Logger {
	logger := logging.Install(cfg).With().Str("app", app).Logger()
	log.Logger = logger
	return logger
}
