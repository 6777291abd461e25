// Package testlog requests the verbose test profile for the process
// logger and stamps the running test's name into the log stream so
// interleaved output stays attributable. Logger configuration happens
// once per process, so if another profile was configured first, that
// profile stays in effect.
package testlog

import (
	"testing"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/ocdaemon/internal/logging"
)

func Start(t *testing.T) {
	t.Helper()
	logging.ConfigureTests()
	log.Debug().Str("test", t.Name()).Msg("start")
}
