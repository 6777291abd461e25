// Package logging configures the process-wide zerolog logger. The client
// library must never pollute a host application's output, so the runtime
// profile defaults to warn and send failures are logged at debug.
package logging

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	EnvLogLevel     = "OCDAEMON_LOG_LEVEL"
	EnvLogTimestamp = "OCDAEMON_LOG_TIMESTAMP"
	EnvLogNoColor   = "OCDAEMON_LOG_NOCOLOR"
)

type Profile int

const (
	ProfileLibrary Profile = iota
	ProfileTool
	ProfileTest
)

var configureOnce sync.Once

func ConfigureLibrary() zerolog.Logger { return Configure(ProfileLibrary) }
func ConfigureTool() zerolog.Logger    { return Configure(ProfileTool) }
func ConfigureTests() zerolog.Logger   { return Configure(ProfileTest) }

func Configure(profile Profile) zerolog.Logger {
	configureOnce.Do(func() {
		level := defaultLevel(profile)
		if lvl, ok := parseLevel(os.Getenv(EnvLogLevel)); ok {
			level = lvl
		}
		output := zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
			NoColor:    envBool(EnvLogNoColor),
		}
		ctx := zerolog.New(output).Level(level).With()
		if profile != ProfileTest && !envBoolIsFalse(EnvLogTimestamp) {
			ctx = ctx.Timestamp()
		}
		log.Logger = ctx.Logger()
	})
	return log.Logger
}

func defaultLevel(profile Profile) zerolog.Level {
	switch profile {
	case ProfileTool:
		return zerolog.InfoLevel
	case ProfileTest:
		return zerolog.DebugLevel
	default:
		return zerolog.WarnLevel
	}
}

func parseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return zerolog.WarnLevel, false
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "disable", "off", "none":
		return zerolog.Disabled, true
	default:
		return zerolog.WarnLevel, false
	}
}

func envBool(key string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	return err == nil && v
}

func envBoolIsFalse(key string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	return err == nil && !v
}
