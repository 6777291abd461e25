package ocdaemon

import (
	"time"

	"github.com/danmuck/ocdaemon/internal/config"
)

type settings struct {
	configFile    string
	socketPath    string
	namedPipePath string
	maxSendTime   time.Duration
	deliverer     Deliverer
}

func defaultSettings() settings {
	return settings{}
}

// merge fills any setting the caller did not pin with the resolved file
// and environment configuration. Options always win.
func (s *settings) merge(cfg config.Config) {
	if s.socketPath == "" {
		s.socketPath = cfg.SocketPath
	}
	if s.namedPipePath == "" {
		s.namedPipePath = cfg.NamedPipePath
	}
	if s.maxSendTime <= 0 {
		s.maxSendTime = time.Duration(cfg.MaxSendTime * float64(time.Second))
	}
	floor := time.Duration(config.MinMaxSendTime * float64(time.Second))
	if s.maxSendTime < floor {
		s.maxSendTime = floor
	}
}

// Option adjusts session construction. Options passed to any Init call
// after the session is live are ignored.
type Option func(*settings)

// WithConfigFile reads settings from the TOML file at path instead of
// the OCDAEMON_CONFIG location.
func WithConfigFile(path string) Option {
	return func(s *settings) { s.configFile = path }
}

// WithSocketPath overrides the unix socket path on POSIX platforms.
func WithSocketPath(path string) Option {
	return func(s *settings) { s.socketPath = path }
}

// WithNamedPipePath overrides the pipe path on Windows.
func WithNamedPipePath(path string) Option {
	return func(s *settings) { s.namedPipePath = path }
}

// WithMaxSendTime overrides the per-frame send budget. Positive values
// below the 1ms floor are clamped up; zero or negative leaves the
// configured budget in place.
func WithMaxSendTime(d time.Duration) Option {
	return func(s *settings) { s.maxSendTime = d }
}

// WithDeliverer routes frames to a co-resident delegate instead of this
// client's own transport. No socket is opened; the delegate receives the
// raw type byte and payload and is trusted to deliver them.
func WithDeliverer(d Deliverer) Option {
	return func(s *settings) { s.deliverer = d }
}
