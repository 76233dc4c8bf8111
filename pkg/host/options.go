package host

import (
	"log/slog"

	"github.com/go-drift/blueprint/pkg/environment"
	"github.com/go-drift/blueprint/pkg/metrics"
)

// Option configures a Host.
type Option func(*Host)

// WithLogger sets the logger for pass diagnostics. By default nothing is
// logged.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Host) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithMetrics records pass metrics in c.
func WithMetrics(c *metrics.Collector) Option {
	return func(h *Host) {
		h.metrics = c
	}
}

// WithEnvironment sets the initial environment.
func WithEnvironment(env environment.Environment) Option {
	return func(h *Host) {
		h.env = env
	}
}

// WithConfig replaces the host settings.
func WithConfig(cfg Config) Option {
	return func(h *Host) {
		h.config = cfg
	}
}

// WithSizeCacheCapacity sets how many size-that-fits results are cached.
func WithSizeCacheCapacity(n int) Option {
	return func(h *Host) {
		h.config.SizeCacheCapacity = n
	}
}
