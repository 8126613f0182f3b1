package search

import (
	"io"
	"log/slog"
)

type config struct {
	strategy  Strategy
	maxSteps  int
	logger    *slog.Logger
	observers observers
}

func defaultConfig() config {
	return config{
		strategy: StrategyBFS,
		maxSteps: DefaultMaxSteps,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Option configures Run.
type Option func(*config)

// WithStrategy selects the traversal strategy.
func WithStrategy(s Strategy) Option {
	return func(c *config) { c.strategy = s }
}

// WithMaxSteps sets the maximum search depth. 0 disables the limit.
func WithMaxSteps(n int) Option {
	return func(c *config) { c.maxSteps = n }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithObserver adds an observer. Observers are called in registration order.
func WithObserver(o Observer) Option {
	return func(c *config) {
		if o != nil {
			c.observers = append(c.observers, o)
		}
	}
}
