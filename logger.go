package calldata

import (
	"go.uber.org/zap"
)

// Logger receives the warnings emitted by best-effort decode paths. *zap.SugaredLogger
// satisfies it.
type Logger interface {
	Debugf(template string, args ...any)
	Warnf(template string, args ...any)
}

// NopLogger returns a Logger that discards everything.
func NopLogger() Logger {
	return zap.NewNop().Sugar()
}

type Option func(*decoderOptions)

type decoderOptions struct {
	logger Logger
}

// WithLogger sets the logger used to report values that could not be decoded.
func WithLogger(lggr Logger) Option {
	return func(opts *decoderOptions) {
		if lggr != nil {
			opts.logger = lggr
		}
	}
}

// LoggerFromOptions resolves the logger configured by opts, defaulting to NopLogger.
func LoggerFromOptions(opts ...Option) Logger {
	o := &decoderOptions{logger: NopLogger()}
	for _, opt := range opts {
		opt(o)
	}

	return o.logger
}
