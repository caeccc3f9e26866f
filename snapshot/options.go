package snapshot

import (
	"log/slog"
)

type options struct {
	compression Compression
	logger      *slog.Logger
}

// Option configures snapshot writing.
type Option func(*options)

// WithCompression selects the payload compression codec.
// The default is CompressionNone.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithLogger sets the logger used for debug output. If nil is passed,
// logging is disabled.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func applyOptions(opts []Option) options {
	o := options{
		compression: CompressionNone,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	return o
}
