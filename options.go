package dawg

import (
	"log/slog"

	"github.com/klauspost/compress/zstd"
)

type options struct {
	logger      *slog.Logger
	metrics     *Metrics
	compression Compression
	level       int
	concurrency int
}

func defaultOptions() options {
	return options{
		logger:      slog.New(slog.DiscardHandler),
		compression: Gzip,
		level:       -1,
		concurrency: 4,
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// Option configures loading and saving.
type Option func(*options)

// WithLogger sets the logger used by load and save operations.
// Queries never log. If nil is passed, logging is disabled.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = slog.New(slog.DiscardHandler)
		}
		o.logger = l
	}
}

// WithMetrics records load outcomes in m.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithCompression selects the transport compression used by Save.
// Loading always detects the compression from the stream itself.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithCompressionLevel sets the codec-specific level used by Save.
// Negative values select the codec default.
func WithCompressionLevel(level int) Option {
	return func(o *options) {
		o.level = level
	}
}

// WithConcurrency bounds how many dictionaries LoadAll reads at once.
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = 1
		}
		o.concurrency = n
	}
}

func (o options) zstdLevel() zstd.EncoderLevel {
	if o.level < 0 {
		return zstd.SpeedDefault
	}
	return zstd.EncoderLevelFromZstd(o.level)
}
