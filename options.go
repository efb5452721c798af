package rgit

import (
	"github.com/sirupsen/logrus"

	"github.com/Yuiki/rgit/internal/compression"
)

// DefaultRoot is the repository directory name used by the CLI.
const DefaultRoot = ".rgit"

// DefaultConcurrency bounds parallel object writes in Add.
const DefaultConcurrency = 4

// Options configures a Repository.
type Options struct {
	CompressionLevel int
	VerifyIndex      bool
	Concurrency      int
	Logger           logrus.FieldLogger
}

// Option is a functional option for configuring Init and Open.
type Option func(*Options)

func defaultOptions() *Options {
	return &Options{
		CompressionLevel: compression.BestSpeed,
		Concurrency:      DefaultConcurrency,
		Logger:           logrus.StandardLogger(),
	}
}

// WithCompressionLevel sets the zlib level used for new objects.
func WithCompressionLevel(level int) Option {
	return func(o *Options) { o.CompressionLevel = level }
}

// WithVerifyIndex makes every index load check the trailing checksum.
func WithVerifyIndex(verify bool) Option {
	return func(o *Options) { o.VerifyIndex = verify }
}

// WithConcurrency sets the number of files Add reads and stores in parallel.
func WithConcurrency(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.Concurrency = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(o *Options) {
		if log != nil {
			o.Logger = log
		}
	}
}
