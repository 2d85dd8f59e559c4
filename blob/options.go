package blob

import (
	"fmt"
	"log/slog"

	"github.com/arloliu/varseq/errs"
	"github.com/arloliu/varseq/format"
	"github.com/arloliu/varseq/internal/options"
)

// config holds the settings shared by Marshal and Unmarshal.
type config struct {
	compression  format.CompressionType
	bigEndian    bool
	maxRawLength int
	logger       *slog.Logger
}

// DefaultMaxRawLength is the largest raw payload Unmarshal accepts by default, 256MiB.
const DefaultMaxRawLength = 256 << 20

// Option configures Marshal and Unmarshal.
type Option = options.Option[*config]

func newConfig(opts []Option) (*config, error) {
	cfg := &config{
		compression:  format.CompressionNone,
		maxRawLength: DefaultMaxRawLength,
		logger:       slog.New(slog.DiscardHandler),
	}

	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithCompression sets the payload compression used by Marshal.
//
// Unmarshal always uses the compression recorded in the header and ignores this option.
//
// Parameters:
//   - compression: One of format.CompressionNone, CompressionZstd, CompressionS2, CompressionLZ4
//
// Returns:
//   - Option: errs.ErrUnsupportedCompression is reported by Marshal for unknown types
func WithCompression(compression format.CompressionType) Option {
	return options.New(func(c *config) error {
		if !compression.IsValid() {
			return fmt.Errorf("%w: %s", errs.ErrUnsupportedCompression, compression)
		}
		c.compression = compression

		return nil
	})
}

// WithBigEndian writes the numeric header fields in big-endian byte order.
func WithBigEndian() Option {
	return options.NoError(func(c *config) {
		c.bigEndian = true
	})
}

// WithLittleEndian writes the numeric header fields in little-endian byte order, the default.
func WithLittleEndian() Option {
	return options.NoError(func(c *config) {
		c.bigEndian = false
	})
}

// WithMaxRawLength limits the raw payload length Unmarshal accepts.
//
// The raw length is read from the header before decompression, so the limit
// bounds the memory a hostile blob can make Unmarshal allocate.
func WithMaxRawLength(n int) Option {
	return options.New(func(c *config) error {
		if n < 0 {
			return fmt.Errorf("invalid max raw length: %d", n)
		}
		c.maxRawLength = n

		return nil
	})
}

// WithLogger sets the logger that reports rejected blobs at debug level.
//
// A nil logger keeps the default, which discards every record.
func WithLogger(logger *slog.Logger) Option {
	return options.NoError(func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	})
}
