package compression

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// Compression levels accepted by NewCompressor.
const (
	BestSpeed          = zlib.BestSpeed
	DefaultCompression = zlib.DefaultCompression
	BestCompression    = zlib.BestCompression
)

// Compressor deflates objects into the zlib container so any standard
// inflater can read them back.
type Compressor struct {
	level int
}

func NewCompressor(level int) (*Compressor, error) {
	if level != DefaultCompression && (level < zlib.NoCompression || level > BestCompression) {
		return nil, fmt.Errorf("invalid compression level: %d", level)
	}
	return &Compressor{level: level}, nil
}

// Level returns the configured compression level.
func (c *Compressor) Level() int {
	return c.level
}

func (c *Compressor) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.CompressTo(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CompressTo writes the compressed form of data to w.
func (c *Compressor) CompressTo(w io.Writer, data []byte) error {
	zw, err := zlib.NewWriterLevel(w, c.level)
	if err != nil {
		return fmt.Errorf("create zlib writer: %w", err)
	}
	if _, err := zw.Write(data); err != nil {
		zw.Close()
		return fmt.Errorf("compress: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("flush compressor: %w", err)
	}
	return nil
}

func (c *Compressor) Decompress(data []byte) ([]byte, error) {
	return c.DecompressFrom(bytes.NewReader(data))
}

// DecompressFrom inflates the zlib stream read from r.
func (c *Compressor) DecompressFrom(r io.Reader) ([]byte, error) {
	zr, err := zlib.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("open zlib stream: %w", err)
	}
	defer zr.Close()

	data, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("decompress: %w", err)
	}
	return data, nil
}
