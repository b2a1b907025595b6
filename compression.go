package dawg

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies the transport encoding wrapped around a
// dictionary stream.
type Compression uint8

const (
	// None stores the unit array as is.
	None Compression = iota
	// Gzip is the encoding dictionaries are distributed in.
	Gzip
	// Zstd is a Zstandard frame.
	Zstd
	// LZ4 is an LZ4 frame.
	LZ4
)

func (c Compression) String() string {
	switch c {
	case None:
		return "none"
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	case LZ4:
		return "lz4"
	}
	return fmt.Sprintf("Compression(%d)", uint8(c))
}

var (
	gzipMagic = []byte{0x1f, 0x8b, 0x08}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

const gzipReservedFlags = 0xe0

// detectCompression inspects the first bytes of br without consuming them.
// Streams too short to carry a magic number are treated as uncompressed.
// An uncompressed stream starts with its unit count, which builders round
// up to a multiple of 256, so its first byte is zero and never a magic.
// A gzip header must also have the reserved flag bits clear.
func detectCompression(br *bufio.Reader) Compression {
	head, _ := br.Peek(4)
	switch {
	case bytes.HasPrefix(head, zstdMagic):
		return Zstd
	case bytes.HasPrefix(head, lz4Magic):
		return LZ4
	case bytes.HasPrefix(head, gzipMagic) && len(head) == 4 && head[3]&gzipReservedFlags == 0:
		return Gzip
	}
	return None
}

// decompress returns a reader producing the raw unit stream held in r.
func decompress(r io.Reader) (io.ReadCloser, Compression, error) {
	br := bufio.NewReader(r)
	c := detectCompression(br)
	switch c {
	case Gzip:
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, c, fmt.Errorf("dawg: gzip header: %w", err)
		}
		return zr, c, nil
	case Zstd:
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, c, fmt.Errorf("dawg: zstd header: %w", err)
		}
		return zr.IOReadCloser(), c, nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(br)), c, nil
	}
	return io.NopCloser(br), None, nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// compress wraps w in the encoder selected by o. Closing the returned
// writer flushes the encoder but leaves w open.
func compress(w io.Writer, o options) (io.WriteCloser, error) {
	switch o.compression {
	case None:
		return nopWriteCloser{w}, nil
	case Gzip:
		level := o.level
		if level < 0 {
			level = gzip.DefaultCompression
		}
		return gzip.NewWriterLevel(w, level)
	case Zstd:
		return zstd.NewWriter(w, zstd.WithEncoderLevel(o.zstdLevel()))
	case LZ4:
		zw := lz4.NewWriter(w)
		if o.level >= 0 {
			if err := zw.Apply(lz4.CompressionLevelOption(lz4Level(o.level))); err != nil {
				return nil, err
			}
		}
		return zw, nil
	}
	return nil, fmt.Errorf("dawg: unknown compression %v", o.compression)
}

var lz4Levels = [...]lz4.CompressionLevel{
	lz4.Fast,
	lz4.Level1, lz4.Level2, lz4.Level3,
	lz4.Level4, lz4.Level5, lz4.Level6,
	lz4.Level7, lz4.Level8, lz4.Level9,
}

// lz4Level maps 0..9 to the lz4 levels; larger values select Level9.
func lz4Level(level int) lz4.CompressionLevel {
	return lz4Levels[min(level, len(lz4Levels)-1)]
}
