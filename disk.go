package dawg

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/renameio"
	"golang.org/x/sync/errgroup"

	"github.com/milden6/dawgdic/blobsource"
)

/* FILE FORMAT
- optional outer gzip (or zstd / lz4) frame
- 4 bytes: little-endian uint32 N, the number of units
- N * 4 bytes: little-endian uint32 units, index 0 is the root

There is no trailer, checksum or version field. The unit layout is
described in units.go.
*/

const (
	unitSize = 4

	// readChunk bounds how many body bytes are buffered at once, so a bogus
	// header cannot force a large allocation before the stream runs out.
	readChunk = 1 << 20
)

// Read loads a dictionary from an uncompressed unit stream. It fails with
// ErrTruncatedInput if r ends before the declared number of units.
func Read(r io.Reader, opts ...Option) (*Dictionary, error) {
	o := applyOptions(opts)
	start := time.Now()
	d, err := readUnits(r)
	o.metrics.observe(start, len(unitsOf(d)), err)
	if err != nil {
		o.logger.Warn("dictionary read failed", "error", err)
		return nil, err
	}

	o.logger.Debug("dictionary read",
		"units", len(d.units),
		"duration", time.Since(start),
	)
	return d, nil
}

func unitsOf(d *Dictionary) []uint32 {
	if d == nil {
		return nil
	}
	return d.units
}

func readUnits(r io.Reader) (*Dictionary, error) {
	var header [unitSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, truncated("header", err)
	}
	n := binary.LittleEndian.Uint32(header[:])

	units := make([]uint32, 0, min(uint64(n), readChunk/unitSize))
	buf := make([]byte, min(uint64(n)*unitSize, readChunk))
	for remaining := uint64(n) * unitSize; remaining > 0; {
		chunk := buf[:min(remaining, uint64(len(buf)))]
		if _, err := io.ReadFull(r, chunk); err != nil {
			return nil, truncated(fmt.Sprintf("body (%d of %d units)", len(units), n), err)
		}
		for i := 0; i < len(chunk); i += unitSize {
			units = append(units, binary.LittleEndian.Uint32(chunk[i:]))
		}
		remaining -= uint64(len(chunk))
	}

	return &Dictionary{root: rootIndex, units: units}, nil
}

func truncated(what string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: reading %s", ErrTruncatedInput, what)
	}
	return fmt.Errorf("dawg: reading %s: %w", what, err)
}

// Load loads a dictionary file. The file may be gzip, zstd or lz4
// compressed; the encoding is detected from its first bytes. An
// uncompressed file whose unit count begins with the bytes of one of those
// magics (impossible for counts that are a multiple of 256, as builders
// emit) is misdetected; use Read for such streams.
func Load(filename string, opts ...Option) (*Dictionary, error) {
	dir, name := filepath.Split(filename)
	return LoadFrom(context.Background(), blobsource.NewLocal(dir), name, opts...)
}

// LoadFrom loads the named dictionary from src, decompressing it as needed.
func LoadFrom(ctx context.Context, src blobsource.Source, name string, opts ...Option) (*Dictionary, error) {
	o := applyOptions(opts)
	start := time.Now()

	d, c, err := loadFrom(ctx, src, name)
	o.metrics.observe(start, len(unitsOf(d)), err)
	if err != nil {
		o.logger.Warn("dictionary load failed", "name", name, "error", err)
		return nil, err
	}

	o.logger.Debug("dictionary loaded",
		"name", name,
		"units", len(d.units),
		"compression", c.String(),
		"duration", time.Since(start),
	)
	return d, nil
}

func loadFrom(ctx context.Context, src blobsource.Source, name string) (*Dictionary, Compression, error) {
	rc, err := src.Open(ctx, name)
	if err != nil {
		return nil, None, fmt.Errorf("dawg: open %s: %w", name, err)
	}
	defer rc.Close()

	zr, c, err := decompress(rc)
	if err != nil {
		return nil, c, fmt.Errorf("%s: %w", name, err)
	}
	defer zr.Close()

	d, err := readUnits(zr)
	if err != nil {
		return nil, c, fmt.Errorf("%s: %w", name, err)
	}
	return d, c, nil
}

// LoadAll loads several dictionaries from src concurrently. If any load
// fails, the remaining loads are cancelled and no dictionary is returned.
func LoadAll(ctx context.Context, src blobsource.Source, names []string, opts ...Option) (map[string]*Dictionary, error) {
	o := applyOptions(opts)

	loaded := make([]*Dictionary, len(names))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)
	for i, name := range names {
		g.Go(func() error {
			d, err := LoadFrom(ctx, src, name, opts...)
			if err != nil {
				return err
			}
			loaded[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	dicts := make(map[string]*Dictionary, len(names))
	for i, name := range names {
		dicts[name] = loaded[i]
	}
	return dicts, nil
}

// WriteTo writes the dictionary in the uncompressed binary format. It
// returns the number of bytes written.
func (d *Dictionary) WriteTo(w io.Writer) (int64, error) {
	buf := make([]byte, unitSize, min(uint64(len(d.units)+1)*unitSize, readChunk))
	binary.LittleEndian.PutUint32(buf, uint32(len(d.units)))

	var written int64
	for _, u := range d.units {
		if len(buf)+unitSize > cap(buf) {
			n, err := w.Write(buf)
			written += int64(n)
			if err != nil {
				return written, err
			}
			buf = buf[:0]
		}
		buf = binary.LittleEndian.AppendUint32(buf, u)
	}
	n, err := w.Write(buf)
	written += int64(n)
	return written, err
}

// Save atomically replaces filename with the dictionary, compressed as
// configured (gzip by default). It returns the number of uncompressed
// bytes written.
func (d *Dictionary) Save(filename string, opts ...Option) (int64, error) {
	o := applyOptions(opts)

	t, err := renameio.TempFile("", filename)
	if err != nil {
		return 0, err
	}
	defer t.Cleanup()

	zw, err := compress(t, o)
	if err != nil {
		return 0, err
	}
	n, err := d.WriteTo(zw)
	if err != nil {
		return n, err
	}
	if err := zw.Close(); err != nil {
		return n, err
	}
	if err := t.CloseAtomicallyReplace(); err != nil {
		return n, err
	}

	o.logger.Debug("dictionary saved",
		"filename", filename,
		"units", len(d.units),
		"compression", o.compression.String(),
	)
	return n, nil
}
