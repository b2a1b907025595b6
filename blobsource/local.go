package blobsource

import (
	"context"
	"io"
	"path/filepath"

	"golang.org/x/exp/mmap"
)

// Local serves blobs from a directory on the local file system. Files are
// memory-mapped rather than read through a file descriptor.
type Local struct {
	root string
}

// NewLocal returns a Local rooted at dir. Names are joined to dir; an
// absolute name with an empty dir is used as is.
func NewLocal(dir string) *Local {
	return &Local{root: dir}
}

// Open maps the named file.
func (s *Local) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return OpenFile(filepath.Join(s.root, name))
}

// OpenFile maps the file at path and returns a reader over its contents.
func OpenFile(path string) (io.ReadCloser, error) {
	m, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	return &mappedFile{
		SectionReader: io.NewSectionReader(m, 0, int64(m.Len())),
		m:             m,
	}, nil
}

type mappedFile struct {
	*io.SectionReader
	m *mmap.ReaderAt
}

func (f *mappedFile) Close() error {
	return f.m.Close()
}
