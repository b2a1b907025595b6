// Package blobsource provides the byte sources dictionaries are loaded from.
package blobsource

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when a named blob does not exist. It is
// os.ErrNotExist so that file and object stores can be checked alike.
var ErrNotFound = os.ErrNotExist

// Source opens named, immutable blobs for sequential reading.
type Source interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}
