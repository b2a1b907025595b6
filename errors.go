package dawg

import (
	"errors"
	"fmt"
)

var (
	// ErrTruncatedInput is returned when a stream ends before the number of
	// units declared by its header has been read.
	ErrTruncatedInput = errors.New("dawg: truncated input")

	// ErrIndexOutOfRange matches every *IndexError via errors.Is.
	ErrIndexOutOfRange = errors.New("dawg: index out of range")
)

// IndexError reports a unit index computed during a query that falls outside
// the unit array. It means the dictionary is corrupt or was produced with an
// incompatible encoding.
type IndexError struct {
	Index uint32
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("dawg: unit index %d out of range [0, %d)", e.Index, e.Len)
}

// Is makes errors.Is(err, ErrIndexOutOfRange) hold for any *IndexError.
func (e *IndexError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}
