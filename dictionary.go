package dawg

import (
	"bufio"
	"fmt"
	"io"
)

// FindResult is one stored key found by a prefix search, together with the
// value it resolves to.
type FindResult struct {
	Word  string
	Value uint32
}

// Finder is the read-only query surface of a loaded dictionary.
type Finder interface {
	Contains(key string) bool
	Find(key string) (uint32, bool)
	Lookup(key []byte) (uint32, bool, error)
	Prefixes(key string) ([]FindResult, error)
	NumUnits() int
}

var _ Finder = (*Dictionary)(nil)

const rootIndex = 0

// Dictionary is a double-array DAWG loaded into memory. It never changes
// after construction, so one value may be shared by any number of
// goroutines without locking.
type Dictionary struct {
	root  uint32
	units []uint32
}

// New returns a dictionary over a copy of units, rooted at index 0.
func New(units []uint32) *Dictionary {
	owned := make([]uint32, len(units))
	copy(owned, units)
	return &Dictionary{root: rootIndex, units: owned}
}

// Root returns the index of the root unit.
func (d *Dictionary) Root() uint32 {
	return d.root
}

// NumUnits returns the number of units in the dictionary.
func (d *Dictionary) NumUnits() int {
	return len(d.units)
}

// Units returns a copy of the unit array.
func (d *Dictionary) Units() []uint32 {
	units := make([]uint32, len(d.units))
	copy(units, d.units)
	return units
}

func (d *Dictionary) unit(index uint32) (uint32, error) {
	if uint64(index) >= uint64(len(d.units)) {
		return 0, &IndexError{Index: index, Len: len(d.units)}
	}
	return d.units[index], nil
}

// HasValue reports whether the node at index terminates a key.
func (d *Dictionary) HasValue(index uint32) (bool, error) {
	u, err := d.unit(index)
	if err != nil {
		return false, err
	}
	return HasLeaf(u), nil
}

// Value returns the value attached to the node at index. The node must
// terminate a key.
func (d *Dictionary) Value(index uint32) (uint32, error) {
	u, err := d.unit(index)
	if err != nil {
		return 0, err
	}
	leaf, err := d.unit((index ^ Offset(u)) & PrecisionMask)
	if err != nil {
		return 0, err
	}
	return Value(leaf), nil
}

// Follow follows the transition labelled label out of the node at index.
// It returns false when there is no such transition.
func (d *Dictionary) Follow(label byte, index uint32) (uint32, bool, error) {
	// Stored keys never contain NUL; slot base^0 belongs to the value unit.
	if label == 0 {
		return 0, false, nil
	}
	u, err := d.unit(index)
	if err != nil {
		return 0, false, err
	}
	next := (index ^ Offset(u) ^ uint32(label)) & PrecisionMask
	nu, err := d.unit(next)
	if err != nil {
		return 0, false, err
	}
	if Label(nu) != uint32(label) {
		return 0, false, nil
	}
	return next, true, nil
}

// FollowBytes follows key byte by byte starting at index. It stops at the
// first missing transition.
func (d *Dictionary) FollowBytes(key []byte, index uint32) (uint32, bool, error) {
	return follow(d, key, index)
}

// follow walks string and byte-slice keys with the same loop.
func follow[K ~string | ~[]byte](d *Dictionary, key K, index uint32) (uint32, bool, error) {
	for i := 0; i < len(key); i++ {
		var ok bool
		var err error
		index, ok, err = d.Follow(key[i], index)
		if err != nil || !ok {
			return 0, false, err
		}
	}
	return index, true, nil
}

func find[K ~string | ~[]byte](d *Dictionary, key K) (uint32, bool, error) {
	index, ok, err := follow(d, key, d.root)
	if err != nil || !ok {
		return 0, false, err
	}
	if ok, err = d.HasValue(index); err != nil || !ok {
		return 0, false, err
	}
	v, err := d.Value(index)
	if err != nil {
		return 0, false, err
	}
	return v, true, nil
}

// Lookup returns the value stored for key. Unlike Find, a corrupt unit
// array is reported as an *IndexError instead of a panic.
func (d *Dictionary) Lookup(key []byte) (uint32, bool, error) {
	return find(d, key)
}

// Find returns the value stored for key, and false if key is not stored.
// It panics with an *IndexError if the dictionary is corrupt.
func (d *Dictionary) Find(key string) (uint32, bool) {
	v, ok, err := find(d, key)
	if err != nil {
		panic(err)
	}
	return v, ok
}

// Contains reports whether key is stored in the dictionary.
// It panics with an *IndexError if the dictionary is corrupt.
func (d *Dictionary) Contains(key string) bool {
	index, ok, err := follow(d, key, d.root)
	if err == nil && ok {
		ok, err = d.HasValue(index)
	}
	if err != nil {
		panic(err)
	}
	return ok
}

// Prefixes returns every stored key that is a prefix of key, shortest
// first, including key itself and the empty key when they are stored.
func (d *Dictionary) Prefixes(key string) ([]FindResult, error) {
	var results []FindResult
	index := d.root
	for pos := 0; ; pos++ {
		final, err := d.HasValue(index)
		if err != nil {
			return nil, err
		}
		if final {
			v, err := d.Value(index)
			if err != nil {
				return nil, err
			}
			results = append(results, FindResult{Word: key[:pos], Value: v})
		}
		if pos == len(key) {
			return results, nil
		}

		next, ok, err := d.Follow(key[pos], index)
		if err != nil {
			return nil, err
		}
		if !ok {
			return results, nil
		}
		index = next
	}
}

// Dump writes every non-zero unit with its decoded fields to w.
func (d *Dictionary) Dump(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "units: %d root: %d\n", len(d.units), d.root)
	for i, u := range d.units {
		if u == 0 {
			continue
		}
		if u&isLeafBit != 0 {
			fmt.Fprintf(bw, "%8d value=%d\n", i, Value(u))
			continue
		}
		fmt.Fprintf(bw, "%8d label=%q offset=%d leaf=%v\n", i, byte(Label(u)), Offset(u), HasLeaf(u))
	}
	return bw.Flush()
}
