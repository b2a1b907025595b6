package dawg

import (
	"fmt"
	"sort"
)

// buildUnits lays out a plain trie over words as a double-array in the
// dictionary unit format. Blocks of 256 units are allocated as needed so
// every transition target stays inside the array, as in real dictionaries.
func buildUnits(words map[string]uint32) []uint32 {
	keys := make([]string, 0, len(words))
	for k := range words {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	b := &unitBuilder{used: map[uint32]bool{0: true}, bases: map[uint32]bool{}}
	b.grow(0)
	b.place(0, "", keys, words)
	return b.units
}

type unitBuilder struct {
	units []uint32
	used  map[uint32]bool
	bases map[uint32]bool
}

func (b *unitBuilder) grow(index uint32) {
	for uint32(len(b.units)) <= index {
		b.units = append(b.units, make([]uint32, 256)...)
	}
}

// place assigns the children of the node at index, whose path is prefix.
// keys holds every stored key that starts with prefix.
func (b *unitBuilder) place(index uint32, prefix string, keys []string, words map[string]uint32) {
	var labels []uint32
	terminal := false
	for _, k := range keys {
		if len(k) == len(prefix) {
			terminal = true
			continue
		}
		l := uint32(k[len(prefix)])
		if len(labels) == 0 || labels[len(labels)-1] != l {
			labels = append(labels, l)
		}
	}
	if terminal {
		labels = append([]uint32{0}, labels...)
	}
	if len(labels) == 0 {
		return
	}

	base := b.findBase(labels)
	offset := index ^ base
	if offset >= 1<<21 {
		panic(fmt.Sprintf("offset %d does not fit", offset))
	}
	b.bases[base] = true
	b.units[index] |= offset << 10
	if terminal {
		b.units[index] |= hasLeafBit
	}
	for _, l := range labels {
		child := base ^ l
		b.grow(child)
		b.used[child] = true
		if l == 0 {
			b.units[child] = isLeafBit | words[prefix]
		} else {
			b.units[child] = l
		}
	}

	for _, l := range labels {
		if l == 0 {
			continue
		}
		childPrefix := prefix + string([]byte{byte(l)})
		var childKeys []string
		for _, k := range keys {
			if len(k) > len(prefix) && k[len(prefix)] == byte(l) {
				childKeys = append(childKeys, k)
			}
		}
		b.place(base^l, childPrefix, childKeys, words)
	}
}

func (b *unitBuilder) findBase(labels []uint32) uint32 {
	for base := uint32(256); ; base++ {
		if b.bases[base] {
			continue
		}
		free := true
		for _, l := range labels {
			if b.used[base^l] {
				free = false
				break
			}
		}
		if free {
			return base
		}
	}
}
