package dawg

// A unit is one packed 32-bit trie record. Layout:
//
//	bits 0..7    label byte
//	bit  8       node terminates a key (has a value unit)
//	bit  9       offset field is stored shifted right by 8
//	bits 10..31  offset field
//
// A value unit has bit 31 set and keeps the value in bits 0..30.
const (
	// PrecisionMask bounds every computed unit index.
	PrecisionMask uint32 = 0xFFFFFFFF

	hasLeafBit   uint32 = 1 << 8
	extensionBit uint32 = 1 << 9
	isLeafBit    uint32 = 1 << 31
)

// HasLeaf reports whether the unit terminates a key.
func HasLeaf(unit uint32) bool {
	return unit&hasLeafBit != 0
}

// Value returns the value stored in a value unit.
func Value(unit uint32) uint32 {
	return unit &^ isLeafBit & PrecisionMask
}

// Label returns the label of a unit. Value units keep bit 31 so that they
// never compare equal to a byte.
func Label(unit uint32) uint32 {
	return unit & (isLeafBit | 0xFF) & PrecisionMask
}

// Offset returns the transition base of a unit.
func Offset(unit uint32) uint32 {
	return (unit >> 10) << ((unit & extensionBit) >> 6) & PrecisionMask
}
