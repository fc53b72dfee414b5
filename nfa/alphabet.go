package nfa

// ByteClasses maps each byte value to its equivalence class.
//
// Two bytes share a class when no edge of the NFA can tell them apart, so
// every DFA state derived from the NFA moves on them identically. Subset
// construction and minimization evaluate one representative per class
// instead of all 256 bytes.
//
// Example for pattern (a|b)*c:
//   - one singleton class each for 'a', 'b' and 'c'
//   - the gaps between them (0x00-0x60, 0x64-0xff) form the remaining classes
type ByteClasses struct {
	classes [256]byte
}

// NewByteClasses creates a new ByteClasses where all bytes are in class 0.
func NewByteClasses() ByteClasses {
	return ByteClasses{}
}

// SingletonByteClasses creates ByteClasses where each byte is its own class.
func SingletonByteClasses() ByteClasses {
	var bc ByteClasses
	for i := 0; i < 256; i++ {
		bc.classes[i] = byte(i)
	}
	return bc
}

// Get returns the equivalence class for the given byte.
func (bc *ByteClasses) Get(b byte) byte {
	return bc.classes[b]
}

// AlphabetLen returns the total number of equivalence classes.
func (bc *ByteClasses) AlphabetLen() int {
	// Classes are assigned in increasing byte order, so the last byte
	// always carries the highest class.
	return int(bc.classes[255]) + 1
}

// IsSingleton returns true if each byte is its own equivalence class.
func (bc *ByteClasses) IsSingleton() bool {
	return bc.AlphabetLen() == 256
}

// IsEmpty returns true if all bytes are in the same equivalence class.
func (bc *ByteClasses) IsEmpty() bool {
	return bc.AlphabetLen() == 1
}

// Representatives returns the smallest byte of every class, in class order.
func (bc *ByteClasses) Representatives() []byte {
	reps := make([]byte, 0, bc.AlphabetLen())
	reps = append(reps, 0)
	for b := 1; b < 256; b++ {
		if bc.classes[b] != bc.classes[b-1] {
			reps = append(reps, byte(b))
		}
	}
	return reps
}

// Elements returns all bytes that belong to the given equivalence class.
func (bc *ByteClasses) Elements(class byte) []byte {
	var elems []byte
	for b := 0; b < 256; b++ {
		if bc.classes[b] == class {
			elems = append(elems, byte(b))
		}
	}
	return elems
}

// ByteClassSet records class boundaries while the NFA is being built.
//
// Bit i is set when byte i ends a class, i.e. byte i+1 starts a new one.
type ByteClassSet struct {
	bits [4]uint64
}

// NewByteClassSet creates an empty ByteClassSet with no boundaries.
func NewByteClassSet() *ByteClassSet {
	return &ByteClassSet{}
}

// SetRange marks [start, end] as distinguishable from its neighbours.
func (bcs *ByteClassSet) SetRange(start, end byte) {
	if start > 0 {
		bcs.setBit(start - 1)
	}
	bcs.setBit(end)
}

// SetByte marks a single byte as distinguishable from its neighbours.
func (bcs *ByteClassSet) SetByte(b byte) {
	bcs.SetRange(b, b)
}

func (bcs *ByteClassSet) setBit(b byte) {
	bcs.bits[b/64] |= 1 << (b % 64)
}

func (bcs *ByteClassSet) getBit(b byte) bool {
	return bcs.bits[b/64]&(1<<(b%64)) != 0
}

// ByteClasses converts the boundary set into a ByteClasses lookup table.
func (bcs *ByteClassSet) ByteClasses() ByteClasses {
	var bc ByteClasses
	class := byte(0)
	for b := 0; b < 256; b++ {
		bc.classes[b] = class
		if bcs.getBit(byte(b)) {
			class++
		}
	}
	return bc
}
