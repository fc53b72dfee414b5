package dfa

import (
	"github.com/coregx/tinydfa/simd"
)

// maxEscapeBytes is the most escape bytes memchr3 can search for at once.
const maxEscapeBytes = 3

// escapeBytes returns the bytes on which state id leaves itself, including
// bytes with no transition. ok is false if there are more than
// maxEscapeBytes of them.
func (d *DFA) escapeBytes(id StateID) (escapes []byte, ok bool) {
	escapes = make([]byte, 0, maxEscapeBytes)
	row := &d.trans[id]
	for b := 0; b < 256; b++ {
		if row[b] == id {
			continue
		}
		if len(escapes) == maxEscapeBytes {
			return nil, false
		}
		escapes = append(escapes, byte(b))
	}
	return escapes, true
}

// computeAccel detects accelerated states. It leaves d.accel nil when no
// state qualifies so Match can take the plain loop.
func (d *DFA) computeAccel() {
	d.accel = nil
	if !d.accelerate {
		return
	}

	var accel [][]byte
	for id := range d.trans {
		escapes, ok := d.escapeBytes(StateID(id))
		if !ok {
			continue
		}
		if accel == nil {
			accel = make([][]byte, len(d.trans))
		}
		accel[id] = escapes
	}
	d.accel = accel
}

// skipToEscape returns the offset of the first escape byte in haystack, or
// -1 if there is none.
func skipToEscape(haystack []byte, escapes []byte) int {
	switch len(escapes) {
	case 0:
		return -1
	case 1:
		return simd.Memchr(haystack, escapes[0])
	case 2:
		return simd.Memchr2(haystack, escapes[0], escapes[1])
	default:
		return simd.Memchr3(haystack, escapes[0], escapes[1], escapes[2])
	}
}
