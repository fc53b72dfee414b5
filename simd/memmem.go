package simd

import "bytes"

// Memmem returns the index of the first instance of needle in haystack,
// or -1 if needle is not present in haystack.
//
// It is equivalent to bytes.Index. Candidates are found by searching for
// the rarest byte of needle with Memchr and verified in place, which skips
// most of the haystack when the rare byte really is rare.
//
// Example:
//
//	pos := simd.Memmem([]byte("aaaaaabaaaa"), []byte("aab"))
//	// pos == 4
func Memmem(haystack, needle []byte) int {
	switch {
	case len(needle) == 0:
		return 0
	case len(needle) > len(haystack):
		return -1
	case len(needle) == 1:
		return Memchr(haystack, needle[0])
	}

	rare, offset := RareByte(needle)
	last := len(haystack) - len(needle)
	for pos := offset; pos < len(haystack); {
		i := Memchr(haystack[pos:], rare)
		if i < 0 {
			return -1
		}
		start := pos + i - offset
		if start > last {
			return -1
		}
		if bytes.Equal(haystack[start:start+len(needle)], needle) {
			return start
		}
		pos += i + 1
	}
	return -1
}
