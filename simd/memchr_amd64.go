//go:build amd64

// Package simd provides fast byte searching for DFA acceleration and
// prefiltering. The package automatically selects the best implementation
// based on available CPU features and falls back to pure Go SWAR (SIMD
// Within A Register) code everywhere else.
//
// On x86-64 with AVX2, large inputs are searched with bytes.IndexByte, which
// the Go runtime implements with 256-bit vector instructions. Searching for
// two or three needles runs one vectorised pass per needle over bounded
// windows, so an early hit for one needle caps the scan for the others.
package simd

import (
	"bytes"

	"golang.org/x/sys/cpu"
)

// CPU feature detection flags set at package initialization.
var (
	// hasAVX2 indicates whether the CPU supports AVX2 instructions (256-bit SIMD).
	hasAVX2 = cpu.X86.HasAVX2
)

const (
	// wideThreshold is the input size from which vectorised passes beat SWAR.
	wideThreshold = 64

	// wideWindow bounds each multi-needle pass so a needle that occurs early
	// is not preceded by a full scan for the others.
	wideWindow = 4096
)

// Memchr returns the index of the first instance of needle in haystack,
// or -1 if needle is not present in haystack.
//
// Example:
//
//	pos := simd.Memchr([]byte("hello world"), 'o')
//	// pos == 4
func Memchr(haystack []byte, needle byte) int {
	if len(haystack) == 0 {
		return -1
	}
	if hasAVX2 && len(haystack) >= wideThreshold {
		return bytes.IndexByte(haystack, needle)
	}
	return memchrGeneric(haystack, needle)
}

// Memchr2 returns the index of the first instance of either needle1 or needle2
// in haystack, or -1 if neither is present.
//
// Example:
//
//	pos := simd.Memchr2([]byte("hello world"), 'w', 'o')
//	// pos == 4
func Memchr2(haystack []byte, needle1, needle2 byte) int {
	if len(haystack) == 0 {
		return -1
	}
	if hasAVX2 && len(haystack) >= wideThreshold {
		needles := [2]byte{needle1, needle2}
		return memchrWide(haystack, needles[:])
	}
	return memchr2Generic(haystack, needle1, needle2)
}

// Memchr3 returns the index of the first instance of needle1, needle2, or
// needle3 in haystack, or -1 if none are present.
//
// Example searching for whitespace:
//
//	pos := simd.Memchr3([]byte("hello\tworld\nfoo"), ' ', '\t', '\n')
//	// pos == 5
func Memchr3(haystack []byte, needle1, needle2, needle3 byte) int {
	if len(haystack) == 0 {
		return -1
	}
	if hasAVX2 && len(haystack) >= wideThreshold {
		needles := [3]byte{needle1, needle2, needle3}
		return memchrWide(haystack, needles[:])
	}
	return memchr3Generic(haystack, needle1, needle2, needle3)
}

// memchrWide finds the first occurrence of any needle, scanning window by
// window with one vectorised pass per needle.
func memchrWide(haystack []byte, needles []byte) int {
	for start := 0; start < len(haystack); start += wideWindow {
		window := haystack[start:min(start+wideWindow, len(haystack))]
		limit := len(window)
		found := -1
		for _, n := range needles {
			if i := bytes.IndexByte(window[:limit], n); i >= 0 {
				found, limit = i, i
			}
		}
		if found >= 0 {
			return start + found
		}
	}
	return -1
}
