// Copyright 2026 The zb Authors
// SPDX-License-Identifier: MIT

// Package winpath implements lexical canonicalization of Windows path strings:
// root classification, "."/".." segment resolution,
// extended-length ("\\?\") prefix handling,
// and a family of size-checked editing operations
// that mirror the fixed-capacity contracts of the Win32 PathCch API.
//
// No function in this package touches the file system.
// Every operation is a pure transform of its string arguments.
//
// Size-checked operations take a capacity in characters.
// The capacity counts the terminating NUL slot of the Win32 contract:
// a result r fits in a buffer of capacity size if len(r) < size.
// When a result does not fit, operations fail with a [*SizeError]
// that reports the exact capacity a retry needs.
package winpath

import (
	"errors"
	"fmt"
)

// Separator is the canonical Windows path separator.
const Separator = '\\'

const (
	// MaxPath is the legacy short-path limit in characters,
	// including the terminating NUL.
	// Paths at or beyond this limit need extended-length handling.
	MaxPath = 260

	// MaxCch is the absolute maximum buffer capacity in characters
	// accepted by any operation in this package.
	MaxCch = 0x8000
)

// ErrInvalidArgument indicates a malformed argument:
// a conflicting flag combination, an empty required string,
// or a capacity that is zero or exceeds [MaxCch].
var ErrInvalidArgument = errors.New("invalid argument")

// ErrNameTooLong indicates a path whose length exceeds [MaxPath]
// without long-path handling enabled, or exceeds [MaxCch] unconditionally.
var ErrNameTooLong = errors.New("filename exceeds range")

// A SizeError reports that a result does not fit the caller's capacity.
// Needed is the capacity in characters (including the terminating NUL slot)
// that would make the operation succeed.
type SizeError struct {
	Needed int
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("insufficient buffer (need %d characters)", e.Needed)
}

// checkSize reports whether a result of length n fits a buffer of the
// given capacity.
func checkSize(n, size int) error {
	if n+1 > size {
		return &SizeError{Needed: n + 1}
	}
	return nil
}

func isAlpha(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isAlnum(c byte) bool {
	return isAlpha(c) || '0' <= c && c <= '9'
}

func toUpper(c byte) byte {
	if 'a' <= c && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

func toLower(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// equalFold reports whether s and t are equal under ASCII case folding.
func equalFold(s, t string) bool {
	if len(s) != len(t) {
		return false
	}
	for i := 0; i < len(s); i++ {
		if toUpper(s[i]) != toUpper(t[i]) {
			return false
		}
	}
	return true
}
