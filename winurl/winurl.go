// Copyright 2026 The zb Authors
// SPDX-License-Identifier: MIT

// Package winurl implements lexical canonicalization of locator (URL)
// strings in the manner of the Win32 shlwapi Url* API:
// structural parsing, per-scheme slash normalization and dot-segment
// simplification, percent-encoding with scheme-selected policies,
// part extraction, and conversion between locators and Windows paths.
//
// Like [zb.256lights.llc/winpath], every operation is a pure transform.
// Size-checked operations take a capacity in characters that counts the
// terminating NUL slot of the Win32 contract and fail with a
// [*winpath.SizeError] when the result does not fit.
package winurl

import (
	"errors"

	"zb.256lights.llc/winpath"
)

// ErrNotImplemented indicates a flag combination the byte-string entry
// point does not support.
var ErrNotImplemented = errors.New("not implemented")

// ErrNoPart indicates that [GetPart] was asked for a component that the
// locator's scheme cannot carry.
var ErrNoPart = errors.New("no such part")

// Scheme identifies a well-known locator scheme.
type Scheme int

// Scheme codes.
const (
	SchemeInvalid Scheme = iota - 1
	SchemeUnknown
	SchemeFTP
	SchemeHTTP
	SchemeGopher
	SchemeMailto
	SchemeNews
	SchemeNNTP
	SchemeTelnet
	SchemeWAIS
	SchemeFile
	SchemeMK
	SchemeHTTPS
	SchemeShell
	SchemeSNews
	SchemeLocal
	SchemeJavaScript
	SchemeVBScript
	SchemeAbout
	SchemeRes
)

var schemeNames = []struct {
	name string
	code Scheme
}{
	{"ftp", SchemeFTP},
	{"http", SchemeHTTP},
	{"gopher", SchemeGopher},
	{"mailto", SchemeMailto},
	{"news", SchemeNews},
	{"nntp", SchemeNNTP},
	{"telnet", SchemeTelnet},
	{"wais", SchemeWAIS},
	{"file", SchemeFile},
	{"mk", SchemeMK},
	{"https", SchemeHTTPS},
	{"shell", SchemeShell},
	{"snews", SchemeSNews},
	{"local", SchemeLocal},
	{"javascript", SchemeJavaScript},
	{"vbscript", SchemeVBScript},
	{"about", SchemeAbout},
	{"res", SchemeRes},
}

// schemeCode maps a scheme name to its code, ignoring ASCII case.
func schemeCode(name string) Scheme {
	for _, s := range schemeNames {
		if equalFold(name, s.name) {
			return s.code
		}
	}
	return SchemeUnknown
}

// String returns the lowercase name of the scheme,
// or a placeholder for [SchemeUnknown] and [SchemeInvalid].
func (s Scheme) String() string {
	for _, e := range schemeNames {
		if e.code == s {
			return e.name
		}
	}
	if s == SchemeInvalid {
		return "invalid"
	}
	return "unknown"
}

// Parsed is the result of [Parse]:
// a locator split at its first colon.
type Parsed struct {
	// Scheme is the scheme name without the trailing colon.
	Scheme string
	// Suffix is everything after the colon.
	Suffix string
	// Code is the well-known code for Scheme,
	// or [SchemeUnknown] if the scheme is not in the table.
	Code Scheme
}

// Parse splits a locator into its scheme and suffix.
// A scheme is two or more ASCII alphanumeric, hyphen, plus,
// or period characters followed by a colon;
// anything else fails with [winpath.ErrInvalidArgument].
func Parse(url string) (Parsed, error) {
	i := 0
	for i < len(url) && (isAlnum(url[i]) || url[i] == '-' || url[i] == '+' || url[i] == '.') {
		i++
	}
	if i >= len(url) || url[i] != ':' || i <= 1 {
		return Parsed{}, winpath.ErrInvalidArgument
	}
	return Parsed{
		Scheme: url[:i],
		Suffix: url[i+1:],
		Code:   schemeCode(url[:i]),
	}, nil
}

// IsURL reports whether path parses as a locator.
func IsURL(path string) bool {
	_, err := Parse(path)
	return err == nil
}

// IsOpaque reports whether url belongs to a scheme whose suffix is not
// hierarchical (mailto, shell, javascript, vbscript, about).
func IsOpaque(url string) bool {
	p, err := Parse(url)
	if err != nil {
		return false
	}
	switch p.Code {
	case SchemeMailto, SchemeShell, SchemeJavaScript, SchemeVBScript, SchemeAbout:
		return true
	}
	return false
}

// IsFileURL reports whether url starts with "file:", ignoring ASCII case.
func IsFileURL(url string) bool {
	return len(url) >= 5 && equalFold(url[:5], "file:")
}

// IsDirectory reports whether url ends in a forward or backward slash.
func IsDirectory(url string) bool {
	return url != "" && (url[len(url)-1] == '/' || url[len(url)-1] == '\\')
}

// checkSize reports whether a result of length n fits a buffer of the
// given capacity.
func checkSize(n, size int) error {
	if n+1 > size {
		return &winpath.SizeError{Needed: n + 1}
	}
	return nil
}

func isAlpha(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isAlnum(c byte) bool {
	return isAlpha(c) || isDigit(c)
}

func isHexDigit(c byte) bool {
	return isDigit(c) || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func unhex(c byte) byte {
	switch {
	case isDigit(c):
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}

func toUpper(c byte) byte {
	if 'a' <= c && c <= 'z' {
		return c - ('a' - 'A')
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
