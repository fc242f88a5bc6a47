// Copyright 2026 The zb Authors
// SPDX-License-Identifier: MIT

package winurl

import (
	"unicode/utf8"

	"zb.256lights.llc/winpath"
)

// EscapeFlags controls [Escape].
type EscapeFlags struct {
	// SpacesOnly escapes only space characters
	// and suppresses every other control in this struct.
	SpacesOnly bool
	// SegmentOnly treats the whole input as a single path segment:
	// slash, question mark, and hash all escape,
	// and no scheme-specific policy is consulted.
	SegmentOnly bool
	// DontEscapeExtraInfo leaves everything from the first '#' or '?'
	// onward untouched.
	// It is implied whenever SpacesOnly is unset.
	DontEscapeExtraInfo bool
	// Percent escapes literal '%' characters.
	Percent bool
	// UTF8 re-encodes non-ASCII input as UTF-8 before escaping,
	// substituting U+FFFD for invalid byte sequences.
	UTF8 bool
}

// Per-scheme escaping policy bits.
const (
	escBashAsSlash = 1 << iota
	escCollapseSlashes
	escEscapeSlash
	escEscapeHash
	escEscapeQuestion
	escStopOnHash
	escStopOnQuestion
)

// needsEscape reports whether c must be percent-encoded
// under the given flags and scheme policy.
func needsEscape(c byte, flags EscapeFlags, policy uint) bool {
	if flags.SpacesOnly {
		return c == ' '
	}
	if flags.Percent && c == '%' {
		return true
	}
	if c <= 31 || c >= 127 {
		return true
	}
	if isAlnum(c) {
		return false
	}
	switch c {
	case ' ', '<', '>', '"', '{', '}', '|', '\\', '^', ']', '[', '`', '&':
		return true
	case '/':
		return policy&escEscapeSlash != 0
	case '?':
		return policy&escEscapeQuestion != 0
	case '#':
		return policy&escEscapeHash != 0
	}
	return false
}

// escapePolicy selects the scheme-specific policy bits for url.
func escapePolicy(url string, flags EscapeFlags) (policy uint, parsed Parsed, parsedOK bool) {
	if flags.SegmentOnly {
		return escEscapeQuestion | escEscapeHash | escEscapeSlash, Parsed{}, false
	}
	p, err := Parse(url)
	scheme := SchemeInvalid
	if err == nil {
		parsed = p
		parsedOK = true
		scheme = p.Code
	}
	if flags.DontEscapeExtraInfo {
		policy = escStopOnHash | escStopOnQuestion
	}
	switch scheme {
	case SchemeFile:
		policy |= escBashAsSlash | escCollapseSlashes | escEscapeHash
		policy &^= escStopOnHash
	case SchemeHTTP, SchemeHTTPS:
		policy |= escBashAsSlash
		if parsed.Suffix == "" || (parsed.Suffix[0] != '/' && parsed.Suffix[0] != '\\') {
			policy |= escEscapeSlash
		}
	case SchemeMailto:
		policy |= escEscapeSlash | escEscapeQuestion | escEscapeHash
		policy &^= escStopOnQuestion | escStopOnHash
	case SchemeInvalid:
	default:
		if parsed.Suffix == "" || parsed.Suffix[0] != '/' {
			policy |= escEscapeSlash
		}
	}
	return policy, parsed, parsedOK
}

const hexDigits = "0123456789ABCDEF"

func appendEscaped(dst []byte, c byte) []byte {
	return append(dst, '%', hexDigits[c>>4], hexDigits[c&0xf])
}

// Escape percent-encodes the unsafe characters of a locator.
// The set of characters considered unsafe follows a per-scheme policy:
// the file scheme converts backslashes and collapses slash runs
// (including "file://localhost/" into "file:///"),
// http and https convert backslashes,
// and mailto escapes slash, question mark, and hash outright.
// Unless SpacesOnly is set,
// escaping stops at the first '#' or '?' the policy does not claim.
func Escape(url string, size int, flags EscapeFlags) (string, error) {
	if size <= 0 {
		return "", winpath.ErrInvalidArgument
	}

	if flags.SpacesOnly {
		flags.DontEscapeExtraInfo = false
		flags.Percent = false
		flags.SegmentOnly = false
	} else {
		flags.DontEscapeExtraInfo = true
	}
	policy, parsed, parsedOK := escapePolicy(url, flags)

	out := make([]byte, 0, len(url)+8)
	stop := false
	i := 0
	for i < len(url) {
		if policy&escCollapseSlashes != 0 && parsedOK && i == len(parsed.Scheme)+1 {
			slashes := 0
			for i < len(url) && (url[i] == '/' || url[i] == '\\') {
				slashes++
				i++
			}
			if slashes == 2 && len(url)-i >= 9 && equalFold(url[i:i+9], "localhost") {
				if len(url) > i+9 && (url[i+9] == '/' || url[i+9] == '\\') {
					i += 10
				}
				slashes = 3
			}
			switch slashes {
			case 0:
				// No run to collapse; fall through to the character below.
			case 1, 3:
				out = append(out, "///"...)
				continue
			default:
				out = append(out, "//"...)
				continue
			}
		}

		c := url[i]
		if c == '#' && policy&escStopOnHash != 0 {
			stop = true
		}
		if c == '?' && policy&escStopOnQuestion != 0 {
			stop = true
		}
		if c == '\\' && policy&escBashAsSlash != 0 && !stop {
			c = '/'
		}

		if needsEscape(c, flags, policy) && !stop {
			if flags.UTF8 && c >= 0x80 {
				r, n := utf8.DecodeRuneInString(url[i:])
				if r == utf8.RuneError && n <= 1 {
					out = appendEscaped(out, 0xef)
					out = appendEscaped(out, 0xbf)
					out = appendEscaped(out, 0xbd)
				} else {
					var buf [utf8.UTFMax]byte
					for _, b := range buf[:utf8.EncodeRune(buf[:], r)] {
						out = appendEscaped(out, b)
					}
				}
				i += n
				continue
			}
			out = appendEscaped(out, c)
		} else {
			out = append(out, c)
		}
		i++
	}

	if err := checkSize(len(out), size); err != nil {
		return "", err
	}
	return string(out), nil
}

// EscapeBytes is the byte-string entry point for [Escape].
// It fails with [ErrNotImplemented] if UTF-8 escaping is requested.
func EscapeBytes(url []byte, size int, flags EscapeFlags) ([]byte, error) {
	if flags.UTF8 {
		return nil, ErrNotImplemented
	}
	s, err := Escape(string(url), size, flags)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// UnescapeFlags controls [Unescape] and [UnescapeInPlace].
type UnescapeFlags struct {
	// DontUnescapeExtraInfo leaves everything from the first '#' or '?'
	// onward untouched.
	DontUnescapeExtraInfo bool
}

// Unescape decodes the percent-escapes of a locator.
// A '%' not followed by two hexadecimal digits is copied verbatim.
func Unescape(url string, size int, flags UnescapeFlags) (string, error) {
	if size <= 0 {
		return "", winpath.ErrInvalidArgument
	}
	buf := make([]byte, len(url))
	copy(buf, url)
	out := UnescapeInPlace(buf, flags)
	if err := checkSize(len(out), size); err != nil {
		return "", err
	}
	return string(out), nil
}

// UnescapeInPlace decodes percent-escapes writing through the buffer it
// reads. This aliasing is sound because decoded output is never longer
// than its encoded input. It returns the decoded prefix of buf.
func UnescapeInPlace(buf []byte, flags UnescapeFlags) []byte {
	stop := false
	dst := 0
	for i := 0; i < len(buf); i++ {
		c := buf[i]
		if flags.DontUnescapeExtraInfo && (c == '#' || c == '?') {
			stop = true
		} else if c == '%' && !stop && i+2 < len(buf) && isHexDigit(buf[i+1]) && isHexDigit(buf[i+2]) {
			c = unhex(buf[i+1])<<4 | unhex(buf[i+2])
			i += 2
		}
		buf[dst] = c
		dst++
	}
	return buf[:dst]
}
