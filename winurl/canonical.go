// Copyright 2026 The zb Authors
// SPDX-License-Identifier: MIT

package winurl

import (
	"bytes"
	"strings"

	"zb.256lights.llc/winpath"
)

// CanonicalizeFlags controls [Canonicalize].
type CanonicalizeFlags struct {
	// DontSimplify copies the location verbatim
	// instead of resolving "." and ".." segments.
	DontSimplify bool
	// Unescape decodes percent-escapes after simplification.
	Unescape bool
	// FileUsePathURL renders file locators with backslashes
	// and no authority ("file://C:\dir" style).
	FileUsePathURL bool
	// WininetCompat renders file locators the way WinINet does.
	WininetCompat bool
	// EscapeUnsafe percent-encodes unsafe characters in the result.
	EscapeUnsafe bool
	// EscapeSpacesOnly, EscapePercent, DontEscapeExtraInfo, and
	// EscapeSegmentOnly pass the matching controls to the final
	// escaping pass. Setting any of them enables that pass.
	EscapeSpacesOnly    bool
	EscapePercent       bool
	DontEscapeExtraInfo bool
	EscapeSegmentOnly   bool
}

// Canonicalize rewrites a locator into canonical form:
// it removes embedded tab characters,
// normalizes slash direction per scheme,
// resolves "." and ".." segments against the location root
// (never backing up past it),
// trims trailing characters at or below space,
// and optionally decodes or re-encodes percent-escapes.
// A bare drive path such as "c:\dir" gains a "file:///" prefix.
func Canonicalize(url string, size int, flags CanonicalizeFlags) (string, error) {
	if size <= 0 {
		return "", winpath.ErrInvalidArgument
	}
	if url == "" {
		return "", nil
	}

	u := strings.ReplaceAll(url, "\t", "")

	isFileURL := strings.HasPrefix(u, "file:")
	fileUsePathURL := flags.FileUsePathURL
	escapeUnsafe := flags.EscapeUnsafe

	// slash is the separator the scheme prefers;
	// zero leaves separators as they appear.
	var slash byte
	if strings.HasPrefix(u, "http:") || isFileURL {
		slash = '/'
	}
	if (fileUsePathURL || flags.WininetCompat) && isFileURL {
		slash = '\\'
	}
	if strings.HasPrefix(u, "res:") {
		fileUsePathURL = false
		slash = 0
	}

	// The machine below walks these states:
	//   0  initial
	//   1  two or more scheme characters seen
	//   2  scheme complete (colon seen)
	//   3  no location; copy the rest verbatim
	//   4  authority marker ("//") seen
	//   5  authority complete
	//   6  at location root; resolve dot segments
	dst := make([]byte, 0, len(u)+len("file:///"))
	i := 0
	state := 0

	if len(u) > 1 && u[1] == ':' {
		// Bare drive path.
		dst = append(dst, "file:///"...)
		if fileUsePathURL || flags.WininetCompat {
			slash = '\\'
			dst = dst[:len(dst)-1]
		} else {
			escapeUnsafe = true
		}
		state = 5
		isFileURL = true
	} else if u[0] == '/' {
		state = 5
		isFileURL = true
	}

	for i < len(u) {
		switch state {
		case 0:
			if !isAlnum(u[i]) {
				state = 3
				break
			}
			dst = append(dst, u[i])
			i++
			if i >= len(u) || !isAlnum(u[i]) {
				state = 3
				break
			}
			dst = append(dst, u[i])
			i++
			state = 1
		case 1:
			dst = append(dst, u[i])
			if u[i] == ':' {
				state = 2
			}
			i++
		case 2:
			dst = append(dst, u[i])
			i++
			if i >= len(u) || u[i] != '/' {
				state = 6
				break
			}
			dst = append(dst, u[i])
			i++
			if fileUsePathURL && isFileURL && strings.HasPrefix(u[i:], "localhost") {
				i += len("localhost")
				for i < len(u) && u[i] == '\\' {
					i++
				}
			}
			if fileUsePathURL && i < len(u) && u[i] == '/' {
				i++
			} else if isFileURL {
				body := i
				for body < len(u) && u[body] == '/' {
					body++
				}
				if body < len(u) && isAlnum(u[body]) && body+1 < len(u) && u[body+1] == ':' {
					if !flags.WininetCompat && !fileUsePathURL {
						if slash != 0 {
							dst = append(dst, slash)
						} else {
							dst = append(dst, '/')
						}
					}
				} else if flags.WininetCompat {
					if i < len(u) && u[i] == '/' && (i+1 >= len(u) || u[i+1] != '/') {
						dst = append(dst, '\\')
					} else {
						dst = append(dst, '\\', '\\')
					}
				} else if i < len(u) && u[i] == '/' && (i+1 >= len(u) || u[i+1] != '/') {
					if slash != 0 {
						dst = append(dst, slash)
					} else {
						dst = append(dst, '/')
					}
				}
				i = body
			}
			state = 4
		case 3:
			start := len(dst)
			dst = append(dst, u[i:]...)
			i = len(u)
			if slash != 0 {
				for j := start; j < len(dst); j++ {
					if dst[j] == '/' || dst[j] == '\\' {
						dst[j] = slash
					}
				}
			}
		case 4:
			if !isAlnum(u[i]) && u[i] != '-' && u[i] != '.' && u[i] != ':' {
				state = 3
				break
			}
			for i < len(u) && (isAlnum(u[i]) || u[i] == '-' || u[i] == '.' || u[i] == ':') {
				dst = append(dst, u[i])
				i++
			}
			state = 5
			if i >= len(u) {
				if slash != 0 {
					dst = append(dst, slash)
				} else {
					dst = append(dst, '/')
				}
			}
		case 5:
			if u[i] != '/' && u[i] != '\\' {
				state = 3
				break
			}
			for i < len(u) && (u[i] == '/' || u[i] == '\\') {
				if slash != 0 {
					dst = append(dst, slash)
				} else {
					dst = append(dst, u[i])
				}
				i++
			}
			state = 6
		case 6:
			if flags.DontSimplify {
				state = 3
				break
			}

			// The character just written is the root;
			// ".." never resolves past it.
			root := len(dst) - 1
			for i < len(u) {
				mp := strings.IndexAny(u[i:], "/\\")
				if mp < 0 {
					dst = append(dst, u[i:]...)
					i = len(u)
					continue
				}
				dst = append(dst, u[i:i+mp]...)
				i += mp
				if slash != 0 {
					dst = append(dst, slash)
				} else {
					dst = append(dst, u[i])
				}
				i++

				for i < len(u) && u[i] == '.' {
					if i+1 < len(u) && (u[i+1] == '/' || u[i+1] == '\\') {
						// "/./": drop it.
						i += 2
					} else if i+1 < len(u) && u[i+1] == '.' &&
						(i+2 >= len(u) || u[i+2] == '/' || u[i+2] == '\\' || u[i+2] == '?' || u[i+2] == '#') {
						// "/../": back up one segment if one remains.
						win := dst[root : len(dst)-1]
						b1 := bytes.LastIndexByte(win, '/')
						b2 := bytes.LastIndexByte(win, '\\')
						b := b1
						if b2 >= 0 && (b1 < 0 || b2 < b1) {
							b = b2
						}
						if b < 0 {
							// No segment to pop. A zero slash leaves a
							// NUL here that truncates the result below.
							dst[len(dst)-1] = slash
							break
						}
						dst = dst[:root+b+1]
						if i+2 < len(u) && (u[i+2] == '/' || u[i+2] == '\\') {
							i += 3
						} else {
							i += 2
						}
					} else {
						break
					}
				}
			}
		}
	}

	if j := bytes.IndexByte(dst, 0); j >= 0 {
		dst = dst[:j]
	}
	for len(dst) > 0 && dst[len(dst)-1] <= ' ' {
		dst = dst[:len(dst)-1]
	}

	if flags.Unescape || (fileUsePathURL && strings.HasPrefix(u, "file:")) {
		dst = UnescapeInPlace(dst, UnescapeFlags{})
	}

	if escapeUnsafe || flags.EscapeSpacesOnly || flags.EscapePercent ||
		flags.DontEscapeExtraInfo || flags.EscapeSegmentOnly {
		return Escape(string(dst), size, EscapeFlags{
			SpacesOnly:          flags.EscapeSpacesOnly,
			SegmentOnly:         flags.EscapeSegmentOnly,
			DontEscapeExtraInfo: flags.DontEscapeExtraInfo,
			Percent:             flags.EscapePercent,
		})
	}
	if err := checkSize(len(dst), size); err != nil {
		return "", err
	}
	return string(dst), nil
}

// Compare compares two locators byte-wise.
// With ignoreSlash set, one trailing forward slash on either locator is
// ignored. The result follows [strings.Compare].
func Compare(url1, url2 string, ignoreSlash bool) int {
	if ignoreSlash {
		url1 = strings.TrimSuffix(url1, "/")
		url2 = strings.TrimSuffix(url2, "/")
	}
	return strings.Compare(url1, url2)
}
