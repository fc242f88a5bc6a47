// Copyright 2026 The zb Authors
// SPDX-License-Identifier: MIT

package winpath

import "strings"

// Root classification.
//
// A path may carry one of several kinds of root:
//
//	\                        bare root
//	X:  X:\                  drive
//	\\server\share           UNC
//	\\?\X:\                  device-prefixed drive
//	\\?\UNC\server\share     device-prefixed UNC
//	\\?\Volume{GUID}\        device-prefixed volume
//
// The classifier checks the device-prefixed forms first:
// they share the \\?\ lead-in and must be disambiguated
// before the generic checks can run.

// isPrefixedUNC reports whether path begins with \\?\UNC\
// (case-insensitive).
func isPrefixedUNC(path string) bool {
	return len(path) >= 8 && equalFold(path[:8], `\\?\UNC\`)
}

// isPrefixedDisk reports whether path begins with \\?\X: for a drive
// letter X. The \\?\ lead-in is matched case-sensitively, like the
// original API.
func isPrefixedDisk(path string) bool {
	return len(path) >= 6 && strings.HasPrefix(path, `\\?\`) &&
		isAlpha(path[4]) && path[5] == ':'
}

// isPrefixedVolume reports whether path begins with a
// \\?\Volume{xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx} prefix.
// The GUID body is 38 characters, braces and dashes at fixed offsets.
// Like the original API, the non-dash positions accept any
// alphanumeric character, not only hex digits.
func isPrefixedVolume(path string) bool {
	if len(path) < 48 || !equalFold(path[:10], `\\?\Volume`) {
		return false
	}
	guid := path[10:48]
	for i := 0; i < 38; i++ {
		switch i {
		case 0:
			if guid[i] != '{' {
				return false
			}
		case 9, 14, 19, 24:
			if guid[i] != '-' {
				return false
			}
		case 37:
			if guid[i] != '}' {
				return false
			}
		default:
			if !isAlnum(guid[i]) {
				return false
			}
		}
	}
	return true
}

// rootEnd returns the index of the last character of the path's root,
// not counting any segments, or -1 if the path has no recognizable root.
func rootEnd(path string) int {
	switch {
	case isPrefixedVolume(path):
		if len(path) > 48 && path[48] == '\\' {
			return 48
		}
		return 47
	case isPrefixedUNC(path):
		return 7
	case isPrefixedDisk(path):
		if len(path) > 6 && path[6] == '\\' {
			return 6
		}
		return 5
	case strings.HasPrefix(path, `\\`):
		return 1
	case strings.HasPrefix(path, `\`):
		return 0
	case len(path) >= 2 && isAlpha(path[0]) && path[1] == ':':
		if len(path) > 2 && path[2] == '\\' {
			return 2
		}
		return 1
	}
	return -1
}

// nextSegment scans forward from i to the end of the current segment.
// It returns the index one past the segment's terminating separator
// (or the end of the string) and whether the segment ended with a
// separator.
func nextSegment(path string, i int) (next int, sep bool) {
	for i < len(path) && path[i] != '\\' {
		i++
	}
	if i < len(path) {
		return i + 1, true
	}
	return i, false
}

// isBareUNC reports whether path is a \\-rooted path that is not
// device-prefixed.
func isBareUNC(path string) bool {
	return strings.HasPrefix(path, `\\`) && !strings.HasPrefix(path, `\\?`)
}

// SkipRoot returns the offset of the first character past the path's root.
// For UNC forms the root includes the server and share segments.
// It returns [ErrInvalidArgument] if the path has no root or carries a
// \\?-style prefix that is not a recognized device prefix.
func SkipRoot(path string) (int, error) {
	if path == "" {
		return 0, ErrInvalidArgument
	}
	if strings.HasPrefix(path, `\\?`) &&
		!isPrefixedVolume(path) && !isPrefixedUNC(path) && !isPrefixedDisk(path) {
		return 0, ErrInvalidArgument
	}
	end := rootEnd(path)
	if end < 0 {
		return 0, ErrInvalidArgument
	}
	i := end + 1
	switch {
	case isPrefixedUNC(path):
		i, _ = nextSegment(path, i)
		i, _ = nextSegment(path, i)
	case isBareUNC(path):
		// Skip the server segment, then the mount point,
		// unless the mount point is empty.
		i, _ = nextSegment(path, i)
		if i >= len(path) || path[i] != '\\' {
			i, _ = nextSegment(path, i)
		}
	}
	return i, nil
}

// IsRoot reports whether the path consists of nothing but a root:
// \, X:\, \\server\share, \\?\X:\, \\?\UNC\server\share, or
// \\?\Volume{...}\.
func IsRoot(path string) bool {
	if path == "" {
		return false
	}
	end := rootEnd(path)
	if end < 0 {
		return false
	}
	if isPrefixedUNC(path) || isBareUNC(path) {
		next := end + 1
		if next >= len(path) {
			return true
		}
		n, sep := nextSegment(path, next)
		switch {
		case sep && n >= len(path):
			// First segment with an ending backslash but nothing after.
			return false
		case n >= len(path):
			// First segment with no ending backslash.
			return true
		default:
			// Second segment must have no backslash and no remaining
			// characters.
			n, sep = nextSegment(path, n+1)
			return !sep && n >= len(path)
		}
	}
	return path[end] == '\\' && end == len(path)-1
}

// StripToRoot truncates the path to its root.
// UNC forms keep their server and share segments.
// The returned bool reports whether the path changed;
// a path that is already a bare root is returned unmodified.
func StripToRoot(path string, size int) (string, bool, error) {
	if path == "" || size <= 0 || size > MaxCch {
		return path, false, ErrInvalidArgument
	}

	// \\?\UNC\* and \\* need at least two extra segments to be stripped,
	// e.g. \\?\UNC\a\b\c -> \\?\UNC\a\b and \\a\b\c -> \\a\b.
	if isUNC := isPrefixedUNC(path); isUNC || isBareUNC(path) {
		i := 3
		if isUNC {
			i = 8
		}
		var sep bool
		if i, sep = nextSegment(path, i); !sep {
			return path, false, nil
		}
		if i, sep = nextSegment(path, i); !sep {
			return path, false, nil
		}
		if i >= size {
			return path, false, ErrInvalidArgument
		}
		return path[:i-1], true, nil
	}

	end, err := SkipRoot(path)
	if err != nil {
		return path, false, ErrInvalidArgument
	}
	if end >= size {
		return path, false, ErrInvalidArgument
	}
	if end >= len(path) {
		return path, false, nil
	}
	return path[:end], true, nil
}

// StripPrefix removes a \\?\ device prefix:
// \\?\UNC\server\share becomes \\server\share and \\?\X: becomes X:.
// The returned bool reports whether a prefix was removed.
func StripPrefix(path string, size int) (string, bool, error) {
	if size <= 0 || size > MaxCch {
		return path, false, ErrInvalidArgument
	}
	switch {
	case isPrefixedUNC(path):
		if size < len(path)-8+3 {
			return path, false, ErrInvalidArgument
		}
		return `\\` + path[8:], true, nil
	case isPrefixedDisk(path):
		if size < len(path)-4+1 {
			return path, false, ErrInvalidArgument
		}
		return path[4:], true, nil
	}
	return path, false, nil
}

// IsUNC reports whether the path begins with a double backslash.
func IsUNC(path string) bool {
	return strings.HasPrefix(path, `\\`)
}

// UNCServer returns the offset of the server portion of a UNC path
// (past the \\ or \\?\UNC\ lead-in) and whether the path is UNC.
func UNCServer(path string) (int, bool) {
	switch {
	case isPrefixedUNC(path):
		return 8, true
	case isBareUNC(path):
		return 2, true
	}
	return 0, false
}

// IsUNCServerShare reports whether the path is exactly \\server\share.
func IsUNCServerShare(path string) bool {
	if !strings.HasPrefix(path, `\\`) {
		return false
	}
	seenSlash := false
	for i := 2; i < len(path); i++ {
		if path[i] == '\\' {
			if seenSlash {
				return false
			}
			seenSlash = true
		}
	}
	return seenSlash
}

// IsRelative reports whether the path is relative:
// neither backslash-rooted nor drive-qualified.
// The empty path is relative.
func IsRelative(path string) bool {
	if path == "" {
		return true
	}
	return !(path[0] == '\\' || len(path) >= 2 && path[1] == ':')
}

// GetDriveNumber returns the zero-based drive index (a=0 .. z=25) of a
// drive-qualified path, skipping any \\?\ prefix, or -1 if the path has
// no drive.
func GetDriveNumber(path string) int {
	path = strings.TrimPrefix(path, `\\?\`)
	if len(path) < 2 || path[1] != ':' {
		return -1
	}
	drive := toLower(path[0])
	if drive < 'a' || drive > 'z' {
		return -1
	}
	return int(drive - 'a')
}

// IsFileSpec reports whether the path contains neither a separator nor a
// colon, i.e. names a file without any directory qualification.
func IsFileSpec(path string) bool {
	if path == "" {
		return true
	}
	return !strings.ContainsAny(path, `\:`)
}

// IsLFNFileSpec reports whether the name does not fit the DOS 8.3 form:
// it contains a space, more than one dot, more than eight characters
// before the dot, or more than three after it.
func IsLFNFileSpec(name string) bool {
	nameLen, extLen := 0, 0
	for i := 0; i < len(name); i++ {
		switch {
		case name[i] == ' ':
			return true
		case name[i] == '.':
			if extLen > 0 {
				return true
			}
			extLen = 1
		case extLen > 0:
			extLen++
			if extLen > 4 {
				return true
			}
		default:
			nameLen++
			if nameLen > 8 {
				return true
			}
		}
	}
	return false
}
