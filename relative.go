// Copyright 2026 The zb Authors
// SPDX-License-Identifier: MIT

package winpath

import "strings"

// CommonPrefix returns the number of leading characters file1 and file2
// share, measured case-insensitively and counted only at segment
// boundaries. A UNC path shares nothing with a non-UNC path.
//
// For compatibility with Win32, a common prefix of exactly two
// characters (a bare drive specifier such as "C:") is reported as
// three, even when neither input has a third character.
func CommonPrefix(file1, file2 string) int {
	isUNC := strings.HasPrefix(file1, `\\`)
	if isUNC != strings.HasPrefix(file2, `\\`) {
		return 0
	}
	i := 0
	if isUNC {
		i = 2
	}
	n := 0
	for {
		end1 := i >= len(file1) || file1[i] == '\\'
		end2 := i >= len(file2) || file2[i] == '\\'
		if end1 && end2 {
			n = i
		}
		if i >= len(file1) || i >= len(file2) || toLower(file1[i]) != toLower(file2[i]) {
			break
		}
		i++
	}
	if n == 2 {
		n++
	}
	return n
}

// IsPrefix reports whether prefix is a whole-segment prefix of path.
func IsPrefix(prefix, path string) bool {
	return CommonPrefix(path, prefix) == len(prefix)
}

// legacySkipRoot returns the offset past the root in the style of the
// unsized path API: network paths need a server and a share, drive
// paths need the trailing separator. It returns -1 if path has no root.
func legacySkipRoot(path string) int {
	if path == "" {
		return -1
	}
	if strings.HasPrefix(path, `\\`) {
		i := strings.IndexByte(path[2:], '\\')
		if i < 0 {
			return -1
		}
		j := strings.IndexByte(path[2+i+1:], '\\')
		if j < 0 {
			return -1
		}
		return 2 + i + 1 + j + 1
	}
	if len(path) >= 3 && path[1] == ':' && path[2] == '\\' {
		return 3
	}
	return -1
}

// IsSameRoot reports whether path1 and path2 share a root.
func IsSameRoot(path1, path2 string) bool {
	start := legacySkipRoot(path1)
	if start < 0 {
		return false
	}
	return start <= CommonPrefix(path1, path2)+1
}

// removeFileSpecLegacy truncates path at its last segment in the style
// of the unsized path API, which treats a trailing separator as
// introducing an empty final segment.
func removeFileSpecLegacy(path string) string {
	filespec := 0
	i := 0
	if i < len(path) && path[i] == '\\' {
		i++
		filespec = i
	}
	if i < len(path) && path[i] == '\\' {
		i++
		filespec = i
	}
	for i < len(path) {
		if path[i] == '\\' {
			filespec = i
		} else if path[i] == ':' {
			i++
			filespec = i
			if i < len(path) && path[i] == '\\' {
				filespec++
			}
		}
		i++
	}
	return path[:filespec]
}

// RelativePathTo returns a relative path from from to to. Each input is
// truncated to its directory portion first unless the corresponding
// IsDir argument says it already names a directory. The inputs must
// share a common root, and both they and the result are limited to
// [MaxPath]; [ErrInvalidArgument] is returned otherwise.
func RelativePathTo(from string, fromIsDir bool, to string, toIsDir bool) (string, error) {
	if len(from) >= MaxPath {
		from = from[:MaxPath-1]
	}
	if len(to) >= MaxPath {
		to = to[:MaxPath-1]
	}
	if !fromIsDir {
		from = removeFileSpecLegacy(from)
	}
	if !toIsDir {
		to = removeFileSpecLegacy(to)
	}

	n := CommonPrefix(from, to)
	if n == 0 {
		return "", ErrInvalidArgument
	}

	var path []byte
	rest := ""
	if n < len(from) {
		rest = from[n:]
	}
	if rest == "" {
		path = append(path, '.')
	}
	rest = strings.TrimPrefix(rest, `\`)

	// Climb from's remaining components with "..".
	for rest != "" {
		next := FindNextComponent(rest)
		rest = rest[next:]
		if rest != "" {
			path = append(path, `..\`...)
		} else {
			path = append(path, ".."...)
		}
	}

	// Descend into to's remaining components, separator included.
	if n < len(to) {
		if to[n] != '\\' {
			n--
		}
		if len(path)+len(to)-n >= MaxPath {
			return "", ErrInvalidArgument
		}
		path = append(path, to[n:]...)
	}
	return string(path), nil
}
