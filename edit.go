// Copyright 2026 The zb Authors
// SPDX-License-Identifier: MIT

package winpath

import "strings"

// AddBackslash appends a separator to the path unless it already ends
// with one. The returned bool reports whether the path changed.
func AddBackslash(path string, size int) (string, bool, error) {
	needsTermination := size > 0 && path != "" && path[len(path)-1] != '\\'
	limit := size
	needed := len(path) + 1
	if needsTermination {
		limit = size - 1
		needed++
	}
	if len(path) >= limit {
		return path, false, &SizeError{Needed: needed}
	}
	if !needsTermination {
		return path, false, nil
	}
	return path + `\`, true, nil
}

// RemoveBackslash removes a trailing separator unless the separator is
// part of the path's root. The returned bool reports whether the path
// changed.
func RemoveBackslash(path string, size int) (string, bool, error) {
	if size <= 0 || len(path) >= size {
		return path, false, ErrInvalidArgument
	}
	if path == "" || path[len(path)-1] != '\\' {
		return path, false, nil
	}
	if re := rootEnd(path); re >= 0 && len(path)-1 <= re {
		return path, false, nil
	}
	return path[:len(path)-1], true, nil
}

// FindExtension returns the offset of the path's extension: the final
// dot of the last segment, with segments reset by separators and spaces.
// If the path has no extension, the offset of the terminating end of the
// string is returned.
func FindExtension(path string, size int) (int, error) {
	if size <= 0 || size > MaxCch || len(path) >= size {
		return 0, ErrInvalidArgument
	}
	lastDot := -1
	for i := 0; i < len(path); i++ {
		switch path[i] {
		case '\\', ' ':
			lastDot = -1
		case '.':
			lastDot = i
		}
	}
	if lastDot < 0 {
		return len(path), nil
	}
	return lastDot, nil
}

// AddExtension appends the extension to the path unless the path already
// has one. The extension may be given with or without its leading dot;
// it must not contain further dots, spaces, or separators.
// The returned bool distinguishes the changed result from the
// no-change case of a path that already carries an extension.
func AddExtension(path string, size int, ext string) (string, bool, error) {
	if size <= 0 || size > MaxCch {
		return path, false, ErrInvalidArgument
	}
	for i := 0; i < len(ext); i++ {
		if ext[i] == '.' && i > 0 || ext[i] == ' ' || ext[i] == '\\' {
			return path, false, ErrInvalidArgument
		}
	}
	hasDot := strings.HasPrefix(ext, ".")

	extStart, err := FindExtension(path, size)
	if err != nil {
		return path, false, err
	}
	if extStart < len(path) {
		return path, false, nil
	}

	dotLen := 1
	if hasDot {
		dotLen = 0
	}
	if len(path)+dotLen+len(ext)+1 > size {
		return path, false, &SizeError{Needed: len(path) + dotLen + len(ext) + 1}
	}
	// An empty or dot-only extension succeeds without changing the path.
	if ext == "" || ext == "." {
		return path, true, nil
	}
	if !hasDot {
		return path + "." + ext, true, nil
	}
	return path + ext, true, nil
}

// RemoveExtension truncates the path at its extension.
// The returned bool reports whether the path changed.
func RemoveExtension(path string, size int) (string, bool, error) {
	if size <= 0 || size > MaxCch {
		return path, false, ErrInvalidArgument
	}
	extStart, err := FindExtension(path, size)
	if err != nil {
		return path, false, err
	}
	if extStart == len(path) {
		return path, false, nil
	}
	return path[:extStart], true, nil
}

// RenameExtension replaces the path's extension (or appends, if the path
// has none). On error the original path is returned unchanged.
func RenameExtension(path string, size int, ext string) (string, error) {
	trimmed, _, err := RemoveExtension(path, size)
	if err != nil {
		return path, err
	}
	out, _, err := AddExtension(trimmed, size, ext)
	if err != nil {
		return path, err
	}
	return out, nil
}

// RemoveFileSpec removes the last segment of the path, leaving the
// containing directory. The separator ending a UNC root is removable in
// this operation, so \\server\share becomes \\server. A path that is
// already a root is returned unmodified.
func RemoveFileSpec(path string, size int) (string, bool, error) {
	if size <= 0 || size > MaxCch || len(path) >= size {
		return path, false, ErrInvalidArgument
	}
	if IsRoot(path) {
		return path, false, nil
	}
	root, err := SkipRoot(path)
	if err != nil {
		root = 0
	}
	// The backslash at the end of a UNC root is not part of the root here.
	if root > 0 && path[root-1] == '\\' && (isPrefixedUNC(path) || isBareUNC(path)) {
		root--
	}

	last := len(path) - 1
	for last >= 0 && last >= root {
		if path[last] == '\\' {
			last--
			break
		}
		last--
	}
	if last == len(path)-1 {
		return path, false, nil
	}
	return path[:last+1], true, nil
}

// RemoveBlanks trims leading and trailing spaces from the path.
func RemoveBlanks(path string) string {
	return strings.Trim(path, " ")
}

// QuoteSpaces wraps the path in double quotes if it contains a space and
// the quoted form stays under [MaxPath].
func QuoteSpaces(path string) string {
	if strings.ContainsRune(path, ' ') && len(path)+3 < MaxPath {
		return `"` + path + `"`
	}
	return path
}

// UnquoteSpaces removes one pair of surrounding double quotes.
func UnquoteSpaces(path string) string {
	if len(path) >= 2 && path[0] == '"' && path[len(path)-1] == '"' {
		return path[1 : len(path)-1]
	}
	return path
}

// FindFileName returns the offset of the file name portion of the path:
// the character after the last separator or drive colon that is followed
// by something other than another separator.
func FindFileName(path string) int {
	last := 0
	for i := 0; i < len(path); i++ {
		if (path[i] == '\\' || path[i] == '/' || path[i] == ':') &&
			i+1 < len(path) && path[i+1] != '\\' && path[i+1] != '/' {
			last = i + 1
		}
	}
	return last
}

// StripPath removes the directory portion of the path, leaving only the
// file name.
func StripPath(path string) string {
	return path[FindFileName(path):]
}

// FindNextComponent returns the offset of the segment after the first
// separator, or the end of the string if the path has no separator.
// It returns -1 for an empty path.
func FindNextComponent(path string) int {
	if path == "" {
		return -1
	}
	slash := strings.IndexByte(path, '\\')
	if slash < 0 {
		return len(path)
	}
	if slash+1 < len(path) && path[slash+1] == '\\' {
		slash++
	}
	return slash + 1
}
