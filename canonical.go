// Copyright 2026 The zb Authors
// SPDX-License-Identifier: MIT

package winpath

import "fmt"

// LongNameMode controls whether canonicalization assumes the system
// handles long file names without an extended-length prefix.
type LongNameMode int

const (
	// LongNameDefault decides based on the result's length.
	LongNameDefault LongNameMode = iota
	// LongNameForceEnable assumes long-name support and never adds the
	// \\?\ prefix.
	LongNameForceEnable
	// LongNameForceDisable assumes no long-name support.
	LongNameForceDisable
)

// Flags controls canonicalization.
// The zero value requests plain short-path canonicalization.
type Flags struct {
	// AllowLongPaths permits results longer than [MaxPath],
	// extending them with the \\?\ prefix as needed.
	AllowLongPaths bool

	// LongNames selects the long-name processing assumption.
	// Any value other than [LongNameDefault] requires AllowLongPaths.
	LongNames LongNameMode

	// EnsureExtended forces the result into extended-length (\\?\) form.
	// It implies NoNormalize and conflicts with AllowLongPaths.
	EnsureExtended bool

	// NoNormalize suppresses "." and ".." segment collapsing.
	NoNormalize bool

	// EnsureTrailingSlash guarantees the result ends with a separator.
	EnsureTrailingSlash bool
}

func (f Flags) validate() error {
	if f.LongNames != LongNameDefault && !f.AllowLongPaths {
		return fmt.Errorf("long name processing without long paths: %w", ErrInvalidArgument)
	}
	if f.EnsureExtended && f.AllowLongPaths {
		return fmt.Errorf("extended-length with long paths: %w", ErrInvalidArgument)
	}
	return nil
}

// Canonicalize resolves "." and ".." segments of path and returns the
// result, preserving the classified root. Device-prefixed roots are
// rewritten to their unprefixed drive or UNC form during processing and
// the prefix is re-added when the flags or the result's length demand it.
//
// The result never resolves into or past the root: backing out of every
// segment yields the root itself (or a single separator for rootless
// input).
func Canonicalize(path string, flags Flags) (string, error) {
	if err := flags.validate(); err != nil {
		return "", err
	}
	if len(path)+1 > MaxPath && !flags.AllowLongPaths && !flags.EnsureExtended ||
		len(path)+1 > MaxCch {
		return "", ErrNameTooLong
	}
	// EnsureExtended implies no segment normalization.
	if flags.EnsureExtended {
		flags.NoNormalize = true
	}

	buf := make([]byte, 0, len(path)+6)
	i := 0
	re := rootEnd(path)

	// Copy the path root, stripping any device prefix and filling the
	// separator after a bare drive letter.
	if re >= 0 {
		buf = append(buf, path[:re+1]...)
		i = re + 1
		if stripped, changed, err := StripPrefix(string(buf), len(path)+6); err == nil && changed {
			buf = append(buf[:0], stripped...)
			if len(buf) == 2 && isAlpha(buf[0]) && buf[1] == ':' {
				buf = append(buf, '\\')
			}
			// The stripped root's boundary sits past its last character,
			// so a separator written directly after it stays removable.
			re = len(buf)
		}
	}

	for i < len(path) {
		switch {
		case path[i] != '.':
			buf = append(buf, path[i])
			i++
			continue

		case i+1 < len(path) && path[i+1] == '.':
			// Keep one . after *.
			if len(buf) > 0 && buf[len(buf)-1] == '*' {
				buf = append(buf, path[i])
				i++
				continue
			}
			// Keep the dots when normalization is suppressed mid-segment
			// or the dots are embedded as in a..b.
			if len(buf) > 0 &&
				(flags.NoNormalize && buf[len(buf)-1] != '\\' ||
					buf[len(buf)-1] != '\\' && i+2 < len(path) && path[i+2] != '\\') {
				buf = append(buf, path[i], path[i+1])
				i += 2
				continue
			}
			if len(buf) > 0 && buf[len(buf)-1] == '\\' && len(buf)-1 > re {
				// Remove the separator before .. and then the previous
				// segment, including the separator that introduced it.
				buf = buf[:len(buf)-1]
				for len(buf) > 0 {
					last := buf[len(buf)-1]
					buf = buf[:len(buf)-1]
					if last == '\\' {
						break
					}
				}
			} else if i+2 < len(path) && path[i+2] == '\\' {
				// The separator before .. was kept (part of the root),
				// so drop the one after instead.
				i++
			}
			i += 2

		default:
			// Single dot. Keep it when normalization is suppressed
			// mid-segment, in the a.b form, or after *.
			if len(buf) > 0 &&
				(flags.NoNormalize && buf[len(buf)-1] != '\\' ||
					buf[len(buf)-1] != '\\' && i+1 < len(path) && path[i+1] != '\\' ||
					buf[len(buf)-1] == '*') {
				buf = append(buf, path[i])
				i++
				continue
			}
			if len(buf) > 0 && buf[len(buf)-1] == '\\' && len(buf)-1 > re {
				buf = buf[:len(buf)-1]
			} else if i+1 < len(path) && path[i+1] == '\\' {
				i++
			}
			i++
		}

		// Collapsing may have exposed a bare drive letter (as in X:..);
		// fill in its missing separator.
		if len(buf) >= 2 && isAlpha(buf[0]) && buf[1] == ':' &&
			(len(buf) == 2 || buf[2] != '\\') {
			buf = append(buf[:2], '\\')
			re = 2
			// If the next character is a separator, use it as the fill.
			if i < len(path) && path[i] == '\\' {
				i++
			}
		}
	}

	if len(buf) == 0 {
		buf = append(buf, '\\')
	}

	// Extend the path when a drive-rooted result outgrows the short-path
	// limit or extended-length form was demanded.
	if isAlpha(buf[0]) && len(buf) >= 2 && buf[1] == ':' &&
		(len(buf)+1 > MaxPath || flags.EnsureExtended) &&
		flags.LongNames != LongNameForceEnable {
		buf = append([]byte(`\\?\`), buf...)
	}

	if flags.EnsureTrailingSlash && buf[len(buf)-1] != '\\' {
		buf = append(buf, '\\')
	}
	return string(buf), nil
}

// CanonicalizeInto is the fixed-capacity form of [Canonicalize]:
// the result must fit a buffer of the given capacity.
// A bare drive-letter result is completed to X:\ when the capacity allows.
func CanonicalizeInto(size int, path string, flags Flags) (string, error) {
	if size <= 0 {
		return "", ErrInvalidArgument
	}
	out, err := Canonicalize(path, flags)
	if err != nil {
		return "", err
	}
	if err := checkSize(len(out), size); err != nil {
		// A rootless over-length result reports the legacy range error
		// rather than an insufficient buffer.
		if len(out) > MaxPath-4 &&
			!(path != "" && path[0] == '\\' ||
				len(path) >= 3 && isAlpha(path[0]) && path[1] == ':' && path[2] == '\\') {
			return "", ErrNameTooLong
		}
		return "", err
	}
	if len(out) == 2 && isAlpha(out[0]) && out[1] == ':' && size > 3 {
		out += `\`
	}
	return out, nil
}

// Combine concatenates two paths and canonicalizes the result.
// A fully qualified path2 (drive-qualified or UNC) replaces path1
// entirely; a path2 with a single leading separator strips path1 to its
// root first. Either argument may be empty.
func Combine(path1, path2 string, flags Flags) (string, error) {
	if path1 == "" && path2 == "" {
		return "", ErrInvalidArgument
	}
	if path1 == "" || path2 == "" {
		other := path1
		if path1 == "" {
			other = path2
		}
		return Canonicalize(other, flags)
	}

	// A fully qualified path2 wins.
	if len(path2) >= 2 && (isAlpha(path2[0]) && path2[1] == ':' || path2[0] == '\\' && path2[1] == '\\') {
		path1 = path2
		path2 = ""
	}

	scratch := len(path1) + len(path2) + 2
	combined, _, err := StripPrefix(path1, scratch)
	if err != nil {
		return "", err
	}
	if path2 == "" {
		combined = addBackslashString(combined)
	}
	if path2 != "" {
		if path2[0] == '\\' && (len(path2) < 2 || path2[1] != '\\') {
			if stripped, _, err := StripToRoot(combined, scratch); err == nil {
				combined = stripped
			}
			path2 = path2[1:]
		}
		combined = addBackslashString(combined) + path2
	}
	return Canonicalize(combined, flags)
}

// CombineInto is the fixed-capacity form of [Combine].
func CombineInto(size int, path1, path2 string, flags Flags) (string, error) {
	if size <= 0 || size > MaxCch {
		return "", ErrInvalidArgument
	}
	out, err := Combine(path1, path2, flags)
	if err != nil {
		return "", err
	}
	if err := checkSize(len(out), size); err != nil {
		return "", err
	}
	return out, nil
}

// Append combines more onto path, treating a single leading separator in
// more as a plain segment separator rather than a strip-to-root request.
// On error the original path is returned unchanged.
func Append(path string, size int, more string, flags Flags) (string, error) {
	if size <= 0 {
		return path, ErrInvalidArgument
	}
	if more != "" && more[0] == '\\' && (len(more) < 2 || more[1] != '\\') {
		more = more[1:]
	}
	out, err := CombineInto(size, path, more, flags)
	if err != nil {
		return path, err
	}
	return out, nil
}

// addBackslashString appends a separator if the path is non-empty and
// does not already end with one.
func addBackslashString(path string) string {
	if path != "" && path[len(path)-1] != '\\' {
		return path + `\`
	}
	return path
}
