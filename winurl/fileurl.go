// Copyright 2026 The zb Authors
// SPDX-License-Identifier: MIT

package winurl

import (
	"zb.256lights.llc/winpath"
)

// FromPath converts a Windows path into a file locator,
// percent-encoding unsafe characters.
// A drive path gains a "file:///" prefix;
// other paths (including UNC paths) gain "file:".
// If path already parses as a locator it is returned unchanged
// and the second result is false.
func FromPath(path string, size int) (string, bool, error) {
	if size <= 0 {
		return "", false, winpath.ErrInvalidArgument
	}
	return createFromPath(path, size)
}

func createFromPath(path string, size int) (string, bool, error) {
	if _, err := Parse(path); err == nil {
		if err := checkSize(len(path), size); err != nil {
			return "", false, err
		}
		return path, false, nil
	}

	newURL := "file:"
	if len(path) > 1 && isAlpha(path[0]) && path[1] == ':' {
		newURL += "///"
	}
	newURL += path
	out, err := Escape(newURL, size, EscapeFlags{Percent: true})
	if err != nil {
		return "", false, err
	}
	return out, true, nil
}

// ToPath converts a file locator into a Windows path:
// it strips the scheme and authority,
// converts forward slashes to backslashes,
// rewrites a "c|" drive spec to "c:",
// and decodes percent-escapes
// (except for the "file://C:\dir" form, which is taken as unescaped).
// Locators of any other scheme fail with [winpath.ErrInvalidArgument].
func ToPath(url string, size int) (string, error) {
	if size <= 0 {
		return "", winpath.ErrInvalidArgument
	}
	if len(url) < 5 || !equalFold(url[:5], "file:") {
		return "", winpath.ErrInvalidArgument
	}
	rest := url[5:]

	src := 0
	for src < len(rest) && (rest[src] == '/' || rest[src] == '\\') {
		src++
	}
	nslashes := src

	driveAt := func(i int) bool {
		return i < len(rest) && isAlpha(rest[i]) &&
			i+1 < len(rest) && (rest[i+1] == ':' || rest[i+1] == '|')
	}

	out := make([]byte, 0, len(rest)+2)
	unescape := true
	switch nslashes {
	case 0:
		// "file:" + escaped DOS path.
	case 1, 3:
		// "file:/" or "file:///" (implied localhost) + escaped DOS path.
		if !driveAt(src) {
			src--
		}
	case 2:
		if len(rest)-src >= 10 && equalFold(rest[src:src+9], "localhost") &&
			(rest[src+9] == '/' || rest[src+9] == '\\') {
			// "file://localhost/" + escaped DOS path.
			src += 10
		} else if driveAt(src) {
			// "file://" + unescaped DOS path.
			unescape = false
		} else {
			// "file://hostname:port/path" with an escaped path,
			// or "file:" + escaped UNC path.
			h := src
			for h < len(rest) && rest[h] != '/' && rest[h] != '\\' {
				h++
			}
			out = append(out, rest[:h]...)
			if h < len(rest) && driveAt(h+1) {
				// "Forget" the separator before a drive, like Windows.
				h++
			}
			src = h
		}
	case 4:
		// "file:////" + unescaped UNC path.
		unescape = false
		if !driveAt(src) {
			src -= 2
		}
	default:
		// "file://///..." + escaped UNC path.
		src -= 2
	}
	out = append(out, rest[src:]...)

	for i := range out {
		if out[i] == '/' {
			out[i] = '\\'
		}
	}
	if len(out) > 1 && isAlpha(out[0]) && out[1] == '|' {
		out[1] = ':'
	}

	if unescape {
		out = UnescapeInPlace(out, UnescapeFlags{})
	}

	if err := checkSize(len(out), size); err != nil {
		return "", err
	}
	return string(out), nil
}
