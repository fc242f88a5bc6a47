// Copyright 2026 The zb Authors
// SPDX-License-Identifier: MIT

package winpath

// matchMask matches name against a single mask, up to a ';' terminator.
// '*' matches any run of characters, '?' matches one character, and
// letters compare case-insensitively.
func matchMask(name, mask string) bool {
	for name != "" && mask != "" && mask[0] != ';' {
		if mask[0] == '*' {
			for {
				if matchMask(name, mask[1:]) {
					return true
				}
				if name == "" {
					break
				}
				name = name[1:]
			}
			return false
		}
		if toUpper(mask[0]) != toUpper(name[0]) && mask[0] != '?' {
			return false
		}
		name = name[1:]
		mask = mask[1:]
	}

	if name == "" {
		for mask != "" && mask[0] == '*' {
			mask = mask[1:]
		}
		if mask == "" || mask[0] == ';' {
			return true
		}
	}
	return false
}

// MatchSpec reports whether path matches mask. The mask may hold
// several patterns separated by ';', and the special mask "*.*"
// matches every path.
func MatchSpec(path, mask string) bool {
	if mask == "*.*" {
		return true
	}

	for mask != "" {
		for mask != "" && mask[0] == ' ' {
			mask = mask[1:]
		}
		if matchMask(path, mask) {
			return true
		}
		for mask != "" && mask[0] != ';' {
			mask = mask[1:]
		}
		if mask != "" {
			mask = mask[1:]
		}
	}
	return false
}
