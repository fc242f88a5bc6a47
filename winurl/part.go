// Copyright 2026 The zb Authors
// SPDX-License-Identifier: MIT

package winurl

import (
	"strings"

	"zb.256lights.llc/winpath"
)

// Part selects the component [GetPart] extracts.
type Part int

// Part values.
const (
	PartScheme Part = 1 + iota
	PartHostname
	PartUsername
	PartPassword
	PartPort
	PartQuery
)

// ParsedURL is the result of [ParseFull]:
// a locator split into all of its structural components.
// Absent components are empty.
// Query, when present, includes the leading question mark.
type ParsedURL struct {
	Scheme   string
	Username string
	Password string
	Hostname string
	Port     string
	Query    string
}

// span marks a component inside the locator string.
// A start of -1 means the component is absent.
type span struct {
	start, n int
}

func (sp span) of(url string) string {
	if sp.start < 0 {
		return ""
	}
	return url[sp.start : sp.start+sp.n]
}

type parsedLocator struct {
	scheme, username, password, hostname, port, query span
}

// scanScheme consumes lowercase scheme characters starting at i.
// The count resets to zero when no colon follows the span.
func scanScheme(url string, i int) (next, n int) {
	for i < len(url) && ('a' <= url[i] && url[i] <= 'z' || isDigit(url[i]) || url[i] == '+' || url[i] == '-' || url[i] == '.') {
		i++
		n++
	}
	if i >= len(url) || url[i] != ':' {
		n = 0
	}
	return i, n
}

// scanUserPass consumes characters permitted in a username or password:
// alphanumerics, the user-info set ";?&=", the extra set "!*'(),",
// the safe set "$_+-. ", and percent-escapes.
func scanUserPass(url string, i int) (next, n int) {
	for i < len(url) {
		c := url[i]
		switch {
		case isAlnum(c),
			c == ';', c == '?', c == '&', c == '=',
			c == '!', c == '*', c == '\'', c == '(', c == ')', c == ',',
			c == '$', c == '_', c == '+', c == '-', c == '.', c == ' ':
			i++
			n++
		case c == '%' && i+2 < len(url) && isHexDigit(url[i+1]) && isHexDigit(url[i+2]):
			i += 3
			n += 3
		default:
			return i, n
		}
	}
	return i, n
}

func scanHost(url string, i int) (next, n int) {
	for i < len(url) {
		c := url[i]
		if !isAlnum(c) && c != '-' && c != '.' && c != ' ' && c != '*' {
			break
		}
		i++
		n++
	}
	return i, n
}

func scanPort(url string, i int) (next, n int) {
	for i < len(url) && isDigit(url[i]) {
		i++
		n++
	}
	return i, n
}

// parseLocator splits a locator into spans.
// The username/password-versus-hostname/port ambiguity resolves by
// speculation: a scan that reaches neither ':' nor '@' rolls the cursor
// back and reparses the same span as the hostname.
func parseLocator(url string) (parsedLocator, error) {
	absent := span{start: -1}
	pl := parsedLocator{
		username: absent,
		password: absent,
		hostname: absent,
		port:     absent,
		query:    absent,
	}

	pl.scheme.start = 0
	w, n := scanScheme(url, 0)
	pl.scheme.n = n
	if w >= len(url) || url[w] != ':' {
		return pl, winpath.ErrInvalidArgument
	}
	w++
	if !strings.HasPrefix(url[w:], "//") {
		return pl, nil
	}

	pl.username = span{start: w + 2}
	w, pl.username.n = scanUserPass(url, w+2)
	switch {
	case w < len(url) && url[w] == ':':
		w++
		pl.password = span{start: w}
		w, pl.password.n = scanUserPass(url, w)
		if w >= len(url) || url[w] != '@' {
			// What was scanned must have been hostname and port.
			w = pl.username.start - 1
			pl.username = absent
			pl.password = absent
		}
	case w < len(url) && url[w] == '@':
		pl.password = absent
	case w >= len(url) || url[w] == '/' || url[w] == '.':
		// What was scanned was the hostname.
		w = pl.username.start - 1
		pl.username = absent
		pl.password = absent
	default:
		return pl, winpath.ErrInvalidArgument
	}

	w++
	pl.hostname = span{start: w}
	w, pl.hostname.n = scanHost(url, w)
	if w < len(url) && url[w] == ':' {
		w++
		pl.port = span{start: w}
		w, pl.port.n = scanPort(url, w)
	}
	if w < len(url) && url[w] == '/' {
		if q := strings.IndexByte(url[w:], '?'); q >= 0 {
			pl.query = span{start: w + q, n: len(url) - (w + q)}
		}
	}
	return pl, nil
}

// ParseFull splits a locator into all of its structural components.
func ParseFull(url string) (ParsedURL, error) {
	pl, err := parseLocator(url)
	if err != nil {
		return ParsedURL{}, err
	}
	return ParsedURL{
		Scheme:   pl.scheme.of(url),
		Username: pl.username.of(url),
		Password: pl.password.of(url),
		Hostname: pl.hostname.of(url),
		Port:     pl.port.of(url),
		Query:    pl.query.of(url),
	}, nil
}

// GetPart extracts one component of a locator.
// An absent component yields an empty string without error.
// Requesting [PartHostname] from a scheme that carries no hostname
// fails with [ErrNoPart].
// With keepScheme set, the result is prefixed with "scheme:".
func GetPart(url string, size int, part Part, keepScheme bool) (string, error) {
	if size <= 0 {
		return "", winpath.ErrInvalidArgument
	}

	scheme := SchemeUnknown
	if c := strings.IndexByte(url, ':'); c >= 0 {
		scheme = schemeCode(url[:c])
	}
	pl, perr := parseLocator(url)

	var sp span
	switch part {
	case PartScheme:
		if pl.scheme.n == 0 {
			return "", nil
		}
		sp = pl.scheme
	case PartHostname:
		switch scheme {
		case SchemeFTP, SchemeHTTP, SchemeGopher, SchemeTelnet, SchemeFile, SchemeHTTPS:
		default:
			return "", ErrNoPart
		}
		if scheme == SchemeFile && pl.hostname.n == 1 &&
			pl.hostname.start+1 < len(url) && url[pl.hostname.start+1] == ':' {
			// A one-letter "hostname" followed by a colon is a drive.
			return "", nil
		}
		if pl.hostname.n == 0 {
			return "", nil
		}
		sp = pl.hostname
	case PartUsername:
		if pl.username.n == 0 {
			return "", nil
		}
		sp = pl.username
	case PartPassword:
		if pl.password.n == 0 {
			return "", nil
		}
		sp = pl.password
	case PartPort:
		if pl.port.n == 0 {
			return "", nil
		}
		sp = pl.port
	case PartQuery:
		if pl.query.n == 0 {
			return "", nil
		}
		sp = pl.query
	default:
		return "", winpath.ErrInvalidArgument
	}
	if perr != nil {
		return "", perr
	}

	result := sp.of(url)
	if keepScheme {
		if pl.scheme.n == 0 {
			return "", ErrNoPart
		}
		result = pl.scheme.of(url) + ":" + result
	}
	if err := checkSize(len(result), size); err != nil {
		return "", err
	}
	return result, nil
}

// GetLocation returns the fragment of a locator:
// the substring from the first '#' in its suffix onward.
// File locators never report a fragment.
func GetLocation(url string) (string, bool) {
	p, err := Parse(url)
	if err != nil {
		return "", false
	}
	k := min(4, len(p.Scheme))
	if p.Scheme[:k] == "file"[:k] {
		return "", false
	}
	if j := strings.IndexByte(p.Suffix, '#'); j >= 0 {
		return p.Suffix[j:], true
	}
	return "", false
}
