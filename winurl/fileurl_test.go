// Copyright 2026 The zb Authors
// SPDX-License-Identifier: MIT

package winurl

import (
	"errors"
	"testing"

	"zb.256lights.llc/winpath"
)

func TestFromPath(t *testing.T) {
	tests := []struct {
		path      string
		want      string
		converted bool
	}{
		{path: `c:\dir\file`, want: "file:///c:/dir/file", converted: true},
		{path: `c:\dir\my file`, want: "file:///c:/dir/my%20file", converted: true},
		{path: `c:\100%`, want: "file:///c:/100%25", converted: true},
		{path: `\\server\share\file`, want: "file://server/share/file", converted: true},
		{path: `dir\file`, want: "file:dir/file", converted: true},

		// Paths that already parse as locators pass through.
		{path: "http://host/x", want: "http://host/x"},
		{path: "file:///c:/dir", want: "file:///c:/dir"},
	}
	for _, test := range tests {
		got, converted, err := FromPath(test.path, len(test.want)+1)
		if err != nil || got != test.want || converted != test.converted {
			t.Errorf("FromPath(%q, %d) = %q, %t, %v; want %q, %t, <nil>", test.path, len(test.want)+1, got, converted, err, test.want, test.converted)
		}
	}
}

func TestToPath(t *testing.T) {
	tests := []struct {
		url  string
		want string
		err  bool
	}{
		// Zero to three slashes introduce a DOS path.
		{url: "file:c:/dir/file", want: `c:\dir\file`},
		{url: "file:/c:/dir", want: `c:\dir`},
		{url: "file:/share/file", want: `\share\file`},
		{url: "file:///c:/dir/file", want: `c:\dir\file`},
		{url: "file:///share/file", want: `\\share\file`},

		// Two slashes: localhost, a drive, or a hostname.
		{url: "file://localhost/c:/dir", want: `c:\dir`},
		{url: `file://c:\dir\file`, want: `c:\dir\file`},
		{url: "file://c|/dir", want: `c:\dir`},
		{url: "file://server/share/file", want: `\\server\share\file`},

		// A drive after the hostname swallows the separator.
		{url: "file://host/c:/dir", want: `\\hostc:\dir`},

		// Four or more slashes introduce a UNC path.
		{url: "file:////server/share", want: `\\server\share`},
		{url: "file:////c:/dir", want: `c:\dir`},
		{url: "file://///server/share", want: `\\server\share`},

		// Escapes decode, except in the file://drive form.
		{url: "file:///c:/my%20file", want: `c:\my file`},
		{url: `file://c:\my%20file`, want: `c:\my%20file`},
		{url: "file:////server/my%20share", want: `\\server\my%20share`},

		{url: "http://host/x", err: true},
		{url: "file", err: true},
		{url: "", err: true},
	}
	for _, test := range tests {
		got, err := ToPath(test.url, len(test.want)+1)
		if test.err {
			if !errors.Is(err, winpath.ErrInvalidArgument) {
				t.Errorf("ToPath(%q) = %q, %v; want ErrInvalidArgument", test.url, got, err)
			}
			continue
		}
		if err != nil || got != test.want {
			t.Errorf("ToPath(%q, %d) = %q, %v; want %q, <nil>", test.url, len(test.want)+1, got, err, test.want)
		}
	}
}

func TestToPathSize(t *testing.T) {
	got, err := ToPath("file:///c:/dir", 5)
	var sizeError *winpath.SizeError
	if !errors.As(err, &sizeError) {
		t.Fatalf("ToPath(5, ...) = %q, %v; want *SizeError", got, err)
	}
	if want := len(`c:\dir`) + 1; sizeError.Needed != want {
		t.Errorf("Needed = %d; want %d", sizeError.Needed, want)
	}
}

func TestFromPathToPathRoundTrip(t *testing.T) {
	paths := []string{
		`c:\dir\file`,
		`c:\dir\my file`,
		`\\server\share\file`,
	}
	for _, path := range paths {
		url, converted, err := FromPath(path, 3*len(path)+len("file:///")+1)
		if err != nil || !converted {
			t.Errorf("FromPath(%q) = %q, %t, %v", path, url, converted, err)
			continue
		}
		got, err := ToPath(url, len(path)+1)
		if err != nil || got != path {
			t.Errorf("ToPath(FromPath(%q)) = %q, %v; want %q, <nil>", path, got, err, path)
		}
	}
}
