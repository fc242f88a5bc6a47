// Copyright 2026 The zb Authors
// SPDX-License-Identifier: MIT

package winpath

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/sync/errgroup"
)

var canonicalizeTests = []struct {
	path string
	want string
}{
	{``, `\`},
	{`\`, `\`},
	{`C:\`, `C:\`},
	{`C:`, `C:`},
	{`C:\a`, `C:\a`},
	{`C:\a\`, `C:\a\`},

	// Single dots.
	{`C:.`, `C:\`},
	{`C:\a\.`, `C:\a`},
	{`C:\a\.\b`, `C:\a\b`},
	{`C:\.\a`, `C:\a`},
	{`C:\a.`, `C:\a`},
	{`C:\a.\b`, `C:\ab`},
	{`C:\a.b\c`, `C:\a.b\c`},
	{`C:\*.\a`, `C:\*.\a`},

	// Double dots.
	{`C:\a\.\b\..\c`, `C:\a\c`},
	{`C:\a\b\..`, `C:\a`},
	{`C:\a\b\..\`, `C:\a\`},
	{`C:\a\..\..\b`, `C:\b`},
	{`C:\..\a`, `C:\a`},
	{`C:\a..`, `C:\a`},
	{`C:\a..b\c`, `C:\a..b\c`},
	{`C:a\..`, `\`},

	// Rooted and UNC forms.
	{`\a\..\b`, `\b`},
	{`\..\a`, `\a`},
	{`\\server\share\..\a`, `\\server\a`},
	{`\\server\share\a\..`, `\\server\share`},

	// Device prefixes are stripped during processing.
	{`\\?\C:\a\.\b`, `C:\a\b`},
	{`\\?\C:\a\..`, `C:\`},
	{`\\?\UNC\server\share\a\..`, `\\server\share`},
}

func TestCanonicalize(t *testing.T) {
	for _, test := range canonicalizeTests {
		got, err := Canonicalize(test.path, Flags{})
		if err != nil || got != test.want {
			t.Errorf("Canonicalize(%q) = %q, %v; want %q, <nil>", test.path, got, err, test.want)
		}
	}

	t.Run("VolumeGUID", func(t *testing.T) {
		root := volumeRoot(testVolume)
		got, err := Canonicalize(root+`\a\..\b`, Flags{})
		if want := root + `\b`; err != nil || got != want {
			t.Errorf("Canonicalize(%q) = %q, %v; want %q, <nil>", root+`\a\..\b`, got, err, want)
		}
	})
}

func TestCanonicalizeIdempotent(t *testing.T) {
	for _, test := range canonicalizeTests {
		got, err := Canonicalize(test.want, Flags{})
		if err != nil || got != test.want {
			t.Errorf("Canonicalize(%q) = %q, %v; want unchanged", test.want, got, err)
		}
	}
}

func TestCanonicalizeFlags(t *testing.T) {
	long := `C:\` + strings.Repeat("a", 300)

	tests := []struct {
		name  string
		path  string
		flags Flags
		want  string
		err   error
	}{
		{
			name:  "TooLongWithoutLongPaths",
			path:  long,
			flags: Flags{},
			err:   ErrNameTooLong,
		},
		{
			name:  "LongPathGetsPrefix",
			path:  long,
			flags: Flags{AllowLongPaths: true},
			want:  `\\?\` + long,
		},
		{
			name:  "ForceEnableLongNames",
			path:  long,
			flags: Flags{AllowLongPaths: true, LongNames: LongNameForceEnable},
			want:  long,
		},
		{
			name:  "ForceDisableLongNames",
			path:  long,
			flags: Flags{AllowLongPaths: true, LongNames: LongNameForceDisable},
			want:  `\\?\` + long,
		},
		{
			name:  "EnsureExtended",
			path:  `C:\a`,
			flags: Flags{EnsureExtended: true},
			want:  `\\?\C:\a`,
		},
		{
			name: "NoNormalizeKeepsTrailingDots",
			path: `C:\a.\b..\c`,
			flags: Flags{
				NoNormalize: true,
			},
			want: `C:\a.\b..\c`,
		},
		{
			name: "NoNormalizeStillCollapsesSeparatedDots",
			path: `C:\a\..\b`,
			flags: Flags{
				NoNormalize: true,
			},
			want: `C:\b`,
		},
		{
			name:  "EnsureTrailingSlash",
			path:  `C:\a`,
			flags: Flags{EnsureTrailingSlash: true},
			want:  `C:\a\`,
		},
		{
			name:  "LongNamesRequireLongPaths",
			path:  `C:\a`,
			flags: Flags{LongNames: LongNameForceEnable},
			err:   ErrInvalidArgument,
		},
		{
			name:  "ExtendedConflictsWithLongPaths",
			path:  `C:\a`,
			flags: Flags{EnsureExtended: true, AllowLongPaths: true},
			err:   ErrInvalidArgument,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := Canonicalize(test.path, test.flags)
			if test.err != nil {
				if !errors.Is(err, test.err) {
					t.Fatalf("Canonicalize(%q, %+v) = %q, %v; want %v", test.path, test.flags, got, err, test.err)
				}
				return
			}
			if err != nil || got != test.want {
				t.Errorf("Canonicalize(%q, %+v) = %q, %v; want %q, <nil>", test.path, test.flags, got, err, test.want)
			}
		})
	}
}

// A \\?\ prefix on the input is dropped during processing and comes
// back only when the flags or the result's length call for
// extended-length form.
func TestCanonicalizeDevicePrefix(t *testing.T) {
	tests := []struct {
		path  string
		flags Flags
		want  string
	}{
		{`\\?\C:\a\.\b\`, Flags{}, `C:\a\b\`},
		{`\\?\C:\a\.\b\`, Flags{EnsureExtended: true}, `\\?\C:\a\b\`},
		{`\\?\UNC\server\share\.\a`, Flags{}, `\\server\share\a`},
	}
	for _, test := range tests {
		got, err := Canonicalize(test.path, test.flags)
		if err != nil || got != test.want {
			t.Errorf("Canonicalize(%q, %+v) = %q, %v; want %q, <nil>", test.path, test.flags, got, err, test.want)
		}
	}
}

func TestCanonicalizeInto(t *testing.T) {
	t.Run("Fits", func(t *testing.T) {
		got, err := CanonicalizeInto(7, `C:\a\.\b`, Flags{})
		if err != nil || got != `C:\a\b` {
			t.Errorf("CanonicalizeInto(7, ...) = %q, %v; want \"C:\\\\a\\\\b\", <nil>", got, err)
		}
	})
	t.Run("InsufficientBuffer", func(t *testing.T) {
		_, err := CanonicalizeInto(6, `C:\a\.\b`, Flags{})
		var sizeError *SizeError
		if !errors.As(err, &sizeError) {
			t.Fatalf("CanonicalizeInto(6, ...) error = %v; want *SizeError", err)
		}
		if sizeError.Needed != 7 {
			t.Errorf("Needed = %d; want 7", sizeError.Needed)
		}
	})
	t.Run("FillDriveSeparator", func(t *testing.T) {
		got, err := CanonicalizeInto(4, `C:`, Flags{})
		if err != nil || got != `C:\` {
			t.Errorf("CanonicalizeInto(4, \"C:\") = %q, %v; want \"C:\\\\\", <nil>", got, err)
		}
		got, err = CanonicalizeInto(3, `C:`, Flags{})
		if err != nil || got != `C:` {
			t.Errorf("CanonicalizeInto(3, \"C:\") = %q, %v; want \"C:\", <nil>", got, err)
		}
	})
	t.Run("RootlessOverLength", func(t *testing.T) {
		_, err := CanonicalizeInto(10, strings.Repeat("a", 300), Flags{AllowLongPaths: true})
		if !errors.Is(err, ErrNameTooLong) {
			t.Errorf("CanonicalizeInto error = %v; want ErrNameTooLong", err)
		}
	})
	t.Run("ZeroSize", func(t *testing.T) {
		_, err := CanonicalizeInto(0, `C:\a`, Flags{})
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("CanonicalizeInto(0, ...) error = %v; want ErrInvalidArgument", err)
		}
	})
}

func TestCombine(t *testing.T) {
	tests := []struct {
		path1 string
		path2 string
		want  string
		err   bool
	}{
		{path1: ``, path2: ``, err: true},
		{path1: `C:\a`, path2: ``, want: `C:\a`},
		{path1: ``, path2: `a\.\b`, want: `a\b`},
		{path1: `C:\a`, path2: `b`, want: `C:\a\b`},
		{path1: `C:\a\`, path2: `b`, want: `C:\a\b`},
		{path1: `C:\a\b`, path2: `..\c`, want: `C:\a\c`},
		// A leading backslash strips path1 to its root.
		{path1: `C:\a\b`, path2: `\c`, want: `C:\c`},
		{path1: `\\server\share\a`, path2: `\c`, want: `\\server\share\c`},
		// Fully qualified path2 replaces path1 and gains a trailing
		// separator.
		{path1: `C:\a`, path2: `C:\b`, want: `C:\b\`},
		{path1: `C:\a`, path2: `\\server\share`, want: `\\server\share\`},
		{path1: `\\?\C:\a`, path2: `b`, want: `C:\a\b`},
	}
	for _, test := range tests {
		got, err := Combine(test.path1, test.path2, Flags{})
		if test.err {
			if err == nil {
				t.Errorf("Combine(%q, %q) = %q, <nil>; want error", test.path1, test.path2, got)
			}
			continue
		}
		if err != nil || got != test.want {
			t.Errorf("Combine(%q, %q) = %q, %v; want %q, <nil>", test.path1, test.path2, got, err, test.want)
		}
	}
}

func TestAppend(t *testing.T) {
	tests := []struct {
		path string
		size int
		more string
		want string
		err  bool
	}{
		{path: `C:\a`, size: 10, more: `b`, want: `C:\a\b`},
		// A single leading backslash appends rather than strips to root.
		{path: `C:\a`, size: 10, more: `\b`, want: `C:\a\b`},
		{path: `C:\a`, size: 20, more: `\\server\share`, want: `\\server\share\`},
		// On error the original path comes back unchanged.
		{path: `C:\a`, size: 5, more: `bcd`, want: `C:\a`, err: true},
		{path: `C:\a`, size: 0, more: `b`, want: `C:\a`, err: true},
	}
	for _, test := range tests {
		got, err := Append(test.path, test.size, test.more, Flags{})
		if test.err {
			if err == nil || got != test.want {
				t.Errorf("Append(%q, %d, %q) = %q, %v; want %q, error", test.path, test.size, test.more, got, err, test.want)
			}
			continue
		}
		if err != nil || got != test.want {
			t.Errorf("Append(%q, %d, %q) = %q, %v; want %q, <nil>", test.path, test.size, test.more, got, err, test.want)
		}
	}
}

func TestCanonicalizeConcurrent(t *testing.T) {
	var grp errgroup.Group
	for range 8 {
		grp.Go(func() error {
			for _, test := range canonicalizeTests {
				got, err := Canonicalize(test.path, Flags{})
				if err != nil {
					return err
				}
				if got != test.want {
					t.Errorf("Canonicalize(%q) = %q; want %q", test.path, got, test.want)
				}
			}
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		t.Error("Canonicalize:", err)
	}
}
