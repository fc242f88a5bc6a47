// Copyright 2026 The zb Authors
// SPDX-License-Identifier: MIT

package urlregistry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"zb.256lights.llc/winpath/internal/testcontext"
	"zb.256lights.llc/winpath/winurl"
	"zombiezen.com/go/log/testlog"
)

func TestDB(t *testing.T) {
	ctx, cancel := testcontext.New(t)
	defer cancel()

	db := OpenDB(filepath.Join(t.TempDir(), "urlregistry.db"))
	defer func() {
		if err := db.Close(); err != nil {
			t.Error("Close:", err)
		}
	}()

	// A fresh registry is empty.
	if got, err := db.Prefixes(ctx); err != nil || len(got) > 0 {
		t.Errorf("Prefixes of empty registry = %v, %v; want [], <nil>", got, err)
	}
	if got, err := db.DefaultPrefix(ctx); err != nil || got != "" {
		t.Errorf("DefaultPrefix of empty registry = %q, %v; want \"\", <nil>", got, err)
	}

	if err := db.SetPrefix(ctx, "www.", "http://"); err != nil {
		t.Fatal(err)
	}
	if err := db.SetPrefix(ctx, "ftp.", "gopher://"); err != nil {
		t.Fatal(err)
	}
	// Updating a pattern keeps its position in the table.
	if err := db.SetPrefix(ctx, "ftp.", "ftp://"); err != nil {
		t.Fatal(err)
	}
	if err := db.SetDefaultPrefix(ctx, "http://"); err != nil {
		t.Fatal(err)
	}

	got, err := db.Prefixes(ctx)
	if err != nil {
		t.Fatal(err)
	}
	want := []winurl.Prefix{
		{Pattern: "www.", Prefix: "http://"},
		{Pattern: "ftp.", Prefix: "ftp://"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Prefixes (-want +got):\n%s", diff)
	}
	if got, err := db.DefaultPrefix(ctx); err != nil || got != "http://" {
		t.Errorf("DefaultPrefix = %q, %v; want %q, <nil>", got, err, "http://")
	}

	// The database serves winurl directly.
	gotURL, applied, err := winurl.ApplyScheme(ctx, db, "www.example.com", 128, winurl.ApplyFlags{GuessScheme: true})
	if wantURL := "http://www.example.com"; err != nil || !applied || gotURL != wantURL {
		t.Errorf("ApplyScheme(...) = %q, %t, %v; want %q, true, <nil>", gotURL, applied, err, wantURL)
	}
}

func TestDBReopen(t *testing.T) {
	ctx, cancel := testcontext.New(t)
	defer cancel()
	path := filepath.Join(t.TempDir(), "urlregistry.db")

	db := OpenDB(path)
	if err := db.SetDefaultPrefix(ctx, "https://"); err != nil {
		t.Fatal(err)
	}
	if err := db.Close(); err != nil {
		t.Fatal(err)
	}

	db = OpenDB(path)
	defer func() {
		if err := db.Close(); err != nil {
			t.Error("Close:", err)
		}
	}()
	if got, err := db.DefaultPrefix(ctx); err != nil || got != "https://" {
		t.Errorf("DefaultPrefix after reopen = %q, %v; want %q, <nil>", got, err, "https://")
	}
}

func TestMain(m *testing.M) {
	testlog.Main(nil)
	os.Exit(m.Run())
}
