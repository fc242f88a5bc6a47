// Copyright 2026 The zb Authors
// SPDX-License-Identifier: MIT

package urlregistry

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"zb.256lights.llc/winpath/winurl"
	"zombiezen.com/go/log"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitemigration"
	"zombiezen.com/go/sqlite/sqlitex"
)

// DB is a scheme registry persisted in a SQLite database.
// Callers are responsible for calling [DB.Close] on the returned value.
type DB struct {
	pool *sqlitemigration.Pool
}

// OpenDB opens (creating and migrating as needed)
// the registry database at the given path.
func OpenDB(path string) *DB {
	return &DB{
		pool: sqlitemigration.NewPool(path, loadSchema(), sqlitemigration.Options{
			Flags:       sqlite.OpenCreate | sqlite.OpenReadWrite,
			PrepareConn: prepareConn,
			OnError: func(err error) {
				log.Errorf(context.Background(), "URL registry migration: %v", err)
			},
		}),
	}
}

// Close releases the database connections.
func (db *DB) Close() error {
	return db.pool.Close()
}

// Prefixes implements [winurl.SchemeRegistry].
func (db *DB) Prefixes(ctx context.Context) ([]winurl.Prefix, error) {
	conn, err := db.pool.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("list url prefixes: %v", err)
	}
	defer db.pool.Put(conn)

	var prefixes []winurl.Prefix
	err = sqlitex.ExecuteFS(conn, sqlFiles(), "prefixes.sql", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			prefixes = append(prefixes, winurl.Prefix{
				Pattern: stmt.GetText("pattern"),
				Prefix:  stmt.GetText("prefix"),
			})
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("list url prefixes: %v", err)
	}
	return prefixes, nil
}

// DefaultPrefix implements [winurl.SchemeRegistry].
// An unset default prefix yields the empty string without error.
func (db *DB) DefaultPrefix(ctx context.Context) (string, error) {
	conn, err := db.pool.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("get default url prefix: %v", err)
	}
	defer db.pool.Put(conn)

	prefix := ""
	err = sqlitex.ExecuteFS(conn, sqlFiles(), "default_prefix.sql", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			prefix = stmt.GetText("prefix")
			return nil
		},
	})
	if err != nil {
		return "", fmt.Errorf("get default url prefix: %v", err)
	}
	return prefix, nil
}

// SetPrefix adds a pattern to the end of the guess table,
// or updates its prefix if the pattern is already present.
func (db *DB) SetPrefix(ctx context.Context, pattern, prefix string) error {
	conn, err := db.pool.Get(ctx)
	if err != nil {
		return fmt.Errorf("set url prefix %q: %v", pattern, err)
	}
	defer db.pool.Put(conn)

	err = sqlitex.ExecuteFS(conn, sqlFiles(), "upsert_prefix.sql", &sqlitex.ExecOptions{
		Named: map[string]any{
			":pattern": pattern,
			":prefix":  prefix,
		},
	})
	if err != nil {
		return fmt.Errorf("set url prefix %q: %v", pattern, err)
	}
	return nil
}

// SetDefaultPrefix sets the prefix applied when no guess matches.
func (db *DB) SetDefaultPrefix(ctx context.Context, prefix string) error {
	conn, err := db.pool.Get(ctx)
	if err != nil {
		return fmt.Errorf("set default url prefix: %v", err)
	}
	defer db.pool.Put(conn)

	err = sqlitex.ExecuteFS(conn, sqlFiles(), "set_default_prefix.sql", &sqlitex.ExecOptions{
		Named: map[string]any{":prefix": prefix},
	})
	if err != nil {
		return fmt.Errorf("set default url prefix: %v", err)
	}
	return nil
}

func prepareConn(conn *sqlite.Conn) error {
	if err := sqlitex.ExecuteTransient(conn, "PRAGMA journal_mode = wal;", nil); err != nil {
		return err
	}
	if err := sqlitex.ExecuteTransient(conn, "PRAGMA foreign_keys = on;", nil); err != nil {
		return err
	}
	return nil
}

//go:embed sql/*.sql
//go:embed sql/schema/*.sql
var rawSQLFiles embed.FS

func sqlFiles() fs.FS {
	sub, err := fs.Sub(rawSQLFiles, "sql")
	if err != nil {
		panic(err)
	}
	return sub
}

var schemaState struct {
	init   sync.Once
	schema sqlitemigration.Schema
	err    error
}

func loadSchema() sqlitemigration.Schema {
	schemaState.init.Do(func() {
		for i := 1; ; i++ {
			migration, err := fs.ReadFile(sqlFiles(), fmt.Sprintf("schema/%02d.sql", i))
			if errors.Is(err, fs.ErrNotExist) {
				break
			}
			if err != nil {
				schemaState.err = err
				return
			}
			schemaState.schema.Migrations = append(schemaState.schema.Migrations, string(migration))
		}
	})

	if schemaState.err != nil {
		panic(schemaState.err)
	}
	return schemaState.schema
}
