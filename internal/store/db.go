// Package store is the canonical keyed storage of leads: SQLite, one row per
// real-world school, single logical writer.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"
)

type DB struct {
	Pool *sql.DB
	lock *flock.Flock
}

// Open opens (creating if needed) the store at path and takes an exclusive
// file lock next to it. The lock enforces the single-writer assumption across
// processes; within the process SQLite gets one connection, so every upsert is
// one serialized transaction.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	lock := flock.New(path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock store: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("store %s is in use by another process", path)
	}

	// modernc sqlite uses DSN like: file:foo.db?_pragma=busy_timeout(5000)
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)

	pool, err := sql.Open("sqlite", dsn)
	if err != nil {
		_ = lock.Unlock()
		return nil, err
	}

	pool.SetMaxOpenConns(1) // sqlite wants 1 writer
	pool.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := pool.PingContext(ctx); err != nil {
		_ = pool.Close()
		_ = lock.Unlock()
		return nil, err
	}

	if err := Migrate(pool); err != nil {
		_ = pool.Close()
		_ = lock.Unlock()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &DB{Pool: pool, lock: lock}, nil
}

func (d *DB) Close() error {
	if d == nil {
		return nil
	}
	if d.lock != nil {
		_ = d.lock.Unlock()
	}
	if d.Pool == nil {
		return nil
	}
	return d.Pool.Close()
}
