package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SqliteStore is the persistent single-node backend: cached resolutions
// survive restarts without requiring a redis deployment.
type SqliteStore struct {
	db   *sql.DB
	stop chan struct{}
}

// NewSqliteStore opens (or creates) the database at path and starts a
// periodic sweep of expired rows when sweepInterval > 0.
func NewSqliteStore(path string, sweepInterval time.Duration) (*SqliteStore, error) {
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open store database: %w", err)
	}
	schema := `
	CREATE TABLE IF NOT EXISTS kv_entries (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL,
		expiry INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS rate_windows (
		key TEXT PRIMARY KEY,
		count INTEGER NOT NULL,
		window_end INTEGER NOT NULL
	);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create store schema: %w", err)
	}
	s := &SqliteStore{db: db, stop: make(chan struct{})}
	if sweepInterval > 0 {
		go s.janitor(sweepInterval)
	}
	return s, nil
}

// Close stops the sweeper and closes the database.
func (s *SqliteStore) Close() error {
	close(s.stop)
	return s.db.Close()
}

func (s *SqliteStore) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			now := time.Now().UnixMilli()
			s.db.Exec(`DELETE FROM kv_entries WHERE expiry < ?`, now)
			s.db.Exec(`DELETE FROM rate_windows WHERE window_end < ?`, now)
		case <-s.stop:
			return
		}
	}
}

func (s *SqliteStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	var expiry int64
	err := s.db.QueryRowContext(ctx, `SELECT value, expiry FROM kv_entries WHERE key = ?`, key).Scan(&value, &expiry)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if time.Now().UnixMilli() > expiry {
		s.db.ExecContext(ctx, `DELETE FROM kv_entries WHERE key = ?`, key)
		return nil, false, nil
	}
	return value, true, nil
}

func (s *SqliteStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	expiry := time.Now().Add(ttl).UnixMilli()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv_entries (key, value, expiry) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, expiry = excluded.expiry`,
		key, value, expiry)
	return err
}

func (s *SqliteStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv_entries WHERE key = ?`, key)
	return err
}

func (s *SqliteStore) Flush(ctx context.Context) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM kv_entries`)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

func (s *SqliteStore) Len(ctx context.Context) (int, error) {
	var n int
	now := time.Now().UnixMilli()
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM kv_entries WHERE expiry >= ?`, now).Scan(&n)
	return n, err
}

func (s *SqliteStore) IncrementWindow(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, err
	}
	defer tx.Rollback()

	now := time.Now()
	var count int64
	var windowEnd int64
	err = tx.QueryRowContext(ctx, `SELECT count, window_end FROM rate_windows WHERE key = ?`, key).Scan(&count, &windowEnd)
	switch {
	case err == sql.ErrNoRows || now.UnixMilli() > windowEnd:
		count = 1
		windowEnd = now.Add(window).UnixMilli()
		_, err = tx.ExecContext(ctx,
			`INSERT INTO rate_windows (key, count, window_end) VALUES (?, ?, ?)
			 ON CONFLICT(key) DO UPDATE SET count = excluded.count, window_end = excluded.window_end`,
			key, count, windowEnd)
		if err != nil {
			return 0, 0, err
		}
	case err != nil:
		return 0, 0, err
	default:
		count++
		if _, err := tx.ExecContext(ctx, `UPDATE rate_windows SET count = ? WHERE key = ?`, count, key); err != nil {
			return 0, 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, 0, err
	}
	return count, time.UnixMilli(windowEnd).Sub(now), nil
}
