package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/spigell/interviu/internal/interview"
)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id TEXT PRIMARY KEY,
	owner_id TEXT NOT NULL,
	data TEXT NOT NULL,
	finalized INTEGER NOT NULL DEFAULT 0,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sessions_owner ON sessions(owner_id, created_at);
`

// SQLite stores each session as a JSON document in a single table.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path.
// An empty path or ":memory:" selects a private in-memory database.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	path = strings.TrimSpace(path)
	dsn := ":memory:"
	if path != "" && path != ":memory:" {
		dsn = fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Single writer. Also keeps an in-memory database alive.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) Create(ctx context.Context, sess *interview.Session) error {
	data, err := encode(sess)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, owner_id, data, finalized, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		sess.ID, sess.OwnerID, string(data), sess.Finalized(), unixNano(sess.CreatedAt), unixNano(sess.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert session %s: %w", sess.ID, err)
	}
	return nil
}

func (s *SQLite) Get(ctx context.Context, id string) (*interview.Session, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM sessions WHERE id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, interview.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query session %s: %w", id, err)
	}
	return decode([]byte(data))
}

func (s *SQLite) Save(ctx context.Context, sess *interview.Session) error {
	data, err := encode(sess)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE sessions SET owner_id = ?, data = ?, finalized = ?, updated_at = ? WHERE id = ?`,
		sess.OwnerID, string(data), sess.Finalized(), unixNano(sess.UpdatedAt), sess.ID,
	)
	if err != nil {
		return fmt.Errorf("update session %s: %w", sess.ID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update session %s: %w", sess.ID, err)
	}
	if n == 0 {
		return interview.ErrNotFound
	}
	return nil
}

func (s *SQLite) ListByOwner(ctx context.Context, owner string) ([]*interview.Session, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT data FROM sessions WHERE owner_id = ? ORDER BY created_at DESC, id DESC`, owner)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []*interview.Session
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sess, err := decode([]byte(data))
		if err != nil {
			return nil, err
		}
		out = append(out, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return out, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

var _ Store = (*SQLite)(nil)

func unixNano(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixNano()
}
