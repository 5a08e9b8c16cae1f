package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"CryptoReplyBot/internal/domain"
	"CryptoReplyBot/internal/ports"
)

const historyTable = "reply_history"

const createTableDDL = `CREATE TABLE IF NOT EXISTS reply_history (
	post_id TEXT PRIMARY KEY,
	reply_id TEXT NOT NULL,
	post_text TEXT NOT NULL DEFAULT '',
	reply_text TEXT NOT NULL DEFAULT '',
	replied_at TIMESTAMP NOT NULL
)`

// SQLStore backs the reply history with a relational table. The same
// implementation serves sqlite and postgres; only driver and placeholder
// format differ.
type SQLStore struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var _ ports.ReplyHistory = (*SQLStore)(nil)

// OpenSQLiteStore opens (and if needed initializes) a local sqlite history.
func OpenSQLiteStore(path string) (*SQLStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite history: %w", err)
	}
	return newSQLStore(db, sq.Question)
}

// OpenPostgresStore connects to a shared postgres history.
func OpenPostgresStore(dsn string) (*SQLStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres history: %w", err)
	}
	return newSQLStore(db, sq.Dollar)
}

func newSQLStore(db *sql.DB, placeholder sq.PlaceholderFormat) (*SQLStore, error) {
	if _, err := db.Exec(createTableDDL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init history table: %w", err)
	}
	return &SQLStore{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(placeholder),
	}, nil
}

// Contains reports whether a post id is already in the history.
func (s *SQLStore) Contains(ctx context.Context, postID string) (bool, error) {
	query, args, err := s.builder.
		Select("1").
		From(historyTable).
		Where(sq.Eq{"post_id": postID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build contains query: %w", err)
	}

	var one int
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query history: %w", err)
	}
	return true, nil
}

// Record inserts one history row. The post id is the primary key, so a
// double insert surfaces as an error instead of silently duplicating.
func (s *SQLStore) Record(ctx context.Context, rec domain.ReplyRecord) error {
	query, args, err := s.builder.
		Insert(historyTable).
		Columns("post_id", "reply_id", "post_text", "reply_text", "replied_at").
		Values(rec.PostID, rec.ReplyID, rec.PostText, rec.ReplyText, rec.RepliedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert history record: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *SQLStore) Close() error {
	return s.db.Close()
}
