// Package storage provides the reply-history backends. All backends share
// the same contract: membership check, synchronous append, load at startup.
// Concurrent bot instances against one backend are unsupported.
package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"CryptoReplyBot/internal/domain"
	"CryptoReplyBot/internal/ports"
)

type fileRecord struct {
	PostID    string    `json:"post_id"`
	ReplyID   string    `json:"reply_id,omitempty"`
	RepliedAt time.Time `json:"replied_at"`
}

// FileStore is the default backend: an append-only JSONL file, read fully at
// startup into an in-memory set and fsynced on every record.
type FileStore struct {
	file *os.File
	seen map[string]struct{}
}

var _ ports.ReplyHistory = (*FileStore)(nil)

// OpenFileStore loads the history file, creating it when absent. Lines that
// fail to parse are skipped rather than aborting the run.
func OpenFileStore(path string) (*FileStore, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open history %s: %w", path, err)
	}

	seen := make(map[string]struct{})
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec fileRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			continue
		}
		if rec.PostID != "" {
			seen[rec.PostID] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("read history %s: %w", path, err)
	}

	if _, err := file.Seek(0, io.SeekEnd); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("seek history %s: %w", path, err)
	}

	return &FileStore{file: file, seen: seen}, nil
}

// Contains reports whether a post id is already in the history.
func (s *FileStore) Contains(_ context.Context, postID string) (bool, error) {
	_, ok := s.seen[postID]
	return ok, nil
}

// Record appends one history line and syncs it to disk before returning, so
// a crash after a successful reply never loses the record.
func (s *FileStore) Record(_ context.Context, rec domain.ReplyRecord) error {
	line, err := json.Marshal(fileRecord{
		PostID:    rec.PostID,
		ReplyID:   rec.ReplyID,
		RepliedAt: rec.RepliedAt,
	})
	if err != nil {
		return fmt.Errorf("marshal history record: %w", err)
	}

	if _, err := s.file.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("append history record: %w", err)
	}
	if err := s.file.Sync(); err != nil {
		return fmt.Errorf("sync history: %w", err)
	}

	s.seen[rec.PostID] = struct{}{}
	return nil
}

// Close releases the underlying file.
func (s *FileStore) Close() error {
	return s.file.Close()
}
