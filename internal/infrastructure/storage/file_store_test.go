package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"CryptoReplyBot/internal/domain"
)

func TestFileStoreAppendsOneLinePerRecord(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "history.jsonl")
	ctx := context.Background()

	store, err := OpenFileStore(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	for _, id := range []string{"1", "2", "3"} {
		if err := store.Record(ctx, domain.ReplyRecord{PostID: id, RepliedAt: time.Now()}); err != nil {
			t.Fatalf("record %s: %v", id, err)
		}
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
}

func TestFileStoreSkipsCorruptLines(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "history.jsonl")
	content := `{"post_id":"keep","replied_at":"2026-08-20T10:00:00Z"}
not json at all
{"post_id":"also-keep","replied_at":"2026-08-20T11:00:00Z"}
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	store, err := OpenFileStore(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	for _, id := range []string{"keep", "also-keep"} {
		found, err := store.Contains(ctx, id)
		if err != nil {
			t.Fatalf("contains %s: %v", id, err)
		}
		if !found {
			t.Fatalf("id %s not loaded", id)
		}
	}
}
