package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"CryptoReplyBot/internal/domain"
	"CryptoReplyBot/internal/ports"
)

// runHistoryContract exercises the behavior every history backend must share:
// an empty store contains nothing, recorded ids are visible immediately, and
// records survive a close-and-reopen cycle.
func runHistoryContract(t *testing.T, reopen func() (ports.ReplyHistory, error)) {
	t.Helper()
	ctx := context.Background()

	store, err := reopen()
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	found, err := store.Contains(ctx, "42")
	if err != nil {
		t.Fatalf("contains on empty store: %v", err)
	}
	if found {
		t.Fatal("empty store must not contain anything")
	}

	rec := domain.ReplyRecord{
		PostID:    "42",
		ReplyID:   "900",
		PostText:  "what a pump",
		ReplyText: "canned reply",
		RepliedAt: time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC),
	}
	if err := store.Record(ctx, rec); err != nil {
		t.Fatalf("record: %v", err)
	}

	found, err = store.Contains(ctx, "42")
	if err != nil {
		t.Fatalf("contains after record: %v", err)
	}
	if !found {
		t.Fatal("recorded id must be visible immediately")
	}

	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := reopen()
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer reopened.Close()

	found, err = reopened.Contains(ctx, "42")
	if err != nil {
		t.Fatalf("contains after reopen: %v", err)
	}
	if !found {
		t.Fatal("record lost across reopen")
	}

	found, err = reopened.Contains(ctx, "unknown")
	if err != nil {
		t.Fatalf("contains for unknown id: %v", err)
	}
	if found {
		t.Fatal("unknown id reported as replied")
	}

	second := domain.ReplyRecord{PostID: "7", ReplyID: "901", RepliedAt: time.Now().UTC()}
	if err := reopened.Record(ctx, second); err != nil {
		t.Fatalf("record after reopen: %v", err)
	}
	found, err = reopened.Contains(ctx, "7")
	if err != nil {
		t.Fatalf("contains second id: %v", err)
	}
	if !found {
		t.Fatal("second record not visible")
	}
}

func TestFileStoreContract(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "history.jsonl")
	runHistoryContract(t, func() (ports.ReplyHistory, error) {
		return OpenFileStore(path)
	})
}

func TestSQLiteStoreContract(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "history.db")
	runHistoryContract(t, func() (ports.ReplyHistory, error) {
		return OpenSQLiteStore(path)
	})
}
