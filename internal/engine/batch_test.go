package engine

import (
	"context"
	"testing"

	"github.com/iamNilotpal/litedb/pkg/options"
)

func TestBatchCommitIsAtomicallyVisible(t *testing.T) {
	opts := options.NewDefaultOptions()
	opts.DataDir = t.TempDir()
	e := openTestEngine(t, opts)

	b := e.NewBatch(options.DefaultWriteBatchOptions)
	if err := b.Put([]byte("a"), []byte("1")); err != nil {
		t.Fatalf("Put a: %v", err)
	}
	if err := b.Put([]byte("b"), []byte("2")); err != nil {
		t.Fatalf("Put b: %v", err)
	}

	// Nothing staged should be visible before Commit.
	if _, err := e.Get([]byte("a")); err == nil {
		t.Fatal("uncommitted batch write should not be visible")
	}

	if err := b.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	for key, want := range map[string]string{"a": "1", "b": "2"} {
		got, err := e.Get([]byte(key))
		if err != nil {
			t.Fatalf("Get %s: %v", key, err)
		}
		if string(got) != want {
			t.Fatalf("Get %s = %q, want %q", key, got, want)
		}
	}
}

func TestBatchCommitTwiceFails(t *testing.T) {
	opts := options.NewDefaultOptions()
	opts.DataDir = t.TempDir()
	e := openTestEngine(t, opts)

	b := e.NewBatch(options.DefaultWriteBatchOptions)
	if err := b.Put([]byte("a"), []byte("1")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := b.Commit(); err != nil {
		t.Fatalf("first Commit: %v", err)
	}
	if err := b.Commit(); err == nil {
		t.Fatal("expected an error committing the same batch twice")
	}
}

func TestBatchExceedingMaxBatchNumRejected(t *testing.T) {
	opts := options.NewDefaultOptions()
	opts.DataDir = t.TempDir()
	e := openTestEngine(t, opts)

	b := e.NewBatch(options.WriteBatchOptions{MaxBatchNum: 2, SyncWrites: false})
	if err := b.Put([]byte("a"), []byte("1")); err != nil {
		t.Fatalf("Put a: %v", err)
	}
	if err := b.Put([]byte("b"), []byte("2")); err != nil {
		t.Fatalf("Put b: %v", err)
	}
	if err := b.Put([]byte("c"), []byte("3")); err == nil {
		t.Fatal("expected an error exceeding MaxBatchNum")
	}
}

func TestBatchDeleteOfAbsentUnstagedKeyIsNoop(t *testing.T) {
	opts := options.NewDefaultOptions()
	opts.DataDir = t.TempDir()
	e := openTestEngine(t, opts)

	b := e.NewBatch(options.DefaultWriteBatchOptions)
	if err := b.Delete([]byte("never-seen")); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := b.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
}

func TestBatchVisibleAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	opts := options.NewDefaultOptions()
	opts.DataDir = dir

	e1, err := Open(context.Background(), &Config{Options: &opts, Logger: testLogger(t)})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	b := e1.NewBatch(options.DefaultWriteBatchOptions)
	if err := b.Put([]byte("x"), []byte("1")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := b.Put([]byte("y"), []byte("2")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := b.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if err := e1.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	e2, err := Open(context.Background(), &Config{Options: &opts, Logger: testLogger(t)})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer e2.Close()

	for key, want := range map[string]string{"x": "1", "y": "2"} {
		got, err := e2.Get([]byte(key))
		if err != nil {
			t.Fatalf("Get %s after reopen: %v", key, err)
		}
		if string(got) != want {
			t.Fatalf("Get %s = %q, want %q", key, got, want)
		}
	}
}
