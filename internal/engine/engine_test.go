package engine

import (
	"context"
	"testing"

	"github.com/iamNilotpal/litedb/pkg/options"
	"go.uber.org/zap"
)

func testLogger(t *testing.T) *zap.SugaredLogger {
	t.Helper()
	return zap.NewNop().Sugar()
}

func openTestEngine(t *testing.T, opts options.Options) *Engine {
	t.Helper()
	e, err := Open(context.Background(), &Config{Options: &opts, Logger: testLogger(t)})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { e.Close() })
	return e
}

func TestPutGetDelete(t *testing.T) {
	opts := options.NewDefaultOptions()
	opts.DataDir = t.TempDir()
	e := openTestEngine(t, opts)

	if err := e.Put([]byte("k1"), []byte("v1")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := e.Get([]byte("k1"))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "v1" {
		t.Fatalf("Get = %q, want v1", got)
	}

	old, err := e.Delete([]byte("k1"))
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if string(old) != "v1" {
		t.Fatalf("Delete returned %q, want v1", old)
	}
	if _, err := e.Get([]byte("k1")); err == nil {
		t.Fatal("expected an error reading a deleted key")
	}

	// Deleting an absent key is a no-op, not an error.
	if old, err := e.Delete([]byte("absent")); err != nil || old != nil {
		t.Fatalf("Delete of absent key should be a no-op, got (%v, %v)", old, err)
	}
}

func TestDeleteFastNoOpOnAbsentKey(t *testing.T) {
	opts := options.NewDefaultOptions()
	opts.DataDir = t.TempDir()
	e := openTestEngine(t, opts)

	reclaimableBefore := e.ReclaimableBytes()
	if err := e.DeleteFast([]byte("never-written")); err != nil {
		t.Fatalf("DeleteFast: %v", err)
	}
	if _, err := e.Get([]byte("never-written")); err == nil {
		t.Fatal("expected NotFindKey after DeleteFast of an absent key")
	}
	if e.ReclaimableBytes() != reclaimableBefore {
		t.Fatal("DeleteFast of an absent key should not write a tombstone")
	}
}

func TestEmptyKeyRejected(t *testing.T) {
	opts := options.NewDefaultOptions()
	opts.DataDir = t.TempDir()
	e := openTestEngine(t, opts)

	if err := e.Put(nil, []byte("v")); err == nil {
		t.Fatal("expected an error writing an empty key")
	}
}

func TestRecoveryRebuildsIndexAfterReopen(t *testing.T) {
	dir := t.TempDir()
	opts := options.NewDefaultOptions()
	opts.DataDir = dir

	e1, err := Open(context.Background(), &Config{Options: &opts, Logger: testLogger(t)})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := e1.Put([]byte("k1"), []byte("v1")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := e1.Put([]byte("k2"), []byte("v2")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, err := e1.Delete([]byte("k1")); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := e1.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	e2, err := Open(context.Background(), &Config{Options: &opts, Logger: testLogger(t)})
	if err != nil {
		t.Fatalf("reopen Open: %v", err)
	}
	defer e2.Close()

	if _, err := e2.Get([]byte("k1")); err == nil {
		t.Fatal("k1 should still read as deleted after recovery")
	}
	got, err := e2.Get([]byte("k2"))
	if err != nil {
		t.Fatalf("Get k2 after recovery: %v", err)
	}
	if string(got) != "v2" {
		t.Fatalf("Get k2 = %q, want v2", got)
	}
}

func TestSegmentRotationOnSmallCap(t *testing.T) {
	opts := options.NewDefaultOptions()
	opts.DataDir = t.TempDir()
	opts.SegmentCap = options.MinSegmentCap
	e := openTestEngine(t, opts)

	value := make([]byte, 4096)
	for i := 0; i < 2000; i++ {
		key := []byte{byte(i), byte(i >> 8)}
		if err := e.Put(key, value); err != nil {
			t.Fatalf("Put %d: %v", i, err)
		}
	}

	if len(e.olders) == 0 {
		t.Fatal("expected at least one rotated-out older segment")
	}

	last := 1999
	key := []byte{byte(last), byte(last >> 8)}
	got, err := e.Get(key)
	if err != nil {
		t.Fatalf("Get after rotation: %v", err)
	}
	if len(got) != len(value) {
		t.Fatalf("Get after rotation returned %d bytes, want %d", len(got), len(value))
	}
}
