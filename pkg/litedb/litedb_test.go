package litedb

import (
	"testing"

	"github.com/iamNilotpal/litedb/internal/index"
	"github.com/iamNilotpal/litedb/pkg/options"
)

func TestOpenPutGetCloseReopen(t *testing.T) {
	dir := t.TempDir()

	db, err := Open(options.WithDataDir(dir))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := db.Put([]byte("hello"), []byte("world")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	db2, err := Open(options.WithDataDir(dir))
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db2.Close()

	got, err := db2.Get([]byte("hello"))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "world" {
		t.Fatalf("Get = %q, want world", got)
	}
}

func TestIteratorOverKeys(t *testing.T) {
	dir := t.TempDir()
	db, err := Open(options.WithDataDir(dir))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	for _, k := range []string{"b", "a", "c"} {
		if err := db.Put([]byte(k), []byte(k)); err != nil {
			t.Fatalf("Put %s: %v", k, err)
		}
	}

	it := db.Iterator(index.IteratorOptions{})
	var seen []string
	for it.Rewind(); it.Valid(); it.Next() {
		seen = append(seen, string(it.Key()))
	}

	want := []string{"a", "b", "c"}
	if len(seen) != len(want) {
		t.Fatalf("got %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("got %v, want %v", seen, want)
		}
	}
}
