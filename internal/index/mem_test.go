package index

import (
	"reflect"
	"testing"

	"github.com/iamNilotpal/litedb/internal/record"
)

func TestMemIndexPutGetDelete(t *testing.T) {
	idx := NewMemory()

	if _, existed := idx.Put([]byte("a"), record.Position{FileID: 1, Offset: 0, Size: 10}); existed {
		t.Fatal("expected no previous entry for a")
	}

	pos, ok := idx.Get([]byte("a"))
	if !ok || pos.FileID != 1 {
		t.Fatalf("expected entry for a, got %+v ok=%v", pos, ok)
	}

	old, existed := idx.Put([]byte("a"), record.Position{FileID: 2, Offset: 5, Size: 3})
	if !existed || old.FileID != 1 {
		t.Fatalf("expected old entry fileID=1, got %+v existed=%v", old, existed)
	}

	old, existed = idx.Delete([]byte("a"))
	if !existed || old.FileID != 2 {
		t.Fatalf("expected deleted entry fileID=2, got %+v existed=%v", old, existed)
	}

	if _, ok := idx.Get([]byte("a")); ok {
		t.Fatal("expected a to be gone after delete")
	}
}

func TestMemIndexListKeysSorted(t *testing.T) {
	idx := NewMemory()
	for _, k := range []string{"c", "a", "b"} {
		idx.Put([]byte(k), record.Position{})
	}

	keys := idx.ListKeys()
	var got []string
	for _, k := range keys {
		got = append(got, string(k))
	}

	if !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("unexpected key order: %v", got)
	}
}

func TestMemIndexIteratorPrefixAndReverse(t *testing.T) {
	idx := NewMemory()
	for _, k := range []string{"user:1", "user:2", "order:1"} {
		idx.Put([]byte(k), record.Position{})
	}

	it := idx.Iterator(IteratorOptions{Prefix: []byte("user:")})
	var got []string
	for it.Rewind(); it.Valid(); it.Next() {
		got = append(got, string(it.Key()))
	}
	if !reflect.DeepEqual(got, []string{"user:1", "user:2"}) {
		t.Fatalf("prefix iteration mismatch: %v", got)
	}

	it = idx.Iterator(IteratorOptions{Reverse: true})
	got = nil
	for it.Rewind(); it.Valid(); it.Next() {
		got = append(got, string(it.Key()))
	}
	if !reflect.DeepEqual(got, []string{"user:2", "user:1", "order:1"}) {
		t.Fatalf("reverse iteration mismatch: %v", got)
	}
}

func TestMemIndexIteratorSeek(t *testing.T) {
	idx := NewMemory()
	for _, k := range []string{"a", "b", "c", "d"} {
		idx.Put([]byte(k), record.Position{})
	}

	it := idx.Iterator(IteratorOptions{})
	it.Seek([]byte("c"))
	if !it.Valid() || string(it.Key()) != "c" {
		t.Fatalf("expected seek to land on c, got %q valid=%v", it.Key(), it.Valid())
	}
}
