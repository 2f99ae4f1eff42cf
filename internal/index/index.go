// Package index maintains the in-memory key -> record.Position mapping
// (the keydir) that lets reads jump straight to a value's location on disk
// without scanning the log.
package index

import (
	"github.com/iamNilotpal/litedb/internal/record"
)

// Index is the keydir abstraction. Two backends satisfy it: an in-memory
// map rebuilt by log replay on every Open (NewMemory), and a persistent
// B+tree that survives restarts without replay (NewBolt).
type Index interface {
	// Put records pos for key, returning the previous Position if one existed.
	Put(key []byte, pos record.Position) (old record.Position, existed bool)
	// Get returns the current Position for key, if any.
	Get(key []byte) (record.Position, bool)
	// Delete removes key from the index, returning its last Position if one existed.
	Delete(key []byte) (old record.Position, existed bool)
	// ListKeys returns every key currently in the index, in ascending order.
	ListKeys() [][]byte
	// Iterator returns a snapshot-based Iterator over the index as of now.
	Iterator(opts IteratorOptions) Iterator
	// Size reports the number of entries currently indexed.
	Size() int
	// Close releases resources held by the index.
	Close() error
}

// IteratorOptions controls iteration order and key filtering.
type IteratorOptions struct {
	// Prefix, if non-empty, restricts iteration to keys sharing it.
	Prefix []byte
	// Reverse walks keys in descending order when true.
	Reverse bool
}

// Iterator walks index entries in key order (descending if constructed
// with Reverse), optionally restricted to a Prefix. It is a snapshot taken
// at construction time: writes made after Iterator() is called are not observed.
type Iterator interface {
	// Rewind resets the iterator to its first entry.
	Rewind()
	// Seek advances to the first entry at or after key (at or before, if reversed).
	Seek(key []byte)
	// Valid reports whether the cursor is positioned on an entry.
	Valid() bool
	// Next advances the cursor by one entry.
	Next()
	// Key returns the entry at the current cursor position.
	Key() []byte
	// Position returns the Position stored for the current entry.
	Position() record.Position
}
