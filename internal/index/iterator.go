package index

import (
	"bytes"
	"sort"

	"github.com/iamNilotpal/litedb/internal/record"
)

type item struct {
	key string
	pos record.Position
}

// sliceIterator is the snapshot-based Iterator shared by memIndex and
// boltIndex: both collect their entries into a slice, sort and filter it
// once at construction, then walk it with a cursor (mirroring the
// BTreeIterator snapshot-plus-binary-search-seek approach the B+tree
// index's own iterator uses).
type sliceIterator struct {
	items  []item
	cursor int
	opts   IteratorOptions
}

func newSliceIterator(items []item, opts IteratorOptions) *sliceIterator {
	sort.Slice(items, func(i, j int) bool { return items[i].key < items[j].key })

	if len(opts.Prefix) > 0 {
		filtered := make([]item, 0, len(items))
		for _, it := range items {
			if bytes.HasPrefix([]byte(it.key), opts.Prefix) {
				filtered = append(filtered, it)
			}
		}
		items = filtered
	}

	if opts.Reverse {
		for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
			items[i], items[j] = items[j], items[i]
		}
	}

	it := &sliceIterator{items: items, opts: opts}
	it.Rewind()
	return it
}

func (it *sliceIterator) Rewind() {
	it.cursor = 0
}

// Seek places the cursor at the first entry at-or-after key, or, when
// iterating in reverse, the first entry at-or-before key.
func (it *sliceIterator) Seek(key []byte) {
	target := string(key)
	it.cursor = sort.Search(len(it.items), func(i int) bool {
		if it.opts.Reverse {
			return it.items[i].key <= target
		}
		return it.items[i].key >= target
	})
}

func (it *sliceIterator) Valid() bool {
	return it.cursor >= 0 && it.cursor < len(it.items)
}

func (it *sliceIterator) Next() {
	it.cursor++
}

func (it *sliceIterator) Key() []byte {
	return []byte(it.items[it.cursor].key)
}

func (it *sliceIterator) Position() record.Position {
	return it.items[it.cursor].pos
}
