// Package compaction provides the on-disk artifact formats an external
// merge process hands back to the engine: the hint file (a flattened copy
// of the keydir for the segments it merged) and the merge-finished marker
// (which segment IDs recovery may skip because the hint file already
// covers them). Deciding when and how to merge segments is not this
// package's concern.
package compaction

import (
	"github.com/iamNilotpal/litedb/internal/record"
	"github.com/iamNilotpal/litedb/internal/segment"
)

// HintFileName is the well-known name recovery looks for merge output under.
const HintFileName = "hint-index"

// WriteHintEntry appends one hint record (key -> encoded Position) to seg.
// Every hint record carries record.KindNormal; the tombstones a merge
// compacted away have no entry at all.
func WriteHintEntry(seg *segment.Segment, key []byte, pos record.Position) error {
	_, err := seg.Append(&record.Record{
		Kind:  record.KindNormal,
		Key:   key,
		Value: record.EncodePosition(pos),
	})
	return err
}

// ReadHintFile replays every entry in the hint segment, calling visit for
// each key -> Position pair in on-disk order.
func ReadHintFile(seg *segment.Segment, visit func(key []byte, pos record.Position)) error {
	var offset int64
	for {
		rec, size, err := seg.ReadAt(offset)
		if err == segment.ErrEOF {
			return nil
		}
		if err != nil {
			return err
		}
		visit(rec.Key, record.DecodePosition(rec.Value))
		offset += int64(size)
	}
}
