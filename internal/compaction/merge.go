package compaction

import (
	"strconv"

	"github.com/iamNilotpal/litedb/internal/record"
	"github.com/iamNilotpal/litedb/internal/segment"
	litedberrors "github.com/iamNilotpal/litedb/pkg/errors"
)

// MergeFinishedFileName is the well-known marker a completed merge writes.
const MergeFinishedFileName = "merge-finished"

// WriteMergeFinished records nonMergeFileID: recovery skips every data
// segment with an ID below this value, since the hint file already
// reconstructs their index entries. The marker is a single NORMAL record,
// encoded and read through the same codec as any other segment entry.
func WriteMergeFinished(seg *segment.Segment, nonMergeFileID uint32) error {
	_, err := seg.Append(&record.Record{
		Kind:  record.KindNormal,
		Value: []byte(strconv.FormatUint(uint64(nonMergeFileID), 10)),
	})
	return err
}

// ReadMergeFinished reads the marker written by WriteMergeFinished. An
// empty segment means no merge has ever completed; recovery should scan
// every data segment from the start.
func ReadMergeFinished(seg *segment.Segment) (nonMergeFileID uint32, exists bool, err error) {
	rec, _, err := seg.ReadAt(0)
	if err == segment.ErrEOF {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}

	id, perr := strconv.ParseUint(string(rec.Value), 10, 32)
	if perr != nil {
		return 0, false, litedberrors.NewParseIntError(perr, "merge-finished marker")
	}
	return uint32(id), true, nil
}
