package engine

import (
	"path/filepath"
	"strconv"

	"github.com/iamNilotpal/litedb/internal/compaction"
	"github.com/iamNilotpal/litedb/internal/iobackend"
	"github.com/iamNilotpal/litedb/internal/record"
	"github.com/iamNilotpal/litedb/internal/segment"
	litedberrors "github.com/iamNilotpal/litedb/pkg/errors"
	"github.com/iamNilotpal/litedb/pkg/filesys"
)

// seqNoRecordKey is the key the seq-no marker's single record carries.
const seqNoRecordKey = "___seq_no___"

// pendingEntry is one write buffered while its enclosing batch's
// TXN_FINISHED marker has not yet been seen during replay.
type pendingEntry struct {
	key  []byte
	pos  record.Position
	kind record.Kind
}

// loadSeqNoOnly restores the sequence counter for a B+tree-indexed engine,
// which has no log to replay: it trusts the seq-no record Close last wrote
// and deletes the file immediately, since it is only valid until the next
// write. If the file is missing on a non-fresh directory, a prior crash lost
// the counter and batching is refused rather than silently resumed at zero.
func (e *Engine) loadSeqNoOnly(isInitial bool) error {
	path := filepath.Join(e.dataDir, seqNoFileName)

	exists, err := filesys.Exists(path)
	if err != nil {
		return err
	}
	if !exists {
		if !isInitial {
			e.batchingDisabled.Store(true)
			e.log.Warnw(
				"seq-no marker missing for existing btree-indexed database; batching disabled",
				"path", path,
			)
		}
		return nil
	}

	backend, err := iobackend.OpenFile(path)
	if err != nil {
		return err
	}
	seqSeg := segment.New(0, backend)

	rec, _, err := seqSeg.ReadAt(0)
	if err != nil {
		seqSeg.Close()
		return litedberrors.NewIOError(err, "failed to read seq-no marker").WithPath(path)
	}

	seq, perr := strconv.ParseUint(string(rec.Value), 10, 64)
	if perr != nil {
		seqSeg.Close()
		return litedberrors.NewParseIntError(perr, "seq-no marker")
	}
	e.seqNo.Store(seq)

	if err := seqSeg.Close(); err != nil {
		return err
	}
	return filesys.DeleteFile(path)
}

// recover rebuilds the in-memory keydir by first replaying any hint file
// a prior merge left behind, then scanning every data segment not already
// covered by it, buffering transactional writes by sequence number until
// their TXN_FINISHED marker is seen.
func (e *Engine) recover(fileIDs []uint32, activeID uint32) error {
	nonMergeID, hasMergeMarker, err := e.readMergeFinished()
	if err != nil {
		return err
	}

	if err := e.replayHintFile(); err != nil {
		return err
	}

	pending := make(map[uint64][]pendingEntry)
	var maxSeq uint64

	for _, id := range fileIDs {
		if hasMergeMarker && id < nonMergeID {
			continue
		}

		seg, err := e.segmentByID(id, activeID)
		if err != nil {
			return err
		}

		if err := e.replaySegment(seg, id, pending, &maxSeq); err != nil {
			return err
		}
	}

	e.seqNo.Store(maxSeq)
	e.log.Infow("recovery complete", "maxSeq", maxSeq, "unterminatedBatches", len(pending))
	return nil
}

func (e *Engine) readMergeFinished() (uint32, bool, error) {
	path := filepath.Join(e.dataDir, compaction.MergeFinishedFileName)
	exists, err := filesys.Exists(path)
	if err != nil || !exists {
		return 0, false, err
	}

	backend, err := iobackend.OpenFile(path)
	if err != nil {
		return 0, false, err
	}
	seg := segment.New(0, backend)
	defer seg.Close()

	return compaction.ReadMergeFinished(seg)
}

func (e *Engine) replayHintFile() error {
	path := filepath.Join(e.dataDir, compaction.HintFileName)
	exists, err := filesys.Exists(path)
	if err != nil || !exists {
		return err
	}

	backend, err := iobackend.OpenFile(path)
	if err != nil {
		return err
	}
	hintSeg := segment.New(0, backend)
	defer hintSeg.Close()

	return compaction.ReadHintFile(hintSeg, func(key []byte, pos record.Position) {
		e.idx.Put(key, pos)
	})
}

func (e *Engine) replaySegment(
	seg *segment.Segment,
	id uint32,
	pending map[uint64][]pendingEntry,
	maxSeq *uint64,
) error {
	var offset int64
	for {
		rec, size, err := seg.ReadAt(offset)
		if err == segment.ErrEOF {
			return nil
		}
		if err != nil {
			return err
		}

		pos := record.Position{FileID: id, Offset: offset, Size: size}
		offset += int64(size)

		seq, realKey := record.ParseSequencedKey(rec.Key)
		if seq > *maxSeq {
			*maxSeq = seq
		}

		switch {
		case rec.Kind == record.KindTxnFinished:
			for _, entry := range pending[seq] {
				e.updateIndex(entry.key, entry.pos, entry.kind)
			}
			delete(pending, seq)

		case seq == record.NonTransactionSeq:
			e.updateIndex(realKey, pos, rec.Kind)

		default:
			pending[seq] = append(pending[seq], pendingEntry{
				key:  append([]byte(nil), realKey...),
				pos:  pos,
				kind: rec.Kind,
			})
		}
	}
}

func (e *Engine) segmentByID(id, activeID uint32) (*segment.Segment, error) {
	if id == activeID {
		return e.activeSeg, nil
	}

	e.oldersMu.RLock()
	defer e.oldersMu.RUnlock()

	seg, ok := e.olders[id]
	if !ok {
		return nil, litedberrors.NewStorageError(
			nil, litedberrors.ErrorCodeSegmentCorrupted, "segment referenced by directory listing went missing",
		).WithSegmentID(int(id))
	}
	return seg, nil
}
