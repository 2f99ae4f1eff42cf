package engine

import (
	"github.com/iamNilotpal/litedb/internal/iobackend"
	"github.com/iamNilotpal/litedb/internal/record"
	"github.com/iamNilotpal/litedb/internal/segment"
	litedberrors "github.com/iamNilotpal/litedb/pkg/errors"
	"github.com/iamNilotpal/litedb/pkg/seginfo"
)

// appendLog encodes rec, rotating the active segment first if appending it
// would overflow SegmentCap, appends it, and applies the sync policy
// (SyncWrites, or the BytesPerSync threshold).
func (e *Engine) appendLog(rec *record.Record) (record.Position, error) {
	e.activeMu.Lock()
	defer e.activeMu.Unlock()

	needed := int64(record.EncodedLength(rec))
	if e.activeSeg.Size()+needed > e.opts.SegmentCap {
		if err := e.rotateLocked(); err != nil {
			return record.Position{}, err
		}
	}

	pos, err := e.activeSeg.Append(rec)
	if err != nil {
		return record.Position{}, err
	}

	e.bytesSinceSync += int64(pos.Size)

	shouldSync := e.opts.SyncWrites ||
		(e.opts.BytesPerSync > 0 && e.bytesSinceSync >= e.opts.BytesPerSync)
	if shouldSync {
		if err := e.activeSeg.Sync(); err != nil {
			return record.Position{}, err
		}
		e.bytesSinceSync = 0
	}

	return pos, nil
}

// rotateLocked archives the current active segment into olders and opens
// a fresh one under the next file ID. Callers must hold activeMu.
func (e *Engine) rotateLocked() error {
	if err := e.activeSeg.Sync(); err != nil {
		return err
	}

	oldID := e.activeSeg.FileID
	e.oldersMu.Lock()
	e.olders[oldID] = e.activeSeg
	e.oldersMu.Unlock()

	newID := oldID + 1
	backend, err := iobackend.OpenFile(seginfo.DataFilePath(e.dataDir, newID))
	if err != nil {
		return err
	}

	e.activeSeg = segment.New(newID, backend)
	e.bytesSinceSync = 0

	e.log.Debugw("rotated active segment", "from", oldID, "to", newID)
	return nil
}

// Sync flushes the active segment to stable storage.
func (e *Engine) Sync() error {
	if e.closed.Load() {
		return ErrEngineClosed
	}
	e.activeMu.Lock()
	defer e.activeMu.Unlock()

	if err := e.activeSeg.Sync(); err != nil {
		return err
	}
	e.bytesSinceSync = 0
	return nil
}

// readAt locates the segment owning pos and decodes the record stored there.
func (e *Engine) readAt(pos record.Position) (*record.Record, error) {
	e.activeMu.RLock()
	if e.activeSeg.FileID == pos.FileID {
		rec, _, err := e.activeSeg.ReadAt(pos.Offset)
		e.activeMu.RUnlock()
		return rec, err
	}
	e.activeMu.RUnlock()

	e.oldersMu.RLock()
	seg, ok := e.olders[pos.FileID]
	e.oldersMu.RUnlock()
	if !ok {
		return nil, litedberrors.NewSegmentIDError(uint16(pos.FileID), "")
	}

	rec, _, err := seg.ReadAt(pos.Offset)
	return rec, err
}

// updateIndex applies a decoded record's effect on the keydir and keeps
// the reclaimable-bytes counter — the numerator behind MergeRatio — current.
func (e *Engine) updateIndex(key []byte, pos record.Position, kind record.Kind) {
	if kind == record.KindDeleted {
		old, existed := e.idx.Delete(key)
		if existed {
			e.reclaimable.Add(int64(old.Size) + int64(pos.Size))
		} else {
			e.reclaimable.Add(int64(pos.Size))
		}
		return
	}

	old, existed := e.idx.Put(key, pos)
	if existed {
		e.reclaimable.Add(int64(old.Size))
	}
}

// ReclaimableBytes reports how many bytes across the file set belong to
// superseded or deleted records — the value an external merge driver
// compares against total size when honoring MergeRatio.
func (e *Engine) ReclaimableBytes() int64 {
	return e.reclaimable.Load()
}
