// Package engine coordinates the segment file set, the keydir index, and
// the batch-commit path. It is the component every pkg/litedb method
// ultimately calls into.
package engine

import (
	"context"
	stdErrors "errors"
	"path/filepath"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/iamNilotpal/litedb/internal/iobackend"
	"github.com/iamNilotpal/litedb/internal/index"
	"github.com/iamNilotpal/litedb/internal/record"
	"github.com/iamNilotpal/litedb/internal/segment"
	litedberrors "github.com/iamNilotpal/litedb/pkg/errors"
	"github.com/iamNilotpal/litedb/pkg/filesys"
	"github.com/iamNilotpal/litedb/pkg/options"
	"github.com/iamNilotpal/litedb/pkg/seginfo"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// ErrEngineClosed is returned by Put, Get, Delete, DeleteFast, Sync and a
// repeated Close once Close has run.
var ErrEngineClosed = stdErrors.New("litedb: engine is closed")

// seqNoFileName holds the last-assigned sequence number across restarts
// for databases using the persistent B+tree index, which has no log to
// replay and so cannot recover the counter by scanning.
const seqNoFileName = "seq-no"

// Engine is the core database engine: append-only segment management,
// the keydir index, and atomic batch commits.
type Engine struct {
	opts *options.Options
	log  *zap.SugaredLogger

	dataDir string
	closed  atomic.Bool

	idx index.Index

	activeMu       sync.RWMutex
	activeSeg      *segment.Segment
	bytesSinceSync int64

	oldersMu sync.RWMutex
	olders   map[uint32]*segment.Segment

	seqNo       atomic.Uint64
	reclaimable atomic.Int64

	// batchingDisabled is set when a B+tree-indexed database is reopened
	// on a non-fresh directory whose seq-no marker is missing: a prior
	// crash lost the sequence counter, so batches are refused rather than
	// risking a sequence collision with whatever was already committed.
	batchingDisabled atomic.Bool

	batchMu sync.Mutex

	lock *dirLock
}

// Config bundles everything Open needs to build an Engine.
type Config struct {
	Options *options.Options
	Logger  *zap.SugaredLogger
}

// Open validates config, acquires the data directory's exclusive lock,
// opens (or creates) the segment set and index, replays the log as
// needed, and returns a ready-to-use Engine.
func Open(ctx context.Context, config *Config) (*Engine, error) {
	if config == nil || config.Options == nil || config.Logger == nil {
		return nil, litedberrors.NewRequiredFieldError("config")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := config.Options.Validate(); err != nil {
		return nil, err
	}

	opts := config.Options
	log := config.Logger

	if err := filesys.CreateDir(opts.DataDir, 0755, true); err != nil {
		return nil, litedberrors.ClassifyDirectoryCreationError(err, opts.DataDir)
	}

	lock, err := acquireDirLock(opts.DataDir)
	if err != nil {
		return nil, err
	}

	fileIDs, err := seginfo.ListDataFileIDs(opts.DataDir)
	if err != nil {
		lock.release()
		return nil, err
	}
	isInitial := len(fileIDs) == 0

	var idx index.Index
	if opts.IndexType == options.IndexTypeBTree {
		idx, err = index.NewBolt(filepath.Join(opts.DataDir, "index.bolt"))
	} else {
		idx = index.NewMemory()
	}
	if err != nil {
		lock.release()
		return nil, err
	}

	e := &Engine{
		opts:    opts,
		log:     log,
		dataDir: opts.DataDir,
		idx:     idx,
		olders:  make(map[uint32]*segment.Segment),
		lock:    lock,
	}

	activeID := uint32(0)
	if len(fileIDs) > 0 {
		activeID = fileIDs[len(fileIDs)-1]
	}

	for _, id := range fileIDs {
		if id == activeID {
			continue
		}
		seg, err := e.openOlderSegment(id)
		if err != nil {
			e.closeSegments()
			lock.release()
			return nil, err
		}
		e.olders[id] = seg
	}

	activeBackend, err := iobackend.OpenFile(seginfo.DataFilePath(opts.DataDir, activeID))
	if err != nil {
		e.closeSegments()
		lock.release()
		return nil, err
	}
	e.activeSeg = segment.New(activeID, activeBackend)

	if opts.IndexType == options.IndexTypeBTree {
		if err := e.loadSeqNoOnly(isInitial); err != nil {
			e.closeSegments()
			idx.Close()
			lock.release()
			return nil, err
		}
	} else {
		if err := e.recover(fileIDs, activeID); err != nil {
			e.closeSegments()
			idx.Close()
			lock.release()
			return nil, err
		}
	}

	log.Infow(
		"engine opened",
		"dataDir", opts.DataDir,
		"activeSegment", activeID,
		"segments", len(fileIDs),
		"indexType", opts.IndexType,
	)
	return e, nil
}

func (e *Engine) openOlderSegment(id uint32) (*segment.Segment, error) {
	path := seginfo.DataFilePath(e.dataDir, id)
	if e.opts.MmapAtStartup {
		b, err := iobackend.OpenMMap(path)
		if err != nil {
			return nil, litedberrors.NewIOError(err, "failed to mmap segment").WithPath(path)
		}
		return segment.New(id, b), nil
	}

	b, err := iobackend.OpenFile(path)
	if err != nil {
		return nil, err
	}
	return segment.New(id, b), nil
}

func (e *Engine) closeSegments() {
	if e.activeSeg != nil {
		e.activeSeg.Close()
	}
	for _, seg := range e.olders {
		seg.Close()
	}
}

// Close flushes the active segment, persists the sequence counter,
// closes the index and every segment, and releases the directory lock.
// Errors from each step are combined rather than discarded.
func (e *Engine) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return ErrEngineClosed
	}

	var err error

	e.activeMu.Lock()
	if e.activeSeg != nil {
		err = multierr.Append(err, e.activeSeg.Sync())
	}
	e.activeMu.Unlock()

	if exists, statErr := filesys.Exists(e.dataDir); statErr == nil && exists {
		err = multierr.Append(err, e.writeSeqNo())
	}

	if e.idx != nil {
		err = multierr.Append(err, e.idx.Close())
	}

	if e.activeSeg != nil {
		err = multierr.Append(err, e.activeSeg.Close())
	}

	e.oldersMu.Lock()
	for _, seg := range e.olders {
		err = multierr.Append(err, seg.Close())
	}
	e.oldersMu.Unlock()

	if e.lock != nil {
		err = multierr.Append(err, e.lock.release())
	}

	e.log.Infow("engine closed", "dataDir", e.dataDir)
	return err
}

// writeSeqNo persists the current sequence counter as a single NORMAL
// record in the seq-no marker file, read back by loadSeqNoOnly on the
// next Open of a B+tree-indexed database.
func (e *Engine) writeSeqNo() error {
	path := filepath.Join(e.dataDir, seqNoFileName)

	if exists, err := filesys.Exists(path); err != nil {
		return err
	} else if exists {
		if err := filesys.DeleteFile(path); err != nil {
			return err
		}
	}

	backend, err := iobackend.OpenFile(path)
	if err != nil {
		return err
	}
	seqSeg := segment.New(0, backend)

	if _, err := seqSeg.Append(&record.Record{
		Kind:  record.KindNormal,
		Key:   []byte(seqNoRecordKey),
		Value: []byte(strconv.FormatUint(e.seqNo.Load(), 10)),
	}); err != nil {
		seqSeg.Close()
		return err
	}

	return multierr.Append(seqSeg.Sync(), seqSeg.Close())
}
