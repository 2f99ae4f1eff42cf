// Package litedb is an embedded, single-process, persistent key-value
// store built on an append-only log and an in-memory (or B+tree)
// keydir index, in the style of Bitcask.
package litedb

import (
	"context"

	"github.com/iamNilotpal/litedb/internal/engine"
	"github.com/iamNilotpal/litedb/internal/index"
	"github.com/iamNilotpal/litedb/pkg/logger"
	"github.com/iamNilotpal/litedb/pkg/options"
	"go.uber.org/zap"
)

// DB is a handle to an open database directory.
type DB struct {
	eng *engine.Engine
}

// Open creates or opens a database at the directory named by the given
// OptionFuncs (defaulting to options.NewDefaultOptions otherwise).
func Open(opts ...options.OptionFunc) (*DB, error) {
	return OpenWithLogger(nil, opts...)
}

// OpenWithLogger is Open with an explicit *zap.SugaredLogger, for callers
// that already have their own logging pipeline. A nil logger falls back
// to logger.New("litedb").
func OpenWithLogger(log *zap.SugaredLogger, opts ...options.OptionFunc) (*DB, error) {
	cfg := options.NewDefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	if log == nil {
		log = logger.New("litedb")
	}

	eng, err := engine.Open(context.Background(), &engine.Config{Options: &cfg, Logger: log})
	if err != nil {
		return nil, err
	}

	return &DB{eng: eng}, nil
}

// Put writes key/value as a single non-transactional record.
func (db *DB) Put(key, value []byte) error {
	return db.eng.Put(key, value)
}

// Get returns the value stored for key.
func (db *DB) Get(key []byte) ([]byte, error) {
	return db.eng.Get(key)
}

// Delete removes key and returns the value it held. A key with no entry in
// the index is a no-op.
func (db *DB) Delete(key []byte) ([]byte, error) {
	return db.eng.Delete(key)
}

// DeleteFast removes key without reading the value it held. A key with no
// entry in the index is a no-op.
func (db *DB) DeleteFast(key []byte) error {
	return db.eng.DeleteFast(key)
}

// Sync flushes the active segment to stable storage.
func (db *DB) Sync() error {
	return db.eng.Sync()
}

// Close flushes and releases every resource the database holds.
func (db *DB) Close() error {
	return db.eng.Close()
}

// ListKeys returns every live key, in ascending order.
func (db *DB) ListKeys() [][]byte {
	return db.eng.ListKeys()
}

// Iterator returns a point-in-time snapshot iterator over the keydir.
func (db *DB) Iterator(opts index.IteratorOptions) index.Iterator {
	return db.eng.Iterator(opts)
}

// ReclaimableBytes reports how many bytes across the file set belong to
// superseded or deleted records.
func (db *DB) ReclaimableBytes() int64 {
	return db.eng.ReclaimableBytes()
}

// NewBatch creates a Batch for staging atomic multi-key writes/deletes.
func (db *DB) NewBatch(opts options.WriteBatchOptions) *engine.Batch {
	return db.eng.NewBatch(opts)
}
