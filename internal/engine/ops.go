package engine

import (
	"github.com/iamNilotpal/litedb/internal/index"
	"github.com/iamNilotpal/litedb/internal/record"
	litedberrors "github.com/iamNilotpal/litedb/pkg/errors"
	"github.com/iamNilotpal/litedb/pkg/options"
)

// Put writes key/value as a single non-transactional record.
func (e *Engine) Put(key, value []byte) error {
	if e.closed.Load() {
		return ErrEngineClosed
	}
	if len(key) == 0 {
		return litedberrors.NewInvalidParameterError("key", key)
	}

	pos, err := e.appendLog(&record.Record{
		Kind:  record.KindNormal,
		Key:   record.SequencedKey(key, record.NonTransactionSeq),
		Value: value,
	})
	if err != nil {
		return err
	}

	e.updateIndex(key, pos, record.KindNormal)
	return nil
}

// Get returns the value stored for key, or a NotFindKey error if key has
// no live entry in the index.
func (e *Engine) Get(key []byte) ([]byte, error) {
	if e.closed.Load() {
		return nil, ErrEngineClosed
	}

	pos, ok := e.idx.Get(key)
	if !ok {
		return nil, litedberrors.NewNotFindKeyError(string(key))
	}

	rec, err := e.readAt(pos)
	if err != nil {
		return nil, err
	}
	if rec.Kind == record.KindDeleted {
		return nil, litedberrors.NewNotFindKeyError(string(key))
	}

	return rec.Value, nil
}

// Delete removes key and returns the value it held. A key with no entry in
// the index is a no-op: no tombstone is written, and the returned value is
// nil.
func (e *Engine) Delete(key []byte) ([]byte, error) {
	if e.closed.Load() {
		return nil, ErrEngineClosed
	}
	if len(key) == 0 {
		return nil, litedberrors.NewInvalidParameterError("key", key)
	}

	pos, ok := e.idx.Get(key)
	if !ok {
		return nil, nil
	}

	rec, err := e.readAt(pos)
	if err != nil {
		return nil, err
	}

	if err := e.appendTombstone(key); err != nil {
		return nil, err
	}
	if rec.Kind == record.KindDeleted {
		return nil, nil
	}
	return rec.Value, nil
}

// DeleteFast removes key, skipping the read of its prior value that Delete
// performs. A key with no entry in the index is a no-op: no tombstone is
// written.
func (e *Engine) DeleteFast(key []byte) error {
	if e.closed.Load() {
		return ErrEngineClosed
	}
	if len(key) == 0 {
		return litedberrors.NewInvalidParameterError("key", key)
	}
	if _, ok := e.idx.Get(key); !ok {
		return nil
	}
	return e.appendTombstone(key)
}

func (e *Engine) appendTombstone(key []byte) error {
	pos, err := e.appendLog(&record.Record{
		Kind: record.KindDeleted,
		Key:  record.SequencedKey(key, record.NonTransactionSeq),
	})
	if err != nil {
		return err
	}

	e.updateIndex(key, pos, record.KindDeleted)
	return nil
}

// ListKeys returns every live key in ascending order.
func (e *Engine) ListKeys() [][]byte {
	return e.idx.ListKeys()
}

// Iterator returns a point-in-time snapshot iterator over the keydir.
func (e *Engine) Iterator(opts index.IteratorOptions) index.Iterator {
	return e.idx.Iterator(opts)
}

// NewBatch creates a Batch bound to this engine, governed by opts.
func (e *Engine) NewBatch(opts options.WriteBatchOptions) *Batch {
	return &Batch{eng: e, opts: opts, pending: make(map[string]*pendingOp)}
}
