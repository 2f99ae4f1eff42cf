package engine

import (
	"sync"

	"github.com/iamNilotpal/litedb/internal/record"
	litedberrors "github.com/iamNilotpal/litedb/pkg/errors"
	"github.com/iamNilotpal/litedb/pkg/options"
)

type pendingOp struct {
	kind  record.Kind
	value []byte
}

// Batch stages puts and deletes for atomic, all-or-nothing commit: every
// staged operation lands under one fresh sequence number and becomes
// visible together, or (on any append failure) none of it does.
type Batch struct {
	eng  *Engine
	opts options.WriteBatchOptions

	mu        sync.Mutex
	pending   map[string]*pendingOp
	committed bool
}

// Put stages a key/value write. It has no effect until Commit succeeds.
func (b *Batch) Put(key, value []byte) error {
	if len(key) == 0 {
		return litedberrors.NewInvalidParameterError("key", key)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.committed {
		return litedberrors.NewInvalidBatchError("batch already committed")
	}
	if _, exists := b.pending[string(key)]; !exists && uint(len(b.pending)) >= b.opts.MaxBatchNum {
		return litedberrors.NewInvalidBatchError("batch exceeds maximum staged operation count")
	}

	b.pending[string(key)] = &pendingOp{kind: record.KindNormal, value: value}
	return nil
}

// Delete stages key's removal. A key with no entry in the engine's index
// and nothing already staged is a silent no-op, matching Engine.Delete's
// own policy.
func (b *Batch) Delete(key []byte) error {
	if len(key) == 0 {
		return litedberrors.NewInvalidParameterError("key", key)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.committed {
		return litedberrors.NewInvalidBatchError("batch already committed")
	}

	_, staged := b.pending[string(key)]
	_, indexed := b.eng.idx.Get(key)
	if !staged && !indexed {
		return nil
	}

	b.pending[string(key)] = &pendingOp{kind: record.KindDeleted}
	return nil
}

// Commit writes every staged operation under one fresh sequence number,
// terminates it with a TXN_FINISHED marker, applies the engine's sync
// policy, and only then updates the index — so a crash mid-commit leaves
// recovery with an unterminated, and therefore ignored, transaction.
func (b *Batch) Commit() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.committed {
		return litedberrors.NewInvalidBatchError("batch already committed")
	}
	if b.eng.batchingDisabled.Load() {
		return litedberrors.NewInvalidBatchError(
			"batching unavailable: seq-no marker missing for this database, a prior crash lost the sequence counter",
		)
	}
	if len(b.pending) == 0 {
		b.committed = true
		return nil
	}

	b.eng.batchMu.Lock()
	defer b.eng.batchMu.Unlock()

	seq := b.eng.seqNo.Add(1)

	type applied struct {
		pos  record.Position
		kind record.Kind
	}
	results := make(map[string]applied, len(b.pending))

	for key, op := range b.pending {
		pos, err := b.eng.appendLog(&record.Record{
			Kind:  op.kind,
			Key:   record.SequencedKey([]byte(key), seq),
			Value: op.value,
		})
		if err != nil {
			return err
		}
		results[key] = applied{pos: pos, kind: op.kind}
	}

	if _, err := b.eng.appendLog(&record.Record{
		Kind: record.KindTxnFinished,
		Key:  record.SequencedKey(nil, seq),
	}); err != nil {
		return err
	}

	if b.opts.SyncWrites {
		if err := b.eng.Sync(); err != nil {
			return err
		}
	}

	for key, a := range results {
		b.eng.updateIndex([]byte(key), a.pos, a.kind)
	}

	b.committed = true
	b.pending = nil
	return nil
}
