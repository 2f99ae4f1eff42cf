package index

import (
	"github.com/iamNilotpal/litedb/internal/record"
	litedberrors "github.com/iamNilotpal/litedb/pkg/errors"
	"go.etcd.io/bbolt"
)

var indexBucket = []byte("litedb_index")

// boltIndex is the persistent-B+tree keydir backend: every Put/Delete is
// durably committed to a bbolt database file, so recovery can skip
// replaying the data log entirely and only needs the seq-no file to
// resume sequence-number monotonicity.
type boltIndex struct {
	db *bbolt.DB
}

// NewBolt opens (creating if needed) a bbolt-backed index at path.
func NewBolt(path string) (Index, error) {
	db, err := bbolt.Open(path, 0644, nil)
	if err != nil {
		return nil, litedberrors.NewIndexError(err, litedberrors.ErrorCodeIO, "failed to open bolt index").
			WithOperation("Open")
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(indexBucket)
		return err
	}); err != nil {
		db.Close()
		return nil, litedberrors.NewIndexError(err, litedberrors.ErrorCodeIO, "failed to initialize bolt bucket").
			WithOperation("Open")
	}

	return &boltIndex{db: db}, nil
}

func (b *boltIndex) Put(key []byte, pos record.Position) (record.Position, bool) {
	var old record.Position
	var existed bool

	b.db.Update(func(tx *bbolt.Tx) error {
		bkt := tx.Bucket(indexBucket)
		if v := bkt.Get(key); v != nil {
			old = record.DecodePosition(v)
			existed = true
		}
		return bkt.Put(key, record.EncodePosition(pos))
	})

	return old, existed
}

func (b *boltIndex) Get(key []byte) (record.Position, bool) {
	var pos record.Position
	var found bool

	b.db.View(func(tx *bbolt.Tx) error {
		if v := tx.Bucket(indexBucket).Get(key); v != nil {
			pos = record.DecodePosition(v)
			found = true
		}
		return nil
	})

	return pos, found
}

func (b *boltIndex) Delete(key []byte) (record.Position, bool) {
	var old record.Position
	var existed bool

	b.db.Update(func(tx *bbolt.Tx) error {
		bkt := tx.Bucket(indexBucket)
		if v := bkt.Get(key); v != nil {
			old = record.DecodePosition(v)
			existed = true
		}
		return bkt.Delete(key)
	})

	return old, existed
}

func (b *boltIndex) ListKeys() [][]byte {
	var keys [][]byte
	b.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(indexBucket).ForEach(func(k, _ []byte) error {
			keys = append(keys, append([]byte(nil), k...))
			return nil
		})
	})
	return keys
}

func (b *boltIndex) Size() int {
	var n int
	b.db.View(func(tx *bbolt.Tx) error {
		n = tx.Bucket(indexBucket).Stats().KeyN
		return nil
	})
	return n
}

func (b *boltIndex) Iterator(opts IteratorOptions) Iterator {
	var items []item
	b.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(indexBucket).ForEach(func(k, v []byte) error {
			items = append(items, item{key: string(k), pos: record.DecodePosition(v)})
			return nil
		})
	})
	return newSliceIterator(items, opts)
}

func (b *boltIndex) Close() error {
	return b.db.Close()
}
